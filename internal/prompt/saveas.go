package prompt

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type saveAsModel struct {
	input textinput.Model

	path    string
	aborted bool
	done    bool
}

func newSaveAsModel(dir string, suggested string) saveAsModel {
	in := textinput.New()
	in.Prompt = "Save as: "
	in.Placeholder = filepath.Join(dir, suggested+".txt")
	if strings.TrimSpace(dir) != "" {
		in.SetValue(dir + string(filepath.Separator))
	}
	in.CursorEnd()
	in.Focus()
	return saveAsModel{input: in}
}

func (m saveAsModel) Init() tea.Cmd { return textinput.Blink }

func (m saveAsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "ctrl+c", "ctrl+g":
			m.aborted = true
			m.done = true
			return m, tea.Quit
		case "enter":
			v := strings.TrimSpace(m.input.Value())
			if v == "" {
				// An empty destination is an abort, not a save to nowhere.
				m.aborted = true
				m.done = true
				return m, tea.Quit
			}
			m.path = v
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m saveAsModel) View() string {
	if m.done {
		return ""
	}
	return m.input.View() + "\n" + styleMuted.Render("enter: save   esc: cancel") + "\n"
}
