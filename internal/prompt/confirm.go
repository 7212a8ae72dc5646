package prompt

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jot-cli/internal/document"
)

type confirmModel struct {
	name  string
	focus int // 0 save, 1 discard, 2 cancel

	decision document.Decision
	done     bool
}

func newConfirmModel(name string) confirmModel {
	return confirmModel{name: name, decision: document.DecisionCancel}
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "esc", "ctrl+c", "ctrl+g", "c":
		m.decision = document.DecisionCancel
		m.done = true
		return m, tea.Quit
	case "s":
		m.decision = document.DecisionSave
		m.done = true
		return m, tea.Quit
	case "d":
		m.decision = document.DecisionDiscard
		m.done = true
		return m, tea.Quit
	case "tab", "right", "l":
		m.focus = (m.focus + 1) % 3
	case "shift+tab", "left", "h":
		m.focus = (m.focus + 2) % 3
	case "enter":
		switch m.focus {
		case 0:
			m.decision = document.DecisionSave
		case 1:
			m.decision = document.DecisionDiscard
		default:
			m.decision = document.DecisionCancel
		}
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

var (
	styleTitle = lipgloss.NewStyle().Bold(true)
	styleMuted = lipgloss.NewStyle().Faint(true)

	// Avoid borders here: some terminals show background artifacts when
	// nesting bordered components, and the prompt renders inline.
	styleBtn = lipgloss.NewStyle().Padding(0, 1)

	styleBtnActive = lipgloss.NewStyle().Padding(0, 1).Reverse(true).Bold(true)
)

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	labels := []string{"Save", "Discard", "Cancel"}
	btns := make([]string, len(labels))
	for i, label := range labels {
		if i == m.focus {
			btns[i] = styleBtnActive.Render(label)
		} else {
			btns[i] = styleBtn.Render(label)
		}
	}
	controls := lipgloss.JoinHorizontal(lipgloss.Top, btns[0], " ", btns[1], " ", btns[2])

	return strings.Join([]string{
		styleTitle.Render(fmt.Sprintf("%q has unsaved changes.", m.name)),
		"",
		controls,
		"",
		styleMuted.Render("tab: focus   enter: select   s/d/c shortcuts   esc: cancel"),
		"",
	}, "\n")
}
