// Package prompt implements the interactive collaborator the document
// manager depends on: the three-way close confirmation and the save-as path
// input. The manager itself only sees the document.Prompter interface.
package prompt

import (
	tea "github.com/charmbracelet/bubbletea"

	"jot-cli/internal/document"
)

// TTY runs the prompts inline on the controlling terminal.
type TTY struct{}

func New() TTY { return TTY{} }

func (TTY) ConfirmClose(name string) (document.Decision, error) {
	p := tea.NewProgram(newConfirmModel(name))
	out, err := p.Run()
	if err != nil {
		return document.DecisionCancel, err
	}
	m, ok := out.(confirmModel)
	if !ok || !m.done {
		return document.DecisionCancel, nil
	}
	return m.decision, nil
}

func (TTY) PickSavePath(dir string, suggested string) (string, error) {
	p := tea.NewProgram(newSaveAsModel(dir, suggested))
	out, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := out.(saveAsModel)
	if !ok || m.aborted || m.path == "" {
		return "", document.ErrCancelled
	}
	return m.path, nil
}
