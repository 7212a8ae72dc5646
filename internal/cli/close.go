package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"jot-cli/internal/document"
	"jot-cli/internal/prompt"
)

// decidedPrompter answers the close confirmation with a fixed decision
// (driven by --save/--discard) while delegating the save-as picker to the
// interactive prompter when one is available.
type decidedPrompter struct {
	decision document.Decision
	picker   document.Prompter
}

func (p decidedPrompter) ConfirmClose(name string) (document.Decision, error) {
	return p.decision, nil
}

func (p decidedPrompter) PickSavePath(dir string, suggested string) (string, error) {
	if p.picker == nil {
		return "", fmt.Errorf("untitled note needs a destination: %w", document.ErrNoPath)
	}
	return p.picker.PickSavePath(dir, suggested)
}

func stdinIsTTY() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func newCloseCmd(app *App) *cobra.Command {
	var discard bool
	var save bool

	cmd := &cobra.Command{
		Use:   "close",
		Short: "Close the active tab (asks about unsaved changes)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if discard && save {
				return errors.New("--discard and --save are mutually exclusive")
			}
			m, err := app.manager(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Shutdown()

			doc := m.Active()
			name := doc.FileName()

			var p document.Prompter
			switch {
			case discard:
				p = nil
			case save:
				var picker document.Prompter
				if stdinIsTTY() {
					picker = prompt.New()
				}
				p = decidedPrompter{decision: document.DecisionSave, picker: picker}
			case stdinIsTTY():
				p = prompt.New()
			}

			if err := m.Close(doc, p); err != nil {
				if errors.Is(err, document.ErrCancelled) {
					fmt.Fprintln(cmd.OutOrStdout(), "close cancelled")
					return nil
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "closed: %s\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&discard, "discard", false, "Close without saving")
	cmd.Flags().BoolVar(&save, "save", false, "Save before closing")
	return cmd
}
