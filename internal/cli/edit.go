package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"jot-cli/internal/document"
	"jot-cli/internal/prompt"
)

func editorName() string {
	if v := strings.TrimSpace(os.Getenv("VISUAL")); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("EDITOR")); v != "" {
		return v
	}
	return "vi"
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the active note in $VISUAL/$EDITOR, then save it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.manager(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Shutdown()

			doc := m.Active()
			after, changed, err := runEditor(doc.Content())
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintln(cmd.OutOrStdout(), "no changes")
				return nil
			}
			doc.SetContent(after)

			var p document.Prompter
			if stdinIsTTY() {
				p = prompt.New()
			}
			if err := m.SaveActive(p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved: %s\n", m.Active().FileName())
			return nil
		},
	}
}

// runEditor round-trips text through the user's editor via a temp file and
// reports whether the content changed.
func runEditor(before string) (after string, changed bool, err error) {
	args := strings.Fields(editorName())
	if len(args) == 0 {
		args = []string{"vi"}
	}

	f, err := os.CreateTemp("", "jot-*.txt")
	if err != nil {
		return "", false, err
	}
	path := f.Name()
	defer func() { _ = os.Remove(path) }()

	if _, err := f.WriteString(before); err != nil {
		_ = f.Close()
		return "", false, err
	}
	if err := f.Close(); err != nil {
		return "", false, err
	}

	c := exec.Command(args[0], append(args[1:], path)...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return "", false, fmt.Errorf("editor failed: %w", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("editor result unreadable: %w", err)
	}
	after = string(b)
	return after, after != before, nil
}
