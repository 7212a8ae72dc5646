package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"jot-cli/internal/document"
	"jot-cli/internal/prompt"
)

func newSaveCmd(app *App) *cobra.Command {
	var asPath string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save the active note (use --as to pick or change the file)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.manager(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Shutdown()

			if asPath != "" {
				if err := m.SaveActiveAs(asPath); err != nil {
					return err
				}
			} else {
				var p document.Prompter
				if stdinIsTTY() {
					p = prompt.New()
				}
				if err := m.SaveActive(p); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved: %s\n", m.Active().FileName())
			return nil
		},
	}

	cmd.Flags().StringVar(&asPath, "as", "", "Destination path (save-as)")
	return cmd
}
