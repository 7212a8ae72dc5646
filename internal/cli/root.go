package cli

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"jot-cli/internal/document"
	"jot-cli/internal/store"
)

// App carries the persistent flag state shared by all commands.
type App struct {
	ConfigDir string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "jot",
		Short:        "jot — plain-text note manager",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open notes (restores previously open tabs first)
  jot open ideas.txt ~/notes/todo.txt

  # See the open tabs and which is active
  jot list

  # Edit the active note in $EDITOR
  jot edit

  # Cycle through tabs
  jot next
  jot prev
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigDir, "config-dir", envOr("JOT_CONFIG_DIR", ""), "Path to the settings dir (advanced: overrides the default ~/.jot; use for fixtures/tests)")

	cmd.AddCommand(newNewCmd(app))
	cmd.AddCommand(newOpenCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newCloseCmd(app))
	cmd.AddCommand(newSaveCmd(app))
	cmd.AddCommand(newNextCmd(app))
	cmd.AddCommand(newPrevCmd(app))
	cmd.AddCommand(newFolderCmd(app))
	cmd.AddCommand(newEditCmd(app))

	return cmd
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (a *App) settings() (store.Settings, error) {
	if strings.TrimSpace(a.ConfigDir) != "" {
		return store.Settings{Dir: a.ConfigDir}, nil
	}
	return store.DefaultSettings()
}

// manager restores the session and hands back the single manager instance
// this process operates on. Callers must Shutdown before exit so no autosave
// timer outlives the command.
func (a *App) manager(ctx context.Context) (*document.Manager, error) {
	settings, err := a.settings()
	if err != nil {
		return nil, err
	}
	return document.NewManager(ctx, document.Options{Settings: settings}), nil
}
