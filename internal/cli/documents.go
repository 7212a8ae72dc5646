package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create a fresh untitled note and make it active",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.manager(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Shutdown()
			doc := m.New()
			fmt.Fprintf(cmd.OutOrStdout(), "new: %s\n", doc.FileName())
			return nil
		},
	}
}

func newOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>...",
		Short: "Open one or more files as tabs (the last becomes active)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.manager(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Shutdown()
			for _, path := range args {
				doc, err := m.Open(path)
				if err != nil {
					// Best effort: the tab exists (empty) even when the file
					// could not be read.
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %v\n", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "open: %s\n", doc.FileName())
			}
			return nil
		},
	}
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "tabs"},
		Short:   "List open tabs in order ('*' marks the active one)",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.manager(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Shutdown()
			active := m.Active()
			for i, doc := range m.Documents() {
				marker := " "
				if active != nil && doc.ID() == active.ID() {
					marker = "*"
				}
				dirty := ""
				if doc.IsDirty() {
					dirty = " (modified)"
				}
				loc := doc.Path()
				if loc == "" {
					loc = "-"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %2d  %-20s %s%s\n", marker, i+1, doc.FileName(), loc, dirty)
			}
			return nil
		},
	}
}

func newNextCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Activate the next tab (wraps past the last)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cycleTab(app, cmd, true)
		},
	}
}

func newPrevCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "prev",
		Short: "Activate the previous tab (wraps past the first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cycleTab(app, cmd, false)
		},
	}
}

func newFolderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "folder [path]",
		Short: "Show or set the default folder for new notes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.manager(cmd.Context())
			if err != nil {
				return err
			}
			defer m.Shutdown()
			if len(args) == 1 {
				m.SelectDefaultFolder(args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), m.DefaultFolder())
			return nil
		},
	}
}
