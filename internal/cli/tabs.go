package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func cycleTab(app *App, cmd *cobra.Command, forward bool) error {
	m, err := app.manager(cmd.Context())
	if err != nil {
		return err
	}
	defer m.Shutdown()
	if forward {
		m.NextTab()
	} else {
		m.PrevTab()
	}
	if active := m.Active(); active != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "active: %s\n", active.FileName())
	}
	return nil
}
