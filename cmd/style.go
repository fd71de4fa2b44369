package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// renderTable prints data as a boxed table whose first row is the header.
func renderTable(cmd *cobra.Command, data pterm.TableData) error {
	table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
	return nil
}
