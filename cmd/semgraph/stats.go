package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print store statistics for a facts document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rootOpts.Facts == "" {
				return fmt.Errorf("--facts is required")
			}

			store, err := loadFacts(rootOpts.Facts)
			if err != nil {
				return err
			}

			stats := store.Statistics()
			out := cmd.OutOrStdout()

			if rootOpts.Format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]int{
					"facts": stats.Facts,
					"spo":   stats.SPOEntries,
					"pos":   stats.POSEntries,
					"osp":   stats.OSPEntries,
				})
			}

			fmt.Fprintf(out, "facts: %d\n", stats.Facts)
			fmt.Fprintf(out, "spo entries: %d\n", stats.SPOEntries)
			fmt.Fprintf(out, "pos entries: %d\n", stats.POSEntries)
			fmt.Fprintf(out, "osp entries: %d\n", stats.OSPEntries)
			return nil
		},
	}
}
