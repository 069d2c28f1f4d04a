package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "validate",
		Short:        "Check index consistency for a facts document",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rootOpts.Facts == "" {
				return fmt.Errorf("--facts is required")
			}

			store, err := loadFacts(rootOpts.Facts)
			if err != nil {
				return err
			}

			report := store.ValidateConsistency()
			out := cmd.OutOrStdout()

			if rootOpts.Format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else if report.Valid {
				fmt.Fprintln(out, "consistent")
			} else {
				fmt.Fprintf(out, "violation: %s\n", report.Violation)
			}

			if !report.Valid {
				return fmt.Errorf("store is inconsistent")
			}
			return nil
		},
	}
}
