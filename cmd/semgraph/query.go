package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360/semgraph/graph"
	"github.com/c360/semgraph/graph/algebra"
	"github.com/c360/semgraph/graph/query"
	"github.com/c360/semgraph/metric"
)

// QueryOptions holds query command flags.
type QueryOptions struct {
	Timeout    time.Duration
	MaxResults int
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query <operation.json>",
		Short: "Execute a JSON-encoded operation tree against a facts document",
		Long: `Execute reads an operation tree from a JSON file and evaluates it
against the facts document. Solutions print one per line in text mode,
or as an object list in JSON mode.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rootOpts.Facts == "" {
				return fmt.Errorf("--facts is required")
			}
			return runQuery(cmd, rootOpts, opts, args[0])
		},
	}

	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "query evaluation timeout (overrides the config file)")
	cmd.Flags().IntVar(&opts.MaxResults, "max-results", 10000, "maximum number of solutions (overrides the config file)")

	return cmd
}

func runQuery(cmd *cobra.Command, rootOpts *RootOptions, opts *QueryOptions, operationPath string) error {
	registry := metric.NewMetricsRegistry()

	store, err := loadFacts(rootOpts.Facts, graph.WithMetrics(registry.CoreMetrics()))
	if err != nil {
		return err
	}

	data, err := os.ReadFile(operationPath) // #nosec G304 - operator-supplied path
	if err != nil {
		return fmt.Errorf("read operation file: %w", err)
	}

	var op algebra.Operation
	if err := json.Unmarshal(data, &op); err != nil {
		return fmt.Errorf("parse operation file: %w", err)
	}

	cfg := query.Config{}
	if rootOpts.Config != nil {
		cfg = rootOpts.Config.Query
	}
	// Explicit flags win over the config file.
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = opts.Timeout
	}
	if cmd.Flags().Changed("max-results") {
		cfg.MaxResults = opts.MaxResults
	}

	manager, err := query.NewManager(query.Deps{
		Config:   cfg,
		Store:    store,
		Registry: registry,
	})
	if err != nil {
		return err
	}
	defer manager.Close()

	result, err := manager.Execute(cmd.Context(), &op)
	if err != nil {
		return err
	}

	return printResult(cmd, rootOpts.Format, result)
}

func printResult(cmd *cobra.Command, format string, result *query.Result) error {
	out := cmd.OutOrStdout()

	if format == "json" {
		rows := make([]map[string]string, result.Len())
		for i, solution := range result.Solutions {
			row := make(map[string]string)
			for _, binding := range solution.Bindings() {
				row[binding.Variable] = binding.Term.Canonical()
			}
			rows[i] = row
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"variables": result.Variables,
			"solutions": rows,
			"truncated": result.Truncated,
		})
	}

	for _, solution := range result.Solutions {
		line := ""
		for _, binding := range solution.Bindings() {
			if line != "" {
				line += " "
			}
			line += binding.Variable + "=" + binding.Term.Canonical()
		}
		fmt.Fprintln(out, line)
	}
	if result.Truncated {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: result truncated at max-results")
	}
	return nil
}
