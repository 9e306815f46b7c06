package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/cgmportal/pkg/targets"
)

func newTargetsCommand(ctx *commandContext) *cobra.Command {
	var (
		path   string
		asYAML bool
	)

	cmd := &cobra.Command{
		Use:   "targets",
		Short: "Print the target range table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := resolveTable(ctx, path)
			if err != nil {
				return err
			}
			if asYAML {
				return table.WriteYAML(cmd.OutOrStdout())
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderTargets(table))
			return err
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "YAML target table (default: TARGETS_FILE or built-in)")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the table as YAML")
	return cmd
}

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "classify <metric> <value>",
		Short: "Rate a metric value against the target table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := resolveTable(ctx, path)
			if err != nil {
				return err
			}
			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[1], err)
			}
			target, err := table.Lookup(targets.Metric(args[0]))
			if err != nil {
				return err
			}
			tier := target.Classify(value)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s: %s\n",
				target.DisplayName(), args[1], target.Unit, tier)
			return err
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "YAML target table (default: TARGETS_FILE or built-in)")
	return cmd
}

// resolveTable prefers the flag, then TARGETS_FILE, then the built-in table.
func resolveTable(ctx *commandContext, path string) (*targets.Table, error) {
	if path != "" {
		return targets.LoadFile(path)
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	return targets.LoadFile(cfg.TargetsFile)
}

func renderTargets(t *targets.Table) string {
	headers := []string{"Metric", "Unit"}
	aligns := []text.Align{text.AlignLeft, text.AlignLeft}
	for _, tier := range targets.Bands {
		headers = append(headers, string(tier))
		aligns = append(aligns, text.AlignRight)
	}

	rows := make([][]string, 0, len(t.Targets()))
	for _, target := range t.Targets() {
		row := []string{target.DisplayName(), target.Unit}
		for _, tier := range targets.Bands {
			r, _ := target.Band(tier)
			row = append(row, r.String())
		}
		rows = append(rows, row)
	}
	return renderTable(headers, rows, aligns)
}
