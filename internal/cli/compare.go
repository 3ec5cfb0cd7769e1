package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ScatterBoard/internal/engine"
	"github.com/piwi3910/ScatterBoard/internal/model"
)

// compareCommand runs the fixture under several settings variants.
func (c *CLI) compareCommand() *cobra.Command {
	var (
		runs  int
		flags settingsFlags
	)

	cmd := &cobra.Command{
		Use:   "compare [fixture]",
		Short: "Compare attempt budgets and fallback modes on a fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := c.fixtureWithFlags(cmd, args[0], &flags)
			if err != nil {
				return err
			}
			return c.runCompare(cmd.Context(), spec, runs)
		},
	}

	cmd.Flags().IntVarP(&runs, "runs", "n", defaultRuns, "layouts per scenario")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runCompare(ctx context.Context, spec model.FixtureSpec, runs int) error {
	prog := newProgress(c.Logger)
	results := engine.CompareScenarios(engine.BuildDefaultScenarios(spec.Settings), spec, runs)
	prog.done(fmt.Sprintf("Compared %d scenarios", len(results)))
	if err := ctx.Err(); err != nil {
		return err
	}

	fmt.Fprintln(stdout, StyleTitle.Render("Compare "+spec.Name))
	rows := [][]string{{"SCENARIO", "AVG ATTEMPTS", "AVG FALLBACKS", "COVERAGE", "FALLBACK RUNS", "COLLISION RUNS"}}
	for _, r := range results {
		rows = append(rows, []string{
			r.Scenario.Name,
			fmt.Sprintf("%.1f", r.AvgAttempts),
			fmt.Sprintf("%.2f", r.AvgFallbacks),
			fmt.Sprintf("%.1f%%", r.AvgCoverage),
			fmt.Sprintf("%d/%d", r.RunsWithFallback, r.Runs),
			fmt.Sprintf("%d/%d", r.RunsWithCollisions, r.Runs),
		})
	}
	printTable(rows)
	return nil
}
