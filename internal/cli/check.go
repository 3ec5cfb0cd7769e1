package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ScatterBoard/internal/engine"
	"github.com/piwi3910/ScatterBoard/internal/model"
)

// errCheckFailed is returned by check when a layout breaks the clearance or
// bounds and --fail is set.
var errCheckFailed = errors.New("layout check failed")

// checkCommand lays a fixture out repeatedly and verifies every layout.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		runs  int
		fail  bool
		flags settingsFlags
	)

	cmd := &cobra.Command{
		Use:   "check [fixture]",
		Short: "Lay a fixture out repeatedly and report collisions",
		Long: `Lay a fixture out repeatedly and report collisions.

Widgets placed by the random search never collide. Widgets placed by the grid
fallback are not checked against earlier placements unless --strict-fallback
is set, so crowded fixtures may report collisions here.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := c.fixtureWithFlags(cmd, args[0], &flags)
			if err != nil {
				return err
			}
			return c.runCheck(cmd.Context(), spec, runs, fail)
		},
	}

	cmd.Flags().IntVarP(&runs, "runs", "n", defaultRuns, "number of layouts to check")
	cmd.Flags().BoolVar(&fail, "fail", false, "exit with an error when any layout fails")
	flags.register(cmd)

	return cmd
}

// checkReport summarizes a check run.
type checkReport struct {
	Runs            int
	FailedRuns      int
	FallbackRuns    int
	Collisions      int
	OutOfBounds     int
	FirstFailedSeed uint64
}

func (c *CLI) runCheck(ctx context.Context, spec model.FixtureSpec, runs int, fail bool) error {
	if runs < 1 {
		runs = 1
	}
	report := checkReport{Runs: runs}

	for i := 0; i < runs; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		settings := spec.Settings
		if settings.Seed != 0 {
			settings.Seed += uint64(i)
		}
		result := engine.New(settings).LayoutFixture(spec)

		collisions := engine.CheckCollisions(result, settings.Clearance)
		outside := engine.CheckContainment(result)
		if result.Fallbacks > 0 {
			report.FallbackRuns++
		}
		if len(collisions) == 0 && len(outside) == 0 {
			continue
		}

		report.FailedRuns++
		report.Collisions += len(collisions)
		report.OutOfBounds += len(outside)
		if report.FailedRuns == 1 {
			report.FirstFailedSeed = result.Seed
			printWarning("seed %d: %d collisions, %d out of bounds", result.Seed, len(collisions), len(outside))
			for _, w := range engine.FormatCollisionWarnings(collisions) {
				printDetail("%s", w)
			}
		}
		c.Logger.Debug("check failed", "seed", result.Seed, "collisions", len(collisions), "outside", len(outside))
	}

	printCheckReport(spec.Name, report)
	if fail && report.FailedRuns > 0 {
		return fmt.Errorf("%w: %d of %d runs", errCheckFailed, report.FailedRuns, report.Runs)
	}
	return nil
}

func printCheckReport(name string, r checkReport) {
	if r.FailedRuns == 0 {
		printSuccess("%s: %d layouts, no collisions", StyleTitle.Render(name), r.Runs)
	} else {
		printError("%s: %d of %d layouts failed", StyleTitle.Render(name), r.FailedRuns, r.Runs)
		printKeyValue("Collisions", fmt.Sprint(r.Collisions))
		printKeyValue("Outside", fmt.Sprint(r.OutOfBounds))
		printKeyValue("First seed", StyleNumber.Render(fmt.Sprint(r.FirstFailedSeed)))
	}
	printKeyValue("Fallbacks", fmt.Sprintf("%d of %d runs", r.FallbackRuns, r.Runs))
}
