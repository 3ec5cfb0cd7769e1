package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ScatterBoard/internal/engine"
	"github.com/piwi3910/ScatterBoard/internal/export"
	"github.com/piwi3910/ScatterBoard/internal/model"
)

// layoutCommand lays a fixture out once and emits the layout JSON.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  settingsFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [fixture]",
		Short: "Lay a fixture out and emit the layout as JSON",
		Long: `Lay a fixture out and emit the layout as JSON.

The fixture is a name or ID from the fixture store, or a path to a YAML, TOML
or JSON fixture file. Every run draws a new seed unless --seed is given; the
seed used is part of the output so any layout can be reproduced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := c.fixtureWithFlags(cmd, args[0], &flags)
			if err != nil {
				return err
			}
			return c.runLayout(cmd, spec, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, spec model.FixtureSpec, output string) error {
	result := c.layoutFixture(spec)

	if output == "" {
		return export.WriteJSON(cmd.OutOrStdout(), result)
	}
	if err := export.ExportJSON(output, result); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	printLayoutSummary(spec.Name, result)
	printFile(output)
	return nil
}

// layoutFixture lays spec out with its own settings and logs the outcome.
func (c *CLI) layoutFixture(spec model.FixtureSpec) model.LayoutResult {
	prog := newProgress(c.Logger)
	result := engine.New(spec.Settings).LayoutFixture(spec)
	prog.done(fmt.Sprintf("Laid out %s", spec.Name))

	c.Logger.Debug("layout computed",
		"fixture", spec.Name,
		"seed", result.Seed,
		"widgets", len(result.Widgets),
		"attempts", result.Attempts,
		"fallbacks", result.Fallbacks,
	)
	if result.Fallbacks > 0 {
		c.Logger.Warn("grid fallback used", "fixture", spec.Name, "widgets", result.Fallbacks)
	}
	return result
}

func printLayoutSummary(name string, result model.LayoutResult) {
	printSuccess("Laid out %s", StyleTitle.Render(name))
	printKeyValue("Seed", StyleNumber.Render(fmt.Sprint(result.Seed)))
	printKeyValue("Widgets", fmt.Sprint(len(result.Widgets)))
	printKeyValue("Attempts", fmt.Sprint(result.Attempts))
	printKeyValue("Fallbacks", fmt.Sprint(result.Fallbacks))
	printKeyValue("Coverage", fmt.Sprintf("%.1f%%", result.Coverage()))
}
