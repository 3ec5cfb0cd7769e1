package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ScatterBoard/internal/importer"
	"github.com/piwi3910/ScatterBoard/internal/project"
)

// importCommand adds widgets or obstacles from a file to a stored fixture.
func (c *CLI) importCommand() *cobra.Command {
	var fixture string

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Add widgets (CSV, Excel) or obstacles (DXF) to a fixture",
		Long: `Add widgets (CSV, Excel) or obstacles (DXF) to a fixture.

CSV and Excel rows become extra widget requests, laid out after the fixture's
buttons and inputs. Closed shapes in a DXF drawing become obstacles. The
updated fixture is written to the fixture store.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(args[0], fixture)
		},
	}

	cmd.Flags().StringVar(&fixture, "fixture", "", "fixture to add to (required)")
	_ = cmd.MarkFlagRequired("fixture")

	return cmd
}

func (c *CLI) runImport(path, fixture string) error {
	store, err := c.loadStore()
	if err != nil {
		return err
	}
	spec, err := project.FindFixture(store, fixture)
	if err != nil {
		return err
	}

	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", ".tsv":
		result = importer.ImportCSV(path)
	case ".xlsx", ".xlsm":
		result = importer.ImportExcel(path)
	case ".dxf":
		result = importer.ImportDXF(path, spec.Viewport.Height)
	default:
		return fmt.Errorf("import %s: unsupported file type", path)
	}

	for _, w := range result.Warnings {
		printWarning("%s", w)
	}
	for _, e := range result.Errors {
		printError("%s", e)
	}
	if len(result.Requests) == 0 && len(result.Obstacles) == 0 {
		return fmt.Errorf("import %s: nothing imported", path)
	}

	spec.Extra = append(spec.Extra, result.Requests...)
	spec.Obstacles = append(spec.Obstacles, result.Obstacles...)
	if err := project.ValidateFixture(spec); err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}

	stored, err := project.LoadFixtures(c.fixturesPath)
	if err != nil {
		return err
	}
	stored.Add(spec)
	if err := project.SaveFixtures(c.fixturesPath, stored); err != nil {
		return fmt.Errorf("save fixtures: %w", err)
	}

	printSuccess("Imported %d widgets and %d obstacles into %s",
		len(result.Requests), len(result.Obstacles), StyleTitle.Render(spec.Name))
	printFile(c.fixturesPath)
	return nil
}
