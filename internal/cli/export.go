package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/ScatterBoard/internal/export"
	"github.com/piwi3910/ScatterBoard/internal/model"
)

// Export formats accepted by --format.
const (
	formatPDF    = "pdf"
	formatLabels = "labels"
	formatDXF    = "dxf"
	formatExcel  = "xlsx"
	formatJSON   = "json"
)

var exportFormats = []string{formatPDF, formatLabels, formatDXF, formatExcel, formatJSON}

// exportCommand lays a fixture out once and writes it in one or more formats.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		outDir  string
		formats string
		flags   settingsFlags
	)

	cmd := &cobra.Command{
		Use:   "export [fixture]",
		Short: "Write a layout as PDF, labels, DXF, Excel or JSON",
		Long: `Write a layout as PDF, labels, DXF, Excel or JSON.

All formats are written from the same layout, so the files agree with each
other. Files are named <fixture>-<seed>.<ext> inside the output directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := c.fixtureWithFlags(cmd, args[0], &flags)
			if err != nil {
				return err
			}
			return c.runExport(cmd.Context(), spec, outDir, parseFormats(formats))
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", ".", "output directory")
	cmd.Flags().StringVarP(&formats, "format", "f", formatPDF, "comma-separated formats: "+strings.Join(exportFormats, ", "))
	flags.register(cmd)

	return cmd
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatPDF}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func (c *CLI) runExport(ctx context.Context, spec model.FixtureSpec, outDir string, formats []string) error {
	for _, f := range formats {
		if !slices.Contains(exportFormats, f) {
			return fmt.Errorf("unknown format %q (want one of %s)", f, strings.Join(exportFormats, ", "))
		}
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	result := c.layoutFixture(spec)
	printLayoutSummary(spec.Name, result)

	for _, f := range formats {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := exportPath(outDir, spec.Name, result.Seed, f)
		if err := writeFormat(f, path, spec.Name, result); err != nil {
			return fmt.Errorf("export %s: %w", f, err)
		}
		printFile(path)
	}
	return nil
}

// exportPath returns the output file for a format.
func exportPath(dir, name string, seed uint64, format string) string {
	base := fmt.Sprintf("%s-%d", name, seed)
	switch format {
	case formatPDF:
		return filepath.Join(dir, base+".pdf")
	case formatLabels:
		return filepath.Join(dir, base+"-labels.pdf")
	case formatDXF:
		return filepath.Join(dir, base+".dxf")
	case formatExcel:
		return filepath.Join(dir, base+".xlsx")
	case formatJSON:
		return filepath.Join(dir, base+".json")
	}
	return ""
}

func writeFormat(format, path, title string, result model.LayoutResult) error {
	switch format {
	case formatPDF:
		return export.ExportPDF(path, title, result)
	case formatLabels:
		return export.ExportLabels(path, result)
	case formatDXF:
		return export.ExportDXF(path, result)
	case formatExcel:
		return export.ExportExcel(path, result)
	case formatJSON:
		return export.ExportJSON(path, result)
	}
	return fmt.Errorf("unknown format %q", format)
}
