package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/piwi3910/ScatterBoard/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	layoutSheet  = "Layout"
	summarySheet = "Summary"
)

var layoutHeaders = []string{
	"ID", "Kind", "Label", "X", "Y", "Width", "Height",
	"Companion X", "Companion Y", "Companion Width", "Companion Height",
	"Fallback", "Payload",
}

// ExportExcel writes the layout as a coordinate table with one row per
// widget, plus a summary sheet with the run statistics.
func ExportExcel(path string, result model.LayoutResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", layoutSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, h := range layoutHeaders {
		if err := setCell(f, layoutSheet, col+1, 1, h); err != nil {
			return err
		}
	}

	for i, w := range result.Widgets {
		row := i + 2
		values := []interface{}{
			w.Request.ID, string(w.Request.Kind), w.Request.Label,
			w.Rect.X, w.Rect.Y, w.Rect.Width, w.Rect.Height,
			"", "", "", "",
			w.Fallback, formatPayload(w.Request.Payload),
		}
		if c := w.Companion; c != nil {
			values[7], values[8], values[9], values[10] = c.X, c.Y, c.Width, c.Height
		}
		for col, v := range values {
			if err := setCell(f, layoutSheet, col+1, row, v); err != nil {
				return err
			}
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	summary := [][2]interface{}{
		{"Seed", fmt.Sprintf("%d", result.Seed)},
		{"Bounds", fmt.Sprintf("%.0f,%.0f %.0fx%.0f", result.Bounds.X0, result.Bounds.Y0, result.Bounds.Width, result.Bounds.Height)},
		{"Widgets", len(result.Widgets)},
		{"Attempts", result.Attempts},
		{"Fallbacks", result.Fallbacks},
		{"Coverage %", result.Coverage()},
		{"Edge Padding", result.Settings.EdgePadding},
		{"Clearance", result.Settings.Clearance},
		{"Max Attempts", result.Settings.Attempts()},
		{"Strict Fallback", result.Settings.StrictFallback},
	}
	for i, kv := range summary {
		if err := setCell(f, summarySheet, 1, i+1, kv[0]); err != nil {
			return err
		}
		if err := setCell(f, summarySheet, 2, i+1, kv[1]); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(layoutSheet, "C", "C", 24); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	return f.SaveAs(path)
}

func setCell(f *excelize.File, sheet string, col, row int, v interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// formatPayload renders a payload as sorted key=value pairs.
func formatPayload(p map[string]string) string {
	if len(p) == 0 {
		return ""
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + p[k]
	}
	return strings.Join(parts, ";")
}
