// Package export writes layout results to PDF diagrams, QR label sheets,
// DXF drawings, Excel coordinate tables, and the JSON layout document.
package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/ScatterBoard/internal/engine"
	"github.com/piwi3910/ScatterBoard/internal/model"
)

// widgetColor represents an RGB color for a placed widget.
type widgetColor struct {
	R, G, B int
}

// paletteColors mirrors model.DefaultColors for widgets without a valid color.
var paletteColors = []widgetColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// parseHexColor parses "#rrggbb" or "#rgb".
func parseHexColor(s string) (widgetColor, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return widgetColor{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return widgetColor{}, false
	}
	return widgetColor{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, true
}

// colorFor returns the widget's own color, or the palette color for index i.
func colorFor(w model.PlacedWidget, i int) widgetColor {
	if c, ok := parseHexColor(w.Request.Color); ok {
		return c
	}
	return paletteColors[i%len(paletteColors)]
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document with one layout diagram per result,
// followed by a summary page. Several results are typically the same fixture
// laid out with different seeds.
func ExportPDF(path string, title string, results ...model.LayoutResult) error {
	if len(results) == 0 {
		return fmt.Errorf("no layouts to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, result := range results {
		pdf.AddPage()
		renderLayoutPage(pdf, title, result, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, title, results)

	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws a single layout on the current PDF page.
func renderLayoutPage(pdf *fpdf.Fpdf, title string, result model.LayoutResult, layoutNum int) {
	b := result.Bounds

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	heading := fmt.Sprintf("%s - Layout %d (%.0f x %.0f px, seed %d)", title, layoutNum, b.Width, b.Height, result.Seed)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, heading, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Widgets: %d | Attempts: %d | Grid fallbacks: %d | Coverage: %.1f%%",
		len(result.Widgets), result.Attempts, result.Fallbacks, result.Coverage())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	if b.Width <= 0 || b.Height <= 0 {
		return
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scale := math.Min(drawWidth/b.Width, drawHeight/b.Height)
	canvasW := b.Width * scale
	canvasH := b.Height * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop
	// Maps canvas coordinates onto the page.
	toPage := func(r model.Rect) (float64, float64, float64, float64) {
		return offsetX + (r.X-b.X0)*scale, offsetY + (r.Y-b.Y0)*scale, r.Width * scale, r.Height * scale
	}

	// Canvas background
	pdf.SetFillColor(245, 245, 245)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Edge padding margin
	pad := result.Settings.EdgePadding * scale
	if pad > 0 && canvasW > 2*pad && canvasH > 2*pad {
		pdf.SetDrawColor(160, 160, 160)
		pdf.SetLineWidth(0.15)
		pdf.SetDashPattern([]float64{1, 1}, 0)
		pdf.Rect(offsetX+pad, offsetY+pad, canvasW-2*pad, canvasH-2*pad, "D")
		pdf.SetDashPattern([]float64{}, 0)
	}

	for _, o := range result.Obstacles {
		ox, oy, ow, oh := toPage(o)
		pdf.SetFillColor(255, 200, 200)
		pdf.SetDrawColor(200, 0, 0)
		pdf.SetLineWidth(0.3)
		pdf.Rect(ox, oy, ow, oh, "FD")
		drawHatchPattern(pdf, ox, oy, ow, oh)
	}

	for i, w := range result.Widgets {
		col := colorFor(w, i)
		px, py, pw, ph := toPage(w.Rect)

		pdf.SetFillColor(col.R, col.G, col.B)
		if w.Fallback {
			pdf.SetDrawColor(200, 0, 0)
			pdf.SetLineWidth(0.6)
		} else {
			pdf.SetDrawColor(30, 30, 30)
			pdf.SetLineWidth(0.3)
		}
		pdf.Rect(px, py, pw, ph, "FD")

		if w.Companion != nil {
			cx, cy, cw, ch := toPage(*w.Companion)
			pdf.SetFillColor(200, 200, 200)
			pdf.SetDrawColor(30, 30, 30)
			pdf.SetLineWidth(0.3)
			pdf.Rect(cx, cy, cw, ch, "FD")
			if cw > 3 && ch > 3 {
				pdf.Line(cx+cw*0.3, cy+ch*0.3, cx+cw*0.7, cy+ch*0.7)
				pdf.Line(cx+cw*0.7, cy+ch*0.3, cx+cw*0.3, cy+ch*0.7)
			}
		}

		// Label only if the rectangle is large enough
		if pw > 10 && ph > 4 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)
			label := w.Request.Label
			labelW := pdf.GetStringWidth(label)
			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-2)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, b, offsetX, offsetY, canvasW, canvasH)
	drawWidgetLegend(pdf, result, offsetY+canvasH+5)
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark obstacles.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	for d := spacing; d < w+h; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)
		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations adds width and height labels outside the canvas rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, b model.Bounds, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f px", b.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f px", b.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawWidgetLegend renders a compact legend of placed widgets below the canvas.
func drawWidgetLegend(pdf *fpdf.Fpdf, result model.LayoutResult, startY float64) {
	if len(result.Widgets) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Widgets placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, w := range result.Widgets {
		if startY > pageHeight-marginBottom {
			break
		}
		col := colorFor(w, i)
		label := fmt.Sprintf("%s @ (%.0f, %.0f)", w.Request.Label, w.Rect.X, w.Rect.Y)
		if w.Fallback {
			label += " G"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with per-layout statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, title string, results []model.LayoutResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, title+" - Layout Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	colWidths := []float64{20, 45, 30, 35, 35, 35, 35}
	headers := []string{"Layout", "Seed", "Widgets", "Attempts", "Fallbacks", "Coverage", "Collisions"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, r := range results {
		if y > pageHeight-marginBottom-20 {
			break
		}
		xPos = marginLeft
		rowData := []string{
			strconv.Itoa(i + 1),
			strconv.FormatUint(r.Seed, 10),
			strconv.Itoa(len(r.Widgets)),
			strconv.Itoa(r.Attempts),
			strconv.Itoa(r.Fallbacks),
			fmt.Sprintf("%.1f%%", r.Coverage()),
			strconv.Itoa(len(engine.CheckCollisions(r, r.Settings.Clearance))),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Layout settings of the first result; all pages share them in practice.
	s := results[0].Settings
	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Layout Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Edge Padding", fmt.Sprintf("%.0f px", s.EdgePadding)},
		{"Clearance", fmt.Sprintf("%.0f px", s.Clearance)},
		{"Grid Gaps", fmt.Sprintf("%.0f / %.0f px", s.ColumnGap, s.RowGap)},
		{"Max Attempts", strconv.Itoa(s.Attempts())},
		{"Strict Fallback", strconv.FormatBool(s.StrictFallback)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by ScatterBoard - randomized test fixture layouts", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 20:
		return 8
	case minDim > 8:
		return 7
	default:
		return 6
	}
}
