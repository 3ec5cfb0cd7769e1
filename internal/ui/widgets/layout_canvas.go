package widgets

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/ScatterBoard/internal/engine"
	"github.com/piwi3910/ScatterBoard/internal/model"
)

// Widget colors used when a request has no usable color of its own.
var widgetColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 200},  // green
	{R: 33, G: 150, B: 243, A: 200}, // blue
	{R: 255, G: 152, B: 0, A: 200},  // orange
	{R: 156, G: 39, B: 176, A: 200}, // purple
	{R: 0, G: 188, B: 212, A: 200},  // cyan
	{R: 244, G: 67, B: 54, A: 200},  // red
	{R: 255, G: 235, B: 59, A: 200}, // yellow
	{R: 121, G: 85, B: 72, A: 200},  // brown
}

var (
	surfaceColor   = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
	marginColor    = color.NRGBA{R: 255, G: 193, B: 7, A: 40}
	obstacleColor  = color.NRGBA{R: 120, G: 120, B: 120, A: 160}
	companionColor = color.NRGBA{R: 158, G: 158, B: 158, A: 220}
	fallbackStroke = color.NRGBA{R: 211, G: 47, B: 47, A: 255}
	selectedStroke = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	outlineColor   = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
)

// hexColor parses "#rrggbb" into an NRGBA with the widget alpha.
func hexColor(s string) (color.NRGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 200}, true
}

func widgetColor(w model.PlacedWidget, i int) color.NRGBA {
	if c, ok := hexColor(w.Request.Color); ok {
		return c
	}
	return widgetColors[i%len(widgetColors)]
}

// LayoutCanvas renders a layout result scaled to fit and hit-tests taps
// against it.
type LayoutCanvas struct {
	widget.BaseWidget
	result    model.LayoutResult
	maxWidth  float32
	maxHeight float32
	selected  int

	// OnTapped is called for every tap with the point in layout coordinates.
	OnTapped func(x, y float64, hit engine.Hit, ok bool)
}

func NewLayoutCanvas(result model.LayoutResult, maxW, maxH float32) *LayoutCanvas {
	lc := &LayoutCanvas{
		result:    result,
		maxWidth:  maxW,
		maxHeight: maxH,
		selected:  -1,
	}
	lc.ExtendBaseWidget(lc)
	return lc
}

// SetResult replaces the displayed layout and clears the selection.
func (lc *LayoutCanvas) SetResult(result model.LayoutResult) {
	lc.result = result
	lc.selected = -1
	lc.Refresh()
}

// Result returns the displayed layout.
func (lc *LayoutCanvas) Result() model.LayoutResult { return lc.result }

// Selected returns the index of the last tapped widget, or -1.
func (lc *LayoutCanvas) Selected() int { return lc.selected }

// Scale returns the factor from layout units to canvas units.
func (lc *LayoutCanvas) Scale() float32 {
	b := lc.result.Bounds
	if b.Width <= 0 || b.Height <= 0 {
		return 1
	}
	scale := lc.maxWidth / float32(b.Width)
	if s := lc.maxHeight / float32(b.Height); s < scale {
		scale = s
	}
	return scale
}

// ToLayout converts a canvas position into layout coordinates.
func (lc *LayoutCanvas) ToLayout(pos fyne.Position) (x, y float64) {
	scale := lc.Scale()
	b := lc.result.Bounds
	return b.X0 + float64(pos.X/scale), b.Y0 + float64(pos.Y/scale)
}

// Tapped implements fyne.Tappable.
func (lc *LayoutCanvas) Tapped(ev *fyne.PointEvent) {
	x, y := lc.ToLayout(ev.Position)
	hit, ok := engine.HitTest(lc.result.Widgets, x, y)
	if ok {
		lc.selected = hit.Index
	} else {
		lc.selected = -1
	}
	lc.Refresh()
	if lc.OnTapped != nil {
		lc.OnTapped(x, y, hit, ok)
	}
}

func (lc *LayoutCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newLayoutCanvasRenderer(lc)
}

type layoutCanvasRenderer struct {
	lc      *LayoutCanvas
	objects []fyne.CanvasObject
}

func newLayoutCanvasRenderer(lc *LayoutCanvas) *layoutCanvasRenderer {
	r := &layoutCanvasRenderer{lc: lc}
	r.rebuild()
	return r
}

// place maps a layout rect to canvas position and size.
func (r *layoutCanvasRenderer) place(rect model.Rect, scale float32) (fyne.Position, fyne.Size) {
	b := r.lc.result.Bounds
	return fyne.NewPos(float32(rect.X-b.X0)*scale, float32(rect.Y-b.Y0)*scale),
		fyne.NewSize(float32(rect.Width)*scale, float32(rect.Height)*scale)
}

func (r *layoutCanvasRenderer) addRect(rect model.Rect, fill, stroke color.Color, strokeWidth, scale float32) {
	pos, size := r.place(rect, scale)
	cr := canvas.NewRectangle(fill)
	cr.StrokeColor = stroke
	cr.StrokeWidth = strokeWidth
	cr.Resize(size)
	cr.Move(pos)
	r.objects = append(r.objects, cr)
}

func (r *layoutCanvasRenderer) rebuild() {
	r.objects = nil

	result := r.lc.result
	b := result.Bounds
	if b.Width <= 0 || b.Height <= 0 {
		return
	}
	scale := r.lc.Scale()
	canvasW := float32(b.Width) * scale
	canvasH := float32(b.Height) * scale

	bg := canvas.NewRectangle(surfaceColor)
	bg.StrokeColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	bg.StrokeWidth = 2
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, bg)

	// Edge padding band, drawn as four strips.
	pad := result.Settings.EdgePadding
	if pad > 0 {
		for _, strip := range []model.Rect{
			{X: b.X0, Y: b.Y0, Width: b.Width, Height: pad},
			{X: b.X0, Y: b.Y0 + b.Height - pad, Width: b.Width, Height: pad},
			{X: b.X0, Y: b.Y0, Width: pad, Height: b.Height},
			{X: b.X0 + b.Width - pad, Y: b.Y0, Width: pad, Height: b.Height},
		} {
			r.addRect(strip, marginColor, color.Transparent, 0, scale)
		}
	}

	for _, o := range result.Obstacles {
		r.addRect(o, obstacleColor, color.NRGBA{R: 60, G: 60, B: 60, A: 255}, 1, scale)
	}

	for i, w := range result.Widgets {
		stroke, width := color.Color(outlineColor), float32(1)
		if w.Fallback {
			stroke, width = fallbackStroke, 2
		}
		if i == r.lc.selected {
			stroke, width = selectedStroke, 3
		}
		r.addRect(w.Rect, widgetColor(w, i), stroke, width, scale)

		if w.Companion != nil {
			r.addRect(*w.Companion, companionColor, stroke, width, scale)
		}

		pos, size := r.place(w.Rect, scale)
		if size.Width > 30 && size.Height > 12 {
			label := canvas.NewText(w.Request.Label, color.Black)
			label.TextSize = 10
			label.Move(fyne.NewPos(pos.X+3, pos.Y+2))
			r.objects = append(r.objects, label)
		}
	}
}

func (r *layoutCanvasRenderer) Layout(size fyne.Size)        {}
func (r *layoutCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *layoutCanvasRenderer) Destroy()                     {}
func (r *layoutCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *layoutCanvasRenderer) MinSize() fyne.Size {
	b := r.lc.result.Bounds
	scale := r.lc.Scale()
	return fyne.NewSize(float32(b.Width)*scale, float32(b.Height)*scale)
}

// RenderLayoutResult creates the preview panel for a layout: a header line,
// the canvas and the collision summary.
func RenderLayoutResult(result *model.LayoutResult, onTapped func(x, y float64, hit engine.Hit, ok bool)) (fyne.CanvasObject, *LayoutCanvas) {
	if result == nil || len(result.Widgets) == 0 {
		return widget.NewLabel("No layout yet. Pick a fixture, then click Reshuffle."), nil
	}

	header := widget.NewLabel(fmt.Sprintf(
		"Seed %d: %d widgets in %.0f x %.0f, %d attempts, %d fallbacks, %.1f%% coverage",
		result.Seed, len(result.Widgets), result.Bounds.Width, result.Bounds.Height,
		result.Attempts, result.Fallbacks, result.Coverage(),
	))
	header.TextStyle = fyne.TextStyle{Bold: true}

	lc := NewLayoutCanvas(*result, 900, 560)
	lc.OnTapped = onTapped

	items := []fyne.CanvasObject{header, lc, widget.NewSeparator()}

	collisions := engine.CheckCollisions(*result, result.Settings.Clearance)
	if len(collisions) > 0 {
		warning := widget.NewLabel(fmt.Sprintf(
			"WARNING: %d collisions (grid fallback slots are not checked against random placements)",
			len(collisions),
		))
		warning.Importance = widget.DangerImportance
		items = append(items, warning)
		for _, line := range engine.FormatCollisionWarnings(collisions) {
			items = append(items, widget.NewLabel("  "+line))
		}
	} else {
		ok := widget.NewLabel("No collisions.")
		ok.Importance = widget.SuccessImportance
		items = append(items, ok)
	}

	return container.NewVScroll(container.NewVBox(items...)), lc
}
