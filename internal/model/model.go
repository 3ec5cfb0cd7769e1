package model

import (
	"math"

	"github.com/google/uuid"
)

// WidgetKind identifies what a placed rectangle represents on a fixture page.
type WidgetKind string

const (
	KindButton WidgetKind = "button"
	KindInput  WidgetKind = "input"
	KindClear  WidgetKind = "clear" // Clear control attached to an input
)

func (k WidgetKind) String() string {
	switch k {
	case KindInput:
		return "Input"
	case KindClear:
		return "Clear"
	default:
		return "Button"
	}
}

// ParseWidgetKind converts a free-form string into a WidgetKind.
// The boolean reports whether the string was recognized.
func ParseWidgetKind(s string) (WidgetKind, bool) {
	switch s {
	case "button", "btn", "b", "":
		return KindButton, true
	case "input", "field", "text", "i":
		return KindInput, true
	case "clear", "x":
		return KindClear, true
	default:
		return KindButton, false
	}
}

// Rect is an axis-aligned rectangle in canvas units.
type Rect struct {
	X      float64 `json:"x" yaml:"x" toml:"x"`
	Y      float64 `json:"y" yaml:"y" toml:"y"`
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Area returns width times height.
func (r Rect) Area() float64 { return r.Width * r.Height }

// ContainsPoint reports whether (x, y) lies inside the rectangle, edges included.
func (r Rect) ContainsPoint(x, y float64) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	x0 := math.Min(r.X, o.X)
	y0 := math.Min(r.Y, o.Y)
	x1 := math.Max(r.Right(), o.Right())
	y1 := math.Max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Bounds is the region widgets are placed in.
type Bounds struct {
	X0     float64 `json:"x0"`
	Y0     float64 `json:"y0"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns the bounds area.
func (b Bounds) Area() float64 { return b.Width * b.Height }

// Rect returns the bounds as a Rect.
func (b Bounds) Rect() Rect {
	return Rect{X: b.X0, Y: b.Y0, Width: b.Width, Height: b.Height}
}

// Viewport describes the hosting window and the chrome reserved above and
// below the canvas.
type Viewport struct {
	Width        float64 `json:"width" yaml:"width" toml:"width"`
	Height       float64 `json:"height" yaml:"height" toml:"height"`
	HeaderHeight float64 `json:"header_height" yaml:"header_height" toml:"header_height"`
	FooterHeight float64 `json:"footer_height" yaml:"footer_height" toml:"footer_height"`
}

// Bounds returns the placement region left after removing header and footer.
func (v Viewport) Bounds() Bounds {
	h := v.Height - v.HeaderHeight - v.FooterHeight
	if h < 0 {
		h = 0
	}
	w := v.Width
	if w < 0 {
		w = 0
	}
	return Bounds{X0: 0, Y0: v.HeaderHeight, Width: w, Height: h}
}

// CompanionRequest describes a control placed immediately to the right of its
// owning request, such as the clear button next to an input.
type CompanionRequest struct {
	Kind   WidgetKind `json:"kind" yaml:"kind" toml:"kind"`
	Label  string     `json:"label" yaml:"label" toml:"label"`
	Width  float64    `json:"width" yaml:"width" toml:"width"`
	Height float64    `json:"height" yaml:"height" toml:"height"`
	Gap    float64    `json:"gap" yaml:"gap" toml:"gap"` // Horizontal distance to the owning widget
}

// PlacementRequest is a caller's ask for one rectangle. Payload is carried
// through the engine untouched.
type PlacementRequest struct {
	ID        string            `json:"id" yaml:"id" toml:"id"`
	Kind      WidgetKind        `json:"kind" yaml:"kind" toml:"kind"`
	Label     string            `json:"label" yaml:"label" toml:"label"`
	Color     string            `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Width     float64           `json:"width" yaml:"width" toml:"width"`
	Height    float64           `json:"height" yaml:"height" toml:"height"`
	Payload   map[string]string `json:"payload,omitempty" yaml:"payload,omitempty" toml:"payload,omitempty"`
	Companion *CompanionRequest `json:"companion,omitempty" yaml:"companion,omitempty" toml:"companion,omitempty"`
}

func NewRequest(kind WidgetKind, label string, w, h float64) PlacementRequest {
	return PlacementRequest{
		ID:     uuid.New().String()[:8],
		Kind:   kind,
		Label:  label,
		Width:  w,
		Height: h,
	}
}

// FootprintSize returns the size the request occupies including its companion.
func (r PlacementRequest) FootprintSize() (w, h float64) {
	if r.Companion == nil {
		return r.Width, r.Height
	}
	return r.Width + r.Companion.Gap + r.Companion.Width, math.Max(r.Height, r.Companion.Height)
}

// PlacedWidget is a request merged with its final position.
type PlacedWidget struct {
	Request   PlacementRequest `json:"request"`
	Rect      Rect             `json:"rect"`
	Companion *Rect            `json:"companion,omitempty"`
	Fallback  bool             `json:"fallback"` // Placed by the grid fallback
}

// Footprint returns the rectangle covering the widget and its companion.
func (p PlacedWidget) Footprint() Rect {
	if p.Companion == nil {
		return p.Rect
	}
	return p.Rect.Union(*p.Companion)
}

// LayoutSettings holds the layout constants. All have defaults but may be
// overridden per fixture or per call.
type LayoutSettings struct {
	EdgePadding    float64 `json:"edge_padding" yaml:"edge_padding" toml:"edge_padding"`          // Clearance to the bounds edges
	Clearance      float64 `json:"clearance" yaml:"clearance" toml:"clearance"`                   // Padding used by the overlap test
	ColumnGap      float64 `json:"column_gap" yaml:"column_gap" toml:"column_gap"`                // Grid fallback column spacing
	RowGap         float64 `json:"row_gap" yaml:"row_gap" toml:"row_gap"`                         // Grid fallback row spacing
	MaxAttempts    int     `json:"max_attempts" yaml:"max_attempts" toml:"max_attempts"`          // Random attempts per rectangle
	StrictFallback bool    `json:"strict_fallback" yaml:"strict_fallback" toml:"strict_fallback"` // Grid fallback skips occupied slots
	Seed           uint64  `json:"seed" yaml:"seed" toml:"seed"`                                  // 0 = new random seed per layout
}

const (
	DefaultEdgePadding = 10.0
	DefaultClearance   = 5.0
	DefaultColumnGap   = 10.0
	DefaultRowGap      = 10.0
	DefaultMaxAttempts = 100
)

func DefaultSettings() LayoutSettings {
	return LayoutSettings{
		EdgePadding:    DefaultEdgePadding,
		Clearance:      DefaultClearance,
		ColumnGap:      DefaultColumnGap,
		RowGap:         DefaultRowGap,
		MaxAttempts:    DefaultMaxAttempts,
		StrictFallback: false,
		Seed:           0,
	}
}

// Attempts returns MaxAttempts, or the default when it is not positive.
func (s LayoutSettings) Attempts() int {
	if s.MaxAttempts < 1 {
		return DefaultMaxAttempts
	}
	return s.MaxAttempts
}

// LayoutResult is the complete output of one layout run.
type LayoutResult struct {
	Bounds    Bounds         `json:"bounds"`
	Settings  LayoutSettings `json:"settings"`
	Seed      uint64         `json:"seed"`
	Obstacles []Rect         `json:"obstacles,omitempty"`
	Widgets   []PlacedWidget `json:"widgets"`
	Attempts  int            `json:"attempts"`  // Random candidates drawn in total
	Fallbacks int            `json:"fallbacks"` // Rectangles placed by the grid fallback
}

// Rects returns every rectangle occupied by widgets, companions included.
func (r LayoutResult) Rects() []Rect {
	rects := make([]Rect, 0, len(r.Widgets))
	for _, w := range r.Widgets {
		rects = append(rects, w.Rect)
		if w.Companion != nil {
			rects = append(rects, *w.Companion)
		}
	}
	return rects
}

// UsedArea returns the total area covered by widgets and companions.
func (r LayoutResult) UsedArea() float64 {
	var total float64
	for _, rect := range r.Rects() {
		total += rect.Area()
	}
	return total
}

// Coverage returns the used area as a percentage of the bounds area.
func (r LayoutResult) Coverage() float64 {
	ta := r.Bounds.Area()
	if ta == 0 {
		return 0
	}
	return (r.UsedArea() / ta) * 100.0
}

// FindWidget returns the placed widget with the given request ID, or nil.
func (r LayoutResult) FindWidget(id string) *PlacedWidget {
	for i := range r.Widgets {
		if r.Widgets[i].Request.ID == id {
			return &r.Widgets[i]
		}
	}
	return nil
}
