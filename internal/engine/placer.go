package engine

import (
	"math"
	"math/rand/v2"

	"github.com/piwi3910/ScatterBoard/internal/model"
)

// Source supplies uniformly distributed numbers in [0, 1).
// *rand.Rand satisfies it; tests inject fixed sequences.
type Source interface {
	Float64() float64
}

// newSource returns a PCG generator for the given seed.
func newSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// newSeed draws a non-zero seed, since zero means "pick one for me".
func newSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}

// Placer is the accumulator for one layout run. It owns the rectangles placed
// so far and the grid fallback counter, so independent runs never share state.
// A Placer is not safe for concurrent use.
type Placer struct {
	bounds    model.Bounds
	settings  model.LayoutSettings
	rng       Source
	placed    []model.Rect
	gridIndex int // Slots handed out by the grid fallback so far
	attempts  int
	fallbacks int
}

// NewPlacer creates an empty accumulator. A nil rng gets a freshly seeded generator.
func NewPlacer(bounds model.Bounds, settings model.LayoutSettings, rng Source) *Placer {
	if rng == nil {
		rng = newSource(newSeed())
	}
	return &Placer{
		bounds:   bounds,
		settings: settings,
		rng:      rng,
	}
}

// Reserve registers rectangles as occupied in a single step. Used for
// obstacles and for widgets that span more than one rectangle.
func (p *Placer) Reserve(rects ...model.Rect) {
	p.placed = append(p.placed, rects...)
}

// Placed returns a copy of every occupied rectangle in registration order.
func (p *Placer) Placed() []model.Rect {
	cp := make([]model.Rect, len(p.placed))
	copy(cp, p.placed)
	return cp
}

// Attempts returns the number of random candidates drawn so far.
func (p *Placer) Attempts() int { return p.attempts }

// Fallbacks returns the number of rectangles placed by the grid fallback.
func (p *Placer) Fallbacks() int { return p.fallbacks }

// Place finds a position for a w x h rectangle, registers it, and reports
// whether the grid fallback produced it. Placement never fails.
func (p *Placer) Place(w, h float64) (model.Rect, bool) {
	r, fallback := p.find(w, h)
	p.Reserve(r)
	return r, fallback
}

// PlaceRequest places a request and returns the positioned widget. A request
// with a companion is placed as one combined footprint; the widget and its
// companion are then registered together.
func (p *Placer) PlaceRequest(req model.PlacementRequest) model.PlacedWidget {
	if req.Companion == nil {
		r, fallback := p.Place(req.Width, req.Height)
		return model.PlacedWidget{Request: req, Rect: r, Fallback: fallback}
	}

	fw, fh := req.FootprintSize()
	fp, fallback := p.find(fw, fh)

	c := req.Companion
	body := model.Rect{
		X:      fp.X,
		Y:      fp.Y + (fp.Height-req.Height)/2,
		Width:  req.Width,
		Height: req.Height,
	}
	companion := model.Rect{
		X:      fp.X + req.Width + c.Gap,
		Y:      fp.Y + (fp.Height-c.Height)/2,
		Width:  c.Width,
		Height: c.Height,
	}
	p.Reserve(body, companion)

	return model.PlacedWidget{Request: req, Rect: body, Companion: &companion, Fallback: fallback}
}

// find runs the random search and, once the attempt budget is spent, the grid
// fallback. It does not register the result.
func (p *Placer) find(w, h float64) (model.Rect, bool) {
	w = math.Max(w, 0)
	h = math.Max(h, 0)

	pad := p.settings.EdgePadding
	xMin := p.bounds.X0 + pad
	yMin := p.bounds.Y0 + pad
	// Oversized requests collapse the range onto the boundary coordinate.
	xMax := math.Max(xMin, p.bounds.X0+p.bounds.Width-pad-w)
	yMax := math.Max(yMin, p.bounds.Y0+p.bounds.Height-pad-h)

	for i := 0; i < p.settings.Attempts(); i++ {
		p.attempts++
		candidate := model.Rect{
			X:      sample(p.rng, xMin, xMax),
			Y:      sample(p.rng, yMin, yMax),
			Width:  w,
			Height: h,
		}
		if IsValid(candidate, p.placed, p.bounds, p.settings) {
			return candidate, false
		}
	}

	p.fallbacks++
	return p.gridFallback(w, h), true
}

func sample(rng Source, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// gridFallback hands out the next deterministic grid slot. Plain slots are not
// checked against earlier random placements; StrictFallback scans forward for
// the first free slot and only uses the plain slot when none is free.
func (p *Placer) gridFallback(w, h float64) model.Rect {
	if p.settings.StrictFallback {
		if r, idx, ok := p.freeSlot(w, h); ok {
			p.gridIndex = idx + 1
			return r
		}
	}
	r := p.gridSlot(p.gridIndex, w, h)
	p.gridIndex++
	return r
}

// gridSlot returns the rectangle for slot index: row = index/cols, col = index%cols.
func (p *Placer) gridSlot(index int, w, h float64) model.Rect {
	cols := p.gridColumns(w)
	row := index / cols
	col := index % cols
	return model.Rect{
		X:      p.bounds.X0 + p.settings.EdgePadding + float64(col)*(w+p.settings.ColumnGap),
		Y:      p.bounds.Y0 + p.settings.EdgePadding + float64(row)*(h+p.settings.RowGap),
		Width:  w,
		Height: h,
	}
}

// gridColumns returns how many w-wide columns fit in the usable width, at least one.
func (p *Placer) gridColumns(w float64) int {
	step := w + p.settings.ColumnGap
	if step <= 0 {
		return 1
	}
	cols := int(math.Floor((p.bounds.Width - 2*p.settings.EdgePadding) / step))
	if cols < 1 {
		return 1
	}
	return cols
}

// gridRows returns how many h-high rows fit in the usable height, at least one.
func (p *Placer) gridRows(h float64) int {
	step := h + p.settings.RowGap
	if step <= 0 {
		return 1
	}
	rows := int(math.Floor((p.bounds.Height - 2*p.settings.EdgePadding + p.settings.RowGap) / step))
	if rows < 1 {
		return 1
	}
	return rows
}

// maxStrictScan bounds how many grid slots one strict fallback inspects.
// Tiny widgets with zero gaps can produce millions of slots.
const maxStrictScan = 4096

// freeSlot scans up to maxStrictScan of the remaining in-bounds grid slots for
// one that passes IsValid.
func (p *Placer) freeSlot(w, h float64) (model.Rect, int, bool) {
	last := min(p.gridColumns(w)*p.gridRows(h), p.gridIndex+maxStrictScan)
	for idx := p.gridIndex; idx < last; idx++ {
		r := p.gridSlot(idx, w, h)
		if IsValid(r, p.placed, p.bounds, p.settings) {
			return r, idx, true
		}
	}
	return model.Rect{}, 0, false
}
