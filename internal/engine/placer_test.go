package engine

import (
	"testing"

	"github.com/piwi3910/ScatterBoard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource returns the same values in a loop.
type fixedSource struct {
	vals []float64
	i    int
}

func (s *fixedSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func fallbackSettings() model.LayoutSettings {
	s := model.DefaultSettings()
	s.EdgePadding = 10
	s.ColumnGap = 10
	s.RowGap = 10
	s.MaxAttempts = 1
	return s
}

func TestPlace_SingleRequestAmpleBounds(t *testing.T) {
	bounds := model.Bounds{Width: 1000, Height: 1000}
	p := NewPlacer(bounds, fallbackSettings(), newSource(1))

	r, fallback := p.Place(140, 40)

	assert.False(t, fallback, "an empty canvas accepts the first candidate")
	assert.Equal(t, 1, p.Attempts())
	assert.GreaterOrEqual(t, r.X, 10.0)
	assert.GreaterOrEqual(t, r.Y, 10.0)
	assert.LessOrEqual(t, r.Right(), 990.0)
	assert.LessOrEqual(t, r.Bottom(), 990.0)
	assert.Equal(t, 140.0, r.Width)
	assert.Equal(t, 40.0, r.Height)
}

func TestPlace_SamplesFullRange(t *testing.T) {
	bounds := model.Bounds{Width: 300, Height: 200}

	low := NewPlacer(bounds, fallbackSettings(), &fixedSource{vals: []float64{0}})
	r, _ := low.Place(100, 40)
	assert.Equal(t, 10.0, r.X)
	assert.Equal(t, 10.0, r.Y)

	mid := NewPlacer(bounds, fallbackSettings(), &fixedSource{vals: []float64{0.5}})
	r, _ = mid.Place(100, 40)
	// x in [10, 190], y in [10, 150]
	assert.InDelta(t, 100.0, r.X, 0.001)
	assert.InDelta(t, 80.0, r.Y, 0.001)
}

func TestGridFallback_BoundaryScenario(t *testing.T) {
	bounds := model.Bounds{X0: 0, Y0: 0, Width: 300, Height: 200}
	p := NewPlacer(bounds, fallbackSettings(), newSource(7))
	// Occupy the whole canvas so every random candidate is rejected.
	p.Reserve(model.Rect{X: 0, Y: 0, Width: 300, Height: 200})

	var got []model.Rect
	for i := 0; i < 3; i++ {
		r, fallback := p.Place(150, 40)
		require.True(t, fallback, "placement %d should use the grid", i)
		got = append(got, r)
	}

	// cols = floor((300-20)/(150+10)) = 1
	assert.Equal(t, model.Rect{X: 10, Y: 10, Width: 150, Height: 40}, got[0])
	assert.Equal(t, model.Rect{X: 10, Y: 60, Width: 150, Height: 40}, got[1])
	assert.Equal(t, model.Rect{X: 10, Y: 110, Width: 150, Height: 40}, got[2])
	assert.Equal(t, 3, p.Fallbacks())
	assert.Equal(t, 3, p.Attempts())
}

func TestGridFallback_RowsAndColumns(t *testing.T) {
	bounds := model.Bounds{Width: 1000, Height: 2000}
	p := NewPlacer(bounds, fallbackSettings(), newSource(3))
	p.Reserve(model.Rect{X: 0, Y: 0, Width: 1000, Height: 2000})

	// cols = floor((1000-20)/(100+10)) = 8
	for i := 0; i < 10; i++ {
		r, fallback := p.Place(100, 40)
		require.True(t, fallback)
		row := i / 8
		col := i % 8
		assert.Equal(t, 10+float64(col)*110, r.X, "index %d column", i)
		assert.Equal(t, 10+float64(row)*50, r.Y, "index %d row", i)
	}
}

func TestGridFallback_IndexContinuesAcrossSizes(t *testing.T) {
	bounds := model.Bounds{Width: 300, Height: 400}
	p := NewPlacer(bounds, fallbackSettings(), newSource(3))
	p.Reserve(model.Rect{X: 0, Y: 0, Width: 300, Height: 400})

	p.Place(150, 40)
	r, _ := p.Place(150, 60)

	// Second fallback uses index 1 with its own height: y = 10 + 1*(60+10)
	assert.Equal(t, 80.0, r.Y)
}

func TestGridFallback_PlainIgnoresRandomPlacements(t *testing.T) {
	bounds := model.Bounds{Width: 300, Height: 200}
	p := NewPlacer(bounds, fallbackSettings(), &fixedSource{vals: []float64{0}})
	occupied := model.Rect{X: 10, Y: 10, Width: 100, Height: 40}
	p.Reserve(occupied)

	r, fallback := p.Place(100, 40)

	require.True(t, fallback)
	assert.Equal(t, occupied, r, "plain fallback does not re-check earlier placements")
}

func TestGridFallback_StrictSkipsOccupiedSlots(t *testing.T) {
	bounds := model.Bounds{Width: 300, Height: 200}
	s := fallbackSettings()
	s.StrictFallback = true
	p := NewPlacer(bounds, s, &fixedSource{vals: []float64{0}})
	p.Reserve(model.Rect{X: 10, Y: 10, Width: 100, Height: 40})

	r, fallback := p.Place(100, 40)

	require.True(t, fallback)
	// cols = floor(280/110) = 2, slot 0 is taken so slot 1 is used
	assert.Equal(t, model.Rect{X: 120, Y: 10, Width: 100, Height: 40}, r)

	r, _ = p.Place(100, 40)
	assert.Equal(t, model.Rect{X: 10, Y: 60, Width: 100, Height: 40}, r, "strict scan continues after the last slot used")
}

func TestGridFallback_StrictWithoutFreeSlotStillPlaces(t *testing.T) {
	bounds := model.Bounds{Width: 300, Height: 200}
	s := fallbackSettings()
	s.StrictFallback = true
	p := NewPlacer(bounds, s, newSource(5))
	p.Reserve(model.Rect{X: 0, Y: 0, Width: 300, Height: 200})

	r, fallback := p.Place(150, 40)

	require.True(t, fallback)
	assert.Equal(t, model.Rect{X: 10, Y: 10, Width: 150, Height: 40}, r)
}

func tinySlotSettings() model.LayoutSettings {
	s := model.DefaultSettings()
	s.EdgePadding = 0
	s.Clearance = 0
	s.ColumnGap = 0
	s.RowGap = 0
	s.MaxAttempts = 1
	s.StrictFallback = true
	return s
}

func TestGridFallback_StrictScanFindsSlotWithinLimit(t *testing.T) {
	// 1x1 widgets give a 1000x1000 slot grid; rows 0 and 1 touch the obstacle.
	bounds := model.Bounds{Width: 1000, Height: 1000}
	p := NewPlacer(bounds, tinySlotSettings(), &fixedSource{vals: []float64{0}})
	p.Reserve(model.Rect{X: 0, Y: 0, Width: 1000, Height: 1})

	r, fallback := p.Place(1, 1)

	require.True(t, fallback)
	assert.Equal(t, model.Rect{X: 0, Y: 2, Width: 1, Height: 1}, r)
}

func TestGridFallback_StrictScanIsBounded(t *testing.T) {
	// The first free slot is at index 11000, past the scan limit.
	bounds := model.Bounds{Width: 1000, Height: 1000}
	p := NewPlacer(bounds, tinySlotSettings(), &fixedSource{vals: []float64{0}})
	p.Reserve(model.Rect{X: 0, Y: 0, Width: 1000, Height: 10})
	require.Less(t, maxStrictScan, 11000)

	r, fallback := p.Place(1, 1)

	require.True(t, fallback)
	assert.Equal(t, model.Rect{X: 0, Y: 0, Width: 1, Height: 1}, r, "plain slot used when the scan window holds no free slot")

	r, _ = p.Place(1, 1)
	assert.Equal(t, model.Rect{X: 1, Y: 0, Width: 1, Height: 1}, r, "grid index still advances")
}

func TestPlace_OversizedRequestIsClamped(t *testing.T) {
	bounds := model.Bounds{Width: 300, Height: 200}
	p := NewPlacer(bounds, fallbackSettings(), newSource(11))

	r, fallback := p.Place(500, 300)

	assert.True(t, fallback, "a rect larger than the bounds can never be valid")
	assert.Equal(t, 10.0, r.X)
	assert.Equal(t, 10.0, r.Y)
	assert.Equal(t, 500.0, r.Width)
}

func TestPlace_NegativeSizeClampedToZero(t *testing.T) {
	bounds := model.Bounds{Width: 300, Height: 200}
	p := NewPlacer(bounds, fallbackSettings(), newSource(2))

	r, _ := p.Place(-5, -5)

	assert.Equal(t, 0.0, r.Width)
	assert.Equal(t, 0.0, r.Height)
}

func TestPlaceRequest_CompanionRegisteredTogether(t *testing.T) {
	bounds := model.Bounds{Width: 800, Height: 600}
	p := NewPlacer(bounds, model.DefaultSettings(), newSource(9))

	req := model.NewRequest(model.KindInput, "Email", 200, 32)
	req.Companion = &model.CompanionRequest{Kind: model.KindClear, Label: "Clear", Width: 32, Height: 24, Gap: 10}

	w := p.PlaceRequest(req)

	require.NotNil(t, w.Companion)
	assert.Equal(t, w.Rect.Right()+10, w.Companion.X)
	assert.Equal(t, w.Rect.Y+4, w.Companion.Y, "companion is centered on the footprint")
	assert.Equal(t, req.ID, w.Request.ID)

	placed := p.Placed()
	require.Len(t, placed, 2)
	assert.Equal(t, w.Rect, placed[0])
	assert.Equal(t, *w.Companion, placed[1])
}

func TestPlaceRequest_LaterPlacementsAvoidCompanion(t *testing.T) {
	bounds := model.Bounds{Width: 800, Height: 600}
	settings := model.DefaultSettings()
	p := NewPlacer(bounds, settings, newSource(21))

	req := model.NewRequest(model.KindInput, "Search", 200, 32)
	req.Companion = &model.CompanionRequest{Kind: model.KindClear, Width: 32, Height: 32, Gap: 10}
	w := p.PlaceRequest(req)

	for i := 0; i < 30; i++ {
		r, fallback := p.Place(60, 30)
		if fallback {
			continue
		}
		assert.False(t, Overlaps(r, *w.Companion, settings.Clearance), "placement %d overlaps the clear control", i)
		assert.False(t, Overlaps(r, w.Rect, settings.Clearance), "placement %d overlaps the input", i)
	}
}

func TestPlacer_PlacedReturnsCopy(t *testing.T) {
	p := NewPlacer(model.Bounds{Width: 100, Height: 100}, model.DefaultSettings(), nil)
	p.Reserve(model.Rect{X: 1, Y: 1, Width: 1, Height: 1})

	got := p.Placed()
	got[0].X = 50

	assert.Equal(t, 1.0, p.Placed()[0].X)
}
