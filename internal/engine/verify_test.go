package engine

import (
	"testing"

	"github.com/piwi3910/ScatterBoard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func widget(label string, r model.Rect, fallback bool) model.PlacedWidget {
	return model.PlacedWidget{Request: model.PlacementRequest{Label: label}, Rect: r, Fallback: fallback}
}

func TestCheckCollisions_Clean(t *testing.T) {
	result := model.LayoutResult{
		Bounds:   model.Bounds{Width: 500, Height: 500},
		Settings: model.DefaultSettings(),
		Widgets: []model.PlacedWidget{
			widget("A", model.Rect{X: 10, Y: 10, Width: 100, Height: 50}, false),
			widget("B", model.Rect{X: 120, Y: 10, Width: 100, Height: 50}, false),
		},
	}

	assert.Empty(t, CheckCollisions(result, 5))
	assert.Empty(t, CheckContainment(result))
}

func TestCheckCollisions_ReportsPairs(t *testing.T) {
	result := model.LayoutResult{
		Bounds:   model.Bounds{Width: 500, Height: 500},
		Settings: model.DefaultSettings(),
		Widgets: []model.PlacedWidget{
			widget("A", model.Rect{X: 10, Y: 10, Width: 100, Height: 50}, false),
			widget("B", model.Rect{X: 113, Y: 10, Width: 100, Height: 50}, true),
			widget("C", model.Rect{X: 300, Y: 300, Width: 50, Height: 50}, false),
		},
	}

	collisions := CheckCollisions(result, 5)

	require.Len(t, collisions, 1)
	c := collisions[0]
	assert.Equal(t, 0, c.A)
	assert.Equal(t, 1, c.B)
	assert.Equal(t, "B", c.LabelB)
	assert.InDelta(t, 3.0, c.Gap, 1e-9)
	assert.True(t, c.Fallback)

	warnings := FormatCollisionWarnings(collisions)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "grid fallback")
	assert.Contains(t, warnings[0], "Widget 1 (A)")
}

func TestCheckCollisions_Obstacles(t *testing.T) {
	result := model.LayoutResult{
		Bounds:    model.Bounds{Width: 500, Height: 500},
		Obstacles: []model.Rect{{X: 0, Y: 0, Width: 50, Height: 50}},
		Widgets: []model.PlacedWidget{
			widget("A", model.Rect{X: 40, Y: 40, Width: 20, Height: 20}, false),
		},
	}

	collisions := CheckCollisions(result, 0)

	require.Len(t, collisions, 1)
	assert.Equal(t, -1, collisions[0].B)
	assert.Equal(t, "obstacle 1", collisions[0].LabelB)
	assert.Negative(t, collisions[0].Gap)
}

func TestCheckCollisions_OwnCompanionIgnored(t *testing.T) {
	clear := model.Rect{X: 112, Y: 10, Width: 30, Height: 30}
	result := model.LayoutResult{
		Bounds: model.Bounds{Width: 500, Height: 500},
		Widgets: []model.PlacedWidget{
			{Request: model.PlacementRequest{Label: "In"}, Rect: model.Rect{X: 10, Y: 10, Width: 100, Height: 30}, Companion: &clear},
		},
	}

	assert.Empty(t, CheckCollisions(result, 5))
}

func TestCheckContainment(t *testing.T) {
	result := model.LayoutResult{
		Bounds:   model.Bounds{Width: 300, Height: 200},
		Settings: model.DefaultSettings(),
		Widgets: []model.PlacedWidget{
			widget("in", model.Rect{X: 10, Y: 10, Width: 50, Height: 50}, false),
			widget("out", model.Rect{X: 5, Y: 10, Width: 50, Height: 50}, false),
			widget("big", model.Rect{X: 10, Y: 10, Width: 500, Height: 50}, true),
		},
	}

	assert.Equal(t, []int{1, 2}, CheckContainment(result))
}

func TestSeparationMatchesOverlaps(t *testing.T) {
	a := model.Rect{X: 0, Y: 0, Width: 100, Height: 50}
	for _, bx := range []float64{90, 100, 104, 105, 106, 200} {
		b := model.Rect{X: bx, Y: 0, Width: 100, Height: 50}
		assert.Equal(t, Overlaps(a, b, 5), separation(a, b) <= 5, "b.x=%v", bx)
	}
}
