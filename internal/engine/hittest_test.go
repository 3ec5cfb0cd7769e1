package engine

import (
	"testing"

	"github.com/piwi3910/ScatterBoard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHitTest(t *testing.T) {
	clear := model.Rect{X: 220, Y: 10, Width: 30, Height: 30}
	widgets := []model.PlacedWidget{
		{Request: model.PlacementRequest{ID: "a", Label: "A"}, Rect: model.Rect{X: 0, Y: 0, Width: 100, Height: 50}},
		{Request: model.PlacementRequest{ID: "b", Label: "B"}, Rect: model.Rect{X: 50, Y: 25, Width: 100, Height: 50}},
		{Request: model.PlacementRequest{ID: "c", Kind: model.KindInput}, Rect: model.Rect{X: 200, Y: 100, Width: 80, Height: 30}, Companion: &clear},
	}

	tests := []struct {
		name  string
		x, y  float64
		want  string
		part  HitPart
		found bool
	}{
		{"only first", 10, 10, "a", HitBody, true},
		{"overlap picks topmost", 60, 30, "b", HitBody, true},
		{"edge is inside", 100, 50, "b", HitBody, true},
		{"companion", 230, 20, "c", HitCompanion, true},
		{"input body", 210, 110, "c", HitBody, true},
		{"miss", 500, 500, "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := HitTest(widgets, tt.x, tt.y)
			require.Equal(t, tt.found, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.want, hit.Widget.Request.ID)
			assert.Equal(t, tt.part, hit.Part)
		})
	}
}

func TestHitTest_Empty(t *testing.T) {
	_, ok := HitTest(nil, 1, 1)
	assert.False(t, ok)
}
