package widgets

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/ScatterBoard/internal/engine"
	"github.com/piwi3910/ScatterBoard/internal/model"
)

func testResult() model.LayoutResult {
	settings := model.DefaultSettings()
	return model.LayoutResult{
		Bounds:   model.Bounds{X0: 0, Y0: 60, Width: 1000, Height: 500},
		Settings: settings,
		Seed:     5,
		Widgets: []model.PlacedWidget{
			{
				Request: model.PlacementRequest{ID: "a", Label: "Button 1", Color: "#2196f3", Width: 100, Height: 50},
				Rect:    model.Rect{X: 100, Y: 100, Width: 100, Height: 50},
			},
			{
				Request:   model.PlacementRequest{ID: "b", Kind: model.KindInput, Label: "Input 1", Width: 200, Height: 40},
				Rect:      model.Rect{X: 400, Y: 300, Width: 200, Height: 40},
				Companion: &model.Rect{X: 610, Y: 304, Width: 32, Height: 32},
				Fallback:  true,
			},
		},
	}
}

func TestLayoutCanvasScale(t *testing.T) {
	lc := NewLayoutCanvas(testResult(), 500, 500)
	assert.InDelta(t, 0.5, lc.Scale(), 1e-6)

	lc = NewLayoutCanvas(testResult(), 2000, 250)
	assert.InDelta(t, 0.5, lc.Scale(), 1e-6)

	lc = NewLayoutCanvas(model.LayoutResult{}, 500, 500)
	assert.Equal(t, float32(1), lc.Scale())
}

func TestLayoutCanvasToLayout(t *testing.T) {
	lc := NewLayoutCanvas(testResult(), 500, 500)

	x, y := lc.ToLayout(fyne.NewPos(75, 40))
	assert.InDelta(t, 150.0, x, 1e-6)
	assert.InDelta(t, 140.0, y, 1e-6)
}

func TestLayoutCanvasTapped(t *testing.T) {
	test.NewTempApp(t)
	lc := NewLayoutCanvas(testResult(), 500, 500)

	var gotHit engine.Hit
	var gotOK bool
	lc.OnTapped = func(x, y float64, hit engine.Hit, ok bool) {
		gotHit, gotOK = hit, ok
	}

	// (150, 125) in layout units is inside Button 1.
	test.TapAt(lc, fyne.NewPos(75, 32.5))
	require.True(t, gotOK)
	assert.Equal(t, "a", gotHit.Widget.Request.ID)
	assert.Equal(t, 0, lc.Selected())

	// (620, 310) is inside the input's companion.
	test.TapAt(lc, fyne.NewPos(310, 125))
	require.True(t, gotOK)
	assert.Equal(t, engine.HitCompanion, gotHit.Part)
	assert.Equal(t, 1, lc.Selected())

	test.TapAt(lc, fyne.NewPos(5, 5))
	assert.False(t, gotOK)
	assert.Equal(t, -1, lc.Selected())
}

func TestLayoutCanvasSetResultClearsSelection(t *testing.T) {
	test.NewTempApp(t)
	lc := NewLayoutCanvas(testResult(), 500, 500)
	test.TapAt(lc, fyne.NewPos(75, 32.5))
	require.Equal(t, 0, lc.Selected())

	lc.SetResult(testResult())
	assert.Equal(t, -1, lc.Selected())
}

func TestLayoutCanvasRendererObjects(t *testing.T) {
	test.NewTempApp(t)
	lc := NewLayoutCanvas(testResult(), 500, 500)
	r := newLayoutCanvasRenderer(lc)

	// background + 4 margin strips + 2 widgets + 1 companion + 2 labels
	assert.Len(t, r.Objects(), 10)
	assert.Equal(t, fyne.NewSize(500, 250), r.MinSize())
}

func TestWidgetColor(t *testing.T) {
	res := testResult()
	assert.Equal(t, color.NRGBA{R: 0x21, G: 0x96, B: 0xf3, A: 200}, widgetColor(res.Widgets[0], 0))
	assert.Equal(t, widgetColors[1], widgetColor(res.Widgets[1], 1))

	_, ok := hexColor("#12345")
	assert.False(t, ok)
	_, ok = hexColor("zzzzzz")
	assert.False(t, ok)
}

func TestRenderLayoutResultEmpty(t *testing.T) {
	test.NewTempApp(t)
	obj, lc := RenderLayoutResult(nil, nil)
	assert.NotNil(t, obj)
	assert.Nil(t, lc)
}

func TestRenderLayoutResult(t *testing.T) {
	test.NewTempApp(t)
	res := testResult()
	obj, lc := RenderLayoutResult(&res, nil)
	assert.NotNil(t, obj)
	require.NotNil(t, lc)
	assert.Equal(t, uint64(5), lc.Result().Seed)
}
