package model

import (
	"testing"
)

func TestRectEdgesAndArea(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	if r.Right() != 110 {
		t.Errorf("expected Right=110, got %f", r.Right())
	}
	if r.Bottom() != 70 {
		t.Errorf("expected Bottom=70, got %f", r.Bottom())
	}
	if r.Area() != 5000 {
		t.Errorf("expected Area=5000, got %f", r.Area())
	}
}

func TestRectContainsPoint(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if !r.ContainsPoint(5, 5) {
		t.Error("center should be inside")
	}
	if !r.ContainsPoint(10, 10) {
		t.Error("corner should be inside")
	}
	if r.ContainsPoint(10.5, 5) {
		t.Error("point right of the rect should be outside")
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 10, Y: 10, Width: 100, Height: 30}
	b := Rect{X: 120, Y: 5, Width: 30, Height: 30}
	u := a.Union(b)
	want := Rect{X: 10, Y: 5, Width: 140, Height: 35}
	if u != want {
		t.Errorf("expected %+v, got %+v", want, u)
	}
}

func TestViewportBounds(t *testing.T) {
	v := Viewport{Width: 1280, Height: 720, HeaderHeight: 60, FooterHeight: 40}
	b := v.Bounds()
	if b.X0 != 0 || b.Y0 != 60 {
		t.Errorf("expected origin (0,60), got (%f,%f)", b.X0, b.Y0)
	}
	if b.Width != 1280 || b.Height != 620 {
		t.Errorf("expected 1280x620, got %fx%f", b.Width, b.Height)
	}
}

func TestViewportBounds_ChromeLargerThanWindow(t *testing.T) {
	v := Viewport{Width: 300, Height: 100, HeaderHeight: 80, FooterHeight: 80}
	if h := v.Bounds().Height; h != 0 {
		t.Errorf("expected clamped height 0, got %f", h)
	}
}

func TestNewRequest(t *testing.T) {
	r := NewRequest(KindButton, "OK", 140, 40)
	if len(r.ID) != 8 {
		t.Errorf("expected 8-char ID, got %q", r.ID)
	}
	if r.Kind != KindButton || r.Label != "OK" {
		t.Errorf("unexpected request %+v", r)
	}
}

func TestFootprintSize(t *testing.T) {
	r := NewRequest(KindInput, "Name", 200, 32)
	w, h := r.FootprintSize()
	if w != 200 || h != 32 {
		t.Errorf("expected 200x32 without companion, got %fx%f", w, h)
	}

	r.Companion = &CompanionRequest{Kind: KindClear, Width: 30, Height: 40, Gap: 10}
	w, h = r.FootprintSize()
	if w != 240 || h != 40 {
		t.Errorf("expected 240x40 with companion, got %fx%f", w, h)
	}
}

func TestPlacedWidgetFootprint(t *testing.T) {
	p := PlacedWidget{Rect: Rect{X: 10, Y: 10, Width: 200, Height: 32}}
	if p.Footprint() != p.Rect {
		t.Error("footprint without companion should equal rect")
	}
	p.Companion = &Rect{X: 220, Y: 10, Width: 32, Height: 32}
	if fp := p.Footprint(); fp.Width != 242 {
		t.Errorf("expected footprint width 242, got %f", fp.Width)
	}
}

func TestLayoutResultCoverage(t *testing.T) {
	res := LayoutResult{
		Bounds: Bounds{Width: 100, Height: 100},
		Widgets: []PlacedWidget{
			{Rect: Rect{Width: 10, Height: 10}},
			{Rect: Rect{Width: 20, Height: 10}, Companion: &Rect{Width: 10, Height: 10}},
		},
	}
	if got := len(res.Rects()); got != 3 {
		t.Errorf("expected 3 rects, got %d", got)
	}
	if res.UsedArea() != 400 {
		t.Errorf("expected used area 400, got %f", res.UsedArea())
	}
	if res.Coverage() != 4 {
		t.Errorf("expected 4%% coverage, got %f", res.Coverage())
	}
	if (LayoutResult{}).Coverage() != 0 {
		t.Error("empty bounds should report 0 coverage")
	}
}

func TestSettingsAttempts(t *testing.T) {
	s := DefaultSettings()
	s.MaxAttempts = 0
	if s.Attempts() != DefaultMaxAttempts {
		t.Errorf("expected default attempts, got %d", s.Attempts())
	}
	s.MaxAttempts = 1
	if s.Attempts() != 1 {
		t.Errorf("expected 1 attempt, got %d", s.Attempts())
	}
}

func TestParseWidgetKind(t *testing.T) {
	if k, ok := ParseWidgetKind("input"); !ok || k != KindInput {
		t.Errorf("expected input, got %v %v", k, ok)
	}
	if k, ok := ParseWidgetKind(""); !ok || k != KindButton {
		t.Errorf("empty kind should default to button, got %v %v", k, ok)
	}
	if _, ok := ParseWidgetKind("slider"); ok {
		t.Error("slider should not be recognized")
	}
}
