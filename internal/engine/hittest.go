package engine

import "github.com/piwi3910/ScatterBoard/internal/model"

// HitPart says which rectangle of a widget a point landed on.
type HitPart string

const (
	HitBody      HitPart = "body"
	HitCompanion HitPart = "companion"
)

// Hit is the result of a successful hit test.
type Hit struct {
	Index  int                `json:"index"`
	Widget model.PlacedWidget `json:"widget"`
	Part   HitPart            `json:"part"`
}

// HitTest returns the topmost widget containing (x, y). Widgets are drawn in
// order, so later widgets sit on top of earlier ones.
func HitTest(widgets []model.PlacedWidget, x, y float64) (Hit, bool) {
	for i := len(widgets) - 1; i >= 0; i-- {
		w := widgets[i]
		if w.Companion != nil && w.Companion.ContainsPoint(x, y) {
			return Hit{Index: i, Widget: w, Part: HitCompanion}, true
		}
		if w.Rect.ContainsPoint(x, y) {
			return Hit{Index: i, Widget: w, Part: HitBody}, true
		}
	}
	return Hit{}, false
}
