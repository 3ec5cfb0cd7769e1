package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/ScatterBoard/internal/model"
)

// Collision describes two widgets whose padded rectangles overlap.
// B is negative for obstacle collisions: obstacle k is reported as -(k+1).
type Collision struct {
	A      int     `json:"a"`
	B      int     `json:"b"`
	LabelA string  `json:"label_a"`
	LabelB string  `json:"label_b"`
	Gap    float64 `json:"gap"` // Separation along the most separated axis; negative when interpenetrating
	// Fallback is true when either widget came from the grid fallback, which
	// does not re-check random placements.
	Fallback bool `json:"fallback"`
}

// CheckCollisions reports every widget pair, and every widget/obstacle pair,
// that violates the clearance. A widget's own companion is never compared
// with it. At most one collision is reported per pair.
func CheckCollisions(result model.LayoutResult, clearance float64) []Collision {
	var collisions []Collision

	for i := 0; i < len(result.Widgets); i++ {
		a := result.Widgets[i]
		for j := i + 1; j < len(result.Widgets); j++ {
			b := result.Widgets[j]
			if gap, hit := worstGap(widgetRects(a), widgetRects(b), clearance); hit {
				collisions = append(collisions, Collision{
					A:        i,
					B:        j,
					LabelA:   a.Request.Label,
					LabelB:   b.Request.Label,
					Gap:      gap,
					Fallback: a.Fallback || b.Fallback,
				})
			}
		}
		for k, obs := range result.Obstacles {
			if gap, hit := worstGap(widgetRects(a), []model.Rect{obs}, clearance); hit {
				collisions = append(collisions, Collision{
					A:        i,
					B:        -(k + 1),
					LabelA:   a.Request.Label,
					LabelB:   fmt.Sprintf("obstacle %d", k+1),
					Gap:      gap,
					Fallback: a.Fallback,
				})
			}
		}
	}

	return collisions
}

// CheckContainment returns the indices of widgets with any rectangle outside
// the bounds shrunk by the edge padding.
func CheckContainment(result model.LayoutResult) []int {
	var outside []int
	for i, w := range result.Widgets {
		for _, r := range widgetRects(w) {
			if !withinBounds(r, result.Bounds, result.Settings.EdgePadding) {
				outside = append(outside, i)
				break
			}
		}
	}
	return outside
}

// separation returns the signed distance between a and b along the axis on
// which they are furthest apart. Overlaps(a, b, p) is equivalent to separation <= p.
func separation(a, b model.Rect) float64 {
	dx := math.Max(b.X-a.Right(), a.X-b.Right())
	dy := math.Max(b.Y-a.Bottom(), a.Y-b.Bottom())
	return math.Max(dx, dy)
}

func worstGap(as, bs []model.Rect, clearance float64) (float64, bool) {
	worst := math.Inf(1)
	hit := false
	for _, a := range as {
		for _, b := range bs {
			if Overlaps(a, b, clearance) {
				hit = true
				if s := separation(a, b); s < worst {
					worst = s
				}
			}
		}
	}
	return worst, hit
}

func widgetRects(w model.PlacedWidget) []model.Rect {
	if w.Companion == nil {
		return []model.Rect{w.Rect}
	}
	return []model.Rect{w.Rect, *w.Companion}
}

// FormatCollisionWarnings produces human-readable warning messages from collision data.
func FormatCollisionWarnings(collisions []Collision) []string {
	var warnings []string
	for _, c := range collisions {
		source := "random"
		if c.Fallback {
			source = "grid fallback"
		}
		msg := fmt.Sprintf(
			"Widget %d (%s) collides with %s (%s placement), separation %.1f",
			c.A+1, c.LabelA, c.LabelB, source, c.Gap,
		)
		warnings = append(warnings, msg)
	}
	return warnings
}
