package engine

import (
	"github.com/piwi3910/ScatterBoard/internal/model"
)

// DefaultClearance is the overlap padding used when a caller does not supply one.
const DefaultClearance = model.DefaultClearance

// Overlaps reports whether a and b overlap once each is inflated by padding.
// The separating-axis test uses strict less-than, so rectangles whose padded
// edges touch exactly still count as overlapping.
func Overlaps(a, b model.Rect, padding float64) bool {
	separated := a.X+a.Width+padding < b.X ||
		b.X+b.Width+padding < a.X ||
		a.Y+a.Height+padding < b.Y ||
		b.Y+b.Height+padding < a.Y
	return !separated
}

// withinBounds reports whether r lies inside bounds shrunk by padding on every side.
func withinBounds(r model.Rect, bounds model.Bounds, padding float64) bool {
	return r.X >= bounds.X0+padding &&
		r.Y >= bounds.Y0+padding &&
		r.X+r.Width <= bounds.X0+bounds.Width-padding &&
		r.Y+r.Height <= bounds.Y0+bounds.Height-padding
}

// IsValid reports whether candidate fits inside bounds minus the edge padding
// and overlaps none of the placed rectangles. Every placed rectangle is checked.
func IsValid(candidate model.Rect, placed []model.Rect, bounds model.Bounds, settings model.LayoutSettings) bool {
	if !withinBounds(candidate, bounds, settings.EdgePadding) {
		return false
	}
	for _, r := range placed {
		if Overlaps(candidate, r, settings.Clearance) {
			return false
		}
	}
	return true
}
