package export

import (
	"fmt"

	"github.com/piwi3910/ScatterBoard/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
)

// ExportDXF writes the layout as rectangle outlines: the bounds, every
// obstacle, widget and companion, plus a circle at each widget center.
// Canvas Y grows downward, DXF Y grows upward, so Y is mirrored against the
// bounds bottom.
func ExportDXF(path string, result model.LayoutResult) error {
	d := dxf.NewDrawing()
	flip := result.Bounds.Y0 + result.Bounds.Height
	toDXF := func(r model.Rect) model.Rect {
		return model.Rect{X: r.X, Y: flip - r.Bottom(), Width: r.Width, Height: r.Height}
	}

	if err := drawRect(d, toDXF(result.Bounds.Rect())); err != nil {
		return fmt.Errorf("draw bounds: %w", err)
	}
	for i, o := range result.Obstacles {
		if err := drawRect(d, toDXF(o)); err != nil {
			return fmt.Errorf("draw obstacle %d: %w", i+1, err)
		}
	}
	for i, w := range result.Widgets {
		r := toDXF(w.Rect)
		if err := drawRect(d, r); err != nil {
			return fmt.Errorf("draw widget %d: %w", i+1, err)
		}
		if _, err := d.Circle(r.X+r.Width/2, r.Y+r.Height/2, 0, 1); err != nil {
			return fmt.Errorf("draw widget %d center: %w", i+1, err)
		}
		if w.Companion != nil {
			if err := drawRect(d, toDXF(*w.Companion)); err != nil {
				return fmt.Errorf("draw companion %d: %w", i+1, err)
			}
		}
	}

	return d.SaveAs(path)
}

// drawRect adds the four edges of r as LINE entities.
func drawRect(d *drawing.Drawing, r model.Rect) error {
	corners := [][2]float64{
		{r.X, r.Y},
		{r.Right(), r.Y},
		{r.Right(), r.Bottom()},
		{r.X, r.Bottom()},
	}
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%len(corners)]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return err
		}
	}
	return nil
}
