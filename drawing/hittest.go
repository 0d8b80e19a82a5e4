package drawing

import "honnef.co/go/spiro"

// HitTestPoint returns the first control point closer to pt than
// threshold, searching shapes in order.
func (d *Drawing) HitTestPoint(pt spiro.Point, threshold float64) (shape, point int, ok bool) {
	t2 := threshold * threshold
	for i, s := range d.Shapes {
		for j, p := range s.Points {
			if pt.DistanceSquared(spiro.Pt(p.X, p.Y)) < t2 {
				return i, j, true
			}
		}
	}
	return -1, -1, false
}

// HitTestShape returns the first shape whose curve passes closer to pt
// than threshold, and the knot starting the segment that was hit. Shapes
// that fail to solve are skipped.
func (d *Drawing) HitTestShape(pt spiro.Point, threshold float64, opts *spiro.Options) (shape, knot int, ok bool) {
	for i, s := range d.Shapes {
		h := spiro.NewHitTester(pt, threshold)
		if err := spiro.Convert(s.Spiro(), h, opts); err != nil {
			continue
		}
		if h.Hit() {
			_, k := h.Report()
			return i, k, true
		}
	}
	return -1, -1, false
}
