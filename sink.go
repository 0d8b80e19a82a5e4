package spiro

// Sink receives the geometry of a solved contour.
//
// A contour produces exactly one MoveTo, followed by one LineTo or CurveTo
// per emitted piece. MarkKnot is called once per knot, right after the
// piece ending at that knot (and after MoveTo for the first knot). Closed
// contours end with Close. Nothing is sent for contours that fail to solve.
type Sink interface {
	MoveTo(pt Point)
	LineTo(pt Point)
	CurveTo(p1, p2, p3 Point)
	MarkKnot(pt Point, index int)
	Close()
}

// Knot is a knot as reported by [Sink.MarkKnot].
type Knot struct {
	Point Point
	// The index of the control point.
	Index int
	// The number of the drawing call (MoveTo, LineTo or CurveTo) that
	// ends at the knot, counted from zero.
	Element int
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) MoveTo(Point)          {}
func (NopSink) LineTo(Point)          {}
func (NopSink) CurveTo(_, _, _ Point) {}
func (NopSink) MarkKnot(Point, int)   {}
func (NopSink) Close()                {}

// KnotCollector records the knots of a contour and ignores its curves.
type KnotCollector struct {
	Knots []Knot

	calls int
}

func (k *KnotCollector) MoveTo(Point)          { k.calls++ }
func (k *KnotCollector) LineTo(Point)          { k.calls++ }
func (k *KnotCollector) CurveTo(_, _, _ Point) { k.calls++ }
func (k *KnotCollector) Close()                {}

func (k *KnotCollector) MarkKnot(pt Point, index int) {
	k.Knots = append(k.Knots, Knot{Point: pt, Index: index, Element: k.calls - 1})
}

// PathSink accumulates contours into a [BezPath].
type PathSink struct {
	Path  BezPath
	Knots []Knot
}

func (p *PathSink) MoveTo(pt Point)          { p.Path.MoveTo(pt) }
func (p *PathSink) LineTo(pt Point)          { p.Path.LineTo(pt) }
func (p *PathSink) CurveTo(p1, p2, p3 Point) { p.Path.CubicTo(p1, p2, p3) }
func (p *PathSink) Close()                   { p.Path.ClosePath() }

func (p *PathSink) MarkKnot(pt Point, index int) {
	p.Knots = append(p.Knots, Knot{Point: pt, Index: index, Element: len(p.Path) - 1})
}

// Reset clears the sink for reuse.
func (p *PathSink) Reset() {
	p.Path = p.Path[:0]
	p.Knots = p.Knots[:0]
}
