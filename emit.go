package spiro

import "math"

// Emit sends the geometry of the solution to sink. Solutions of shapes
// without geometry emit nothing.
func (sol *Solution) Emit(sink Sink) {
	if len(sol.Segments) == 0 {
		return
	}
	n := len(sol.Knots)
	sink.MoveTo(sol.Knots[0])
	sink.MarkKnot(sol.Knots[0], 0)
	for i := range sol.Segments {
		k1 := (i + 1) % n
		sol.emitSegment(sink, &sol.Segments[i], sol.Knots[k1])
		if k1 != 0 {
			sink.MarkKnot(sol.Knots[k1], k1)
		}
	}
	if sol.Closed {
		sink.Close()
	}
}

func (sol *Solution) emitSegment(sink Sink, seg *Segment, p1 Point) {
	p0 := seg.Start
	if isStraight(&seg.Ks) {
		if sol.opts.Lines {
			sink.LineTo(p1)
		} else {
			sink.CurveTo(p0.Lerp(p1, 1.0/3.0), p0.Lerp(p1, 2.0/3.0), p1)
		}
		return
	}
	e := pieceEmitter{
		sink:     sink,
		frame:    newSpiroFrame(seg.Ks, p0, p1),
		budget:   sol.opts.ErrorBudget * sol.scale,
		maxDepth: sol.opts.MaxDepth,
	}
	e.piece(-0.5, 0.5, p0, p1, 0)
}

// pieceEmitter approximates one segment with cubics, subdividing the
// parameter range until every cubic is within budget of the spiral.
type pieceEmitter struct {
	sink     Sink
	frame    spiroFrame
	budget   float64
	maxDepth int
}

func (e *pieceEmitter) piece(s0, s1 float64, w0, w1 Point, depth int) {
	c := e.hermite(s0, s1, w0, w1)
	if depth < e.maxDepth && e.deviation(c, s0, s1) > e.budget {
		sm := e.splitParam(s0, s1)
		wm := e.frame.eval(sm)
		e.piece(s0, sm, w0, wm, depth+1)
		e.piece(sm, s1, wm, w1, depth+1)
		return
	}
	e.sink.CurveTo(c.P1, c.P2, c.P3)
}

// hermite returns the cubic through w0 and w1 with the spiral's tangents
// there, and handles a third of the arc length long.
func (e *pieceEmitter) hermite(s0, s1 float64, w0, w1 Point) CubicBez {
	h := e.frame.scale * (s1 - s0) / 3
	return CubicBez{
		P0: w0,
		P1: w0.Translate(VecFromAngle(e.frame.tangent(s0)).Mul(h)),
		P2: w1.Translate(VecFromAngle(e.frame.tangent(s1)).Mul(-h)),
		P3: w1,
	}
}

// deviation estimates the distance between the cubic and the spiral by
// sampling the spiral at a quarter, half and three quarters of the range.
func (e *pieceEmitter) deviation(c CubicBez, s0, s1 float64) float64 {
	var worst float64
	for _, f := range [...]float64{0.25, 0.5, 0.75} {
		pt := e.frame.eval(s0 + f*(s1-s0))
		d, _ := c.Nearest(pt, e.budget*0.1)
		worst = max(worst, d)
	}
	return math.Sqrt(worst)
}

// splitParam returns where to split the range [s0, s1]: the point of the
// middle half at which curvature changes fastest, or the midpoint if it
// changes uniformly.
func (e *pieceEmitter) splitParam(s0, s1 float64) float64 {
	ks := &e.frame.ks
	w := s1 - s0
	a, b := s0+w/4, s1-w/4
	cands := [3]float64{a, b, 0}
	ncands := 2
	if ks[3] != 0 {
		if v := -ks[2] / ks[3]; v > a && v < b {
			cands[2] = v
			ncands = 3
		}
	}
	best, bestAbs := 0.5*(s0+s1), -1.0
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range cands[:ncands] {
		d := math.Abs(spiroKappa1(ks, s))
		lo, hi = min(lo, d), max(hi, d)
		if d > bestAbs {
			best, bestAbs = s, d
		}
	}
	if hi-lo <= 1e-9*(1+hi) {
		return 0.5 * (s0 + s1)
	}
	return best
}
