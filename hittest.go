package spiro

import "math"

// HitPolicy selects which distance a [HitTester] reports.
type HitPolicy int

const (
	// FirstUnderThreshold stops at the first piece that comes closer than
	// the threshold.
	FirstUnderThreshold HitPolicy = iota
	// Nearest considers every piece and reports the smallest distance.
	Nearest
)

// HitTester is a [Sink] that measures the distance from a query point to a
// contour, and which segment the closest piece belongs to.
type HitTester struct {
	Point     Point
	Threshold float64
	Policy    HitPolicy
	// Accuracy of nearest point computations on curves. Zero means
	// DefaultAccuracy.
	Accuracy float64

	best    float64
	knot    int
	seen    bool
	stopped bool
	start   Point
	cur     Point
	curKnot int
}

// NewHitTester returns a hit tester for pt using the first-under-threshold
// policy.
func NewHitTester(pt Point, threshold float64) *HitTester {
	return &HitTester{Point: pt, Threshold: threshold}
}

func (h *HitTester) accuracy() float64 {
	if h.Accuracy > 0 {
		return h.Accuracy
	}
	return DefaultAccuracy
}

func (h *HitTester) measure(distSq float64) {
	if h.stopped {
		return
	}
	d := math.Sqrt(distSq)
	if !h.seen || d < h.best {
		h.best = d
		h.knot = h.curKnot
		h.seen = true
	}
	if h.Policy == FirstUnderThreshold && d < h.Threshold {
		h.stopped = true
	}
}

func (h *HitTester) MoveTo(pt Point) {
	h.start = pt
	h.cur = pt
}

func (h *HitTester) LineTo(pt Point) {
	d, _ := Line{h.cur, pt}.Nearest(h.Point, h.accuracy())
	h.measure(d)
	h.cur = pt
}

func (h *HitTester) CurveTo(p1, p2, p3 Point) {
	d, _ := CubicBez{h.cur, p1, p2, p3}.Nearest(h.Point, h.accuracy())
	h.measure(d)
	h.cur = p3
}

// MarkKnot records the knot that following pieces are attributed to.
func (h *HitTester) MarkKnot(pt Point, index int) {
	h.curKnot = index
}

func (h *HitTester) Close() {
	if h.cur != h.start {
		h.LineTo(h.start)
	}
}

// Report returns the distance found and the index of the knot starting the
// segment it was found on. Without any pieces, it returns +Inf and -1.
func (h *HitTester) Report() (dist float64, knot int) {
	if !h.seen {
		return math.Inf(1), -1
	}
	return h.best, h.knot
}

// Hit reports whether the reported distance is below the threshold.
func (h *HitTester) Hit() bool {
	return h.seen && h.best < h.Threshold
}
