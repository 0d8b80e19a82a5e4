package spiro

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// approx compares floats with an absolute tolerance.
func approx(tol float64) cmp.Option {
	return cmpopts.EquateApprox(0, tol)
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// recorder is a sink that records every call.
type recorder struct {
	calls []call
}

type call struct {
	Op    string
	Pts   []Point
	Index int
}

func (r *recorder) MoveTo(pt Point) { r.calls = append(r.calls, call{Op: "MoveTo", Pts: []Point{pt}}) }
func (r *recorder) LineTo(pt Point) { r.calls = append(r.calls, call{Op: "LineTo", Pts: []Point{pt}}) }
func (r *recorder) CurveTo(p1, p2, p3 Point) {
	r.calls = append(r.calls, call{Op: "CurveTo", Pts: []Point{p1, p2, p3}})
}
func (r *recorder) MarkKnot(pt Point, index int) {
	r.calls = append(r.calls, call{Op: "MarkKnot", Pts: []Point{pt}, Index: index})
}
func (r *recorder) Close() { r.calls = append(r.calls, call{Op: "Close"}) }

func (r *recorder) count(op string) int {
	n := 0
	for _, c := range r.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}
