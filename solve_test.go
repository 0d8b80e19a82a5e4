package spiro

import (
	"errors"
	"math"
	"testing"
)

func circleShape(n int, typ PointType) Shape {
	pts := make([]ControlPoint, n)
	for i := range n {
		th := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = CP(math.Cos(th), math.Sin(th), typ)
	}
	return Shape{Points: pts, Closed: true}
}

func TestSolveStraight(t *testing.T) {
	shape := Shape{Points: []ControlPoint{CP(0, 0, CurveStart), CP(3, 0, CurveEnd)}}
	sol, err := Solve(shape, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(sol.Segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(sol.Segments))
	}
	seg := sol.Segments[0]
	diff(t, [4]float64{}, seg.Ks)
	diff(t, 3.0, seg.Chord)
	diff(t, 3.0, seg.ArcLen)
	diff(t, 0, sol.Iterations)
}

func TestSolveCornerPolygon(t *testing.T) {
	// A convex pentagon.
	pts := []ControlPoint{
		CP(0, 0, Corner),
		CP(4, 0, Corner),
		CP(5, 3, Corner),
		CP(2, 5, Corner),
		CP(-1, 3, Corner),
	}
	sol, err := Solve(Shape{Points: pts, Closed: true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, 0, sol.Iterations)
	var turning float64
	for _, seg := range sol.Segments {
		diff(t, [4]float64{}, seg.Ks)
		turning += seg.Bend
	}
	diff(t, 2*math.Pi, turning, approx(1e-12))
}

func TestSolveCircle(t *testing.T) {
	sol, err := Solve(circleShape(4, Smooth), nil)
	if err != nil {
		t.Fatal(err)
	}
	if sol.Iterations == 0 {
		t.Error("expected at least one iteration")
	}
	var turning float64
	for i, seg := range sol.Segments {
		diff(t, [4]float64{math.Pi / 2, 0, 0, 0}, seg.Ks, approx(1e-7))
		// Rotational symmetry.
		diff(t, sol.Segments[0].Ks, seg.Ks, approx(1e-8))
		diff(t, math.Pi/2, seg.ArcLen, approx(1e-7))
		if seg.Type != Smooth {
			t.Errorf("segment %d: got type %v, want %v", i, seg.Type, Smooth)
		}
		turning += seg.Turning()
	}
	diff(t, 2*math.Pi, turning, approx(1e-7))
}

func TestSolveContinuity(t *testing.T) {
	shapes := []Shape{
		{Points: []ControlPoint{
			CP(0, 0, CurveStart),
			CP(2, 1, Smooth),
			CP(4, 0.5, Smooth),
			CP(5, 2, Smooth),
			CP(7, 2, CurveEnd),
		}},
		{Points: []ControlPoint{
			CP(0, 0, SmoothG2),
			CP(3, 0, SmoothG2),
			CP(4, 2, Smooth),
			CP(1, 3, SmoothG2),
		}, Closed: true},
		{Points: []ControlPoint{
			CP(0, 0, Corner),
			CP(2, 0, LeftConstrained),
			CP(5, 0, RightConstrained),
			CP(6, 2, Smooth),
			CP(3, 4, Smooth),
		}, Closed: true},
	}
	for i, shape := range shapes {
		sol, err := Solve(shape, nil)
		if err != nil {
			t.Fatalf("shape %d: %v", i, err)
		}
		n := len(sol.Knots)
		for s, seg := range sol.Segments {
			next := s + 1
			if next == len(sol.Segments) {
				if !sol.Closed {
					continue
				}
				next = 0
			}
			k := (s + 1) % n
			typ := sol.Segments[next].Type
			a, _ := computeEnds(&seg.Ks, seg.Chord)
			b, _ := computeEnds(&sol.Segments[next].Ks, sol.Segments[next].Chord)
			for q := range crossingQuantities(typ) {
				if q == endTangent {
					in := seg.ChordAngle + a[1][endTangent]
					out := sol.Segments[next].ChordAngle - b[0][endTangent]
					if d := mod2pi(in - out); math.Abs(d) > 1e-7 {
						t.Errorf("shape %d, knot %d: tangent jumps by %g", i, k, d)
					}
					continue
				}
				if d := a[1][q] - b[0][q]; math.Abs(d) > 1e-6 {
					t.Errorf("shape %d, knot %d: quantity %d jumps by %g", i, k, q, d)
				}
			}
		}
	}
}

func TestSolveStraightConstraints(t *testing.T) {
	// The segment between a left and a right constrained knot is a line,
	// and the curves join it with zero curvature.
	shape := Shape{Points: []ControlPoint{
		CP(0, 0, Corner),
		CP(2, 0, LeftConstrained),
		CP(5, 0, RightConstrained),
		CP(6, 2, Smooth),
		CP(3, 4, Smooth),
	}, Closed: true}
	sol, err := Solve(shape, nil)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, [4]float64{}, sol.Segments[1].Ks)
	before, _ := computeEnds(&sol.Segments[0].Ks, sol.Segments[0].Chord)
	after, _ := computeEnds(&sol.Segments[2].Ks, sol.Segments[2].Chord)
	diff(t, 0.0, before[1][endKappa], approx(1e-7))
	diff(t, 0.0, after[0][endKappa], approx(1e-7))
}

func TestSolveAnnotations(t *testing.T) {
	pts := []ControlPoint{
		CP(0, 0, CurveStart).WithDerivative(0.5),
		CP(1, 1, Smooth),
		CP(2, 0, CurveEnd),
	}
	for _, tagged := range []bool{true, false} {
		sol, err := Solve(Shape{Points: pts, Tagged: tagged}, nil)
		if err != nil {
			t.Fatal(err)
		}
		seg := sol.Segments[0]
		ends, _ := computeEnds(&seg.Ks, seg.Chord)
		want := 0.0
		if tagged {
			want = 0.5
		}
		diff(t, want, ends[0][endKappa1], approx(1e-6))
	}
}

func TestSolveIdempotent(t *testing.T) {
	shape := Shape{Points: []ControlPoint{
		CP(0, 0, Smooth),
		CP(3, 1, Smooth),
		CP(4, 4, SmoothG2),
		CP(0, 3, Corner),
	}, Closed: true}
	sol1, err := Solve(shape, nil)
	if err != nil {
		t.Fatal(err)
	}
	sol2, err := Solve(shape, nil)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, sol1.Segments, sol2.Segments)

	var r1, r2 recorder
	sol1.Emit(&r1)
	sol2.Emit(&r2)
	diff(t, r1.calls, r2.calls)
}

func TestSolveNoGeometry(t *testing.T) {
	for _, shape := range []Shape{
		{},
		{Points: []ControlPoint{CP(1, 2, Smooth)}, Closed: true},
		{Points: []ControlPoint{CP(1, 2, CurveStart)}},
	} {
		var r recorder
		if err := Convert(shape, &r, nil); err != nil {
			t.Errorf("got error %v, want none", err)
		}
		if len(r.calls) != 0 {
			t.Errorf("got %d sink calls, want none", len(r.calls))
		}
	}
}

func TestSolveDegenerate(t *testing.T) {
	shapes := []Shape{
		{Points: []ControlPoint{CP(1, 1, CurveStart), CP(1, 1, CurveEnd)}},
		{Points: []ControlPoint{CP(0, 0, Smooth), CP(1, 0, Smooth), CP(1, 0, Smooth), CP(0, 1, Smooth)}, Closed: true},
		{Points: []ControlPoint{CP(0, 0, Smooth), CP(math.NaN(), 0, Smooth), CP(0, 1, Smooth)}, Closed: true},
		{Points: []ControlPoint{CP(0, 0, Corner), CP(math.Inf(1), 0, Corner)}},
		{Points: []ControlPoint{CP(0, 0, Corner), CP(1, 0, PointType('x'))}},
	}
	for i, shape := range shapes {
		var r recorder
		err := Convert(shape, &r, nil)
		if !errors.Is(err, ErrDegenerateInput) {
			t.Errorf("%d: got %v, want %v", i, err, ErrDegenerateInput)
		}
		var serr *SolveError
		if !errors.As(err, &serr) {
			t.Errorf("%d: got %T, want *SolveError", i, err)
		}
		if len(r.calls) != 0 {
			t.Errorf("%d: got %d sink calls, want none", i, len(r.calls))
		}
	}
}

func TestSolveMaxIterations(t *testing.T) {
	// Circles are solved by the first Newton step; this shape needs more.
	shape := Shape{Points: []ControlPoint{
		CP(0, 0, CurveStart),
		CP(2, 1, Smooth),
		CP(4, 0.5, Smooth),
		CP(5, 2, Smooth),
		CP(7, 2, CurveEnd),
	}}
	opts := DefaultOptions.WithMaxIterations(1)
	_, err := Solve(shape, &opts)
	if !errors.Is(err, ErrMaxIterations) {
		t.Fatalf("got %v, want %v", err, ErrMaxIterations)
	}
	var serr *SolveError
	if !errors.As(err, &serr) {
		t.Fatalf("got %T, want *SolveError", err)
	}
	diff(t, 1, serr.Iterations)
	if !(serr.Residual > 0) {
		t.Errorf("got residual %v, want positive", serr.Residual)
	}
}

func TestSolveSingular(t *testing.T) {
	shapes := map[string]Shape{
		// Folding back onto itself at two smooth knots.
		"collinear": {Points: []ControlPoint{
			CP(0, 0, Smooth),
			CP(1, 0, Smooth),
			CP(2, 0, Smooth),
		}, Closed: true},
		// The curvature derivative target overflows once scaled.
		"overflow": {Points: []ControlPoint{
			CP(0, 0, CurveStart).WithDerivative(math.MaxFloat64),
			CP(10, 10, Smooth),
			CP(20, 0, CurveEnd),
		}, Tagged: true},
		"nan target": {Points: []ControlPoint{
			CP(0, 0, CurveStart),
			CP(1, 1, Smooth),
			CP(2, 0, CurveEnd).WithSecondDerivative(math.NaN()),
		}, Tagged: true},
	}
	for name, shape := range shapes {
		var r recorder
		err := Convert(shape, &r, nil)
		if !errors.Is(err, ErrSingularSystem) {
			t.Errorf("%s: got %v, want %v", name, err, ErrSingularSystem)
		}
		var serr *SolveError
		if !errors.As(err, &serr) {
			t.Errorf("%s: got %T, want *SolveError", name, err)
		}
		if len(r.calls) != 0 {
			t.Errorf("%s: got %d sink calls, want none", name, len(r.calls))
		}
	}
}

func TestSolveExtremeScales(t *testing.T) {
	triangle := func(scale float64) Shape {
		return Shape{Points: []ControlPoint{
			CP(0, 0, Smooth),
			CP(scale, 0, Smooth),
			CP(0, scale, Smooth),
		}, Closed: true}
	}
	ref, err := Solve(triangle(1), nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, scale := range []float64{1e300, 1e-300} {
		sol, err := Solve(triangle(scale), nil)
		if err != nil {
			t.Fatalf("%g: %v", scale, err)
		}
		for i := range sol.Segments {
			diff(t, ref.Segments[i].Ks, sol.Segments[i].Ks, approx(1e-7))
			if !near(sol.Segments[i].ArcLen/scale, ref.Segments[i].ArcLen, 1e-7) {
				t.Errorf("%g: segment %d has arc length %g", scale, i, sol.Segments[i].ArcLen)
			}
		}
	}
}
