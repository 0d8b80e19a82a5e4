package spiro

import (
	"math"
	"testing"
)

func TestCubicBezDeriv(t *testing.T) {
	// y = x^2
	c := CubicBez{
		Pt(0.0, 0.0),
		Pt(1.0/3.0, 0.0),
		Pt(2.0/3.0, 1.0/3.0),
		Pt(1.0, 1.0),
	}
	deriv := c.Differentiate()

	const n = 10
	const delta = 1e-6
	for i := range n + 1 {
		ts := float64(i) / float64(n)
		p := c.Eval(ts)
		p1 := c.Eval(ts + delta)
		dApprox := p1.Sub(p).Mul(1.0 / delta)
		d := Vec2(deriv.Eval(ts))
		if l := d.Sub(dApprox).Hypot(); l >= delta*2 {
			t.Errorf("got difference of %g, want at most %g", l, delta*2)
		}
	}
}

func TestCubicBezSubsegment(t *testing.T) {
	c := CubicBez{Pt(3.1, 4.1), Pt(5.9, 2.6), Pt(5.3, 5.8), Pt(9.7, 9.3)}
	t0, t1 := 0.1, 0.8
	cs := c.Subsegment(t0, t1)
	const n = 10
	for i := range n + 1 {
		tt := float64(i) / float64(n)
		want := c.Eval(t0 + tt*(t1-t0))
		if d := cs.Eval(tt).Distance(want); d > 1e-12 {
			t.Errorf("at %v: off by %g", tt, d)
		}
	}
}

func TestCubicBezToQuadratics(t *testing.T) {
	// y = x^3
	c := CubicBez{
		Pt(0.0, 0.0),
		Pt(1.0/3.0, 0.0),
		Pt(2.0/3.0, 0.0),
		Pt(1.0, 1.0),
	}
	for i := range 10 {
		accuracy := math.Pow(0.1, float64(i))
		for seq := range c.quadratics(accuracy) {
			t0, t1, q := seq.Start, seq.End, seq.Segment
			const epsilon = 1e-12
			if delta := q.P0.Sub(c.Eval(t0)).Hypot(); delta > epsilon {
				t.Fatalf("%g > %g", delta, epsilon)
			}
			if delta := q.P2.Sub(c.Eval(t1)).Hypot(); delta > epsilon {
				t.Fatalf("%g > %g", delta, epsilon)
			}
			const n = 4
			for j := range n + 1 {
				ts := float64(j) / float64(n)
				p := q.Eval(ts)
				if error := math.Abs(p.Y - math.Pow(p.X, 3)); error > accuracy {
					t.Fatalf("got error %g for desired accuracy of %g", error, accuracy)
				}
			}
		}
	}
}

func TestCubicBezToQuadraticsDegenerate(t *testing.T) {
	// colinear points still produce a quadratic
	c := CubicBez{
		Pt(0.0, 9.0),
		Pt(6.0, 6.0),
		Pt(12.0, 3.0),
		Pt(18.0, 0.0),
	}
	var n int
	for range c.quadratics(1e-6) {
		n++
	}
	if n != 1 {
		t.Errorf("got %d quadratics, expected 1", n)
	}
}

func TestCubicNearest(t *testing.T) {
	verify := func(c CubicBez, pt Point, want float64) {
		t.Helper()
		_, got := c.Nearest(pt, 1e-6)
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("got %v, want %v", got, want)
		}
	}

	// y = x^3
	c := CubicBez{Pt(0.0, 0.0), Pt(1.0/3.0, 0.0), Pt(2.0/3.0, 0.0), Pt(1.0, 1.0)}
	verify(c, Pt(0.1, 0.001), 0.1)
	verify(c, Pt(0.2, 0.008), 0.2)
	verify(c, Pt(0.3, 0.027), 0.3)
	verify(c, Pt(0.4, 0.064), 0.4)
	verify(c, Pt(0.5, 0.125), 0.5)
	verify(c, Pt(0.6, 0.216), 0.6)
	verify(c, Pt(0.7, 0.343), 0.7)
	verify(c, Pt(0.8, 0.512), 0.8)
	verify(c, Pt(0.9, 0.729), 0.9)
	verify(c, Pt(1.0, 1.0), 1.0)
	verify(c, Pt(1.1, 1.1), 1.0)
	verify(c, Pt(-0.1, 0.0), 0.0)
}
