package spiro

import "math"

// A segment is the unit-length Euler-type spiral with arc length
// parameter s ∈ [-½, ½] and curvature
//
//	κ(s) = k0 + k1 s + k2 s²/2 + k3 s³/6
//
// scaled, rotated and translated so that its endpoints fall onto two
// consecutive knots. The tangent angle θ(s) is the integral of κ with
// θ(0) = 0.

// integrationPanels is the number of Gauss-Legendre panels an integration
// range is split into.
const integrationPanels = 4

func spiroTheta(ks *[4]float64, s float64) float64 {
	return s * (ks[0] + s*(ks[1]/2+s*(ks[2]/6+s*ks[3]/24)))
}

func spiroKappa(ks *[4]float64, s float64) float64 {
	return ks[0] + s*(ks[1]+s*(ks[2]/2+s*ks[3]/6))
}

func spiroKappa1(ks *[4]float64, s float64) float64 {
	return ks[1] + s*(ks[2]+s*ks[3]/2)
}

func spiroKappa2(ks *[4]float64, s float64) float64 {
	return ks[2] + s*ks[3]
}

func isStraight(ks *[4]float64) bool {
	return *ks == [4]float64{}
}

// integrateSpiro returns ∫(cos θ(s), sin θ(s)) ds over [s0, s1], the
// displacement along the unit spiral between the two parameters.
func integrateSpiro(ks *[4]float64, s0, s1 float64) Vec2 {
	if s0 == s1 {
		return Vec2{}
	}
	if isStraight(ks) {
		return Vec2{s1 - s0, 0}
	}
	h := (s1 - s0) / integrationPanels
	half := 0.5 * h
	var sum Vec2
	for p := range integrationPanels {
		mid := s0 + (float64(p)+0.5)*h
		for _, coeff := range gaussLegendreCoeffs16Half {
			w, x := coeff[0], coeff[1]
			y0, x0 := math.Sincos(spiroTheta(ks, mid-half*x))
			y1, x1 := math.Sincos(spiroTheta(ks, mid+half*x))
			sum.X += w * (x0 + x1)
			sum.Y += w * (y0 + y1)
		}
	}
	return sum.Mul(half)
}

// Indices into the per-end quantities of segmentEnds.
const (
	endTangent = iota
	endKappa
	endKappa1
	endKappa2
)

// segmentEnds holds the quantities at the start (index 0) and the end
// (index 1) of a segment: the tangent angle relative to the chord, and
// the curvature with its first two derivatives, in world units.
//
// The start angle is measured from the tangent to the chord and the end
// angle from the chord to the tangent, so that at a knot joining
// segments a and b, G1 continuity means ends_a[1] + ends_b[0] equals the
// turning angle between the two chords.
type segmentEnds [2][4]float64

// computeEnds evaluates the end quantities of a segment with coefficients
// ks spanning a chord of the given length. It also returns the arc length
// of the segment.
func computeEnds(ks *[4]float64, chord float64) (ends segmentEnds, arclen float64) {
	xy := integrateSpiro(ks, -0.5, 0.5)
	ch := xy.Hypot()
	th := xy.Angle()
	// l converts unit-spiral curvature to world curvature.
	l := ch / chord

	ends[0][endTangent] = th - spiroTheta(ks, -0.5)
	ends[1][endTangent] = spiroTheta(ks, 0.5) - th
	for e, s := range [2]float64{-0.5, 0.5} {
		ends[e][endKappa] = l * spiroKappa(ks, s)
		ends[e][endKappa1] = l * l * spiroKappa1(ks, s)
		ends[e][endKappa2] = l * l * l * spiroKappa2(ks, s)
	}
	return ends, chord / ch
}

// spiroFrame maps the unit spiral of a segment onto the chord p0→p1.
type spiroFrame struct {
	ks    [4]float64
	p0    Point
	scale float64
	rot   float64
}

func newSpiroFrame(ks [4]float64, p0, p1 Point) spiroFrame {
	xy := integrateSpiro(&ks, -0.5, 0.5)
	d := p1.Sub(p0)
	return spiroFrame{
		ks:    ks,
		p0:    p0,
		scale: d.Hypot() / xy.Hypot(),
		rot:   d.Angle() - xy.Angle(),
	}
}

// eval returns the world position at parameter s.
func (f *spiroFrame) eval(s float64) Point {
	return f.p0.Translate(integrateSpiro(&f.ks, -0.5, s).Rotate(f.rot).Mul(f.scale))
}

// tangent returns the world tangent angle at parameter s.
func (f *spiroFrame) tangent(s float64) float64 {
	return f.rot + spiroTheta(&f.ks, s)
}

// curvature returns the world curvature at parameter s.
func (f *spiroFrame) curvature(s float64) float64 {
	return spiroKappa(&f.ks, s) / f.scale
}

// Tables of Legendre-Gauss quadrature coefficients, adapted from:
// <https://pomax.github.io/bezierinfo/legendre-gauss.html>
var gaussLegendreCoeffs16Half = [...][2]float64{
	{0.1894506104550685, 0.0950125098376374},
	{0.1826034150449236, 0.2816035507792589},
	{0.1691565193950025, 0.4580167776572274},
	{0.1495959888165767, 0.6178762444026438},
	{0.1246289712555339, 0.7554044083550030},
	{0.0951585116824928, 0.8656312023878318},
	{0.0622535239386479, 0.9445750230732326},
	{0.0271524594117541, 0.9894009349916499},
}
