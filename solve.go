package spiro

import (
	"fmt"
	"math"
)

const (
	// jacobianStep is the perturbation of a coefficient used for the
	// central difference approximation of the Jacobian.
	jacobianStep = 1e-6
	// maxHalvings limits how often a Newton step is halved while it fails
	// to reduce the residual.
	maxHalvings = 6
	// minChordRatio is the length, relative to the mean chord, below which
	// two consecutive knots are considered coincident.
	minChordRatio = 1e-12
)

// Segment is the spiral between two consecutive knots.
type Segment struct {
	// The knot the segment starts at.
	Start Point
	// The effective type of the start knot.
	Type PointType
	// Coefficients of the curvature polynomial over the unit arc length
	// parameter s ∈ [-½, ½]:
	// κ(s) = Ks[0] + Ks[1] s + Ks[2] s²/2 + Ks[3] s³/6.
	Ks [4]float64
	// Length and angle of the chord to the next knot.
	Chord      float64
	ChordAngle float64
	// The turning angle between the previous chord and this one, in
	// [-π, π). Zero at the start of an open contour.
	Bend float64
	// The arc length of the solved spiral.
	ArcLen float64
}

// Turning returns the change in tangent angle from the start to the end of
// the segment.
func (seg Segment) Turning() float64 {
	return seg.Ks[0] + seg.Ks[2]/24
}

// Solution is a solved contour. It can be emitted to any number of sinks.
type Solution struct {
	// One segment per chord. Closed contours have as many segments as
	// knots, open ones one less.
	Segments []Segment
	// The positions of the knots.
	Knots  []Point
	Closed bool
	// Newton iterations performed.
	Iterations int
	// Norm of the final residual vector.
	Residual float64

	opts  Options
	scale float64
}

// solver holds the state of one Newton iteration over a contour.
type solver struct {
	topo topology
	segs []Segment
	ends []segmentEnds
	// Chord lengths divided by the scale of the shape, so that end
	// quantities come out scale free.
	chords []float64
	// Row targets in scale-free units.
	targets []float64
	// Rows referencing each segment.
	rowsBySeg [][]int
	ml, mu    int
}

// Solve computes the spirals of a shape. Shapes with fewer than two knots
// have no geometry; they produce an empty solution and no error.
//
// On failure, the returned error is a [*SolveError] wrapping
// [ErrDegenerateInput], [ErrSingularSystem] or [ErrMaxIterations].
func Solve(shape Shape, opts *Options) (*Solution, error) {
	o := resolveOptions(opts)
	pts, closed := shape.Contour()
	sol := &Solution{Closed: closed, opts: o}
	if len(pts) < 2 {
		return sol, nil
	}

	sol.Knots = make([]Point, len(pts))
	for i, p := range pts {
		if !p.isFinite() {
			return nil, solveFailed(&SolveError{Err: ErrDegenerateInput, Index: i})
		}
		if !p.Type.Valid() {
			return nil, solveFailed(&SolveError{
				Err:   fmt.Errorf("%w: invalid point type %q", ErrDegenerateInput, byte(p.Type)),
				Index: i,
			})
		}
		sol.Knots[i] = p.Pt()
	}

	segs, bends, scale, serr := setupSegments(sol.Knots, closed)
	if serr != nil {
		return nil, solveFailed(serr)
	}
	topo := classify(pts, closed, shape.Tagged, bends)
	for i := range segs {
		segs[i].Type = topo.types[i]
	}
	sol.scale = scale

	sv := newSolver(topo, segs, scale)
	iters, residual, err := sv.run(o)
	sol.Iterations = iters
	sol.Residual = residual
	if err != nil {
		return nil, solveFailed(&SolveError{Err: err, Index: -1, Iterations: iters, Residual: residual})
	}
	for i := range segs {
		if isStraight(&segs[i].Ks) {
			segs[i].ArcLen = segs[i].Chord
		} else {
			_, segs[i].ArcLen = computeEnds(&segs[i].Ks, segs[i].Chord)
		}
	}
	sol.Segments = segs

	Logger().Debug("spiro: solved",
		"knots", len(pts),
		"closed", closed,
		"unknowns", topo.ncols,
		"iterations", iters,
		"residual", residual)
	return sol, nil
}

func solveFailed(err *SolveError) error {
	Logger().Debug("spiro: solve failed", "err", err)
	return err
}

// setupSegments computes the chords of a contour and the turning angles at
// its knots. It also returns the mean chord length, which serves as the
// scale of the shape.
func setupSegments(knots []Point, closed bool) ([]Segment, []float64, float64, *SolveError) {
	n := len(knots)
	nseg := n - 1
	if closed {
		nseg = n
	}
	segs := make([]Segment, nseg)
	var total float64
	for i := range segs {
		d := knots[(i+1)%n].Sub(knots[i])
		segs[i].Start = knots[i]
		segs[i].Chord = d.Hypot()
		segs[i].ChordAngle = d.Angle()
		total += segs[i].Chord
	}
	scale := total / float64(nseg)
	for i := range segs {
		if segs[i].Chord == 0 || segs[i].Chord <= minChordRatio*scale {
			return nil, nil, 0, &SolveError{Err: ErrDegenerateInput, Index: i}
		}
	}

	bends := make([]float64, n)
	for i := range n {
		if !closed && (i == 0 || i == n-1) {
			continue
		}
		prev := (i + nseg - 1) % nseg
		bends[i] = mod2pi(segs[i%nseg].ChordAngle - segs[prev].ChordAngle)
	}
	for i := range segs {
		segs[i].Bend = bends[i]
	}
	return segs, bends, scale, nil
}

func newSolver(topo topology, segs []Segment, scale float64) *solver {
	sv := &solver{
		topo:      topo,
		segs:      segs,
		ends:      make([]segmentEnds, len(segs)),
		rowsBySeg: make([][]int, len(segs)),
		chords:    make([]float64, len(segs)),
		targets:   make([]float64, len(topo.rows)),
	}
	for i := range segs {
		sv.chords[i] = segs[i].Chord / scale
	}
	qscale := [4]float64{1, scale, scale * scale, scale * scale * scale}
	for r, c := range topo.rows {
		v := c.target.value
		if c.quantity != endTangent && v != 0 {
			v *= qscale[c.quantity]
		}
		sv.targets[r] = v
	}
	for r, c := range topo.rows {
		for _, ref := range c.refs[:c.nrefs] {
			rows := sv.rowsBySeg[ref.seg]
			if len(rows) == 0 || rows[len(rows)-1] != r {
				sv.rowsBySeg[ref.seg] = append(rows, r)
			}
		}
	}
	return sv
}

// bandwidths computes the lower and upper bandwidth of the Jacobian.
func (sv *solver) bandwidths() (ml, mu int, ok bool) {
	t := &sv.topo
	for r, c := range t.rows {
		lo, hi := math.MaxInt, -1
		for _, ref := range c.refs[:c.nrefs] {
			if d := t.dof[ref.seg]; d > 0 {
				lo = min(lo, t.cols[ref.seg])
				hi = max(hi, t.cols[ref.seg]+d-1)
			}
		}
		if hi < 0 {
			// The row doesn't depend on any unknown.
			return 0, 0, false
		}
		ml = max(ml, r-lo)
		mu = max(mu, hi-r)
	}
	return ml, mu, true
}

// run iterates until convergence. It returns the number of iterations and
// the final residual norm.
func (sv *solver) run(o Options) (int, float64, error) {
	n := sv.topo.ncols
	if len(sv.topo.rows) != n {
		return 0, math.NaN(), fmt.Errorf("%w: %d constraints for %d unknowns", ErrSingularSystem, len(sv.topo.rows), n)
	}
	if n == 0 {
		return 0, 0, nil
	}
	var ok bool
	sv.ml, sv.mu, ok = sv.bandwidths()
	if !ok {
		return 0, math.NaN(), ErrSingularSystem
	}

	r := make([]float64, n)
	delta := make([]float64, n)
	base := make([][4]float64, len(sv.segs))
	norm := sv.residual(r)
	for iter := 0; ; iter++ {
		if math.IsNaN(norm) || math.IsInf(norm, 0) {
			return iter, norm, ErrSingularSystem
		}
		if norm < o.Tolerance {
			return iter, norm, nil
		}
		if iter >= o.MaxIterations {
			return iter, norm, ErrMaxIterations
		}

		m := sv.jacobian()
		for i, v := range r {
			delta[i] = -v
		}
		if err := m.solve(delta); err != nil {
			return iter + 1, norm, ErrSingularSystem
		}

		for i := range sv.segs {
			base[i] = sv.segs[i].Ks
		}
		step := 1.0
		for h := 0; ; h++ {
			sv.apply(base, delta, step)
			next := sv.residual(r)
			if next < norm || h == maxHalvings {
				norm = next
				break
			}
			step *= 0.5
		}
	}
}

// apply sets the free coefficients to base + step·delta.
func (sv *solver) apply(base [][4]float64, delta []float64, step float64) {
	t := &sv.topo
	for s := range sv.segs {
		for k := range t.dof[s] {
			sv.segs[s].Ks[k] = base[s][k] + step*delta[t.cols[s]+k]
		}
	}
}

// residual evaluates all constraints into r and returns the euclidean norm
// of r.
func (sv *solver) residual(r []float64) float64 {
	for s := range sv.segs {
		if sv.topo.dof[s] > 0 {
			sv.ends[s], _ = computeEnds(&sv.segs[s].Ks, sv.chords[s])
		}
	}
	var sum float64
	for i := range sv.topo.rows {
		c := &sv.topo.rows[i]
		v := -sv.targets[i]
		for _, ref := range c.refs[:c.nrefs] {
			v += ref.sign * sv.ends[ref.seg][ref.end][c.quantity]
		}
		if c.quantity == endTangent {
			v = mod2pi(v)
		}
		r[i] = v
		sum += v * v
	}
	return math.Sqrt(sum)
}

// jacobian approximates the derivatives of the residuals with respect to the
// free coefficients by central differences.
func (sv *solver) jacobian() *bandMatrix {
	t := &sv.topo
	m := newBandMatrix(t.ncols, sv.ml, sv.mu)
	for s := range sv.segs {
		seg := &sv.segs[s]
		for k := range t.dof[s] {
			orig := seg.Ks[k]
			seg.Ks[k] = orig + jacobianStep
			hi, _ := computeEnds(&seg.Ks, sv.chords[s])
			seg.Ks[k] = orig - jacobianStep
			lo, _ := computeEnds(&seg.Ks, sv.chords[s])
			seg.Ks[k] = orig

			var deriv segmentEnds
			for e := range deriv {
				for q := range deriv[e] {
					d := hi[e][q] - lo[e][q]
					if q == endTangent {
						d = mod2pi(d)
					}
					deriv[e][q] = d / (2 * jacobianStep)
				}
			}

			col := t.cols[s] + k
			for _, r := range sv.rowsBySeg[s] {
				c := &t.rows[r]
				var v float64
				for _, ref := range c.refs[:c.nrefs] {
					if ref.seg == s {
						v += ref.sign * deriv[ref.end][c.quantity]
					}
				}
				m.add(r, col, v)
			}
		}
	}
	return m
}
