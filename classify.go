package spiro

// targetSource says where the target value of a constraint comes from.
type targetSource uint8

const (
	// The target follows from the knot type and the geometry.
	inferred targetSource = iota
	// The target was supplied by an annotation of a tagged shape.
	explicit
)

type target struct {
	source targetSource
	value  float64
}

// endRef refers to one end of a segment, with the sign the end quantity
// enters a constraint with.
type endRef struct {
	seg  int
	end  int
	sign float64
}

// constraint is one row of the system: the signed sum of one end quantity
// of the referenced segment ends, minus the target, must vanish.
type constraint struct {
	quantity int
	refs     [2]endRef
	nrefs    int
	target   target
	knot     int
}

// topology is the outcome of classifying the knots of a shape: which
// coefficients of which segments are free, which constraints bind them and
// in what order the solver lays them out.
type topology struct {
	// Effective knot types.
	types  []PointType
	closed bool
	// Free coefficients per segment.
	dof []int
	// Segments in solve order.
	order []int
	// First column of each segment's unknowns.
	cols  []int
	ncols int
	// Constraints in solve order.
	rows []constraint
}

func (t *topology) nseg() int { return len(t.dof) }

func isBoundary(typ PointType) bool {
	return typ == Corner || typ == CurveStart || typ == CurveEnd
}

// effectiveType returns the type knot i behaves as. The ends of open shapes
// are forced to be curve ends; curve ends anywhere else, anchors and
// terminators are corners.
func effectiveType(typ PointType, i, n int, closed bool) PointType {
	if !closed {
		switch i {
		case 0:
			return CurveStart
		case n - 1:
			return CurveEnd
		}
	}
	switch typ {
	case CurveStart, CurveEnd, Anchor, End:
		return Corner
	}
	return typ
}

// segmentDOF returns the number of free curvature coefficients of a segment
// running from a knot of type t0 to a knot of type t1.
func segmentDOF(t0, t1 PointType) int {
	switch {
	case t0 == Smooth || t1 == Smooth || t0 == RightConstrained || t1 == LeftConstrained:
		return 4
	case t0 == SmoothG2 && t1 == SmoothG2:
		return 2
	case (isBoundary(t0) || t0 == LeftConstrained) && t1 == SmoothG2,
		t0 == SmoothG2 && (isBoundary(t1) || t1 == RightConstrained):
		return 1
	default:
		return 0
	}
}

// crossingQuantities returns how many end quantities, starting with the
// tangent, are continuous across a knot of the given type.
func crossingQuantities(typ PointType) int {
	switch typ {
	case Smooth:
		return 4
	case SmoothG2, LeftConstrained, RightConstrained:
		return 2
	default:
		return 0
	}
}

// endQuantities returns the curvature derivatives pinned at the end of a
// four-coefficient segment that meets a knot of type typ. end is 0 for the
// start of the segment and 1 for its end.
func endQuantities(typ PointType, end int) []int {
	switch {
	case isBoundary(typ),
		end == 0 && typ == LeftConstrained,
		end == 1 && typ == RightConstrained:
		return []int{endKappa1, endKappa2}
	case typ == SmoothG2:
		return []int{endKappa2}
	default:
		return nil
	}
}

// solveOrder returns the order segments are laid out in the linear system.
// Open shapes keep their order. Closed shapes start at a corner if they have
// one, which breaks the cycle. Fully smooth closed shapes interleave both
// ends of the list, so that the last segment lands next to the first.
func solveOrder(types []PointType, nseg int, closed bool) []int {
	order := make([]int, 0, nseg)
	if !closed {
		for i := range nseg {
			order = append(order, i)
		}
		return order
	}
	for k, typ := range types {
		if crossingQuantities(typ) == 0 {
			for i := range nseg {
				order = append(order, (k+i)%nseg)
			}
			return order
		}
	}
	for lo, hi := 0, nseg-1; lo <= hi; lo, hi = lo+1, hi-1 {
		order = append(order, lo)
		if hi != lo {
			order = append(order, hi)
		}
	}
	return order
}

// classify builds the topology of a contour. bends holds the turning angle
// between the chords meeting at each knot; it provides the targets of the
// tangent constraints. Annotations are honored if tagged is set.
func classify(pts []ControlPoint, closed, tagged bool, bends []float64) topology {
	n := len(pts)
	if n < 2 {
		return topology{closed: closed}
	}
	nseg := n - 1
	if closed {
		nseg = n
	}

	t := topology{
		types:  make([]PointType, n),
		closed: closed,
		dof:    make([]int, nseg),
		cols:   make([]int, nseg),
	}
	for i, p := range pts {
		t.types[i] = effectiveType(p.Type, i, n, closed)
	}
	for i := range nseg {
		t.dof[i] = segmentDOF(t.types[i], t.types[(i+1)%n])
	}
	t.order = solveOrder(t.types, nseg, closed)
	for _, s := range t.order {
		t.cols[s] = t.ncols
		t.ncols += t.dof[s]
	}

	endTarget := func(k, q int) target {
		if !tagged {
			return target{}
		}
		a := pts[k].Annotation
		switch {
		case q == endKappa1 && a.Mask&HasDerivative != 0:
			return target{explicit, a.Derivative}
		case q == endKappa2 && a.Mask&HasSecondDerivative != 0:
			return target{explicit, a.SecondDerivative}
		default:
			return target{}
		}
	}

	for _, s := range t.order {
		k1 := (s + 1) % n
		if t.dof[s] == 4 {
			for end, k := range [2]int{s, k1} {
				for _, q := range endQuantities(t.types[k], end) {
					t.rows = append(t.rows, constraint{
						quantity: q,
						refs:     [2]endRef{{seg: s, end: end, sign: 1}},
						nrefs:    1,
						target:   endTarget(k, q),
						knot:     k,
					})
				}
			}
		}
		if !closed && k1 == n-1 {
			continue
		}
		// k1 is an interior knot, joining segment s to segment k1.
		for q := range crossingQuantities(t.types[k1]) {
			c := constraint{
				quantity: q,
				refs:     [2]endRef{{seg: s, end: 1, sign: 1}, {seg: k1, end: 0, sign: -1}},
				nrefs:    2,
				knot:     k1,
			}
			if q == endTangent {
				c.refs[1].sign = 1
				c.target = target{inferred, bends[k1]}
			}
			t.rows = append(t.rows, c)
		}
	}
	return t
}
