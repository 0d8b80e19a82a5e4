package spiro

import (
	"fmt"
	"math"
)

// PointType determines the continuity the curve has at a control point.
//
// The values are the single characters used by plate files.
type PointType byte

const (
	// Corner is a knot with no continuity constraint. The tangent may
	// change direction abruptly.
	Corner PointType = 'v'
	// Smooth is a G4 knot: tangent, curvature and the first two
	// derivatives of curvature are continuous.
	Smooth PointType = 'o'
	// SmoothG2 is a G2 knot: tangent and curvature are continuous.
	SmoothG2 PointType = 'c'
	// LeftConstrained joins a curve (before) to a straight line (after).
	LeftConstrained PointType = '['
	// RightConstrained joins a straight line (before) to a curve (after).
	RightConstrained PointType = ']'
	// CurveStart is the first point of an open curve.
	CurveStart PointType = '{'
	// CurveEnd is the last point of an open curve.
	CurveEnd PointType = '}'
	// Anchor is an explicit boundary knot. It behaves like a corner.
	Anchor PointType = 'a'
	// End terminates the point list of a tagged, closed shape. It is not a
	// knot itself.
	End PointType = 'z'
)

var pointTypeNames = map[PointType]string{
	Corner:           "corner",
	Smooth:           "smooth",
	SmoothG2:         "smooth-g2",
	LeftConstrained:  "left",
	RightConstrained: "right",
	CurveStart:       "open",
	CurveEnd:         "end-open",
	Anchor:           "anchor",
	End:              "end",
}

// Valid reports whether typ is one of the defined point types.
func (typ PointType) Valid() bool {
	_, ok := pointTypeNames[typ]
	return ok
}

func (typ PointType) String() string {
	if name, ok := pointTypeNames[typ]; ok {
		return name
	}
	return fmt.Sprintf("PointType(%q)", byte(typ))
}

// MarshalText encodes the type by its name.
func (typ PointType) MarshalText() ([]byte, error) {
	name, ok := pointTypeNames[typ]
	if !ok {
		return nil, fmt.Errorf("spiro: invalid point type %q", byte(typ))
	}
	return []byte(name), nil
}

// UnmarshalText accepts either a type name or its plate character.
func (typ *PointType) UnmarshalText(b []byte) error {
	t, err := ParsePointType(string(b))
	if err != nil {
		return err
	}
	*typ = t
	return nil
}

// ParsePointType parses a point type from its name ("corner") or its plate
// character ("v").
func ParsePointType(s string) (PointType, error) {
	if len(s) == 1 {
		if t := PointType(s[0]); t.Valid() {
			return t, nil
		}
	}
	for t, name := range pointTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("spiro: unknown point type %q", s)
}

// AnnotationMask says which fields of an [Annotation] are set.
type AnnotationMask uint8

const (
	HasDerivative AnnotationMask = 1 << iota
	HasSecondDerivative
)

// Annotation supplies explicit targets for the derivatives of curvature at
// a knot, in place of the zero targets inferred from the knot's type. The
// derivatives are taken with respect to arc length in the direction of
// travel. Annotations are only honored for tagged shapes, and only where
// the knot's type leaves the quantity free.
type Annotation struct {
	Mask             AnnotationMask
	Derivative       float64
	SecondDerivative float64
}

// ControlPoint is a typed knot of a spiro curve.
type ControlPoint struct {
	X, Y       float64
	Type       PointType
	Annotation Annotation
}

// CP returns a control point without annotation.
func CP(x, y float64, typ PointType) ControlPoint {
	return ControlPoint{X: x, Y: y, Type: typ}
}

// Pt returns the position of the control point.
func (cp ControlPoint) Pt() Point {
	return Point{cp.X, cp.Y}
}

// WithDerivative returns a copy of cp annotated with an explicit first
// derivative of curvature.
func (cp ControlPoint) WithDerivative(dk float64) ControlPoint {
	cp.Annotation.Mask |= HasDerivative
	cp.Annotation.Derivative = dk
	return cp
}

// WithSecondDerivative returns a copy of cp annotated with an explicit
// second derivative of curvature.
func (cp ControlPoint) WithSecondDerivative(ddk float64) ControlPoint {
	cp.Annotation.Mask |= HasSecondDerivative
	cp.Annotation.SecondDerivative = ddk
	return cp
}

func (cp ControlPoint) isFinite() bool {
	return !math.IsInf(cp.X, 0) && !math.IsNaN(cp.X) &&
		!math.IsInf(cp.Y, 0) && !math.IsNaN(cp.Y)
}

// Shape is an ordered list of control points forming one contour.
//
// For tagged shapes, Closed is ignored: the list is scanned up to the first
// [End] (exclusive, closed contour) or [CurveEnd] (inclusive, open
// contour), and a list starting with [CurveStart] is open.
type Shape struct {
	Points []ControlPoint
	Closed bool
	Tagged bool
}

// Contour returns the control points that take part in the curve, and
// whether the contour is closed.
func (s Shape) Contour() ([]ControlPoint, bool) {
	if !s.Tagged {
		return s.Points, s.Closed
	}
	pts := s.Points
	open := len(pts) > 0 && pts[0].Type == CurveStart
	for i, p := range pts {
		switch p.Type {
		case End:
			return pts[:i], !open
		case CurveEnd:
			return pts[:i+1], false
		}
	}
	return pts, !open
}
