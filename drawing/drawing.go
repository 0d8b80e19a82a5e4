// Package drawing is the document model of a spiro editor: shapes with
// their styles, guide lines and the canvas size. It loads and saves
// drawings, renders them to SVG or PostScript, and hit-tests them.
package drawing

import (
	"honnef.co/go/spiro"
)

// Default canvas size for drawings loaded from formats without one.
const (
	DefaultWidth  = 600
	DefaultHeight = 600
)

// Drawing is a set of shapes on a canvas.
type Drawing struct {
	Width  float64  `json:"width" yaml:"width"`
	Height float64  `json:"height" yaml:"height"`
	Shapes []*Shape `json:"shapes" yaml:"shapes"`
	Guides []Guide  `json:"guides,omitempty" yaml:"guides,omitempty"`
}

// New returns an empty drawing of the given size.
func New(width, height float64) *Drawing {
	return &Drawing{Width: width, Height: height}
}

// Shape is one contour of a drawing along with its style.
type Shape struct {
	Stroked bool    `json:"stroked" yaml:"stroked"`
	Filled  bool    `json:"filled" yaml:"filled"`
	Closed  bool    `json:"closed" yaml:"closed"`
	Tagged  bool    `json:"tagged,omitempty" yaml:"tagged,omitempty"`
	Points  []Point `json:"points" yaml:"points"`
}

// Point is a control point. The derivative fields are optional explicit
// targets for the derivatives of curvature, used by tagged shapes.
type Point struct {
	X                float64         `json:"x" yaml:"x"`
	Y                float64         `json:"y" yaml:"y"`
	Type             spiro.PointType `json:"type" yaml:"type"`
	Derivative       *float64        `json:"derivative,omitempty" yaml:"derivative,omitempty"`
	SecondDerivative *float64        `json:"secondDerivative,omitempty" yaml:"secondDerivative,omitempty"`
}

// Guide is a guide line. Guides are kept in the document but are not part
// of the output.
type Guide struct {
	X0 float64 `json:"x0" yaml:"x0"`
	Y0 float64 `json:"y0" yaml:"y0"`
	X1 float64 `json:"x1" yaml:"x1"`
	Y1 float64 `json:"y1" yaml:"y1"`
}

// Spiro converts the shape to its curve description.
func (s *Shape) Spiro() spiro.Shape {
	pts := make([]spiro.ControlPoint, len(s.Points))
	for i, p := range s.Points {
		cp := spiro.CP(p.X, p.Y, p.Type)
		if p.Derivative != nil {
			cp = cp.WithDerivative(*p.Derivative)
		}
		if p.SecondDerivative != nil {
			cp = cp.WithSecondDerivative(*p.SecondDerivative)
		}
		pts[i] = cp
	}
	return spiro.Shape{Points: pts, Closed: s.Closed, Tagged: s.Tagged}
}

// FromSpiro returns a stroked, unfilled shape for a curve description.
func FromSpiro(s spiro.Shape) *Shape {
	pts := make([]Point, len(s.Points))
	for i, cp := range s.Points {
		p := Point{X: cp.X, Y: cp.Y, Type: cp.Type}
		if cp.Annotation.Mask&spiro.HasDerivative != 0 {
			d := cp.Annotation.Derivative
			p.Derivative = &d
		}
		if cp.Annotation.Mask&spiro.HasSecondDerivative != 0 {
			d := cp.Annotation.SecondDerivative
			p.SecondDerivative = &d
		}
		pts[i] = p
	}
	return &Shape{Stroked: true, Closed: s.Closed, Tagged: s.Tagged, Points: pts}
}

// Spiro returns the curve descriptions of all shapes.
func (d *Drawing) Spiro() []spiro.Shape {
	out := make([]spiro.Shape, len(d.Shapes))
	for i, s := range d.Shapes {
		out[i] = s.Spiro()
	}
	return out
}
