package drawing

import (
	"bufio"
	"fmt"
	"io"
	"slices"

	"honnef.co/go/spiro"
)

// Rendered is the output for one shape of a drawing. Shapes that fail to
// solve have a nil Path and a non-nil Err.
type Rendered struct {
	Shape *Shape
	Path  spiro.BezPath
	Knots []spiro.Knot
	Err   error
}

// Render converts every shape. A shape that fails does not keep the others
// from rendering.
func (d *Drawing) Render(opts *spiro.Options) []Rendered {
	out := make([]Rendered, len(d.Shapes))
	for i, s := range d.Shapes {
		path, knots, err := spiro.ConvertPath(s.Spiro(), opts)
		if err != nil {
			spiro.Logger().Warn("drawing: shape failed to render", "shape", i, "err", err)
		}
		out[i] = Rendered{Shape: s, Path: path, Knots: knots, Err: err}
	}
	return out
}

const (
	svgStroke   = "stroke:#000000;stroke-opacity:1;stroke-width:2"
	svgNoStroke = "stroke:none"
	svgFill     = "fill:#808080;fill-opacity:0.5"
	svgNoFill   = "fill:none"

	svgPrecision = 6
)

// WriteSVG writes the drawing as an SVG document, one path per shape that
// renders.
func (d *Drawing) WriteSVG(w io.Writer, opts *spiro.Options) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\" standalone=\"no\"?>\n")
	fmt.Fprintf(bw, "<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%s\" height=\"%s\">\n",
		formatNum(d.Width), formatNum(d.Height))
	for _, r := range d.Render(opts) {
		if r.Err != nil || len(r.Path) == 0 {
			continue
		}
		stroke, fill := svgNoStroke, svgNoFill
		if r.Shape.Stroked {
			stroke = svgStroke
		}
		if r.Shape.Filled {
			fill = svgFill
		}
		fmt.Fprintf(bw, "  <path style=\"%s;%s\"\n", stroke, fill)
		bw.WriteString("        d=\"")
		for i := range r.Path {
			if i > 0 {
				bw.WriteString("\n           ")
			}
			spiro.WriteSVG(bw, slices.Values(r.Path[i:i+1]), spiro.SVGOptions{MaxPrecision: svgPrecision})
		}
		bw.WriteString("\"/>\n")
	}
	bw.WriteString("</svg>\n")
	return bw.Flush()
}

// PSSink is a [spiro.Sink] that writes PostScript path operators. The
// first write error is kept and reported by Err; later calls do nothing.
type PSSink struct {
	w   io.Writer
	err error
}

// NewPSSink returns a sink writing to w.
func NewPSSink(w io.Writer) *PSSink {
	return &PSSink{w: w}
}

func (ps *PSSink) printf(format string, args ...any) {
	if ps.err != nil {
		return
	}
	_, ps.err = fmt.Fprintf(ps.w, format, args...)
}

func (ps *PSSink) MoveTo(pt spiro.Point) {
	ps.printf("%s %s moveto\n", formatNum(pt.X), formatNum(pt.Y))
}

func (ps *PSSink) LineTo(pt spiro.Point) {
	ps.printf("%s %s lineto\n", formatNum(pt.X), formatNum(pt.Y))
}

func (ps *PSSink) CurveTo(p1, p2, p3 spiro.Point) {
	ps.printf("%s %s %s %s %s %s curveto\n",
		formatNum(p1.X), formatNum(p1.Y),
		formatNum(p2.X), formatNum(p2.Y),
		formatNum(p3.X), formatNum(p3.Y))
}

func (ps *PSSink) MarkKnot(spiro.Point, int) {}

func (ps *PSSink) Close() {
	ps.printf("closepath\n")
}

// Err returns the first write error.
func (ps *PSSink) Err() error { return ps.err }

const (
	psProlog = "%!PS-Adobe-3.0\n%%Creator: spiro\n"
	// Flip the page so that drawing coordinates, which grow downwards,
	// keep their orientation.
	psSize    = "%%%%BoundingBox: 0 0 %s %s\n<< /PageSize [%s %s] >> setpagedevice\n0 %s translate 1 -1 scale\n"
	psPostlog = "showpage\n%%EOF\n"
)

// WritePS writes the drawing as a PostScript document.
func (d *Drawing) WritePS(w io.Writer, opts *spiro.Options) error {
	bw := bufio.NewWriter(w)
	ps := NewPSSink(bw)
	width, height := formatNum(d.Width), formatNum(d.Height)
	ps.printf("%s", psProlog)
	ps.printf(psSize, width, height, width, height, height)
	for i, s := range d.Shapes {
		sol, err := spiro.Solve(s.Spiro(), opts)
		if err != nil {
			spiro.Logger().Warn("drawing: shape failed to render", "shape", i, "err", err)
			continue
		}
		if len(sol.Segments) == 0 {
			continue
		}
		ps.printf("newpath\n")
		sol.Emit(ps)
		switch {
		case s.Filled && s.Stroked:
			ps.printf("gsave 0.5 setgray fill grestore\n2 setlinewidth stroke\n")
		case s.Filled:
			ps.printf("0.5 setgray fill 0 setgray\n")
		case s.Stroked:
			ps.printf("2 setlinewidth stroke\n")
		}
	}
	ps.printf("%s", psPostlog)
	if err := ps.Err(); err != nil {
		return err
	}
	return bw.Flush()
}

func formatNum(f float64) string {
	return spiro.FormatCoord(f, svgPrecision)
}

var _ spiro.Sink = (*PSSink)(nil)
