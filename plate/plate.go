// Package plate reads and writes spiro plate files.
//
// A plate file is a parenthesized script listing control points, one per
// line:
//
//	(plate
//	  (v 0 0)
//	  (o 100 0)
//	  (o 100 100)
//	  (z)
//	)
//
// Each entry holds the point type character followed by the coordinates.
// The entry (z) closes the current shape. A shape that starts with '{'
// and ends with '}' is open and needs no (z). Text following ';' up to
// the end of the line is ignored.
package plate

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"honnef.co/go/spiro"
)

// SyntaxError describes a malformed line.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("plate: line %d: %s", e.Line, e.Msg)
}

// Read parses the shapes of a plate file.
func Read(r io.Reader) ([]spiro.Shape, error) {
	var (
		shapes  []spiro.Shape
		cur     []spiro.ControlPoint
		started bool
		ended   bool
		line    int
	)
	flush := func(closed bool) {
		if len(cur) > 0 {
			shapes = append(shapes, spiro.Shape{Points: cur, Closed: closed})
		}
		cur = nil
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, ';'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if ended {
			return nil, &SyntaxError{line, "content after end of plate"}
		}
		if !started {
			if text != "(plate" {
				return nil, &SyntaxError{line, fmt.Sprintf("expected (plate, got %q", text)}
			}
			started = true
			continue
		}
		if text == ")" {
			ended = true
			continue
		}
		if !strings.HasPrefix(text, "(") || !strings.HasSuffix(text, ")") {
			return nil, &SyntaxError{line, fmt.Sprintf("malformed entry %q", text)}
		}
		fields := strings.Fields(text[1 : len(text)-1])
		if len(fields) == 1 && fields[0] == "z" {
			flush(true)
			continue
		}
		if len(fields) != 3 {
			return nil, &SyntaxError{line, fmt.Sprintf("expected type and two coordinates, got %q", text)}
		}
		typ, err := spiro.ParsePointType(fields[0])
		if err != nil || typ == spiro.End {
			return nil, &SyntaxError{line, fmt.Sprintf("unknown point type %q", fields[0])}
		}
		x, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, &SyntaxError{line, fmt.Sprintf("bad x coordinate %q", fields[1])}
		}
		y, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, &SyntaxError{line, fmt.Sprintf("bad y coordinate %q", fields[2])}
		}
		if typ == spiro.CurveStart {
			flush(false)
		}
		cur = append(cur, spiro.CP(x, y, typ))
		if typ == spiro.CurveEnd {
			flush(false)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !started {
		return nil, &SyntaxError{line, "missing (plate"}
	}
	if !ended {
		return nil, &SyntaxError{line, "missing closing parenthesis"}
	}
	flush(false)
	return shapes, nil
}

// Write writes shapes as a plate file. Only the contour of tagged shapes
// is written. Closed contours are followed by (z). The first and last
// points of open contours are written as [spiro.CurveStart] and
// [spiro.CurveEnd], which is how the solver treats them anyway, so that
// Read finds their extent again.
func Write(w io.Writer, shapes []spiro.Shape) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("(plate\n")
	for _, s := range shapes {
		pts, closed := s.Contour()
		for i, p := range pts {
			typ := p.Type
			if !closed {
				switch i {
				case 0:
					typ = spiro.CurveStart
				case len(pts) - 1:
					typ = spiro.CurveEnd
				}
			}
			fmt.Fprintf(bw, "  (%c %s %s)\n", byte(typ), formatFloat(p.X), formatFloat(p.Y))
		}
		if closed {
			bw.WriteString("  (z)\n")
		}
	}
	bw.WriteString(")\n")
	return bw.Flush()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
