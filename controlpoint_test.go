package spiro

import (
	"encoding/json"
	"testing"
)

func TestParsePointType(t *testing.T) {
	tests := []struct {
		in   string
		want PointType
	}{
		{"v", Corner},
		{"o", Smooth},
		{"c", SmoothG2},
		{"[", LeftConstrained},
		{"]", RightConstrained},
		{"{", CurveStart},
		{"}", CurveEnd},
		{"a", Anchor},
		{"z", End},
		{"corner", Corner},
		{"smooth-g2", SmoothG2},
		{"end-open", CurveEnd},
	}
	for _, tt := range tests {
		got, err := ParsePointType(tt.in)
		if err != nil {
			t.Errorf("%q: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: got %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, in := range []string{"", "x", "Corner", "vv"} {
		if _, err := ParsePointType(in); err == nil {
			t.Errorf("%q: expected error", in)
		}
	}
}

func TestPointTypeJSON(t *testing.T) {
	pts := []ControlPoint{
		CP(1, 2, Smooth),
		CP(3, 4, LeftConstrained).WithDerivative(0.25),
	}
	b, err := json.Marshal(pts)
	if err != nil {
		t.Fatal(err)
	}
	var got []ControlPoint
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}
	diff(t, pts, got)

	if _, err := json.Marshal(CP(0, 0, PointType('x'))); err == nil {
		t.Error("expected error marshaling invalid point type")
	}
}

func TestControlPointAnnotations(t *testing.T) {
	cp := CP(0, 0, Smooth).WithDerivative(1).WithSecondDerivative(2)
	diff(t, Annotation{Mask: HasDerivative | HasSecondDerivative, Derivative: 1, SecondDerivative: 2}, cp.Annotation)
	// Values are copies.
	orig := CP(0, 0, Smooth)
	_ = orig.WithDerivative(3)
	diff(t, Annotation{}, orig.Annotation)
}
