package geom

import (
	"errors"
	"math"
	"testing"
)

func TestArcElements(t *testing.T) {
	tests := []struct {
		sweep  float64
		cubics int
	}{
		{0, 0},
		{math.Pi / 4, 1},
		{math.Pi / 2, 1},
		{-math.Pi, 2},
		{1.4 * math.Pi, 3},
		{2 * math.Pi, 4},
		{5 * math.Pi, 4},
	}
	for _, tt := range tests {
		a := Arc{Center: Pt(1, 1), Radii: Vec(2, 2), StartAngle: 0.3, SweepAngle: tt.sweep}
		els := a.Elements()
		if len(els) != 1+tt.cubics {
			t.Errorf("sweep %v: got %d elements, want %d", tt.sweep, len(els), 1+tt.cubics)
			continue
		}
		for _, el := range els[1:] {
			if el.Kind != CubicToKind {
				t.Errorf("sweep %v: got %s", tt.sweep, el.Kind)
			}
		}
		// Every point on the outline lies on the circle.
		for el := range Flatten(a.Iterator(nil), 1e-3) {
			if el.Kind == ClosePathKind {
				continue
			}
			if d := el.P0.Distance(a.Center); math.Abs(d-2) > 1e-2 {
				t.Errorf("sweep %v: %s is %v from the center", tt.sweep, el.P0, d)
			}
		}
	}
}

func TestArcEndPoints(t *testing.T) {
	const epsilon = 1e-12
	a := Arc{Center: Pt(0, 0), Radii: Vec(3, 1), StartAngle: 0, SweepAngle: math.Pi / 2, XRotation: math.Pi / 2}
	els := a.Elements()
	// Rotated by 90°, angle 0 lies on the positive y axis.
	assertNear(t, els[0].P0, Pt(0, 3), epsilon)
	assertNear(t, els[len(els)-1].P2, Pt(-1, 0), epsilon)
}

func TestArcClosure(t *testing.T) {
	base := Arc{Center: Pt(0, 0), Radii: Vec(10, 10), StartAngle: 0, SweepAngle: math.Pi / 2}

	open := base
	chord := base
	chord.Closure = ArcChord
	pie := base
	pie.Closure = ArcPie

	kinds := func(a Arc) []SegmentKind {
		var out []SegmentKind
		for _, el := range a.Elements() {
			out = append(out, el.Kind)
		}
		return out
	}
	diff(t, []SegmentKind{MoveToKind, CubicToKind}, kinds(open))
	diff(t, []SegmentKind{MoveToKind, CubicToKind, ClosePathKind}, kinds(chord))
	diff(t, []SegmentKind{MoveToKind, CubicToKind, LineToKind, ClosePathKind}, kinds(pie))

	// (2, 2) lies between the chord and the center.
	if chord.Contains(Pt(2, 2)) || open.Contains(Pt(2, 2)) {
		t.Error("(2, 2) should be outside the chord")
	}
	if !pie.Contains(Pt(2, 2)) {
		t.Error("(2, 2) should be inside the pie")
	}
	if !chord.Contains(Pt(6, 6)) || !pie.Contains(Pt(6, 6)) {
		t.Error("(6, 6) should be inside")
	}
}

func TestNewArc(t *testing.T) {
	a, err := NewArc(Pt(1, 2), Vec(3, 4), 0, math.Pi, 0, ArcPie)
	if err != nil {
		t.Fatal(err)
	}
	if a.Closure != ArcPie || a.Center != Pt(1, 2) {
		t.Errorf("got %+v", a)
	}
	if _, err := NewArc(Pt(1, 2), Vec(3, 4), 0, math.Pi, 0, ArcClosure(3)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v, want ErrInvalidArgument", err)
	}
	if s := ArcClosure(3).String(); s != "ArcClosure(3)" {
		t.Errorf("got %q", s)
	}

	moved := a.Translate(Vec(1, 1))
	if moved.Center != Pt(2, 3) {
		t.Errorf("got center %s", moved.Center)
	}
}
