package geom

import (
	"math"
	"testing"
)

func TestLineIsInf(t *testing.T) {
	if (Line{Pt(0.0, 0.0), Pt(1.0, 1.0)}).IsInf() {
		t.Error("line is infinite but shouldn't be")
	}

	if !(Line{Pt(0.0, 0.0), Pt(math.Inf(1), 1.0)}).IsInf() {
		t.Errorf("line is finite but shouldn't be")
	}

	if !(Line{Pt(0.0, 0.0), Pt(0.0, math.Inf(1))}).IsInf() {
		t.Errorf("line is finite but shouldn't be")
	}
}

func TestLineCrossingPoint(t *testing.T) {
	l := Line{Pt(0, 0), Pt(10, 10)}
	pt, ok := l.CrossingPoint(Line{Pt(0, 10), Pt(10, 0)})
	if !ok {
		t.Fatal("lines don't cross")
	}
	assertNear(t, pt, Pt(5, 5), 1e-12)

	// Lines are extended to infinity.
	pt, ok = l.CrossingPoint(Line{Pt(20, 0), Pt(21, 0)})
	if !ok {
		t.Fatal("lines don't cross")
	}
	assertNear(t, pt, Pt(0, 0), 1e-12)

	if _, ok := l.CrossingPoint(Line{Pt(1, 0), Pt(11, 10)}); ok {
		t.Error("parallel lines cross")
	}
}

func TestLineRelativeCCW(t *testing.T) {
	l := Line{Pt(0, 0), Pt(10, 0)}
	tests := []struct {
		pt   Point
		want int
	}{
		{Pt(5, 5), -1},
		{Pt(5, -5), 1},
		{Pt(5, 0), 0},
		{Pt(0, 0), 0},
		{Pt(10, 0), 0},
		{Pt(-5, 0), -1},
		{Pt(15, 0), 1},
	}
	for _, tt := range tests {
		if got := l.RelativeCCW(tt.pt); got != tt.want {
			t.Errorf("RelativeCCW(%v) = %d, want %d", tt.pt, got, tt.want)
		}
	}
}

func TestLineDistance(t *testing.T) {
	l := Line{Pt(0, 0), Pt(10, 0)}
	tests := []struct {
		pt          Point
		seg, infSeg float64
	}{
		{Pt(5, 3), 9, 9},
		{Pt(13, 4), 25, 16},
		{Pt(-3, 4), 25, 16},
		{Pt(7, 0), 0, 0},
	}
	for _, tt := range tests {
		if got := l.PtSegDistSq(tt.pt); math.Abs(got-tt.seg) > 1e-12 {
			t.Errorf("PtSegDistSq(%v) = %g, want %g", tt.pt, got, tt.seg)
		}
		if got := l.PtLineDistSq(tt.pt); math.Abs(got-tt.infSeg) > 1e-12 {
			t.Errorf("PtLineDistSq(%v) = %g, want %g", tt.pt, got, tt.infSeg)
		}
	}
}

func TestLineNearest(t *testing.T) {
	l := Line{Pt(0, 0), Pt(10, 0)}
	tests := []struct {
		pt         Point
		distSq, at float64
	}{
		{Pt(2.5, 1), 1, 0.25},
		{Pt(-1, 0), 1, 0},
		{Pt(12, 0), 4, 1},
	}
	for _, tt := range tests {
		distSq, at := l.Nearest(tt.pt)
		if math.Abs(distSq-tt.distSq) > 1e-12 || math.Abs(at-tt.at) > 1e-12 {
			t.Errorf("Nearest(%v) = (%g, %g), want (%g, %g)", tt.pt, distSq, at, tt.distSq, tt.at)
		}
	}
}

func TestLineIntersects(t *testing.T) {
	l := Line{Pt(0, 0), Pt(10, 0)}
	tests := []struct {
		o    Line
		want bool
	}{
		{Line{Pt(5, -5), Pt(5, 5)}, true},
		{Line{Pt(10, 0), Pt(10, 5)}, true},
		{Line{Pt(5, 1), Pt(5, 5)}, false},
		{Line{Pt(5, 0), Pt(15, 0)}, true},
		{Line{Pt(12, 0), Pt(15, 0)}, false},
		{Line{Pt(0, 1), Pt(10, 1)}, false},
	}
	for _, tt := range tests {
		if got := l.Intersects(tt.o); got != tt.want {
			t.Errorf("Intersects(%v) = %t, want %t", tt.o, got, tt.want)
		}
		if got := tt.o.Intersects(l); got != tt.want {
			t.Errorf("%v.Intersects = %t, want %t", tt.o, got, tt.want)
		}
	}
}

func TestLineSubsegment(t *testing.T) {
	l := Line{Pt(0, 0), Pt(10, 20)}
	diff(t, Line{Pt(2.5, 5), Pt(5, 10)}, l.Subsegment(0.25, 0.5))

	l0, l1 := l.Subdivide()
	diff(t, Line{Pt(0, 0), Pt(5, 10)}, l0)
	diff(t, Line{Pt(5, 10), Pt(10, 20)}, l1)
}

func TestLineIterator(t *testing.T) {
	l := Line{Pt(1, 2), Pt(3, 4)}
	diff(t, []PathElement{MoveTo(Pt(1, 2)), LineTo(Pt(3, 4))}, elementsOf(l.Iterator(nil)))

	aff := NewTranslate(1, 1)
	diff(t, []PathElement{MoveTo(Pt(2, 3)), LineTo(Pt(4, 5))}, elementsOf(l.Iterator(&aff)))

	if l.Contains(Pt(2, 3)) {
		t.Error("line contains a point")
	}
}
