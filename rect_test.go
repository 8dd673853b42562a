package geom

import (
	"fmt"
	"math"
	"testing"
)

func TestRectAreaSign(t *testing.T) {
	approxEqual := func(x, y float64) bool {
		return math.Abs(x-y) < 1e-8
	}

	r := Rect{0.0, 0.0, 10.0, 10.0}
	center := r.Center()
	if a := r.Area(); !approxEqual(a, 100) {
		t.Errorf("got area %v, want %v", a, 100.0)
	}
	if n, _ := PointCrossings(r.Iterator(nil), center.X, center.Y); n != 1 {
		t.Errorf("got crossings %v, want %v", n, 1)
	}
	if ra, pa := r.Area(), signedArea(r.Iterator(nil)); !approxEqual(ra, pa) {
		t.Errorf("expected r's and its outline's areas to be approximately equal, got %v and %v", ra, pa)
	}

	rFlip := Rect{0.0, 10.0, 10.0, 0.0}
	if a := rFlip.Area(); !approxEqual(a, -100) {
		t.Errorf("got area %v, want %v", a, -100.0)
	}
	if n, _ := PointCrossings(rFlip.Iterator(nil), 5, 5); n != -1 {
		t.Errorf("got crossings %v, want %v", n, -1)
	}
	if ra, pa := rFlip.Area(), signedArea(rFlip.Iterator(nil)); !approxEqual(ra, pa) {
		t.Errorf("expected r's and its outline's areas to be approximately equal, got %v and %v", ra, pa)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{0, 0, 10, 5}
	tests := []struct {
		pt   Point
		want bool
	}{
		{Pt(0, 0), true},
		{Pt(5, 2), true},
		{Pt(10, 2), false},
		{Pt(5, 5), false},
		{Pt(-1, 2), false},
		{Pt(math.NaN(), 2), false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.pt); got != tt.want {
			t.Errorf("%s: got %t, want %t", tt.pt, got, tt.want)
		}
	}

	if !r.ContainsRect(Rect{1, 1, 10, 5}) {
		t.Error("rect should contain its own edge-aligned subrect")
	}
	if r.ContainsRect(Rect{1, 1, 11, 5}) {
		t.Error("rect shouldn't contain rect crossing its edge")
	}
	if r.ContainsRect(Rect{1, 1, 1, 5}) {
		t.Error("rect shouldn't contain empty rect")
	}
	if !r.Overlaps(Rect{9, 4, 20, 20}) || r.Overlaps(Rect{10, 0, 20, 5}) {
		t.Error("wrong overlap")
	}
}

func TestRectSetOps(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	b := Rect{5, -5, 15, 5}
	diff(t, Rect{0, -5, 15, 10}, a.Union(b))
	diff(t, Rect{5, 0, 10, 5}, a.Intersect(b))
	diff(t, Rect{20, 20, 20, 20}, Rect{20, 20, 30, 30}.Intersect(Rect{0, 0, 10, 10}))
	diff(t, Rect{-1, 0, 10, 12}, a.UnionPoint(Pt(-1, 12)))
	diff(t, Rect{-1, -2, 11, 12}, a.Inflate(1, 2))
	diff(t, Rect{1, 2, 3, 4}, Rect{3, 4, 1, 2}.Abs())
	diff(t, Rect{-2, 0, 2, 4}, Rect{-1.5, 0.5, 1.2, 3.5}.Expand())
	diff(t, Rect{2, 0, -2, 4}, Rect{1.5, 0.5, -1.2, 3.5}.Expand())
	diff(t, Rect{1, 1, 3, 5}, NewRectFromCenter(Pt(2, 3), Sz(2, 4)))
	diff(t, Rect{-1, 0, 1, 2}, NewRectFromOrigin(Pt(1, 2), Sz(-2, -2)))
}

func TestRectOutcode(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	tests := []struct {
		pt   Point
		want int
	}{
		{Pt(5, 5), 0},
		{Pt(10, 10), 0},
		{Pt(-1, 5), OutLeft},
		{Pt(11, 5), OutRight},
		{Pt(5, -1), OutTop},
		{Pt(5, 11), OutBottom},
		{Pt(-1, 11), OutLeft | OutBottom},
	}
	for _, tt := range tests {
		if got := r.Outcode(tt.pt); got != tt.want {
			t.Errorf("%s: got %04b, want %04b", tt.pt, got, tt.want)
		}
	}
	if got := (Rect{0, 0, 0, 10}).Outcode(Pt(0, 5)); got != OutLeft|OutRight {
		t.Errorf("zero-width rect: got %04b", got)
	}
}

func TestRectIntersectsLine(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	tests := []struct {
		l    Line
		want bool
	}{
		{Line{Pt(5, 5), Pt(20, 20)}, true},
		{Line{Pt(-5, 5), Pt(15, 5)}, true},
		{Line{Pt(-5, -5), Pt(-1, 20)}, false},
		{Line{Pt(-5, 4), Pt(4, -5)}, false},
		{Line{Pt(-5, 6), Pt(6, -5)}, true},
		{Line{Pt(15, 0), Pt(20, 10)}, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.l), func(t *testing.T) {
			if got := r.IntersectsLine(tt.l); got != tt.want {
				t.Errorf("got %t, want %t", got, tt.want)
			}
			if got := tt.l.IntersectsRect(r); got != tt.want {
				t.Errorf("Line.IntersectsRect: got %t, want %t", got, tt.want)
			}
		})
	}
}

func TestRoundedRectArea(t *testing.T) {
	const epsilon = 1e-9

	// Extremum: 0.0 radius corner -> rectangle
	rect := Rect{0.0, 0.0, 100.0, 100.0}
	roundedRect := RoundedRect{Rect: rect}
	if ra, rra := rect.Area(), roundedRect.Area(); math.Abs(ra-rra) > epsilon {
		t.Errorf("got areas %v and %v, expected them to be equal", ra, rra)
	}

	// Extremum: half-size radius corner -> circle
	circle := Circle{Pt(0.0, 0.0), 50.0}
	roundedRect = NewRoundedRect(0, 0, 100, 100, 50)
	if ca, rra := circle.Area(), roundedRect.Area(); math.Abs(ca-rra) > epsilon {
		t.Errorf("got areas %v and %v, expected them to be equal", ca, rra)
	}
}

func TestRoundedRectContains(t *testing.T) {
	type point struct {
		point    Point
		contains bool
	}
	tests := []struct {
		rect   RoundedRect
		points []point
	}{
		{
			RoundedRect{Rect{-5.0, -5.0, 10.0, 20.0}, RoundedRectRadii{5, 5, 5, 0}},
			[]point{
				{Pt(0.0, 0.0), true},
				{Pt(-5.0, 0.0), true},   // left edge
				{Pt(-4.9, 19.9), true},  // bottom-left corner (has a radius of 0)
				{Pt(9.9, 19.9), false},  // bottom-right corner
				{Pt(-4.9, -4.9), false}, // top-left corner
				{Pt(-10.0, 0.0), false},
				{Pt(0.0, 20.0), false}, // bottom edge
			},
		},
		{
			NewRoundedRect(-10.0, -20.0, 10.0, 20.0, 0.0), // rectangle
			[]point{
				{Pt(9.9, 19.9), true}, // bottom-right corner
			},
		},
	}
	for i, tt := range tests {
		for j, p := range tt.points {
			if got := tt.rect.Contains(p.point); got != p.contains {
				t.Errorf("test %d, point %d (zero-indexed): got %t, expected %t", i, j, got, p.contains)
			}
		}
	}
}

func TestRoundedRectBeziers(t *testing.T) {
	rect := NewRoundedRect(-5, -5, 10, 20, 5)
	// The cubic approximation of the corners is slightly off.
	if ra, pa := rect.Area(), signedArea(rect.Iterator(nil)); math.Abs(ra-pa) > 1e-3*ra {
		t.Errorf("got areas %v and %v, expected them to be the same", ra, pa)
	}
	if ok, _ := ContainsPoint(rect.Iterator(nil), Point{}); !ok {
		t.Error("origin should be inside")
	}
	if els := rect.Elements(); len(els) != 9 {
		t.Errorf("got %d elements, want 9", len(els))
	}
	if els := NewRoundedRect(0, 0, 1, 1, 0).Elements(); len(els) != 5 {
		t.Errorf("got %d elements for sharp corners, want 5", len(els))
	}
}
