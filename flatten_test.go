package geom

import (
	"errors"
	"math"
	"testing"
)

func TestFlattenScenario(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}
	const flatness = 0.1
	var pts []Point
	for el := range Flatten(c.Iterator(nil), flatness) {
		switch el.Kind {
		case MoveToKind, LineToKind:
			pts = append(pts, el.P0)
		default:
			t.Fatalf("unexpected %s", el.Kind)
		}
	}
	if len(pts) < 3 {
		t.Fatalf("got only %d points", len(pts))
	}
	if pts[0] != c.P0 || pts[len(pts)-1] != c.P3 {
		t.Errorf("polyline runs from %s to %s, want %s to %s", pts[0], pts[len(pts)-1], c.P0, c.P3)
	}
	for i, pt := range pts {
		if d, _ := c.Nearest(pt, 1e-9); math.Sqrt(d) > flatness {
			t.Errorf("point %d %s is %g away from the curve", i, pt, math.Sqrt(d))
		}
		if i > 0 {
			mid := pts[i-1].Midpoint(pt)
			if d, _ := c.Nearest(mid, 1e-9); math.Sqrt(d) > flatness {
				t.Errorf("line %d ends %s, %s and strays %g from the curve", i, pts[i-1], pt, math.Sqrt(d))
			}
		}
	}
}

func TestFlattenQuad(t *testing.T) {
	q := QuadBez{Pt(0, 0), Pt(50, 100), Pt(100, 0)}
	const flatness = 0.5
	var prev Point
	n := 0
	for el := range Flatten(q.Iterator(nil), flatness) {
		if el.Kind == LineToKind {
			if d, _ := q.Nearest(prev.Midpoint(el.P0)); math.Sqrt(d) > flatness {
				t.Errorf("line from %s to %s strays %g from the curve", prev, el.P0, math.Sqrt(d))
			}
			n++
		}
		prev = el.P0
	}
	if prev != q.P2 {
		t.Errorf("polyline ends at %s, want %s", prev, q.P2)
	}
	if n < 2 || n > 1<<DefaultRecursionLimit {
		t.Errorf("got %d lines", n)
	}
}

func TestFlattenLimit(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}
	for _, limit := range []int{0, 1, 4, 7} {
		it, err := NewFlatteningIterator(c.Iterator(nil), 0, WithLimit(limit))
		if err != nil {
			t.Fatal(err)
		}
		if it.RecursionLimit() != limit {
			t.Errorf("got limit %d, want %d", it.RecursionLimit(), limit)
		}
		lines := 0
		for el := range Elements(it) {
			if el.Kind == LineToKind {
				lines++
			}
		}
		if want := 1 << limit; lines != want {
			t.Errorf("limit %d: got %d lines, want %d", limit, lines, want)
		}
	}
}

func TestFlattenDegenerate(t *testing.T) {
	// All control points lie on the chord.
	c := CubicBez{Pt(0, 0), Pt(1, 1), Pt(2, 2), Pt(3, 3)}
	got := elementsOf(mustFlatten(t, c.Iterator(nil), 0))
	want := []PathElement{MoveTo(Pt(0, 0)), LineTo(Pt(3, 3))}
	diff(t, want, got)

	q := QuadBez{Pt(1, 1), Pt(1, 1), Pt(1, 1)}
	got = elementsOf(mustFlatten(t, q.Iterator(nil), 0))
	want = []PathElement{MoveTo(Pt(1, 1)), LineTo(Pt(1, 1))}
	diff(t, want, got)
}

func mustFlatten(t *testing.T, it SegmentIterator, flatness float64, opts ...FlattenOption) *FlatteningIterator {
	t.Helper()
	fit, err := NewFlatteningIterator(it, flatness, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return fit
}

func TestFlattenInvalid(t *testing.T) {
	src := Line{Pt(0, 0), Pt(1, 1)}.Iterator(nil)
	tests := []struct {
		name     string
		flatness float64
		opts     []FlattenOption
	}{
		{"negative flatness", -1, nil},
		{"NaN flatness", math.NaN(), nil},
		{"negative limit", 1, []FlattenOption{WithLimit(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFlatteningIterator(src, tt.flatness, tt.opts...); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("got %v, want ErrInvalidArgument", err)
			}
		})
	}

	defer func() {
		if recover() == nil {
			t.Error("Flatten with negative flatness didn't panic")
		}
	}()
	Flatten(src, -1)
}

func TestFlattenPassthrough(t *testing.T) {
	p := NewPath[float64](EvenOdd, 0)
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.QuadTo(10, 10, 0, 10)
	p.ClosePath()
	p.MoveTo(20, 20)
	p.LineTo(30, 20)

	it := mustFlatten(t, p.Iterator(nil), 1)
	if it.WindingRule() != EvenOdd {
		t.Errorf("got winding rule %s, want evenodd", it.WindingRule())
	}
	if it.Flatness() != 1 {
		t.Errorf("got flatness %g, want 1", it.Flatness())
	}
	var kinds []SegmentKind
	for el := range Elements(it) {
		kinds = append(kinds, el.Kind)
	}
	if kinds[0] != MoveToKind || kinds[1] != LineToKind {
		t.Fatalf("got %v", kinds)
	}
	n := len(kinds)
	diff(t, []SegmentKind{ClosePathKind, MoveToKind, LineToKind}, kinds[n-3:])
	for _, k := range kinds[2 : n-3] {
		if k != LineToKind {
			t.Errorf("got %s in flattened curve", k)
		}
	}

	// The flattened outline contains the same points.
	if ok, err := ContainsPoint(mustFlatten(t, p.Iterator(nil), 0.01), Pt(5, 5)); err != nil || !ok {
		t.Errorf("got (%t, %v), want (true, nil)", ok, err)
	}
}

func TestFlattenExhausted(t *testing.T) {
	it := mustFlatten(t, Line{Pt(0, 0), Pt(1, 1)}.Iterator(nil), 1)
	var c32 [6]float32
	if kind := it.Current32(&c32); kind != MoveToKind || c32[0] != 0 {
		t.Errorf("got %s %v", kind, c32[:2])
	}
	it.Next()
	it.Next()
	if !it.Done() {
		t.Fatal("iterator should be done")
	}
	it.Next()
	if !it.Done() {
		t.Fatal("Next revived a done iterator")
	}
	defer func() {
		if recover() == nil {
			t.Error("Current on a done iterator didn't panic")
		}
	}()
	var c [6]float64
	it.Current(&c)
}

func TestFlattenTransform(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(0, 1), Pt(1, 1), Pt(1, 0)}
	aff := NewScale(100, 100)
	// Scaling the curve up requires more lines for the same flatness.
	small := len(elementsOf(mustFlatten(t, c.Iterator(nil), 0.1)))
	large := len(elementsOf(mustFlatten(t, c.Iterator(&aff), 0.1)))
	if large <= small {
		t.Errorf("got %d elements for the scaled curve and %d for the original", large, small)
	}
}
