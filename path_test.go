package geom

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func square[T float32 | float64](rule WindingRule, x0, y0, x1, y1 float64) *Path[T] {
	p := NewPath[T](rule, 0)
	p.MoveTo(x0, y0)
	p.LineTo(x1, y0)
	p.LineTo(x1, y1)
	p.LineTo(x0, y1)
	p.ClosePath()
	return p
}

func TestPathScenario(t *testing.T) {
	for _, rule := range []WindingRule{NonZero, EvenOdd} {
		t.Run(rule.String(), func(t *testing.T) {
			p := NewPath[float64](rule, 0)
			p.MoveTo(0, 0)
			if err := p.LineTo(4, 0); err != nil {
				t.Fatal(err)
			}
			if err := p.LineTo(4, 4); err != nil {
				t.Fatal(err)
			}
			if err := p.LineTo(0, 4); err != nil {
				t.Fatal(err)
			}
			p.ClosePath()
			if !p.Contains(2, 2) {
				t.Error("(2, 2) should be inside")
			}
			if p.Contains(5, 5) {
				t.Error("(5, 5) should be outside")
			}
		})
	}
}

func TestPathDirection(t *testing.T) {
	ccw := square[float64](NonZero, 0, 0, 4, 4)
	cw := NewPath[float64](NonZero, 0)
	cw.MoveTo(0, 0)
	cw.LineTo(0, 4)
	cw.LineTo(4, 4)
	cw.LineTo(4, 0)
	cw.ClosePath()

	a, err := PointCrossings(ccw.Iterator(nil), 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	b, err := PointCrossings(cw.Iterator(nil), 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if a == 0 || a != -b {
		t.Errorf("opposite directions should cross with opposite signs, got %d and %d", a, b)
	}
	for _, p := range []*Path64{ccw, cw} {
		if !p.Contains(2, 2) {
			t.Errorf("%s: (2, 2) should be inside", p)
		}
	}
}

func TestPathIllegalState(t *testing.T) {
	tests := []struct {
		name string
		fn   func(p *Path64) error
	}{
		{"LineTo", func(p *Path64) error { return p.LineTo(1, 1) }},
		{"QuadTo", func(p *Path64) error { return p.QuadTo(1, 1, 2, 2) }},
		{"CubicTo", func(p *Path64) error { return p.CubicTo(1, 1, 2, 2, 3, 3) }},
		{"Append", func(p *Path64) error {
			return p.AppendElements([]PathElement{LineTo(Pt(1, 1))}, false)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Path64
			if err := tt.fn(&p); !errors.Is(err, ErrIllegalPathState) {
				t.Errorf("got %v, want ErrIllegalPathState", err)
			}
			if p.Len() != 0 || p.NumCoords() != 0 {
				t.Errorf("failed append modified path: %d segments, %d coordinates", p.Len(), p.NumCoords())
			}
		})
	}
}

func TestPathMoveToCollapse(t *testing.T) {
	var p Path64
	p.MoveTo(1, 1)
	p.MoveTo(2, 3)
	if p.Len() != 1 || p.NumCoords() != 2 {
		t.Fatalf("got %d segments and %d coordinates, want 1 and 2", p.Len(), p.NumCoords())
	}
	if pt, ok := p.CurrentPoint(); !ok || pt != Pt(2, 3) {
		t.Errorf("got current point %s, %t, want (2, 3)", pt, ok)
	}
}

func TestPathClosePath(t *testing.T) {
	var p Path64
	if err := p.ClosePath(); !errors.Is(err, ErrIllegalPathState) {
		t.Errorf("got %v, want ErrIllegalPathState", err)
	}
	if p.Len() != 0 {
		t.Errorf("ClosePath on empty path added %d segments", p.Len())
	}

	p.MoveTo(1, 2)
	p.LineTo(5, 2)
	p.LineTo(5, 6)
	if err := p.ClosePath(); err != nil {
		t.Fatal(err)
	}
	// A second close is a no-op.
	if err := p.ClosePath(); err != nil {
		t.Fatal(err)
	}
	diff(t, []SegmentKind{MoveToKind, LineToKind, LineToKind, ClosePathKind}, p.kinds)
	if pt, ok := p.CurrentPoint(); !ok || pt != Pt(1, 2) {
		t.Errorf("got current point %s, %t, want (1, 2)", pt, ok)
	}

	p.MoveTo(10, 10)
	p.LineTo(11, 10)
	p.ClosePath()
	if pt, _ := p.CurrentPoint(); pt != Pt(10, 10) {
		t.Errorf("got current point %s, want (10, 10)", pt)
	}
	var q Path32
	if err := q.AppendElements([]PathElement{ClosePath(), MoveTo(Pt(1, 1))}, false); !errors.Is(err, ErrIllegalPathState) {
		t.Errorf("appending a leading close: got %v, want ErrIllegalPathState", err)
	}
	if q.Len() != 0 {
		t.Errorf("failed append added %d segments", q.Len())
	}
}

func TestPathAppend(t *testing.T) {
	line := []PathElement{MoveTo(Pt(4, 0)), LineTo(Pt(4, 4))}

	t.Run("connect", func(t *testing.T) {
		p := NewPath[float64](NonZero, 0)
		p.MoveTo(0, 0)
		p.LineTo(2, 0)
		if err := p.AppendElements(line, true); err != nil {
			t.Fatal(err)
		}
		diff(t, []SegmentKind{MoveToKind, LineToKind, LineToKind, LineToKind}, p.kinds)
		diff(t, []float64{0, 0, 2, 0, 4, 0, 4, 4}, p.coords)
	})

	t.Run("collapse", func(t *testing.T) {
		p := NewPath[float64](NonZero, 0)
		p.MoveTo(0, 0)
		p.LineTo(4, 0)
		if err := p.AppendElements(line, true); err != nil {
			t.Fatal(err)
		}
		diff(t, []SegmentKind{MoveToKind, LineToKind, LineToKind}, p.kinds)
		diff(t, []float64{0, 0, 4, 0, 4, 4}, p.coords)
	})

	t.Run("after close", func(t *testing.T) {
		p := NewPath[float64](NonZero, 0)
		p.MoveTo(4, 0)
		p.LineTo(8, 0)
		p.ClosePath()
		if err := p.AppendElements(line, true); err != nil {
			t.Fatal(err)
		}
		diff(t, []SegmentKind{MoveToKind, LineToKind, ClosePathKind, LineToKind, LineToKind}, p.kinds)
	})

	t.Run("no connect", func(t *testing.T) {
		p := NewPath[float64](NonZero, 0)
		p.MoveTo(0, 0)
		p.LineTo(2, 0)
		if err := p.AppendElements(line, false); err != nil {
			t.Fatal(err)
		}
		diff(t, []SegmentKind{MoveToKind, LineToKind, MoveToKind, LineToKind}, p.kinds)
	})

	t.Run("empty", func(t *testing.T) {
		var p Path64
		if err := p.AppendElements(line, true); err != nil {
			t.Fatal(err)
		}
		diff(t, []SegmentKind{MoveToKind, LineToKind}, p.kinds)
	})

	t.Run("winding rule", func(t *testing.T) {
		p := NewPath[float64](EvenOdd, 0)
		if err := p.Append(IterateElements(line, NonZero, nil), false); err != nil {
			t.Fatal(err)
		}
		if p.WindingRule() != EvenOdd {
			t.Errorf("Append changed the winding rule to %s", p.WindingRule())
		}
	})
}

func TestPathBounds(t *testing.T) {
	var empty Path64
	if b := empty.Bounds(); b != (Rect{}) {
		t.Errorf("empty path: got %v", b)
	}

	p := NewPath[float64](NonZero, 0)
	p.MoveTo(0, 0)
	p.CubicTo(0, 10, 10, 10, 10, 0)
	p.QuadTo(5, -10, 0, 0)

	diff(t, Rect{0, -10, 10, 10}, p.ControlBounds())
	b := p.Bounds()
	want := Rect{0, -5, 10, 7.5}
	const epsilon = 1e-12
	if math.Abs(b.X0-want.X0) > epsilon || math.Abs(b.Y0-want.Y0) > epsilon ||
		math.Abs(b.X1-want.X1) > epsilon || math.Abs(b.Y1-want.Y1) > epsilon {
		t.Errorf("got bounds %v, want %v", b, want)
	}
	if !p.ControlBounds().ContainsRect(b) {
		t.Errorf("control bounds %v don't contain bounds %v", p.ControlBounds(), b)
	}
}

func TestPathTransform(t *testing.T) {
	p := square[float64](NonZero, 0, 0, 1, 1)
	aff := NewScale(2, 3)
	aff.Translate(1, 1)

	q := p.CreateTransformedPath(&aff)
	diff(t, []float64{0, 0, 1, 0, 1, 1, 0, 1}, p.coords)
	diff(t, []float64{2, 3, 4, 3, 4, 6, 2, 6}, q.coords)

	// Iterating with a transform yields the same segments as transforming
	// the path.
	diff(t, q.Elements(), elementsOf(p.Iterator(&aff)))

	p.Transform(&aff)
	diff(t, q.coords, p.coords)

	r := q.CreateTransformedPath(nil)
	r.coords[0] = 100
	if q.coords[0] == 100 {
		t.Error("CreateTransformedPath(nil) shares storage")
	}
}

func elementsOf(it SegmentIterator) []PathElement {
	var out []PathElement
	for el := range Elements(it) {
		out = append(out, el)
	}
	return out
}

func TestPathPrecision(t *testing.T) {
	p64 := NewPath[float64](NonZero, 0)
	p64.MoveTo(0.1, 1e-50)
	p64.LineTo(1, 2)

	p32, err := NewPathFrom[float32](p64.Iterator(nil), nil)
	if err != nil {
		t.Fatal(err)
	}
	var c32 [6]float32
	it := p32.Iterator(nil)
	it.Current32(&c32)
	if c32[0] != float32(0.1) || c32[1] != 0 {
		t.Errorf("got (%v, %v), want (%v, 0)", c32[0], c32[1], float32(0.1))
	}

	var c64 [6]float64
	it.Current(&c64)
	if c64[0] != float64(float32(0.1)) {
		t.Errorf("got %v, want %v", c64[0], float64(float32(0.1)))
	}

	it = p64.Iterator(nil)
	it.Current(&c64)
	if c64[0] != 0.1 || c64[1] != 1e-50 {
		t.Errorf("64-bit path lost precision: (%v, %v)", c64[0], c64[1])
	}
}

func TestPathGrowth(t *testing.T) {
	p := NewPath[float32](NonZero, 1)
	p.MoveTo(0, 0)
	for i := range 1000 {
		p.LineTo(float64(i), float64(i))
	}
	if p.Len() != 1001 || p.NumCoords() != 2002 {
		t.Fatalf("got %d segments and %d coordinates", p.Len(), p.NumCoords())
	}
	p.TrimToSize()
	if cap(p.kinds) != len(p.kinds) || cap(p.coords) != len(p.coords) {
		t.Error("TrimToSize left unused capacity")
	}
	p.Reset()
	if p.Len() != 0 {
		t.Errorf("got %d segments after Reset", p.Len())
	}
	if _, ok := p.CurrentPoint(); ok {
		t.Error("empty path has a current point")
	}
}

func TestPathSetWindingRule(t *testing.T) {
	var p Path64
	if p.WindingRule() != NonZero {
		t.Errorf("zero path has winding rule %s", p.WindingRule())
	}
	if err := p.SetWindingRule(EvenOdd); err != nil {
		t.Fatal(err)
	}
	if err := p.SetWindingRule(WindingRule(7)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got %v, want ErrInvalidArgument", err)
	}
	if p.WindingRule() != EvenOdd {
		t.Errorf("failed SetWindingRule changed the rule to %s", p.WindingRule())
	}
}

func TestPathContainsRect(t *testing.T) {
	outer := square[float64](NonZero, 0, 0, 10, 10)
	tests := []struct {
		r          Rect
		contains   bool
		intersects bool
	}{
		{Rect{2, 2, 4, 4}, true, true},
		{Rect{8, 8, 12, 12}, false, true},
		{Rect{11, 11, 12, 12}, false, false},
		{Rect{-5, -5, 15, 15}, false, true},
		{Rect{2, 2, 2, 4}, false, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.r), func(t *testing.T) {
			if got := outer.ContainsRect(tt.r); got != tt.contains {
				t.Errorf("ContainsRect: got %t, want %t", got, tt.contains)
			}
			if got := outer.IntersectsRect(tt.r); got != tt.intersects {
				t.Errorf("IntersectsRect: got %t, want %t", got, tt.intersects)
			}
		})
	}
}

func TestPathEvenOdd(t *testing.T) {
	for _, rule := range []WindingRule{NonZero, EvenOdd} {
		p := square[float64](rule, 0, 0, 10, 10)
		if err := p.Append(square[float64](rule, 3, 3, 7, 7).Iterator(nil), false); err != nil {
			t.Fatal(err)
		}
		// Both squares run in the same direction, so the inner one is a
		// hole only under the even-odd rule.
		if got, want := p.Contains(5, 5), rule == NonZero; got != want {
			t.Errorf("%s: got %t, want %t", rule, got, want)
		}
		if !p.Contains(1, 1) {
			t.Errorf("%s: (1, 1) should be inside", rule)
		}
		if got, want := p.ContainsRect(Rect{4, 4, 6, 6}), rule == NonZero; got != want {
			t.Errorf("%s: ContainsRect got %t, want %t", rule, got, want)
		}
	}
}

func TestPathContainsNonFinite(t *testing.T) {
	p := square[float64](NonZero, 0, 0, 10, 10)
	for _, pt := range []Point{Pt(math.NaN(), 1), Pt(1, math.Inf(1)), Pt(math.Inf(-1), math.Inf(-1))} {
		if p.ContainsPoint(pt) {
			t.Errorf("%s should not be contained", pt)
		}
	}
}

func TestPathOpenSubpath(t *testing.T) {
	// An open triangle is implicitly closed.
	p := NewPath[float32](NonZero, 0)
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(10, 10)
	if !p.Contains(8, 2) {
		t.Error("(8, 2) should be inside the implicitly closed triangle")
	}
	if p.Contains(2, 8) {
		t.Error("(2, 8) should be outside the implicitly closed triangle")
	}
}

func TestPathCurves(t *testing.T) {
	p := NewPath[float64](NonZero, 0)
	p.MoveTo(0, 0)
	p.CubicTo(0, 10, 10, 10, 10, 0)
	p.ClosePath()
	if !p.Contains(5, 5) {
		t.Error("(5, 5) should be inside")
	}
	if p.Contains(5, 8) {
		t.Error("(5, 8) should be outside")
	}
	if p.Contains(0.5, 6) {
		t.Error("(0.5, 6) should be outside")
	}

	q := NewPath[float64](NonZero, 0)
	q.MoveTo(0, 0)
	q.QuadTo(5, 10, 10, 0)
	q.ClosePath()
	if !q.Contains(5, 4) {
		t.Error("(5, 4) should be inside")
	}
	if q.Contains(5, 6) {
		t.Error("(5, 6) should be outside")
	}
}

func TestPathClone(t *testing.T) {
	p := square[float64](EvenOdd, 0, 0, 1, 1)
	q := p.Clone()
	q.LineTo(5, 5)
	if p.Len() != 5 {
		t.Errorf("modifying clone changed original to %d segments", p.Len())
	}
	if q.WindingRule() != EvenOdd {
		t.Errorf("clone has winding rule %s", q.WindingRule())
	}
}

func TestPathString(t *testing.T) {
	p := square[float64](NonZero, 0, 0, 4, 4.5)
	if got, want := p.String(), "M0 0 L4 0 L4 4.5 L0 4.5 Z"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
