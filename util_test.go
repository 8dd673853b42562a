package geom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// signedArea returns the area enclosed by the outline of it, closing open
// subpaths. Outlines that run counterclockwise in a y-up coordinate system
// have positive area.
func signedArea(it SegmentIterator) float64 {
	var (
		c          [6]float64
		cur, start Point
		area       float64
	)
	line := func(p0, p1 Point) float64 {
		return 0.5 * (p0.X*p1.Y - p1.X*p0.Y)
	}
	for ; !it.Done(); it.Next() {
		switch kind := it.Current(&c); kind {
		case MoveToKind:
			area += line(cur, start)
			cur, start = Pt(c[0], c[1]), Pt(c[0], c[1])
		case LineToKind:
			area += line(cur, Pt(c[0], c[1]))
			cur = Pt(c[0], c[1])
		case QuadToKind:
			q := QuadBez{cur, Pt(c[0], c[1]), Pt(c[2], c[3])}
			area += q.SignedArea()
			cur = q.P2
		case CubicToKind:
			cb := CubicBez{cur, Pt(c[0], c[1]), Pt(c[2], c[3]), Pt(c[4], c[5])}
			area += cb.SignedArea()
			cur = cb.P3
		case ClosePathKind:
			area += line(cur, start)
			cur = start
		}
	}
	return area + line(cur, start)
}
