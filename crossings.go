package geom

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// rectIntersects is returned by the rect crossing functions as soon as a
// segment is known to intersect the rectangle.
const rectIntersects = math.MinInt32

// maxRectSubdivision bounds the subdivision of curves in rect crossing
// tests. float64 has 52 bits of mantissa, so further subdivision can't
// make progress.
const maxRectSubdivision = 52

// pointCrossingsForLine returns the number of times the ray from (px, py)
// towards +x crosses the line from (x0, y0) to (x1, y1). Segments with
// increasing y count +1, those with decreasing y count -1. The line covers
// the half-open y range [min(y0, y1), max(y0, y1)).
func pointCrossingsForLine(px, py, x0, y0, x1, y1 float64) int {
	if py < y0 && py < y1 {
		return 0
	}
	if py >= y0 && py >= y1 {
		return 0
	}
	if px >= x0 && px >= x1 {
		return 0
	}
	dir := -1
	if y0 < y1 {
		dir = 1
	}
	if px < x0 && px < x1 {
		return dir
	}
	xintercept := x0 + (py-y0)*(x1-x0)/(y1-y0)
	if px >= xintercept {
		return 0
	}
	return dir
}

// pointCrossingsForQuad is like pointCrossingsForLine for a quadratic
// Bézier. The curve may cross the ray twice.
func pointCrossingsForQuad(px, py, x0, y0, xc, yc, x1, y1 float64) int {
	if py < y0 && py < yc && py < y1 {
		return 0
	}
	if py >= y0 && py >= yc && py >= y1 {
		return 0
	}
	if px >= x0 && px >= xc && px >= x1 {
		return 0
	}
	if px < x0 && px < xc && px < x1 {
		// Entirely to the right of the point, so only the end points matter.
		return endpointCrossings(py, y0, y1)
	}

	var xs, ys [4]float64
	xs[0], xs[1], xs[2] = quadBezCoefficients(x0, xc, x1)
	ys[0], ys[1], ys[2] = quadBezCoefficients(y0, yc, y1)
	var splits [1]float64
	n := 0
	if d := y0 - 2*yc + y1; d != 0 {
		if t := (y0 - yc) / d; t > 0 && t < 1 {
			splits[0] = t
			n = 1
		}
	}
	return monotonicCrossings(px, py, &xs, &ys, splits[:n], y0, y1)
}

// pointCrossingsForCubic is like pointCrossingsForLine for a cubic Bézier.
// The curve may cross the ray up to three times.
func pointCrossingsForCubic(px, py, x0, y0, xc0, yc0, xc1, yc1, x1, y1 float64) int {
	if py < y0 && py < yc0 && py < yc1 && py < y1 {
		return 0
	}
	if py >= y0 && py >= yc0 && py >= yc1 && py >= y1 {
		return 0
	}
	if px >= x0 && px >= xc0 && px >= xc1 && px >= x1 {
		return 0
	}
	if px < x0 && px < xc0 && px < xc1 && px < x1 {
		return endpointCrossings(py, y0, y1)
	}

	var xs, ys [4]float64
	xs[0], xs[1], xs[2], xs[3] = cubicBezCoefficients(x0, xc0, xc1, x1)
	ys[0], ys[1], ys[2], ys[3] = cubicBezCoefficients(y0, yc0, yc1, y1)
	// y'(t) = ys[1] + 2 ys[2] t + 3 ys[3] t²
	roots, n := SolveQuadratic(ys[1], 2*ys[2], 3*ys[3])
	var splits [2]float64
	m := 0
	for _, t := range roots[:max(n, 0)] {
		if t > 0 && t < 1 {
			splits[m] = t
			m++
		}
	}
	if m == 2 && splits[0] > splits[1] {
		splits[0], splits[1] = splits[1], splits[0]
	}
	return monotonicCrossings(px, py, &xs, &ys, splits[:m], y0, y1)
}

// endpointCrossings counts the crossings of a curve that lies entirely to
// the right of the test point. Only the y range of its end points matters.
func endpointCrossings(py, y0, y1 float64) int {
	if py >= y0 {
		if py < y1 {
			return 1
		}
	} else if py >= y1 {
		return -1
	}
	return 0
}

// monotonicCrossings splits the curve with polynomial coefficients xs, ys at
// the sorted parameters in splits, which must be the interior extrema of
// y(t), and sums the crossings of the resulting y-monotonic pieces. y0 and
// y1 are the exact end point ordinates, so that the half-open ranges of
// adjacent segments line up.
func monotonicCrossings(px, py float64, xs, ys *[4]float64, splits []float64, y0, y1 float64) int {
	crossings := 0
	ta, ya := 0.0, y0
	for i := 0; i <= len(splits); i++ {
		tb, yb := 1.0, y1
		if i < len(splits) {
			tb = splits[i]
			yb = evalPoly(ys, tb)
		}
		var dir int
		switch {
		case ya <= py && py < yb:
			dir = 1
		case yb <= py && py < ya:
			dir = -1
		}
		if dir != 0 {
			t := monotonicRoot(ys, py, ta, tb)
			if px < evalPoly(xs, t) {
				crossings += dir
			}
		}
		ta, ya = tb, yb
	}
	return crossings
}

// monotonicRoot returns the parameter in [ta, tb] at which the monotonic
// piece of the polynomial ys reaches v.
func monotonicRoot(ys *[4]float64, v, ta, tb float64) float64 {
	eqn := *ys
	eqn[0] -= v
	roots, n := SolveCubic(eqn[0], eqn[1], eqn[2], eqn[3])
	const eps = 1e-9
	best := math.NaN()
	bestDist := math.Inf(1)
	for _, t := range roots[:max(n, 0)] {
		var d float64
		switch {
		case t < ta:
			d = ta - t
		case t > tb:
			d = t - tb
		}
		if d <= eps && d < bestDist {
			best = min(max(t, ta), tb)
			bestDist = d
		}
	}
	if !math.IsNaN(best) {
		return best
	}
	// The solver lost the root to rounding; the piece is monotonic, so
	// bisection finds it.
	if evalPoly(&eqn, ta) == 0 {
		return ta
	}
	return bisectRoot(&eqn, ta, tb)
}

// rectCrossingsForLine accumulates the crossings of the line from (x0, y0)
// to (x1, y1) with the right-hand shadow of the rectangle, or returns
// rectIntersects if the line intersects the rectangle.
func rectCrossingsForLine(crossings int, rxmin, rymin, rxmax, rymax, x0, y0, x1, y1 float64) int {
	if y0 >= rymax && y1 >= rymax {
		return crossings
	}
	if y0 <= rymin && y1 <= rymin {
		return crossings
	}
	if x0 <= rxmin && x1 <= rxmin {
		return crossings
	}
	if x0 >= rxmax && x1 >= rxmax {
		// The line is entirely to the right of the rect and overlaps its y
		// range, so it may enter, leave or cross the right-hand shadow.
		return shadowCrossings(crossings, rymin, rymax, y0, y1)
	}
	// Both ranges overlap. An end point inside the rect definitely
	// intersects.
	if (x0 > rxmin && x0 < rxmax && y0 > rymin && y0 < rymax) ||
		(x1 > rxmin && x1 < rxmax && y1 > rymin && y1 < rymax) {
		return rectIntersects
	}
	// Otherwise find where the line crosses the rect's y range.
	xi0 := x0
	if y0 < rymin {
		xi0 += (rymin - y0) * (x1 - x0) / (y1 - y0)
	} else if y0 > rymax {
		xi0 += (rymax - y0) * (x1 - x0) / (y1 - y0)
	}
	xi1 := x1
	if y1 < rymin {
		xi1 += (rymin - y1) * (x0 - x1) / (y0 - y1)
	} else if y1 > rymax {
		xi1 += (rymax - y1) * (x0 - x1) / (y0 - y1)
	}
	if xi0 <= rxmin && xi1 <= rxmin {
		return crossings
	}
	if xi0 >= rxmax && xi1 >= rxmax {
		return shadowCrossings(crossings, rymin, rymax, y0, y1)
	}
	return rectIntersects
}

func shadowCrossings(crossings int, rymin, rymax, y0, y1 float64) int {
	if y0 < y1 {
		if y0 <= rymin {
			crossings++
		}
		if y1 >= rymax {
			crossings++
		}
	} else if y1 < y0 {
		if y1 <= rymin {
			crossings--
		}
		if y0 >= rymax {
			crossings--
		}
	}
	return crossings
}

// curveShadowCrossings is shadowCrossings for a curve to the right of the
// rect, judged by the chord between its end points. The control points may
// cause the overlap while both end points are above or below the rect.
func curveShadowCrossings(crossings int, rymin, rymax, y0, y1 float64) int {
	if y0 < y1 {
		if y0 <= rymin && y1 > rymin {
			crossings++
		}
		if y0 < rymax && y1 >= rymax {
			crossings++
		}
	} else if y1 < y0 {
		if y1 <= rymin && y0 > rymin {
			crossings--
		}
		if y1 < rymax && y0 >= rymax {
			crossings--
		}
	}
	return crossings
}

func rectCrossingsForQuad(crossings int, rxmin, rymin, rxmax, rymax, x0, y0, xc, yc, x1, y1 float64, level int) int {
	if y0 >= rymax && yc >= rymax && y1 >= rymax {
		return crossings
	}
	if y0 <= rymin && yc <= rymin && y1 <= rymin {
		return crossings
	}
	if x0 <= rxmin && xc <= rxmin && x1 <= rxmin {
		return crossings
	}
	if x0 >= rxmax && xc >= rxmax && x1 >= rxmax {
		return curveShadowCrossings(crossings, rymin, rymax, y0, y1)
	}
	if (x0 < rxmax && x0 > rxmin && y0 < rymax && y0 > rymin) ||
		(x1 < rxmax && x1 > rxmin && y1 < rymax && y1 > rymin) {
		return rectIntersects
	}
	if level > maxRectSubdivision {
		return rectCrossingsForLine(crossings, rxmin, rymin, rxmax, rymax, x0, y0, x1, y1)
	}
	l, r := QuadBez{Pt(x0, y0), Pt(xc, yc), Pt(x1, y1)}.Subdivide()
	if l.P2.IsNaN() {
		// Opposing infinities or NaN control points.
		return 0
	}
	crossings = rectCrossingsForQuad(crossings, rxmin, rymin, rxmax, rymax,
		l.P0.X, l.P0.Y, l.P1.X, l.P1.Y, l.P2.X, l.P2.Y, level+1)
	if crossings != rectIntersects {
		crossings = rectCrossingsForQuad(crossings, rxmin, rymin, rxmax, rymax,
			r.P0.X, r.P0.Y, r.P1.X, r.P1.Y, r.P2.X, r.P2.Y, level+1)
	}
	return crossings
}

func rectCrossingsForCubic(crossings int, rxmin, rymin, rxmax, rymax, x0, y0, xc0, yc0, xc1, yc1, x1, y1 float64, level int) int {
	if y0 >= rymax && yc0 >= rymax && yc1 >= rymax && y1 >= rymax {
		return crossings
	}
	if y0 <= rymin && yc0 <= rymin && yc1 <= rymin && y1 <= rymin {
		return crossings
	}
	if x0 <= rxmin && xc0 <= rxmin && xc1 <= rxmin && x1 <= rxmin {
		return crossings
	}
	if x0 >= rxmax && xc0 >= rxmax && xc1 >= rxmax && x1 >= rxmax {
		return curveShadowCrossings(crossings, rymin, rymax, y0, y1)
	}
	if (x0 > rxmin && x0 < rxmax && y0 > rymin && y0 < rymax) ||
		(x1 > rxmin && x1 < rxmax && y1 > rymin && y1 < rymax) {
		return rectIntersects
	}
	if level > maxRectSubdivision {
		return rectCrossingsForLine(crossings, rxmin, rymin, rxmax, rymax, x0, y0, x1, y1)
	}
	l, r := CubicBez{Pt(x0, y0), Pt(xc0, yc0), Pt(xc1, yc1), Pt(x1, y1)}.Subdivide()
	if l.P3.IsNaN() {
		return 0
	}
	crossings = rectCrossingsForCubic(crossings, rxmin, rymin, rxmax, rymax,
		l.P0.X, l.P0.Y, l.P1.X, l.P1.Y, l.P2.X, l.P2.Y, l.P3.X, l.P3.Y, level+1)
	if crossings != rectIntersects {
		crossings = rectCrossingsForCubic(crossings, rxmin, rymin, rxmax, rymax,
			r.P0.X, r.P0.Y, r.P1.X, r.P1.Y, r.P2.X, r.P2.Y, r.P3.X, r.P3.Y, level+1)
	}
	return crossings
}

// pointCrossingsForPath sums the point crossings of every segment of a
// stored path, closing each subpath with an implicit line back to its
// start.
func pointCrossingsForPath[T constraints.Float](kinds []SegmentKind, coords []T, px, py float64) int {
	if len(kinds) == 0 {
		return 0
	}
	movx, movy := float64(coords[0]), float64(coords[1])
	curx, cury := movx, movy
	crossings := 0
	ci := 2
	for _, kind := range kinds[1:] {
		switch kind {
		case MoveToKind:
			if cury != movy {
				crossings += pointCrossingsForLine(px, py, curx, cury, movx, movy)
			}
			movx, movy = float64(coords[ci]), float64(coords[ci+1])
			curx, cury = movx, movy
		case LineToKind:
			endx, endy := float64(coords[ci]), float64(coords[ci+1])
			crossings += pointCrossingsForLine(px, py, curx, cury, endx, endy)
			curx, cury = endx, endy
		case QuadToKind:
			endx, endy := float64(coords[ci+2]), float64(coords[ci+3])
			crossings += pointCrossingsForQuad(px, py, curx, cury,
				float64(coords[ci]), float64(coords[ci+1]), endx, endy)
			curx, cury = endx, endy
		case CubicToKind:
			endx, endy := float64(coords[ci+4]), float64(coords[ci+5])
			crossings += pointCrossingsForCubic(px, py, curx, cury,
				float64(coords[ci]), float64(coords[ci+1]),
				float64(coords[ci+2]), float64(coords[ci+3]), endx, endy)
			curx, cury = endx, endy
		case ClosePathKind:
			if cury != movy {
				crossings += pointCrossingsForLine(px, py, curx, cury, movx, movy)
			}
			curx, cury = movx, movy
		default:
			kindError(kind)
		}
		ci += 2 * kind.Points()
	}
	if cury != movy {
		crossings += pointCrossingsForLine(px, py, curx, cury, movx, movy)
	}
	return crossings
}

// rectCrossingsForPath is pointCrossingsForPath for the rectangle with the
// given extent. It stops early once the result is rectIntersects.
func rectCrossingsForPath[T constraints.Float](kinds []SegmentKind, coords []T, rxmin, rymin, rxmax, rymax float64) int {
	if len(kinds) == 0 {
		return 0
	}
	movx, movy := float64(coords[0]), float64(coords[1])
	curx, cury := movx, movy
	crossings := 0
	ci := 2
	for _, kind := range kinds[1:] {
		if crossings == rectIntersects {
			return crossings
		}
		switch kind {
		case MoveToKind:
			if curx != movx || cury != movy {
				crossings = rectCrossingsForLine(crossings, rxmin, rymin, rxmax, rymax, curx, cury, movx, movy)
			}
			movx, movy = float64(coords[ci]), float64(coords[ci+1])
			curx, cury = movx, movy
		case LineToKind:
			endx, endy := float64(coords[ci]), float64(coords[ci+1])
			crossings = rectCrossingsForLine(crossings, rxmin, rymin, rxmax, rymax, curx, cury, endx, endy)
			curx, cury = endx, endy
		case QuadToKind:
			endx, endy := float64(coords[ci+2]), float64(coords[ci+3])
			crossings = rectCrossingsForQuad(crossings, rxmin, rymin, rxmax, rymax, curx, cury,
				float64(coords[ci]), float64(coords[ci+1]), endx, endy, 0)
			curx, cury = endx, endy
		case CubicToKind:
			endx, endy := float64(coords[ci+4]), float64(coords[ci+5])
			crossings = rectCrossingsForCubic(crossings, rxmin, rymin, rxmax, rymax, curx, cury,
				float64(coords[ci]), float64(coords[ci+1]),
				float64(coords[ci+2]), float64(coords[ci+3]), endx, endy, 0)
			curx, cury = endx, endy
		case ClosePathKind:
			if curx != movx || cury != movy {
				crossings = rectCrossingsForLine(crossings, rxmin, rymin, rxmax, rymax, curx, cury, movx, movy)
			}
			curx, cury = movx, movy
		default:
			kindError(kind)
		}
		ci += 2 * kind.Points()
	}
	if crossings != rectIntersects && (curx != movx || cury != movy) {
		crossings = rectCrossingsForLine(crossings, rxmin, rymin, rxmax, rymax, curx, cury, movx, movy)
	}
	return crossings
}

func missingMove(kind SegmentKind) error {
	return fmt.Errorf("%w: %s before initial MoveTo", ErrIllegalPathState, kind)
}

// PointCrossings returns the signed number of times the outline of it
// crosses the ray from (px, py) towards +x, with each subpath implicitly
// closed. It returns [ErrIllegalPathState] if the outline doesn't start with
// a MoveTo.
func PointCrossings(it SegmentIterator, px, py float64) (int, error) {
	if it.Done() {
		return 0, nil
	}
	var coords [6]float64
	if kind := it.Current(&coords); kind != MoveToKind {
		return 0, missingMove(kind)
	}
	it.Next()
	movx, movy := coords[0], coords[1]
	curx, cury := movx, movy
	crossings := 0
	for ; !it.Done(); it.Next() {
		switch kind := it.Current(&coords); kind {
		case MoveToKind:
			if cury != movy {
				crossings += pointCrossingsForLine(px, py, curx, cury, movx, movy)
			}
			movx, movy = coords[0], coords[1]
			curx, cury = movx, movy
		case LineToKind:
			crossings += pointCrossingsForLine(px, py, curx, cury, coords[0], coords[1])
			curx, cury = coords[0], coords[1]
		case QuadToKind:
			crossings += pointCrossingsForQuad(px, py, curx, cury,
				coords[0], coords[1], coords[2], coords[3])
			curx, cury = coords[2], coords[3]
		case CubicToKind:
			crossings += pointCrossingsForCubic(px, py, curx, cury,
				coords[0], coords[1], coords[2], coords[3], coords[4], coords[5])
			curx, cury = coords[4], coords[5]
		case ClosePathKind:
			if cury != movy {
				crossings += pointCrossingsForLine(px, py, curx, cury, movx, movy)
			}
			curx, cury = movx, movy
		default:
			kindError(kind)
		}
	}
	if cury != movy {
		crossings += pointCrossingsForLine(px, py, curx, cury, movx, movy)
	}
	return crossings, nil
}

// RectCrossings is like [PointCrossings] for the right-hand shadow of r. It
// returns math.MinInt32 as soon as the outline is found to intersect r.
func RectCrossings(it SegmentIterator, r Rect) (int, error) {
	rxmin, rymin, rxmax, rymax := r.MinX(), r.MinY(), r.MaxX(), r.MaxY()
	if !(rxmax > rxmin && rymax > rymin) {
		return 0, nil
	}
	if it.Done() {
		return 0, nil
	}
	var coords [6]float64
	if kind := it.Current(&coords); kind != MoveToKind {
		return 0, missingMove(kind)
	}
	it.Next()
	movx, movy := coords[0], coords[1]
	curx, cury := movx, movy
	crossings := 0
	for ; crossings != rectIntersects && !it.Done(); it.Next() {
		switch kind := it.Current(&coords); kind {
		case MoveToKind:
			if curx != movx || cury != movy {
				crossings = rectCrossingsForLine(crossings, rxmin, rymin, rxmax, rymax, curx, cury, movx, movy)
			}
			movx, movy = coords[0], coords[1]
			curx, cury = movx, movy
		case LineToKind:
			crossings = rectCrossingsForLine(crossings, rxmin, rymin, rxmax, rymax,
				curx, cury, coords[0], coords[1])
			curx, cury = coords[0], coords[1]
		case QuadToKind:
			crossings = rectCrossingsForQuad(crossings, rxmin, rymin, rxmax, rymax,
				curx, cury, coords[0], coords[1], coords[2], coords[3], 0)
			curx, cury = coords[2], coords[3]
		case CubicToKind:
			crossings = rectCrossingsForCubic(crossings, rxmin, rymin, rxmax, rymax,
				curx, cury, coords[0], coords[1], coords[2], coords[3], coords[4], coords[5], 0)
			curx, cury = coords[4], coords[5]
		case ClosePathKind:
			if curx != movx || cury != movy {
				crossings = rectCrossingsForLine(crossings, rxmin, rymin, rxmax, rymax, curx, cury, movx, movy)
			}
			curx, cury = movx, movy
		default:
			kindError(kind)
		}
	}
	if crossings != rectIntersects && (curx != movx || cury != movy) {
		crossings = rectCrossingsForLine(crossings, rxmin, rymin, rxmax, rymax, curx, cury, movx, movy)
	}
	return crossings, nil
}

// ContainsPoint reports whether pt lies inside the outline of it, according
// to its winding rule. Points with non-finite coordinates are never
// contained.
func ContainsPoint(it SegmentIterator, pt Point) (bool, error) {
	if !pt.IsFinite() {
		return false, nil
	}
	mask := it.WindingRule().mask()
	n, err := PointCrossings(it, pt.X, pt.Y)
	if err != nil {
		return false, err
	}
	return n&mask != 0, nil
}

// ContainsRect reports whether r lies entirely inside the outline of it.
//
// The test is conservative: it may report false for rects that are
// contained but whose shadow the outline crosses an even number of times,
// as can happen with overlapping subpaths.
func ContainsRect(it SegmentIterator, r Rect) (bool, error) {
	if r.IsEmpty() {
		return false, nil
	}
	mask := it.WindingRule().rectMask()
	n, err := RectCrossings(it, r)
	if err != nil {
		return false, err
	}
	return n != rectIntersects && n&mask != 0, nil
}

// IntersectsRect reports whether the interior of the outline of it and r
// intersect.
func IntersectsRect(it SegmentIterator, r Rect) (bool, error) {
	if r.IsEmpty() {
		return false, nil
	}
	mask := it.WindingRule().rectMask()
	n, err := RectCrossings(it, r)
	if err != nil {
		return false, err
	}
	return n == rectIntersects || n&mask != 0, nil
}
