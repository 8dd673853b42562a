package geom

import "math"

var _ Extremer = QuadBez{}

// QuadBez is a quadratic Bézier segment.
type QuadBez struct {
	P0 Point
	P1 Point
	P2 Point
}

// BoundingBox returns the tight bounding box of the curve.
func (q QuadBez) BoundingBox() Rect {
	return boundingBox(q)
}

// ControlBounds returns the bounding box of the control points, which
// contains the curve.
func (q QuadBez) ControlBounds() Rect {
	return NewRectFromPoints(q.P0, q.P2).UnionPoint(q.P1)
}

// Raise the order by 1.
//
// Returns a cubic Bézier segment that exactly represents this quadratic.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		q.P0,
		q.P0.Translate(q.P1.Sub(q.P0).Mul(2.0 / 3.0)),
		q.P2.Translate(q.P1.Sub(q.P2).Mul(2.0 / 3.0)),
		q.P2,
	}
}

func (q QuadBez) IsInf() bool {
	return q.P0.IsInf() || q.P1.IsInf() || q.P2.IsInf()
}

func (q QuadBez) IsNaN() bool {
	return q.P0.IsNaN() || q.P1.IsNaN() || q.P2.IsNaN()
}

func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(q.P0).Mul(mt * mt)
	b := Vec2(q.P1).Mul(mt * 2.0)
	c := Vec2(q.P2).Mul(t)
	d := b.Add(c)
	return Point(a.Add(d.Mul(t)))
}

// Subdivide splits the curve in half, using de Casteljau.
func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	c1 := q.P0.Midpoint(q.P1)
	c2 := q.P1.Midpoint(q.P2)
	pm := c1.Midpoint(c2)
	return QuadBez{q.P0, c1, pm},
		QuadBez{pm, c2, q.P2}
}

func (q QuadBez) Subsegment(t0 float64, t1 float64) QuadBez {
	p0 := q.Eval(t0)
	p2 := q.Eval(t1)
	p1 := p0.Translate(q.P1.Sub(q.P0).Lerp(q.P2.Sub(q.P1), t0).Mul(t1 - t0))
	return QuadBez{p0, p1, p2}
}

func (q QuadBez) Differentiate() Line {
	return Line{
		Point(q.P1.Sub(q.P0).Mul(2)),
		Point(q.P2.Sub(q.P1).Mul(2)),
	}
}

func (q QuadBez) Extrema() ([MaxExtrema]float64, int) {
	// Finding the extrema of a quadratic bezier means finding the roots in the
	// quadratic's first derivative, which is a line.

	var out [MaxExtrema]float64
	var outN int
	d0 := q.P1.Sub(q.P0)
	d1 := q.P2.Sub(q.P1)
	dd := d1.Sub(d0)
	if dd.X != 0.0 {
		t := -d0.X / dd.X
		if t > 0.0 && t < 1.0 {
			out[outN] = t
			outN++
		}
	}
	if dd.Y != 0 {
		t := -d0.Y / dd.Y
		if t > 0.0 && t < 1.0 {
			out[outN] = t
			outN++
			if outN == 2 && out[0] > t {
				out[0], out[1] = out[1], out[0]
			}
		}
	}
	return out, outN
}

// FlatnessSq returns the square of the distance of the control point from
// the chord.
func (q QuadBez) FlatnessSq() float64 {
	return ptSegDistSq(q.P0.X, q.P0.Y, q.P2.X, q.P2.Y, q.P1.X, q.P1.Y)
}

// Flatness returns the distance of the control point from the chord.
func (q QuadBez) Flatness() float64 {
	return math.Sqrt(q.FlatnessSq())
}

// Nearest finds the nearest point on the curve, using an analytical
// algorithm based on cubic root finding. It returns the squared distance
// and the parameter of the nearest point.
func (q QuadBez) Nearest(pt Point) (distSq, outT float64) {
	var rBest option[float64]
	tBest := 0.0
	evalT := func(t float64, p0 Point) {
		r := p0.Sub(pt).Hypot2()
		if !rBest.isSet || r < rBest.value {
			rBest.set(r)
			tBest = t
		}
	}
	d0 := q.P1.Sub(q.P0)
	d1 := Vec2(q.P0).Add(Vec2(q.P2)).Sub(Vec2(q.P1).Mul(2.0))
	d := q.P0.Sub(pt)
	c0 := d.Dot(d0)
	c1 := 2.0*d0.Hypot2() + d.Dot(d1)
	c2 := 3.0 * d1.Dot(d0)
	c3 := d1.Hypot2()
	roots, n := SolveCubic(c0, c1, c2, c3)
	needEnds := n <= 0

	for _, t := range roots[:max(n, 0)] {
		if !(t >= 0.0 && t <= 1.0) {
			needEnds = true
			continue
		}
		evalT(t, q.Eval(t))
	}
	if needEnds {
		evalT(0.0, q.P0)
		evalT(1.0, q.P2)
	}

	return rBest.value, tBest
}

func (q QuadBez) Transform(aff *Affine) QuadBez {
	return QuadBez{
		P0: q.P0.Transform(aff),
		P1: q.P1.Transform(aff),
		P2: q.P2.Transform(aff),
	}
}

func (q QuadBez) SignedArea() float64 {
	v := q.P0.X*(2.0*q.P1.Y+q.P2.Y) +
		2.0*(q.P1.X*(q.P2.Y-q.P0.Y)) -
		q.P2.X*(q.P0.Y+2.0*q.P1.Y)
	return v * (1.0 / 6.0)
}

// IntersectLine returns the intersections of the curve with a line segment.
func (q QuadBez) IntersectLine(line Line) ([3]LineIntersection, int) {
	const epsilon = 1e-9
	p0 := line.P0
	p1 := line.P1
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y

	// The basic technique here is to determine x and y as a quadratic polynomial
	// as a function of t. Then plug those values into the line equation for the
	// probe line (giving a sort of signed distance from the probe line) and solve
	// that for t.
	px0, px1, px2 := quadBezCoefficients(q.P0.X, q.P1.X, q.P2.X)
	py0, py1, py2 := quadBezCoefficients(q.P0.Y, q.P1.Y, q.P2.Y)
	c0 := dy*(px0-p0.X) - dx*(py0-p0.Y)
	c1 := dy*px1 - dx*py1
	c2 := dy*px2 - dx*py2
	invlen2 := 1.0 / (dx*dx + dy*dy)
	ts, n := SolveQuadratic(c0, c1, c2)
	var ret [3]LineIntersection
	var retN int
	for _, t := range ts[:max(n, 0)] {
		if t >= -epsilon && t <= 1+epsilon {
			x := px0 + t*px1 + t*t*px2
			y := py0 + t*py1 + t*t*py2
			u := ((x-p0.X)*dx + (y-p0.Y)*dy) * invlen2
			if u >= 0.0 && u <= 1.0 {
				ret[retN] = LineIntersection{u, t}
				retN++
			}
		}
	}
	return ret, retN
}

// Contains reports whether pt lies inside the region bounded by the curve
// and the chord between its end points.
func (q QuadBez) Contains(pt Point) bool {
	if !pt.IsFinite() {
		return false
	}
	crossings := pointCrossingsForLine(pt.X, pt.Y, q.P2.X, q.P2.Y, q.P0.X, q.P0.Y) +
		pointCrossingsForQuad(pt.X, pt.Y, q.P0.X, q.P0.Y, q.P1.X, q.P1.Y, q.P2.X, q.P2.Y)
	return crossings&1 == 1
}

func (q QuadBez) rectCrossings(r Rect) int {
	rxmin, rymin, rxmax, rymax := r.MinX(), r.MinY(), r.MaxX(), r.MaxY()
	crossings := 0
	if q.P0 != q.P2 {
		crossings = rectCrossingsForLine(crossings, rxmin, rymin, rxmax, rymax,
			q.P2.X, q.P2.Y, q.P0.X, q.P0.Y)
		if crossings == rectIntersects {
			return crossings
		}
	}
	return rectCrossingsForQuad(crossings, rxmin, rymin, rxmax, rymax,
		q.P0.X, q.P0.Y, q.P1.X, q.P1.Y, q.P2.X, q.P2.Y, 0)
}

// IntersectsRect reports whether the region bounded by the curve and its
// chord intersects r.
func (q QuadBez) IntersectsRect(r Rect) bool {
	if r.IsEmpty() || r.IsNaN() {
		return false
	}
	return q.rectCrossings(r) != 0
}

// ContainsRect reports whether r lies entirely inside the region bounded by
// the curve and its chord.
func (q QuadBez) ContainsRect(r Rect) bool {
	if r.IsEmpty() || r.IsNaN() {
		return false
	}
	n := q.rectCrossings(r)
	return n != 0 && n != rectIntersects
}

// Iterator returns an iterator over the curve's outline.
func (q QuadBez) Iterator(aff *Affine) *SliceIterator {
	return IterateElements([]PathElement{MoveTo(q.P0), QuadTo(q.P1, q.P2)}, NonZero, aff)
}

// Return polynomial coefficients given quadratic bezier coordinates.
func quadBezCoefficients(x0, x1, x2 float64) (_, _, _ float64) {
	p0 := x0
	p1 := 2.0*x1 - 2.0*x0
	p2 := x2 - 2.0*x1 + x0
	return p0, p1, p2
}
