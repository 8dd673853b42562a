package geom

// Line represents a line segment.
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

var _ Extremer = Line{}

// LineIntersection describes where a curve intersects a line segment.
type LineIntersection struct {
	// The parameter of the intersection on the line segment.
	LineT float64
	// The parameter of the intersection on the curve.
	CurveT float64
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

// CrossingPoint computes the point where two lines, if extended to infinity,
// would cross.
func (l Line) CrossingPoint(o Line) (Point, bool) {
	ab := l.P1.Sub(l.P0)
	cd := o.P1.Sub(o.P0)
	pcd := ab.Cross(cd)
	if pcd == 0 {
		return Point{}, false
	}
	h := ab.Cross(l.P0.Sub(o.P0)) / pcd
	return o.P0.Translate(cd.Mul(h)), true
}

func (l Line) IsInf() bool {
	return l.P0.IsInf() || l.P1.IsInf()
}

func (l Line) IsNaN() bool {
	return l.P0.IsNaN() || l.P1.IsNaN()
}

func (l Line) Translate(v Vec2) Line {
	return Line{
		P0: l.P0.Translate(v),
		P1: l.P1.Translate(v),
	}
}

func (l Line) BoundingBox() Rect {
	return NewRectFromPoints(l.P0, l.P1)
}

// ControlBounds is the same as [Line.BoundingBox].
func (l Line) ControlBounds() Rect {
	return l.BoundingBox()
}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Nearest returns the squared distance from pt to the nearest point on the
// line, and that point's parameter.
func (l Line) Nearest(pt Point) (distSq, t float64) {
	d := l.P1.Sub(l.P0)
	dotp := d.Dot(pt.Sub(l.P0))
	dSquared := d.Dot(d)
	if dotp <= 0.0 {
		return pt.Sub(l.P0).Hypot2(), 0.0
	} else if dotp >= dSquared {
		return pt.Sub(l.P1).Hypot2(), 1.0
	} else {
		t := dotp / dSquared
		dist := pt.Sub(l.Eval(t)).Hypot2()
		return dist, t
	}
}

func (l Line) Transform(aff *Affine) Line {
	return Line{
		P0: l.P0.Transform(aff),
		P1: l.P1.Transform(aff),
	}
}

func (l Line) Subsegment(start, end float64) Line {
	return Line{l.Eval(start), l.Eval(end)}
}

func (l Line) Subdivide() (Line, Line) {
	return l.Subsegment(0.0, 0.5), l.Subsegment(0.5, 1.0)
}

func (l Line) Extrema() ([MaxExtrema]float64, int) {
	return [MaxExtrema]float64{}, 0
}

// Flatness is always zero for a line.
func (l Line) Flatness() float64   { return 0 }
func (l Line) FlatnessSq() float64 { return 0 }

// PtSegDistSq returns the square of the distance from pt to the line
// segment.
func (l Line) PtSegDistSq(pt Point) float64 {
	return ptSegDistSq(l.P0.X, l.P0.Y, l.P1.X, l.P1.Y, pt.X, pt.Y)
}

// PtLineDistSq returns the square of the distance from pt to the infinite
// line through the segment.
func (l Line) PtLineDistSq(pt Point) float64 {
	x2, y2 := l.P1.X-l.P0.X, l.P1.Y-l.P0.Y
	px, py := pt.X-l.P0.X, pt.Y-l.P0.Y
	dotprod := px*x2 + py*y2
	lenSq2 := x2*x2 + y2*y2
	var projlenSq float64
	if lenSq2 != 0 {
		projlenSq = dotprod * dotprod / lenSq2
	}
	return max(px*px+py*py-projlenSq, 0)
}

func ptSegDistSq(x1, y1, x2, y2, px, py float64) float64 {
	x2 -= x1
	y2 -= y1
	px -= x1
	py -= y1
	dotprod := px*x2 + py*y2
	var projlenSq float64
	if dotprod > 0 {
		// Measure from the far end instead, so that points past the end of
		// the segment project to zero length as well.
		px = x2 - px
		py = y2 - py
		dotprod = px*x2 + py*y2
		if dotprod > 0 {
			projlenSq = dotprod * dotprod / (x2*x2 + y2*y2)
		}
	}
	return max(px*px+py*py-projlenSq, 0)
}

// RelativeCCW reports where pt lies relative to the line segment: 1 if
// turning from P0→P1 towards pt is counterclockwise (in a y-down coordinate
// system), -1 if it is clockwise, and 0 if pt lies on the segment. Collinear
// points beyond P0 report -1 and those beyond P1 report 1.
func (l Line) RelativeCCW(pt Point) int {
	return relativeCCW(l.P0.X, l.P0.Y, l.P1.X, l.P1.Y, pt.X, pt.Y)
}

func relativeCCW(x1, y1, x2, y2, px, py float64) int {
	x2 -= x1
	y2 -= y1
	px -= x1
	py -= y1
	ccw := px*y2 - py*x2
	if ccw == 0 {
		ccw = px*x2 + py*y2
		if ccw > 0 {
			px -= x2
			py -= y2
			ccw = px*x2 + py*y2
			if ccw < 0 {
				ccw = 0
			}
		}
	}
	switch {
	case ccw < 0:
		return -1
	case ccw > 0:
		return 1
	default:
		return 0
	}
}

// Intersects reports whether the two line segments intersect.
func (l Line) Intersects(o Line) bool {
	return l.RelativeCCW(o.P0)*l.RelativeCCW(o.P1) <= 0 &&
		o.RelativeCCW(l.P0)*o.RelativeCCW(l.P1) <= 0
}

// Contains always returns false, as a line encloses no area.
func (l Line) Contains(pt Point) bool { return false }

// IntersectsRect reports whether the segment intersects the interior or
// boundary of r.
func (l Line) IntersectsRect(r Rect) bool {
	return r.IntersectsLine(l)
}

// Iterator returns an iterator over the line's outline.
func (l Line) Iterator(aff *Affine) *SliceIterator {
	return IterateElements([]PathElement{MoveTo(l.P0), LineTo(l.P1)}, NonZero, aff)
}
