package geom

import (
	"math"
)

// Rect is an axis-aligned rectangle spanning from (X0, Y0) to (X1, Y1).
//
// Most methods treat the rectangle as normalized, with X0 ≤ X1 and
// Y0 ≤ Y1; see [Rect.Abs].
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewRectFromPoints returns a rectangle with the extents of p0 and p1, ensuring that
// width and height are non-negative.
func NewRectFromPoints(p0, p1 Point) Rect {
	return Rect{p0.X, p0.Y, p1.X, p1.Y}.Abs()
}

// NewRectFromOrigin returns a rectangle with the given size, extending to the right and
// down (for positive sizes) from the origin. Width and height are ensured to be
// non-negative.
func NewRectFromOrigin(origin Point, size Size) Rect {
	return NewRectFromPoints(origin, origin.Translate(size.AsVec2()))
}

// NewRectFromCenter returns a rectangle with the given size, centered around the center
// point.
func NewRectFromCenter(center Point, size Size) Rect {
	return Rect{
		X0: center.X - size.Width/2,
		Y0: center.Y - size.Height/2,
		X1: center.X + size.Width/2,
		Y1: center.Y + size.Height/2,
	}
}

// Abs returns a new rectangle with the same extents as r, but ensuring that width and
// height are non-negative.
func (r Rect) Abs() Rect {
	return Rect{
		X0: min(r.X0, r.X1),
		Y0: min(r.Y0, r.Y1),
		X1: max(r.X0, r.X1),
		Y1: max(r.Y0, r.Y1),
	}
}

func (r Rect) MinX() float64 { return min(r.X0, r.X1) }
func (r Rect) MaxX() float64 { return max(r.X0, r.X1) }
func (r Rect) MinY() float64 { return min(r.Y0, r.Y1) }
func (r Rect) MaxY() float64 { return max(r.Y0, r.Y1) }

// Origin returns the origin of the rectangle.
//
// This is the top left corner in a y-down space and with
// non-negative width and height.
func (r Rect) Origin() Point {
	return Point{
		X: r.X0,
		Y: r.Y0,
	}
}

// Width returns the rectangle's width, defined as X1 − X0. It may be negative.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the rectangle's height, defined as Y1 − Y0. It may be negative.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

func (r Rect) Size() Size {
	return Size{
		Width:  r.Width(),
		Height: r.Height(),
	}
}

func (r Rect) Center() Point {
	return Point{
		X: 0.5 * (r.X0 + r.X1),
		Y: 0.5 * (r.Y0 + r.Y1),
	}
}

// IsEmpty reports whether the rectangle has no area. Rectangles with NaN
// coordinates are empty.
func (r Rect) IsEmpty() bool {
	return !(r.MaxX() > r.MinX() && r.MaxY() > r.MinY())
}

// Contains reports whether pt lies inside the rectangle. The left and top
// edges are inside, the right and bottom ones are not.
func (r Rect) Contains(pt Point) bool {
	return pt.X >= r.X0 &&
		pt.X < r.X1 &&
		pt.Y >= r.Y0 &&
		pt.Y < r.Y1
}

// ContainsRect reports whether o lies entirely inside r. Empty rectangles
// contain nothing.
func (r Rect) ContainsRect(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return o.MinX() >= r.MinX() && o.MinY() >= r.MinY() &&
		o.MaxX() <= r.MaxX() && o.MaxY() <= r.MaxY()
}

// Overlaps reports whether the interiors of r and o intersect.
func (r Rect) Overlaps(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return o.MaxX() > r.MinX() && o.MaxY() > r.MinY() &&
		o.MinX() < r.MaxX() && o.MinY() < r.MaxY()
}

// Union returns the smallest rectangle enclosing r and o.
//
// Results are valid only if width and height are non-negative.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: min(r.X0, o.X0),
		Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
	}
}

// UnionPoint computes the union with one point.
//
// This method includes the perimeter of zero-area rectangles.
// Thus, a succession of UnionPoint operations on a series of
// points yields their enclosing rectangle.
//
// Results are valid only if width and height are non-negative.
func (r Rect) UnionPoint(pt Point) Rect {
	return Rect{
		X0: min(r.X0, pt.X),
		Y0: min(r.Y0, pt.Y),
		X1: max(r.X1, pt.X),
		Y1: max(r.Y1, pt.Y),
	}
}

// Intersect returns the intersection of two rectangles.
//
// The result is zero-area if either input has negative width or
// height. The result always has non-negative width and height.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X0, o.X0)
	y0 := max(r.Y0, o.Y0)
	x1 := min(r.X1, o.X1)
	y1 := min(r.Y1, o.Y1)
	return Rect{
		X0: x0,
		Y0: y0,
		X1: max(x0, x1),
		Y1: max(y0, y1),
	}
}

// Inflate expands a rectangle by a constant amount in both directions.
//
// The logic simply applies the amount in each direction. If rectangle
// area or added dimensions are negative, this could give odd results.
func (r Rect) Inflate(width, height float64) Rect {
	return Rect{
		X0: r.X0 - width,
		Y0: r.Y0 - height,
		X1: r.X1 + width,
		Y1: r.Y1 + height,
	}
}

// Expand returns a new rectangle, with each coordinate value rounded away from
// the center of the rectangle to the nearest integer, unless they are already
// an integer. That is to say this function will return the smallest possible
// rectangle with integer coordinates that is a superset of the input
// rectangle.
func (r Rect) Expand() Rect {
	var x0, y0, x1, y1 float64
	if r.X0 < r.X1 {
		x0 = math.Floor(r.X0)
		x1 = math.Ceil(r.X1)
	} else {
		x0 = math.Ceil(r.X0)
		x1 = math.Floor(r.X1)
	}
	if r.Y0 < r.Y1 {
		y0 = math.Floor(r.Y0)
		y1 = math.Ceil(r.Y1)
	} else {
		y0 = math.Ceil(r.Y0)
		y1 = math.Floor(r.Y1)
	}
	return Rect{
		X0: x0,
		Y0: y0,
		X1: x1,
		Y1: y1,
	}
}

func (r Rect) IsInf() bool {
	return math.IsInf(r.X0, 0) ||
		math.IsInf(r.X1, 0) ||
		math.IsInf(r.Y0, 0) ||
		math.IsInf(r.Y1, 0)
}

func (r Rect) IsNaN() bool {
	return math.IsNaN(r.X0) ||
		math.IsNaN(r.X1) ||
		math.IsNaN(r.Y0) ||
		math.IsNaN(r.Y1)
}

func (r Rect) Translate(v Vec2) Rect {
	return Rect{
		X0: r.X0 + v.X,
		Y0: r.Y0 + v.Y,
		X1: r.X1 + v.X,
		Y1: r.Y1 + v.Y,
	}
}

func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// Outcode bits, describing on which sides of a rectangle a point lies.
const (
	OutLeft   = 1
	OutTop    = 2
	OutRight  = 4
	OutBottom = 8
)

// Outcode returns a bitmask of OutLeft, OutTop, OutRight and OutBottom
// describing where pt lies relative to the normalized rectangle. A
// rectangle with no width or height is outside on both sides of that axis.
func (r Rect) Outcode(pt Point) int {
	r = r.Abs()
	out := 0
	switch {
	case r.Width() <= 0:
		out |= OutLeft | OutRight
	case pt.X < r.X0:
		out |= OutLeft
	case pt.X > r.X1:
		out |= OutRight
	}
	switch {
	case r.Height() <= 0:
		out |= OutTop | OutBottom
	case pt.Y < r.Y0:
		out |= OutTop
	case pt.Y > r.Y1:
		out |= OutBottom
	}
	return out
}

// IntersectsLine reports whether the line segment intersects the
// rectangle, by clipping it against the rectangle's edges.
func (r Rect) IntersectsLine(l Line) bool {
	r = r.Abs()
	p0, p1 := l.P0, l.P1
	out1 := r.Outcode(p1)
	if out1 == 0 {
		return true
	}
	for {
		out0 := r.Outcode(p0)
		if out0 == 0 {
			return true
		}
		if out0&out1 != 0 {
			return false
		}
		if out0&(OutLeft|OutRight) != 0 {
			x := r.X0
			if out0&OutRight != 0 {
				x = r.X1
			}
			p0.Y += (x - p0.X) * (p1.Y - p0.Y) / (p1.X - p0.X)
			p0.X = x
		} else {
			y := r.Y0
			if out0&OutBottom != 0 {
				y = r.Y1
			}
			p0.X += (y - p0.Y) * (p1.X - p0.X) / (p1.Y - p0.Y)
			p0.Y = y
		}
	}
}

// Iterator returns an iterator over the rectangle's outline: a MoveTo,
// three LineTos and a ClosePath.
func (r Rect) Iterator(aff *Affine) *SliceIterator {
	return IterateElements([]PathElement{
		MoveTo(Pt(r.X0, r.Y0)),
		LineTo(Pt(r.X1, r.Y0)),
		LineTo(Pt(r.X1, r.Y1)),
		LineTo(Pt(r.X0, r.Y1)),
		ClosePath(),
	}, NonZero, aff)
}

// RoundedRect creates a new [RoundedRect] from this rectangle and the provided
// corner radii.
func (r Rect) RoundedRect(radii RoundedRectRadii) RoundedRect {
	r = r.Abs()
	shortestSide := min(r.Width(), r.Height())
	radii = radii.Abs().Clamp(shortestSide / 2)
	return RoundedRect{
		Rect:  r,
		Radii: radii,
	}
}

// RoundedRect is a rectangle with elliptical corners.
type RoundedRect struct {
	Rect
	Radii RoundedRectRadii
}

func NewRoundedRect(x0, y0, x1, y1, radius float64) RoundedRect {
	return Rect{x0, y0, x1, y1}.RoundedRect(RoundedRectRadii{radius, radius, radius, radius})
}

func (r RoundedRect) Area() float64 {
	// For each corner, subtract the square that bounds the quarter-circle
	// and add back the area of the quarter-circle.
	corner := func(radius float64) float64 {
		return (math.Pi/4 - 1) * radius * radius
	}
	return r.Rect.Area() +
		corner(r.Radii.TopLeft) +
		corner(r.Radii.TopRight) +
		corner(r.Radii.BottomRight) +
		corner(r.Radii.BottomLeft)
}

// Elements returns the outline of the rounded rectangle. Corners with a
// radius of zero are left out, leaving a sharp corner.
func (r RoundedRect) Elements() []PathElement {
	const k = ellipseControl
	x0, y0, x1, y1 := r.X0, r.Y0, r.X1, r.Y1
	tl, tr, br, bl := r.Radii.TopLeft, r.Radii.TopRight, r.Radii.BottomRight, r.Radii.BottomLeft
	els := make([]PathElement, 0, 10)
	els = append(els, MoveTo(Pt(x0, y0+tl)))
	if tl != 0 {
		els = append(els, CubicTo(Pt(x0, y0+tl-k*tl), Pt(x0+tl-k*tl, y0), Pt(x0+tl, y0)))
	}
	els = append(els, LineTo(Pt(x1-tr, y0)))
	if tr != 0 {
		els = append(els, CubicTo(Pt(x1-tr+k*tr, y0), Pt(x1, y0+tr-k*tr), Pt(x1, y0+tr)))
	}
	els = append(els, LineTo(Pt(x1, y1-br)))
	if br != 0 {
		els = append(els, CubicTo(Pt(x1, y1-br+k*br), Pt(x1-br+k*br, y1), Pt(x1-br, y1)))
	}
	els = append(els, LineTo(Pt(x0+bl, y1)))
	if bl != 0 {
		els = append(els, CubicTo(Pt(x0+bl-k*bl, y1), Pt(x0, y1-bl+k*bl), Pt(x0, y1-bl)))
	}
	els = append(els, ClosePath())
	return els
}

// Iterator returns an iterator over the outline of the rounded rectangle.
func (r RoundedRect) Iterator(aff *Affine) *SliceIterator {
	return IterateElements(r.Elements(), NonZero, aff)
}

// Contains reports whether pt lies inside the rounded rectangle.
func (rr RoundedRect) Contains(pt Point) bool {
	if !pt.IsFinite() || !rr.Rect.Contains(pt) {
		return false
	}
	ok, _ := ContainsPoint(rr.Iterator(nil), pt)
	return ok
}

func (r RoundedRect) IsInf() bool {
	return r.Rect.IsInf() || r.Radii.IsInf()
}

func (r RoundedRect) IsNaN() bool {
	return r.Rect.IsNaN() || r.Radii.IsNaN()
}

// RoundedRectRadii holds the radii of the corners of a [RoundedRect].
type RoundedRectRadii struct {
	TopLeft     float64
	TopRight    float64
	BottomRight float64
	BottomLeft  float64
}

func (r RoundedRectRadii) Abs() RoundedRectRadii {
	return RoundedRectRadii{
		TopLeft:     math.Abs(r.TopLeft),
		TopRight:    math.Abs(r.TopRight),
		BottomLeft:  math.Abs(r.BottomLeft),
		BottomRight: math.Abs(r.BottomRight),
	}
}

func (r RoundedRectRadii) Clamp(max float64) RoundedRectRadii {
	return RoundedRectRadii{
		TopLeft:     min(r.TopLeft, max),
		TopRight:    min(r.TopRight, max),
		BottomLeft:  min(r.BottomLeft, max),
		BottomRight: min(r.BottomRight, max),
	}
}

func (r RoundedRectRadii) IsInf() bool {
	return math.IsInf(r.TopLeft, 0) ||
		math.IsInf(r.TopRight, 0) ||
		math.IsInf(r.BottomRight, 0) ||
		math.IsInf(r.BottomLeft, 0)
}

func (r RoundedRectRadii) IsNaN() bool {
	return math.IsNaN(r.TopLeft) ||
		math.IsNaN(r.TopRight) ||
		math.IsNaN(r.BottomRight) ||
		math.IsNaN(r.BottomLeft)
}
