package geom

import (
	"math"
)

// ellipseControl is the distance of the control points of a cubic Bézier
// approximating a quarter of the unit circle from its end points.
const ellipseControl = 0.5522847498307933

// unitCircle is the outline of the unit circle, starting at (1, 0).
var unitCircle = [...]PathElement{
	MoveTo(Pt(1, 0)),
	CubicTo(Pt(1, ellipseControl), Pt(ellipseControl, 1), Pt(0, 1)),
	CubicTo(Pt(-ellipseControl, 1), Pt(-1, ellipseControl), Pt(-1, 0)),
	CubicTo(Pt(-1, -ellipseControl), Pt(-ellipseControl, -1), Pt(0, -1)),
	CubicTo(Pt(ellipseControl, -1), Pt(1, -ellipseControl), Pt(1, 0)),
	ClosePath(),
}

// Ellipse is an ellipse, represented as an affine transformation of the
// unit circle.
type Ellipse struct {
	inner Affine
}

// NewEllipse creates an ellipse with a given center, radii, and rotation.
//
// The returned ellipse will be the result of taking a circle, stretching
// it by the radii along the x and y axes, then rotating it from the
// x axis by xRotation radians, before finally translating the center
// to center.
//
// Rotation is clockwise in a y-down coordinate system. For more on
// rotation, see [Affine.Rotate].
func NewEllipse(center Point, radii Vec2, xRotation float64) Ellipse {
	rx, ry := radii.Splat()
	return newEllipse(center, rx, ry, xRotation)
}

// NewEllipseFromRect returns the largest ellipse that can be bounded by
// rect.
//
// This uses the absolute width and height of the rectangle.
func NewEllipseFromRect(rect Rect) Ellipse {
	return newEllipse(rect.Center(), rect.Width()/2, rect.Height()/2, 0.0)
}

// NewEllipseFromAffine creates an ellipse from an affine transformation of the unit
// circle.
func NewEllipseFromAffine(aff Affine) Ellipse {
	return Ellipse{inner: aff}
}

func NewEllipseFromCircle(c Circle) Ellipse {
	return NewEllipse(c.Center, Vec(c.Radius, c.Radius), 0)
}

func newEllipse(center Point, scaleX, scaleY, xRotation float64) Ellipse {
	// Since the circle is symmetric about the x and y axes, using absolute values for the
	// radii results in the same ellipse. For simplicity we make this change here.
	inner := NewTranslate(center.X, center.Y)
	inner.Rotate(xRotation)
	inner.Scale(math.Abs(scaleX), math.Abs(scaleY))
	return Ellipse{inner: inner}
}

// Contains reports whether pt lies inside the ellipse.
func (e Ellipse) Contains(pt Point) bool {
	if !pt.IsFinite() {
		return false
	}
	// Apply the inverse map to the point and see if it is in the unit
	// circle.
	upt, err := e.inner.InverseTransform(pt)
	if err != nil {
		return false
	}
	return Vec2(upt).Hypot2() < 1.0
}

func (e Ellipse) IsInf() bool {
	return e.inner.IsInf()
}

func (e Ellipse) IsNaN() bool {
	return e.inner.IsNaN()
}

func (e Ellipse) Area() float64 {
	x, y := e.Radii().Splat()
	return math.Pi * x * y
}

// BoundingBox returns the tight bounding box of the ellipse.
func (e Ellipse) BoundingBox() Rect {
	// See https://www.iquilezles.org/www/articles/ellipses/ellipses.htm. We can get the two
	// radius vectors by applying the affine map to the two impulses (1, 0) and (0, 1).
	a := &e.inner
	rangeX := math.Hypot(a.m00, a.m01)
	rangeY := math.Hypot(a.m10, a.m11)
	cx, cy := a.m02, a.m12
	return Rect{
		X0: cx - rangeX,
		Y0: cy - rangeY,
		X1: cx + rangeX,
		Y1: cy + rangeY,
	}
}

// Elements returns the outline of the ellipse: a MoveTo, four cubic
// Béziers approximating quarter arcs, and a ClosePath.
func (e Ellipse) Elements() []PathElement {
	els := make([]PathElement, len(unitCircle))
	for i, el := range unitCircle {
		els[i] = el.Transform(&e.inner)
	}
	return els
}

// Iterator returns an iterator over the outline of the ellipse,
// transformed by aff if it is non-nil.
func (e Ellipse) Iterator(aff *Affine) *SliceIterator {
	t := e.inner
	if aff != nil {
		t.PreConcatenate(aff)
	}
	return IterateElements(unitCircle[:], NonZero, &t)
}

// Center returns the center of the ellipse.
func (e Ellipse) Center() Point {
	return Pt(e.inner.m02, e.inner.m12)
}

// Radii returns the two radii of the ellipse.
//
// The first number is the horizontal radius and the second is the
// vertical radius, before rotation.
func (e Ellipse) Radii() Vec2 {
	radii, _ := e.inner.svd()
	return radii
}

// Rotation returns the ellipse's rotation, in radians.
func (e Ellipse) Rotation() float64 {
	_, rot := e.inner.svd()
	return rot
}

func (e Ellipse) Translate(v Vec2) Ellipse {
	t := NewTranslate(v.X, v.Y)
	e.inner.PreConcatenate(&t)
	return e
}

// Transform returns the ellipse transformed by aff.
func (e Ellipse) Transform(aff *Affine) Ellipse {
	e.inner.PreConcatenate(aff)
	return e
}
