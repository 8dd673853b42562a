package geom

import (
	"math"
)

// Circle is a circle with a center and a radius.
type Circle struct {
	Center Point
	Radius float64
}

// Contains reports whether pt lies strictly inside the circle.
func (c Circle) Contains(pt Point) bool {
	return pt.Sub(c.Center).Hypot2() < c.Radius*c.Radius
}

// Ellipse returns the circle as an ellipse with equal radii.
func (c Circle) Ellipse() Ellipse {
	return NewEllipseFromCircle(c)
}

// Iterator returns an iterator over the outline of the circle, as
// [Ellipse.Iterator] does.
func (c Circle) Iterator(aff *Affine) *SliceIterator {
	return c.Ellipse().Iterator(aff)
}

func (c Circle) IsInf() bool {
	return c.Center.IsInf() || math.IsInf(c.Radius, 0)
}

func (c Circle) IsNaN() bool {
	return c.Center.IsNaN() || math.IsNaN(c.Radius)
}

func (c Circle) Translate(v Vec2) Circle {
	return Circle{
		Center: c.Center.Translate(v),
		Radius: c.Radius,
	}
}

func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

func (c Circle) BoundingBox() Rect {
	r := math.Abs(c.Radius)
	x := c.Center.X
	y := c.Center.Y
	return Rect{
		X0: x - r,
		Y0: y - r,
		X1: x + r,
		Y1: y + r,
	}
}

func (c Circle) Perimeter() float64 {
	return math.Abs(2 * math.Pi * c.Radius)
}

// Transform returns the circle transformed by aff, which in general is an
// ellipse.
func (c Circle) Transform(aff *Affine) Ellipse {
	return c.Ellipse().Transform(aff)
}
