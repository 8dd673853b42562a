package geom

import (
	"fmt"
	"math"
)

// ArcClosure determines how the outline of an [Arc] is closed.
type ArcClosure uint8

const (
	// ArcOpen leaves the arc unclosed.
	ArcOpen ArcClosure = iota
	// ArcChord closes the arc with a line between its end points.
	ArcChord
	// ArcPie closes the arc with lines to and from its center.
	ArcPie
)

func (c ArcClosure) String() string {
	switch c {
	case ArcOpen:
		return "open"
	case ArcChord:
		return "chord"
	case ArcPie:
		return "pie"
	default:
		return fmt.Sprintf("ArcClosure(%d)", uint8(c))
	}
}

// Arc is an elliptical arc.
type Arc struct {
	Center     Point
	Radii      Vec2
	StartAngle float64
	SweepAngle float64
	XRotation  float64
	Closure    ArcClosure
}

// NewArc returns an arc, validating its closure. It returns
// [ErrInvalidArgument] for unknown closures.
func NewArc(center Point, radii Vec2, startAngle, sweepAngle, xRotation float64, closure ArcClosure) (Arc, error) {
	if closure > ArcPie {
		return Arc{}, fmt.Errorf("%w: arc closure %d", ErrInvalidArgument, uint8(closure))
	}
	return Arc{
		Center:     center,
		Radii:      radii,
		StartAngle: startAngle,
		SweepAngle: sweepAngle,
		XRotation:  xRotation,
		Closure:    closure,
	}, nil
}

// Contains reports whether pt lies inside the arc, closed according to its
// closure. Open arcs are treated as closed by a chord.
func (a Arc) Contains(pt Point) bool {
	ok, _ := ContainsPoint(a.Iterator(nil), pt)
	return ok
}

// Elements returns the outline of the arc. Each cubic Bézier covers at most
// a quarter turn, so a full ellipse takes four.
func (a Arc) Elements() []PathElement {
	els := make([]PathElement, 0, 7)
	p0 := sampleEllipse(a.Radii, a.XRotation, a.StartAngle)
	els = append(els, MoveTo(a.Center.Translate(p0)))

	sweep := a.SweepAngle
	if math.Abs(sweep) > 2*math.Pi {
		sweep = math.Copysign(2*math.Pi, sweep)
	}
	n := math.Ceil(math.Abs(sweep) / (math.Pi / 2))
	if n > 0 && a.Radii.X >= 0 && a.Radii.Y >= 0 {
		angleStep := sweep / n
		armLen := math.Copysign((4.0/3.0)*math.Tan(math.Abs(0.25*angleStep)), sweep)
		angle0 := a.StartAngle
		for range int(n) {
			angle1 := angle0 + angleStep
			p1 := p0.Add(sampleEllipse(a.Radii, a.XRotation, angle0+math.Pi/2).Mul(armLen))
			p3 := sampleEllipse(a.Radii, a.XRotation, angle1)
			p2 := p3.Sub(sampleEllipse(a.Radii, a.XRotation, angle1+math.Pi/2).Mul(armLen))

			angle0 = angle1
			p0 = p3

			els = append(els, CubicTo(
				a.Center.Translate(p1),
				a.Center.Translate(p2),
				a.Center.Translate(p3),
			))
		}
	}

	switch a.Closure {
	case ArcChord:
		els = append(els, ClosePath())
	case ArcPie:
		els = append(els, LineTo(a.Center), ClosePath())
	}
	return els
}

// Iterator returns an iterator over the outline of the arc.
func (a Arc) Iterator(aff *Affine) *SliceIterator {
	return IterateElements(a.Elements(), NonZero, aff)
}

// sampleEllipse takes the ellipse radii, how the radii are rotated, and the
// sweep angle, and returns a point on the ellipse.
func sampleEllipse(radii Vec2, xRotation float64, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	u := radii.X * cos
	v := radii.Y * sin
	return rotatePt(Vec2{u, v}, xRotation)
}

// rotatePt rotates pt about the origin by angle radians.
func rotatePt(pt Vec2, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: pt.X*cos - pt.Y*sin,
		Y: pt.X*sin + pt.Y*cos,
	}
}

func (a Arc) Translate(v Vec2) Arc {
	a.Center = a.Center.Translate(v)
	return a
}
