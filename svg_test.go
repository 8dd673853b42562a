package geom

import (
	"errors"
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestParseSVGPath(t *testing.T) {
	var tests = []struct {
		d    string
		want []PathElement
	}{
		{"M0 0 L4 0 L4 4 L0 4 Z", []PathElement{
			MoveTo(Pt(0, 0)), LineTo(Pt(4, 0)), LineTo(Pt(4, 4)), LineTo(Pt(0, 4)), ClosePath(),
		}},
		{"m1 1 l3 0 v3 h-3 z", []PathElement{
			MoveTo(Pt(1, 1)), LineTo(Pt(4, 1)), LineTo(Pt(4, 4)), LineTo(Pt(1, 4)), ClosePath(),
		}},
		{"M0,0 10,0 10,10", []PathElement{
			MoveTo(Pt(0, 0)), LineTo(Pt(10, 0)), LineTo(Pt(10, 10)),
		}},
		{"m1 1 2 0 0 2", []PathElement{
			MoveTo(Pt(1, 1)), LineTo(Pt(3, 1)), LineTo(Pt(3, 3)),
		}},
		{"M1e1-2.5.5.5", []PathElement{
			MoveTo(Pt(10, -2.5)), LineTo(Pt(0.5, 0.5)),
		}},
		{"M0 0 H5 V5 h-5 v-5", []PathElement{
			MoveTo(Pt(0, 0)), LineTo(Pt(5, 0)), LineTo(Pt(5, 5)), LineTo(Pt(0, 5)), LineTo(Pt(0, 0)),
		}},
		{"M0 0 C0 10 10 10 10 0 S20 -10 20 0", []PathElement{
			MoveTo(Pt(0, 0)),
			CubicTo(Pt(0, 10), Pt(10, 10), Pt(10, 0)),
			CubicTo(Pt(10, -10), Pt(20, -10), Pt(20, 0)),
		}},
		{"M0 0 S10 10 10 0", []PathElement{
			MoveTo(Pt(0, 0)),
			CubicTo(Pt(0, 0), Pt(10, 10), Pt(10, 0)),
		}},
		{"M0 0 c0 10 10 10 10 0 s10 -10 10 0", []PathElement{
			MoveTo(Pt(0, 0)),
			CubicTo(Pt(0, 10), Pt(10, 10), Pt(10, 0)),
			CubicTo(Pt(10, -10), Pt(20, -10), Pt(20, 0)),
		}},
		{"M0 0 Q5 10 10 0 T20 0", []PathElement{
			MoveTo(Pt(0, 0)),
			QuadTo(Pt(5, 10), Pt(10, 0)),
			QuadTo(Pt(15, -10), Pt(20, 0)),
		}},
		{"M0 0 q5 10 10 0 t10 0", []PathElement{
			MoveTo(Pt(0, 0)),
			QuadTo(Pt(5, 10), Pt(10, 0)),
			QuadTo(Pt(15, -10), Pt(20, 0)),
		}},
		{"M0 0 L1 1 T2 0", []PathElement{
			MoveTo(Pt(0, 0)), LineTo(Pt(1, 1)), QuadTo(Pt(1, 1), Pt(2, 0)),
		}},
		{"M0 0 L4 0 Z L0 4", []PathElement{
			MoveTo(Pt(0, 0)), LineTo(Pt(4, 0)), ClosePath(), LineTo(Pt(0, 4)),
		}},
		{"M0 0 A5 5 0 0 0 0 0", []PathElement{
			MoveTo(Pt(0, 0)),
		}},
		{"M0 0 A0 5 0 0 0 10 0", []PathElement{
			MoveTo(Pt(0, 0)), LineTo(Pt(10, 0)),
		}},
		{"  ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.d, func(t *testing.T) {
			p, err := ParseSVGPath[float64](tt.d)
			test.Error(t, err)
			diff(t, tt.want, elementsOf(p.Iterator(nil)))
		})
	}
}

func TestParseSVGArc(t *testing.T) {
	for _, d := range []string{"M0 0 A5 5 0 0 1 10 0", "M0 0 a5 5 0 0 1 10 0", "M0 0a5 5 0 0110 0"} {
		t.Run(d, func(t *testing.T) {
			p, err := ParseSVGPath[float64](d)
			test.Error(t, err)

			end, ok := p.CurrentPoint()
			test.That(t, ok)
			test.T(t, end, Pt(10, 0))

			// The sweep flag selects the upper half in a y-down coordinate
			// system.
			b := p.Bounds()
			test.Float(t, b.Y0, -5)
			test.Float(t, b.X0, 0)
			test.Float(t, b.X1, 10)

			center := Pt(5, 0)
			for el := range Flatten(p.Iterator(nil), 0.01) {
				if el.Kind == LineToKind {
					test.That(t, math.Abs(el.P0.Distance(center)-5) < 0.01, "point", el.P0, "off the circle")
				}
			}
		})
	}

	p, err := ParseSVGPath[float64]("M0 0 A5 5 0 0 0 10 0 Z")
	test.Error(t, err)
	test.That(t, p.Contains(5, 2))
	test.That(t, !p.Contains(5, -2))

	// Radii too small to span the end points are scaled up.
	p, err = ParseSVGPath[float64]("M0 0 A1 1 0 0 1 10 0")
	test.Error(t, err)
	test.Float(t, p.Bounds().Y0, -5)

	// The large arc of a circle through both end points.
	p, err = ParseSVGPath[float64]("M0 0 A10 10 0 1 1 10 0")
	test.Error(t, err)
	test.That(t, p.Bounds().Height() > 10, "bounds", p.Bounds())
}

func TestParseSVGPathErrors(t *testing.T) {
	var tests = []struct {
		d   string
		err error
	}{
		{"1 2", ErrInvalidArgument},
		{"M0", ErrInvalidArgument},
		{"M0 0 L1", ErrInvalidArgument},
		{"M0 0 X1 1", ErrInvalidArgument},
		{"M0 0 A1 1 0 2 0 1 1", ErrInvalidArgument},
		{"M0 0 Z 1 1", ErrInvalidArgument},
		{"L1 1", ErrIllegalPathState},
		{"Q1 1 2 2", ErrIllegalPathState},
		{"Z", ErrIllegalPathState},
	}
	for _, tt := range tests {
		t.Run(tt.d, func(t *testing.T) {
			p, err := ParseSVGPath[float64](tt.d)
			test.That(t, errors.Is(err, tt.err), "got error", err)
			test.That(t, p == nil)
		})
	}
}

func TestSVGRoundTrip(t *testing.T) {
	p := testPath[float64]()
	d := SVG(p.Iterator(nil))
	test.String(t, d, "M0 0 L10 0 Q15 5 10 10 C7 12 3 12 0 10 Z M2.5 2.5 L5 2.5")

	q, err := ParseSVGPath[float64](d)
	test.Error(t, err)
	diff(t, p.kinds, q.kinds)
	diff(t, p.coords, q.coords)

	// Transformed output.
	aff := NewTranslate(1, 1)
	test.String(t, SVG(Line{Pt(0, 0), Pt(1, 2)}.Iterator(&aff)), "M1 1 L2 3")

	err = WriteSVG(&failWriter{n: 2}, p.Iterator(nil))
	test.That(t, errors.Is(err, errFail), "got error", err)
}
