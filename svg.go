package geom

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	parsestrconv "github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/exp/constraints"
)

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

type svgParser struct {
	d []byte
	i int
}

func (sp *svgParser) num() (float64, error) {
	sp.i += skipCommaWhitespace(sp.d[sp.i:])
	f, n := parsestrconv.ParseFloat(sp.d[sp.i:])
	if n == 0 {
		return 0, fmt.Errorf("%w: expected number at offset %d", ErrInvalidArgument, sp.i)
	}
	sp.i += n
	return f, nil
}

func (sp *svgParser) nums(dst []float64) error {
	for j := range dst {
		v, err := sp.num()
		if err != nil {
			return err
		}
		dst[j] = v
	}
	return nil
}

func (sp *svgParser) flag() (bool, error) {
	sp.i += skipCommaWhitespace(sp.d[sp.i:])
	if sp.i < len(sp.d) {
		switch sp.d[sp.i] {
		case '0':
			sp.i++
			return false, nil
		case '1':
			sp.i++
			return true, nil
		}
	}
	return false, fmt.Errorf("%w: expected flag at offset %d", ErrInvalidArgument, sp.i)
}

// ParseSVGPath parses SVG path data into a path using the NonZero winding
// rule. All commands are supported, both absolute and relative. Elliptical
// arcs are converted to cubic Béziers.
func ParseSVGPath[T constraints.Float](d string) (*Path[T], error) {
	p := NewPath[T](NonZero, 0)
	sp := &svgParser{d: []byte(d)}

	var (
		prevCmd byte
		cur     Point
		start   Point
		// Last control point, for smooth curves.
		ctrl Point
		args [6]float64
	)
	for {
		sp.i += skipCommaWhitespace(sp.d[sp.i:])
		if sp.i >= len(sp.d) {
			break
		}
		offset := sp.i
		cmd := prevCmd
		if c := sp.d[sp.i]; c >= 'A' {
			cmd = c
			sp.i++
		} else if prevCmd == 0 || prevCmd == 'Z' || prevCmd == 'z' {
			return nil, fmt.Errorf("%w: expected command at offset %d", ErrInvalidArgument, offset)
		}

		rel := cmd >= 'a'
		var base Vec2
		if rel {
			base = Vec2(cur)
		}
		var err error
		switch cmd {
		case 'M', 'm':
			if err = sp.nums(args[:2]); err != nil {
				return nil, err
			}
			cur = Pt(args[0], args[1]).Translate(base)
			start = cur
			p.MoveTo(cur.X, cur.Y)
			// Subsequent coordinate pairs are implicit lines.
			prevCmd = 'L'
			if rel {
				prevCmd = 'l'
			}
			ctrl = cur
			continue
		case 'Z', 'z':
			err = p.ClosePath()
			cur = start
		case 'L', 'l':
			if err = sp.nums(args[:2]); err != nil {
				return nil, err
			}
			cur = Pt(args[0], args[1]).Translate(base)
			err = p.LineTo(cur.X, cur.Y)
		case 'H', 'h':
			if err = sp.nums(args[:1]); err != nil {
				return nil, err
			}
			cur.X = args[0] + base.X
			err = p.LineTo(cur.X, cur.Y)
		case 'V', 'v':
			if err = sp.nums(args[:1]); err != nil {
				return nil, err
			}
			cur.Y = args[0] + base.Y
			err = p.LineTo(cur.X, cur.Y)
		case 'C', 'c':
			if err = sp.nums(args[:6]); err != nil {
				return nil, err
			}
			p1 := Pt(args[0], args[1]).Translate(base)
			p2 := Pt(args[2], args[3]).Translate(base)
			p3 := Pt(args[4], args[5]).Translate(base)
			err = p.CubicTo(p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y)
			ctrl, cur = p2, p3
		case 'S', 's':
			if err = sp.nums(args[:4]); err != nil {
				return nil, err
			}
			p1 := cur
			switch prevCmd {
			case 'C', 'c', 'S', 's':
				p1 = cur.Translate(cur.Sub(ctrl))
			}
			p2 := Pt(args[0], args[1]).Translate(base)
			p3 := Pt(args[2], args[3]).Translate(base)
			err = p.CubicTo(p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y)
			ctrl, cur = p2, p3
		case 'Q', 'q':
			if err = sp.nums(args[:4]); err != nil {
				return nil, err
			}
			p1 := Pt(args[0], args[1]).Translate(base)
			p2 := Pt(args[2], args[3]).Translate(base)
			err = p.QuadTo(p1.X, p1.Y, p2.X, p2.Y)
			ctrl, cur = p1, p2
		case 'T', 't':
			if err = sp.nums(args[:2]); err != nil {
				return nil, err
			}
			p1 := cur
			switch prevCmd {
			case 'Q', 'q', 'T', 't':
				p1 = cur.Translate(cur.Sub(ctrl))
			}
			p2 := Pt(args[0], args[1]).Translate(base)
			err = p.QuadTo(p1.X, p1.Y, p2.X, p2.Y)
			ctrl, cur = p1, p2
		case 'A', 'a':
			if err = sp.nums(args[:3]); err != nil {
				return nil, err
			}
			rx, ry, rot := args[0], args[1], args[2]
			large, err := sp.flag()
			if err != nil {
				return nil, err
			}
			sweep, err := sp.flag()
			if err != nil {
				return nil, err
			}
			if err = sp.nums(args[:2]); err != nil {
				return nil, err
			}
			end := Pt(args[0], args[1]).Translate(base)
			if err = appendSVGArc(p, cur, rx, ry, rot, large, sweep, end); err != nil {
				return nil, err
			}
			cur = end
		default:
			return nil, fmt.Errorf("%w: unknown command %q at offset %d", ErrInvalidArgument, cmd, offset)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: at offset %d", err, offset)
		}
		if cmd != 'C' && cmd != 'c' && cmd != 'S' && cmd != 's' &&
			cmd != 'Q' && cmd != 'q' && cmd != 'T' && cmd != 't' {
			ctrl = cur
		}
		prevCmd = cmd
	}
	return p, nil
}

// appendSVGArc appends an SVG endpoint arc to p, converting it to the
// center parameterization of [Arc]. Rotation is in degrees.
func appendSVGArc[T constraints.Float](p *Path[T], from Point, rx, ry, rot float64, large, sweep bool, to Point) error {
	if from == to {
		return nil
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		return p.LineTo(to.X, to.Y)
	}

	rot *= math.Pi / 180
	sin, cos := math.Sincos(rot)
	hx := (from.X - to.X) / 2
	hy := (from.Y - to.Y) / 2
	x1p := cos*hx + sin*hy
	y1p := -sin*hx + cos*hy

	// Scale up radii that can't span the end points.
	if check := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry); check > 1 {
		rx *= math.Sqrt(check)
		ry *= math.Sqrt(check)
	}

	sq := (rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p) / (rx*rx*y1p*y1p + ry*ry*x1p*x1p)
	coef := math.Sqrt(max(sq, 0))
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := coef * -ry * x1p / rx
	center := Pt(
		cos*cxp-sin*cyp+(from.X+to.X)/2,
		sin*cxp+cos*cyp+(from.Y+to.Y)/2,
	)

	u := Vec((x1p-cxp)/rx, (y1p-cyp)/ry)
	v := Vec(-(x1p+cxp)/rx, -(y1p+cyp)/ry)
	theta := u.Angle()
	delta := math.Atan2(u.Cross(v), u.Dot(v))
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	arc := Arc{
		Center:     center,
		Radii:      Vec(rx, ry),
		StartAngle: theta,
		SweepAngle: delta,
		XRotation:  rot,
	}
	els := arc.Elements()
	if len(els) < 2 {
		return p.LineTo(to.X, to.Y)
	}
	// Snap the end to the requested point to avoid accumulating error in
	// relative commands.
	if last := &els[len(els)-1]; last.Kind == CubicToKind {
		last.P2 = to
	}
	for _, el := range els[1:] {
		if err := p.CubicTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y, el.P2.X, el.P2.Y); err != nil {
			return err
		}
	}
	return nil
}

// WriteSVG writes the segments of it to w as SVG path data, using absolute
// commands.
func WriteSVG(w io.Writer, it SegmentIterator) error {
	var (
		coords [6]float64
		buf    []byte
	)
	first := true
	for ; !it.Done(); it.Next() {
		buf = buf[:0]
		kind := it.Current(&coords)
		if !first {
			buf = append(buf, ' ')
		}
		first = false
		switch kind {
		case MoveToKind:
			buf = append(buf, 'M')
		case LineToKind:
			buf = append(buf, 'L')
		case QuadToKind:
			buf = append(buf, 'Q')
		case CubicToKind:
			buf = append(buf, 'C')
		case ClosePathKind:
			buf = append(buf, 'Z')
		default:
			kindError(kind)
		}
		for i, v := range coords[:2*kind.Points()] {
			if i > 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendFloat(buf, v, 'f', -1, 64)
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// SVG returns the segments of it as SVG path data. See [WriteSVG].
func SVG(it SegmentIterator) string {
	var sb strings.Builder
	// Writing to a strings.Builder never fails.
	_ = WriteSVG(&sb, it)
	return sb.String()
}
