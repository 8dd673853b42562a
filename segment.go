package geom

import (
	"fmt"
	"iter"
)

// SegmentKind identifies the type of a path segment.
type SegmentKind int

const (
	// Move directly to the point without drawing anything, starting a new
	// subpath.
	MoveToKind SegmentKind = iota + 1
	// Draw a line from the current location to the point.
	LineToKind
	// Draw a quadratic Bézier using the current location and the two points.
	QuadToKind
	// Draw a cubic Bézier using the current location and the three points.
	CubicToKind
	// Close off the subpath with a line back to its initial point.
	ClosePathKind
)

// Points returns the number of points stored for a segment of this kind.
func (k SegmentKind) Points() int {
	switch k {
	case MoveToKind, LineToKind:
		return 1
	case QuadToKind:
		return 2
	case CubicToKind:
		return 3
	case ClosePathKind:
		return 0
	default:
		kindError(k)
		panic("unreachable")
	}
}

func (k SegmentKind) String() string {
	switch k {
	case MoveToKind:
		return "MoveTo"
	case LineToKind:
		return "LineTo"
	case QuadToKind:
		return "QuadTo"
	case CubicToKind:
		return "CubicTo"
	case ClosePathKind:
		return "ClosePath"
	default:
		return fmt.Sprintf("SegmentKind(%d)", int(k))
	}
}

func kindError(k SegmentKind) {
	panic(fmt.Sprintf("geom: invalid segment kind %d", int(k)))
}

// WindingRule decides which points are inside a path, based on the signed
// number of times the path's outline crosses a ray from the point.
type WindingRule uint8

const (
	// NonZero treats points as inside if the crossing count is non-zero.
	NonZero WindingRule = iota
	// EvenOdd treats points as inside if the crossing count is odd.
	EvenOdd
)

// Valid reports whether r is one of the defined winding rules.
func (r WindingRule) Valid() bool {
	return r == NonZero || r == EvenOdd
}

func (r WindingRule) String() string {
	switch r {
	case NonZero:
		return "nonzero"
	case EvenOdd:
		return "evenodd"
	default:
		return fmt.Sprintf("WindingRule(%d)", uint8(r))
	}
}

// mask returns the bits of a crossing count that decide containment.
func (r WindingRule) mask() int {
	if r == EvenOdd {
		return 1
	}
	return -1
}

// rectMask is mask for rect crossings, which count every edge of the
// shadow twice.
func (r WindingRule) rectMask() int {
	if r == EvenOdd {
		return 2
	}
	return -1
}

// SegmentIterator walks the outline of a shape one segment at a time.
//
// Current stores the segment's points in coords, as x, y pairs, and returns
// its kind. Moves and lines store one point, quadratic Béziers two, cubic
// Béziers three, and closes none. The start point of a segment is the end
// point of the previous one.
//
// Iterators over a [Path] are invalidated by modifying the path.
type SegmentIterator interface {
	WindingRule() WindingRule
	// Done reports whether the iteration is complete.
	Done() bool
	// Next advances to the next segment.
	Next()
	Current(coords *[6]float64) SegmentKind
	Current32(coords *[6]float32) SegmentKind
}

// PathElement is a single segment of a path in value form.
//
// A valid path has a MoveTo at the beginning of each subpath.
type PathElement struct {
	Kind SegmentKind
	P0   Point
	P1   Point
	P2   Point
}

func (el PathElement) String() string {
	return fmt.Sprintf("%s(%s, %s, %s)", el.Kind, el.P0, el.P1, el.P2)
}

// Transform applies aff to the points of the element.
func (el PathElement) Transform(aff *Affine) PathElement {
	n := el.Kind.Points()
	pts := [3]*Point{&el.P0, &el.P1, &el.P2}
	for _, p := range pts[:n] {
		*p = p.Transform(aff)
	}
	return el
}

// EndPoint returns the point the element ends on. Closes don't store their
// end point.
func (el PathElement) EndPoint() (Point, bool) {
	switch el.Kind {
	case MoveToKind, LineToKind:
		return el.P0, true
	case QuadToKind:
		return el.P1, true
	case CubicToKind:
		return el.P2, true
	default:
		return Point{}, false
	}
}

func (el PathElement) IsInf() bool {
	return el.P0.IsInf() || el.P1.IsInf() || el.P2.IsInf()
}

func (el PathElement) IsNaN() bool {
	return el.P0.IsNaN() || el.P1.IsNaN() || el.P2.IsNaN()
}

func MoveTo(pt Point) PathElement {
	return PathElement{Kind: MoveToKind, P0: pt}
}

func LineTo(pt Point) PathElement {
	return PathElement{Kind: LineToKind, P0: pt}
}

func QuadTo(p0, p1 Point) PathElement {
	return PathElement{Kind: QuadToKind, P0: p0, P1: p1}
}

func CubicTo(p0, p1, p2 Point) PathElement {
	return PathElement{Kind: CubicToKind, P0: p0, P1: p1, P2: p2}
}

func ClosePath() PathElement {
	return PathElement{Kind: ClosePathKind}
}

// elementFromCoords builds an element from the points stored by
// [SegmentIterator.Current].
func elementFromCoords(kind SegmentKind, c *[6]float64) PathElement {
	switch kind {
	case MoveToKind:
		return MoveTo(Pt(c[0], c[1]))
	case LineToKind:
		return LineTo(Pt(c[0], c[1]))
	case QuadToKind:
		return QuadTo(Pt(c[0], c[1]), Pt(c[2], c[3]))
	case CubicToKind:
		return CubicTo(Pt(c[0], c[1]), Pt(c[2], c[3]), Pt(c[4], c[5]))
	case ClosePathKind:
		return ClosePath()
	default:
		kindError(kind)
		panic("unreachable")
	}
}

// Elements returns a sequence of the segments of it. The sequence consumes
// the iterator and can only be ranged over once.
func Elements(it SegmentIterator) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		var coords [6]float64
		for ; !it.Done(); it.Next() {
			if !yield(elementFromCoords(it.Current(&coords), &coords)) {
				return
			}
		}
	}
}

// SliceIterator iterates over a fixed list of elements, optionally
// transforming them. Shapes use it to emit their outlines.
type SliceIterator struct {
	els  []PathElement
	idx  int
	rule WindingRule
	aff  *Affine
}

// IterateElements returns an iterator over els. If aff is non-nil, the
// points are transformed by it.
func IterateElements(els []PathElement, rule WindingRule, aff *Affine) *SliceIterator {
	return &SliceIterator{els: els, rule: rule, aff: aff}
}

func (it *SliceIterator) WindingRule() WindingRule { return it.rule }
func (it *SliceIterator) Done() bool               { return it.idx >= len(it.els) }
func (it *SliceIterator) Next()                    { it.idx++ }

func (it *SliceIterator) Current(coords *[6]float64) SegmentKind {
	el := it.els[it.idx]
	if it.aff != nil {
		el = el.Transform(it.aff)
	}
	pts := [3]Point{el.P0, el.P1, el.P2}
	for i := range el.Kind.Points() {
		coords[2*i] = pts[i].X
		coords[2*i+1] = pts[i].Y
	}
	return el.Kind
}

func (it *SliceIterator) Current32(coords *[6]float32) SegmentKind {
	return current32(it, coords)
}

// current32 implements Current32 in terms of Current.
func current32(it SegmentIterator, coords *[6]float32) SegmentKind {
	var c [6]float64
	kind := it.Current(&c)
	for i := range 2 * kind.Points() {
		coords[i] = float32(c[i])
	}
	return kind
}
