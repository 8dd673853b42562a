package geom

import (
	"fmt"
	"slices"

	"golang.org/x/exp/constraints"
)

const (
	initialSegments = 20
	initialCoords   = 2 * initialSegments

	// Storage grows by its current size, but by no less than growMin and
	// no more than growMax entries at a time.
	growMin = 10
	growMax = 500
)

// Path is a mutable sequence of path segments, storing its coordinates as
// T. Path32 and Path64 are the two storage precisions, which otherwise
// behave identically.
//
// The first segment of a non-empty path is always a MoveTo. The zero value
// is an empty path using the [NonZero] winding rule.
//
// A Path must not be modified while an iterator over it is in use.
type Path[T constraints.Float] struct {
	kinds  []SegmentKind
	coords []T
	rule   WindingRule
}

type (
	Path32 = Path[float32]
	Path64 = Path[float64]
)

// NewPath returns an empty path with room for capacity segments. A capacity
// of zero or less uses a default.
func NewPath[T constraints.Float](rule WindingRule, capacity int) *Path[T] {
	if capacity <= 0 {
		capacity = initialSegments
	}
	return &Path[T]{
		kinds:  make([]SegmentKind, 0, capacity),
		coords: make([]T, 0, 2*capacity),
		rule:   rule,
	}
}

// NewPathFrom returns a path holding the segments of it, transformed by aff
// if it is non-nil. The path uses the winding rule of it.
func NewPathFrom[T constraints.Float](it SegmentIterator, aff *Affine) (*Path[T], error) {
	p := NewPath[T](it.WindingRule(), 0)
	if err := p.Append(it, false); err != nil {
		return nil, err
	}
	if aff != nil && !aff.IsIdentity() {
		p.Transform(aff)
	}
	return p, nil
}

// Clone returns a copy of the path with tightly sized storage.
func (p *Path[T]) Clone() *Path[T] {
	return &Path[T]{
		kinds:  slices.Clip(slices.Clone(p.kinds)),
		coords: slices.Clip(slices.Clone(p.coords)),
		rule:   p.rule,
	}
}

// grow makes room for n more elements, growing s geometrically.
func grow[E any](s []E, n int) []E {
	if cap(s)-len(s) >= n {
		return s
	}
	g := min(max(len(s), growMin), growMax)
	g = max(g, n)
	ns := make([]E, len(s), len(s)+g)
	copy(ns, s)
	return ns
}

func (p *Path[T]) needRoom(needMove bool, kind SegmentKind, ncoords int) error {
	if needMove && len(p.kinds) == 0 {
		return missingMove(kind)
	}
	if p.kinds == nil {
		p.kinds = make([]SegmentKind, 0, initialSegments)
		p.coords = make([]T, 0, initialCoords)
	}
	p.kinds = grow(p.kinds, 1)
	p.coords = grow(p.coords, ncoords)
	return nil
}

// MoveTo starts a new subpath at (x, y). A MoveTo directly following
// another MoveTo replaces it.
func (p *Path[T]) MoveTo(x, y float64) {
	if n := len(p.kinds); n > 0 && p.kinds[n-1] == MoveToKind {
		c := len(p.coords)
		p.coords[c-2] = T(x)
		p.coords[c-1] = T(y)
		return
	}
	_ = p.needRoom(false, MoveToKind, 2)
	p.kinds = append(p.kinds, MoveToKind)
	p.coords = append(p.coords, T(x), T(y))
}

// LineTo adds a line from the current point to (x, y). It returns
// [ErrIllegalPathState] if the path is empty.
func (p *Path[T]) LineTo(x, y float64) error {
	if err := p.needRoom(true, LineToKind, 2); err != nil {
		return err
	}
	p.kinds = append(p.kinds, LineToKind)
	p.coords = append(p.coords, T(x), T(y))
	return nil
}

// QuadTo adds a quadratic Bézier from the current point to (x2, y2), with
// control point (x1, y1). It returns [ErrIllegalPathState] if the path is
// empty.
func (p *Path[T]) QuadTo(x1, y1, x2, y2 float64) error {
	if err := p.needRoom(true, QuadToKind, 4); err != nil {
		return err
	}
	p.kinds = append(p.kinds, QuadToKind)
	p.coords = append(p.coords, T(x1), T(y1), T(x2), T(y2))
	return nil
}

// CubicTo adds a cubic Bézier from the current point to (x3, y3), with
// control points (x1, y1) and (x2, y2). It returns [ErrIllegalPathState] if
// the path is empty.
func (p *Path[T]) CubicTo(x1, y1, x2, y2, x3, y3 float64) error {
	if err := p.needRoom(true, CubicToKind, 6); err != nil {
		return err
	}
	p.kinds = append(p.kinds, CubicToKind)
	p.coords = append(p.coords, T(x1), T(y1), T(x2), T(y2), T(x3), T(y3))
	return nil
}

// ClosePath closes the current subpath with a line back to its start. It
// returns [ErrIllegalPathState] if the path is empty and does nothing
// directly after another ClosePath.
func (p *Path[T]) ClosePath() error {
	if err := p.needRoom(true, ClosePathKind, 0); err != nil {
		return err
	}
	if p.kinds[len(p.kinds)-1] == ClosePathKind {
		return nil
	}
	p.kinds = append(p.kinds, ClosePathKind)
	return nil
}

// Append adds the segments of it to the path. If connect is true and the
// path isn't empty, the initial MoveTo of it is turned into a LineTo. The
// LineTo is dropped if the path already ends at its point.
//
// The winding rule of it is ignored.
func (p *Path[T]) Append(it SegmentIterator, connect bool) error {
	var c [6]float64
	for ; !it.Done(); it.Next() {
		var err error
		switch kind := it.Current(&c); kind {
		case MoveToKind:
			n, nc := len(p.kinds), len(p.coords)
			switch {
			case !connect || n == 0 || nc == 0:
				p.MoveTo(c[0], c[1])
			case p.kinds[n-1] != ClosePathKind &&
				p.coords[nc-2] == T(c[0]) && p.coords[nc-1] == T(c[1]):
				// Collapse out the degenerate connecting line.
			default:
				err = p.LineTo(c[0], c[1])
			}
		case LineToKind:
			err = p.LineTo(c[0], c[1])
		case QuadToKind:
			err = p.QuadTo(c[0], c[1], c[2], c[3])
		case CubicToKind:
			err = p.CubicTo(c[0], c[1], c[2], c[3], c[4], c[5])
		case ClosePathKind:
			err = p.ClosePath()
		default:
			kindError(kind)
		}
		if err != nil {
			return err
		}
		connect = false
	}
	return nil
}

// AppendElements is like [Path.Append] for a sequence of elements.
func (p *Path[T]) AppendElements(els []PathElement, connect bool) error {
	return p.Append(IterateElements(els, p.rule, nil), connect)
}

// CurrentPoint returns the point the path ends on. After a ClosePath, that
// is the start of the closed subpath. It returns false for an empty path.
func (p *Path[T]) CurrentPoint() (Point, bool) {
	n, ci := len(p.kinds), len(p.coords)
	if n < 1 || ci < 2 {
		return Point{}, false
	}
	if p.kinds[n-1] == ClosePathKind {
		for i := n - 2; i > 0; i-- {
			kind := p.kinds[i]
			if kind == MoveToKind {
				break
			}
			ci -= 2 * kind.Points()
		}
	}
	return Pt(float64(p.coords[ci-2]), float64(p.coords[ci-1])), true
}

// Len returns the number of segments in the path.
func (p *Path[T]) Len() int { return len(p.kinds) }

// NumCoords returns the number of coordinates stored by the path, two per
// point.
func (p *Path[T]) NumCoords() int { return len(p.coords) }

// Reset removes all segments, keeping the allocated storage.
func (p *Path[T]) Reset() {
	p.kinds = p.kinds[:0]
	p.coords = p.coords[:0]
}

// TrimToSize releases unused storage.
func (p *Path[T]) TrimToSize() {
	if cap(p.kinds) != len(p.kinds) {
		p.kinds = append(make([]SegmentKind, 0, len(p.kinds)), p.kinds...)
	}
	if cap(p.coords) != len(p.coords) {
		p.coords = append(make([]T, 0, len(p.coords)), p.coords...)
	}
}

func (p *Path[T]) WindingRule() WindingRule { return p.rule }

// SetWindingRule sets the winding rule, returning [ErrInvalidArgument] for
// unknown rules.
func (p *Path[T]) SetWindingRule(rule WindingRule) error {
	if !rule.Valid() {
		return fmt.Errorf("%w: winding rule %d", ErrInvalidArgument, uint8(rule))
	}
	p.rule = rule
	return nil
}

// Transform transforms all of the path's points in place.
func (p *Path[T]) Transform(aff *Affine) {
	transformCoords(aff, p.coords, p.coords)
}

// CreateTransformedPath returns a transformed copy of the path. A nil
// transform returns a plain copy.
func (p *Path[T]) CreateTransformedPath(aff *Affine) *Path[T] {
	q := p.Clone()
	if aff != nil {
		q.Transform(aff)
	}
	return q
}

// ControlBounds returns the bounding box of all of the path's points,
// including the control points of curves. It returns the zero Rect for an
// empty path.
func (p *Path[T]) ControlBounds() Rect {
	if len(p.coords) == 0 {
		return Rect{}
	}
	minX, minY := p.coords[0], p.coords[1]
	maxX, maxY := minX, minY
	for i := 2; i < len(p.coords); i += 2 {
		x, y := p.coords[i], p.coords[i+1]
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	return Rect{float64(minX), float64(minY), float64(maxX), float64(maxY)}
}

// Bounds returns the tight bounding box of the path. Unlike ControlBounds, it
// only includes control points to the extent the curves reach towards them.
func (p *Path[T]) Bounds() Rect {
	if len(p.coords) == 0 {
		return Rect{}
	}
	cur := Pt(float64(p.coords[0]), float64(p.coords[1]))
	bbox := Rect{cur.X, cur.Y, cur.X, cur.Y}
	ci := 2
	for _, kind := range p.kinds[1:] {
		pt := func(i int) Point {
			return Pt(float64(p.coords[ci+2*i]), float64(p.coords[ci+2*i+1]))
		}
		switch kind {
		case MoveToKind, LineToKind:
			cur = pt(0)
			bbox = bbox.UnionPoint(cur)
		case QuadToKind:
			q := QuadBez{cur, pt(0), pt(1)}
			bbox = bbox.Union(q.BoundingBox())
			cur = q.P2
		case CubicToKind:
			c := CubicBez{cur, pt(0), pt(1), pt(2)}
			bbox = bbox.Union(c.BoundingBox())
			cur = c.P3
		case ClosePathKind:
		default:
			kindError(kind)
		}
		ci += 2 * kind.Points()
	}
	return bbox
}

// Iterator returns an iterator over the path's segments, transformed by aff
// if it is non-nil.
func (p *Path[T]) Iterator(aff *Affine) SegmentIterator {
	if aff == nil || aff.IsIdentity() {
		return &pathIterator[T]{path: p}
	}
	return &txPathIterator[T]{pathIterator: pathIterator[T]{path: p}, aff: aff}
}

// Elements returns a sequence of the path's segments.
func (p *Path[T]) Elements() []PathElement {
	out := make([]PathElement, 0, len(p.kinds))
	for el := range Elements(p.Iterator(nil)) {
		out = append(out, el)
	}
	return out
}

// Flatten returns an iterator over the path with curves replaced by lines.
// See [NewFlatteningIterator].
func (p *Path[T]) Flatten(flatness float64, opts ...FlattenOption) (*FlatteningIterator, error) {
	return NewFlatteningIterator(p.Iterator(nil), flatness, opts...)
}

// Contains reports whether the point (x, y) lies inside the path, according
// to its winding rule. Each subpath is implicitly closed. Points with
// non-finite coordinates are never contained.
func (p *Path[T]) Contains(x, y float64) bool {
	if !isFinite(x) || !isFinite(y) {
		return false
	}
	if len(p.kinds) < 2 {
		return false
	}
	return pointCrossingsForPath(p.kinds, p.coords, x, y)&p.rule.mask() != 0
}

func (p *Path[T]) ContainsPoint(pt Point) bool {
	return p.Contains(pt.X, pt.Y)
}

func (p *Path[T]) rectCrossings(r Rect) int {
	return rectCrossingsForPath(p.kinds, p.coords, r.MinX(), r.MinY(), r.MaxX(), r.MaxY())
}

// ContainsRect reports whether r lies entirely inside the path.
//
// The test is conservative. It can return false for rects that are inside
// the path, when the path's boundary enters and leaves the rect's shadow
// without intersecting the rect, as with overlapping subpaths.
func (p *Path[T]) ContainsRect(r Rect) bool {
	if r.IsEmpty() || r.IsInf() {
		return false
	}
	if !p.ControlBounds().ContainsRect(r) {
		return false
	}
	n := p.rectCrossings(r)
	return n != rectIntersects && n&p.rule.rectMask() != 0
}

// IntersectsRect reports whether the interior of the path intersects r.
func (p *Path[T]) IntersectsRect(r Rect) bool {
	if r.IsEmpty() || r.IsInf() {
		return false
	}
	if len(p.kinds) == 0 || !p.ControlBounds().Overlaps(r) {
		return false
	}
	n := p.rectCrossings(r)
	return n == rectIntersects || n&p.rule.rectMask() != 0
}

func (p *Path[T]) String() string {
	return SVG(p.Iterator(nil))
}

// pathIterator iterates over the stored segments of a path.
type pathIterator[T constraints.Float] struct {
	path   *Path[T]
	ti, ci int
}

func (it *pathIterator[T]) WindingRule() WindingRule { return it.path.rule }
func (it *pathIterator[T]) Done() bool               { return it.ti >= len(it.path.kinds) }

func (it *pathIterator[T]) Next() {
	it.ci += 2 * it.path.kinds[it.ti].Points()
	it.ti++
}

func (it *pathIterator[T]) Current(coords *[6]float64) SegmentKind {
	kind := it.path.kinds[it.ti]
	for i, v := range it.path.coords[it.ci : it.ci+2*kind.Points()] {
		coords[i] = float64(v)
	}
	return kind
}

func (it *pathIterator[T]) Current32(coords *[6]float32) SegmentKind {
	kind := it.path.kinds[it.ti]
	for i, v := range it.path.coords[it.ci : it.ci+2*kind.Points()] {
		coords[i] = float32(v)
	}
	return kind
}

// txPathIterator iterates over the stored segments of a path, transforming
// each point as it is read.
type txPathIterator[T constraints.Float] struct {
	pathIterator[T]
	aff *Affine
}

func (it *txPathIterator[T]) Current(coords *[6]float64) SegmentKind {
	kind := it.path.kinds[it.ti]
	n := 2 * kind.Points()
	transformCoords(it.aff, coords[:n], it.path.coords[it.ci:it.ci+n])
	return kind
}

func (it *txPathIterator[T]) Current32(coords *[6]float32) SegmentKind {
	kind := it.path.kinds[it.ti]
	n := 2 * kind.Points()
	transformCoords(it.aff, coords[:n], it.path.coords[it.ci:it.ci+n])
	return kind
}
