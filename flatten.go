package geom

import (
	"fmt"
	"iter"
	"log/slog"
	"math"
)

// DefaultRecursionLimit is the default maximum number of times a curve
// gets subdivided while flattening. No curve produces more than
// 2^DefaultRecursionLimit lines.
const DefaultRecursionLimit = 10

// FlattenOption configures a [FlatteningIterator].
type FlattenOption func(*flattenOptions)

type flattenOptions struct {
	limit int
}

func defaultFlattenOptions() flattenOptions {
	return flattenOptions{limit: DefaultRecursionLimit}
}

// WithLimit sets the maximum recursion depth of the subdivision.
func WithLimit(limit int) FlattenOption {
	return func(o *flattenOptions) {
		o.limit = limit
	}
}

// flattenEntry is a pending piece of a curve. Quadratic Béziers use the
// first three points.
type flattenEntry struct {
	pts   [4]Point
	cubic bool
	depth int
}

func (e *flattenEntry) flatnessSq() float64 {
	if e.cubic {
		return CubicBez{e.pts[0], e.pts[1], e.pts[2], e.pts[3]}.FlatnessSq()
	}
	return QuadBez{e.pts[0], e.pts[1], e.pts[2]}.FlatnessSq()
}

func (e *flattenEntry) end() Point {
	if e.cubic {
		return e.pts[3]
	}
	return e.pts[2]
}

// split replaces e with its second half and returns the first.
func (e *flattenEntry) split() flattenEntry {
	e.depth++
	first := flattenEntry{cubic: e.cubic, depth: e.depth}
	if e.cubic {
		a, b := CubicBez{e.pts[0], e.pts[1], e.pts[2], e.pts[3]}.Subdivide()
		first.pts = [4]Point{a.P0, a.P1, a.P2, a.P3}
		e.pts = [4]Point{b.P0, b.P1, b.P2, b.P3}
	} else {
		a, b := QuadBez{e.pts[0], e.pts[1], e.pts[2]}.Subdivide()
		first.pts = [4]Point{a.P0, a.P1, a.P2}
		e.pts = [4]Point{b.P0, b.P1, b.P2}
	}
	return first
}

// FlatteningIterator wraps a [SegmentIterator] and replaces its quadratic
// and cubic Béziers with lines. It only produces moves, lines, and closes.
//
// Curves are bisected until the control points of each piece are within
// the flatness of the piece's chord, or until the recursion limit is
// reached.
type FlatteningIterator struct {
	src        SegmentIterator
	flatness   float64
	flatnessSq float64
	limit      int

	// Pending pieces of the current curve. The top of the stack is the
	// piece closest to the curve's start.
	stack []flattenEntry
	// Whether the current curve hit the recursion limit.
	limited bool

	kind SegmentKind
	pt   Point
	cur  Point
	move Point
	done bool
}

// NewFlatteningIterator returns an iterator that flattens src. It returns
// [ErrInvalidArgument] if flatness or the recursion limit is negative.
func NewFlatteningIterator(src SegmentIterator, flatness float64, opts ...FlattenOption) (*FlatteningIterator, error) {
	o := defaultFlattenOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if flatness < 0 || math.IsNaN(flatness) {
		return nil, fmt.Errorf("%w: flatness %g", ErrInvalidArgument, flatness)
	}
	if o.limit < 0 {
		return nil, fmt.Errorf("%w: recursion limit %d", ErrInvalidArgument, o.limit)
	}
	it := &FlatteningIterator{
		src:        src,
		flatness:   flatness,
		flatnessSq: flatness * flatness,
		limit:      o.limit,
		stack:      make([]flattenEntry, 0, min(o.limit+1, 32)),
	}
	it.advance()
	return it, nil
}

// Flatness returns the flatness the iterator was created with.
func (it *FlatteningIterator) Flatness() float64 { return it.flatness }

// RecursionLimit returns the maximum recursion depth of the subdivision.
func (it *FlatteningIterator) RecursionLimit() int { return it.limit }

func (it *FlatteningIterator) WindingRule() WindingRule { return it.src.WindingRule() }
func (it *FlatteningIterator) Done() bool               { return it.done }

func (it *FlatteningIterator) Next() {
	if it.done {
		return
	}
	it.advance()
}

func (it *FlatteningIterator) Current(coords *[6]float64) SegmentKind {
	if it.done {
		panic("geom: Current called on exhausted iterator")
	}
	if it.kind != ClosePathKind {
		coords[0] = it.pt.X
		coords[1] = it.pt.Y
	}
	return it.kind
}

func (it *FlatteningIterator) Current32(coords *[6]float32) SegmentKind {
	return current32(it, coords)
}

func (it *FlatteningIterator) advance() {
	if len(it.stack) > 0 {
		it.emitPending()
		return
	}
	if it.src.Done() {
		it.done = true
		return
	}

	var c [6]float64
	kind := it.src.Current(&c)
	it.src.Next()
	switch kind {
	case MoveToKind:
		it.kind, it.pt = MoveToKind, Pt(c[0], c[1])
		it.cur, it.move = it.pt, it.pt
	case LineToKind:
		it.kind, it.pt = LineToKind, Pt(c[0], c[1])
		it.cur = it.pt
	case ClosePathKind:
		it.kind = ClosePathKind
		it.cur = it.move
	case QuadToKind:
		it.stack = append(it.stack, flattenEntry{
			pts: [4]Point{it.cur, Pt(c[0], c[1]), Pt(c[2], c[3])},
		})
		it.limited = false
		it.emitPending()
	case CubicToKind:
		it.stack = append(it.stack, flattenEntry{
			pts:   [4]Point{it.cur, Pt(c[0], c[1]), Pt(c[2], c[3]), Pt(c[4], c[5])},
			cubic: true,
		})
		it.limited = false
		it.emitPending()
	default:
		kindError(kind)
	}
}

// emitPending subdivides the top of the stack until it is flat enough,
// then emits it as a line.
func (it *FlatteningIterator) emitPending() {
	for {
		top := &it.stack[len(it.stack)-1]
		if top.flatnessSq() <= it.flatnessSq {
			break
		}
		if top.depth >= it.limit {
			if !it.limited {
				it.limited = true
				Logger().Debug("flattening reached recursion limit",
					slog.Int("limit", it.limit),
					slog.Float64("flatness", it.flatness))
			}
			break
		}
		first := top.split()
		it.stack = append(it.stack, first)
	}
	n := len(it.stack) - 1
	it.kind, it.pt = LineToKind, it.stack[n].end()
	it.cur = it.pt
	it.stack = it.stack[:n]
}

// Flatten returns a sequence of the segments of it with curves replaced by
// lines, as produced by [NewFlatteningIterator] with the default recursion
// limit. It panics if flatness is negative.
func Flatten(it SegmentIterator, flatness float64) iter.Seq[PathElement] {
	fit, err := NewFlatteningIterator(it, flatness)
	if err != nil {
		panic(err)
	}
	return Elements(fit)
}
