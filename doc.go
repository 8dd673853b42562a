// Package geom provides a 2D geometry kernel: affine transformations,
// parametric curves, and paths, together with the algorithms to compose
// transformations, walk paths one segment at a time, flatten curves to lines,
// and decide containment and intersection using crossing numbers.
//
// # Transformations
//
// [Affine] is a 2×3 affine matrix. Next to its six coefficients, it tracks
// which of them are non-trivial and what kind of transformation it
// represents (see [Affine.Type]). Composition, inversion, and point
// transformation dispatch on that state, so that common cases such as pure
// translations don't do the work of a general matrix product. Rotations by
// multiples of 90° are detected and applied exactly.
//
// # Segment iterators
//
// All shapes produce their outlines as a [SegmentIterator]: a cursor over
// moves, lines, quadratic and cubic Béziers, and closes, together with a
// [WindingRule]. Iterators can transform their coordinates on the fly and
// can be wrapped, for example by a [FlatteningIterator], which replaces
// curves with lines within a given flatness.
//
// The package includes the following shapes:
//   - [Arc]
//   - [Circle]
//   - [CubicBez]
//   - [Ellipse]
//   - [Line]
//   - [QuadBez]
//   - [Rect]
//   - [RoundedRect]
//
// # Paths
//
// [Path] stores a sequence of segments in either 32-bit ([Path32]) or 64-bit
// ([Path64]) precision. Paths can be built segment by segment, appended from
// other iterators, transformed in place, and queried for bounds and
// containment. Every non-empty path starts with a move; appending a drawing
// segment to an empty path fails with [ErrIllegalPathState].
//
// Paths can be exchanged as SVG path data (see [ParseSVGPath] and [SVG]) and
// in a compact binary encoding (see [WritePath] and [ReadPath]), and can be
// rendered into alpha masks with [Rasterize].
//
// # Containment
//
// Containment is decided by counting how often the outline crosses a ray
// from the test point towards positive x, with crossings of upward and
// downward edges counting with opposite signs. Open subpaths are treated as
// closed by a line back to their start. Under [NonZero], a point is inside
// if the count is non-zero; under [EvenOdd], if it is odd.
//
// Rectangle tests work the same way on the edges of the rectangle, and stop
// as soon as any segment is found to cross into the rectangle. They are
// conservative: [ContainsRect] may report false for rectangles that are
// inside the outline but touch it, and [IntersectsRect] may report true for
// rectangles that only come close to curves.
//
// # Root solvers
//
// [SolveQuadratic] and [SolveCubic] find the real roots of polynomials.
// Cubic roots found in closed form are polished afterwards, as closed-form
// solutions alone get them wrong near repeated roots. [SolveQuadraticEqn]
// and [SolveCubicEqn] read coefficients from and write roots to slices,
// which may share storage.
//
// # Literature
//
// This package makes use of the following ideas:
//   - [A Primer on Bézier Curves]
//   - [Approximate a circle with cubic Bézier curves] by Spencer Mortensen
//   - [How to solve a cubic equation, revisited] by Christoph Peters
//
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
// [Approximate a circle with cubic Bézier curves]: https://spencermortensen.com/articles/bezier-circle/
// [How to solve a cubic equation, revisited]: https://momentsingraphics.de/CubicRoots.html
package geom
