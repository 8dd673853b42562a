package geom

import (
	"fmt"
	"math"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Transform applies the transform to pt.
func (a *Affine) Transform(pt Point) Point {
	x, y := a.apply(pt.X, pt.Y)
	return Point{X: x, Y: y}
}

func (a *Affine) apply(x, y float64) (float64, float64) {
	switch s := a.sparsity(); s {
	case applyShear | applyScale | applyTranslate:
		return x*a.m00 + y*a.m01 + a.m02, x*a.m10 + y*a.m11 + a.m12
	case applyShear | applyScale:
		return x*a.m00 + y*a.m01, x*a.m10 + y*a.m11
	case applyShear | applyTranslate:
		return y*a.m01 + a.m02, x*a.m10 + a.m12
	case applyShear:
		return y * a.m01, x * a.m10
	case applyScale | applyTranslate:
		return x*a.m00 + a.m02, y*a.m11 + a.m12
	case applyScale:
		return x * a.m00, y * a.m11
	case applyTranslate:
		return x + a.m02, y + a.m12
	case applyIdentity:
		return x, y
	default:
		stateError(s)
		panic("unreachable")
	}
}

// DeltaTransform applies the linear part of the transform to v, ignoring
// the translation.
func (a *Affine) DeltaTransform(v Vec2) Vec2 {
	switch s := a.sparsity(); s {
	case applyShear | applyScale | applyTranslate, applyShear | applyScale:
		return Vec2{X: v.X*a.m00 + v.Y*a.m01, Y: v.X*a.m10 + v.Y*a.m11}
	case applyShear | applyTranslate, applyShear:
		return Vec2{X: v.Y * a.m01, Y: v.X * a.m10}
	case applyScale | applyTranslate, applyScale:
		return Vec2{X: v.X * a.m00, Y: v.Y * a.m11}
	case applyTranslate, applyIdentity:
		return v
	default:
		stateError(s)
		panic("unreachable")
	}
}

// InverseTransform applies the inverse of the transform to pt without
// computing the inverse transform. It returns [ErrNonInvertible] under the
// same conditions as [Affine.CreateInverse].
func (a *Affine) InverseTransform(pt Point) (Point, error) {
	x, y, err := a.inverseApply(pt.X, pt.Y, true)
	return Point{X: x, Y: y}, err
}

// InverseDeltaTransform applies the inverse of the linear part of the
// transform to v.
func (a *Affine) InverseDeltaTransform(v Vec2) (Vec2, error) {
	x, y, err := a.inverseApply(v.X, v.Y, false)
	return Vec2{X: x, Y: y}, err
}

func (a *Affine) inverseApply(x, y float64, translate bool) (float64, float64, error) {
	s := a.sparsity()
	if translate && s&applyTranslate != 0 {
		x -= a.m02
		y -= a.m12
	}
	switch s &^ applyTranslate {
	case applyShear | applyScale:
		det := a.m00*a.m11 - a.m01*a.m10
		if math.Abs(det) <= math.SmallestNonzeroFloat64 {
			return 0, 0, fmt.Errorf("%w: determinant is %g", ErrNonInvertible, det)
		}
		return (x*a.m11 - y*a.m01) / det, (y*a.m00 - x*a.m10) / det, nil
	case applyShear:
		if a.m01 == 0 || a.m10 == 0 {
			return 0, 0, fmt.Errorf("%w: zero shear coefficient", ErrNonInvertible)
		}
		return y / a.m10, x / a.m01, nil
	case applyScale:
		if a.m00 == 0 || a.m11 == 0 {
			return 0, 0, fmt.Errorf("%w: zero scale coefficient", ErrNonInvertible)
		}
		return x / a.m00, y / a.m11, nil
	case applyIdentity:
		return x, y, nil
	default:
		stateError(s)
		panic("unreachable")
	}
}

// TransformCoords transforms the points stored as consecutive x, y pairs in
// src and stores them in dst. dst must be at least as long as src, and src
// must hold an even number of values; otherwise [ErrInvalidArgument] is
// returned and dst isn't modified.
//
// src and dst may overlap in any way. The result is the same as if all
// points were transformed before any was stored.
func (a *Affine) TransformCoords(dst, src []float64) error {
	if err := checkCoords(len(dst), len(src)); err != nil {
		return err
	}
	transformCoords(a, dst, unalias(dst, src))
	return nil
}

// TransformCoordsInPlace transforms the x, y pairs in pts.
func (a *Affine) TransformCoordsInPlace(pts []float64) error {
	return a.TransformCoords(pts, pts)
}

// TransformCoords32 is like [Affine.TransformCoords] for float32 storage. The
// arithmetic is done in float64.
func (a *Affine) TransformCoords32(dst, src []float32) error {
	if err := checkCoords(len(dst), len(src)); err != nil {
		return err
	}
	transformCoords(a, dst, unalias(dst, src))
	return nil
}

// TransformCoords32To64 transforms float32 points into float64 storage.
func (a *Affine) TransformCoords32To64(dst []float64, src []float32) error {
	if err := checkCoords(len(dst), len(src)); err != nil {
		return err
	}
	transformCoords(a, dst, src)
	return nil
}

// TransformCoords64To32 transforms float64 points into float32 storage.
func (a *Affine) TransformCoords64To32(dst []float32, src []float64) error {
	if err := checkCoords(len(dst), len(src)); err != nil {
		return err
	}
	transformCoords(a, dst, src)
	return nil
}

// DeltaTransformCoords is like [Affine.TransformCoords] but ignores the
// translation, transforming vectors instead of points.
func (a *Affine) DeltaTransformCoords(dst, src []float64) error {
	if err := checkCoords(len(dst), len(src)); err != nil {
		return err
	}
	src = unalias(dst, src)
	lin := *a
	lin.m02, lin.m12 = 0, 0
	lin.updateState()
	transformCoords(&lin, dst, src)
	return nil
}

// InverseTransformCoords is like [Affine.TransformCoords] but applies the
// inverse transform. If the transform isn't invertible, it returns
// [ErrNonInvertible] and dst isn't modified.
func (a *Affine) InverseTransformCoords(dst, src []float64) error {
	if err := checkCoords(len(dst), len(src)); err != nil {
		return err
	}
	// Invertibility only depends on the coefficients, not on the point.
	if _, _, err := a.inverseApply(0, 0, false); err != nil {
		return err
	}
	src = unalias(dst, src)
	for i := 0; i+1 < len(src); i += 2 {
		dst[i], dst[i+1], _ = a.inverseApply(src[i], src[i+1], true)
	}
	return nil
}

func checkCoords(dst, src int) error {
	if src%2 != 0 {
		return fmt.Errorf("%w: odd number of coordinates (%d)", ErrInvalidArgument, src)
	}
	if dst < src {
		return fmt.Errorf("%w: destination holds %d coordinates, need %d", ErrInvalidArgument, dst, src)
	}
	return nil
}

// unalias returns the slice to read source points from. If dst starts
// inside src, writing the first results would clobber points not yet read,
// so src is first copied into dst and the points are transformed in place.
func unalias[E any](dst, src []E) []E {
	if len(src) == 0 {
		return src
	}
	dst = dst[:len(src)]
	if overlaps(dst, src) && uintptr(unsafe.Pointer(&dst[0])) > uintptr(unsafe.Pointer(&src[0])) {
		copy(dst, src)
		return dst
	}
	return src
}

// overlaps reports whether the memory ranges a[:len(a)] and b[:len(b)]
// overlap.
func overlaps[E any](a, b []E) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	elemSize := unsafe.Sizeof(a[0])
	if elemSize == 0 {
		return false
	}
	return uintptr(unsafe.Pointer(&a[0])) <= uintptr(unsafe.Pointer(&b[len(b)-1]))+(elemSize-1) &&
		uintptr(unsafe.Pointer(&b[0])) <= uintptr(unsafe.Pointer(&a[len(a)-1]))+(elemSize-1)
}

// transformCoords transforms len(src)/2 points front to back. It is safe for
// dst to start at or before src in memory, as each point is read before its
// result is stored.
func transformCoords[D, S constraints.Float](a *Affine, dst []D, src []S) {
	n := len(src) / 2
	m00, m01, m02 := a.m00, a.m01, a.m02
	m10, m11, m12 := a.m10, a.m11, a.m12
	switch s := a.sparsity(); s {
	case applyShear | applyScale | applyTranslate:
		for i := range n {
			x, y := float64(src[2*i]), float64(src[2*i+1])
			dst[2*i] = D(m00*x + m01*y + m02)
			dst[2*i+1] = D(m10*x + m11*y + m12)
		}
	case applyShear | applyScale:
		for i := range n {
			x, y := float64(src[2*i]), float64(src[2*i+1])
			dst[2*i] = D(m00*x + m01*y)
			dst[2*i+1] = D(m10*x + m11*y)
		}
	case applyShear | applyTranslate:
		for i := range n {
			x, y := float64(src[2*i]), float64(src[2*i+1])
			dst[2*i] = D(m01*y + m02)
			dst[2*i+1] = D(m10*x + m12)
		}
	case applyShear:
		for i := range n {
			x, y := float64(src[2*i]), float64(src[2*i+1])
			dst[2*i] = D(m01 * y)
			dst[2*i+1] = D(m10 * x)
		}
	case applyScale | applyTranslate:
		for i := range n {
			x, y := float64(src[2*i]), float64(src[2*i+1])
			dst[2*i] = D(m00*x + m02)
			dst[2*i+1] = D(m11*y + m12)
		}
	case applyScale:
		for i := range n {
			x, y := float64(src[2*i]), float64(src[2*i+1])
			dst[2*i] = D(m00 * x)
			dst[2*i+1] = D(m11 * y)
		}
	case applyTranslate:
		for i := range n {
			x, y := float64(src[2*i]), float64(src[2*i+1])
			dst[2*i] = D(x + m02)
			dst[2*i+1] = D(y + m12)
		}
	case applyIdentity:
		for i := range 2 * n {
			dst[i] = D(src[i])
		}
	default:
		stateError(s)
	}
}
