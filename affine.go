package geom

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/math/f64"
)

// sparsity records which groups of coefficients of an [Affine] differ from
// those of the identity transform. It selects the fast paths used when
// composing and applying transforms.
//
// The scale bit has a different meaning depending on the shear bit. Without
// shear, it means m00 and m11 are not both 1. With shear, it means m00 and
// m11 are not both 0.
type sparsity uint8

const (
	applyIdentity  sparsity = 0
	applyTranslate sparsity = 1
	applyScale     sparsity = 2
	applyShear     sparsity = 4

	// hiShift moves the operand's tag above the receiver's when dispatching on
	// both.
	hiShift = 3

	hiIdentity  = applyIdentity << hiShift
	hiTranslate = applyTranslate << hiShift
	hiScale     = applyScale << hiShift
	hiShear     = applyShear << hiShift

	sparsityMask = applyTranslate | applyScale | applyShear
)

// TransformType classifies the geometric effect of an [Affine].
//
// Within the scale and rotation categories the flags are mutually exclusive:
// a transform is never both a uniform and a general scale, nor both a
// quadrant and a general rotation.
type TransformType uint8

const (
	// TypeIdentity is the identity transform.
	TypeIdentity TransformType = 0
	// TypeTranslation is set for transforms with a non-zero translation.
	TypeTranslation TransformType = 1
	// TypeUniformScale is set for transforms that scale both axes by the same
	// factor other than 1.
	TypeUniformScale TransformType = 2
	// TypeGeneralScale is set for transforms that scale the axes by
	// different factors.
	TypeGeneralScale TransformType = 4
	// TypeQuadrantRotation is set for rotations by a multiple of 90°.
	TypeQuadrantRotation TransformType = 8
	// TypeGeneralRotation is set for rotations by an arbitrary angle.
	TypeGeneralRotation TransformType = 16
	// TypeGeneralTransform is set for transforms that don't preserve the
	// orthogonality of the axes.
	TypeGeneralTransform TransformType = 32
	// TypeFlip is set for transforms that mirror about some axis, turning
	// right-handed coordinate systems into left-handed ones.
	TypeFlip TransformType = 64

	TypeMaskScale    = TypeUniformScale | TypeGeneralScale
	TypeMaskRotation = TypeQuadrantRotation | TypeGeneralRotation
)

func (typ TransformType) String() string {
	if typ == TypeIdentity {
		return "identity"
	}
	var parts []string
	names := [...]struct {
		flag TransformType
		name string
	}{
		{TypeTranslation, "translation"},
		{TypeUniformScale, "uniform scale"},
		{TypeGeneralScale, "general scale"},
		{TypeQuadrantRotation, "quadrant rotation"},
		{TypeGeneralRotation, "general rotation"},
		{TypeGeneralTransform, "general transform"},
		{TypeFlip, "flip"},
	}
	for _, n := range names {
		if typ&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Affine is a 2D affine transform, mapping (x, y) to
//
//	x' = m00·x + m01·y + m02
//	y' = m10·x + m11·y + m12
//
// Besides the six coefficients, it caches a classification of which
// coefficients are trivial, used to pick fast paths, and the transform's
// [TransformType]. Both caches are maintained by every mutating method.
//
// The zero value is the degenerate transform that maps every point to the
// origin. Use [Identity] to get the identity transform.
//
// An Affine must not be mutated concurrently. Methods that only read the
// transform, such as [Affine.Transform], [Affine.TransformCoords] and
// [Affine.Type], never write to it and may be called concurrently.
type Affine struct {
	m00, m10, m01, m11, m02, m12 float64

	// An unset state is derived from the coefficients on first use.
	state option[sparsity]
	typ   option[TransformType]
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{
		m00:   1,
		m11:   1,
		state: some(applyIdentity),
		typ:   some(TypeIdentity),
	}
}

// NewAffine returns the transform with the given coefficients.
func NewAffine(m00, m10, m01, m11, m02, m12 float64) Affine {
	a := Affine{m00: m00, m10: m10, m01: m01, m11: m11, m02: m02, m12: m12}
	a.updateState()
	return a
}

// NewAffineFlat returns the transform described by the first 4 or 6 elements
// of m, in the order m00, m10, m01, m11, m02, m12. With 4 elements the
// translation is zero.
func NewAffineFlat(m []float64) (Affine, error) {
	switch {
	case len(m) >= 6:
		return NewAffine(m[0], m[1], m[2], m[3], m[4], m[5]), nil
	case len(m) >= 4:
		return NewAffine(m[0], m[1], m[2], m[3], 0, 0), nil
	default:
		return Affine{}, fmt.Errorf("%w: need 4 or 6 coefficients, got %d", ErrInvalidArgument, len(m))
	}
}

// NewAffineFromAff3 converts a row-major matrix as used by
// golang.org/x/image.
func NewAffineFromAff3(m f64.Aff3) Affine {
	return NewAffine(m[0], m[3], m[1], m[4], m[2], m[5])
}

// NewTranslate returns a transform that translates by (tx, ty).
func NewTranslate(tx, ty float64) Affine {
	a := Identity()
	a.SetToTranslation(tx, ty)
	return a
}

// NewScale returns a transform that scales by sx and sy.
func NewScale(sx, sy float64) Affine {
	a := Identity()
	a.SetToScale(sx, sy)
	return a
}

// NewShear returns a transform that shears by shx and shy. The x coordinate
// is offset by shx times y, and the y coordinate by shy times x.
func NewShear(shx, shy float64) Affine {
	a := Identity()
	a.SetToShear(shx, shy)
	return a
}

// NewRotate returns a transform that rotates by theta radians. Positive
// angles rotate the positive x axis toward the positive y axis.
func NewRotate(theta float64) Affine {
	a := Identity()
	a.SetToRotation(theta)
	return a
}

// NewRotateAbout returns a transform that rotates by theta radians about
// anchor.
func NewRotateAbout(theta float64, anchor Point) Affine {
	a := Identity()
	a.RotateAbout(theta, anchor)
	return a
}

// NewRotateVec returns a transform that rotates the positive x axis onto the
// direction of v. A zero vector results in the identity transform.
func NewRotateVec(v Vec2) Affine {
	a := Identity()
	a.RotateVec(v)
	return a
}

// NewQuadrantRotate returns a transform that rotates by n quarter turns.
func NewQuadrantRotate(n int) Affine {
	a := Identity()
	a.QuadrantRotate(n)
	return a
}

// NewQuadrantRotateAbout returns a transform that rotates by n quarter turns
// about anchor.
func NewQuadrantRotateAbout(n int, anchor Point) Affine {
	a := Identity()
	a.QuadrantRotateAbout(n, anchor)
	return a
}

func stateError(s sparsity) {
	panic(fmt.Sprintf("geom: affine transform in invalid state %d", s))
}

// deriveSparsity computes the sparsity tag of the coefficients from scratch.
func (a *Affine) deriveSparsity() sparsity {
	var s sparsity
	if a.m01 == 0 && a.m10 == 0 {
		if a.m00 != 1 || a.m11 != 1 {
			s |= applyScale
		}
	} else {
		s |= applyShear
		if a.m00 != 0 || a.m11 != 0 {
			s |= applyScale
		}
	}
	if a.m02 != 0 || a.m12 != 0 {
		s |= applyTranslate
	}
	return s
}

// updateState rederives the sparsity tag from the coefficients. The type is
// known for identities and pure translations and unknown otherwise.
func (a *Affine) updateState() {
	s := a.deriveSparsity()
	a.state.set(s)
	switch s {
	case applyIdentity:
		a.typ.set(TypeIdentity)
	case applyTranslate:
		a.typ.set(TypeTranslation)
	default:
		a.typ.clear()
	}
}

// st returns the sparsity tag, deriving and caching it if needed. Only
// mutating methods may call it.
func (a *Affine) st() sparsity {
	if !a.state.isSet {
		a.updateState()
	}
	return a.sparsity()
}

// sparsity returns the sparsity tag without writing to the cache.
func (a *Affine) sparsity() sparsity {
	s := a.state.value
	if !a.state.isSet {
		s = a.deriveSparsity()
	}
	if s&^sparsityMask != 0 {
		stateError(s)
	}
	return s
}

func (a *Affine) setState(s sparsity, typ option[TransformType]) {
	a.state.set(s)
	a.typ = typ
}

// Type returns the geometric classification of the transform. The
// classification is cached by mutating methods when it is cheap to know;
// otherwise it is computed from the coefficients without modifying a.
func (a *Affine) Type() TransformType {
	if a.typ.isSet && a.state.isSet {
		return a.typ.value
	}
	tmp := *a
	tmp.calculateType()
	return tmp.typ.value
}

func (a *Affine) calculateType() {
	a.updateState()
	var ret TransformType
	switch s := a.st(); s {
	case applyShear | applyScale | applyTranslate, applyShear | applyScale:
		if s&applyTranslate != 0 {
			ret = TypeTranslation
		}
		m0, m1, m2, m3 := a.m00, a.m11, a.m01, a.m10
		if m0*m2+m3*m1 != 0 {
			// The transformed unit vectors aren't perpendicular.
			a.typ.set(TypeGeneralTransform)
			return
		}
		if (m0 >= 0) == (m1 >= 0) {
			// Unflipped, right-handed.
			if m0 != m1 || m2 != -m3 {
				ret |= TypeGeneralRotation | TypeGeneralScale
			} else if m0*m1-m2*m3 != 1 {
				ret |= TypeGeneralRotation | TypeUniformScale
			} else {
				ret |= TypeGeneralRotation
			}
		} else {
			// Flipped, left-handed.
			if m0 != -m1 || m2 != m3 {
				ret |= TypeGeneralRotation | TypeFlip | TypeGeneralScale
			} else if m0*m1-m2*m3 != 1 {
				ret |= TypeGeneralRotation | TypeFlip | TypeUniformScale
			} else {
				ret |= TypeGeneralRotation | TypeFlip
			}
		}
	case applyShear | applyTranslate, applyShear:
		if s&applyTranslate != 0 {
			ret = TypeTranslation
		}
		m0, m1 := a.m01, a.m10
		if (m0 >= 0) != (m1 >= 0) {
			// A plain 90° rotation.
			if m0 != -m1 {
				ret |= TypeQuadrantRotation | TypeGeneralScale
			} else if m0 != 1 && m0 != -1 {
				ret |= TypeQuadrantRotation | TypeUniformScale
			} else {
				ret |= TypeQuadrantRotation
			}
		} else {
			// A 90° rotation combined with a flip.
			if m0 != m1 {
				ret |= TypeQuadrantRotation | TypeFlip | TypeGeneralScale
			} else if m0 != 1 && m0 != -1 {
				ret |= TypeQuadrantRotation | TypeFlip | TypeUniformScale
			} else {
				ret |= TypeQuadrantRotation | TypeFlip
			}
		}
	case applyScale | applyTranslate, applyScale:
		if s&applyTranslate != 0 {
			ret = TypeTranslation
		}
		m0, m1 := a.m00, a.m11
		if (m0 >= 0) == (m1 >= 0) {
			if m0 >= 0 {
				if m0 == m1 {
					ret |= TypeUniformScale
				} else {
					ret |= TypeGeneralScale
				}
			} else {
				// Both factors negative is a 180° rotation.
				if m0 != m1 {
					ret |= TypeQuadrantRotation | TypeGeneralScale
				} else if m0 != -1 {
					ret |= TypeQuadrantRotation | TypeUniformScale
				} else {
					ret |= TypeQuadrantRotation
				}
			}
		} else {
			if m0 == -m1 {
				if m0 == 1 || m0 == -1 {
					ret |= TypeFlip
				} else {
					ret |= TypeFlip | TypeUniformScale
				}
			} else {
				ret |= TypeFlip | TypeGeneralScale
			}
		}
	case applyTranslate:
		ret = TypeTranslation
	case applyIdentity:
	default:
		stateError(s)
	}
	a.typ.set(ret)
}

// Determinant returns the determinant of the linear part of the transform.
func (a *Affine) Determinant() float64 {
	switch s := a.sparsity(); s {
	case applyShear | applyScale | applyTranslate, applyShear | applyScale:
		return a.m00*a.m11 - a.m01*a.m10
	case applyShear | applyTranslate, applyShear:
		return -(a.m01 * a.m10)
	case applyScale | applyTranslate, applyScale:
		return a.m00 * a.m11
	case applyTranslate, applyIdentity:
		return 1
	default:
		stateError(s)
		panic("unreachable")
	}
}

// IsIdentity reports whether the transform is the identity transform.
func (a *Affine) IsIdentity() bool {
	return a.sparsity() == applyIdentity
}

func (a *Affine) ScaleX() float64     { return a.m00 }
func (a *Affine) ScaleY() float64     { return a.m11 }
func (a *Affine) ShearX() float64     { return a.m01 }
func (a *Affine) ShearY() float64     { return a.m10 }
func (a *Affine) TranslateX() float64 { return a.m02 }
func (a *Affine) TranslateY() float64 { return a.m12 }

// Matrix returns the coefficients in the order m00, m10, m01, m11, m02, m12,
// as accepted by [NewAffineFlat].
func (a *Affine) Matrix() [6]float64 {
	return [6]float64{a.m00, a.m10, a.m01, a.m11, a.m02, a.m12}
}

// Aff3 returns the transform as a row-major matrix as used by
// golang.org/x/image.
func (a *Affine) Aff3() f64.Aff3 {
	return f64.Aff3{a.m00, a.m01, a.m02, a.m10, a.m11, a.m12}
}

// Equal reports whether both transforms have identical coefficients.
func (a *Affine) Equal(o *Affine) bool {
	return a.m00 == o.m00 && a.m01 == o.m01 && a.m02 == o.m02 &&
		a.m10 == o.m10 && a.m11 == o.m11 && a.m12 == o.m12
}

func (a *Affine) String() string {
	return fmt.Sprintf("[[%g %g %g] [%g %g %g]]", a.m00, a.m01, a.m02, a.m10, a.m11, a.m12)
}

// IsNaN reports whether any coefficient is NaN.
func (a *Affine) IsNaN() bool {
	for _, m := range a.Matrix() {
		if math.IsNaN(m) {
			return true
		}
	}
	return false
}

func (a *Affine) IsInf() bool {
	for _, m := range a.Matrix() {
		if math.IsInf(m, 0) {
			return true
		}
	}
	return false
}

// svd computes the singular values of the linear part of the transform and
// the angle of the first singular vector.
func (a *Affine) svd() (scale Vec2, th float64) {
	a2 := a.m00 * a.m00
	b2 := a.m10 * a.m10
	c2 := a.m01 * a.m01
	d2 := a.m11 * a.m11
	ab := a.m00 * a.m10
	cd := a.m01 * a.m11
	th = 0.5 * math.Atan2(2.0*(ab+cd), a2-b2+c2-d2)
	s1 := a2 + b2 + c2 + d2
	s2 := math.Sqrt(math.Pow(a2-b2+c2-d2, 2) + 4.0*math.Pow(ab+cd, 2))
	return Vec2{
		X: math.Sqrt(0.5 * (s1 + s2)),
		Y: math.Sqrt(max(0.5*(s1-s2), 0)),
	}, th
}

// Translate concatenates the transform with a translation by (tx, ty).
func (a *Affine) Translate(tx, ty float64) {
	switch s := a.st(); s {
	case applyShear | applyScale | applyTranslate:
		a.m02 = tx*a.m00 + ty*a.m01 + a.m02
		a.m12 = tx*a.m10 + ty*a.m11 + a.m12
		if a.m02 == 0 && a.m12 == 0 {
			a.dropTranslate(s)
		}
	case applyShear | applyScale:
		a.m02 = tx*a.m00 + ty*a.m01
		a.m12 = tx*a.m10 + ty*a.m11
		if a.m02 != 0 || a.m12 != 0 {
			a.addTranslate(s)
		}
	case applyShear | applyTranslate:
		a.m02 = ty*a.m01 + a.m02
		a.m12 = tx*a.m10 + a.m12
		if a.m02 == 0 && a.m12 == 0 {
			a.dropTranslate(s)
		}
	case applyShear:
		a.m02 = ty * a.m01
		a.m12 = tx * a.m10
		if a.m02 != 0 || a.m12 != 0 {
			a.addTranslate(s)
		}
	case applyScale | applyTranslate:
		a.m02 = tx*a.m00 + a.m02
		a.m12 = ty*a.m11 + a.m12
		if a.m02 == 0 && a.m12 == 0 {
			a.dropTranslate(s)
		}
	case applyScale:
		a.m02 = tx * a.m00
		a.m12 = ty * a.m11
		if a.m02 != 0 || a.m12 != 0 {
			a.addTranslate(s)
		}
	case applyTranslate:
		a.m02 = tx + a.m02
		a.m12 = ty + a.m12
		if a.m02 == 0 && a.m12 == 0 {
			a.setState(applyIdentity, some(TypeIdentity))
		}
	case applyIdentity:
		a.m02 = tx
		a.m12 = ty
		if tx != 0 || ty != 0 {
			a.setState(applyTranslate, some(TypeTranslation))
		}
	default:
		stateError(s)
	}
}

// addTranslate and dropTranslate update the caches for a change in
// translation only. TypeGeneralTransform never carries other flags.
func (a *Affine) addTranslate(s sparsity) {
	a.state.set(s | applyTranslate)
	if a.typ.isSet && a.typ.value != TypeGeneralTransform {
		a.typ.value |= TypeTranslation
	}
}

func (a *Affine) dropTranslate(s sparsity) {
	a.state.set(s &^ applyTranslate)
	if a.typ.isSet && a.typ.value != TypeGeneralTransform {
		a.typ.value &^= TypeTranslation
	}
}

// Scale concatenates the transform with a scale by sx and sy.
func (a *Affine) Scale(sx, sy float64) {
	switch s := a.st(); s {
	case applyShear | applyScale | applyTranslate, applyShear | applyScale,
		applyShear | applyTranslate, applyShear:
		if s&applyScale != 0 {
			a.m00 *= sx
			a.m11 *= sy
		}
		a.m01 *= sy
		a.m10 *= sx
		if a.m01 == 0 && a.m10 == 0 {
			s &= applyTranslate
			if a.m00 == 1 && a.m11 == 1 {
				if s == applyIdentity {
					a.setState(s, some(TypeIdentity))
				} else {
					a.setState(s, some(TypeTranslation))
				}
			} else {
				a.setState(s|applyScale, option[TransformType]{})
			}
			return
		}
		if s&applyScale != 0 && a.m00 == 0 && a.m11 == 0 {
			s &^= applyScale
		}
		a.setState(s, option[TransformType]{})
	case applyScale | applyTranslate, applyScale:
		a.m00 *= sx
		a.m11 *= sy
		if a.m00 == 1 && a.m11 == 1 {
			s &= applyTranslate
			if s == applyIdentity {
				a.setState(s, some(TypeIdentity))
			} else {
				a.setState(s, some(TypeTranslation))
			}
		} else {
			a.typ.clear()
		}
	case applyTranslate, applyIdentity:
		a.m00 = sx
		a.m11 = sy
		if sx != 1 || sy != 1 {
			a.setState(s|applyScale, option[TransformType]{})
		}
	default:
		stateError(s)
	}
}

// Shear concatenates the transform with a shear by shx and shy.
func (a *Affine) Shear(shx, shy float64) {
	switch s := a.st(); s {
	case applyShear | applyScale | applyTranslate, applyShear | applyScale:
		m0, m1 := a.m00, a.m01
		a.m00 = m0 + m1*shy
		a.m01 = m0*shx + m1
		m0, m1 = a.m10, a.m11
		a.m10 = m0 + m1*shy
		a.m11 = m0*shx + m1
		a.updateState()
	case applyShear | applyTranslate, applyShear:
		a.m00 = a.m01 * shy
		a.m11 = a.m10 * shx
		if a.m00 != 0 || a.m11 != 0 {
			s |= applyScale
		}
		a.setState(s, option[TransformType]{})
	case applyScale | applyTranslate, applyScale:
		a.m01 = a.m00 * shx
		a.m10 = a.m11 * shy
		if a.m01 != 0 || a.m10 != 0 {
			s |= applyShear
		}
		a.setState(s, option[TransformType]{})
	case applyTranslate, applyIdentity:
		a.m01 = shx
		a.m10 = shy
		if shx != 0 || shy != 0 {
			a.setState(s|applyScale|applyShear, option[TransformType]{})
		}
	default:
		stateError(s)
	}
}

// rot90 maps the sparsity tag of a transform to that of the transform
// rotated by a quarter turn. Scale and shear slots trade places; the result
// may still need a demotion when the new scale slots are exactly 1.
var rot90 = [...]sparsity{
	applyIdentity:                             applyShear,
	applyTranslate:                            applyShear | applyTranslate,
	applyScale:                                applyShear,
	applyScale | applyTranslate:               applyShear | applyTranslate,
	applyShear:                                applyScale,
	applyShear | applyTranslate:               applyScale | applyTranslate,
	applyShear | applyScale:                   applyShear | applyScale,
	applyShear | applyScale | applyTranslate: applyShear | applyScale | applyTranslate,
}

func (a *Affine) rotate90() {
	s := a.st()
	m0 := a.m00
	a.m00 = a.m01
	a.m01 = -m0
	m0 = a.m10
	a.m10 = a.m11
	a.m11 = -m0
	a.afterQuadrantSwap(rot90[s])
}

func (a *Affine) rotate180() {
	a.m00 = -a.m00
	a.m11 = -a.m11
	s := a.st()
	if s&applyShear != 0 {
		// Negating both pairs doesn't change which slots are trivial.
		a.m01 = -a.m01
		a.m10 = -a.m10
	} else if a.m00 == 1 && a.m11 == 1 {
		s &^= applyScale
	} else {
		s |= applyScale
	}
	a.setState(s, option[TransformType]{})
}

func (a *Affine) rotate270() {
	s := a.st()
	m0 := a.m00
	a.m00 = -a.m01
	a.m01 = m0
	m0 = a.m10
	a.m10 = -a.m11
	a.m11 = m0
	a.afterQuadrantSwap(rot90[s])
}

func (a *Affine) afterQuadrantSwap(s sparsity) {
	if s&(applyShear|applyScale) == applyScale && a.m00 == 1 && a.m11 == 1 {
		s &^= applyScale
	}
	if s&applyShear != 0 && a.m01 == 0 && a.m10 == 0 {
		// Only reachable when the scale slots were both zero.
		a.updateState()
		return
	}
	a.setState(s, option[TransformType]{})
}

// Rotate concatenates the transform with a rotation by theta radians.
//
// Angles whose sine or cosine rounds to exactly ±1 are treated as exact
// quarter turns, so that rotating by math.Pi/2 results in a transform of
// type [TypeQuadrantRotation] that maps (1, 0) to exactly (0, 1).
func (a *Affine) Rotate(theta float64) {
	sin := math.Sin(theta)
	switch sin {
	case 1:
		a.rotate90()
		return
	case -1:
		a.rotate270()
		return
	}
	cos := math.Cos(theta)
	switch cos {
	case -1:
		a.rotate180()
	case 1:
	default:
		a.rotateSinCos(sin, cos)
	}
}

func (a *Affine) rotateSinCos(sin, cos float64) {
	m0, m1 := a.m00, a.m01
	a.m00 = cos*m0 + sin*m1
	a.m01 = -sin*m0 + cos*m1
	m0, m1 = a.m10, a.m11
	a.m10 = cos*m0 + sin*m1
	a.m11 = -sin*m0 + cos*m1
	a.updateState()
}

// RotateAbout concatenates the transform with a rotation by theta radians
// about anchor.
func (a *Affine) RotateAbout(theta float64, anchor Point) {
	a.Translate(anchor.X, anchor.Y)
	a.Rotate(theta)
	a.Translate(-anchor.X, -anchor.Y)
}

// RotateVec concatenates the transform with a rotation that maps the
// positive x axis onto the direction of v. The rotation is computed without
// trigonometric functions, and vectors along an axis result in exact quarter
// turns. The zero vector is treated as no rotation.
func (a *Affine) RotateVec(v Vec2) {
	switch {
	case v.Y == 0:
		if v.X < 0 {
			a.rotate180()
		}
	case v.X == 0:
		if v.Y > 0 {
			a.rotate90()
		} else {
			a.rotate270()
		}
	default:
		l := math.Hypot(v.X, v.Y)
		a.rotateSinCos(v.Y/l, v.X/l)
	}
}

// RotateVecAbout is like [Affine.RotateVec] but rotates about anchor.
func (a *Affine) RotateVecAbout(v Vec2, anchor Point) {
	a.Translate(anchor.X, anchor.Y)
	a.RotateVec(v)
	a.Translate(-anchor.X, -anchor.Y)
}

// QuadrantRotate concatenates the transform with a rotation by n quarter
// turns. Negative values of n rotate in the opposite direction.
func (a *Affine) QuadrantRotate(n int) {
	switch n & 3 {
	case 1:
		a.rotate90()
	case 2:
		a.rotate180()
	case 3:
		a.rotate270()
	}
}

// QuadrantRotateAbout concatenates the transform with a rotation by n
// quarter turns about anchor.
func (a *Affine) QuadrantRotateAbout(n int, anchor Point) {
	if n&3 == 0 {
		return
	}
	a.Translate(anchor.X, anchor.Y)
	a.QuadrantRotate(n)
	a.Translate(-anchor.X, -anchor.Y)
}

// SetToIdentity resets the transform to the identity.
func (a *Affine) SetToIdentity() {
	*a = Identity()
}

// SetToTranslation replaces the transform with a translation by (tx, ty).
func (a *Affine) SetToTranslation(tx, ty float64) {
	*a = Affine{m00: 1, m11: 1, m02: tx, m12: ty}
	if tx != 0 || ty != 0 {
		a.setState(applyTranslate, some(TypeTranslation))
	} else {
		a.setState(applyIdentity, some(TypeIdentity))
	}
}

// SetToScale replaces the transform with a scale by sx and sy.
func (a *Affine) SetToScale(sx, sy float64) {
	*a = Affine{m00: sx, m11: sy}
	if sx != 1 || sy != 1 {
		a.setState(applyScale, option[TransformType]{})
	} else {
		a.setState(applyIdentity, some(TypeIdentity))
	}
}

// SetToShear replaces the transform with a shear by shx and shy.
func (a *Affine) SetToShear(shx, shy float64) {
	*a = Affine{m00: 1, m01: shx, m10: shy, m11: 1}
	if shx != 0 || shy != 0 {
		a.setState(applyShear|applyScale, option[TransformType]{})
	} else {
		a.setState(applyIdentity, some(TypeIdentity))
	}
}

// SetToRotation replaces the transform with a rotation by theta radians.
// Like [Affine.Rotate], angles close enough to quarter turns produce exact
// quarter turns.
func (a *Affine) SetToRotation(theta float64) {
	sin := math.Sin(theta)
	cos := math.Cos(theta)
	var s sparsity
	var typ option[TransformType]
	switch {
	case sin == 1 || sin == -1:
		cos = 0
		s = applyShear
		typ = some(TypeQuadrantRotation)
	case cos == 1:
		sin = 0
		s = applyIdentity
		typ = some(TypeIdentity)
	case cos == -1:
		sin = 0
		s = applyScale
		typ = some(TypeQuadrantRotation)
	default:
		// Whether sin² + cos² rounds to 1 decides if this is also a scale.
		s = applyShear | applyScale
	}
	*a = Affine{m00: cos, m10: sin, m01: -sin, m11: cos}
	a.setState(s, typ)
}

// SetTransform replaces the coefficients of the transform.
func (a *Affine) SetTransform(m00, m10, m01, m11, m02, m12 float64) {
	*a = NewAffine(m00, m10, m01, m11, m02, m12)
}

// SetAffine makes a a copy of o.
func (a *Affine) SetAffine(o *Affine) {
	*a = *o
}
