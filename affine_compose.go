package geom

import (
	"fmt"
	"math"
)

// Concatenate composes the transform with t, such that the result first
// applies t and then the original transform:
//
//	[this] = [this] × [t]
//
// This is the operation used by the mutating methods such as
// [Affine.Translate]: a.Translate(x, y) is equivalent to concatenating a
// translation.
func (a *Affine) Concatenate(t *Affine) {
	tx := *t
	mystate := a.st()
	txstate := tx.sparsity()

	switch txstate<<hiShift | mystate {
	case hiIdentity | applyIdentity,
		hiIdentity | applyTranslate,
		hiIdentity | applyScale,
		hiIdentity | applyScale | applyTranslate,
		hiIdentity | applyShear,
		hiIdentity | applyShear | applyTranslate,
		hiIdentity | applyShear | applyScale,
		hiIdentity | applyShear | applyScale | applyTranslate:
		return

	case hiShear | hiScale | hiTranslate | applyIdentity,
		hiScale | hiTranslate | applyIdentity,
		hiTranslate | applyIdentity,
		hiShear | hiScale | applyIdentity,
		hiScale | applyIdentity,
		hiShear | hiTranslate | applyIdentity,
		hiShear | applyIdentity:
		// The receiver is the identity, so the result is t.
		*a = tx
		return

	case hiTranslate | applyShear | applyScale | applyTranslate,
		hiTranslate | applyShear | applyScale,
		hiTranslate | applyShear | applyTranslate,
		hiTranslate | applyShear,
		hiTranslate | applyScale | applyTranslate,
		hiTranslate | applyScale,
		hiTranslate | applyTranslate:
		a.Translate(tx.m02, tx.m12)
		return

	case hiScale | applyShear | applyScale | applyTranslate,
		hiScale | applyShear | applyScale,
		hiScale | applyShear | applyTranslate,
		hiScale | applyShear,
		hiScale | applyScale | applyTranslate,
		hiScale | applyScale,
		hiScale | applyTranslate:
		a.Scale(tx.m00, tx.m11)
		return

	case hiShear | applyShear | applyScale | applyTranslate,
		hiShear | applyShear | applyScale:
		t01, t10 := tx.m01, tx.m10
		m0 := a.m00
		a.m00 = a.m01 * t10
		a.m01 = m0 * t01
		m0 = a.m10
		a.m10 = a.m11 * t10
		a.m11 = m0 * t01
		a.updateState()
		return

	case hiShear | applyShear | applyTranslate,
		hiShear | applyShear:
		a.m00 = a.m01 * tx.m10
		a.m01 = 0
		a.m11 = a.m10 * tx.m01
		a.m10 = 0
		a.updateState()
		return

	case hiShear | applyScale | applyTranslate,
		hiShear | applyScale:
		a.m01 = a.m00 * tx.m01
		a.m00 = 0
		a.m10 = a.m11 * tx.m10
		a.m11 = 0
		a.updateState()
		return

	case hiShear | applyTranslate:
		a.m00 = 0
		a.m01 = tx.m01
		a.m10 = tx.m10
		a.m11 = 0
		a.updateState()
		return
	}

	// t has more than one attribute; only the receiver's state is worth
	// specializing on.
	t00, t01, t02 := tx.m00, tx.m01, tx.m02
	t10, t11, t12 := tx.m10, tx.m11, tx.m12
	switch mystate {
	case applyShear | applyScale, applyShear | applyScale | applyTranslate:
		m0, m1 := a.m00, a.m01
		a.m00 = t00*m0 + t10*m1
		a.m01 = t01*m0 + t11*m1
		a.m02 += t02*m0 + t12*m1
		m0, m1 = a.m10, a.m11
		a.m10 = t00*m0 + t10*m1
		a.m11 = t01*m0 + t11*m1
		a.m12 += t02*m0 + t12*m1

	case applyShear | applyTranslate, applyShear:
		m0 := a.m01
		a.m00 = t10 * m0
		a.m01 = t11 * m0
		a.m02 += t12 * m0
		m0 = a.m10
		a.m10 = t00 * m0
		a.m11 = t01 * m0
		a.m12 += t02 * m0

	case applyScale | applyTranslate, applyScale:
		m0 := a.m00
		a.m00 = t00 * m0
		a.m01 = t01 * m0
		a.m02 += t02 * m0
		m0 = a.m11
		a.m10 = t10 * m0
		a.m11 = t11 * m0
		a.m12 += t12 * m0

	case applyTranslate:
		a.m00 = t00
		a.m01 = t01
		a.m02 += t02
		a.m10 = t10
		a.m11 = t11
		a.m12 += t12

	default:
		stateError(mystate)
	}
	a.updateState()
}

// PreConcatenate composes the transform with t, such that the result first
// applies the original transform and then t:
//
//	[this] = [t] × [this]
func (a *Affine) PreConcatenate(t *Affine) {
	tx := *t
	mystate := a.st()
	txstate := tx.sparsity()

	switch txstate<<hiShift | mystate {
	case hiIdentity | applyIdentity,
		hiIdentity | applyTranslate,
		hiIdentity | applyScale,
		hiIdentity | applyScale | applyTranslate,
		hiIdentity | applyShear,
		hiIdentity | applyShear | applyTranslate,
		hiIdentity | applyShear | applyScale,
		hiIdentity | applyShear | applyScale | applyTranslate:
		return

	case hiTranslate | applyIdentity,
		hiTranslate | applyScale,
		hiTranslate | applyShear,
		hiTranslate | applyShear | applyScale:
		// The receiver has no translation of its own.
		a.m02 = tx.m02
		a.m12 = tx.m12
		a.addTranslate(mystate)
		return

	case hiTranslate | applyTranslate,
		hiTranslate | applyScale | applyTranslate,
		hiTranslate | applyShear | applyTranslate,
		hiTranslate | applyShear | applyScale | applyTranslate:
		a.m02 += tx.m02
		a.m12 += tx.m12
		if a.m02 == 0 && a.m12 == 0 {
			if mystate == applyTranslate {
				a.setState(applyIdentity, some(TypeIdentity))
			} else {
				a.dropTranslate(mystate)
			}
		}
		return

	case hiScale | applyTranslate,
		hiScale | applyIdentity,
		hiScale | applyShear | applyScale | applyTranslate,
		hiScale | applyShear | applyScale,
		hiScale | applyShear | applyTranslate,
		hiScale | applyShear,
		hiScale | applyScale | applyTranslate,
		hiScale | applyScale:
		t00, t11 := tx.m00, tx.m11
		if mystate&applyShear != 0 {
			a.m01 *= t00
			a.m10 *= t11
			if mystate&applyScale != 0 {
				a.m00 *= t00
				a.m11 *= t11
			}
		} else {
			a.m00 *= t00
			a.m11 *= t11
		}
		if mystate&applyTranslate != 0 {
			a.m02 *= t00
			a.m12 *= t11
		}
		a.updateState()
		return

	case hiShear | applyShear | applyTranslate,
		hiShear | applyShear,
		hiShear | applyTranslate,
		hiShear | applyIdentity,
		hiShear | applyScale | applyTranslate,
		hiShear | applyScale,
		hiShear | applyShear | applyScale | applyTranslate,
		hiShear | applyShear | applyScale:
		t01, t10 := tx.m01, tx.m10
		m0 := a.m00
		a.m00 = a.m10 * t01
		a.m10 = m0 * t10
		m0 = a.m01
		a.m01 = a.m11 * t01
		a.m11 = m0 * t10
		m0 = a.m02
		a.m02 = a.m12 * t01
		a.m12 = m0 * t10
		a.updateState()
		return
	}

	// t has more than one attribute; only the receiver's state is worth
	// specializing on.
	t00, t01, t02 := tx.m00, tx.m01, tx.m02
	t10, t11, t12 := tx.m10, tx.m11, tx.m12
	if mystate&applyTranslate != 0 {
		m0, m1 := a.m02, a.m12
		t02 += m0*t00 + m1*t01
		t12 += m0*t10 + m1*t11
	}
	switch mystate &^ applyTranslate {
	case applyShear | applyScale:
		a.m02 = t02
		a.m12 = t12
		m0, m1 := a.m00, a.m10
		a.m00 = m0*t00 + m1*t01
		a.m10 = m0*t10 + m1*t11
		m0, m1 = a.m01, a.m11
		a.m01 = m0*t00 + m1*t01
		a.m11 = m0*t10 + m1*t11

	case applyShear:
		a.m02 = t02
		a.m12 = t12
		m0 := a.m10
		a.m00 = m0 * t01
		a.m10 = m0 * t11
		m0 = a.m01
		a.m01 = m0 * t00
		a.m11 = m0 * t10

	case applyScale:
		a.m02 = t02
		a.m12 = t12
		m0 := a.m00
		a.m00 = m0 * t00
		a.m10 = m0 * t10
		m0 = a.m11
		a.m01 = m0 * t01
		a.m11 = m0 * t11

	case applyIdentity:
		a.m02 = t02
		a.m12 = t12
		a.m00 = t00
		a.m10 = t10
		a.m01 = t01
		a.m11 = t11

	default:
		stateError(mystate)
	}
	a.updateState()
}

// CreateInverse returns the inverse of the transform. It returns
// [ErrNonInvertible] if the determinant's magnitude is too small to invert,
// or, for transforms without a full 2×2 linear part, if a required
// coefficient is zero.
func (a *Affine) CreateInverse() (Affine, error) {
	switch s := a.sparsity(); s {
	case applyShear | applyScale | applyTranslate, applyShear | applyScale:
		det := a.m00*a.m11 - a.m01*a.m10
		if math.Abs(det) <= math.SmallestNonzeroFloat64 {
			return Affine{}, fmt.Errorf("%w: determinant is %g", ErrNonInvertible, det)
		}
		var m02, m12 float64
		if s&applyTranslate != 0 {
			m02 = (a.m01*a.m12 - a.m11*a.m02) / det
			m12 = (a.m10*a.m02 - a.m00*a.m12) / det
		}
		return NewAffine(
			a.m11/det, -a.m10/det,
			-a.m01/det, a.m00/det,
			m02, m12,
		), nil
	case applyShear | applyTranslate, applyShear:
		if a.m01 == 0 || a.m10 == 0 {
			return Affine{}, fmt.Errorf("%w: zero shear coefficient", ErrNonInvertible)
		}
		var m02, m12 float64
		if s&applyTranslate != 0 {
			m02 = -a.m12 / a.m10
			m12 = -a.m02 / a.m01
		}
		return NewAffine(0, 1/a.m01, 1/a.m10, 0, m02, m12), nil
	case applyScale | applyTranslate, applyScale:
		if a.m00 == 0 || a.m11 == 0 {
			return Affine{}, fmt.Errorf("%w: zero scale coefficient", ErrNonInvertible)
		}
		var m02, m12 float64
		if s&applyTranslate != 0 {
			m02 = -a.m02 / a.m00
			m12 = -a.m12 / a.m11
		}
		return NewAffine(1/a.m00, 0, 0, 1/a.m11, m02, m12), nil
	case applyTranslate:
		return NewTranslate(-a.m02, -a.m12), nil
	case applyIdentity:
		return Identity(), nil
	default:
		stateError(s)
		panic("unreachable")
	}
}

// Invert replaces the transform with its inverse. If the transform isn't
// invertible, it returns [ErrNonInvertible] and leaves the transform
// unchanged.
func (a *Affine) Invert() error {
	inv, err := a.CreateInverse()
	if err != nil {
		return err
	}
	*a = inv
	return nil
}
