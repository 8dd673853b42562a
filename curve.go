package geom

import (
	"fmt"
	"math"
	"slices"
)

// MaxExtrema is the maximum number of extrema that can be reported by
// [Extremer].
//
// This is 4 to support cubic Béziers, which have at most two extrema per
// axis.
const MaxExtrema = 4

// Extremer describes parametrized curves that report their extrema.
type Extremer interface {
	// Extrema computes the extrema of the curve.
	//
	// Only extrema within the interior of the curve count.
	// The extrema are reported in increasing parameter order.
	Extrema() ([MaxExtrema]float64, int)
}

// ExtremaRanges returns parameter ranges, each of which is monotonic within the
// range.
func ExtremaRanges(e Extremer) ([MaxExtrema + 1][2]float64, int) {
	var ret [MaxExtrema + 1][2]float64
	var retN int
	var t0 float64

	ex, n := e.Extrema()
	for _, t := range ex[:n] {
		ret[retN] = [2]float64{t0, t}
		retN++
		t0 = t
	}
	ret[retN] = [2]float64{t0, 1}
	retN++
	return ret, retN
}

type option[T any] struct {
	isSet bool
	value T
}

func some[T any](v T) option[T] {
	return option[T]{isSet: true, value: v}
}

func (opt *option[T]) set(v T) {
	opt.isSet = true
	opt.value = v
}

func (opt *option[T]) clear() {
	opt.isSet = false
	opt.value = *new(T)
}

// SolveQuadratic finds real roots of a quadratic equation.
//
// It returns values of t for which c0 + c1 t + c2 t² = 0, in ascending order.
// If c2 is zero the equation is solved as a linear one. If both c2 and c1 are
// zero, the equation is constant (either satisfied by every t or by none), and
// the returned count is -1.
//
// A zero discriminant yields the double root twice.
func SolveQuadratic(c0, c1, c2 float64) ([2]float64, int) {
	if c2 == 0 {
		if c1 == 0 {
			return [2]float64{}, -1
		}
		return [2]float64{-c0 / c1}, 1
	}
	d := c1*c1 - 4*c2*c0
	if d < 0 {
		return [2]float64{}, 0
	}
	d = math.Sqrt(d)
	// Choose the sign so that c1 and d don't cancel.
	if c1 < 0 {
		d = -d
	}
	q := (c1 + d) / -2
	if q == 0 {
		return [2]float64{q / c2}, 1
	}
	r0, r1 := q/c2, c0/q
	if r0 > r1 {
		r0, r1 = r1, r0
	}
	return [2]float64{r0, r1}, 2
}

// SolveCubic finds real roots of a cubic equation.
//
// It returns values of t for which c0 + c1 t + c2 t² + c3 t³ = 0, in
// ascending order, without duplicates. If c3 is zero, the result is that of
// [SolveQuadratic], including its -1 count for constant equations.
//
// The closed-form solution is unreliable close to repeated roots, so the
// roots are refined using the monotonic intervals between the critical points
// of the polynomial.
func SolveCubic(c0, c1, c2, c3 float64) ([3]float64, int) {
	if c3 == 0 {
		roots, n := SolveQuadratic(c0, c1, c2)
		if n == 2 && roots[0] == roots[1] {
			n = 1
		}
		return [3]float64{roots[0], roots[1]}, n
	}
	eqn := [4]float64{c0, c1, c2, c3}

	// Normal form: t³ + a t² + b t + c = 0
	a := c2 / c3
	b := c1 / c3
	c := c0 / c3

	// Substituting t = s - a/3 eliminates the quadratic term, leaving the
	// depressed cubic s³ + p s + q = 0.
	sqA := a * a
	p := 1.0 / 3 * (-1.0/3*sqA + b)
	q := 1.0 / 2 * (2.0/27*a*sqA - 1.0/3*a*b + c)

	cbP := p * p * p
	disc := q*q + cbP
	sub := 1.0 / 3 * a

	var res [3]float64
	var n int
	if disc < 0 {
		// Three real roots.
		ratio := -q / math.Sqrt(-cbP)
		ratio = max(-1, min(1, ratio))
		phi := 1.0 / 3 * math.Acos(ratio)
		t := 2 * math.Sqrt(-p)
		res[0] = t*math.Cos(phi) - sub
		res[1] = -t*math.Cos(phi+math.Pi/3) - sub
		res[2] = -t*math.Cos(phi-math.Pi/3) - sub
		n = 3
	} else {
		// fixRoots relies on res[0] being the root computed here, which is the
		// one we'd compute even if there were no second root.
		sqrtD := math.Sqrt(disc)
		u := math.Cbrt(sqrtD - q)
		v := -math.Cbrt(sqrtD + q)
		uv := u + v
		res[0] = uv - sub
		n = 1

		err := 1200000000 * ulp(math.Abs(uv)+math.Abs(sub))
		if iszero(disc, err) || within(u, v, err) {
			res[1] = -(uv / 2) - sub
			n = 2
		}
	}

	if n > 1 {
		n = fixRoots(&eqn, res[:], n)
	}
	if n > 2 && (res[2] == res[1] || res[2] == res[0]) {
		n--
	}
	if n > 1 && res[1] == res[0] {
		n--
		res[1] = res[n]
	}
	slices.Sort(res[:n])
	n = mergeDoubleRoots(&eqn, res[:], n)
	return res, n
}

// SolveQuadraticEqn is like [SolveQuadratic] but reads the coefficients from
// eqn, in ascending order of degree, and stores the roots in res. eqn and res
// may share storage.
//
// eqn must hold at least 3 and res at least 2 elements.
func SolveQuadraticEqn(eqn, res []float64) (int, error) {
	if len(eqn) < 3 {
		return 0, fmt.Errorf("%w: quadratic needs 3 coefficients, got %d", ErrInvalidArgument, len(eqn))
	}
	if len(res) < 2 {
		return 0, fmt.Errorf("%w: quadratic needs room for 2 roots, got %d", ErrInvalidArgument, len(res))
	}
	roots, n := SolveQuadratic(eqn[0], eqn[1], eqn[2])
	copy(res, roots[:max(n, 0)])
	return n, nil
}

// SolveCubicEqn is like [SolveCubic] but reads the coefficients from eqn, in
// ascending order of degree, and stores the roots in res. eqn and res may
// share storage.
//
// eqn must hold at least 4 and res at least 3 elements.
func SolveCubicEqn(eqn, res []float64) (int, error) {
	if len(eqn) < 4 {
		return 0, fmt.Errorf("%w: cubic needs 4 coefficients, got %d", ErrInvalidArgument, len(eqn))
	}
	if len(res) < 3 {
		return 0, fmt.Errorf("%w: cubic needs room for 3 roots, got %d", ErrInvalidArgument, len(res))
	}
	roots, n := SolveCubic(eqn[0], eqn[1], eqn[2], eqn[3])
	copy(res, roots[:max(n, 0)])
	return n, nil
}

// fixRoots improves the accuracy of the n roots in res of the proper cubic
// eqn, and drops roots that can't exist given the shape of the curve. It
// returns the new number of roots.
//
// It never finds roots that the closed-form step missed, so it may only be
// used with a solver that never underestimates the number of roots. When n ==
// 2, res[0] must be the more accurate of the two roots; SolveCubic guarantees
// this and nothing else calls fixRoots.
func fixRoots(eqn *[4]float64, res []float64, n int) int {
	crit, critN := SolveQuadratic(eqn[1], 2*eqn[2], 3*eqn[3])
	if critN == 2 && crit[0] == crit[1] {
		critN--
	}

	// A proper cubic goes from -inf to +inf or vice versa. With two critical
	// points it is shaped like a sideways S and has 1 to 3 roots; with fewer
	// it is monotonic and has exactly one.
	switch {
	case n == 3:
		xe := rootUpperBound(eqn)
		x0 := -xe
		slices.Sort(res[:3])
		switch critN {
		case 2:
			res[0] = refineRootWithHint(eqn, x0, crit[0], res[0])
			res[1] = refineRootWithHint(eqn, crit[0], crit[1], res[1])
			res[2] = refineRootWithHint(eqn, crit[1], xe, res[2])
			return 3
		case 1:
			// Being here means the closed form went wrong near a flat part of
			// the curve, where Newton's method isn't trustworthy either.
			Logger().Debug("cubic solver bisecting", "roots", 3, "critical", 1)
			fxe := eqn[3]
			fx0 := -fxe
			x1 := crit[0]
			fx1 := evalPoly(eqn, x1)
			if oppositeSigns(fx0, fx1) {
				res[0] = bisectRootWithHint(eqn, x0, x1, res[0])
			} else if oppositeSigns(fx1, fxe) {
				res[0] = bisectRootWithHint(eqn, x1, xe, res[2])
			} else {
				res[0] = x1
			}
		default:
			Logger().Debug("cubic solver bisecting", "roots", 3, "critical", 0)
			res[0] = bisectRootWithHint(eqn, x0, xe, res[1])
		}
	case n == 2 && critN == 2:
		// Two roots means the curve touches the axis at a critical point. That
		// can't be the good root, so it's the critical point farthest from it.
		good, bad := res[0], res[1]
		x := crit[1]
		if math.Abs(crit[0]-good) > math.Abs(crit[1]-good) {
			x = crit[0]
		}
		fx := evalPoly(eqn, x)
		if iszero(fx, 10000000*ulp(x)) {
			if math.Abs(evalPoly(eqn, bad)) < math.Abs(fx) {
				res[1] = bad
			} else {
				res[1] = x
			}
			return 2
		}
	}
	return 1
}

// mergeDoubleRoots replaces pairs of sorted roots that straddle a critical
// point at which the polynomial vanishes with that critical point. Newton
// steps converge slowly near double roots and can leave two distinct
// estimates of the same root. Roots clustered around a near-triple root are
// merged first; see [mergeRootCluster].
func mergeDoubleRoots(eqn *[4]float64, res []float64, n int) int {
	if n < 2 {
		return n
	}
	n = mergeRootCluster(eqn, res, n)
	if n < 2 {
		return n
	}
	crit, critN := SolveQuadratic(eqn[1], 2*eqn[2], 3*eqn[3])
	for i := 0; i < max(critN, 0); i++ {
		x := crit[i]
		for j := 0; j+1 < n; j++ {
			lo, hi := res[j], res[j+1]
			scale := max(1, math.Abs(x))
			if hi-lo > 1e-6*scale {
				continue
			}
			if x < lo-1e-6*scale || x > hi+1e-6*scale {
				continue
			}
			if math.Abs(evalPoly(eqn, x)) > 1e-10*polyMagnitude(eqn, x) {
				continue
			}
			res[j] = x
			copy(res[j+1:n], res[j+2:n])
			n--
			break
		}
	}
	return n
}

// mergeRootCluster handles a near-triple root, where both critical points
// nearly coincide with the inflection point and the polynomial vanishes there
// up to rounding. The closed form scatters such roots over a distance of about
// the cube root of the rounding error, far more than their true separation,
// and the critical points are too close to bracket them. All sorted roots
// within that distance of the inflection point are replaced by it.
func mergeRootCluster(eqn *[4]float64, res []float64, n int) int {
	const eps = 0x1p-52
	c3 := math.Abs(eqn[3])
	xi := -eqn[2] / (3 * eqn[3])
	mag := polyMagnitude(eqn, xi)
	rho := math.Cbrt(eps * mag / c3)
	if math.Abs(evalPoly(eqn, xi)) > 16*eps*mag {
		return n
	}
	deriv := [4]float64{eqn[1], 2 * eqn[2], 3 * eqn[3]}
	if math.Abs(evalPoly(&deriv, xi)) > 3*c3*rho*rho {
		return n
	}
	i := 0
	for i < n && res[i] < xi-rho {
		i++
	}
	j := i
	for j < n && res[j] <= xi+rho {
		j++
	}
	if j-i < 2 {
		return n
	}
	res[i] = xi
	copy(res[i+1:n], res[j:n])
	return n - (j - i - 1)
}

// refineRootWithHint polishes t with a few Newton steps, keeping the result
// only if it stays within [lo, hi] and close to t.
func refineRootWithHint(eqn *[4]float64, lo, hi, t float64) float64 {
	if !inInterval(t, lo, hi) {
		return t
	}
	deriv := [4]float64{eqn[1], 2 * eqn[2], 3 * eqn[3]}
	orig := t
	for range 3 {
		slope := evalPoly(&deriv, t)
		y := evalPoly(eqn, t)
		next := t - y/slope
		if slope == 0 || y == 0 || t == next {
			break
		}
		t = next
	}
	if within(t, orig, 1000*ulp(orig)) && inInterval(t, lo, hi) {
		return t
	}
	return orig
}

func bisectRootWithHint(eqn *[4]float64, x0, xe, hint float64) float64 {
	delta1 := min(math.Abs(hint-x0)/64, 0.0625)
	delta2 := min(math.Abs(hint-xe)/64, 0.0625)
	x02 := hint - delta1
	xe2 := hint + delta2
	fx02 := evalPoly(eqn, x02)
	fxe2 := evalPoly(eqn, xe2)
	for oppositeSigns(fx02, fxe2) {
		if x02 >= xe2 {
			return x02
		}
		x0 = x02
		xe = xe2
		delta1 /= 64
		delta2 /= 64
		x02 = hint - delta1
		xe2 = hint + delta2
		fx02 = evalPoly(eqn, x02)
		fxe2 = evalPoly(eqn, xe2)
	}
	if fx02 == 0 {
		return x02
	}
	if fxe2 == 0 {
		return xe2
	}
	return bisectRoot(eqn, x0, xe)
}

func bisectRoot(eqn *[4]float64, x0, xe float64) float64 {
	fx0 := evalPoly(eqn, x0)
	m := x0 + (xe-x0)/2
	for m != x0 && m != xe {
		fm := evalPoly(eqn, m)
		if fm == 0 {
			return m
		}
		if oppositeSigns(fx0, fm) {
			xe = m
		} else {
			fx0 = fm
			x0 = m
		}
		m = x0 + (xe-x0)/2
	}
	return m
}

// rootUpperBound returns M+1 where M bounds the magnitude of every root of
// the cubic eqn.
func rootUpperBound(eqn *[4]float64) float64 {
	m := 1 + max(math.Abs(eqn[2]), math.Abs(eqn[1]), math.Abs(eqn[0]))/math.Abs(eqn[3])
	m += ulp(m) + 1
	return m
}

// evalPoly evaluates the polynomial with ascending coefficients eqn at t.
func evalPoly(eqn *[4]float64, t float64) float64 {
	return ((eqn[3]*t+eqn[2])*t+eqn[1])*t + eqn[0]
}

// polyMagnitude returns the sum of the magnitudes of the terms of eqn at t,
// which bounds the rounding error of evalPoly.
func polyMagnitude(eqn *[4]float64, t float64) float64 {
	at := math.Abs(t)
	return math.Abs(eqn[3])*at*at*at + math.Abs(eqn[2])*at*at + math.Abs(eqn[1])*at + math.Abs(eqn[0])
}

func inInterval(t, lo, hi float64) bool {
	return lo <= t && t <= hi
}

func within(x, y, err float64) bool {
	d := y - x
	return d <= err && d >= -err
}

func iszero(x, err float64) bool {
	return within(x, 0, err)
}

func oppositeSigns(x1, x2 float64) bool {
	return (x1 < 0 && x2 > 0) || (x1 > 0 && x2 < 0)
}

// ulp returns the distance from |x| to the next larger float64.
func ulp(x float64) float64 {
	x = math.Abs(x)
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}
	return math.Nextafter(x, math.Inf(1)) - x
}

// boundingBox computes the tight bounding box of a curve from its end points
// and extrema.
func boundingBox(c interface {
	Extremer
	Eval(t float64) Point
}) Rect {
	bbox := NewRectFromPoints(c.Eval(0), c.Eval(1))
	ex, n := c.Extrema()
	for _, t := range ex[:n] {
		bbox = bbox.UnionPoint(c.Eval(t))
	}
	return bbox
}
