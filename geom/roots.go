package geom

import "math"

// solveLinear finds the root of c0 + c1·x = 0. A vanishing c1 yields no root.
func solveLinear(c0, c1 float64) []float64 {
	root := -c0 / c1
	if math.IsInf(root, 0) || math.IsNaN(root) {
		return nil
	}
	return []float64{root}
}

// SolveQuadratic finds the real roots of c0 + c1·x + c2·x² = 0, in ascending
// order. Degenerate quadratics fall back to the linear case; an identically
// vanishing polynomial has no isolated roots and yields none.
func SolveQuadratic(c0, c1, c2 float64) []float64 {
	sc0, sc1 := c0/c2, c1/c2
	if !isFinite(sc0) || !isFinite(sc1) {
		return solveLinear(c0, c1)
	}
	arg := sc1*sc1 - 4*sc0
	var root1 float64
	switch {
	case !isFinite(arg):
		root1 = -sc1
	case arg < 0:
		return nil
	case arg == 0:
		return []float64{-0.5 * sc1}
	default:
		// numerically stable variant, avoids cancellation
		root1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	}
	root2 := sc0 / root1
	if !isFinite(root2) {
		return []float64{root1}
	}
	if root2 > root1 {
		return []float64{root1, root2}
	}
	return []float64{root2, root1}
}

// SolveCubic finds the real roots of c0 + c1·x + c2·x² + c3·x³ = 0, using
// Blinn's method ("How to solve a cubic equation", IEEE CG&A 2006/2007).
// Roots are not sorted and may contain duplicates.
func SolveCubic(c0, c1, c2, c3 float64) []float64 {
	const oneThird = 1.0 / 3.0
	recip := 1 / c3
	sc2 := c2 * (oneThird * recip)
	sc1 := c1 * (oneThird * recip)
	sc0 := c0 * recip
	if !isFinite(sc0) || !isFinite(sc1) || !isFinite(sc2) {
		return SolveQuadratic(c0, c1, c2)
	}
	c0, c1, c2 = sc0, sc1, sc2
	d0 := math.FMA(-c2, c2, c1)
	d1 := math.FMA(-c1, c2, c0)
	d2 := c2*c0 - c1*c1
	d := 4*d0*d2 - d1*d1
	de := math.FMA(-2*c2, d0, d1)
	switch {
	case d < 0:
		sq := math.Sqrt(-0.25 * d)
		r := -0.5 * de
		t1 := math.Cbrt(r+sq) + math.Cbrt(r-sq)
		return []float64{t1 - c2}
	case d == 0:
		t1 := math.Copysign(math.Sqrt(-d0), de)
		return []float64{t1 - c2, -2*t1 - c2}
	}
	th := math.Atan2(math.Sqrt(d), -de) * oneThird
	thSin, thCos := math.Sincos(th)
	ss3 := thSin * math.Sqrt(3)
	r0 := thCos
	r1 := 0.5 * (-thCos + ss3)
	r2 := 0.5 * (-thCos - ss3)
	t := 2 * math.Sqrt(-d0)
	return []float64{
		math.FMA(t, r0, -c2),
		math.FMA(t, r1, -c2),
		math.FMA(t, r2, -c2),
	}
}

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
