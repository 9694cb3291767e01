// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate evaluates the Catmull-Rom spline through y0..y3 at x,
// where x in [0,1] runs from y1 to y2.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a := 0.5 * (3*(y1-y2) + y3 - y0)
	b := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	c := 0.5 * (y2 - y0)

	return ((a*x+b)*x+c)*x + y1
}

// ParabolicPeak returns the offset in [-0.5, 0.5] of the vertex of the
// parabola through (-1, l), (0, c) and (1, r). Flat input gives 0.
func ParabolicPeak(l, c, r float64) float64 {
	d := l - 2*c + r
	if d == 0 {
		return 0
	}
	return max(-0.5, min(0.5, 0.5*(l-r)/d))
}
