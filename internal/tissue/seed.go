package tissue

import "math"

// Seed evaluates the normalized Gaussian seed profile
//
//	g(x) = exp(-((x-x0)/eps)^2 / 2) / (eps sqrt(2 pi))
//
// at every node of x. With a width much smaller than the node spacing
// this approximates a point source at x0.
func Seed(x []float64, x0, eps float64) []float64 {
	norm := 1 / (eps * math.Sqrt(2*math.Pi))
	c := make([]float64, len(x))
	for i, xi := range x {
		z := (xi - x0) / eps
		c[i] = norm * math.Exp(-0.5*z*z)
	}
	return c
}
