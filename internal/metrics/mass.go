// Package metrics computes summary quantities over concentration
// columns.
package metrics

// Mass integrates a column with the trapezoidal rule on a uniform
// grid with spacing dx.
func Mass(c []float64, dx float64) float64 {
	if len(c) < 2 {
		return 0
	}
	sum := (c[0] + c[len(c)-1]) / 2
	for _, v := range c[1 : len(c)-1] {
		sum += v
	}
	return sum * dx
}

// Peak returns the maximum concentration in a column and its node
// index. Ties resolve to the leftmost node.
func Peak(c []float64) (float64, int) {
	if len(c) == 0 {
		return 0, -1
	}
	max, idx := c[0], 0
	for i, v := range c[1:] {
		if v > max {
			max, idx = v, i+1
		}
	}
	return max, idx
}
