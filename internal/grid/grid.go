package grid

import (
	"fmt"
	"math"
)

// SpacingError reports a step size that does not evenly divide its
// interval, which would silently shift the last node off the endpoint.
type SpacingError struct {
	Lo, Hi, Step float64
}

func (e *SpacingError) Error() string {
	return fmt.Sprintf("grid: step %g does not evenly divide [%g, %g]", e.Step, e.Lo, e.Hi)
}

// Steps returns the number of intervals of width step spanning [lo, hi].
// The count must come out integral within floating tolerance.
func Steps(lo, hi, step float64) (int, error) {
	if step <= 0 || hi <= lo {
		return 0, &SpacingError{Lo: lo, Hi: hi, Step: step}
	}
	n := (hi - lo) / step
	r := math.Round(n)
	if r < 1 || math.Abs(n-r) > 1e-9*math.Max(1, n) {
		return 0, &SpacingError{Lo: lo, Hi: hi, Step: step}
	}
	return int(r), nil
}

// Axis builds n+1 uniformly spaced sample points over [lo, hi], with n
// determined by step. Both endpoints are included exactly.
func Axis(lo, hi, step float64) ([]float64, error) {
	n, err := Steps(lo, hi, step)
	if err != nil {
		return nil, err
	}
	pts := make([]float64, n+1)
	h := (hi - lo) / float64(n)
	for i := range pts {
		pts[i] = lo + float64(i)*h
	}
	pts[n] = hi
	return pts, nil
}
