package sim

import (
	"fmt"
	"math"
)

// Failure records one time level whose Newton iteration ran out of
// iterations. The unconverged column is still stored; the failure makes
// it visible instead of silently accepted.
type Failure struct {
	Level      int     `json:"level"`
	Time       float64 `json:"time"`
	Residual   float64 `json:"residual"`
	Iterations int     `json:"iterations"`
}

func (f Failure) Error() string {
	return fmt.Sprintf("time level %d (t=%.4f): no convergence after %d iterations, residual %.3e",
		f.Level, f.Time, f.Iterations, f.Residual)
}

// Result is the space-time solution. Columns[n] is the concentration
// over all nodes at time level n; column 0 is the seed profile and
// column n is produced from column n-1 only. Levels beyond LevelsRun
// are nil when a run was cancelled or aborted.
type Result struct {
	X        []float64   `json:"x"`
	Times    []float64   `json:"times"`
	Columns  [][]float64 `json:"columns"`
	Failures []Failure   `json:"failures,omitempty"`

	LevelsRun int `json:"levels_run"`
}

// Column returns the concentration at time level n.
func (r *Result) Column(n int) ([]float64, error) {
	if n < 0 || n >= len(r.Columns) || r.Columns[n] == nil {
		return nil, fmt.Errorf("sim: no column at time level %d", n)
	}
	return r.Columns[n], nil
}

// At returns the column nearest to physical time t.
func (r *Result) At(t float64) ([]float64, error) {
	if len(r.Times) < 2 {
		return nil, fmt.Errorf("sim: result holds no time axis")
	}
	dt := r.Times[1] - r.Times[0]
	n := int(math.Round((t - r.Times[0]) / dt))
	if n < 0 || n >= len(r.Columns) {
		return nil, fmt.Errorf("sim: time %g outside the computed range", t)
	}
	return r.Column(n)
}

// FailedAt reports whether level n is flagged as unconverged.
func (r *Result) FailedAt(n int) bool {
	for _, f := range r.Failures {
		if f.Level == n {
			return true
		}
	}
	return false
}
