// Package pde holds the discretization of the reaction-diffusion
// equation: the semi-implicit residual stencil, its analytic
// tridiagonal Jacobian, a Thomas-algorithm linear solve, and the
// Newton iteration that advances one time level.
package pde

import "fmt"

// Tridiag is a tridiagonal matrix stored by diagonals. Row i holds
// Sub[i] in column i-1, Diag[i] in column i and Super[i] in column i+1;
// Sub[0] and Super[n-1] are ignored.
type Tridiag struct {
	Sub, Diag, Super []float64

	cp, dp []float64 // Thomas sweep scratch
}

func NewTridiag(n int) *Tridiag {
	return &Tridiag{
		Sub:   make([]float64, n),
		Diag:  make([]float64, n),
		Super: make([]float64, n),
		cp:    make([]float64, n),
		dp:    make([]float64, n),
	}
}

// SingularError reports a zero pivot during forward elimination, i.e. a
// system the direct solve cannot complete.
type SingularError struct {
	Row int
}

func (e *SingularError) Error() string {
	return fmt.Sprintf("pde: singular system, zero pivot at row %d", e.Row)
}

// Solve runs the Thomas algorithm on A x = rhs, writing the solution
// into x. A is not modified, so the same matrix can be reused. x and
// rhs may not alias.
func (m *Tridiag) Solve(x, rhs []float64) error {
	n := len(m.Diag)
	if m.Diag[0] == 0 {
		return &SingularError{Row: 0}
	}
	if n == 1 {
		x[0] = rhs[0] / m.Diag[0]
		return nil
	}

	m.cp[0] = m.Super[0] / m.Diag[0]
	m.dp[0] = rhs[0] / m.Diag[0]
	for i := 1; i < n; i++ {
		denom := m.Diag[i] - m.Sub[i]*m.cp[i-1]
		if denom == 0 {
			return &SingularError{Row: i}
		}
		if i < n-1 {
			m.cp[i] = m.Super[i] / denom
		}
		m.dp[i] = (rhs[i] - m.Sub[i]*m.dp[i-1]) / denom
	}

	x[n-1] = m.dp[n-1]
	for i := n - 2; i >= 0; i-- {
		x[i] = m.dp[i] - m.cp[i]*x[i+1]
	}
	return nil
}
