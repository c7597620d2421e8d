package pde

// Stencil holds the coefficients of the semi-implicit discretization.
// For time step dt, node spacing dx, growth rate rho and carrying
// capacity cmax:
//
//	alpha = dt / (2 dx^2)
//	beta  = dt rho / 2
//	gamma = dt rho / (2 cmax)
//
// D[i] is the diffusion coefficient at the interface between nodes i
// and i+1, so interior node i sees D[i-1] on its left and D[i] on its
// right.
type Stencil struct {
	D                  []float64
	Alpha, Beta, Gamma float64
}

func NewStencil(d []float64, dx, dt, rho, cmax float64) *Stencil {
	return &Stencil{
		D:     d,
		Alpha: dt / (2 * dx * dx),
		Beta:  dt * rho / 2,
		Gamma: dt * rho / (2 * cmax),
	}
}

// Interior returns the number of interior nodes, M-1.
func (s *Stencil) Interior() int {
	return len(s.D) - 1
}

// Residual writes F(c) into f, one entry per interior node in node
// order. c is the candidate for the new time level, b the previous
// level; the quadratic term makes F nonlinear in c.
func (s *Stencil) Residual(f, c, b []float64) {
	for i := 1; i < len(c)-1; i++ {
		dl, dr := s.D[i-1], s.D[i]
		f[i-1] = s.Alpha*dl*c[i-1] + s.Alpha*dr*c[i+1] -
			(s.Alpha*(dl+dr)-s.Beta+1)*c[i] -
			s.Gamma*c[i]*c[i] + b[i]
	}
}

// Jacobian fills m with dF/dc at the iterate c. The off-diagonals are
// constant in c; the diagonal carries the -2 gamma c[i] term and must
// be refreshed every Newton iteration.
func (s *Stencil) Jacobian(m *Tridiag, c []float64) {
	for i := 1; i < len(c)-1; i++ {
		dl, dr := s.D[i-1], s.D[i]
		k := i - 1
		m.Sub[k] = s.Alpha * dl
		m.Diag[k] = -(s.Alpha*(dl+dr) - s.Beta + 1) - 2*s.Gamma*c[i]
		m.Super[k] = s.Alpha * dr
	}
}
