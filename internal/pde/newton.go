package pde

import "math"

// Outcome reports how one Newton solve ended. A non-converged outcome
// is not an error by itself: the iterate is still handed back and the
// caller decides whether to keep going.
type Outcome struct {
	Converged  bool
	Iterations int
	Residual   float64 // Euclidean norm of F at exit
}

// Newton advances one time level of the discretized equation by
// Newton-Raphson iteration over the interior nodes. Scratch buffers are
// reused across solves, so a Newton value is not safe for concurrent
// use; time levels are strictly sequential anyway.
type Newton struct {
	stencil *Stencil
	tol     float64
	maxIter int

	f, delta []float64
	jac      *Tridiag
}

func NewNewton(stencil *Stencil, tol float64, maxIter int) *Newton {
	n := stencil.Interior()
	return &Newton{
		stencil: stencil,
		tol:     tol,
		maxIter: maxIter,
		f:       make([]float64, n),
		delta:   make([]float64, n),
		jac:     NewTridiag(n),
	}
}

// MirrorBounds re-imposes the zero-flux boundaries by reflecting the
// node one step in from each end: c[0] = c[2] and c[M] = c[M-2]. This
// is a plain assignment, so the equality holds bit for bit.
func MirrorBounds(c []float64) {
	c[0] = c[2]
	c[len(c)-1] = c[len(c)-3]
}

// Solve refines c in place into the new time level, with b fixed at the
// previous level. Each iteration evaluates the residual, stops on
// tolerance or on the iteration cap, otherwise corrects the interior by
// the solution of J d = -F and re-mirrors the boundaries. A singular
// Jacobian aborts with the error; the outcome still reports where the
// iteration stood.
func (n *Newton) Solve(c, b []float64) (Outcome, error) {
	for iter := 0; ; iter++ {
		n.stencil.Residual(n.f, c, b)
		res := norm(n.f)
		if res <= n.tol {
			return Outcome{Converged: true, Iterations: iter, Residual: res}, nil
		}
		if iter >= n.maxIter {
			return Outcome{Iterations: iter, Residual: res}, nil
		}

		n.stencil.Jacobian(n.jac, c)
		for i := range n.f {
			n.f[i] = -n.f[i]
		}
		if err := n.jac.Solve(n.delta, n.f); err != nil {
			return Outcome{Iterations: iter, Residual: res}, err
		}
		for i, d := range n.delta {
			c[i+1] += d
		}
		MirrorBounds(c)
	}
}

func norm(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
