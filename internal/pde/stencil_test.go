package pde

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformField(m int, d float64) []float64 {
	f := make([]float64, m)
	for i := range f {
		f[i] = d
	}
	return f
}

func TestResidualStationary(t *testing.T) {
	// With rho=0 any constant profile is a stationary solution. The
	// coefficients here are exact in binary, so the cancellation is
	// exact and the residual must be zero bit for bit.
	s := NewStencil(uniformField(10, 0.25), 0.5, 0.5, 0, 62.5)

	c := make([]float64, 11)
	b := make([]float64, 11)
	for i := range c {
		c[i] = 2.0
		b[i] = 2.0
	}

	f := make([]float64, s.Interior())
	s.Residual(f, c, b)
	for i, v := range f {
		assert.Zero(t, v, "interior node %d", i+1)
	}
}

func TestResidualStationaryDefaults(t *testing.T) {
	// Same property with the default parameters, within roundoff.
	s := NewStencil(uniformField(100, 0.13), 0.5, 0.01, 0, 62.5)

	c := make([]float64, 101)
	b := make([]float64, 101)
	for i := range c {
		c[i] = 3.7
		b[i] = 3.7
	}

	f := make([]float64, s.Interior())
	s.Residual(f, c, b)
	for i, v := range f {
		assert.InDelta(t, 0, v, 1e-12, "interior node %d", i+1)
	}
}

func TestResidualHeterogeneous(t *testing.T) {
	// One interior node, hand-computed.
	d := []float64{0.2, 0.6}
	s := NewStencil(d, 0.5, 0.01, 0.012, 62.5)

	c := []float64{1, 2, 4}
	b := []float64{0, 5, 0}

	f := make([]float64, 1)
	s.Residual(f, c, b)

	want := s.Alpha*0.2*1 + s.Alpha*0.6*4 -
		(s.Alpha*(0.2+0.6)-s.Beta+1)*2 -
		s.Gamma*4 + 5
	assert.InDelta(t, want, f[0], 1e-15)
}

func TestJacobianMatchesFiniteDifference(t *testing.T) {
	d := []float64{0.13, 0.13, 0.65, 0.65, 0.65, 0.13}
	s := NewStencil(d, 0.5, 0.01, 0.012, 62.5)
	n := s.Interior()

	c := []float64{0.5, 1.2, 7.9, 3.3, 0.8, 2.1, 4.4}
	b := make([]float64, len(c))

	jac := NewTridiag(n)
	s.Jacobian(jac, c)

	h := 1e-6
	fp := make([]float64, n)
	fm := make([]float64, n)
	for j := 1; j < len(c)-1; j++ {
		cp := append([]float64(nil), c...)
		cm := append([]float64(nil), c...)
		cp[j] += h
		cm[j] -= h
		s.Residual(fp, cp, b)
		s.Residual(fm, cm, b)

		for k := 0; k < n; k++ {
			fd := (fp[k] - fm[k]) / (2 * h)
			var analytic float64
			switch j - 1 {
			case k - 1:
				analytic = jac.Sub[k]
			case k:
				analytic = jac.Diag[k]
			case k + 1:
				analytic = jac.Super[k]
			}
			assert.InDelta(t, analytic, fd, 1e-6, "dF[%d]/dc[%d]", k, j)
		}
	}
}

func TestJacobianTracksIterate(t *testing.T) {
	s := NewStencil(uniformField(4, 0.13), 0.5, 0.01, 0.012, 62.5)
	jac := NewTridiag(s.Interior())

	c1 := []float64{0, 1, 1, 1, 0}
	c2 := []float64{0, 10, 10, 10, 0}
	s.Jacobian(jac, c1)
	d1 := jac.Diag[1]
	s.Jacobian(jac, c2)
	d2 := jac.Diag[1]

	require.NotEqual(t, d1, d2)
	assert.InDelta(t, 2*s.Gamma*9, d1-d2, 1e-15)
}
