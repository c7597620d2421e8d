package pde

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTridiagSolve(t *testing.T) {
	// | 2 1 0 |       |1|         |4|
	// | 1 2 1 | x x = |2|,  rhs = |8|
	// | 0 1 2 |       |3|         |8|
	m := NewTridiag(3)
	copy(m.Diag, []float64{2, 2, 2})
	copy(m.Sub, []float64{0, 1, 1})
	copy(m.Super, []float64{1, 1, 0})

	x := make([]float64, 3)
	require.NoError(t, m.Solve(x, []float64{4, 8, 8}))
	assert.InDelta(t, 1, x[0], 1e-12)
	assert.InDelta(t, 2, x[1], 1e-12)
	assert.InDelta(t, 3, x[2], 1e-12)
}

func TestTridiagSolveSingle(t *testing.T) {
	m := NewTridiag(1)
	m.Diag[0] = 4
	x := make([]float64, 1)
	require.NoError(t, m.Solve(x, []float64{8}))
	assert.Equal(t, 2.0, x[0])
}

func TestTridiagSolveReuse(t *testing.T) {
	m := NewTridiag(2)
	copy(m.Diag, []float64{3, 3})
	copy(m.Sub, []float64{0, 1})
	copy(m.Super, []float64{1, 0})

	x := make([]float64, 2)
	require.NoError(t, m.Solve(x, []float64{4, 4}))
	first := []float64{x[0], x[1]}
	require.NoError(t, m.Solve(x, []float64{4, 4}))
	assert.Equal(t, first[0], x[0])
	assert.Equal(t, first[1], x[1])
}

func TestTridiagSolveSingular(t *testing.T) {
	var se *SingularError

	m := NewTridiag(2)
	copy(m.Diag, []float64{0, 1})
	err := m.Solve(make([]float64, 2), []float64{1, 1})
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 0, se.Row)

	// Second pivot vanishes: diag[1] - sub[1]*cp[0] = 1 - 1*1 = 0.
	m = NewTridiag(2)
	copy(m.Diag, []float64{1, 1})
	copy(m.Sub, []float64{0, 1})
	copy(m.Super, []float64{1, 0})
	err = m.Solve(make([]float64, 2), []float64{1, 1})
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 1, se.Row)
}
