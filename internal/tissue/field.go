// Package tissue models the spatial heterogeneity of the medium: a
// piecewise-constant diffusion coefficient over ordered tissue bands,
// and the Gaussian profile used to seed the tumor.
package tissue

import "fmt"

// Segment is one tissue band with a constant diffusion coefficient.
// Both interval ends are closed.
type Segment struct {
	Lo, Hi float64
	D      float64
}

// Field is an ordered table of segments. Lookups scan the table in
// order and the first segment containing the point wins, so a point
// sitting exactly on a shared cut resolves to the earlier band and the
// result never depends on map or iteration order.
type Field struct {
	segments []Segment
}

func NewField(segments ...Segment) *Field {
	return &Field{segments: segments}
}

// GrayWhiteGray builds the standard three-band field: gray matter on
// [a, cut1], white matter on [cut1, cut2], gray matter on [cut2, b].
func GrayWhiteGray(a, cut1, cut2, b, dGray, dWhite float64) *Field {
	return NewField(
		Segment{Lo: a, Hi: cut1, D: dGray},
		Segment{Lo: cut1, Hi: cut2, D: dWhite},
		Segment{Lo: cut2, Hi: b, D: dGray},
	)
}

// DomainError reports a coefficient lookup outside the field. It can
// only happen when the domain bounds and the band table disagree, so it
// is treated as fatal by callers.
type DomainError struct {
	X float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("tissue: position %g outside the diffusion field", e.X)
}

// At evaluates the diffusion coefficient at x.
func (f *Field) At(x float64) (float64, error) {
	for _, s := range f.segments {
		if x >= s.Lo && x <= s.Hi {
			return s.D, nil
		}
	}
	return 0, &DomainError{X: x}
}

// Interfaces evaluates the coefficient at the midpoint of every
// adjacent node pair of x, one value per interface. The flux through
// interface i of the discretized diffusion operator uses these values.
func (f *Field) Interfaces(x []float64) ([]float64, error) {
	d := make([]float64, len(x)-1)
	for i := range d {
		v, err := f.At((x[i] + x[i+1]) / 2)
		if err != nil {
			return nil, err
		}
		d[i] = v
	}
	return d, nil
}
