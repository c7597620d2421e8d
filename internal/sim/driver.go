// Package sim drives the solver through all time levels and owns the
// space-time solution array.
package sim

import (
	"context"
	"fmt"

	"github.com/glioma-lab/gliosim/internal/config"
	"github.com/glioma-lab/gliosim/internal/grid"
	"github.com/glioma-lab/gliosim/internal/pde"
	"github.com/glioma-lab/gliosim/internal/tissue"
)

// Driver advances the solution one time level at a time. Levels are
// strictly sequential: column n is solved against column n-1, so there
// is no parallelism across time.
type Driver struct {
	cfg    *config.Config
	newton *pde.Newton
	seed   []float64
	result *Result
	level  int
}

// NewDriver validates cfg, builds the axes, the tissue field, the seed
// profile and the Newton solver, and allocates the solution array with
// the seed in column 0.
func NewDriver(cfg *config.Config) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	x, err := grid.Axis(cfg.A, cfg.B, cfg.Dx)
	if err != nil {
		return nil, err
	}
	times, err := grid.Axis(cfg.Ti, cfg.Tf, cfg.Dt)
	if err != nil {
		return nil, err
	}

	field := tissue.GrayWhiteGray(cfg.A, cfg.GrayWhite, cfg.WhiteGray, cfg.B, cfg.DGray, cfg.DWhite)
	d, err := field.Interfaces(x)
	if err != nil {
		return nil, err
	}

	stencil := pde.NewStencil(d, cfg.Dx, cfg.Dt, cfg.Rho, cfg.CMax)
	newton := pde.NewNewton(stencil, cfg.Tolerance, cfg.MaxIterations)

	seed := tissue.Seed(x, cfg.X0, cfg.Epsilon)
	pde.MirrorBounds(seed)

	columns := make([][]float64, len(times))
	columns[0] = clone(seed)

	return &Driver{
		cfg:    cfg,
		newton: newton,
		seed:   seed,
		result: &Result{X: x, Times: times, Columns: columns},
	}, nil
}

// Levels returns P, the number of time levels to compute.
func (d *Driver) Levels() int { return len(d.result.Times) - 1 }

// Level returns the last computed time level.
func (d *Driver) Level() int { return d.level }

func (d *Driver) Done() bool { return d.level >= d.Levels() }

// Result exposes the solution computed so far. Columns past Level()
// are nil until their level has run.
func (d *Driver) Result() *Result { return d.result }

// Step computes the next time level. The Newton iterate starts from
// the t=0 seed profile (or, in warm-start mode, the previous level) and
// is solved against column n-1. Converged and Failed outcomes both
// store their column, with Failed levels recorded in Result.Failures.
// A singular Jacobian aborts mid-iteration: that iterate is not a time
// level, so the column stays nil, the level does not advance, and the
// result ends at the last completed column.
func (d *Driver) Step() error {
	if d.Done() {
		return nil
	}
	n := d.level + 1
	prev := d.result.Columns[n-1]

	start := d.seed
	if d.cfg.WarmStart {
		start = prev
	}
	c := clone(start)

	out, err := d.newton.Solve(c, prev)
	if err != nil {
		return fmt.Errorf("time level %d: %w", n, err)
	}
	d.result.Columns[n] = c
	d.result.LevelsRun = n
	d.level = n

	if !out.Converged {
		d.result.Failures = append(d.result.Failures, Failure{
			Level:      n,
			Time:       d.result.Times[n],
			Residual:   out.Residual,
			Iterations: out.Iterations,
		})
	}
	return nil
}

// Run computes every remaining time level. The partial result is
// always returned: on cancellation with ctx.Err, on a singular Jacobian
// with the wrapped solver error, and on completion with a summary error
// when any level failed to converge.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	for !d.Done() {
		select {
		case <-ctx.Done():
			return d.result, ctx.Err()
		default:
		}
		if err := d.Step(); err != nil {
			return d.result, err
		}
	}
	if len(d.result.Failures) > 0 {
		return d.result, fmt.Errorf("%d of %d time levels did not converge (first: %w)",
			len(d.result.Failures), d.Levels(), d.result.Failures[0])
	}
	return d.result, nil
}

func clone(v []float64) []float64 {
	c := make([]float64, len(v))
	copy(c, v)
	return c
}
