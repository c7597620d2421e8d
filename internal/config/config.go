package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/glioma-lab/gliosim/internal/grid"
)

const (
	DefaultDx        = 0.5
	DefaultDt        = 0.01
	DefaultEpsilon   = 0.01
	DefaultDGray     = 0.13
	DefaultRho       = 0.012
	DefaultCMax      = 62.5
	DefaultTolerance = 0.001
	DefaultMaxIter   = 100
)

// Config holds every physical and numerical parameter of a run. It is
// built once, validated, and never mutated by the solver, so separate
// configurations can run side by side.
type Config struct {
	A  float64 `yaml:"a"`
	B  float64 `yaml:"b"`
	Ti float64 `yaml:"ti"`
	Tf float64 `yaml:"tf"`
	Dx float64 `yaml:"dx"`
	Dt float64 `yaml:"dt"`

	X0      float64 `yaml:"x0"`
	Epsilon float64 `yaml:"epsilon"`

	DGray     float64 `yaml:"d_gray"`
	DWhite    float64 `yaml:"d_white"`
	GrayWhite float64 `yaml:"gray_white"` // gray-to-white cut point
	WhiteGray float64 `yaml:"white_gray"` // white-to-gray cut point

	Rho  float64 `yaml:"rho"`
	CMax float64 `yaml:"c_max"`

	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`

	// WarmStart seeds each Newton solve from the previous time level
	// instead of the t=0 profile. Off by default: the reference results
	// were produced with cold starts.
	WarmStart bool `yaml:"warm_start"`
}

type ConfigurationError struct {
	Param  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Param, e.Reason)
}

func Default() *Config {
	return &Config{
		A:             0,
		B:             50,
		Ti:            0,
		Tf:            50,
		Dx:            DefaultDx,
		Dt:            DefaultDt,
		X0:            25,
		Epsilon:       DefaultEpsilon,
		DGray:         DefaultDGray,
		DWhite:        5 * DefaultDGray,
		GrayWhite:     7.5,
		WhiteGray:     42.5,
		Rho:           DefaultRho,
		CMax:          DefaultCMax,
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIter,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SpaceSteps returns M, the number of spatial intervals.
func (c *Config) SpaceSteps() (int, error) {
	n, err := grid.Steps(c.A, c.B, c.Dx)
	if err != nil {
		return 0, &ConfigurationError{Param: "dx", Reason: err.Error()}
	}
	return n, nil
}

// TimeSteps returns P, the number of time intervals.
func (c *Config) TimeSteps() (int, error) {
	n, err := grid.Steps(c.Ti, c.Tf, c.Dt)
	if err != nil {
		return 0, &ConfigurationError{Param: "dt", Reason: err.Error()}
	}
	return n, nil
}

func (c *Config) Validate() error {
	m, err := c.SpaceSteps()
	if err != nil {
		return err
	}
	if m < 2 {
		return &ConfigurationError{Param: "dx", Reason: "fewer than two spatial intervals"}
	}
	if _, err := c.TimeSteps(); err != nil {
		return err
	}
	if c.Epsilon <= 0 {
		return &ConfigurationError{Param: "epsilon", Reason: "must be positive"}
	}
	if c.X0 < c.A || c.X0 > c.B {
		return &ConfigurationError{Param: "x0", Reason: "seed center outside the domain"}
	}
	if c.DGray <= 0 || c.DWhite <= 0 {
		return &ConfigurationError{Param: "d_gray/d_white", Reason: "diffusion coefficients must be positive"}
	}
	if c.GrayWhite < c.A || c.WhiteGray > c.B || c.GrayWhite > c.WhiteGray {
		return &ConfigurationError{Param: "gray_white/white_gray", Reason: "tissue cut points inconsistent with the domain"}
	}
	if c.Rho < 0 {
		return &ConfigurationError{Param: "rho", Reason: "growth rate must be non-negative"}
	}
	if c.CMax <= 0 {
		return &ConfigurationError{Param: "c_max", Reason: "carrying capacity must be positive"}
	}
	if c.Tolerance <= 0 {
		return &ConfigurationError{Param: "tolerance", Reason: "must be positive"}
	}
	if c.MaxIterations < 1 {
		return &ConfigurationError{Param: "max_iterations", Reason: "must be at least 1"}
	}
	return nil
}
