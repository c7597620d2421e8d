package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.DWhite != 5*cfg.DGray {
		t.Errorf("expected white matter coefficient 5x gray, got %g vs %g", cfg.DWhite, cfg.DGray)
	}
	m, err := cfg.SpaceSteps()
	if err != nil || m != 100 {
		t.Errorf("expected 100 spatial steps, got %d (%v)", m, err)
	}
	p, err := cfg.TimeSteps()
	if err != nil || p != 5000 {
		t.Errorf("expected 5000 time steps, got %d (%v)", p, err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"non-divisible dx", func(c *Config) { c.Dx = 0.3 }},
		{"non-divisible dt", func(c *Config) { c.Dt = 0.7 }},
		{"zero dx", func(c *Config) { c.Dx = 0 }},
		{"negative dt", func(c *Config) { c.Dt = -0.01 }},
		{"zero epsilon", func(c *Config) { c.Epsilon = 0 }},
		{"seed outside domain", func(c *Config) { c.X0 = 60 }},
		{"zero d_gray", func(c *Config) { c.DGray = 0 }},
		{"cut outside domain", func(c *Config) { c.WhiteGray = 55 }},
		{"cuts out of order", func(c *Config) { c.GrayWhite, c.WhiteGray = 42.5, 7.5 }},
		{"negative rho", func(c *Config) { c.Rho = -1 }},
		{"zero c_max", func(c *Config) { c.CMax = 0 }},
		{"zero tolerance", func(c *Config) { c.Tolerance = 0 }},
		{"zero iterations", func(c *Config) { c.MaxIterations = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var ce *ConfigurationError
			if !errors.As(err, &ce) {
				t.Errorf("expected ConfigurationError, got %T", err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := Default()
	cfg.Rho = 0.02
	cfg.WarmStart = true

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
