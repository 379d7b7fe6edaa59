package layout

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Spacing and relaxation defaults. These are starting points tuned for
// text nodes of roughly 100-200px; callers override them via TOML or the
// CLI flags.
const (
	// DefaultMinSpacing is the minimum gap between node borders, in pixels.
	DefaultMinSpacing = 20.0

	// DefaultLevelSpacing separates rings in radial mode and indentation
	// steps in linear mode.
	DefaultLevelSpacing = 140.0

	// DefaultBaseRadius is the first-ring radius before any capacity
	// auto-increase.
	DefaultBaseRadius = 100.0

	// DefaultRelaxFactor damps per-iteration angle adjustments to avoid
	// oscillation.
	DefaultRelaxFactor = 0.3

	// DefaultConvergenceThreshold stops relaxation once the largest
	// per-iteration movement falls below this many pixels.
	DefaultConvergenceThreshold = 0.5

	// DefaultMaxIterations caps relaxation. Typical convergence takes
	// 10-20 iterations; the cap only matters for pathological inputs.
	DefaultMaxIterations = 40

	// DefaultShrinkFactor scales effective node sizes for the one-shot
	// retry when relaxation leaves overlaps.
	DefaultShrinkFactor = 0.9
)

// ErrInvalidConfig is returned by [Config.Validate] for out-of-range
// spacing parameters.
var ErrInvalidConfig = errors.New("invalid layout config")

// Config holds the spacing parameters of the layout engine. The zero
// value is not usable - start from [DefaultConfig] or [LoadConfig].
type Config struct {
	MinSpacing           float64 `toml:"min_spacing"`
	LevelSpacing         float64 `toml:"level_spacing"`
	BaseRadius           float64 `toml:"base_radius"`
	RelaxFactor          float64 `toml:"relax_factor"`
	ConvergenceThreshold float64 `toml:"convergence_threshold"`
	MaxIterations        int     `toml:"max_iterations"`
	ShrinkFactor         float64 `toml:"shrink_factor"`
}

// DefaultConfig returns the default spacing parameters.
func DefaultConfig() Config {
	return Config{
		MinSpacing:           DefaultMinSpacing,
		LevelSpacing:         DefaultLevelSpacing,
		BaseRadius:           DefaultBaseRadius,
		RelaxFactor:          DefaultRelaxFactor,
		ConvergenceThreshold: DefaultConvergenceThreshold,
		MaxIterations:        DefaultMaxIterations,
		ShrinkFactor:         DefaultShrinkFactor,
	}
}

// LoadConfig reads a TOML config file, filling unset fields with the
// defaults. Missing files are an error; an empty path returns the
// defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the parameters are in workable ranges.
func (c Config) Validate() error {
	switch {
	case c.MinSpacing < 0:
		return fmt.Errorf("%w: min_spacing must be >= 0, got %v", ErrInvalidConfig, c.MinSpacing)
	case c.LevelSpacing <= 0:
		return fmt.Errorf("%w: level_spacing must be > 0, got %v", ErrInvalidConfig, c.LevelSpacing)
	case c.BaseRadius <= 0:
		return fmt.Errorf("%w: base_radius must be > 0, got %v", ErrInvalidConfig, c.BaseRadius)
	case c.RelaxFactor <= 0 || c.RelaxFactor >= 1:
		return fmt.Errorf("%w: relax_factor must be in (0,1), got %v", ErrInvalidConfig, c.RelaxFactor)
	case c.ConvergenceThreshold <= 0:
		return fmt.Errorf("%w: convergence_threshold must be > 0, got %v", ErrInvalidConfig, c.ConvergenceThreshold)
	case c.MaxIterations <= 0:
		return fmt.Errorf("%w: max_iterations must be > 0, got %v", ErrInvalidConfig, c.MaxIterations)
	case c.ShrinkFactor <= 0 || c.ShrinkFactor > 1:
		return fmt.Errorf("%w: shrink_factor must be in (0,1], got %v", ErrInvalidConfig, c.ShrinkFactor)
	}
	return nil
}
