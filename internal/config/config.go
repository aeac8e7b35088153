// Package config provides YAML-based game configuration loading and
// difficulty presets for Memory Mosaic.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/memory-mosaic/internal/puzzle"
)

// ErrInvalid reports a configuration value outside its allowed range.
var ErrInvalid = errors.New("config: invalid value")

// Grid size bounds. Sizes must also be even so that no tile mirrors onto
// itself.
const (
	MinGridSize = 2
	MaxGridSize = 8
)

// MosaicConfig contains all configuration for the Memory Mosaic game.
type MosaicConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Timing     TimingConfig     `yaml:"timing"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Tutorial   TutorialConfig   `yaml:"tutorial"`
	Audio      AudioConfig      `yaml:"audio"`
}

// BoardConfig selects the picture, the pairing rule and the grid size.
type BoardConfig struct {
	Picture string `yaml:"picture"` // catalog name or file path
	Rule    string `yaml:"rule"`    // "diagonal" or "vertical"
	Size    int    `yaml:"size"`
}

// DifficultyConfig maps preset names to grid sizes.
type DifficultyConfig struct {
	Presets map[string]int `yaml:"presets"`
}

// TimingConfig defines the session clock.
type TimingConfig struct {
	TimeLimit     time.Duration `yaml:"time_limit"`
	MismatchDelay time.Duration `yaml:"mismatch_delay"`
	Toast         time.Duration `yaml:"toast"`
}

// ScoringConfig defines how the final score is computed.
type ScoringConfig struct {
	Multiplier int `yaml:"multiplier"` // points per remaining second
}

// TutorialConfig defines the pacing of the tutorial demos.
type TutorialConfig struct {
	StartDelay    time.Duration `yaml:"start_delay"`
	FlipDelay     time.Duration `yaml:"flip_delay"`
	EvaluateDelay time.Duration `yaml:"evaluate_delay"`
	RetryDelay    time.Duration `yaml:"retry_delay"`
	Highlight     time.Duration `yaml:"highlight"`
}

// AudioConfig controls sound cues.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 = mute, 1.0 = full
}

// Rule returns the parsed pairing rule.
func (c MosaicConfig) Rule() (puzzle.Rule, error) {
	return puzzle.ParseRule(c.Board.Rule)
}

// Validate checks every field and reports the first problem found.
func (c MosaicConfig) Validate() error {
	if err := validateSize("board.size", c.Board.Size); err != nil {
		return err
	}
	for name, size := range c.Difficulty.Presets {
		if err := validateSize("difficulty.presets."+name, size); err != nil {
			return err
		}
	}
	if _, err := c.Rule(); err != nil {
		return fmt.Errorf("%w: board.rule: %w", ErrInvalid, err)
	}

	durations := []struct {
		name string
		d    time.Duration
	}{
		{"timing.time_limit", c.Timing.TimeLimit},
		{"timing.mismatch_delay", c.Timing.MismatchDelay},
		{"timing.toast", c.Timing.Toast},
		{"tutorial.start_delay", c.Tutorial.StartDelay},
		{"tutorial.flip_delay", c.Tutorial.FlipDelay},
		{"tutorial.evaluate_delay", c.Tutorial.EvaluateDelay},
		{"tutorial.retry_delay", c.Tutorial.RetryDelay},
		{"tutorial.highlight", c.Tutorial.Highlight},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalid, d.name, d.d)
		}
	}
	if c.Timing.TimeLimit%time.Second != 0 {
		return fmt.Errorf("%w: timing.time_limit must be whole seconds, got %s", ErrInvalid, c.Timing.TimeLimit)
	}

	if c.Scoring.Multiplier < 0 {
		return fmt.Errorf("%w: scoring.multiplier must not be negative", ErrInvalid)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume must be within [0, 1], got %g", ErrInvalid, c.Audio.Volume)
	}
	return nil
}

func validateSize(field string, n int) error {
	if n < MinGridSize || n > MaxGridSize || n%2 != 0 {
		return fmt.Errorf("%w: %s must be an even size in [%d, %d], got %d", ErrInvalid, field, MinGridSize, MaxGridSize, n)
	}
	return nil
}
