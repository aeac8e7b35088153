package config

import (
	"fmt"
	"sort"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy DifficultyPreset = "easy"
	DifficultyHard DifficultyPreset = "hard"
)

// ParseDifficulty normalises a preset name. An empty name means easy.
func ParseDifficulty(name string) DifficultyPreset {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DifficultyEasy
	}
	return DifficultyPreset(name)
}

// GridSizeForPreset returns the grid size configured for a preset.
func (c MosaicConfig) GridSizeForPreset(preset DifficultyPreset) (int, bool) {
	n, ok := c.Difficulty.Presets[string(preset)]
	return n, ok
}

// PresetNames returns the configured preset names, smallest grid first.
func (c MosaicConfig) PresetNames() []string {
	names := make([]string, 0, len(c.Difficulty.Presets))
	for name := range c.Difficulty.Presets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := c.Difficulty.Presets[names[i]], c.Difficulty.Presets[names[j]]
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})
	return names
}

// ApplyPreset sets the board size from a difficulty preset.
func ApplyPreset(cfg *MosaicConfig, preset DifficultyPreset) error {
	n, ok := cfg.GridSizeForPreset(preset)
	if !ok {
		return fmt.Errorf("%w: unknown difficulty %q (have %s)", ErrInvalid, preset, strings.Join(cfg.PresetNames(), ", "))
	}
	cfg.Board.Size = n
	return nil
}
