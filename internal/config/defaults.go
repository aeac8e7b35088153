package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/mosaic.yaml
var defaultMosaicYAML []byte

// DefaultMosaicConfig returns the default Memory Mosaic configuration.
func DefaultMosaicConfig() MosaicConfig {
	return MosaicConfig{
		Board: BoardConfig{
			Picture: "sunset",
			Rule:    "diagonal",
			Size:    4,
		},
		Difficulty: DifficultyConfig{
			Presets: map[string]int{
				string(DifficultyEasy): 4,
				string(DifficultyHard): 6,
			},
		},
		Timing: TimingConfig{
			TimeLimit:     120 * time.Second,
			MismatchDelay: time.Second,
			Toast:         1500 * time.Millisecond,
		},
		Scoring: ScoringConfig{
			Multiplier: 4,
		},
		Tutorial: TutorialConfig{
			StartDelay:    time.Second,
			FlipDelay:     700 * time.Millisecond,
			EvaluateDelay: 700 * time.Millisecond,
			RetryDelay:    500 * time.Millisecond,
			Highlight:     2 * time.Second,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
	}
}
