package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the default session configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: BoardConfig{
			Width:  8,
			Height: 8,
		},
		Generation: GenerationConfig{
			Ordinary: []string{"red", "green", "blue", "yellow", "purple", "orange"},
			Complex:  UniqueConfig{Health: 3},
			Stone:    UniqueConfig{Health: 2},
		},
		Timing: TimingConfig{
			SwapDelayMS:  200,
			MatchDelayMS: 500,
			FallDelayMS:  300,
			Speed:        1.0,
		},
		Stars: match3.Thresholds{
			Star1: 1000,
			Star2: 1250,
			Star3: 1500,
		},
		Moves: 30,
		Mode:  "moves",
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultMatch3YAML
}
