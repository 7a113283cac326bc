// Package config provides YAML-based session configuration loading and
// difficulty presets for the match-3 engine.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-match3/internal/match3"
)

// Match3Config contains all configuration for a match-3 session.
type Match3Config struct {
	Board       BoardConfig       `yaml:"board"`
	Generation  GenerationConfig  `yaml:"generation"`
	Timing      TimingConfig      `yaml:"timing"`
	Stars       match3.Thresholds `yaml:"stars"`
	Moves       int               `yaml:"moves"`
	Mode        string            `yaml:"mode"`         // "moves" or "target"
	FinishScore int               `yaml:"finish_score"` // target mode only
}

// BoardConfig defines the default board size for random boards.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GenerationConfig defines which tile kinds may be generated.
type GenerationConfig struct {
	Ordinary []string     `yaml:"ordinary"` // kind names, at least one
	Specials []string     `yaml:"specials"`
	Complex  UniqueConfig `yaml:"complex"`
	Metal    UniqueConfig `yaml:"metal"`
	Stone    UniqueConfig `yaml:"stone"`
}

// UniqueConfig enables an armored or indestructible kind.
type UniqueConfig struct {
	Enabled bool `yaml:"enabled"`
	Health  int  `yaml:"health,omitempty"`
}

// TimingConfig defines phase delays in milliseconds.
type TimingConfig struct {
	SwapDelayMS  int     `yaml:"swap_delay_ms"`
	MatchDelayMS int     `yaml:"match_delay_ms"`
	FallDelayMS  int     `yaml:"fall_delay_ms"`
	Speed        float64 `yaml:"speed"` // divides every delay
}

// Validate checks the config without building settings.
func (c Match3Config) Validate() error {
	_, err := c.ToSettings(0)
	return err
}

// ToSettings converts the config into engine settings.
func (c Match3Config) ToSettings(seed int64) (match3.Settings, error) {
	gen, err := c.Generation.toEngine()
	if err != nil {
		return match3.Settings{}, err
	}
	mode, err := match3.ParseMode(c.Mode)
	if err != nil {
		return match3.Settings{}, fmt.Errorf("config: %w", err)
	}
	if c.Timing.SwapDelayMS < 0 || c.Timing.MatchDelayMS < 0 || c.Timing.FallDelayMS < 0 {
		return match3.Settings{}, fmt.Errorf("config: delays must not be negative")
	}
	if c.Moves < 1 {
		return match3.Settings{}, fmt.Errorf("config: moves must be >= 1, got %d", c.Moves)
	}

	s := match3.Settings{
		Width:      c.Board.Width,
		Height:     c.Board.Height,
		Generation: gen,
		Timing: match3.TimingConfig{
			SwapDelay:  time.Duration(c.Timing.SwapDelayMS) * time.Millisecond,
			MatchDelay: time.Duration(c.Timing.MatchDelayMS) * time.Millisecond,
			FallDelay:  time.Duration(c.Timing.FallDelayMS) * time.Millisecond,
			Speed:      c.Timing.Speed,
		},
		Thresholds:  c.Stars,
		Moves:       c.Moves,
		Mode:        mode,
		FinishScore: c.FinishScore,
		Seed:        seed,
	}
	if err := s.Validate(); err != nil {
		return match3.Settings{}, fmt.Errorf("config: %w", err)
	}
	return s, nil
}

func (g GenerationConfig) toEngine() (match3.GenerationConfig, error) {
	out := match3.GenerationConfig{
		Ordinary: make(map[match3.Kind]bool),
		Specials: make(map[match3.Kind]bool),
		Complex:  match3.UniqueConfig{Enabled: g.Complex.Enabled, Health: g.Complex.Health},
		Metal:    match3.UniqueConfig{Enabled: g.Metal.Enabled},
		Stone:    match3.UniqueConfig{Enabled: g.Stone.Enabled, Health: g.Stone.Health},
	}
	for _, name := range g.Ordinary {
		k, ok := match3.ParseKindName(name)
		if !ok || !k.IsOrdinary() {
			return out, fmt.Errorf("config: %q is not an ordinary kind", name)
		}
		out.Ordinary[k] = true
	}
	for _, name := range g.Specials {
		k, ok := match3.ParseKindName(name)
		if !ok || !k.IsSpecial() {
			return out, fmt.Errorf("config: %q is not a special kind", name)
		}
		out.Specials[k] = true
	}
	if err := out.Validate(); err != nil {
		return out, fmt.Errorf("config: %w", err)
	}
	return out, nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return DifficultyNormal, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset adjusts moves and star thresholds for a difficulty preset.
// Easy gives a third more moves and lowers the bar by a fifth; hard does
// the opposite.
func ApplyPreset(cfg *Match3Config, preset DifficultyPreset) {
	var movesScale, starsScale float64
	switch preset {
	case DifficultyEasy:
		movesScale, starsScale = 4.0/3.0, 0.8
	case DifficultyHard:
		movesScale, starsScale = 2.0/3.0, 1.2
	default:
		return
	}
	cfg.Moves = max(int(float64(cfg.Moves)*movesScale), 1)
	scale := func(v int) int { return max(int(float64(v)*starsScale), 1) }
	cfg.Stars = match3.Thresholds{
		Star1: scale(cfg.Stars.Star1),
		Star2: scale(cfg.Stars.Star2),
		Star3: scale(cfg.Stars.Star3),
	}
	if cfg.FinishScore > 0 {
		cfg.FinishScore = scale(cfg.FinishScore)
	}
}
