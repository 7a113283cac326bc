package match3

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrNoOrdinaryKinds is returned when generation has nothing to draw from.
var ErrNoOrdinaryKinds = errors.New("match3: at least one ordinary kind must be enabled")

// UniqueConfig enables a unique kind and sets its starting health.
type UniqueConfig struct {
	Enabled bool
	Health  int
}

// GenerationConfig selects which kinds the generator may produce.
type GenerationConfig struct {
	Ordinary map[Kind]bool // ordinary kinds; at least one must stay enabled
	Specials map[Kind]bool // bomb, lasers, electric, rainbow
	Complex  UniqueConfig
	Metal    UniqueConfig // Health is ignored
	Stone    UniqueConfig
}

// DefaultGeneration enables every ordinary kind and no extras.
func DefaultGeneration() GenerationConfig {
	g := GenerationConfig{
		Ordinary: make(map[Kind]bool),
		Specials: make(map[Kind]bool),
		Complex:  UniqueConfig{Health: 3},
		Stone:    UniqueConfig{Health: 2},
	}
	for k := Kind(0); k < OrdinaryKinds; k++ {
		g.Ordinary[k] = true
	}
	return g
}

// Validate rejects configurations the refill generator cannot serve.
func (g GenerationConfig) Validate() error {
	if len(g.EnabledOrdinary()) == 0 {
		return ErrNoOrdinaryKinds
	}
	for k := range g.Ordinary {
		if !k.IsOrdinary() {
			return fmt.Errorf("match3: %s is not an ordinary kind", k)
		}
	}
	for k := range g.Specials {
		if !k.IsSpecial() {
			return fmt.Errorf("match3: %s is not a special kind", k)
		}
	}
	if g.Complex.Enabled && g.Complex.Health < 1 {
		return fmt.Errorf("match3: complex health must be >= 1, got %d", g.Complex.Health)
	}
	if g.Stone.Enabled && g.Stone.Health < 1 {
		return fmt.Errorf("match3: stone health must be >= 1, got %d", g.Stone.Health)
	}
	return nil
}

// Toggle flips an ordinary kind, refusing to disable the last one.
// Returns false if the change was refused.
func (g GenerationConfig) Toggle(k Kind) bool {
	if !k.IsOrdinary() || g.Ordinary == nil {
		return false
	}
	if g.Ordinary[k] && len(g.EnabledOrdinary()) == 1 {
		return false
	}
	g.Ordinary[k] = !g.Ordinary[k]
	return true
}

// EnabledOrdinary returns enabled ordinary kinds, ascending.
func (g GenerationConfig) EnabledOrdinary() []Kind {
	return enabledKinds(g.Ordinary, Kind.IsOrdinary)
}

// EnabledSpecials returns enabled special kinds, ascending.
func (g GenerationConfig) EnabledSpecials() []Kind {
	return enabledKinds(g.Specials, Kind.IsSpecial)
}

// EnabledUnique returns enabled unique kinds, ascending.
func (g GenerationConfig) EnabledUnique() []Kind {
	var kinds []Kind
	if g.Complex.Enabled {
		kinds = append(kinds, KindComplex)
	}
	if g.Metal.Enabled {
		kinds = append(kinds, KindMetal)
	}
	if g.Stone.Enabled {
		kinds = append(kinds, KindStone)
	}
	return kinds
}

// InitialHealth returns the starting health for k, 0 if k is not armored.
func (g GenerationConfig) InitialHealth(k Kind) int {
	switch k {
	case KindComplex:
		return max(g.Complex.Health, 1)
	case KindStone:
		return max(g.Stone.Health, 1)
	default:
		return 0
	}
}

// Clone returns a copy with its own maps.
func (g GenerationConfig) Clone() GenerationConfig {
	c := g
	c.Ordinary = make(map[Kind]bool, len(g.Ordinary))
	for k, v := range g.Ordinary {
		c.Ordinary[k] = v
	}
	c.Specials = make(map[Kind]bool, len(g.Specials))
	for k, v := range g.Specials {
		c.Specials[k] = v
	}
	return c
}

func enabledKinds(m map[Kind]bool, keep func(Kind) bool) []Kind {
	kinds := make([]Kind, 0, len(m))
	for k, on := range m {
		if on && keep(k) {
			kinds = append(kinds, k)
		}
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// SettleDelay is the pause between spawning refill tiles above the board
// and dropping them into place.
const SettleDelay = 50 * time.Millisecond

// TimingConfig holds phase delays. Every delay is divided by Speed when it
// is scheduled.
type TimingConfig struct {
	SwapDelay  time.Duration
	MatchDelay time.Duration
	FallDelay  time.Duration
	Speed      float64
}

// DefaultTiming returns the stock delays at normal speed.
func DefaultTiming() TimingConfig {
	return TimingConfig{
		SwapDelay:  200 * time.Millisecond,
		MatchDelay: 500 * time.Millisecond,
		FallDelay:  300 * time.Millisecond,
		Speed:      1.0,
	}
}

// Mode selects the termination policy for a session.
type Mode int

const (
	// ModeMoves rates the final score with stars once moves run out.
	ModeMoves Mode = iota
	// ModeTarget wins as soon as the score reaches FinishScore.
	ModeTarget
)

// String returns the config name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeMoves:
		return "moves"
	case ModeTarget:
		return "target"
	default:
		return "unknown"
	}
}

// ParseMode converts a config name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "moves":
		return ModeMoves, nil
	case "target":
		return ModeTarget, nil
	default:
		return ModeMoves, fmt.Errorf("match3: unknown mode %q", s)
	}
}

// Settings is everything a session needs besides the initial layout.
type Settings struct {
	Width       int
	Height      int
	Generation  GenerationConfig
	Timing      TimingConfig
	Thresholds  Thresholds
	Moves       int
	Mode        Mode
	FinishScore int
	Seed        int64
}

// DefaultSettings returns an 8x8 star-rated session with 30 moves.
func DefaultSettings() Settings {
	return Settings{
		Width:      8,
		Height:     8,
		Generation: DefaultGeneration(),
		Timing:     DefaultTiming(),
		Thresholds: Thresholds{Star1: 1000, Star2: 1250, Star3: 1500},
		Moves:      30,
		Mode:       ModeMoves,
	}
}

// Validate checks settings at session setup.
func (s Settings) Validate() error {
	if s.Width < 1 || s.Height < 1 {
		return fmt.Errorf("match3: board size %dx%d", s.Width, s.Height)
	}
	if err := s.Generation.Validate(); err != nil {
		return err
	}
	if s.Timing.Speed <= 0 {
		return fmt.Errorf("match3: game speed must be positive, got %v", s.Timing.Speed)
	}
	if err := s.Thresholds.Validate(); err != nil {
		return err
	}
	if s.Mode == ModeTarget && s.FinishScore <= 0 {
		return fmt.Errorf("match3: target mode needs a positive finish score")
	}
	return nil
}
