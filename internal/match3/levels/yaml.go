package levels

import (
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/match3"
	"gopkg.in/yaml.v3"
)

// YAMLLevel is the on-disk structure of a level file.
type YAMLLevel struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Size        YAMLSize          `yaml:"size,omitempty"`
	Moves       int               `yaml:"moves,omitempty"`
	Mode        string            `yaml:"mode,omitempty"`
	FinishScore int               `yaml:"finish_score,omitempty"`
	Stars       match3.Thresholds `yaml:"stars,omitempty"`
	Specials    []string          `yaml:"specials,omitempty"`
	Rows        []string          `yaml:"rows,omitempty"`
}

// YAMLSize is used when a level has no rows and is fully random.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// ParseYAML parses and validates a level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}

	mode, err := match3.ParseMode(yl.Mode)
	if err != nil {
		return Level{}, err
	}

	lvl := Level{
		ID:          yl.ID,
		Name:        yl.Name,
		Width:       yl.Size.W,
		Height:      yl.Size.H,
		Moves:       yl.Moves,
		Mode:        mode,
		FinishScore: yl.FinishScore,
		Thresholds:  yl.Stars,
	}
	if lvl.Name == "" {
		lvl.Name = lvl.ID
	}

	for _, name := range yl.Specials {
		k, ok := match3.ParseKindName(name)
		if !ok || !k.IsSpecial() {
			return Level{}, fmt.Errorf("level %s: %q is not a special kind", yl.ID, name)
		}
		lvl.Specials = append(lvl.Specials, k)
	}

	if len(yl.Rows) > 0 {
		layout, err := match3.ParseRows(yl.Rows)
		if err != nil {
			return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
		}
		lvl.Layout = layout
		lvl.Width = len(layout[0])
		lvl.Height = len(layout)
	}

	if err := lvl.Validate(); err != nil {
		return Level{}, err
	}
	return lvl, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
