// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"

	"github.com/vovakirdan/sortlane/internal/games/sortlane/sim"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID              string            `yaml:"id"`
	Name            string            `yaml:"name"`
	Lanes           int               `yaml:"lanes"`
	Categories      []string          `yaml:"categories"`
	TimeLimit       float64           `yaml:"time_limit"`
	Target          int               `yaml:"target"`
	SpawnIntervalMs int               `yaml:"spawn_interval_ms"`
	MaxConcurrent   int               `yaml:"max_concurrent,omitempty"`
	Metadata        map[string]string `yaml:"metadata,omitempty"`
}

// Level represents a parsed level ready for validation.
type Level struct {
	ID       string
	Name     string
	Config   sim.LevelConfig
	Metadata map[string]string
}

// ParseYAML parses a YAML level file. Category names must be known; the
// remaining fields are checked later by sim.LevelConfig.Validate.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	maxConcurrent := yl.MaxConcurrent
	if maxConcurrent == 0 {
		maxConcurrent = 3 // Default concurrency cap
	}

	cats := make([]sim.Category, 0, len(yl.Categories))
	for _, name := range yl.Categories {
		c, ok := sim.ParseCategory(name)
		if !ok {
			return Level{}, fmt.Errorf("unknown category %q", name)
		}
		cats = append(cats, c)
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}

	return Level{
		ID:   yl.ID,
		Name: name,
		Config: sim.LevelConfig{
			ID:                 yl.ID,
			Name:               name,
			LaneCount:          yl.Lanes,
			AllowedCategories:  cats,
			TimeLimitSeconds:   yl.TimeLimit,
			TargetItemCount:    yl.Target,
			SpawnIntervalMs:    yl.SpawnIntervalMs,
			MaxConcurrentItems: maxConcurrent,
		},
		Metadata: yl.Metadata,
	}, nil
}

// MarshalYAML encodes a level config back into the file format.
func MarshalYAML(cfg sim.LevelConfig, metadata map[string]string) ([]byte, error) {
	names := make([]string, len(cfg.AllowedCategories))
	for i, c := range cfg.AllowedCategories {
		names[i] = c.String()
	}
	out, err := yaml.Marshal(YAMLLevel{
		ID:              cfg.ID,
		Name:            cfg.Name,
		Lanes:           cfg.LaneCount,
		Categories:      names,
		TimeLimit:       cfg.TimeLimitSeconds,
		Target:          cfg.TargetItemCount,
		SpawnIntervalMs: cfg.SpawnIntervalMs,
		MaxConcurrent:   cfg.MaxConcurrentItems,
		Metadata:        metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return out, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
