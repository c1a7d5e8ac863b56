// Package config provides YAML-based engine configuration loading and
// difficulty management for SortLane.
package config

import (
	"time"

	"github.com/vovakirdan/sortlane/internal/games/sortlane/sim"
)

// SortLaneConfig contains the engine tuning shared by every level.
type SortLaneConfig struct {
	Physics     SortLanePhysics     `yaml:"physics"`
	Lanes       SortLaneLanes       `yaml:"lanes"`
	Classifiers SortLaneClassifiers `yaml:"classifiers"`
	Retry       SortLaneRetry       `yaml:"retry"`
	Scoring     SortLaneScoring     `yaml:"scoring"`
	Difficulty  DifficultyConfig    `yaml:"difficulty"`
}

// SortLanePhysics defines item movement.
type SortLanePhysics struct {
	ItemSpeed  float64 `yaml:"item_speed"` // world units per second
	ItemRadius float64 `yaml:"item_radius"`
}

// SortLaneLanes defines lane geometry in world units.
type SortLaneLanes struct {
	Length  float64 `yaml:"length"`
	Width   float64 `yaml:"width"`
	Spacing float64 `yaml:"spacing"` // distance between lane centers
}

// SortLaneClassifiers defines classifier size and placement spacing.
type SortLaneClassifiers struct {
	Radius                  float64 `yaml:"radius"`
	MaxPerLane              int     `yaml:"max_per_lane"`
	NeighborSpacingFactor   float64 `yaml:"neighbor_spacing_factor"`
	EndpointClearanceFactor float64 `yaml:"endpoint_clearance_factor"`
	ProbeCount              int     `yaml:"probe_count"`
	ProbeDistanceFactor     float64 `yaml:"probe_distance_factor"`
}

// SortLaneRetry defines the misclassification retry budget.
type SortLaneRetry struct {
	MaxRetries int `yaml:"max_retries"`
	HoldMs     int `yaml:"hold_ms"`
}

// SortLaneScoring defines points.
type SortLaneScoring struct {
	CorrectPoints int `yaml:"correct_points"`
}

// Tuning converts the YAML config into simulation constants.
func (c SortLaneConfig) Tuning() sim.Tuning {
	return sim.Tuning{
		ItemSpeed:               c.Physics.ItemSpeed,
		ItemRadius:              c.Physics.ItemRadius,
		LaneLength:              c.Lanes.Length,
		LaneWidth:               c.Lanes.Width,
		LaneSpacing:             c.Lanes.Spacing,
		ClassifierRadius:        c.Classifiers.Radius,
		MaxClassifiersPerLane:   c.Classifiers.MaxPerLane,
		NeighborSpacingFactor:   c.Classifiers.NeighborSpacingFactor,
		EndpointClearanceFactor: c.Classifiers.EndpointClearanceFactor,
		ProbeCount:              c.Classifiers.ProbeCount,
		ProbeDistanceFactor:     c.Classifiers.ProbeDistanceFactor,
		MaxRetries:              c.Retry.MaxRetries,
		RetryHold:               time.Duration(c.Retry.HoldMs) * time.Millisecond,
		CorrectPoints:           c.Scoring.CorrectPoints,
	}
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", "level", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks/level index at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to item speed at max difficulty
	SpawnReduction  float64 `yaml:"spawn_reduction"`  // Fraction of the spawn interval removed at max difficulty
	TimeReduction   float64 `yaml:"time_reduction"`   // Fraction of the time limit removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI flag value into a preset. Unknown values
// yield the empty preset, which leaves the loaded config untouched.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
