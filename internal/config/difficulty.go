package config

import "math"

// Progress is what difficulty progression is measured against.
type Progress struct {
	Score      int
	Ticks      int
	LevelIndex int // 0-based index in a campaign or endless run
}

// DifficultyManager calculates dynamic game parameters from progress.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level(p Progress) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(p.Score) / maxAt
	case "time":
		progress = float64(p.Ticks) / maxAt
	case "level":
		progress = float64(p.LevelIndex) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// ItemSpeed returns the item speed for the current difficulty.
func (d *DifficultyManager) ItemSpeed(base float64, p Progress) float64 {
	return base * (1.0 + d.Level(p)*d.cfg.Scaling.SpeedMultiplier)
}

// SpawnInterval returns the spawn interval for the current difficulty.
func (d *DifficultyManager) SpawnInterval(baseMs int, p Progress) int {
	reduced := float64(baseMs) * (1.0 - d.Level(p)*clampF(d.cfg.Scaling.SpawnReduction, 0, 0.9))
	if reduced < 200 { // Minimum playable interval
		reduced = math.Min(200, float64(baseMs))
	}
	return int(reduced)
}

// TimeLimit returns the time limit in seconds for the current difficulty.
func (d *DifficultyManager) TimeLimit(baseSeconds float64, p Progress) float64 {
	return baseSeconds * (1.0 - d.Level(p)*clampF(d.cfg.Scaling.TimeReduction, 0, 0.9))
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
