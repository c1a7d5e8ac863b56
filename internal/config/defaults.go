package config

import (
	_ "embed"
)

//go:embed defaults/sortlane.yaml
var defaultSortLaneYAML []byte

// DefaultSortLaneConfig returns the default SortLane configuration.
func DefaultSortLaneConfig() SortLaneConfig {
	return SortLaneConfig{
		Physics: SortLanePhysics{
			ItemSpeed:  10,
			ItemRadius: 3,
		},
		Lanes: SortLaneLanes{
			Length:  100,
			Width:   12,
			Spacing: 16,
		},
		Classifiers: SortLaneClassifiers{
			Radius:                  4,
			MaxPerLane:              3,
			NeighborSpacingFactor:   2.2,
			EndpointClearanceFactor: 1.5,
			ProbeCount:              8,
			ProbeDistanceFactor:     3,
		},
		Retry: SortLaneRetry{
			MaxRetries: 2,
			HoldMs:     1000,
		},
		Scoring: SortLaneScoring{
			CorrectPoints: 100,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.8,
				SpawnReduction:  0.4,
				TimeReduction:   0.25,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a config name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "sortlane":
		return defaultSortLaneYAML
	default:
		return nil
	}
}
