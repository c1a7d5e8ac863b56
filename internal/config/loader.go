package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory name under $HOME.
const AppDir = ".sortlane"

// LoadSortLane loads SortLane engine configuration.
// Search order: customPath -> ~/.sortlane/configs/sortlane.yaml -> ./configs/sortlane.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a partial file only
// overrides the keys it names.
func LoadSortLane(customPath string) (SortLaneConfig, error) {
	cfg := DefaultSortLaneConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("sortlane.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if candidate, ok := decodeOver(data); ok {
				return candidate, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "sortlane.yaml")); err == nil {
		if candidate, ok := decodeOver(data); ok {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if candidate, ok := decodeOver(defaultSortLaneYAML); ok {
		return candidate, nil
	}
	return DefaultSortLaneConfig(), nil // Fallback to hardcoded if embed fails
}

// decodeOver decodes data on top of a fresh default config.
func decodeOver(data []byte) (SortLaneConfig, bool) {
	cfg := DefaultSortLaneConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir, "configs", filename)
}

// DataDir returns ~/.sortlane, or the current directory if home is unavailable.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, AppDir)
}

// ApplySortLanePreset modifies the config based on a difficulty preset.
func ApplySortLanePreset(cfg *SortLaneConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the retry budget based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Retry.MaxRetries = 3
		cfg.Retry.HoldMs = 1500
	case DifficultyHard:
		cfg.Retry.MaxRetries = 1
		cfg.Retry.HoldMs = 700
	}
}
