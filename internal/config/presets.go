package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
	}
}

// ApplyReflexPreset adjusts the starting values of a round for a preset.
// Normal leaves the configuration untouched; floors are never changed.
func ApplyReflexPreset(cfg *ReflexConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Session.DurationSecs = 45
		cfg.Session.Lives = 7
		cfg.Session.TargetSpeedMs = 2500
		cfg.Session.TargetSize = 80
	case DifficultyHard:
		cfg.Session.DurationSecs = 20
		cfg.Session.Lives = 3
		cfg.Session.TargetSpeedMs = 1400
		cfg.Session.TargetSize = 50
	}
}
