package config

import (
	_ "embed"
)

//go:embed defaults/reflex.yaml
var defaultReflexYAML []byte

//go:embed defaults/fireworks.yaml
var defaultFireworksYAML []byte

// DefaultReflexConfig returns the built-in reflex game configuration.
func DefaultReflexConfig() ReflexConfig {
	return ReflexConfig{
		Session: ReflexSession{
			DurationSecs:   30,
			Lives:          5,
			TargetSpeedMs:  2000,
			TargetSize:     70,
			PointsPerLevel: 10,
			CountdownMs:    1000,
			HitGraceMs:     200,
		},
		Difficulty: ReflexDifficulty{
			SpeedStepMs:     200,
			MinSpeedMs:      400,
			SizeStep:        5,
			MinSize:         30,
			BaseBonusSecs:   6,
			MinBonusSecs:    2,
			BonusDecayEvery: 3,
			LivesCutEvery:   3,
			LivesCutAfter:   3,
			MinLives:        3,
		},
		Effects: ReflexEffects{
			HitFlashMs:     200,
			BurstParticles: 12,
			BurstMs:        800,
			BurstMinSpeed:  60,
			BurstMaxSpeed:  120,
			MissMarkerMs:   1000,
			ShakeMs:        300,
			BannerMs:       1200,
			BannerFadeMs:   500,
			LowTimeSecs:    10,
			LowLivesWarn:   2,
		},
		Arena: ArenaScale{
			CellWidth:  10,
			CellHeight: 20,
		},
	}
}

// DefaultFireworksConfig returns the built-in fireworks configuration.
func DefaultFireworksConfig() FireworksConfig {
	return FireworksConfig{
		Spawn: FireworksSpawn{
			IntervalMs: 800,
			TopMargin:  50,
			Band:       0.3,
		},
		Rocket: FireworksRocket{
			MinSpeed:    2,
			MaxSpeed:    5,
			TrailLength: 10,
			Radius:      3,
			TrailRadius: 2,
			TrailColor:  "#ffffff",
			TrailAlpha:  0.5,
		},
		Particle: FireworksParticle{
			MinCount:   50,
			MaxCount:   100,
			MinSpeed:   2,
			MaxSpeed:   8,
			MinDecay:   0.015,
			MaxDecay:   0.025,
			MinSize:    2,
			MaxSize:    4,
			Gravity:    0.1,
			Resistance: 0.97,
		},
		Fade: 0.1,
		Arena: ArenaScale{
			CellWidth:  8,
			CellHeight: 16,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "reflex":
		return defaultReflexYAML
	case "fireworks":
		return defaultFireworksYAML
	default:
		return nil
	}
}
