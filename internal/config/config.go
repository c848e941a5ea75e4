// Package config provides YAML-based game configuration loading and
// difficulty presets for the arcade.
package config

// ReflexConfig contains all configuration for the reflex target game.
type ReflexConfig struct {
	Session    ReflexSession    `yaml:"session"`
	Difficulty ReflexDifficulty `yaml:"difficulty"`
	Effects    ReflexEffects    `yaml:"effects"`
	Arena      ArenaScale       `yaml:"arena"`
}

// ReflexSession defines the values a round starts from.
type ReflexSession struct {
	DurationSecs   int `yaml:"duration_secs"`
	Lives          int `yaml:"lives"`
	TargetSpeedMs  int `yaml:"target_speed_ms"` // Delay between automatic target moves
	TargetSize     int `yaml:"target_size"`
	PointsPerLevel int `yaml:"points_per_level"`
	CountdownMs    int `yaml:"countdown_ms"`
	HitGraceMs     int `yaml:"hit_grace_ms"` // Target stays hidden this long after a hit
}

// ReflexDifficulty defines how each level-up tightens the round.
type ReflexDifficulty struct {
	SpeedStepMs     int `yaml:"speed_step_ms"`
	MinSpeedMs      int `yaml:"min_speed_ms"`
	SizeStep        int `yaml:"size_step"`
	MinSize         int `yaml:"min_size"`
	BaseBonusSecs   int `yaml:"base_bonus_secs"`
	MinBonusSecs    int `yaml:"min_bonus_secs"`
	BonusDecayEvery int `yaml:"bonus_decay_every"` // Bonus shrinks by 1 every N levels
	LivesCutEvery   int `yaml:"lives_cut_every"`   // Lose a life on every Nth level...
	LivesCutAfter   int `yaml:"lives_cut_after"`   // ...strictly above this level
	MinLives        int `yaml:"min_lives"`
}

// ReflexEffects defines lifetimes of transient visual effects.
type ReflexEffects struct {
	HitFlashMs     int     `yaml:"hit_flash_ms"`
	BurstParticles int     `yaml:"burst_particles"`
	BurstMs        int     `yaml:"burst_ms"`
	BurstMinSpeed  float64 `yaml:"burst_min_speed"` // Pixels travelled over the burst lifetime
	BurstMaxSpeed  float64 `yaml:"burst_max_speed"`
	MissMarkerMs   int     `yaml:"miss_marker_ms"`
	ShakeMs        int     `yaml:"shake_ms"`
	BannerMs       int     `yaml:"banner_ms"`
	BannerFadeMs   int     `yaml:"banner_fade_ms"`
	LowTimeSecs    int     `yaml:"low_time_secs"`  // Timer turns red at or below this
	LowLivesWarn   int     `yaml:"low_lives_warn"` // Lives flash at or below this
}

// ArenaScale maps terminal cells to the pixel units games simulate in.
type ArenaScale struct {
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
}

// FireworksConfig contains all configuration for the fireworks display.
type FireworksConfig struct {
	Spawn    FireworksSpawn    `yaml:"spawn"`
	Rocket   FireworksRocket   `yaml:"rocket"`
	Particle FireworksParticle `yaml:"particle"`
	Fade     float64           `yaml:"fade"` // Alpha of the black wash applied every frame
	Arena    ArenaScale        `yaml:"arena"`
}

// FireworksSpawn defines automatic launches.
type FireworksSpawn struct {
	IntervalMs int     `yaml:"interval_ms"`
	TopMargin  float64 `yaml:"top_margin"` // Minimum burst height from the top edge
	Band       float64 `yaml:"band"`       // Fraction of the height bursts are spread over
}

// FireworksRocket defines the ascending shell.
type FireworksRocket struct {
	MinSpeed    float64 `yaml:"min_speed"`
	MaxSpeed    float64 `yaml:"max_speed"`
	TrailLength int     `yaml:"trail_length"`
	Radius      float64 `yaml:"radius"`
	TrailRadius float64 `yaml:"trail_radius"`
	TrailColor  string  `yaml:"trail_color"` // Hex, e.g. "#ffffff"
	TrailAlpha  float64 `yaml:"trail_alpha"` // Trail opacity scale; point i of n gets i/n of it
}

// FireworksParticle defines the burst particles.
type FireworksParticle struct {
	MinCount   int     `yaml:"min_count"`
	MaxCount   int     `yaml:"max_count"`
	MinSpeed   float64 `yaml:"min_speed"`
	MaxSpeed   float64 `yaml:"max_speed"`
	MinDecay   float64 `yaml:"min_decay"`
	MaxDecay   float64 `yaml:"max_decay"`
	MinSize    float64 `yaml:"min_size"`
	MaxSize    float64 `yaml:"max_size"`
	Gravity    float64 `yaml:"gravity"`
	Resistance float64 `yaml:"resistance"`
}
