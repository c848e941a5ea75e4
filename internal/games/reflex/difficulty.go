package reflex

import "github.com/vovakirdan/reflex-arcade/internal/config"

// Params are the session values a level-up adjusts.
type Params struct {
	SpeedMs int // Auto-reposition interval
	Size    int // Target edge length in pixels
	Misses  int // Misses remaining
}

// Curve maps a level to the next difficulty step. It holds no state.
type Curve struct {
	cfg config.ReflexDifficulty
}

// NewCurve creates a curve from difficulty settings.
func NewCurve(cfg config.ReflexDifficulty) Curve {
	return Curve{cfg: cfg}
}

// Next returns the parameters for a session that has just reached level,
// along with the seconds of bonus time the level grants.
func (c Curve) Next(level int, p Params) (Params, int) {
	next := Params{
		SpeedMs: max(c.cfg.MinSpeedMs, p.SpeedMs-c.cfg.SpeedStepMs),
		Size:    max(c.cfg.MinSize, p.Size-c.cfg.SizeStep),
		Misses:  p.Misses,
	}

	bonus := c.cfg.BaseBonusSecs
	if c.cfg.BonusDecayEvery > 0 {
		bonus -= level / c.cfg.BonusDecayEvery
	}
	bonus = max(c.cfg.MinBonusSecs, bonus)

	if c.cfg.LivesCutEvery > 0 && level%c.cfg.LivesCutEvery == 0 && level > c.cfg.LivesCutAfter {
		next.Misses = max(c.cfg.MinLives, p.Misses-1)
	}

	return next, bonus
}
