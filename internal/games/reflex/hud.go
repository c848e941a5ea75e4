package reflex

import "github.com/vovakirdan/reflex-arcade/internal/config"

// HUD mirrors the session stats a front-end displays. It is kept current
// purely from events, so a renderer never reads the session directly.
type HUD struct {
	cfg config.ReflexEffects

	Score       int
	Level       int
	Time        int
	Misses      int
	TargetSize  int
	TargetSpeed int
	HighScore   int
	Phase       Phase
	Beaten      bool     // High score was raised this round
	Summary     *Summary // Set when the round is over
}

// NewHUD creates a HUD using the warning thresholds in cfg.
func NewHUD(cfg config.ReflexEffects) *HUD {
	return &HUD{cfg: cfg, Level: 1}
}

// Handle applies ev to the displayed values.
func (h *HUD) Handle(ev Event) {
	switch ev := ev.(type) {
	case StatChanged:
		h.apply(ev.Stat, ev.Value)
	case PhaseChanged:
		h.Phase = ev.Phase
		if ev.Phase == PhaseRunning {
			h.Summary = nil
			h.Beaten = false
		}
	case GameOverEvent:
		s := ev.Summary
		h.Summary = &s
	}
}

func (h *HUD) apply(stat Stat, v int) {
	switch stat {
	case StatScore:
		h.Score = v
	case StatLevel:
		h.Level = v
	case StatTime:
		h.Time = v
	case StatMisses:
		h.Misses = v
	case StatTargetSize:
		h.TargetSize = v
	case StatTargetSpeed:
		h.TargetSpeed = v
	case StatHighScore:
		if h.Phase == PhaseEnded && v > h.HighScore {
			h.Beaten = true
		}
		h.HighScore = v
	}
}

// TimeLow reports whether the timer should be drawn as a warning.
func (h *HUD) TimeLow() bool {
	return h.Phase != PhaseInactive && h.Time <= h.cfg.LowTimeSecs
}

// LivesLow reports whether the lives counter should be drawn as a warning.
func (h *HUD) LivesLow() bool {
	return h.Phase != PhaseInactive && h.Misses <= h.cfg.LowLivesWarn
}
