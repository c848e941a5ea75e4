package reflex

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/reflex-arcade/internal/config"
	"github.com/vovakirdan/reflex-arcade/internal/core"
	"github.com/vovakirdan/reflex-arcade/internal/sched"
)

func newTestEffects() (*Effects, *sched.Scheduler) {
	clock := sched.New()
	fx := NewEffects(config.DefaultReflexConfig().Effects, clock, rand.New(rand.NewSource(1)))
	return fx, clock
}

func TestHitEffects(t *testing.T) {
	fx, clock := newTestEffects()
	at := core.Point{X: 100, Y: 100}

	fx.Handle(HitEvent{At: at, Score: 1})

	if !fx.Flashing() {
		t.Error("hit should start a flash")
	}
	sparks := fx.Sparks()
	if len(sparks) != 12 {
		t.Fatalf("sparks = %d, expected 12", len(sparks))
	}
	for _, s := range sparks {
		if s.Pos != at || s.Life != 1 {
			t.Fatalf("fresh spark %+v should sit at the origin", s)
		}
	}

	clock.Advance(400 * time.Millisecond)
	if fx.Flashing() {
		t.Error("flash should end after 200ms")
	}
	for _, s := range fx.Sparks() {
		dx, dy := s.Pos.X-at.X, s.Pos.Y-at.Y
		if d2 := dx*dx + dy*dy; d2 > 61*61 {
			t.Errorf("spark at distance^2 %d, expected at most half of 120px", d2)
		}
	}

	clock.Advance(400 * time.Millisecond)
	if len(fx.Sparks()) != 0 {
		t.Error("burst should be gone after 800ms")
	}
}

func TestMissEffects(t *testing.T) {
	fx, clock := newTestEffects()

	fx.Handle(MissEvent{At: core.Point{X: 5, Y: 6}, Remaining: 4})
	fx.Handle(MissEvent{At: core.Point{X: 7, Y: 8}, Remaining: 3})

	if len(fx.Markers()) != 2 {
		t.Fatalf("markers = %d, expected 2", len(fx.Markers()))
	}
	if fx.ShakeOffset() == 0 {
		t.Error("miss should shake the arena")
	}

	clock.Advance(300 * time.Millisecond)
	if fx.ShakeOffset() != 0 {
		t.Error("shake should stop after 300ms")
	}

	clock.Advance(700 * time.Millisecond)
	if len(fx.Markers()) != 0 {
		t.Errorf("markers = %d after 1s, expected 0", len(fx.Markers()))
	}
}

func TestLevelBanner(t *testing.T) {
	fx, clock := newTestEffects()

	fx.Handle(LevelUpEvent{Level: 3, Bonus: 5})

	text, alpha, ok := fx.Banner()
	if !ok || text != "Level 3!" || alpha != 1 {
		t.Fatalf("Banner() = %q, %v, %v", text, alpha, ok)
	}

	clock.Advance(1450 * time.Millisecond)
	_, alpha, ok = fx.Banner()
	if !ok || alpha <= 0 || alpha >= 1 {
		t.Errorf("banner should be fading: alpha %v, ok %v", alpha, ok)
	}

	clock.Advance(250 * time.Millisecond)
	if _, _, ok := fx.Banner(); ok {
		t.Error("banner should be gone after 1.7s")
	}
}

func TestEffectsResetToleratesPendingTimers(t *testing.T) {
	fx, clock := newTestEffects()

	fx.Handle(HitEvent{At: core.Point{}})
	fx.Handle(MissEvent{At: core.Point{}})
	fx.Handle(LevelUpEvent{Level: 2})
	fx.Reset()

	fx.Handle(MissEvent{At: core.Point{X: 1}})
	clock.Advance(900 * time.Millisecond)

	if len(fx.Markers()) != 1 {
		t.Errorf("markers = %d, the new marker should survive stale timers", len(fx.Markers()))
	}

	clock.Advance(5 * time.Second)
	if len(fx.Markers()) != 0 || len(fx.Sparks()) != 0 {
		t.Error("effects left behind")
	}
}

func TestHUDSync(t *testing.T) {
	f := newFixture(t, 30)
	hud := NewHUD(config.DefaultReflexConfig().Effects)
	f.session.sink = Fanout{f.events, hud}
	f.store.Set(HighScoreKey, "1")
	f.session.highScore = 1

	f.session.Start()
	if hud.Score != 0 || hud.Time != 30 || hud.Misses != 5 || hud.HighScore != 1 {
		t.Errorf("hud after start = %+v", hud)
	}
	if hud.TimeLow() || hud.LivesLow() {
		t.Error("no warnings expected at start")
	}

	f.hit(t)
	f.hit(t)
	f.session.RegisterMiss(core.Point{})
	f.session.RegisterMiss(core.Point{})
	f.session.RegisterMiss(core.Point{})
	if hud.Score != 2 || hud.Misses != 2 || !hud.LivesLow() {
		t.Errorf("hud after play = %+v", hud)
	}

	f.clock.Advance(20 * time.Second)
	if !hud.TimeLow() {
		t.Errorf("timer at %d should warn", hud.Time)
	}

	f.session.End("stop")
	if hud.Phase != PhaseEnded || hud.Summary == nil || hud.Summary.FinalScore != 2 {
		t.Errorf("hud after end = %+v", hud)
	}
	if !hud.Beaten || hud.HighScore != 2 {
		t.Errorf("beaten/high = %v/%d, expected true/2", hud.Beaten, hud.HighScore)
	}

	f.session.Start()
	if hud.Summary != nil || hud.Beaten {
		t.Error("restart should clear the summary")
	}
}
