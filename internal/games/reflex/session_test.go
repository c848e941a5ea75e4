package reflex

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/reflex-arcade/internal/config"
	"github.com/vovakirdan/reflex-arcade/internal/core"
	"github.com/vovakirdan/reflex-arcade/internal/sched"
	"github.com/vovakirdan/reflex-arcade/internal/storage"
)

type recorder struct {
	events []Event
}

func (r *recorder) Handle(ev Event) {
	r.events = append(r.events, ev)
}

func (r *recorder) count(match func(Event) bool) int {
	n := 0
	for _, ev := range r.events {
		if match(ev) {
			n++
		}
	}
	return n
}

type failingStore struct{}

func (failingStore) Get(string) (string, bool, error) { return "", false, errors.New("disk on fire") }
func (failingStore) Set(string, string) error         { return errors.New("disk on fire") }

type fixture struct {
	clock   *sched.Scheduler
	store   *storage.Memory
	events  *recorder
	session *Session
}

func newFixture(t *testing.T, seed int64) *fixture {
	t.Helper()
	f := &fixture{
		clock:  sched.New(),
		store:  storage.NewMemory(),
		events: &recorder{},
	}
	f.session = NewSession(Options{
		Config: config.DefaultReflexConfig(),
		Clock:  f.clock,
		Rand:   rand.New(rand.NewSource(seed)),
		Store:  f.store,
		Sink:   f.events,
	})
	f.session.Resize(800, 600)
	return f
}

// hit clicks the centre of the target and waits out the grace delay.
func (f *fixture) hit(t *testing.T) {
	t.Helper()
	rect, visible := f.session.Target()
	if !visible {
		t.Fatal("target not visible")
	}
	before := f.session.Score()
	f.session.Click(rect.Center())
	if f.session.Score() != before+1 {
		t.Fatalf("click on target did not score: %d -> %d", before, f.session.Score())
	}
	f.clock.Advance(200 * time.Millisecond)
}

func TestStartResetsState(t *testing.T) {
	f := newFixture(t, 1)
	s := f.session

	if s.Phase() != PhaseInactive {
		t.Fatalf("new session phase = %v, expected inactive", s.Phase())
	}

	s.Start()

	if s.Phase() != PhaseRunning {
		t.Errorf("phase = %v, expected running", s.Phase())
	}
	if s.Score() != 0 || s.Level() != 1 || s.MaxLevel() != 1 {
		t.Errorf("score/level/max = %d/%d/%d", s.Score(), s.Level(), s.MaxLevel())
	}
	if s.TimeLeft() != 30 || s.Misses() != 5 {
		t.Errorf("time/misses = %d/%d, expected 30/5", s.TimeLeft(), s.Misses())
	}
	if s.TargetSpeed() != 2000*time.Millisecond || s.TargetSize() != 70 {
		t.Errorf("speed/size = %v/%d", s.TargetSpeed(), s.TargetSize())
	}
	if rect, visible := s.Target(); !visible || !s.Arena().Encloses(rect) {
		t.Errorf("target %+v (visible %v) not inside arena", rect, visible)
	}

	seen := make(map[Stat]bool)
	for _, ev := range f.events.events {
		if sc, ok := ev.(StatChanged); ok {
			seen[sc.Stat] = true
		}
	}
	for _, stat := range []Stat{StatScore, StatLevel, StatTime, StatMisses, StatTargetSize, StatTargetSpeed, StatHighScore} {
		if !seen[stat] {
			t.Errorf("Start did not sync %v", stat)
		}
	}
}

func TestHitIncrementsScoreAndHidesTarget(t *testing.T) {
	f := newFixture(t, 2)
	s := f.session
	s.Start()

	rect, _ := s.Target()
	s.Click(rect.Center())

	if s.Score() != 1 {
		t.Errorf("score = %d, expected 1", s.Score())
	}
	if s.Interactive() {
		t.Error("target should not be interactive during the grace delay")
	}

	// Clicks during the grace delay count as neither hit nor miss.
	s.Click(rect.Center())
	s.Click(core.Point{X: -5, Y: -5})
	if s.Score() != 1 || s.Misses() != 5 {
		t.Errorf("grace clicks counted: score %d, misses %d", s.Score(), s.Misses())
	}

	f.clock.Advance(199 * time.Millisecond)
	if _, visible := s.Target(); visible {
		t.Error("target reappeared before the grace delay")
	}
	f.clock.Advance(time.Millisecond)
	if _, visible := s.Target(); !visible {
		t.Error("target did not reappear after the grace delay")
	}
}

func TestTenHitsLevelUp(t *testing.T) {
	f := newFixture(t, 3)
	s := f.session
	s.Start()

	for range 10 {
		f.hit(t)
	}

	if s.Score() != 10 || s.Level() != 2 || s.MaxLevel() != 2 {
		t.Errorf("score/level/max = %d/%d/%d, expected 10/2/2", s.Score(), s.Level(), s.MaxLevel())
	}
	if s.TargetSpeed() != 1800*time.Millisecond {
		t.Errorf("speed = %v, expected 1.8s", s.TargetSpeed())
	}
	if s.TargetSize() != 65 {
		t.Errorf("size = %d, expected 65", s.TargetSize())
	}
	// Two seconds elapsed, six bonus seconds granted.
	if s.TimeLeft() != 34 {
		t.Errorf("time = %d, expected 34", s.TimeLeft())
	}
	if n := f.events.count(func(ev Event) bool { _, ok := ev.(LevelUpEvent); return ok }); n != 1 {
		t.Errorf("level-up events = %d, expected 1", n)
	}
}

func TestMissesEndRound(t *testing.T) {
	f := newFixture(t, 4)
	s := f.session
	s.Start()

	for i := range 5 {
		s.Click(core.Point{X: -10, Y: -10})
		if i < 4 && s.Phase() != PhaseRunning {
			t.Fatalf("round ended after %d misses", i+1)
		}
	}

	if s.Phase() != PhaseEnded {
		t.Fatalf("phase = %v, expected ended", s.Phase())
	}
	if s.Reason() != ReasonOutOfLives {
		t.Errorf("reason = %q", s.Reason())
	}
	if s.Misses() != 0 {
		t.Errorf("misses = %d", s.Misses())
	}

	summaries := 0
	for _, ev := range f.events.events {
		if g, ok := ev.(GameOverEvent); ok {
			summaries++
			if g.Summary.Reason != ReasonOutOfLives || g.Summary.MaxLevel != 1 {
				t.Errorf("summary = %+v", g.Summary)
			}
		}
	}
	if summaries != 1 {
		t.Errorf("game over events = %d, expected 1", summaries)
	}

	// Input after the round is over is ignored.
	if s.RegisterMiss(core.Point{}) || s.RegisterHit(core.Point{}) {
		t.Error("input accepted after the round ended")
	}
}

func TestCountdownEndsRound(t *testing.T) {
	f := newFixture(t, 5)
	s := f.session
	s.Start()

	f.clock.Advance(29 * time.Second)
	if s.Phase() != PhaseRunning || s.TimeLeft() != 1 {
		t.Fatalf("after 29s: phase %v, time %d", s.Phase(), s.TimeLeft())
	}

	f.clock.Advance(time.Second)
	if s.Phase() != PhaseEnded || s.Reason() != ReasonTimeUp {
		t.Errorf("phase %v, reason %q; expected ended by timeout", s.Phase(), s.Reason())
	}
	if s.TimeLeft() != 0 {
		t.Errorf("time = %d", s.TimeLeft())
	}

	f.clock.Advance(10 * time.Second)
	if s.TimeLeft() != 0 {
		t.Error("countdown kept running after the round ended")
	}
}

func TestHighScorePersisted(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		hits     int
		expected string
		beaten   bool
	}{
		{"beats stored score", "7", 12, "12", true},
		{"keeps better stored score", "50", 3, "50", false},
		{"first score", "", 2, "2", true},
		{"malformed stored score", "lots", 1, "1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := sched.New()
			store := storage.NewMemory()
			if tt.stored != "" {
				store.Set(HighScoreKey, tt.stored)
			}
			s := NewSession(Options{
				Config: config.DefaultReflexConfig(),
				Clock:  clock,
				Rand:   rand.New(rand.NewSource(6)),
				Store:  store,
			})
			s.Resize(800, 600)
			f := &fixture{clock: clock, store: store, session: s}

			s.Start()
			for range tt.hits {
				f.hit(t)
			}
			s.End("done")

			got, _, _ := store.Get(HighScoreKey)
			if got != tt.expected {
				t.Errorf("stored = %q, expected %q", got, tt.expected)
			}
			if s.Summary().NewHighScore != tt.beaten {
				t.Errorf("NewHighScore = %v, expected %v", s.Summary().NewHighScore, tt.beaten)
			}
		})
	}
}

func TestStoreErrorsAreTolerated(t *testing.T) {
	s := NewSession(Options{
		Config: config.DefaultReflexConfig(),
		Clock:  sched.New(),
		Rand:   rand.New(rand.NewSource(7)),
		Store:  failingStore{},
	})
	if s.HighScore() != 0 {
		t.Errorf("high score = %d, expected 0", s.HighScore())
	}
	s.Resize(800, 600)
	s.Start()
	s.End("done")
	if s.Phase() != PhaseEnded {
		t.Error("End should complete even when saving fails")
	}
}

func TestPauseDiscardsTicks(t *testing.T) {
	f := newFixture(t, 8)
	s := f.session
	s.Start()

	f.clock.Advance(time.Second)
	s.TogglePause()
	if s.Phase() != PhasePaused {
		t.Fatalf("phase = %v, expected paused", s.Phase())
	}

	rect, _ := s.Target()
	f.clock.Advance(10 * time.Second)

	if s.TimeLeft() != 29 {
		t.Errorf("time moved while paused: %d", s.TimeLeft())
	}
	if now, _ := s.Target(); now != rect {
		t.Error("target moved while paused")
	}
	if s.RegisterHit(rect.Center()) || s.RegisterMiss(core.Point{}) {
		t.Error("input accepted while paused")
	}

	s.TogglePause()
	f.clock.Advance(time.Second)
	if s.TimeLeft() != 28 {
		t.Errorf("time after resume = %d, expected 28 (ticks must not be queued)", s.TimeLeft())
	}
}

func TestPauseDuringHitGrace(t *testing.T) {
	f := newFixture(t, 14)
	s := f.session
	s.Start()

	rect, _ := s.Target()
	s.Click(rect.Center())
	s.TogglePause()

	f.clock.Advance(300 * time.Millisecond)
	if now, visible := s.Target(); visible || now != rect {
		t.Fatalf("paused: visible=%v moved=%v, expected hidden and unmoved", visible, now != rect)
	}
	if s.Interactive() {
		t.Error("hidden target accepted hits while paused")
	}

	s.TogglePause()
	if _, visible := s.Target(); !visible {
		t.Error("target should reappear on resume once the grace delay has passed")
	}
}

func TestResumeInsideHitGrace(t *testing.T) {
	f := newFixture(t, 15)
	s := f.session
	s.Start()

	rect, _ := s.Target()
	s.Click(rect.Center())
	f.clock.Advance(50 * time.Millisecond)
	s.TogglePause()
	s.TogglePause()

	if _, visible := s.Target(); visible {
		t.Fatal("target revealed before its grace delay ended")
	}
	f.clock.Advance(150 * time.Millisecond)
	if _, visible := s.Target(); !visible {
		t.Error("target still hidden after the grace delay")
	}
}

func TestTogglePauseOutOfPhase(t *testing.T) {
	f := newFixture(t, 9)
	s := f.session

	s.TogglePause()
	if s.Phase() != PhaseInactive {
		t.Errorf("pause from inactive changed phase to %v", s.Phase())
	}

	s.Start()
	s.End("stop")
	s.TogglePause()
	if s.Phase() != PhaseEnded {
		t.Errorf("pause from ended changed phase to %v", s.Phase())
	}
}

func TestEndOnlyOnce(t *testing.T) {
	f := newFixture(t, 10)
	s := f.session

	s.End("never started")
	if s.Phase() != PhaseInactive {
		t.Fatalf("End from inactive changed phase to %v", s.Phase())
	}

	s.Start()
	s.TogglePause()
	s.End("first")
	s.End("second")

	if s.Reason() != "first" {
		t.Errorf("reason = %q, expected first", s.Reason())
	}
	if n := f.events.count(func(ev Event) bool { _, ok := ev.(GameOverEvent); return ok }); n != 1 {
		t.Errorf("game over events = %d, expected 1", n)
	}
}

func TestStaleGraceAfterRestart(t *testing.T) {
	f := newFixture(t, 11)
	s := f.session
	s.Start()

	rect, _ := s.Target()
	s.Click(rect.Center())
	s.End("quit")
	s.Start()

	fresh, visible := s.Target()
	if !visible {
		t.Fatal("target hidden after restart")
	}

	f.clock.Advance(200 * time.Millisecond)
	if now, _ := s.Target(); now != fresh {
		t.Error("grace callback from the previous round moved the target")
	}
}

func TestRepositionTask(t *testing.T) {
	f := newFixture(t, 12)
	s := f.session
	s.Start()

	moves := func() int {
		return f.events.count(func(ev Event) bool { _, ok := ev.(TargetMoved); return ok })
	}
	start := moves()

	f.clock.Advance(2 * time.Second)
	if moves() != start+1 {
		t.Errorf("expected one automatic move after 2s, got %d", moves()-start)
	}
	if rect, _ := s.Target(); !s.Arena().Encloses(rect) {
		t.Errorf("target %+v left the arena", rect)
	}
}

func TestResize(t *testing.T) {
	f := newFixture(t, 13)
	s := f.session
	s.Start()

	s.Resize(100, 100)
	rect, _ := s.Target()
	if !s.Arena().Encloses(rect) {
		t.Errorf("target %+v outside resized arena", rect)
	}

	s.End("stop")
	s.Resize(10, 10)
	if now, _ := s.Target(); now != rect {
		t.Error("target moved on resize after the round ended")
	}
}

func TestIdle(t *testing.T) {
	f := newFixture(t, 16)
	s := f.session

	steps := []struct {
		name string
		do   func()
		want bool
	}{
		{"inactive", func() {}, true},
		{"running", s.Start, false},
		{"paused", s.TogglePause, false},
		{"ended", func() { s.End(ReasonTimeUp) }, true},
	}
	for _, st := range steps {
		st.do()
		if got := s.Idle(); got != st.want {
			t.Errorf("%s: Idle() = %v, want %v", st.name, got, st.want)
		}
	}
}
