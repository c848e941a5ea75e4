// Package reflex implements the click-the-target reflex game: a timed round
// with lives, a shrinking and speeding target, and a persisted high score.
//
// Session holds the rules and is driven entirely by calls from its host plus
// the tasks it schedules on a sched.Scheduler. Game adapts a Session to the
// registry.Game interface for terminal play.
package reflex

import (
	"io"
	"math/rand"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/reflex-arcade/internal/config"
	"github.com/vovakirdan/reflex-arcade/internal/core"
	"github.com/vovakirdan/reflex-arcade/internal/sched"
)

// HighScoreKey is the key the best score is stored under.
const HighScoreKey = "highScore"

// Reasons a round can end with.
const (
	ReasonTimeUp     = "Time's up!"
	ReasonOutOfLives = "Too many misses!"
)

// Phase is the lifecycle state of a session.
type Phase int

const (
	PhaseInactive Phase = iota
	PhaseRunning
	PhasePaused
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseInactive:
		return "inactive"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// KeyValue persists string values by key.
type KeyValue interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Options configure a new Session. Only Clock is required.
type Options struct {
	Config config.ReflexConfig
	Clock  *sched.Scheduler
	Rand   *rand.Rand
	Store  KeyValue
	Sink   Sink
	Logger *log.Logger
}

// Session is one player's game state.
type Session struct {
	cfg    config.ReflexConfig
	curve  Curve
	clock  *sched.Scheduler
	rng    *rand.Rand
	store  KeyValue
	sink   Sink
	logger *log.Logger

	arenaW, arenaH int

	phase     Phase
	score     int
	level     int
	maxLevel  int
	timeLeft  int
	misses    int
	speedMs   int
	size      int
	target    core.Rect
	hidden    bool
	highScore int
	newHigh   bool
	reason    string

	countdown  *sched.Task
	reposition *sched.Task
	grace      *sched.Task // Reveals the target after a hit

	// gen identifies the current round; delayed callbacks from an earlier
	// round compare against it and do nothing.
	gen uint64
}

// NewSession creates an inactive session and loads the stored high score.
func NewSession(opts Options) *Session {
	s := &Session{
		cfg:    opts.Config,
		curve:  NewCurve(opts.Config.Difficulty),
		clock:  opts.Clock,
		rng:    opts.Rand,
		store:  opts.Store,
		sink:   opts.Sink,
		logger: opts.Logger,
		level:  1,
	}
	if s.clock == nil {
		s.clock = sched.New()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	s.highScore = s.loadHighScore()
	return s
}

func (s *Session) loadHighScore() int {
	if s.store == nil {
		return 0
	}
	raw, ok, err := s.store.Get(HighScoreKey)
	if err != nil {
		s.logger.Warn("could not read high score", "err", err)
		return 0
	}
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		s.logger.Warn("ignoring malformed high score", "value", raw)
		return 0
	}
	return v
}

func (s *Session) emit(ev Event) {
	if s.sink != nil {
		s.sink.Handle(ev)
	}
}

func (s *Session) emitStat(stat Stat, v int) {
	s.emit(StatChanged{Stat: stat, Value: v})
}

// Start begins a new round from any phase.
func (s *Session) Start() {
	s.stopTasks()
	s.gen++

	sc := s.cfg.Session
	s.score = 0
	s.level = 1
	s.maxLevel = 1
	s.timeLeft = sc.DurationSecs
	s.misses = sc.Lives
	s.speedMs = sc.TargetSpeedMs
	s.size = sc.TargetSize
	s.hidden = false
	s.newHigh = false
	s.reason = ""

	s.setPhase(PhaseRunning)
	s.moveTarget()

	s.countdown = s.clock.Every(ms(sc.CountdownMs), s.onCountdown)
	s.reposition = s.clock.Every(ms(s.speedMs), s.onReposition)

	s.emitStat(StatScore, s.score)
	s.emitStat(StatLevel, s.level)
	s.emitStat(StatTime, s.timeLeft)
	s.emitStat(StatMisses, s.misses)
	s.emitStat(StatTargetSize, s.size)
	s.emitStat(StatTargetSpeed, s.speedMs)
	s.emitStat(StatHighScore, s.highScore)

	s.logger.Info("round started", "time", s.timeLeft, "lives", s.misses, "high_score", s.highScore)
}

// Click hit-tests p against the target and registers a hit or a miss.
// Clicks while the target is hidden between positions are ignored.
func (s *Session) Click(p core.Point) {
	if s.phase != PhaseRunning || s.hidden {
		return
	}
	if s.target.ContainsPoint(p) {
		s.RegisterHit(p)
		return
	}
	s.RegisterMiss(p)
}

// RegisterHit scores a hit at p. It reports whether the hit counted.
func (s *Session) RegisterHit(p core.Point) bool {
	if !s.Interactive() {
		return false
	}

	s.score++
	s.emitStat(StatScore, s.score)
	if per := s.cfg.Session.PointsPerLevel; per > 0 && s.score%per == 0 {
		s.levelUp()
	}
	s.emit(HitEvent{At: p, Score: s.score})

	s.hidden = true
	s.emit(TargetMoved{Rect: s.target, Visible: false})
	gen := s.gen
	s.grace = s.clock.After(ms(s.cfg.Session.HitGraceMs), func() {
		if gen != s.gen || s.phase != PhaseRunning {
			return
		}
		s.reveal()
	})
	return true
}

// RegisterMiss costs one life. It reports whether the miss counted.
func (s *Session) RegisterMiss(p core.Point) bool {
	if s.phase != PhaseRunning {
		return false
	}

	s.misses--
	s.emitStat(StatMisses, s.misses)
	s.emit(MissEvent{At: p, Remaining: s.misses})

	if s.misses <= 0 {
		s.End(ReasonOutOfLives)
	}
	return true
}

// TogglePause switches between Running and Paused. A target hidden by a
// hit stays hidden while paused and is placed again on resume once its
// grace delay has passed.
func (s *Session) TogglePause() {
	switch s.phase {
	case PhaseRunning:
		s.setPhase(PhasePaused)
	case PhasePaused:
		s.setPhase(PhaseRunning)
		if s.hidden && !s.grace.Active() {
			s.reveal()
		}
	}
}

func (s *Session) reveal() {
	s.hidden = false
	s.moveTarget()
}

// End finishes the round. It does nothing unless a round is in progress.
func (s *Session) End(reason string) {
	if s.phase != PhaseRunning && s.phase != PhasePaused {
		return
	}

	s.stopTasks()
	s.reason = reason
	s.setPhase(PhaseEnded)

	if s.score > s.highScore {
		s.highScore = s.score
		s.newHigh = true
		if s.store != nil {
			if err := s.store.Set(HighScoreKey, strconv.Itoa(s.highScore)); err != nil {
				s.logger.Warn("could not save high score", "err", err)
			}
		}
		s.emitStat(StatHighScore, s.highScore)
		s.logger.Info("new high score", "score", s.highScore)
	}

	s.logger.Info("round over", "reason", reason, "score", s.score, "max_level", s.maxLevel)
	s.emit(GameOverEvent{Summary: s.Summary()})
}

// Resize sets the arena size in pixels. During a round, a target left
// outside the new arena is placed again.
func (s *Session) Resize(w, h int) {
	s.arenaW, s.arenaH = max(0, w), max(0, h)
	if s.phase != PhaseRunning && s.phase != PhasePaused {
		return
	}
	if !s.Arena().Encloses(s.target) {
		s.moveTarget()
	}
}

func (s *Session) levelUp() {
	s.level++
	s.maxLevel = max(s.maxLevel, s.level)

	next, bonus := s.curve.Next(s.level, Params{SpeedMs: s.speedMs, Size: s.size, Misses: s.misses})
	s.speedMs = next.SpeedMs
	s.size = next.Size
	s.misses = next.Misses
	s.timeLeft += bonus
	s.target.W, s.target.H = s.size, s.size

	s.reposition.Cancel()
	s.reposition = s.clock.Every(ms(s.speedMs), s.onReposition)

	s.emitStat(StatLevel, s.level)
	s.emitStat(StatTime, s.timeLeft)
	s.emitStat(StatMisses, s.misses)
	s.emitStat(StatTargetSize, s.size)
	s.emitStat(StatTargetSpeed, s.speedMs)
	s.emit(LevelUpEvent{Level: s.level, Bonus: bonus})

	s.logger.Debug("level up", "level", s.level, "speed_ms", s.speedMs, "size", s.size, "bonus", bonus)
}

func (s *Session) onCountdown() {
	if s.phase != PhaseRunning {
		return
	}
	s.timeLeft--
	s.emitStat(StatTime, s.timeLeft)
	if s.timeLeft <= 0 {
		s.End(ReasonTimeUp)
	}
}

func (s *Session) onReposition() {
	if s.phase != PhaseRunning || s.hidden {
		return
	}
	s.moveTarget()
}

func (s *Session) moveTarget() {
	x, y := Place(s.rng, s.arenaW, s.arenaH, s.size, s.size)
	s.target = core.NewRect(x, y, s.size, s.size)
	s.emit(TargetMoved{Rect: s.target, Visible: !s.hidden})
}

func (s *Session) setPhase(p Phase) {
	if s.phase == p {
		return
	}
	s.phase = p
	s.emit(PhaseChanged{Phase: p})
}

func (s *Session) stopTasks() {
	s.countdown.Cancel()
	s.reposition.Cancel()
	s.countdown, s.reposition = nil, nil
}

// Idle reports whether no round is in progress, so a new one may start.
func (s *Session) Idle() bool {
	return s.phase == PhaseInactive || s.phase == PhaseEnded
}

// Interactive reports whether the target currently accepts hits.
func (s *Session) Interactive() bool {
	return s.phase == PhaseRunning && !s.hidden
}

// Summary returns the result of the current or last round.
func (s *Session) Summary() Summary {
	return Summary{
		FinalScore:   s.score,
		MaxLevel:     s.maxLevel,
		Reason:       s.reason,
		NewHighScore: s.newHigh,
	}
}

// Target returns the target rectangle and whether it is visible.
func (s *Session) Target() (core.Rect, bool) {
	return s.target, !s.hidden && s.phase != PhaseInactive
}

// Arena returns the playing area in pixels.
func (s *Session) Arena() core.Rect {
	return core.NewRect(0, 0, s.arenaW, s.arenaH)
}

func (s *Session) Phase() Phase               { return s.phase }
func (s *Session) Score() int                 { return s.score }
func (s *Session) Level() int                 { return s.level }
func (s *Session) MaxLevel() int              { return s.maxLevel }
func (s *Session) TimeLeft() int              { return s.timeLeft }
func (s *Session) Misses() int                { return s.misses }
func (s *Session) TargetSize() int            { return s.size }
func (s *Session) TargetSpeed() time.Duration { return ms(s.speedMs) }
func (s *Session) HighScore() int             { return s.highScore }
func (s *Session) Reason() string             { return s.reason }

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
