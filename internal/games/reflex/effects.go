package reflex

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/vovakirdan/reflex-arcade/internal/config"
	"github.com/vovakirdan/reflex-arcade/internal/core"
	"github.com/vovakirdan/reflex-arcade/internal/sched"
)

// Spark is one particle of a hit burst at the current clock time.
type Spark struct {
	Pos  core.Point
	Life float64 // 1 when spawned, 0 when gone
}

type burst struct {
	origin core.Point
	born   time.Duration
	angles []float64
	speeds []float64
}

type marker struct {
	at core.Point
}

type banner struct {
	text string
	born time.Duration
}

// Effects tracks short-lived visuals triggered by session events. Every
// effect removes itself with a one-shot timer; timers are never cancelled,
// so removal tolerates effects already cleared by Reset.
type Effects struct {
	cfg   config.ReflexEffects
	clock *sched.Scheduler
	rng   *rand.Rand

	flashUntil time.Duration
	shakeUntil time.Duration
	bursts     []*burst
	markers    []*marker
	banner     *banner
}

// NewEffects creates an effect tracker on clock.
func NewEffects(cfg config.ReflexEffects, clock *sched.Scheduler, rng *rand.Rand) *Effects {
	return &Effects{cfg: cfg, clock: clock, rng: rng}
}

// Handle reacts to hits, misses and level-ups.
func (e *Effects) Handle(ev Event) {
	switch ev := ev.(type) {
	case HitEvent:
		e.flash()
		e.burst(ev.At)
	case MissEvent:
		e.mark(ev.At)
		e.shake()
	case LevelUpEvent:
		e.announce(fmt.Sprintf("Level %d!", ev.Level))
	}
}

// Reset drops every active effect.
func (e *Effects) Reset() {
	e.flashUntil = 0
	e.shakeUntil = 0
	e.bursts = nil
	e.markers = nil
	e.banner = nil
}

func (e *Effects) flash() {
	e.flashUntil = e.clock.Now() + ms(e.cfg.HitFlashMs)
}

func (e *Effects) shake() {
	e.shakeUntil = e.clock.Now() + ms(e.cfg.ShakeMs)
}

func (e *Effects) burst(at core.Point) {
	n := max(0, e.cfg.BurstParticles)
	b := &burst{
		origin: at,
		born:   e.clock.Now(),
		angles: make([]float64, n),
		speeds: make([]float64, n),
	}
	spread := e.cfg.BurstMaxSpeed - e.cfg.BurstMinSpeed
	for i := range n {
		b.angles[i] = 2 * math.Pi * float64(i) / float64(n)
		b.speeds[i] = e.cfg.BurstMinSpeed + e.rng.Float64()*spread
	}
	e.bursts = append(e.bursts, b)
	e.clock.After(ms(e.cfg.BurstMs), func() {
		e.bursts = slices.DeleteFunc(e.bursts, func(x *burst) bool { return x == b })
	})
}

func (e *Effects) mark(at core.Point) {
	m := &marker{at: at}
	e.markers = append(e.markers, m)
	e.clock.After(ms(e.cfg.MissMarkerMs), func() {
		e.markers = slices.DeleteFunc(e.markers, func(x *marker) bool { return x == m })
	})
}

func (e *Effects) announce(text string) {
	b := &banner{text: text, born: e.clock.Now()}
	e.banner = b
	e.clock.After(ms(e.cfg.BannerMs+e.cfg.BannerFadeMs), func() {
		if e.banner == b {
			e.banner = nil
		}
	})
}

// Flashing reports whether the target hit flash is showing.
func (e *Effects) Flashing() bool {
	return e.clock.Now() < e.flashUntil
}

// ShakeOffset returns a horizontal jitter of -1, 0 or 1 units while the
// arena is shaking.
func (e *Effects) ShakeOffset() int {
	now := e.clock.Now()
	if now >= e.shakeUntil {
		return 0
	}
	if (now/(50*time.Millisecond))%2 == 0 {
		return 1
	}
	return -1
}

// Sparks returns the current burst particles.
func (e *Effects) Sparks() []Spark {
	if len(e.bursts) == 0 {
		return nil
	}
	now := e.clock.Now()
	life := ms(e.cfg.BurstMs)
	var out []Spark
	for _, b := range e.bursts {
		progress := 1.0
		if life > 0 {
			progress = core.ClampF(float64(now-b.born)/float64(life), 0, 1)
		}
		for i, a := range b.angles {
			d := b.speeds[i] * progress
			out = append(out, Spark{
				Pos: core.Point{
					X: b.origin.X + int(math.Round(math.Cos(a)*d)),
					Y: b.origin.Y + int(math.Round(math.Sin(a)*d)),
				},
				Life: 1 - progress,
			})
		}
	}
	return out
}

// Markers returns the positions of active miss markers.
func (e *Effects) Markers() []core.Point {
	out := make([]core.Point, 0, len(e.markers))
	for _, m := range e.markers {
		out = append(out, m.at)
	}
	return out
}

// Banner returns the level banner text and its opacity. ok is false when no
// banner is showing.
func (e *Effects) Banner() (text string, alpha float64, ok bool) {
	if e.banner == nil {
		return "", 0, false
	}
	age := e.clock.Now() - e.banner.born
	hold := ms(e.cfg.BannerMs)
	if age <= hold {
		return e.banner.text, 1, true
	}
	fade := ms(e.cfg.BannerFadeMs)
	if fade <= 0 || age >= hold+fade {
		return "", 0, false
	}
	return e.banner.text, 1 - float64(age-hold)/float64(fade), true
}
