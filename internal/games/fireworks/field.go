package fireworks

import (
	"image/color"
	"math/rand"
	"slices"
	"time"

	"github.com/vovakirdan/reflex-arcade/internal/config"
)

// Field owns every firework on screen and launches new ones.
type Field struct {
	cfg       config.FireworksConfig
	rng       *rand.Rand
	fireworks []*Firework

	sinceSpawn time.Duration
	w, h       float64
}

// NewField creates an empty field. The first Tick launches a rocket.
func NewField(cfg config.FireworksConfig, rng *rand.Rand) *Field {
	return &Field{
		cfg:        cfg,
		rng:        rng,
		sinceSpawn: spawnInterval(cfg),
	}
}

func spawnInterval(cfg config.FireworksConfig) time.Duration {
	return time.Duration(cfg.Spawn.IntervalMs) * time.Millisecond
}

// SetBounds records the drawing area used by SpawnAt before the first Tick.
func (f *Field) SetBounds(w, h float64) {
	f.w, f.h = w, h
}

// Tick fades the previous frame, launches a rocket when the spawn interval
// has passed, then advances, draws and culls every firework.
func (f *Field) Tick(dt time.Duration, s Surface) {
	f.w, f.h = s.Size()

	s.FillRect(0, 0, f.w, f.h, withAlpha(color.NRGBA{A: 255}, f.cfg.Fade))

	f.sinceSpawn += dt
	if f.sinceSpawn >= spawnInterval(f.cfg) {
		f.sinceSpawn = 0
		f.spawnRandom()
	}

	for _, fw := range f.fireworks {
		fw.Advance()
		fw.Draw(s)
	}
	f.fireworks = slices.DeleteFunc(f.fireworks, (*Firework).IsDone)
}

func (f *Field) spawnRandom() {
	x := f.rng.Float64() * f.w
	y := f.cfg.Spawn.TopMargin + f.rng.Float64()*f.h*f.cfg.Spawn.Band
	f.SpawnAt(x, y)
}

// SpawnAt launches a rocket from the bottom edge that bursts at height y.
// It does not affect the automatic launch timer.
func (f *Field) SpawnAt(x, y float64) {
	f.fireworks = append(f.fireworks, NewFirework(f.cfg, f.rng, Vec{X: x, Y: f.h}, y))
}

// Fireworks returns the fireworks currently in flight or bursting.
func (f *Field) Fireworks() []*Firework {
	return f.fireworks
}

// Clear removes every firework.
func (f *Field) Clear() {
	f.fireworks = nil
}
