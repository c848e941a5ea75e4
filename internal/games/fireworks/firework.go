package fireworks

import (
	"image/color"
	"math"
	"math/rand"
	"slices"

	"github.com/vovakirdan/reflex-arcade/internal/config"
)

// Firework is a rocket that climbs to a burst height and then owns the
// particles of its explosion.
type Firework struct {
	Pos       Vec
	TargetY   float64 // Burst height; the rocket explodes once Pos.Y reaches it
	Speed     float64 // Pixels climbed per advance
	Trail     []Vec   // Past positions, oldest first
	Exploded  bool
	Particles []Particle
	Color     color.NRGBA

	trailColor color.NRGBA
	rocket     config.FireworksRocket
	particle   config.FireworksParticle
	rng        *rand.Rand
}

// NewFirework creates a rocket at start heading up to targetY.
func NewFirework(cfg config.FireworksConfig, rng *rand.Rand, start Vec, targetY float64) *Firework {
	return &Firework{
		Pos:        start,
		TargetY:    targetY,
		Speed:      uniform(rng, cfg.Rocket.MinSpeed, cfg.Rocket.MaxSpeed),
		Trail:      make([]Vec, 0, cfg.Rocket.TrailLength+1),
		Color:      RandomColor(rng),
		trailColor: ParseColor(cfg.Rocket.TrailColor),
		rocket:     cfg.Rocket,
		particle:   cfg.Particle,
		rng:        rng,
	}
}

// Advance moves the rocket one step, or its particles once exploded.
func (f *Firework) Advance() {
	if f.Exploded {
		for i := range f.Particles {
			f.Particles[i].Advance(f.particle.Gravity, f.particle.Resistance)
		}
		f.Particles = slices.DeleteFunc(f.Particles, func(p Particle) bool { return !p.Alive() })
		return
	}

	f.Trail = append(f.Trail, f.Pos)
	if n := len(f.Trail) - f.rocket.TrailLength; n > 0 {
		f.Trail = slices.Delete(f.Trail, 0, n)
	}
	f.Pos.Y -= f.Speed

	if f.Pos.Y <= f.TargetY {
		f.explode()
	}
}

func (f *Firework) explode() {
	f.Exploded = true
	f.Trail = f.Trail[:0]

	pc := f.particle
	n := pc.MinCount
	if pc.MaxCount > pc.MinCount {
		n += f.rng.Intn(pc.MaxCount - pc.MinCount + 1)
	}

	f.Particles = make([]Particle, n)
	for i := range f.Particles {
		angle := f.rng.Float64() * 2 * math.Pi
		speed := uniform(f.rng, pc.MinSpeed, pc.MaxSpeed)
		f.Particles[i] = Particle{
			Pos:   f.Pos,
			Vel:   Vec{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
			Alpha: 1,
			Decay: uniform(f.rng, pc.MinDecay, pc.MaxDecay),
			Size:  uniform(f.rng, pc.MinSize, pc.MaxSize),
			Color: f.Color,
		}
	}
}

// Draw paints the rocket and its trail, or the particles once exploded.
func (f *Firework) Draw(s Surface) {
	if f.Exploded {
		for i := range f.Particles {
			f.Particles[i].Draw(s)
		}
		return
	}

	// Alpha ramps from 0 at the oldest point toward TrailAlpha.
	for i, p := range f.Trail {
		a := float64(i) / float64(len(f.Trail)) * f.rocket.TrailAlpha
		s.FillCircle(p.X, p.Y, f.rocket.TrailRadius, withAlpha(f.trailColor, a))
	}
	s.FillCircle(f.Pos.X, f.Pos.Y, f.rocket.Radius, f.Color)
}

// IsDone reports whether the firework has exploded and every particle faded.
func (f *Firework) IsDone() bool {
	return f.Exploded && len(f.Particles) == 0
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
