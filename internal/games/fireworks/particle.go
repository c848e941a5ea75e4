// Package fireworks implements a decorative particle display: rockets rise
// from the bottom edge, burst into particles that fall under gravity and
// fade, and new rockets launch on a timer or on click.
//
// Drawing goes through Surface, so the same field renders to a terminal
// Canvas or a window image.
package fireworks

import "image/color"

// Surface is a drawing target measured in pixels. Alpha is taken from the
// colour of each call.
type Surface interface {
	Size() (w, h float64)
	FillRect(x, y, w, h float64, c color.NRGBA)
	FillCircle(cx, cy, r float64, c color.NRGBA)
}

// Vec is a position or velocity in pixels.
type Vec struct {
	X, Y float64
}

// Particle is one spark of an exploded firework.
type Particle struct {
	Pos   Vec
	Vel   Vec
	Alpha float64 // 1 at birth, inert at or below 0
	Decay float64 // Alpha lost per advance
	Size  float64
	Color color.NRGBA
}

// Advance applies air resistance and gravity, moves the particle and fades it.
func (p *Particle) Advance(gravity, resistance float64) {
	if !p.Alive() {
		return
	}
	p.Vel.X *= resistance
	p.Vel.Y *= resistance
	p.Vel.Y += gravity
	p.Pos.X += p.Vel.X
	p.Pos.Y += p.Vel.Y
	p.Alpha -= p.Decay
}

// Alive reports whether the particle is still visible.
func (p *Particle) Alive() bool {
	return p.Alpha > 0
}

// Draw paints the particle at its current opacity.
func (p *Particle) Draw(s Surface) {
	if !p.Alive() {
		return
	}
	s.FillCircle(p.Pos.X, p.Pos.Y, p.Size, withAlpha(p.Color, p.Alpha))
}

func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	a = min(max(a, 0), 1)
	c.A = uint8(a*255 + 0.5)
	return c
}
