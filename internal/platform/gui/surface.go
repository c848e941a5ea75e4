// Package gui runs the games in a desktop window with Ebiten. The reflex
// session and the fireworks field are the same ones the terminal uses; this
// package only supplies pixels and pointer input.
package gui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ImageSurface draws onto a persistent offscreen image, so translucent
// fills accumulate across frames.
type ImageSurface struct {
	img *ebiten.Image
}

// NewImageSurface creates a black surface of w x h pixels.
func NewImageSurface(w, h int) *ImageSurface {
	s := &ImageSurface{}
	s.Resize(w, h)
	return s
}

// Resize replaces the backing image when the size changes.
func (s *ImageSurface) Resize(w, h int) {
	w, h = max(1, w), max(1, h)
	if s.img != nil {
		b := s.img.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return
		}
		s.img.Deallocate()
	}
	s.img = ebiten.NewImage(w, h)
	s.img.Fill(color.Black)
}

// Image returns the backing image.
func (s *ImageSurface) Image() *ebiten.Image {
	return s.img
}

// Size returns the surface size in pixels.
func (s *ImageSurface) Size() (float64, float64) {
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// FillRect fills a rectangle, blending by the colour's alpha.
func (s *ImageSurface) FillRect(x, y, w, h float64, c color.NRGBA) {
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), c, false)
}

// FillCircle fills a circle, blending by the colour's alpha.
func (s *ImageSurface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r), c, true)
}
