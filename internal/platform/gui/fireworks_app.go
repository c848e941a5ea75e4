package gui

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/reflex-arcade/internal/config"
	"github.com/vovakirdan/reflex-arcade/internal/games/fireworks"
)

// FireworksApp is an ebiten.Game showing the fireworks field full-window.
type FireworksApp struct {
	field   *fireworks.Field
	surface *ImageSurface
	step    time.Duration
	paused  bool
}

// NewFireworksApp creates the display for a w x h window.
func NewFireworksApp(cfg config.FireworksConfig, opts Options) *FireworksApp {
	opts = opts.withDefaults()
	field := fireworks.NewField(cfg, rand.New(rand.NewSource(opts.Seed)))
	surface := NewImageSurface(opts.Width, opts.Height)
	field.SetBounds(surface.Size())
	return &FireworksApp{
		field:   field,
		surface: surface,
		step:    time.Second / time.Duration(opts.TPS),
	}
}

// Update launches rockets on click and advances the field.
func (a *FireworksApp) Update() error {
	if quitPressed() {
		return ebiten.Termination
	}
	if pausePressed() {
		a.paused = !a.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.field.Clear()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.field.SpawnAt(float64(x), float64(y))
	}

	if !a.paused {
		a.field.Tick(a.step, a.surface)
	}
	return nil
}

// Draw copies the persistent canvas to the screen.
func (a *FireworksApp) Draw(screen *ebiten.Image) {
	screen.DrawImage(a.surface.Image(), nil)
	status := fmt.Sprintf("fireworks: %d   click to launch, space to pause, esc to quit", len(a.field.Fireworks()))
	if a.paused {
		status = "PAUSED   " + status
	}
	ebitenutil.DebugPrintAt(screen, status, 8, 8)
}

// Layout follows the window size.
func (a *FireworksApp) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.surface.Resize(outsideWidth, outsideHeight)
	a.field.SetBounds(a.surface.Size())
	return outsideWidth, outsideHeight
}

// RunFireworks opens a window showing the fireworks display.
func RunFireworks(cfg config.FireworksConfig, opts Options) error {
	opts = opts.withDefaults()
	opts.apply("Fireworks")
	return ebiten.RunGame(NewFireworksApp(cfg, opts))
}
