package fireworks

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/reflex-arcade/internal/config"
	"github.com/vovakirdan/reflex-arcade/internal/core"
	"github.com/vovakirdan/reflex-arcade/internal/registry"
)

const hudRows = 2

var (
	configPath string
	logger     = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger used by new games.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func init() {
	registry.Register("fireworks", func() registry.Game {
		return New()
	})
}

// Game shows the fireworks field in the terminal. Clicks launch rockets
// that burst where the user clicked.
type Game struct {
	cfg      config.FireworksConfig
	field    *Field
	canvas   *Canvas
	step     time.Duration
	paused   bool
	launched int
}

// New creates a fireworks display. Reset must be called before use.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "fireworks"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Fireworks"
}

// Reset loads configuration and clears the sky.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadFireworks(configPath)
	if err != nil {
		logger.Warn("using default fireworks config", "err", err)
	}
	if cfg.Arena.CellWidth <= 0 || cfg.Arena.CellHeight <= 0 {
		cfg.Arena = config.DefaultFireworksConfig().Arena
	}
	g.cfg = cfg

	rc = rc.Resolved()
	g.step = rc.TickInterval()
	g.paused = false
	g.launched = 0

	g.field = NewField(cfg, rand.New(rand.NewSource(rc.Seed)))
	g.canvas = NewCanvas(rc.ScreenW, max(0, rc.ScreenH-hudRows), cfg.Arena.CellWidth, cfg.Arena.CellHeight)
	g.field.SetBounds(g.canvas.Size())
}

// Resize adapts the canvas to a new screen size in cells.
func (g *Game) Resize(w, h int) {
	g.canvas.Resize(w, max(0, h-hudRows))
	g.field.SetBounds(g.canvas.Size())
}

// Step launches rockets for clicks and advances the display.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if in.Has(core.ActionRestart) {
		g.field.Clear()
		g.launched = 0
	}

	cw, ch := g.cfg.Arena.CellWidth, g.cfg.Arena.CellHeight
	for _, c := range in.Clicks {
		if c.Y < hudRows {
			continue
		}
		x := float64(c.X*cw + cw/2)
		y := float64((c.Y-hudRows)*ch + ch/2)
		g.field.SpawnAt(x, y)
		g.launched++
		logger.Debug("firework launched", "x", x, "y", y)
	}

	if !g.paused {
		g.field.Tick(g.step, g.canvas)
	}

	return core.StepResult{State: g.State()}
}

// Render draws the status line and the canvas.
func (g *Game) Render(dst *core.Screen) {
	status := fmt.Sprintf(" Fireworks   In the sky: %d   Launched: %d", len(g.field.Fireworks()), g.launched)
	if g.paused {
		status += "   PAUSED"
	}
	dst.DrawTextColor(0, 0, status, core.ColorBrightWhite)

	hint := "click: launch  space: pause  r: clear  esc: menu "
	if x := dst.Width() - len(hint); x > len(status)+1 {
		dst.DrawTextColor(x, 0, hint, core.ColorGray)
	}
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)

	g.canvas.Render(dst, hudRows)
}

// State returns the current display state. The display never ends; the
// score is the number of rockets launched by hand.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.launched,
		Paused: g.paused,
	}
}
