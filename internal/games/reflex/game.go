package reflex

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/reflex-arcade/internal/config"
	"github.com/vovakirdan/reflex-arcade/internal/core"
	"github.com/vovakirdan/reflex-arcade/internal/registry"
	"github.com/vovakirdan/reflex-arcade/internal/sched"
)

// hudRows is the number of screen rows above the arena.
const hudRows = 2

const (
	targetGlyph = '█'
	sparkGlyph  = '*'
	missGlyph   = '✗'
	heartGlyph  = "♥"
)

// Package-level settings applied on the next Reset, set by the CLI.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	store            KeyValue
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names select normal.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = config.DifficultyNormal
	}
	difficultyPreset = p
}

// SetStore sets where the high score is kept. nil disables persistence.
func SetStore(kv KeyValue) {
	store = kv
}

// SetLogger sets the logger used by new games.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func init() {
	registry.Register("reflex", func() registry.Game {
		return New()
	})
}

// Game adapts a Session to the terminal: cells are mapped to the pixel
// units the session plays in.
type Game struct {
	cfg     config.ReflexConfig
	clock   *sched.Scheduler
	session *Session
	hud     *HUD
	fx      *Effects
	step    time.Duration

	screenW, screenH int
}

// New creates a Reflex game. Reset must be called before use.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "reflex"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Reflex"
}

// Reset loads configuration and prepares an inactive session.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadReflex(configPath)
	if err != nil {
		logger.Warn("using default reflex config", "err", err)
	}
	config.ApplyReflexPreset(&cfg, difficultyPreset)
	if cfg.Arena.CellWidth <= 0 || cfg.Arena.CellHeight <= 0 {
		cfg.Arena = config.DefaultReflexConfig().Arena
	}
	g.cfg = cfg

	rc = rc.Resolved()
	rng := rand.New(rand.NewSource(rc.Seed))
	g.step = rc.TickInterval()

	g.clock = sched.New()
	g.hud = NewHUD(cfg.Effects)
	g.fx = NewEffects(cfg.Effects, g.clock, rng)
	g.session = NewSession(Options{
		Config: cfg,
		Clock:  g.clock,
		Rand:   rng,
		Store:  store,
		Sink:   Fanout{g.hud, g.fx},
		Logger: logger,
	})
	g.hud.HighScore = g.session.HighScore()
	g.Resize(rc.ScreenW, rc.ScreenH)
}

// Resize adapts the arena to a new screen size in cells.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.session.Resize(w*g.cfg.Arena.CellWidth, max(0, h-hudRows)*g.cfg.Arena.CellHeight)
}

// Session exposes the underlying session.
func (g *Game) Session() *Session {
	return g.session
}

// Step handles input and advances the clock by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	switch {
	case (in.Has(core.ActionRestart) || in.Has(core.ActionConfirm)) && g.session.Idle():
		g.restart()
	case in.Has(core.ActionPause):
		g.session.TogglePause()
	}

	for _, c := range in.Clicks {
		if c.Y < hudRows {
			continue
		}
		if g.session.Phase() == PhaseInactive {
			g.restart()
			continue
		}
		g.session.Click(g.cellToPixel(c))
	}

	g.clock.Advance(g.step)

	return core.StepResult{State: g.State()}
}

func (g *Game) restart() {
	g.fx.Reset()
	g.session.Start()
}

// cellToPixel returns the pixel at the centre of a screen cell.
func (g *Game) cellToPixel(c core.Point) core.Point {
	cw, ch := g.cfg.Arena.CellWidth, g.cfg.Arena.CellHeight
	return core.Point{
		X: c.X*cw + cw/2,
		Y: (c.Y-hudRows)*ch + ch/2,
	}
}

// pixelToCell returns the screen cell containing a pixel.
func (g *Game) pixelToCell(p core.Point) core.Point {
	return core.Point{
		X: floorDiv(p.X, g.cfg.Arena.CellWidth),
		Y: floorDiv(p.Y, g.cfg.Arena.CellHeight) + hudRows,
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// Render draws the HUD, the arena and any overlay.
func (g *Game) Render(dst *core.Screen) {
	g.renderHUD(dst)

	shake := g.fx.ShakeOffset()
	if rect, visible := g.session.Target(); visible {
		color := core.ColorBrightRed
		if g.fx.Flashing() {
			color = core.ColorBrightWhite
		}
		g.renderTarget(dst, rect, shake, color)
	}

	for _, m := range g.fx.Markers() {
		c := g.pixelToCell(m)
		dst.SetCell(c.X+shake, c.Y, missGlyph, core.ColorRed)
	}

	for _, s := range g.fx.Sparks() {
		c := g.pixelToCell(s.Pos)
		if c.Y < hudRows {
			continue
		}
		color := core.ColorBrightYellow
		if s.Life < 0.4 {
			color = core.ColorYellow
		}
		dst.SetCell(c.X+shake, c.Y, sparkGlyph, color)
	}

	if text, alpha, ok := g.fx.Banner(); ok {
		color := core.ColorBrightYellow
		if alpha < 0.5 {
			color = core.ColorGray
		}
		dst.DrawTextCentered(hudRows+(dst.Height()-hudRows)/3, text, color)
	}

	switch g.session.Phase() {
	case PhaseInactive:
		g.renderOverlay(dst, core.ColorBrightCyan,
			"REFLEX",
			"Click the target before time runs out",
			"Click or press Enter to start")
	case PhasePaused:
		g.renderOverlay(dst, core.ColorYellow,
			"PAUSED",
			"Space to resume")
	case PhaseEnded:
		s := g.session.Summary()
		lines := []string{
			s.Reason,
			fmt.Sprintf("Final score: %d   Max level: %d", s.FinalScore, s.MaxLevel),
		}
		if s.NewHighScore {
			lines = append(lines, "NEW HIGH SCORE!")
		}
		lines = append(lines, "R to play again, Esc for menu")
		g.renderOverlay(dst, core.ColorBrightRed, lines...)
	}
}

// renderTarget fills every cell whose centre lies inside rect.
func (g *Game) renderTarget(dst *core.Screen, rect core.Rect, shake int, color core.Color) {
	top := g.pixelToCell(core.Point{X: rect.X, Y: rect.Y})
	bottom := g.pixelToCell(core.Point{X: rect.Right(), Y: rect.Bottom()})
	drawn := false
	for cy := top.Y; cy <= bottom.Y; cy++ {
		for cx := top.X; cx <= bottom.X; cx++ {
			if rect.ContainsPoint(g.cellToPixel(core.Point{X: cx, Y: cy})) {
				dst.SetCell(cx+shake, cy, targetGlyph, color)
				drawn = true
			}
		}
	}
	// Targets smaller than a cell still need to be visible.
	if !drawn {
		c := g.pixelToCell(rect.Center())
		dst.SetCell(c.X+shake, c.Y, targetGlyph, color)
	}
}

// renderHUD draws the status line and separator.
func (g *Game) renderHUD(dst *core.Screen) {
	h := g.hud
	x := 1

	put := func(text string, color core.Color) {
		dst.DrawTextColor(x, 0, text, color)
		x += len([]rune(text))
	}

	put(fmt.Sprintf("Score: %d", h.Score), core.ColorBrightWhite)
	put("  Time: ", core.ColorDefault)
	timeColor := core.ColorBrightGreen
	if h.TimeLow() {
		timeColor = core.ColorBrightRed
	}
	put(fmt.Sprintf("%ds", max(0, h.Time)), timeColor)
	put(fmt.Sprintf("  Level: %d", h.Level), core.ColorDefault)
	put("  Lives: ", core.ColorDefault)
	livesColor := core.ColorBrightMagenta
	if h.LivesLow() {
		livesColor = core.ColorBrightRed
	}
	put(strings.Repeat(heartGlyph, max(0, h.Misses)), livesColor)

	best := fmt.Sprintf("  Best: %d", h.HighScore)
	if h.Beaten {
		best += " ★"
	}
	put(best, core.ColorBrightYellow)

	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

// renderOverlay draws a framed, centred message box.
func (g *Game) renderOverlay(dst *core.Screen, color core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	boxW := width + 4
	boxH := len(lines)*2 + 1
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)
	for i, l := range lines {
		c := core.ColorDefault
		if i == 0 {
			c = color
		}
		dst.DrawTextCentered(box.Y+1+i*2, l, c)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	phase := g.session.Phase()
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: phase == PhaseEnded,
		Paused:   phase == PhasePaused,
	}
}
