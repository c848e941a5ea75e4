package gui

import (
	"fmt"
	"image/color"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/reflex-arcade/internal/config"
	"github.com/vovakirdan/reflex-arcade/internal/core"
	"github.com/vovakirdan/reflex-arcade/internal/games/reflex"
	"github.com/vovakirdan/reflex-arcade/internal/sched"
)

// hudHeight is the band above the arena reserved for the status line.
const hudHeight = 32

var (
	backgroundColor = color.NRGBA{R: 18, G: 18, B: 28, A: 255}
	hudColor        = color.NRGBA{R: 40, G: 40, B: 60, A: 255}
	warnColor       = color.NRGBA{R: 200, G: 40, B: 40, A: 255}
	targetColor     = color.NRGBA{R: 230, G: 60, B: 60, A: 255}
	flashColor      = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	sparkColor      = color.NRGBA{R: 255, G: 210, B: 60, A: 255}
	missColor       = color.NRGBA{R: 255, G: 80, B: 80, A: 255}
	overlayColor    = color.NRGBA{A: 180}
)

// ScoreRecorder receives the final score of every round.
type ScoreRecorder interface {
	SaveScore(gameID string, score int) (int64, error)
}

// ReflexApp is an ebiten.Game running a reflex session in a window.
type ReflexApp struct {
	clock   *sched.Scheduler
	session *reflex.Session
	hud     *reflex.HUD
	fx      *reflex.Effects
	scores  ScoreRecorder
	logger  *log.Logger
	step    time.Duration
	width   int
	height  int
}

// NewReflexApp creates a reflex window app. store keeps the high score and
// scores records every finished round; both may be nil.
func NewReflexApp(cfg config.ReflexConfig, store reflex.KeyValue, scores ScoreRecorder, opts Options) *ReflexApp {
	opts = opts.withDefaults()
	rng := rand.New(rand.NewSource(opts.Seed))

	a := &ReflexApp{
		clock:  sched.New(),
		hud:    reflex.NewHUD(cfg.Effects),
		scores: scores,
		logger: opts.Logger,
		step:   time.Second / time.Duration(opts.TPS),
	}
	a.fx = reflex.NewEffects(cfg.Effects, a.clock, rng)
	a.session = reflex.NewSession(reflex.Options{
		Config: cfg,
		Clock:  a.clock,
		Rand:   rng,
		Store:  store,
		Sink:   reflex.Fanout{a.hud, a.fx, reflex.SinkFunc(a.onEvent)},
		Logger: opts.Logger,
	})
	a.hud.HighScore = a.session.HighScore()
	a.resize(opts.Width, opts.Height)
	return a
}

func (a *ReflexApp) onEvent(ev reflex.Event) {
	over, ok := ev.(reflex.GameOverEvent)
	if !ok || a.scores == nil || over.Summary.FinalScore <= 0 {
		return
	}
	if _, err := a.scores.SaveScore("reflex", over.Summary.FinalScore); err != nil {
		a.logger.Warn("could not save score", "err", err)
	}
}

func (a *ReflexApp) resize(w, h int) {
	a.width, a.height = w, h
	a.session.Resize(w, max(0, h-hudHeight))
}

// toArena converts window coordinates to arena coordinates.
func toArena(x, y int) core.Point {
	return core.Point{X: x, Y: y - hudHeight}
}

// Update handles input and advances the session clock by one tick.
func (a *ReflexApp) Update() error {
	if quitPressed() {
		return ebiten.Termination
	}

	restart := inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	switch {
	case restart && a.session.Idle():
		a.restart()
	case pausePressed():
		a.session.TogglePause()
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		switch {
		case y < hudHeight:
		case a.session.Phase() == reflex.PhaseInactive:
			a.restart()
		default:
			a.session.Click(toArena(x, y))
		}
	}

	a.clock.Advance(a.step)
	return nil
}

func (a *ReflexApp) restart() {
	a.fx.Reset()
	a.session.Start()
}

// Draw renders the arena, effects, HUD and overlays.
func (a *ReflexApp) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	ox := float32(a.fx.ShakeOffset() * 6)
	oy := float32(hudHeight)

	if rect, visible := a.session.Target(); visible {
		c := targetColor
		if a.fx.Flashing() {
			c = flashColor
		}
		vector.DrawFilledRect(screen, ox+float32(rect.X), oy+float32(rect.Y), float32(rect.W), float32(rect.H), c, false)
	}

	for _, s := range a.fx.Sparks() {
		c := sparkColor
		c.A = uint8(255 * s.Life)
		vector.DrawFilledCircle(screen, ox+float32(s.Pos.X), oy+float32(s.Pos.Y), 3, c, true)
	}

	for _, m := range a.fx.Markers() {
		x, y := ox+float32(m.X), oy+float32(m.Y)
		vector.StrokeLine(screen, x-8, y-8, x+8, y+8, 3, missColor, true)
		vector.StrokeLine(screen, x-8, y+8, x+8, y-8, 3, missColor, true)
	}

	if text, alpha, ok := a.fx.Banner(); ok && alpha > 0.2 {
		a.printCentered(screen, text, a.height/3)
	}

	a.drawHUD(screen)
	a.drawOverlay(screen)
}

func (a *ReflexApp) drawHUD(screen *ebiten.Image) {
	h := a.hud
	vector.DrawFilledRect(screen, 0, 0, float32(a.width), hudHeight, hudColor, false)

	timeText := fmt.Sprintf("Time: %ds", max(0, h.Time))
	livesText := "Lives: " + strings.Repeat("o", max(0, h.Misses))
	best := fmt.Sprintf("Best: %d", h.HighScore)
	if h.Beaten {
		best += " NEW!"
	}

	x := 8
	for _, part := range []struct {
		text string
		warn bool
	}{
		{fmt.Sprintf("Score: %d", h.Score), false},
		{timeText, h.TimeLow()},
		{fmt.Sprintf("Level: %d", h.Level), false},
		{livesText, h.LivesLow()},
		{best, false},
	} {
		w := len(part.text) * debugCharW
		if part.warn {
			vector.DrawFilledRect(screen, float32(x-2), 8, float32(w+4), 16, warnColor, false)
		}
		ebitenutil.DebugPrintAt(screen, part.text, x, 9)
		x += w + 3*debugCharW
	}
}

func (a *ReflexApp) drawOverlay(screen *ebiten.Image) {
	var lines []string
	switch a.session.Phase() {
	case reflex.PhaseInactive:
		lines = []string{"REFLEX", "Click the target before time runs out", "Click or press Enter to start"}
	case reflex.PhasePaused:
		lines = []string{"PAUSED", "Space to resume"}
	case reflex.PhaseEnded:
		s := a.session.Summary()
		lines = []string{s.Reason, fmt.Sprintf("Final score: %d   Max level: %d", s.FinalScore, s.MaxLevel)}
		if s.NewHighScore {
			lines = append(lines, "NEW HIGH SCORE!")
		}
		lines = append(lines, "R to play again, Esc to quit")
	default:
		return
	}

	vector.DrawFilledRect(screen, 0, hudHeight, float32(a.width), float32(a.height-hudHeight), overlayColor, false)
	top := a.height/2 - len(lines)*debugLineH
	for i, l := range lines {
		a.printCentered(screen, l, top+i*2*debugLineH)
	}
}

func (a *ReflexApp) printCentered(screen *ebiten.Image, text string, y int) {
	ebitenutil.DebugPrintAt(screen, text, (a.width-len(text)*debugCharW)/2, y)
}

// Layout follows the window size.
func (a *ReflexApp) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.width || outsideHeight != a.height {
		a.resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Session exposes the underlying session.
func (a *ReflexApp) Session() *reflex.Session {
	return a.session
}

// Glyph size of the ebitenutil debug font.
const (
	debugCharW = 6
	debugLineH = 16
)

// RunReflex opens a window running the reflex game.
func RunReflex(cfg config.ReflexConfig, store reflex.KeyValue, scores ScoreRecorder, opts Options) error {
	opts = opts.withDefaults()
	opts.apply("Reflex")
	return ebiten.RunGame(NewReflexApp(cfg, store, scores, opts))
}
