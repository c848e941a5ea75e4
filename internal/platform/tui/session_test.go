package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/reflex-arcade/internal/core"
	_ "github.com/vovakirdan/reflex-arcade/internal/games/fireworks"
	_ "github.com/vovakirdan/reflex-arcade/internal/games/reflex"
	"github.com/vovakirdan/reflex-arcade/internal/storage"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func keyMsg(k tea.KeyType, r ...rune) tea.KeyMsg {
	return tea.KeyMsg{Type: k, Runes: r}
}

func update(t *testing.T, m tea.Model, msg tea.Msg) tea.Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next
}

func TestMenuListsGames(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	store.SaveScore("reflex", 17)

	m := NewMenuModel(store, testConfig())

	ids := map[string]int{}
	for _, item := range m.items {
		ids[item.GameID] = item.Best
	}
	if _, ok := ids["fireworks"]; !ok {
		t.Error("fireworks missing from menu")
	}
	if ids["reflex"] != 17 {
		t.Errorf("reflex best = %d, expected 17", ids["reflex"])
	}
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	var m tea.Model = NewSessionModel(nil, testConfig(), nil)

	m = update(t, m, keyMsg(tea.KeyEnter))
	s := m.(SessionModel)
	if s.current != screenGame || s.gameModel == nil {
		t.Fatal("enter should start the selected game")
	}

	m = update(t, m, TickMsg{})
	m = update(t, m, keyMsg(tea.KeyEsc))
	s = m.(SessionModel)
	if s.current != screenMenu || s.gameModel != nil {
		t.Error("esc should return to the menu")
	}
	if s.quitting {
		t.Error("esc in a game must not quit the session")
	}
}

func TestSessionScoreboard(t *testing.T) {
	var m tea.Model = NewSessionModel(nil, testConfig(), nil)

	m = update(t, m, keyMsg(tea.KeyTab))
	if m.(SessionModel).current != screenScores {
		t.Fatal("tab should open the scoreboard")
	}

	m = update(t, m, keyMsg(tea.KeyEsc))
	if m.(SessionModel).current != screenMenu {
		t.Error("esc should leave the scoreboard")
	}
}

func TestSessionQuit(t *testing.T) {
	var m tea.Model = NewSessionModel(nil, testConfig(), nil)

	m = update(t, m, keyMsg(tea.KeyRunes, 'q'))
	if !m.(SessionModel).quitting {
		t.Error("q should quit from the menu")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestGameModelRecordsScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	game := &scriptedGame{}
	var m tea.Model = NewGameModel(game, store, testConfig(), nil)
	m.Init()

	game.state = core.GameState{Score: 9, GameOver: true}
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	scores, _ := store.TopScores("scripted", 10)
	if len(scores) != 1 || scores[0].Score != 9 {
		t.Fatalf("scores = %v, expected a single 9", scores)
	}

	game.state = core.GameState{Score: 0}
	m = update(t, m, TickMsg{})
	game.state = core.GameState{Score: 4, GameOver: true}
	update(t, m, TickMsg{})

	scores, _ = store.TopScores("scripted", 10)
	if len(scores) != 2 {
		t.Errorf("second round not recorded: %v", scores)
	}
}

func TestGameModelClicks(t *testing.T) {
	game := &scriptedGame{}
	var m tea.Model = NewGameModel(game, nil, testConfig(), nil)
	m.Init()

	m = update(t, m, tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	update(t, m, TickMsg{})

	if len(game.clicks) != 1 || game.clicks[0] != (core.Point{X: 3, Y: 4}) {
		t.Errorf("clicks seen by game = %v", game.clicks)
	}
}

func TestGameModelResize(t *testing.T) {
	game := &scriptedGame{}
	var m tea.Model = NewGameModel(game, nil, testConfig(), nil)
	m.Init()

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if game.resized != [2]int{100, 30} || game.resets != 1 {
		t.Errorf("resized = %v, resets = %d", game.resized, game.resets)
	}
}

// scriptedGame is a registry.Game whose state the test controls.
type scriptedGame struct {
	state   core.GameState
	clicks  []core.Point
	resized [2]int
	resets  int
}

func (g *scriptedGame) ID() string               { return "scripted" }
func (g *scriptedGame) Title() string            { return "Scripted" }
func (g *scriptedGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *scriptedGame) Render(*core.Screen)      {}
func (g *scriptedGame) State() core.GameState    { return g.state }
func (g *scriptedGame) Resize(w, h int)          { g.resized = [2]int{w, h} }
func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.clicks = append(g.clicks, in.Clicks...)
	return core.StepResult{State: g.state}
}
