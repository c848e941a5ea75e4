package storage

import (
	"os"
	"path/filepath"
	"testing"
)

// keyValue mirrors the interface games consume, so every backend is checked
// against the same contract.
type keyValue interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

var (
	_ keyValue = (*Store)(nil)
	_ keyValue = (*GData)(nil)
	_ keyValue = (*Memory)(nil)
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandPath("~/.reflex/scores.db")
	if err != nil {
		t.Fatalf("ExpandPath() failed: %v", err)
	}
	if want := filepath.Join(home, ".reflex", "scores.db"); got != want {
		t.Errorf("ExpandPath() = %q, expected %q", got, want)
	}

	if got, _ := ExpandPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute paths should pass through, got %q", got)
	}
}

func testKeyValue(t *testing.T, kv keyValue) {
	t.Helper()

	if _, ok, err := kv.Get("highScore"); err != nil || ok {
		t.Fatalf("Get on empty store = (ok=%v, err=%v), expected absent", ok, err)
	}

	if err := kv.Set("highScore", "7"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := kv.Set("highScore", "12"); err != nil {
		t.Fatalf("second Set() failed: %v", err)
	}

	v, ok, err := kv.Get("highScore")
	if err != nil || !ok || v != "12" {
		t.Errorf("Get() = (%q, %v, %v), expected (\"12\", true, nil)", v, ok, err)
	}
}

func TestStoreKeyValue(t *testing.T) {
	testKeyValue(t, openTestStore(t))
}

func TestMemoryKeyValue(t *testing.T) {
	testKeyValue(t, NewMemory())
}

func TestStoreKeyValueSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "kv.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Set("highScore", "42"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if v, ok, _ := store.Get("highScore"); !ok || v != "42" {
		t.Errorf("value lost across reopen: %q, %v", v, ok)
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("reflex", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	store.SaveScore("fireworks", 500)

	scores, err := store.TopScores("reflex", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("scores not sorted descending: %v", scores)
	}
	if scores[0].GameID != "reflex" {
		t.Errorf("GameID = %q", scores[0].GameID)
	}

	limited, _ := store.TopScores("reflex", 2)
	if len(limited) != 2 {
		t.Errorf("limit not applied, got %d rows", len(limited))
	}
}

func TestStoreHighScoreAndStats(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("reflex")
	if err != nil || high != 0 {
		t.Fatalf("HighScore() on empty = (%d, %v), expected (0, nil)", high, err)
	}

	stats, err := store.Stats("reflex")
	if err != nil {
		t.Fatalf("Stats() on empty failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveScore("reflex", 10)
	store.SaveScore("reflex", 30)
	store.SaveScore("reflex", 20)

	high, _ = store.HighScore("reflex")
	if high != 30 {
		t.Errorf("HighScore() = %d, expected 30", high)
	}

	stats, err = store.Stats("reflex")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 30 || stats.AvgScore != 20 {
		t.Errorf("stats = %+v, expected 3 games, best 30, avg 20", stats)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("reflex", 100)
	store.SaveScore("fireworks", 300)

	if err := store.ClearScores("reflex"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("reflex", 10); len(scores) != 0 {
		t.Errorf("expected no reflex scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("fireworks", 10); len(scores) != 1 {
		t.Error("other games should not be affected")
	}
}
