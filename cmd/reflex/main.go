// reflex is a reflex-training arcade: click the moving target before the
// clock runs out, or watch fireworks, in the terminal or in a window.
//
// Usage:
//
//	reflex list              - List available games
//	reflex play <game>       - Play a game in the terminal
//	reflex menu              - Start menu to pick games interactively
//	reflex window <game>     - Play a game in a desktop window
//	reflex serve             - Start SSH server for remote play
//	reflex scores <game>     - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.reflex/scores.db)
//	--config <path>      - Custom game config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard
//	--log-file <path>    - Write logs to a file
//	--log-level <level>  - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/reflex-arcade/internal/games/fireworks"
	"github.com/vovakirdan/reflex-arcade/internal/games/reflex"
	"github.com/vovakirdan/reflex-arcade/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reflex",
	Short: "Reflex Arcade - Train your reflexes in the terminal",
	Long: `Reflex Arcade is a small arcade of pointer games.

In Reflex, a target jumps around the arena. Click it before it moves to
score; every few points the target shrinks, speeds up and the clock gets a
bonus. Missing costs a life. Fireworks is a relaxing click-to-launch display.

Available commands:
  list     - Show all available games
  play     - Play a specific game in the terminal
  menu     - Interactive game picker menu
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  reflex list
  reflex play reflex --difficulty hard
  reflex window fireworks
  reflex serve --ssh :2222
  reflex scores reflex`,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.reflex/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: discard)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// logger is shared by every command. It discards output unless --log-file
// is set, except for serve which logs to stderr.
var (
	logger  = log.New(io.Discard)
	logFile *os.File
)

func setupLogging(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = io.Discard
	switch {
	case flagLogFile != "":
		path, err := storage.ExpandPath(flagLogFile)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		logFile, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		w = logFile
	case cmd == serveCmd:
		w = os.Stderr
	}

	logger = newLogger(w, level)
	reflex.SetLogger(logger)
	fireworks.SetLogger(logger)
	return nil
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "reflex",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
}

// applyGameFlags hands the config and difficulty flags to the games.
func applyGameFlags() {
	reflex.SetConfigPath(flagConfig)
	reflex.SetDifficultyPreset(flagDifficulty)
	fireworks.SetConfigPath(flagConfig)
}

// openStore opens the scores database. Failures are reported and play
// continues without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores database unavailable", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store) {
	if store != nil {
		store.Close() //nolint:errcheck
	}
	if logFile != nil {
		logFile.Close() //nolint:errcheck
	}
}
