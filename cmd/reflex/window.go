package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/reflex-arcade/internal/config"
	"github.com/vovakirdan/reflex-arcade/internal/games/reflex"
	"github.com/vovakirdan/reflex-arcade/internal/platform/gui"
	"github.com/vovakirdan/reflex-arcade/internal/storage"
)

var (
	flagWidth  int
	flagHeight int
)

var windowCmd = &cobra.Command{
	Use:   "window <game>",
	Short: "Play a game in a desktop window",
	Long: `Open a desktop window and play the specified game with the mouse.

The reflex high score is kept in the per-user save data directory; every
finished round is also added to the scores database.

Controls:
  Mouse click  - Hit the target / launch a firework
  Enter        - Start a round
  Space/P      - Pause
  R            - Restart (when not running)
  Esc/Q        - Close the window

Examples:
  reflex window reflex
  reflex window reflex --difficulty easy --width 1024 --height 768
  reflex window fireworks`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"reflex", "fireworks"},
	Run:       runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagWidth, "width", 800, "Window width in pixels")
	windowCmd.Flags().IntVar(&flagHeight, "height", 600, "Window height in pixels")
}

func runWindow(_ *cobra.Command, args []string) {
	opts := gui.Options{
		Width:  flagWidth,
		Height: flagHeight,
		TPS:    flagFPS,
		Seed:   flagSeed,
		Logger: logger,
	}

	var err error
	switch args[0] {
	case "reflex":
		err = runReflexWindow(opts)
	case "fireworks":
		var cfg config.FireworksConfig
		cfg, err = config.LoadFireworks(flagConfig)
		if err == nil {
			err = gui.RunFireworks(cfg, opts)
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'reflex list' to see available games.")
		os.Exit(1)
	}

	if logFile != nil {
		logFile.Close() //nolint:errcheck
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

func runReflexWindow(opts gui.Options) error {
	cfg, err := config.LoadReflex(flagConfig)
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return err
		}
		config.ApplyReflexPreset(&cfg, preset)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("scores database unavailable", "path", flagDBPath, "err", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close() //nolint:errcheck
		}
	}()

	// The high score lives in gdata; without it, fall back to the database.
	var kv reflex.KeyValue
	if save, err := storage.OpenGData("reflex-arcade"); err == nil {
		kv = save
	} else {
		logger.Warn("save data unavailable", "err", err)
		if store != nil {
			kv = store
		}
	}

	var scores gui.ScoreRecorder
	if store != nil {
		scores = store
	}

	logger.Info("opening window", "game", "reflex", "width", opts.Width, "height", opts.Height)
	return gui.RunReflex(cfg, kv, scores, opts)
}
