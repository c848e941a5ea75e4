package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/reflex-arcade/internal/core"
	"github.com/vovakirdan/reflex-arcade/internal/games/reflex"
	"github.com/vovakirdan/reflex-arcade/internal/platform/tui"
	"github.com/vovakirdan/reflex-arcade/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game in the terminal",
	Long: `Start playing the specified game in the terminal.

The terminal must support mouse reporting.

Controls:
  Mouse click  - Hit the target / launch a firework
  Enter        - Start a round
  Space/P      - Pause
  R            - Restart (when not running)
  Esc          - Back
  Q/Ctrl+C     - Quit

Difficulty options (reflex):
  easy   - Bigger, slower target, longer clock, extra lives
  normal - Default values
  hard   - Smaller, faster target, shorter clock

Examples:
  reflex play reflex
  reflex play reflex --difficulty hard
  reflex play fireworks
  reflex play reflex --config ./my-reflex.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'reflex list' to see available games.")
		os.Exit(1)
	}

	applyGameFlags()

	store := openStore()
	if store != nil {
		reflex.SetStore(store)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		closeStore(store)
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting game", "game", gameID, "fps", flagFPS, "difficulty", flagDifficulty)
	runErr := tui.Run(game, store, runtimeConfig(), logger)

	closeStore(store)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
