// Package tui runs arcade games in a terminal with Bubble Tea: the game
// loop, key and mouse mapping, the picker menu, the scoreboard and the SSH
// server that hands each connection its own session.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg advances the running game by one simulation step.
type TickMsg time.Time

// tickInterval returns the step length for rate ticks per second, falling
// back to 60 for non-positive rates.
func tickInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

func tickCmd(rate int) tea.Cmd {
	return tea.Tick(tickInterval(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
