package core

import "time"

// RuntimeConfig describes the terminal a game runs in and how fast it is
// stepped. Games size their arena from ScreenW/ScreenH.
type RuntimeConfig struct {
	ScreenW  int   // Columns
	ScreenH  int   // Rows, including the HUD
	TickRate int   // Steps per second
	Seed     int64 // Round randomness; 0 picks one from the clock
}

// DefaultConfig returns an 80x24 terminal stepped at 60 Hz with no fixed seed.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

// Resolved fills in a non-positive TickRate and a zero Seed.
func (c RuntimeConfig) Resolved() RuntimeConfig {
	if c.TickRate <= 0 {
		c.TickRate = DefaultConfig().TickRate
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c
}

// TickInterval is the virtual time covered by one Step.
func (c RuntimeConfig) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / time.Duration(DefaultConfig().TickRate)
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState is what the platform reads back after each step: the score to
// show or record, and whether the round is over or paused.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
}
