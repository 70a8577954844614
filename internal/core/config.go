package core

// RuntimeConfig contains configuration passed to games at start.
// Hosts use this to describe the terminal or window they drive.
type RuntimeConfig struct {
	ScreenW  int   // Host width (characters for terminals, pixels for windows)
	ScreenH  int   // Host height
	TickRate int   // Frame pulses per second requested from the host (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a run.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score, rounded down
	GameOver bool // Whether the run has been lost
	Running  bool // Whether the frame loop is scheduling itself
}
