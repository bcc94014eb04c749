package core

// RuntimeConfig contains host settings passed to a game session.
type RuntimeConfig struct {
	ScreenW int    // Terminal width in characters
	ScreenH int    // Terminal height in characters
	Player  string // Name recorded with completed runs
	Pack    string // Level pack ID
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Player:  "player",
		Pack:    "classic",
	}
}
