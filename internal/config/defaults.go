package config

import (
	_ "embed"
)

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

// DefaultMazeConfig returns the default maze configuration.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		Arena: ArenaConfig{
			Width:      800,
			Height:     600,
			PlayerSize: 50,
		},
		Movement: MovementConfig{
			BaseSpeed: 10,
			MinSpeed:  5,
		},
		Win: WinConfig{
			Tolerance: 30,
		},
		Scoring: ScoringConfig{
			Base:             1000,
			PenaltyPerSecond: 10,
			Floor:            100,
		},
		Timer: TimerConfig{
			IntervalMS: 100,
		},
		Terminal: TerminalConfig{
			CellWidth:  8,
			CellHeight: 16,
			HUDRows:    2,
		},
	}
}
