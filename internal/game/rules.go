package game

import (
	"time"

	"github.com/vovakirdan/tui-maze/internal/config"
)

// Rules are the tunable constants of a session.
type Rules struct {
	Arena        Arena
	WinTolerance float64
	Scoring      ScoreRule
	TickInterval time.Duration
}

// DefaultRules returns the classic rules: 800×600 arena, 50-unit player,
// speed max(5, round(10*scale)), 30-unit win tolerance, 1000-10s floored
// at 100, 100ms timer.
func DefaultRules() Rules {
	return Rules{
		Arena:        DefaultArena(),
		WinTolerance: WinTolerance,
		Scoring:      DefaultScoreRule(),
		TickInterval: 100 * time.Millisecond,
	}
}

// RulesFromConfig converts a loaded configuration into rules.
func RulesFromConfig(cfg config.MazeConfig) Rules {
	return Rules{
		Arena: Arena{
			Width:      cfg.Arena.Width,
			Height:     cfg.Arena.Height,
			PlayerSize: cfg.Arena.PlayerSize,
			BaseSpeed:  cfg.Movement.BaseSpeed,
			MinSpeed:   cfg.Movement.MinSpeed,
		},
		WinTolerance: cfg.Win.Tolerance,
		Scoring: ScoreRule{
			Base:             cfg.Scoring.Base,
			PenaltyPerSecond: cfg.Scoring.PenaltyPerSecond,
			Floor:            cfg.Scoring.Floor,
		},
		TickInterval: cfg.Timer.Interval(),
	}
}
