// Package config provides YAML-based configuration for the maze engine
// and environment defaults for the hosts.
package config

import (
	"errors"
	"time"
)

// MazeConfig contains all tunable engine and host parameters.
type MazeConfig struct {
	Arena    ArenaConfig    `yaml:"arena"`
	Movement MovementConfig `yaml:"movement"`
	Win      WinConfig      `yaml:"win"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Timer    TimerConfig    `yaml:"timer"`
	Terminal TerminalConfig `yaml:"terminal"`
}

// ArenaConfig defines the logical design area.
type ArenaConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	PlayerSize float64 `yaml:"player_size"`
}

// MovementConfig defines the step length before and after scaling.
type MovementConfig struct {
	BaseSpeed float64 `yaml:"base_speed"`
	MinSpeed  float64 `yaml:"min_speed"`
}

// WinConfig defines the goal proximity threshold in logical units.
type WinConfig struct {
	Tolerance float64 `yaml:"tolerance"`
}

// ScoringConfig defines the per-level time score.
type ScoringConfig struct {
	Base             int `yaml:"base"`
	PenaltyPerSecond int `yaml:"penalty_per_second"`
	Floor            int `yaml:"floor"`
}

// TimerConfig defines the elapsed-time refresh interval.
type TimerConfig struct {
	IntervalMS int `yaml:"interval_ms"`
}

// Interval returns the timer interval as a duration.
func (t TimerConfig) Interval() time.Duration {
	return time.Duration(t.IntervalMS) * time.Millisecond
}

// TerminalConfig defines how rendered pixels map onto terminal cells.
type TerminalConfig struct {
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
	HUDRows    int `yaml:"hud_rows"`
}

// Validate checks that the values can drive a session.
func (c MazeConfig) Validate() error {
	var errs []error
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		errs = append(errs, errors.New("arena size must be positive"))
	}
	if c.Arena.PlayerSize <= 0 || c.Arena.PlayerSize > c.Arena.Width || c.Arena.PlayerSize > c.Arena.Height {
		errs = append(errs, errors.New("player_size must fit inside the arena"))
	}
	if c.Movement.BaseSpeed <= 0 || c.Movement.MinSpeed < 0 {
		errs = append(errs, errors.New("movement speeds must be positive"))
	}
	if c.Win.Tolerance <= 0 {
		errs = append(errs, errors.New("win tolerance must be positive"))
	}
	if c.Scoring.Floor < 0 || c.Scoring.PenaltyPerSecond < 0 {
		errs = append(errs, errors.New("scoring floor and penalty must not be negative"))
	}
	if c.Timer.IntervalMS <= 0 {
		errs = append(errs, errors.New("timer interval must be positive"))
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 || c.Terminal.HUDRows < 0 {
		errs = append(errs, errors.New("terminal cell size must be positive"))
	}
	return errors.Join(errs...)
}
