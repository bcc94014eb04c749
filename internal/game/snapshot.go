package game

import "github.com/vovakirdan/tui-maze/internal/core"

// Snapshot captures the observable session state for hosts and tests.
type Snapshot struct {
	State        State
	Level        int // 1-indexed for display
	LevelCount   int
	Score        int
	Elapsed      int
	Scale        float64
	Speed        float64
	Player       core.Point
	Goal         core.Point
	Obstacles    []core.Rect
	TimerRunning bool
	Results      []LevelResult
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	results := make([]LevelResult, len(s.results))
	copy(results, s.results)

	return Snapshot{
		State:        s.state,
		Level:        s.levelIndex + 1,
		LevelCount:   s.catalog.Count(),
		Score:        s.score,
		Elapsed:      s.elapsed,
		Scale:        s.scale,
		Speed:        s.speed,
		Player:       s.player,
		Goal:         s.goal,
		Obstacles:    s.obstacleBoxes(),
		TimerRunning: s.timerRunning,
		Results:      results,
	}
}
