package game

// ScoreRule converts a level's elapsed seconds into points.
type ScoreRule struct {
	Base             int
	PenaltyPerSecond int
	Floor            int
}

// DefaultScoreRule returns 1000 minus 10 per second, never below 100.
func DefaultScoreRule() ScoreRule {
	return ScoreRule{Base: 1000, PenaltyPerSecond: 10, Floor: 100}
}

// Score returns the points for a level completed in elapsed seconds.
func (r ScoreRule) Score(elapsed int) int {
	return max(r.Base-r.PenaltyPerSecond*elapsed, r.Floor)
}

// ScoreForLevel applies the default rule.
func ScoreForLevel(elapsed int) int {
	return DefaultScoreRule().Score(elapsed)
}
