package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/levels"
)

// ErrLevelOutOfRange is returned by LoadLevel for an index outside the catalog.
var ErrLevelOutOfRange = errors.New("game: level index out of range")

// State is a lifecycle state of a session.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StateLevelComplete
	StateGameComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateLevelComplete:
		return "level_complete"
	case StateGameComplete:
		return "game_complete"
	default:
		return "unknown"
	}
}

// LevelResult records one completed level.
type LevelResult struct {
	Level   int // 1-indexed
	Score   int
	Seconds int
}

// Result summarizes a finished game.
type Result struct {
	Score   int
	Seconds int
	Levels  []LevelResult
}

type obstacleInstance struct {
	handle ObstacleHandle
	box    core.Rect
}

// Session is one player's run through a level catalog.
// A Session is not safe for concurrent use; hosts deliver every event from
// a single goroutine.
type Session struct {
	catalog   *levels.Catalog
	renderer  Renderer
	scheduler Scheduler
	rules     Rules
	now       func() time.Time
	onDone    func(Result)

	state      State
	levelIndex int
	score      int
	startTime  time.Time
	elapsed    int
	scale      float64
	speed      float64

	player    core.Point
	goal      core.Point
	obstacles []obstacleInstance

	timerRunning bool
	results      []LevelResult
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithScheduler sets the tick scheduler. Without one, the host must
// deliver ticks itself.
func WithScheduler(sch Scheduler) Option {
	return func(s *Session) { s.scheduler = sch }
}

// WithRules overrides the default rules.
func WithRules(r Rules) Option {
	return func(s *Session) { s.rules = r }
}

// WithCompletionHook registers fn to run when the last level is finished.
func WithCompletionHook(fn func(Result)) Option {
	return func(s *Session) { s.onDone = fn }
}

// NewSession creates an idle session over catalog, drawing through r.
func NewSession(catalog *levels.Catalog, r Renderer, opts ...Option) *Session {
	s := &Session{
		catalog:  catalog,
		renderer: r,
		rules:    DefaultRules(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init prepares the display: sprites hidden, start screen shown and the
// scale computed from the current viewport.
func (s *Session) Init() {
	s.renderer.SetPlayerVisible(false)
	s.renderer.SetGoalVisible(false)
	s.renderer.ShowScreen(ScreenStart)
	s.Resize()
}

// StartGame begins a new run from level 0. It is ignored unless the
// session is idle or a previous game has completed.
func (s *Session) StartGame() {
	if s.state != StateIdle && s.state != StateGameComplete {
		return
	}

	s.levelIndex = 0
	s.score = 0
	s.elapsed = 0
	s.results = nil

	s.updateHUD()
	s.renderer.HideScreen(ScreenStart)

	if err := s.LoadLevel(0); err != nil {
		// Empty catalog: nothing to play.
		s.finish()
		return
	}
	s.state = StatePlaying
}

// LoadLevel tears down the current level and builds level i at the current
// scale. On error the session is left unchanged.
func (s *Session) LoadLevel(i int) error {
	lvl, ok := s.catalog.Level(i)
	if !ok {
		return fmt.Errorf("%w: %d of %d", ErrLevelOutOfRange, i, s.catalog.Count())
	}

	s.clearObstacles()
	s.Resize()

	s.levelIndex = i
	s.player = lvl.PlayerStart.Scale(s.scale)
	s.renderer.SetPlayerPosition(s.player)
	s.renderer.SetPlayerVisible(true)

	s.goal = lvl.Goal.Scale(s.scale)
	s.renderer.SetGoalPosition(s.goal)
	s.renderer.SetGoalVisible(true)

	s.renderer.SetSpriteScale(s.scale)

	for _, o := range lvl.Obstacles {
		box := o.Scale(s.scale)
		h := s.renderer.MaterializeObstacle(box)
		s.obstacles = append(s.obstacles, obstacleInstance{handle: h, box: box})
	}

	s.renderer.UpdateLevelLabel(i + 1)

	s.startTime = s.now()
	s.elapsed = 0

	s.ensureTimer()
	return nil
}

// LoadNextLevel advances after a level has been completed. Past the last
// level the game completes.
func (s *Session) LoadNextLevel() {
	if s.state != StateLevelComplete {
		return
	}

	s.renderer.HideScreen(ScreenLevelComplete)
	s.levelIndex++

	if s.levelIndex < s.catalog.Count() {
		if err := s.LoadLevel(s.levelIndex); err == nil {
			s.state = StatePlaying
			return
		}
	}
	s.finish()
}

// Move steps the player one unit in dir and checks for a win.
// It is ignored unless a level is being played.
func (s *Session) Move(dir Direction) {
	if s.state != StatePlaying {
		return
	}

	next := Move(dir, s.player, s.scale, s.rules.Arena, s.obstacleBoxes())
	if next != s.player {
		s.player = next
		s.renderer.SetPlayerPosition(next)
	}

	if Within(s.player, s.goal, s.rules.WinTolerance*s.scale) {
		s.completeLevel()
	}
}

// Tick refreshes the elapsed-time display. It never moves or checks anything.
func (s *Session) Tick(now time.Time) {
	if s.state != StatePlaying {
		return
	}
	s.elapsed = elapsedSeconds(s.startTime, now)
	s.renderer.UpdateTimeLabel(s.elapsed)
}

// Resize recomputes scale and speed from the renderer's viewport.
// Positions already on screen are not re-projected until the next level load.
func (s *Session) Resize() {
	w, h := s.renderer.ViewportSize()
	a := s.rules.Arena
	s.scale = core.ScaleFactor(w, h, a.Width, a.Height)
	s.speed = a.Speed(s.scale)
}

func (s *Session) completeLevel() {
	s.state = StateLevelComplete
	s.elapsed = elapsedSeconds(s.startTime, s.now())

	levelScore := s.rules.Scoring.Score(s.elapsed)
	s.score += levelScore
	s.results = append(s.results, LevelResult{
		Level:   s.levelIndex + 1,
		Score:   levelScore,
		Seconds: s.elapsed,
	})

	s.renderer.UpdateScoreLabel(s.score)
	s.renderer.ShowLevelStats(levelScore, s.elapsed)
	s.renderer.ShowScreen(ScreenLevelComplete)
}

func (s *Session) finish() {
	s.state = StateGameComplete
	s.renderer.ShowScreen(ScreenStart)
	s.renderer.ShowGameComplete(s.score)

	if s.onDone != nil {
		s.onDone(s.result())
	}
}

func (s *Session) result() Result {
	r := Result{
		Score:  s.score,
		Levels: make([]LevelResult, len(s.results)),
	}
	copy(r.Levels, s.results)
	for _, l := range s.results {
		r.Seconds += l.Seconds
	}
	return r
}

func (s *Session) updateHUD() {
	s.renderer.UpdateLevelLabel(s.levelIndex + 1)
	s.renderer.UpdateScoreLabel(s.score)
	s.renderer.UpdateTimeLabel(s.elapsed)
}

func (s *Session) ensureTimer() {
	if s.timerRunning {
		return
	}
	s.timerRunning = true
	if s.scheduler != nil {
		s.scheduler.Start(s.rules.TickInterval)
	}
}

func (s *Session) clearObstacles() {
	for _, o := range s.obstacles {
		s.renderer.DestroyObstacle(o.handle)
	}
	s.obstacles = nil
}

func (s *Session) obstacleBoxes() []core.Rect {
	boxes := make([]core.Rect, len(s.obstacles))
	for i, o := range s.obstacles {
		boxes[i] = o.box
	}
	return boxes
}

// elapsedSeconds returns whole seconds from start to now, never negative.
func elapsedSeconds(start, now time.Time) int {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Score returns the running total.
func (s *Session) Score() int { return s.score }

// Scale returns the current scale factor.
func (s *Session) Scale() float64 { return s.scale }

// Rules returns the session's rules.
func (s *Session) Rules() Rules { return s.rules }
