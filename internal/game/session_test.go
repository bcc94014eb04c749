package game

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/levels"
)

// recordingRenderer keeps the last projected state and counts calls.
type recordingRenderer struct {
	w, h float64

	next      ObstacleHandle
	obstacles map[ObstacleHandle]core.Rect
	destroyed int

	player, goal               core.Point
	playerVisible, goalVisible bool
	spriteScale                float64
	screens                    map[ScreenName]bool

	level, score, seconds int
	statsScore, statsTime int
	completeScore         int
	completeCalls         int
	playerMoves           int
}

func newRecordingRenderer(w, h float64) *recordingRenderer {
	return &recordingRenderer{
		w:         w,
		h:         h,
		obstacles: make(map[ObstacleHandle]core.Rect),
		screens:   make(map[ScreenName]bool),
	}
}

func (r *recordingRenderer) MaterializeObstacle(box core.Rect) ObstacleHandle {
	r.next++
	r.obstacles[r.next] = box
	return r.next
}

func (r *recordingRenderer) DestroyObstacle(h ObstacleHandle) {
	delete(r.obstacles, h)
	r.destroyed++
}

func (r *recordingRenderer) SetPlayerPosition(p core.Point) { r.player = p; r.playerMoves++ }
func (r *recordingRenderer) SetGoalPosition(p core.Point) { r.goal = p }
func (r *recordingRenderer) SetPlayerVisible(v bool) { r.playerVisible = v }
func (r *recordingRenderer) SetGoalVisible(v bool) { r.goalVisible = v }
func (r *recordingRenderer) SetSpriteScale(s float64) { r.spriteScale = s }
func (r *recordingRenderer) ShowScreen(n ScreenName) { r.screens[n] = true }
func (r *recordingRenderer) HideScreen(n ScreenName) { r.screens[n] = false }
func (r *recordingRenderer) UpdateLevelLabel(n int) { r.level = n }
func (r *recordingRenderer) UpdateScoreLabel(n int) { r.score = n }
func (r *recordingRenderer) UpdateTimeLabel(s int) { r.seconds = s }
func (r *recordingRenderer) ViewportSize() (float64, float64) {
	return r.w, r.h
}

func (r *recordingRenderer) ShowLevelStats(score, seconds int) {
	r.statsScore = score
	r.statsTime = seconds
}

func (r *recordingRenderer) ShowGameComplete(score int) {
	r.completeScore = score
	r.completeCalls++
}

type fakeScheduler struct {
	starts   int
	interval time.Duration
}

func (f *fakeScheduler) Start(interval time.Duration) {
	f.starts++
	f.interval = interval
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type step struct {
	dir Direction
	n   int
}

// Scripted routes through the classic levels at scale 1 with speed 10.
// Each ends within the win tolerance of the goal at (700,500).
var classicRoutes = [][]step{
	{{DirRight, 65}, {DirDown, 50}},
	{{DirDown, 40}, {DirRight, 30}, {DirUp, 30}, {DirRight, 20}, {DirDown, 35}, {DirRight, 20}},
	{{DirRight, 60}, {DirDown, 20}, {DirLeft, 50}, {DirDown, 15}, {DirRight, 50}, {DirDown, 10}, {DirRight, 10}},
}

func walk(s *Session, route []step) {
	for _, st := range route {
		for i := 0; i < st.n; i++ {
			s.Move(st.dir)
		}
	}
}

func newTestSession(w, h float64, opts ...Option) (*Session, *recordingRenderer, *fakeScheduler, *fakeClock) {
	r := newRecordingRenderer(w, h)
	sch := &fakeScheduler{}
	clk := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	all := append([]Option{WithScheduler(sch), WithClock(clk.Now)}, opts...)
	return NewSession(levels.Classic(), r, all...), r, sch, clk
}

func TestSessionInit(t *testing.T) {
	s, r, sch, _ := newTestSession(800, 600)
	s.Init()

	if s.State() != StateIdle {
		t.Errorf("State() = %v, expected idle", s.State())
	}
	if r.playerVisible || r.goalVisible {
		t.Error("player and goal should be hidden before start")
	}
	if !r.screens[ScreenStart] {
		t.Error("start screen should be shown")
	}
	if s.Scale() != 1 {
		t.Errorf("Scale() = %v, expected 1", s.Scale())
	}
	if sch.starts != 0 {
		t.Error("timer should not start before a level loads")
	}
}

func TestInputIgnoredBeforeStart(t *testing.T) {
	s, r, _, _ := newTestSession(800, 600)
	s.Init()

	s.Move(DirRight)
	s.LoadNextLevel()
	s.Tick(time.Now())

	if r.playerMoves != 0 {
		t.Errorf("SetPlayerPosition called %d times while idle", r.playerMoves)
	}
	if s.State() != StateIdle {
		t.Errorf("State() = %v, expected idle", s.State())
	}
}

func TestStartGameLoadsFirstLevel(t *testing.T) {
	s, r, sch, _ := newTestSession(800, 600)
	s.Init()
	s.StartGame()

	snap := s.Snapshot()
	if snap.State != StatePlaying {
		t.Fatalf("State = %v, expected playing", snap.State)
	}
	if snap.Level != 1 || r.level != 1 {
		t.Errorf("Level = %d (label %d), expected 1", snap.Level, r.level)
	}
	if snap.Player != core.Pt(50, 50) || r.player != core.Pt(50, 50) {
		t.Errorf("Player = %v (rendered %v), expected (50,50)", snap.Player, r.player)
	}
	if snap.Goal != core.Pt(700, 500) || r.goal != core.Pt(700, 500) {
		t.Errorf("Goal = %v (rendered %v), expected (700,500)", snap.Goal, r.goal)
	}
	if len(snap.Obstacles) != 2 || len(r.obstacles) != 2 {
		t.Fatalf("obstacles = %d (rendered %d), expected 2", len(snap.Obstacles), len(r.obstacles))
	}
	if snap.Obstacles[0] != core.NewRect(200, 100, 400, 30) || snap.Obstacles[1] != core.NewRect(200, 400, 400, 30) {
		t.Errorf("Obstacles = %v", snap.Obstacles)
	}
	if !r.playerVisible || !r.goalVisible {
		t.Error("player and goal should be visible")
	}
	if r.spriteScale != 1 {
		t.Errorf("sprite scale = %v, expected 1", r.spriteScale)
	}
	if r.screens[ScreenStart] {
		t.Error("start screen should be hidden")
	}
	if snap.Score != 0 || snap.Elapsed != 0 || r.score != 0 || r.seconds != 0 {
		t.Errorf("score/elapsed = %d/%d, expected zero", snap.Score, snap.Elapsed)
	}
	if sch.starts != 1 || sch.interval != 100*time.Millisecond {
		t.Errorf("scheduler starts = %d interval %v, expected 1 at 100ms", sch.starts, sch.interval)
	}
	if !snap.TimerRunning {
		t.Error("timer should be running")
	}
}

func TestStartIgnoredWhilePlaying(t *testing.T) {
	s, _, _, _ := newTestSession(800, 600)
	s.Init()
	s.StartGame()
	s.Move(DirRight)

	s.StartGame()
	if got := s.Snapshot().Player; got != core.Pt(60, 50) {
		t.Errorf("StartGame while playing reset the player to %v", got)
	}

	s.LoadNextLevel()
	if s.Snapshot().Level != 1 {
		t.Error("LoadNextLevel while playing should be ignored")
	}
}

func TestLoadLevelRebuildsObstacles(t *testing.T) {
	s, r, sch, _ := newTestSession(800, 600)
	s.Init()
	s.StartGame()

	if err := s.LoadLevel(1); err != nil {
		t.Fatalf("LoadLevel(1) error: %v", err)
	}
	if r.destroyed != 2 {
		t.Errorf("destroyed %d obstacles, expected 2", r.destroyed)
	}
	if len(r.obstacles) != 4 || len(s.Snapshot().Obstacles) != 4 {
		t.Errorf("obstacles = %d, expected 4", len(r.obstacles))
	}
	if r.level != 2 {
		t.Errorf("level label = %d, expected 2", r.level)
	}

	if err := s.LoadLevel(2); err != nil {
		t.Fatalf("LoadLevel(2) error: %v", err)
	}
	if len(r.obstacles) != 3 {
		t.Errorf("obstacles = %d, expected 3", len(r.obstacles))
	}
	if sch.starts != 1 {
		t.Errorf("scheduler started %d times, expected once", sch.starts)
	}
}

func TestLoadLevelOutOfRange(t *testing.T) {
	s, r, _, _ := newTestSession(800, 600)
	s.Init()
	s.StartGame()
	before := s.Snapshot()

	for _, i := range []int{-1, 3} {
		err := s.LoadLevel(i)
		if !errors.Is(err, ErrLevelOutOfRange) {
			t.Errorf("LoadLevel(%d) error = %v, expected ErrLevelOutOfRange", i, err)
		}
	}

	after := s.Snapshot()
	if after.Level != before.Level || after.State != before.State || len(r.obstacles) != 2 {
		t.Errorf("failed load changed state: %+v", after)
	}
}

func TestTickUpdatesElapsed(t *testing.T) {
	s, r, _, clk := newTestSession(800, 600)
	s.Init()
	s.StartGame()

	clk.Advance(2500 * time.Millisecond)
	s.Tick(clk.Now())
	if s.Snapshot().Elapsed != 2 || r.seconds != 2 {
		t.Errorf("Elapsed = %d (label %d), expected 2", s.Snapshot().Elapsed, r.seconds)
	}

	// Ticks never move the player or check the goal
	if r.playerMoves != 1 || s.State() != StatePlaying {
		t.Error("Tick should not move the player or change state")
	}

	// Clock going backwards is treated as zero
	s.Tick(clk.Now().Add(-time.Hour))
	if s.Snapshot().Elapsed != 0 {
		t.Errorf("Elapsed = %d, expected 0 for a time before start", s.Snapshot().Elapsed)
	}
}

func TestClassicRoutesComplete(t *testing.T) {
	for i, route := range classicRoutes {
		s, r, _, _ := newTestSession(800, 600)
		s.Init()
		s.StartGame()
		if i > 0 {
			if err := s.LoadLevel(i); err != nil {
				t.Fatal(err)
			}
		}

		walk(s, route)

		if s.State() != StateLevelComplete {
			t.Errorf("level %d: State() = %v at %v, expected level complete", i+1, s.State(), s.Snapshot().Player)
			continue
		}
		if !r.screens[ScreenLevelComplete] {
			t.Errorf("level %d: level complete screen not shown", i+1)
		}
		if r.statsScore != 1000 || r.statsTime != 0 {
			t.Errorf("level %d: stats = %d/%ds, expected 1000/0s", i+1, r.statsScore, r.statsTime)
		}
	}
}

func TestMovesIgnoredAfterWin(t *testing.T) {
	s, r, _, _ := newTestSession(800, 600)
	s.Init()
	s.StartGame()
	walk(s, classicRoutes[0])

	moves := r.playerMoves
	pos := s.Snapshot().Player
	s.Move(DirLeft)
	s.Move(DirUp)
	if r.playerMoves != moves || s.Snapshot().Player != pos {
		t.Error("moves after a win should be ignored")
	}
}

func TestScoreAccumulation(t *testing.T) {
	var done []Result
	s, r, _, clk := newTestSession(800, 600, WithCompletionHook(func(res Result) {
		done = append(done, res)
	}))
	s.Init()
	s.StartGame()

	clk.Advance(10 * time.Second)
	walk(s, classicRoutes[0])
	if s.Score() != 900 || r.score != 900 {
		t.Fatalf("score after level 1 = %d (label %d), expected 900", s.Score(), r.score)
	}
	if r.statsScore != 900 || r.statsTime != 10 {
		t.Errorf("level 1 stats = %d/%ds, expected 900/10s", r.statsScore, r.statsTime)
	}

	s.LoadNextLevel()
	if s.State() != StatePlaying || r.screens[ScreenLevelComplete] {
		t.Fatal("LoadNextLevel should resume play and hide the level complete screen")
	}
	clk.Advance(95 * time.Second)
	walk(s, classicRoutes[1])
	if s.Score() != 1000 {
		t.Fatalf("score after level 2 = %d, expected 1000", s.Score())
	}

	s.LoadNextLevel()
	walk(s, classicRoutes[2])
	if s.Score() != 2000 {
		t.Fatalf("score after level 3 = %d, expected 2000", s.Score())
	}

	s.LoadNextLevel()
	if s.State() != StateGameComplete {
		t.Fatalf("State() = %v, expected game complete", s.State())
	}
	if !r.screens[ScreenStart] {
		t.Error("start screen should be shown after the last level")
	}
	if r.completeCalls != 1 || r.completeScore != 2000 {
		t.Errorf("ShowGameComplete called %d times with %d", r.completeCalls, r.completeScore)
	}

	if len(done) != 1 {
		t.Fatalf("completion hook fired %d times, expected 1", len(done))
	}
	res := done[0]
	if res.Score != 2000 || res.Seconds != 105 || len(res.Levels) != 3 {
		t.Errorf("Result = %+v", res)
	}
	if res.Levels[1] != (LevelResult{Level: 2, Score: 100, Seconds: 95}) {
		t.Errorf("Levels[1] = %+v", res.Levels[1])
	}
}

func TestRestartAfterGameComplete(t *testing.T) {
	s, r, sch, _ := newTestSession(800, 600)
	s.Init()
	s.StartGame()
	for i, route := range classicRoutes {
		walk(s, route)
		if s.State() != StateLevelComplete {
			t.Fatalf("level %d not completed", i+1)
		}
		s.LoadNextLevel()
	}
	if s.State() != StateGameComplete {
		t.Fatalf("State() = %v, expected game complete", s.State())
	}

	s.StartGame()
	snap := s.Snapshot()
	if snap.State != StatePlaying || snap.Level != 1 || snap.Score != 0 || len(snap.Results) != 0 {
		t.Errorf("restart snapshot = %+v", snap)
	}
	if r.score != 0 || r.level != 1 {
		t.Errorf("HUD after restart = level %d score %d", r.level, r.score)
	}
	if sch.starts != 1 {
		t.Errorf("scheduler started %d times across games, expected once", sch.starts)
	}
}

func TestScaleInvariance(t *testing.T) {
	s, r, _, _ := newTestSession(1600, 1200)
	s.Init()
	s.StartGame()

	snap := s.Snapshot()
	if snap.Scale != 2 || snap.Speed != 20 {
		t.Fatalf("scale/speed = %v/%v, expected 2/20", snap.Scale, snap.Speed)
	}
	if snap.Player != core.Pt(100, 100) || snap.Goal != core.Pt(1400, 1000) {
		t.Errorf("player/goal = %v/%v", snap.Player, snap.Goal)
	}
	if snap.Obstacles[0] != core.NewRect(400, 200, 800, 60) {
		t.Errorf("Obstacles[0] = %v", snap.Obstacles[0])
	}
	if r.spriteScale != 2 {
		t.Errorf("sprite scale = %v, expected 2", r.spriteScale)
	}

	// The same key sequence wins at any scale
	walk(s, classicRoutes[0])
	if s.State() != StateLevelComplete {
		t.Errorf("State() = %v at %v, expected level complete", s.State(), s.Snapshot().Player)
	}
}

func TestResizeKeepsPositions(t *testing.T) {
	s, r, _, _ := newTestSession(800, 600)
	s.Init()
	s.StartGame()
	s.Move(DirRight)

	r.w, r.h = 400, 300
	s.Handle(Event{Kind: EventResize})

	snap := s.Snapshot()
	if snap.Scale != 0.5 || snap.Speed != 5 {
		t.Errorf("scale/speed = %v/%v, expected 0.5/5", snap.Scale, snap.Speed)
	}
	if snap.Player != core.Pt(60, 50) {
		t.Errorf("Player = %v, expected unchanged (60,50)", snap.Player)
	}
	if snap.Obstacles[0] != core.NewRect(200, 100, 400, 30) {
		t.Errorf("Obstacles[0] = %v, expected unchanged until reload", snap.Obstacles[0])
	}

	s.Move(DirRight)
	if got := s.Snapshot().Player; got != core.Pt(65, 50) {
		t.Errorf("Player after move = %v, expected (65,50)", got)
	}

	if err := s.LoadLevel(0); err != nil {
		t.Fatal(err)
	}
	if got := s.Snapshot().Obstacles[0]; got != core.NewRect(100, 50, 200, 15) {
		t.Errorf("Obstacles[0] after reload = %v", got)
	}
}

func TestZeroViewportFreezesPlayer(t *testing.T) {
	s, _, _, _ := newTestSession(0, 0)
	s.Init()
	s.StartGame()

	for _, d := range []Direction{DirRight, DirDown, DirLeft, DirUp} {
		s.Move(d)
	}

	snap := s.Snapshot()
	if snap.Scale != 0 {
		t.Errorf("Scale = %v, expected 0", snap.Scale)
	}
	if snap.Player != core.Pt(0, 0) {
		t.Errorf("Player = %v, expected frozen at origin", snap.Player)
	}
	if snap.State != StatePlaying {
		t.Errorf("State = %v, expected playing", snap.State)
	}
}

func TestHandleDispatch(t *testing.T) {
	s, r, _, clk := newTestSession(800, 600)
	s.Init()

	s.Handle(Event{Kind: EventStart})
	if s.State() != StatePlaying {
		t.Fatalf("State() = %v after start event", s.State())
	}

	s.Handle(DirectionEvent(DirDown))
	if got := s.Snapshot().Player; got != core.Pt(50, 60) {
		t.Errorf("Player = %v after direction event", got)
	}

	clk.Advance(3 * time.Second)
	s.Handle(Event{Kind: EventTick})
	if r.seconds != 3 {
		t.Errorf("time label = %d, expected 3 from session clock", r.seconds)
	}
	s.Handle(TickEvent(clk.Now().Add(2 * time.Second)))
	if r.seconds != 5 {
		t.Errorf("time label = %d, expected 5 from event time", r.seconds)
	}

	walk(s, []step{{DirUp, 1}})
	walk(s, classicRoutes[0])
	s.Handle(Event{Kind: EventNextLevel})
	if s.Snapshot().Level != 2 {
		t.Errorf("Level = %d after next event, expected 2", s.Snapshot().Level)
	}
}

func TestEmptyCatalogCompletesImmediately(t *testing.T) {
	r := newRecordingRenderer(800, 600)
	s := NewSession(levels.NewCatalog("empty", "Empty", nil), r)
	s.Init()
	s.StartGame()

	if s.State() != StateGameComplete {
		t.Errorf("State() = %v, expected game complete", s.State())
	}
	if r.completeCalls != 1 || r.completeScore != 0 {
		t.Errorf("ShowGameComplete calls = %d score %d", r.completeCalls, r.completeScore)
	}
}

func TestCustomRules(t *testing.T) {
	rules := DefaultRules()
	rules.WinTolerance = 60
	rules.Scoring = ScoreRule{Base: 50, PenaltyPerSecond: 1, Floor: 5}

	s, r, _, _ := newTestSession(800, 600, WithRules(rules))
	s.Init()
	s.StartGame()

	// Wider tolerance wins earlier on the first route
	walk(s, []step{{DirRight, 65}, {DirDown, 40}})
	if s.State() != StateLevelComplete {
		t.Fatalf("State() = %v at %v, expected level complete", s.State(), s.Snapshot().Player)
	}
	if r.statsScore != 50 {
		t.Errorf("level score = %d, expected 50", r.statsScore)
	}
}
