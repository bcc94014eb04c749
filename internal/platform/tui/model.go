package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/game"
	"github.com/vovakirdan/tui-maze/internal/levels"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

// saveTimeout bounds the best-effort write of a finished run.
const saveTimeout = 3 * time.Second

// Options configures a terminal game.
type Options struct {
	Catalog  *levels.Catalog
	Rules    game.Rules
	Terminal config.TerminalConfig
	Runtime  core.RuntimeConfig
	Store    storage.Store // optional
	Logger   *log.Logger   // optional
	Clock    func() time.Time
}

// Model is the Bubble Tea model hosting one maze session.
type Model struct {
	session  *game.Session
	renderer *termRenderer
	sched    *teaScheduler
	keys     *KeyMapper
	screen   *core.Screen
	store    storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig

	board      *ScoreboardModel // non-nil while the scoreboard is open
	embedded   bool             // hosted inside another model; never quits the program itself
	quitting   bool
	backToMenu bool
}

// NewModel creates a Bubble Tea model for the given catalog.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Rules.Arena.Width == 0 {
		opts.Rules = game.DefaultRules()
	}
	if opts.Terminal.CellWidth == 0 {
		opts.Terminal = config.DefaultMazeConfig().Terminal
	}

	m := Model{
		renderer: newTermRenderer(opts.Rules.Arena, opts.Terminal),
		sched:    newTeaScheduler(),
		keys:     NewKeyMapper(),
		screen:   core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		store:    opts.Store,
		logger:   logger,
		config:   opts.Runtime,
	}
	m.renderer.SetTerminalSize(opts.Runtime.ScreenW, opts.Runtime.ScreenH)

	sessionOpts := []game.Option{
		game.WithRules(opts.Rules),
		game.WithScheduler(m.sched),
		game.WithCompletionHook(m.saveRun),
	}
	if opts.Clock != nil {
		sessionOpts = append(sessionOpts, game.WithClock(opts.Clock))
	}
	m.session = game.NewSession(opts.Catalog, m.renderer, sessionOpts...)
	m.loadBest()

	return m
}

// Session exposes the hosted session.
func (m Model) Session() *game.Session {
	return m.session
}

// Init shows the start screen. The first WindowSizeMsg sizes the arena.
func (m Model) Init() tea.Cmd {
	m.session.Init()
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if !m.sched.owns(msg) {
			return m, nil
		}
		m.session.Handle(game.TickEvent(msg.Time))
		return m, m.sched.next()

	case tea.KeyMsg:
		if m.board != nil {
			return m.updateBoard(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey translates keyboard input into session events.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if dir, ok := game.DirectionFromAction(action); ok {
		m.session.Handle(game.DirectionEvent(dir))
		return m, nil
	}

	switch action {
	case core.ActionConfirm:
		switch m.session.State() {
		case game.StateIdle, game.StateGameComplete:
			m.session.Handle(game.Event{Kind: game.EventStart})
		case game.StateLevelComplete:
			m.session.Handle(game.Event{Kind: game.EventNextLevel})
		}
	case core.ActionBack:
		if m.session.State() != game.StatePlaying {
			m.backToMenu = true
			if !m.embedded {
				return m, tea.Quit
			}
			return m, nil
		}
	case core.ActionScores:
		if m.session.State() != game.StatePlaying && m.store != nil {
			board := NewScoreboardModel(m.store, m.config.Pack, m.config.ScreenW, m.config.ScreenH)
			board.embedded = true
			m.board = &board
			return m, m.board.Init()
		}
	}

	// Starting the first level arms the timer.
	return m, m.sched.take()
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	board := next.(ScoreboardModel)
	if board.quitting {
		m.quitting = true
		return m, tea.Quit
	}
	if board.goingBack {
		m.board = nil
		return m, nil
	}
	m.board = &board
	return m, cmd
}

// handleResize processes window resize events. Positions are kept; only the
// scale and the speed follow the new viewport.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.renderer.SetTerminalSize(msg.Width, msg.Height)
	m.session.Handle(game.Event{Kind: game.EventResize})

	if m.board != nil {
		next, _ := m.board.Update(msg)
		board := next.(ScoreboardModel)
		m.board = &board
	}
	return m, nil
}

// saveRun records a finished game. Failures are logged; the game goes on.
func (m Model) saveRun(res game.Result) {
	m.logger.Info("game complete", "player", m.config.Player, "pack", m.config.Pack,
		"score", res.Score, "seconds", res.Seconds)
	if m.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	run := &storage.Run{
		Pack:    m.config.Pack,
		Player:  m.config.Player,
		Score:   res.Score,
		Levels:  len(res.Levels),
		Seconds: res.Seconds,
	}
	if err := m.store.SaveRun(ctx, run); err != nil {
		m.logger.Error("cannot save run", "err", err)
		return
	}
	m.loadBest()
}

func (m Model) loadBest() {
	if m.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	best, err := m.store.HighScore(ctx, m.config.Pack)
	if err != nil {
		m.logger.Warn("cannot load high score", "err", err)
		return
	}
	m.renderer.SetBest(best)
}

// saveScreenshot saves the current screen to a file.
func (m Model) saveScreenshot() {
	m.renderer.Draw(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".maze", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot dir", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.config.Pack, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
	}
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the pack menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.board != nil {
		return m.board.View()
	}

	m.renderer.Draw(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program and blocks until the player leaves or
// ctx is cancelled. It reports whether the player asked for the menu.
func Run(ctx context.Context, opts Options) (backToMenu bool, err error) {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		// Cancelled by the caller's context (e.g. SIGTERM).
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return false, nil
		}
		return false, err
	}
	m, ok := finalModel.(Model)
	return ok && m.BackToMenu(), nil
}
