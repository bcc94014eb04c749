// Package tui hosts a maze session in the terminal through Bubble Tea.
// It maps keys to session events, projects the arena onto a character
// grid and serves the same program over SSH.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent when a session timer fires.
type TickMsg struct {
	Time time.Time
	id   uint64 // scheduler that armed the tick
}

var schedulerIDs atomic.Uint64

// teaScheduler implements game.Scheduler on top of tea.Tick. The session
// calls Start from inside Update, so the first tick command is parked until
// the model hands it back to the runtime. Each TickMsg re-arms the timer.
type teaScheduler struct {
	id       uint64
	interval time.Duration
	running  bool
	pending  bool
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{id: schedulerIDs.Add(1)}
}

// Start arms the timer.
func (s *teaScheduler) Start(interval time.Duration) {
	if s.running {
		return
	}
	s.interval = interval
	s.running = true
	s.pending = true
}

// owns reports whether msg was armed by this scheduler. Ticks of a session
// that was left for the menu must not feed the next one.
func (s *teaScheduler) owns(msg TickMsg) bool {
	return msg.id == s.id
}

// take returns the parked first tick, if any.
func (s *teaScheduler) take() tea.Cmd {
	if !s.pending {
		return nil
	}
	s.pending = false
	return s.tick()
}

// next re-arms the timer after a tick was delivered.
func (s *teaScheduler) next() tea.Cmd {
	if !s.running {
		return nil
	}
	return s.tick()
}

func (s *teaScheduler) tick() tea.Cmd {
	id := s.id
	return tea.Tick(s.interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, id: id}
	})
}
