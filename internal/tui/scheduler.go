package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Tiliavir/focus-shelf/internal/timer"
)

// tickMsg carries the generation of the schedule that produced it.
type tickMsg struct{ gen int }

// teaScheduler turns timer ticks into Bubble Tea messages. Only one
// schedule is live at a time; every Every call starts a new generation and
// ticks from older generations are dropped when they arrive.
type teaScheduler struct {
	gen      int
	active   bool
	interval time.Duration
	tick     func()
}

type teaHandle struct {
	s   *teaScheduler
	gen int
}

func (h *teaHandle) Cancel() {
	if h.s.gen == h.gen {
		h.s.active = false
	}
}

func (s *teaScheduler) Every(interval time.Duration, tick func()) timer.Handle {
	s.gen++
	s.active = true
	s.interval = interval
	s.tick = tick
	return &teaHandle{s: s, gen: s.gen}
}

// cmd schedules the next tick of the live generation.
func (s *teaScheduler) cmd() tea.Cmd {
	if !s.active {
		return nil
	}
	gen := s.gen
	return tea.Tick(s.interval, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (s *teaScheduler) fire(msg tickMsg) tea.Cmd {
	if !s.active || msg.gen != s.gen {
		return nil
	}
	s.tick()
	return s.cmd()
}
