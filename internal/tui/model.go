// Package tui is the Bubble Tea front end for the focus timer and the
// lipgloss rendering of the monthly shelf.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Tiliavir/focus-shelf/internal/model"
	"github.com/Tiliavir/focus-shelf/internal/timecalc"
	"github.com/Tiliavir/focus-shelf/internal/timer"
)

// Options configures the timer screen.
type Options struct {
	// Target is the preselected goal in seconds. It is added to Targets when
	// missing.
	Target  int64
	Targets []int64
	// Save receives every finished session. A returned error is shown on
	// screen; the session is not retried.
	Save func(model.Session) error
	Now  func() time.Time
}

// outcome is shared between model copies so the timer's emit callback can
// report back into the view.
type outcome struct {
	last  *model.Session
	err   error
	saved int
}

// Model is the timer screen.
type Model struct {
	timer   *timer.Timer
	sched   *teaScheduler
	out     *outcome
	targets []int64
	idx     int

	keys     keyMap
	help     help.Model
	bar      progress.Model
	width    int
	quitting bool
}

// New builds an idle timer screen.
func New(opts Options) Model {
	targets := append([]int64(nil), opts.Targets...)
	idx := -1
	for i, t := range targets {
		if t == opts.Target {
			idx = i
		}
	}
	if idx < 0 && opts.Target > 0 {
		targets = append(targets, opts.Target)
		idx = len(targets) - 1
	}
	if len(targets) == 0 {
		targets = []int64{model.DefaultRequiredSeconds}
	}
	idx = max(idx, 0)

	out := &outcome{}
	sched := &teaScheduler{}
	emit := func(s model.Session) {
		out.last = &s
		out.err = nil
		if opts.Save != nil {
			out.err = opts.Save(s)
		}
		if out.err == nil {
			out.saved++
		}
	}
	var topts []timer.Option
	if opts.Now != nil {
		topts = append(topts, timer.WithClock(opts.Now))
	}

	return Model{
		timer:   timer.New(sched, emit, topts...),
		sched:   sched,
		out:     out,
		targets: targets,
		idx:     idx,
		keys:    defaultKeys(),
		help:    help.New(),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(40)),
	}
}

// Close ends an abandoned session. It is safe to call after the program
// has already closed it.
func (m Model) Close() {
	m.timer.ForceClose()
}

// Snapshot exposes the timer state.
func (m Model) Snapshot() timer.Snapshot { return m.timer.Snapshot() }

// Saved reports how many sessions were handed to Save successfully.
func (m Model) Saved() int { return m.out.saved }

func (m Model) target() int64 { return m.targets[m.idx] }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.bar.Width = min(max(msg.Width-8, 10), 60)

	case tickMsg:
		return m, m.sched.fire(msg)

	case tea.KeyMsg:
		state := m.timer.Snapshot().State
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.timer.ForceClose()
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Toggle):
			if state == timer.Idle {
				m.timer.Start(m.target())
				return m, m.sched.cmd()
			}
			m.timer.Stop()

		case key.Matches(msg, m.keys.Pause):
			switch state {
			case timer.Running:
				m.timer.Pause()
			case timer.Paused:
				m.timer.Start(0)
				return m, m.sched.cmd()
			}

		case key.Matches(msg, m.keys.Prev):
			if state == timer.Idle && m.idx > 0 {
				m.idx--
			}

		case key.Matches(msg, m.keys.Next):
			if state == timer.Idle && m.idx < len(m.targets)-1 {
				m.idx++
			}

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	snap := m.timer.Snapshot()

	var b strings.Builder
	target := m.target()
	if snap.State != timer.Idle {
		target = snap.Target
	}
	b.WriteString(titleStyle.Render("Focus") + mutedStyle.Render("  target "+timecalc.FormatClock(target)))
	b.WriteString("\n")

	clock := clockStyle
	if snap.Reached() {
		clock = reachedStyle
	}
	b.WriteString(clock.Render(timecalc.FormatClock(snap.Elapsed)))
	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(snap.Ratio()))
	b.WriteString("\n\n")
	b.WriteString(stateStyle.Render(m.stateLine(snap)))
	b.WriteString("\n")
	if line := m.outcomeLine(); line != "" {
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return frameStyle.Render(b.String())
}

func (m Model) stateLine(snap timer.Snapshot) string {
	switch snap.State {
	case timer.Running:
		if snap.Reached() {
			return "target reached, keep going or stop"
		}
		return "focusing since " + snap.Started.Format("15:04")
	case timer.Paused:
		return "paused"
	default:
		return "ready"
	}
}

func (m Model) outcomeLine() string {
	if m.out.err != nil {
		return errorStyle.Render("save failed: " + m.out.err.Error())
	}
	if m.out.last == nil {
		return ""
	}
	s := m.out.last
	mark := "✗"
	if s.Completed {
		mark = "✓"
	}
	return mutedStyle.Render(fmt.Sprintf("last: %s %s %s",
		mark, timecalc.FormatDuration(s.DurationSeconds), s.EndReason.Label()))
}
