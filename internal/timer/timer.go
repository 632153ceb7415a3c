// Package timer implements the focus timer control loop.
//
// A Timer counts elapsed seconds through a repeating tick it schedules on a
// Scheduler. Pausing, stopping and force-closing always cancel the tick
// handle. Stop and ForceClose emit a session record; Pause never does.
package timer

import (
	"time"

	"github.com/Tiliavir/focus-shelf/internal/model"
)

// Interval is the wall-clock period of one tick. Each tick adds one second
// of elapsed time.
const Interval = time.Second

// State is the control-loop state.
type State string

const (
	Idle    State = "idle"
	Running State = "running"
	Paused  State = "paused"
)

// Handle is a scheduled repeating task. Cancel must be safe to call more
// than once.
type Handle interface {
	Cancel()
}

// Scheduler runs tick every interval until the returned handle is cancelled.
// Ticks must be delivered on the goroutine that drives the Timer.
type Scheduler interface {
	Every(interval time.Duration, tick func()) Handle
}

// Snapshot is a read-only view of the timer.
type Snapshot struct {
	State   State
	Elapsed int64
	Target  int64
	Started time.Time
}

// Reached reports whether the elapsed time met the target.
func (s Snapshot) Reached() bool {
	return s.Target > 0 && s.Elapsed >= s.Target
}

// Ratio is elapsed/target capped at 1, 0 without a target.
func (s Snapshot) Ratio() float64 {
	if s.Target <= 0 {
		return 0
	}
	return min(float64(s.Elapsed)/float64(s.Target), 1)
}

// Option configures a Timer.
type Option func(*Timer)

// WithClock replaces time.Now for start times.
func WithClock(now func() time.Time) Option {
	return func(t *Timer) { t.now = now }
}

// Timer is the focus timer. It is not safe for concurrent use.
type Timer struct {
	sched  Scheduler
	emit   func(model.Session)
	now    func() time.Time
	handle Handle

	state   State
	elapsed int64
	target  int64
	started *time.Time
}

// New returns an idle timer that hands finished sessions to emit.
func New(sched Scheduler, emit func(model.Session), opts ...Option) *Timer {
	t := &Timer{sched: sched, emit: emit, now: time.Now, state: Idle}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Snapshot returns the current state.
func (t *Timer) Snapshot() Snapshot {
	s := Snapshot{State: t.state, Elapsed: t.elapsed, Target: t.target}
	if t.started != nil {
		s.Started = *t.started
	}
	return s
}

// Active reports whether a session is in progress, running or paused.
func (t *Timer) Active() bool { return t.started != nil }

// Start begins or resumes counting towards target seconds. A fresh start
// records the start time; resuming keeps the original one. Starting a
// running timer is a no-op.
func (t *Timer) Start(target int64) {
	if t.state == Running {
		return
	}
	if target > 0 {
		t.target = target
	}
	if t.started == nil {
		now := t.now()
		t.started = &now
		t.elapsed = 0
	}
	t.state = Running
	t.handle = t.sched.Every(Interval, t.tick)
}

// Pause stops counting without emitting a session.
func (t *Timer) Pause() {
	if t.state != Running {
		return
	}
	t.cancel()
	t.state = Paused
}

// Stop ends the session and emits it with EndStopped.
func (t *Timer) Stop() {
	t.finish(model.EndStopped)
}

// ForceClose ends the session because its host is going away and emits it
// with EndAppClosed. Calling it again, or without a session, does nothing.
func (t *Timer) ForceClose() {
	t.finish(model.EndAppClosed)
}

func (t *Timer) tick() {
	if t.state != Running {
		return
	}
	t.elapsed++
}

func (t *Timer) finish(reason model.EndReason) {
	t.cancel()
	if t.started == nil {
		return
	}
	s := model.Session{
		StartTime:       *t.started,
		DurationSeconds: t.elapsed,
		TargetSeconds:   t.target,
		Completed:       t.elapsed >= t.target,
		EndReason:       reason,
	}
	t.state = Idle
	t.elapsed = 0
	t.started = nil
	if t.emit != nil {
		t.emit(s)
	}
}

func (t *Timer) cancel() {
	if t.handle != nil {
		t.handle.Cancel()
		t.handle = nil
	}
}
