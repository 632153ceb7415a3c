package timer_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/focus-shelf/internal/model"
	"github.com/Tiliavir/focus-shelf/internal/timer"
)

var start = time.Date(2026, 2, 24, 9, 0, 0, 0, time.UTC)

type recorder struct {
	sessions []model.Session
}

func (r *recorder) emit(s model.Session) { r.sessions = append(r.sessions, s) }

func newTimer() (*timer.Timer, *timer.ManualScheduler, *recorder) {
	sched := &timer.ManualScheduler{}
	rec := &recorder{}
	tm := timer.New(sched, rec.emit, timer.WithClock(func() time.Time { return start }))
	return tm, sched, rec
}

func TestStopEmitsPartialSession(t *testing.T) {
	tm, sched, rec := newTimer()
	tm.Start(1800)
	sched.Advance(900)
	tm.Stop()

	if len(rec.sessions) != 1 {
		t.Fatalf("emitted %d sessions, want 1", len(rec.sessions))
	}
	want := model.Session{
		StartTime:       start,
		DurationSeconds: 900,
		TargetSeconds:   1800,
		Completed:       false,
		EndReason:       model.EndStopped,
	}
	if got := rec.sessions[0]; got != want {
		t.Errorf("session = %+v, want %+v", got, want)
	}

	snap := tm.Snapshot()
	if snap.State != timer.Idle || snap.Elapsed != 0 {
		t.Errorf("after stop: %+v, want idle with 0 elapsed", snap)
	}
	if sched.Live() != 0 {
		t.Errorf("live ticks = %d after stop", sched.Live())
	}
}

func TestRunsPastTarget(t *testing.T) {
	tm, sched, rec := newTimer()
	tm.Start(60)
	sched.Advance(90)

	snap := tm.Snapshot()
	if snap.State != timer.Running || snap.Elapsed != 90 {
		t.Fatalf("snapshot = %+v, want running at 90", snap)
	}
	if !snap.Reached() || snap.Ratio() != 1 {
		t.Errorf("Reached = %v Ratio = %v", snap.Reached(), snap.Ratio())
	}
	if len(rec.sessions) != 0 {
		t.Fatal("reaching the target must not emit")
	}

	tm.Stop()
	if !rec.sessions[0].Completed || rec.sessions[0].EndReason != model.EndStopped {
		t.Errorf("session = %+v, want completed and stopped", rec.sessions[0])
	}
}

func TestPauseAndResume(t *testing.T) {
	tm, sched, rec := newTimer()
	tm.Start(1800)
	sched.Advance(10)
	tm.Pause()

	if sched.Live() != 0 {
		t.Fatalf("live ticks = %d while paused", sched.Live())
	}
	sched.Advance(50)
	if snap := tm.Snapshot(); snap.State != timer.Paused || snap.Elapsed != 10 {
		t.Errorf("paused snapshot = %+v", snap)
	}
	if len(rec.sessions) != 0 {
		t.Fatal("pause emitted a session")
	}

	tm.Start(0)
	sched.Advance(5)
	snap := tm.Snapshot()
	if snap.Elapsed != 15 || snap.Target != 1800 || !snap.Started.Equal(start) {
		t.Errorf("resumed snapshot = %+v", snap)
	}
	if sched.Live() != 1 {
		t.Errorf("live ticks = %d, want 1", sched.Live())
	}
}

func TestStopWhilePaused(t *testing.T) {
	tm, sched, rec := newTimer()
	tm.Start(1800)
	sched.Advance(30)
	tm.Pause()
	tm.Stop()

	if len(rec.sessions) != 1 || rec.sessions[0].DurationSeconds != 30 {
		t.Fatalf("sessions = %+v", rec.sessions)
	}
}

func TestGuards(t *testing.T) {
	tm, sched, rec := newTimer()

	tm.Pause()
	tm.Stop()
	tm.ForceClose()
	if len(rec.sessions) != 0 {
		t.Fatalf("idle timer emitted %d sessions", len(rec.sessions))
	}

	tm.Start(1800)
	tm.Start(3600)
	if sched.Live() != 1 {
		t.Errorf("double start scheduled %d ticks", sched.Live())
	}
	if tm.Snapshot().Target != 1800 {
		t.Errorf("Start while running changed target to %d", tm.Snapshot().Target)
	}

	sched.Advance(3)
	if tm.Snapshot().Elapsed != 3 {
		t.Errorf("Elapsed = %d, want 3", tm.Snapshot().Elapsed)
	}
}

func TestForceCloseOnce(t *testing.T) {
	tm, sched, rec := newTimer()
	tm.Start(1800)
	sched.Advance(120)

	tm.ForceClose()
	tm.ForceClose()
	tm.Stop()

	if len(rec.sessions) != 1 {
		t.Fatalf("emitted %d sessions, want 1", len(rec.sessions))
	}
	s := rec.sessions[0]
	if s.EndReason != model.EndAppClosed || s.DurationSeconds != 120 || s.Completed {
		t.Errorf("session = %+v", s)
	}
	if tm.Active() {
		t.Error("timer still active after force close")
	}
}

func TestSnapshotRatio(t *testing.T) {
	tests := []struct {
		snap timer.Snapshot
		want float64
	}{
		{timer.Snapshot{Elapsed: 10, Target: 0}, 0},
		{timer.Snapshot{Elapsed: 450, Target: 1800}, 0.25},
		{timer.Snapshot{Elapsed: 5000, Target: 1800}, 1},
	}
	for _, tt := range tests {
		if got := tt.snap.Ratio(); got != tt.want {
			t.Errorf("Ratio(%+v) = %v, want %v", tt.snap, got, tt.want)
		}
	}
}

func TestManualHandleCancelIdempotent(t *testing.T) {
	sched := &timer.ManualScheduler{}
	n := 0
	h := sched.Every(time.Second, func() { n++ })
	sched.Advance(2)
	h.Cancel()
	h.Cancel()
	sched.Advance(2)
	if n != 2 {
		t.Errorf("ticks = %d, want 2", n)
	}
}
