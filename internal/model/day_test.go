package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Tiliavir/focus-shelf/internal/model"
)

var day = time.Date(2026, 2, 27, 9, 30, 0, 0, time.UTC)

func session(t *testing.T, duration, target int64, reason model.EndReason) model.Session {
	t.Helper()
	s, err := model.NewSession(day, duration, target, reason)
	if err != nil {
		t.Fatalf("NewSession(%d, %d, %s): %v", duration, target, reason, err)
	}
	return s
}

func TestBookTypeTiers(t *testing.T) {
	tests := []struct {
		duration int64
		want     model.BookType
	}{
		{2000, model.BookNormal},
		{1800, model.BookNormal},
		{3599, model.BookNormal},
		{3600, model.BookLuxury},
		{4000, model.BookLuxury},
		{7199, model.BookLuxury},
		{7200, model.BookGolden},
		{8000, model.BookGolden},
	}
	for _, tt := range tests {
		d := model.NewDayRecord(day, model.DefaultRequiredSeconds)
		d.AddSession(session(t, tt.duration, 1800, model.EndStopped))

		if !d.IsAchieved() {
			t.Errorf("duration %d: expected achieved", tt.duration)
		}
		if d.StudySeconds != tt.duration {
			t.Errorf("duration %d: StudySeconds = %d", tt.duration, d.StudySeconds)
		}
		if got := d.BookType(); got != tt.want {
			t.Errorf("duration %d: BookType = %s, want %s", tt.duration, got, tt.want)
		}
	}
}

func TestFailedSessionsDoNotCount(t *testing.T) {
	d := model.NewDayRecord(day, model.DefaultRequiredSeconds)
	d.AddSession(session(t, 1700, 1800, model.EndStopped))

	if d.StudySeconds != 0 {
		t.Errorf("StudySeconds = %d, want 0 for a failed session", d.StudySeconds)
	}
	if len(d.Sessions) != 1 {
		t.Errorf("Sessions = %d, want 1", len(d.Sessions))
	}
}

func TestFailureRate(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		d := model.NewDayRecord(day, model.DefaultRequiredSeconds)
		if d.FailureRate() != 0 {
			t.Errorf("FailureRate = %v, want 0", d.FailureRate())
		}
		if d.ShouldShowBook() {
			t.Error("ShouldShowBook must be false without sessions")
		}
	})

	t.Run("half failed", func(t *testing.T) {
		d := model.NewDayRecord(day, model.DefaultRequiredSeconds)
		d.AddSession(session(t, 1800, 1800, model.EndCompleted))
		d.AddSession(session(t, 600, 1800, model.EndStopped))
		if d.FailureRate() != 0.5 {
			t.Errorf("FailureRate = %v, want 0.5", d.FailureRate())
		}
		if !d.ShouldShowBook() {
			t.Error("ShouldShowBook = false, want true")
		}
		if d.CompletedCount() != 1 || d.FailedCount() != 1 {
			t.Errorf("counts = %d/%d, want 1/1", d.CompletedCount(), d.FailedCount())
		}
	})

	t.Run("all failed", func(t *testing.T) {
		d := model.NewDayRecord(day, model.DefaultRequiredSeconds)
		d.AddSession(session(t, 100, 1800, model.EndAppClosed))
		if d.FailureRate() != 1.0 {
			t.Errorf("FailureRate = %v, want 1", d.FailureRate())
		}
		if d.ShouldShowBook() {
			t.Error("ShouldShowBook = true, want false")
		}
		if d.BookType() != model.BookNone {
			t.Errorf("BookType = %s, want none", d.BookType())
		}
	})

	t.Run("all completed", func(t *testing.T) {
		d := model.NewDayRecord(day, model.DefaultRequiredSeconds)
		d.AddSession(session(t, 900, 900, model.EndStopped))
		d.AddSession(session(t, 900, 900, model.EndCompleted))
		if d.FailureRate() != 0 {
			t.Errorf("FailureRate = %v, want 0", d.FailureRate())
		}
	})
}

func TestBookNoneWhenNotAchieved(t *testing.T) {
	d := model.NewDayRecord(day, 3600)
	d.AddSession(session(t, 1800, 1800, model.EndCompleted))

	if d.IsAchieved() {
		t.Fatal("expected day below required time to be unachieved")
	}
	if d.BookType() != model.BookNone {
		t.Errorf("BookType = %s, want none", d.BookType())
	}
}

func TestOverrideWithoutSessionsShowsNoBook(t *testing.T) {
	d := model.NewDayRecord(day, model.DefaultRequiredSeconds)
	d.SetStudySeconds(9000)

	if !d.IsAchieved() {
		t.Error("expected override to achieve the day")
	}
	if d.BookType() != model.BookNone {
		t.Errorf("BookType = %s, want none without sessions", d.BookType())
	}
}

func TestNewSession(t *testing.T) {
	s, err := model.NewSession(day, 2000, 1800, model.EndStopped)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if !s.Completed {
		t.Error("stopped past target should be completed")
	}

	if _, err := model.NewSession(day, 100, 1800, model.EndCompleted); !errors.Is(err, model.ErrIncompleteSession) {
		t.Errorf("err = %v, want ErrIncompleteSession", err)
	}
	if _, err := model.NewSession(day, -1, 1800, model.EndStopped); !errors.Is(err, model.ErrNegativeDuration) {
		t.Errorf("err = %v, want ErrNegativeDuration", err)
	}
}

func TestParseEndReason(t *testing.T) {
	tests := []struct {
		in      string
		want    model.EndReason
		wantErr bool
	}{
		{"completed", model.EndCompleted, false},
		{"stopped", model.EndStopped, false},
		{"app_closed", model.EndAppClosed, false},
		{"closed", model.EndAppClosed, false},
		{"paused", "", true},
	}
	for _, tt := range tests {
		got, err := model.ParseEndReason(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseEndReason(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseEndReason(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDayDate(t *testing.T) {
	empty := model.EmptyDate()
	if !empty.IsEmpty() {
		t.Error("EmptyDate should be empty")
	}
	if empty.Matches(day) {
		t.Error("empty date must not match any day")
	}
	if empty.Within(time.Time{}, day.AddDate(100, 0, 0)) {
		t.Error("empty date must not fall within any range")
	}

	realDate := model.RealDate(day)
	got, ok := realDate.Time()
	if !ok || got.Hour() != 0 || got.Day() != 27 {
		t.Errorf("RealDate time = %v, %v", got, ok)
	}
	if !realDate.Matches(time.Date(2026, 2, 27, 23, 59, 0, 0, time.UTC)) {
		t.Error("expected match ignoring time of day")
	}
	if !realDate.Within(day, day) {
		t.Error("expected day to be within its own single-day range")
	}
	if realDate.String() != "2026-02-27" || empty.String() != "-" {
		t.Errorf("String = %q / %q", realDate.String(), empty.String())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	d := model.NewDayRecord(day, model.DefaultRequiredSeconds)
	d.AddSession(session(t, 1800, 1800, model.EndCompleted))

	c := d.Clone()
	c.Sessions[0] = session(t, 10, 1800, model.EndStopped)

	if !d.Sessions[0].Completed {
		t.Error("mutating a clone changed the original")
	}
}
