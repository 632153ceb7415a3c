package cmd

import (
	"testing"
	"time"

	"github.com/Tiliavir/focus-shelf/internal/model"
)

func TestBuildWeekReport(t *testing.T) {
	day := time.Date(2026, 2, 24, 0, 0, 0, 0, time.UTC)
	done, err := model.NewSession(day.Add(9*time.Hour), 3900, 1800, model.EndCompleted)
	if err != nil {
		t.Fatal(err)
	}
	short, err := model.NewSession(day.Add(12*time.Hour), 120, 1800, model.EndStopped)
	if err != nil {
		t.Fatal(err)
	}

	busy := model.NewDayRecord(day, 1800)
	busy.AddSession(done)
	busy.AddSession(short)
	quiet := model.NewDayRecord(day.AddDate(0, 0, 1), 1800)

	rep := buildWeekReport("2026-W09", []model.DayRecord{busy, quiet})
	if rep.TotalMinutes != 65 {
		t.Errorf("TotalMinutes = %d, want 65", rep.TotalMinutes)
	}
	if len(rep.Days) != 2 {
		t.Fatalf("days = %d, want 2", len(rep.Days))
	}
	want := reportDay{Date: "2026-02-24", StudyMinutes: 65, Sessions: 2, Failed: 1, Book: "luxury"}
	if rep.Days[0] != want {
		t.Errorf("day = %+v, want %+v", rep.Days[0], want)
	}
	if rep.Days[1].Book != "none" {
		t.Errorf("quiet day book = %q", rep.Days[1].Book)
	}
}
