package model

import (
	"time"

	"github.com/Tiliavir/focus-shelf/internal/timecalc"
)

const (
	// DefaultRequiredSeconds is the daily threshold for placing a book (30m).
	DefaultRequiredSeconds int64 = 1800
	// LuxurySeconds is the study time from which a day earns a luxury book.
	LuxurySeconds int64 = 3600
	// GoldenSeconds is the study time from which a day earns a golden book.
	GoldenSeconds int64 = 7200
)

// BookType is the achievement tier of a day.
type BookType string

const (
	BookNone   BookType = "none"
	BookNormal BookType = "normal"
	BookLuxury BookType = "luxury"
	BookGolden BookType = "golden"
)

// DayDate is either a real calendar day or an empty padding cell.
// The zero value is empty.
type DayDate struct {
	day time.Time
	ok  bool
}

// RealDate returns the calendar day containing t, time of day discarded.
func RealDate(t time.Time) DayDate {
	return DayDate{day: timecalc.StartOfDay(t), ok: true}
}

// EmptyDate returns the padding-cell date.
func EmptyDate() DayDate { return DayDate{} }

// Time returns the day at midnight and whether the date is real.
func (d DayDate) Time() (time.Time, bool) { return d.day, d.ok }

// IsEmpty reports whether d is a padding cell.
func (d DayDate) IsEmpty() bool { return !d.ok }

// Matches reports whether t falls on this day. Empty dates never match.
func (d DayDate) Matches(t time.Time) bool {
	return d.ok && timecalc.SameDay(d.day, t)
}

// Within reports whether the day lies in [from, to] at day granularity.
// Empty dates are never within any range.
func (d DayDate) Within(from, to time.Time) bool {
	if !d.ok {
		return false
	}
	return !d.day.Before(timecalc.StartOfDay(from)) && !d.day.After(timecalc.StartOfDay(to))
}

func (d DayDate) String() string {
	if !d.ok {
		return "-"
	}
	return d.day.Format("2006-01-02")
}

// DayRecord holds one calendar day's sessions and accumulated study time.
type DayRecord struct {
	Date            DayDate
	StudySeconds    int64
	RequiredSeconds int64
	Sessions        []Session
}

// NewDayRecord returns an empty record for the day containing t.
func NewDayRecord(t time.Time, required int64) DayRecord {
	return DayRecord{Date: RealDate(t), RequiredSeconds: required}
}

// PaddingRecord returns a record for an empty grid cell.
func PaddingRecord(required int64) DayRecord {
	return DayRecord{Date: EmptyDate(), RequiredSeconds: required}
}

// AddSession appends s. Only completed sessions count towards study time.
func (d *DayRecord) AddSession(s Session) {
	d.Sessions = append(d.Sessions, s)
	if s.Completed {
		d.StudySeconds += s.DurationSeconds
	}
}

// SetStudySeconds overrides the accumulated study time.
func (d *DayRecord) SetStudySeconds(v int64) {
	d.StudySeconds = v
}

// IsAchieved reports whether the day reached its required time.
func (d DayRecord) IsAchieved() bool {
	return d.StudySeconds >= d.RequiredSeconds
}

// CompletedCount returns the number of sessions that reached their target.
func (d DayRecord) CompletedCount() int {
	n := 0
	for _, s := range d.Sessions {
		if s.Completed {
			n++
		}
	}
	return n
}

// FailedCount returns the number of sessions that fell short of their target.
func (d DayRecord) FailedCount() int {
	return len(d.Sessions) - d.CompletedCount()
}

// FailureRate is the share of failed sessions, 0 when there are none.
func (d DayRecord) FailureRate() float64 {
	if len(d.Sessions) == 0 {
		return 0
	}
	return float64(d.FailedCount()) / float64(len(d.Sessions))
}

// ShouldShowBook reports whether the day has a book on the shelf at all.
func (d DayRecord) ShouldShowBook() bool {
	return len(d.Sessions) > 0 && d.FailureRate() < 1.0
}

// BookType classifies the day by study time.
func (d DayRecord) BookType() BookType {
	switch {
	case !d.ShouldShowBook(), !d.IsAchieved():
		return BookNone
	case d.StudySeconds >= GoldenSeconds:
		return BookGolden
	case d.StudySeconds >= LuxurySeconds:
		return BookLuxury
	default:
		return BookNormal
	}
}

// Clone returns a copy that shares no session storage with d.
func (d DayRecord) Clone() DayRecord {
	if d.Sessions != nil {
		d.Sessions = append([]Session(nil), d.Sessions...)
	}
	return d
}
