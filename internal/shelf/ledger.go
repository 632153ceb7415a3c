// Package shelf holds the month ledger: one day record per calendar day and
// the month-level aggregates derived from them.
package shelf

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Tiliavir/focus-shelf/internal/model"
	"github.com/Tiliavir/focus-shelf/internal/timecalc"
)

// MinCells is the minimum number of records a ledger holds.
const MinCells = 28

// ChangeKind identifies which mutation produced a Change.
type ChangeKind int

const (
	SessionAdded ChangeKind = iota
	StudyTimeSet
)

// Change describes a single mutation of a ledger.
type Change struct {
	Kind    ChangeKind
	Date    time.Time
	Session model.Session // set for SessionAdded
	Seconds int64         // set for StudyTimeSet
	Record  model.DayRecord
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithRequiredSeconds sets the per-day threshold for generated records.
func WithRequiredSeconds(s int64) Option {
	return func(l *Ledger) {
		if s > 0 {
			l.required = s
		}
	}
}

// WithLogger sets the logger used for lookup misses.
func WithLogger(logger *log.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Ledger owns the day records of one calendar month.
// It is meant for a single writer; it does no locking.
type Ledger struct {
	month    time.Time
	required int64
	records  []model.DayRecord
	logger   *log.Logger

	subs   []subscriber
	nextID int
}

type subscriber struct {
	id int
	fn func(Change)
}

// NewLedger builds the ledger for the month containing anchor.
func NewLedger(anchor time.Time, opts ...Option) *Ledger {
	l := &Ledger{
		month:    timecalc.FirstOfMonth(anchor),
		required: model.DefaultRequiredSeconds,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}

	n := timecalc.DaysInMonth(l.month)
	l.records = make([]model.DayRecord, 0, max(n, MinCells))
	for d := 0; d < n; d++ {
		l.records = append(l.records, model.NewDayRecord(l.month.AddDate(0, 0, d), l.required))
	}
	for len(l.records) < MinCells {
		l.records = append(l.records, model.PaddingRecord(l.required))
	}
	return l
}

// Month returns midnight of the first day of the ledger's month.
func (l *Ledger) Month() time.Time { return l.month }

// RequiredSeconds returns the per-day threshold used for generated records.
func (l *Ledger) RequiredSeconds() int64 { return l.required }

// Records returns a copy of every record, padding included, in day order.
func (l *Ledger) Records() []model.DayRecord {
	out := make([]model.DayRecord, len(l.records))
	for i, r := range l.records {
		out[i] = r.Clone()
	}
	return out
}

// Record returns a copy of the record for the day containing t.
func (l *Ledger) Record(t time.Time) (model.DayRecord, bool) {
	i := l.index(t)
	if i < 0 {
		return model.DayRecord{}, false
	}
	return l.records[i].Clone(), true
}

// AddSession appends s to the record for date. Dates outside the month are
// ignored; the result reports whether a record matched.
func (l *Ledger) AddSession(date time.Time, s model.Session) bool {
	i := l.index(date)
	if i < 0 {
		l.miss("add session", date)
		return false
	}
	l.records[i].AddSession(s)
	l.notify(Change{Kind: SessionAdded, Date: date, Session: s, Record: l.records[i].Clone()})
	return true
}

// UpdateRecord overrides the study time for date, with the same matching
// rule as AddSession.
func (l *Ledger) UpdateRecord(date time.Time, seconds int64) bool {
	i := l.index(date)
	if i < 0 {
		l.miss("update record", date)
		return false
	}
	l.records[i].SetStudySeconds(seconds)
	l.notify(Change{Kind: StudyTimeSet, Date: date, Seconds: seconds, Record: l.records[i].Clone()})
	return true
}

// TotalStudySeconds sums study time over every record.
func (l *Ledger) TotalStudySeconds() int64 {
	var total int64
	for _, r := range l.records {
		total += r.StudySeconds
	}
	return total
}

// ConsecutiveDays counts achieved days walking back from the last real day
// of the month, stopping at the first day that was not achieved.
func (l *Ledger) ConsecutiveDays() int {
	count := 0
	for i := len(l.records) - 1; i >= 0; i-- {
		r := l.records[i]
		if r.Date.IsEmpty() {
			continue
		}
		if !r.IsAchieved() {
			break
		}
		count++
	}
	return count
}

// ConsecutiveDaysThrough is ConsecutiveDays for a streak ending on the day
// containing t; later days of the month are ignored.
func (l *Ledger) ConsecutiveDaysThrough(t time.Time) int {
	count := 0
	for i := len(l.records) - 1; i >= 0; i-- {
		r := l.records[i]
		d, ok := r.Date.Time()
		if !ok || d.After(t) {
			continue
		}
		if !r.IsAchieved() {
			break
		}
		count++
	}
	return count
}

// AchievedDays counts real days that reached their required time.
func (l *Ledger) AchievedDays() int {
	n := 0
	for _, r := range l.records {
		if !r.Date.IsEmpty() && r.IsAchieved() {
			n++
		}
	}
	return n
}

// AchievementRate is AchievedDays as a percentage of all records.
func (l *Ledger) AchievementRate() float64 {
	if len(l.records) == 0 {
		return 0
	}
	return float64(l.AchievedDays()) / float64(len(l.records)) * 100
}

// RecordsBetween returns copies of the real records whose day lies in [from, to].
func (l *Ledger) RecordsBetween(from, to time.Time) []model.DayRecord {
	var out []model.DayRecord
	for _, r := range l.records {
		if r.Date.Within(from, to) {
			out = append(out, r.Clone())
		}
	}
	return out
}

// Subscribe registers fn to be called after every mutation. The returned
// function removes the subscription.
func (l *Ledger) Subscribe(fn func(Change)) (cancel func()) {
	id := l.nextID
	l.nextID++
	l.subs = append(l.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range l.subs {
			if s.id == id {
				l.subs = append(l.subs[:i], l.subs[i+1:]...)
				return
			}
		}
	}
}

func (l *Ledger) notify(c Change) {
	for _, s := range l.subs {
		s.fn(c)
	}
}

func (l *Ledger) index(t time.Time) int {
	for i, r := range l.records {
		if r.Date.Matches(t) {
			return i
		}
	}
	return -1
}

func (l *Ledger) miss(op string, date time.Time) {
	l.logger.Debug("date outside ledger month",
		"op", op,
		"date", date.Format("2006-01-02"),
		"month", l.month.Format("2006-01"))
}
