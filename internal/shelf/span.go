package shelf

import (
	"fmt"
	"sort"
	"time"

	"github.com/Tiliavir/focus-shelf/internal/model"
	"github.com/Tiliavir/focus-shelf/internal/timecalc"
)

// Span answers date-range queries across several month ledgers, so a week
// that straddles two months sees the days of both.
type Span struct {
	ledgers []*Ledger
}

// Merge returns a Span over the given ledgers. Nil ledgers are skipped.
func Merge(ledgers ...*Ledger) Span {
	var s Span
	for _, l := range ledgers {
		if l != nil {
			s.ledgers = append(s.ledgers, l)
		}
	}
	return s
}

// Ledgers returns the ledgers in the span.
func (s Span) Ledgers() []*Ledger { return s.ledgers }

// Ledger returns the ledger owning the month containing t.
func (s Span) Ledger(t time.Time) (*Ledger, bool) {
	for _, l := range s.ledgers {
		if timecalc.SameMonth(l.Month(), t) {
			return l, true
		}
	}
	return nil, false
}

// RecordsBetween returns the real records in [from, to] across every ledger,
// ordered by date.
func (s Span) RecordsBetween(from, to time.Time) []model.DayRecord {
	var out []model.DayRecord
	for _, l := range s.ledgers {
		out = append(out, l.RecordsBetween(from, to)...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := out[i].Date.Time()
		b, _ := out[j].Date.Time()
		return a.Before(b)
	})
	return out
}

// MonthsBetween lists the first day of every month touching [from, to].
func MonthsBetween(from, to time.Time) []time.Time {
	var months []time.Time
	last := timecalc.FirstOfMonth(to)
	for m := timecalc.FirstOfMonth(from); !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}

// SpanFor loads a ledger for every month touching [from, to].
func SpanFor(from, to time.Time, load func(month time.Time) (*Ledger, error)) (Span, error) {
	var s Span
	for _, m := range MonthsBetween(from, to) {
		l, err := load(m)
		if err != nil {
			return Span{}, fmt.Errorf("loading %s: %w", m.Format("2006-01"), err)
		}
		s.ledgers = append(s.ledgers, l)
	}
	return s, nil
}
