package shelf

import (
	"time"

	"github.com/Tiliavir/focus-shelf/internal/model"
	"github.com/Tiliavir/focus-shelf/internal/timecalc"
)

// Cell is one day of the calendar grid.
type Cell struct {
	Date      time.Time
	InMonth   bool
	Record    model.DayRecord
	HasRecord bool
}

// Week is one Monday-to-Sunday row of the grid.
type Week [7]Cell

// Grid lays the ledger's month out in whole Monday-start weeks. Leading and
// trailing days belong to the neighbouring months; their records are taken
// from neighbours when a matching ledger is given.
func Grid(l *Ledger, neighbours ...*Ledger) []Week {
	span := Merge(append([]*Ledger{l}, neighbours...)...)

	first := l.Month()
	last := first.AddDate(0, 0, timecalc.DaysInMonth(first)-1)
	start := timecalc.WeekStart(first)
	_, end := timecalc.WeekRange(last)

	var weeks []Week
	for day := start; !day.After(end); {
		var w Week
		for i := range w {
			c := Cell{Date: day, InMonth: timecalc.SameMonth(day, first)}
			if owner, ok := span.Ledger(day); ok {
				c.Record, c.HasRecord = owner.Record(day)
			}
			w[i] = c
			day = day.AddDate(0, 0, 1)
		}
		weeks = append(weeks, w)
	}
	return weeks
}
