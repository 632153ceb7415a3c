// Package weekly tracks per-week study targets and reflections.
//
// Weeks start on Monday. Every operation normalises its date argument to the
// Monday of its ISO week before matching, so any day of a week addresses the
// same goal.
package weekly

import (
	"sort"
	"time"

	"github.com/Tiliavir/focus-shelf/internal/model"
	"github.com/Tiliavir/focus-shelf/internal/timecalc"
)

// RecordSource answers date-range queries over day records. A single month
// ledger satisfies it, and so does a span merging several months.
type RecordSource interface {
	RecordsBetween(from, to time.Time) []model.DayRecord
}

// Goal is the target and reflection for one week.
type Goal struct {
	Week          time.Time
	TargetSeconds int64
	Reflection    string
	Positive      []string
	Challenge     []string
}

// WeekNumber returns the ISO week number of the goal's week.
func (g Goal) WeekNumber() int {
	_, w := g.Week.ISOWeek()
	return w
}

// WeekRange returns the first and last day of the goal's week.
func (g Goal) WeekRange() (time.Time, time.Time) {
	return g.Week, g.Week.AddDate(0, 0, 6)
}

func (g Goal) clone() Goal {
	g.Positive = append([]string(nil), g.Positive...)
	g.Challenge = append([]string(nil), g.Challenge...)
	return g
}

// Progress is the study time accumulated towards a weekly target.
type Progress struct {
	Current    int64
	Target     int64
	Percentage float64
}

// Remaining returns how much study time is still missing, never negative.
func (p Progress) Remaining() int64 {
	return max(0, p.Target-p.Current)
}

// Tracker owns the weekly goals. It is meant for a single writer.
type Tracker struct {
	goals []Goal
	subs  []func(Goal)
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Restore replaces all goals, normalising weeks and keeping the last goal
// seen for any duplicate week. Subscribers are not notified.
func (t *Tracker) Restore(goals []Goal) {
	t.goals = nil
	for _, g := range goals {
		g.Week = timecalc.WeekStart(g.Week)
		if i := t.index(g.Week); i >= 0 {
			t.goals[i] = g.clone()
			continue
		}
		t.goals = append(t.goals, g.clone())
	}
}

// Goals returns a copy of every goal ordered by week.
func (t *Tracker) Goals() []Goal {
	out := make([]Goal, len(t.goals))
	for i, g := range t.goals {
		out[i] = g.clone()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week.Before(out[j].Week) })
	return out
}

// Goal returns the goal for the week containing date.
func (t *Tracker) Goal(date time.Time) (Goal, bool) {
	i := t.index(timecalc.WeekStart(date))
	if i < 0 {
		return Goal{}, false
	}
	return t.goals[i].clone(), true
}

// SetGoal sets the target for the week containing date. An existing goal
// keeps its reflection and checklists.
func (t *Tracker) SetGoal(date time.Time, targetSeconds int64) {
	g := t.upsert(date)
	g.TargetSeconds = targetSeconds
	t.notify(*g)
}

// UpdateReflection sets the reflection text, creating the goal with a zero
// target if needed.
func (t *Tracker) UpdateReflection(date time.Time, text string) {
	g := t.upsert(date)
	g.Reflection = text
	t.notify(*g)
}

// UpdateChecklist replaces both checklists, creating the goal with a zero
// target if needed.
func (t *Tracker) UpdateChecklist(date time.Time, positive, challenge []string) {
	g := t.upsert(date)
	g.Positive = Normalize(positive)
	g.Challenge = Normalize(challenge)
	t.notify(*g)
}

// Progress sums the study time of the goal's week as seen by src. Without a
// goal for the week every field is zero.
func (t *Tracker) Progress(date time.Time, src RecordSource) Progress {
	g, ok := t.Goal(date)
	if !ok {
		return Progress{}
	}
	from, to := g.WeekRange()

	var current int64
	if src != nil {
		for _, r := range src.RecordsBetween(from, to) {
			if r.Date.Within(from, to) {
				current += r.StudySeconds
			}
		}
	}

	p := Progress{Current: current, Target: g.TargetSeconds}
	if g.TargetSeconds > 0 {
		p.Percentage = float64(current) / float64(g.TargetSeconds) * 100
	}
	return p
}

// Subscribe registers fn to be called with a copy of every changed goal.
func (t *Tracker) Subscribe(fn func(Goal)) {
	t.subs = append(t.subs, fn)
}

func (t *Tracker) upsert(date time.Time) *Goal {
	week := timecalc.WeekStart(date)
	if i := t.index(week); i >= 0 {
		return &t.goals[i]
	}
	t.goals = append(t.goals, Goal{Week: week})
	return &t.goals[len(t.goals)-1]
}

func (t *Tracker) index(week time.Time) int {
	for i, g := range t.goals {
		if timecalc.SameDay(g.Week, week) {
			return i
		}
	}
	return -1
}

func (t *Tracker) notify(g Goal) {
	for _, fn := range t.subs {
		fn(g.clone())
	}
}
