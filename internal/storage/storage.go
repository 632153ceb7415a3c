package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Tiliavir/focus-shelf/internal/model"
	"github.com/Tiliavir/focus-shelf/internal/shelf"
	"github.com/Tiliavir/focus-shelf/internal/timecalc"
	"github.com/Tiliavir/focus-shelf/internal/weekly"
)

const weeksFileName = "weeks.json"

// dayFilePath returns the path for the given date's JSON file.
func dayFilePath(base string, t time.Time) string {
	return filepath.Join(base, t.Format("2006"), t.Format("01"), t.Format("02")+".json")
}

// LoadDay loads the DayFile for the given date. Returns an empty DayFile if not found.
func LoadDay(base string, t time.Time) (model.DayFile, error) {
	path := dayFilePath(base, t)
	df := model.DayFile{Date: t.Format("2006-01-02"), Sessions: []model.Session{}}
	if err := readJSON(path, &df); err != nil {
		return model.DayFile{}, err
	}
	if df.Sessions == nil {
		df.Sessions = []model.Session{}
	}
	return df, nil
}

// SaveDay atomically writes a DayFile for the given date.
func SaveDay(base string, t time.Time, df model.DayFile) error {
	return writeJSON(dayFilePath(base, t), df)
}

// AppendSession adds a finished session to the day's file.
func AppendSession(base string, day time.Time, s model.Session) error {
	df, err := LoadDay(base, day)
	if err != nil {
		return err
	}
	df.Sessions = append(df.Sessions, s)
	return SaveDay(base, day, df)
}

// SetOverride records a hand-entered study time for the day. Sessions logged
// afterwards add on top of it when the day is replayed.
func SetOverride(base string, day time.Time, seconds int64) error {
	df, err := LoadDay(base, day)
	if err != nil {
		return err
	}
	df.StudyOverride = &seconds
	df.OverrideAt = len(df.Sessions)
	return SaveDay(base, day, df)
}

// LoadRange loads all day files in [from, to] inclusive that hold any data.
func LoadRange(base string, from, to time.Time) ([]model.DayFile, error) {
	var days []model.DayFile
	for d := timecalc.StartOfDay(from); !d.After(to); d = d.AddDate(0, 0, 1) {
		df, err := LoadDay(base, d)
		if err != nil {
			return nil, err
		}
		if len(df.Sessions) > 0 || df.StudyOverride != nil {
			days = append(days, df)
		}
	}
	return days, nil
}

// LoadMonth rebuilds the ledger for the month containing anchor by replaying
// every stored day in order. Nothing is written back while replaying.
func LoadMonth(base string, anchor time.Time, opts ...shelf.Option) (*shelf.Ledger, error) {
	l := shelf.NewLedger(anchor, opts...)
	first := l.Month()
	for d := 0; d < timecalc.DaysInMonth(first); d++ {
		day := first.AddDate(0, 0, d)
		df, err := LoadDay(base, day)
		if err != nil {
			return nil, err
		}
		replay(l, day, df)
	}
	return l, nil
}

func replay(l *shelf.Ledger, day time.Time, df model.DayFile) {
	at := min(max(df.OverrideAt, 0), len(df.Sessions))
	for i := 0; i <= len(df.Sessions); i++ {
		if df.StudyOverride != nil && i == at {
			l.UpdateRecord(day, *df.StudyOverride)
		}
		if i < len(df.Sessions) {
			l.AddSession(day, df.Sessions[i])
		}
	}
}

// Loader returns a month loader for shelf.SpanFor.
func Loader(base string, opts ...shelf.Option) func(time.Time) (*shelf.Ledger, error) {
	return func(month time.Time) (*shelf.Ledger, error) {
		return LoadMonth(base, month, opts...)
	}
}

// Persist writes every later change of l to the day files under base.
// Write failures are handed to onErr. The returned func stops persisting.
func Persist(base string, l *shelf.Ledger, onErr func(error)) (cancel func()) {
	return l.Subscribe(func(c shelf.Change) {
		var err error
		switch c.Kind {
		case shelf.SessionAdded:
			err = AppendSession(base, c.Date, c.Session)
		case shelf.StudyTimeSet:
			err = SetOverride(base, c.Date, c.Seconds)
		}
		if err != nil && onErr != nil {
			onErr(err)
		}
	})
}

// LoadWeeks reads every stored weekly goal. A missing file yields none.
func LoadWeeks(base string) ([]weekly.Goal, error) {
	var wf model.WeeksFile
	if err := readJSON(filepath.Join(base, weeksFileName), &wf); err != nil {
		return nil, err
	}
	goals := make([]weekly.Goal, 0, len(wf.Goals))
	for _, wg := range wf.Goals {
		week, err := time.ParseInLocation("2006-01-02", wg.Week, time.Local)
		if err != nil {
			return nil, fmt.Errorf("storage error parsing week %q: %w", wg.Week, err)
		}
		goals = append(goals, weekly.Goal{
			Week:          week,
			TargetSeconds: wg.TargetSeconds,
			Reflection:    wg.Reflection,
			Positive:      wg.Positive,
			Challenge:     wg.Challenge,
		})
	}
	return goals, nil
}

// SaveWeeks atomically replaces the weeks file.
func SaveWeeks(base string, goals []weekly.Goal) error {
	wf := model.WeeksFile{Goals: make([]model.WeekGoal, 0, len(goals))}
	for _, g := range goals {
		wf.Goals = append(wf.Goals, model.WeekGoal{
			Week:          g.Week.Format("2006-01-02"),
			TargetSeconds: g.TargetSeconds,
			Reflection:    g.Reflection,
			Positive:      nonNil(g.Positive),
			Challenge:     nonNil(g.Challenge),
		})
	}
	sort.Slice(wf.Goals, func(i, j int) bool { return wf.Goals[i].Week < wf.Goals[j].Week })
	return writeJSON(filepath.Join(base, weeksFileName), wf)
}

// LoadTracker returns a tracker seeded from the weeks file.
func LoadTracker(base string) (*weekly.Tracker, error) {
	goals, err := LoadWeeks(base)
	if err != nil {
		return nil, err
	}
	tr := weekly.NewTracker()
	tr.Restore(goals)
	return tr, nil
}

// PersistGoals rewrites the weeks file whenever a goal of tr changes.
func PersistGoals(base string, tr *weekly.Tracker, onErr func(error)) {
	tr.Subscribe(func(weekly.Goal) {
		if err := SaveWeeks(base, tr.Goals()); err != nil && onErr != nil {
			onErr(err)
		}
	})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// readJSON decodes path into v, leaving v untouched when the file is missing.
// A file that fails to parse is moved aside to <path>.corrupt.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("storage error reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		// Back up corrupt file and abort.
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return fmt.Errorf("corrupt JSON in %s (backed up to %s): %w", path, backupPath, err)
	}
	return nil
}

// writeJSON atomically writes v as indented JSON.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}
