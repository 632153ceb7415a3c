package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/focus-shelf/internal/model"
	"github.com/Tiliavir/focus-shelf/internal/timecalc"
)

var (
	logDuration time.Duration
	logTarget   time.Duration
	logReason   string
	logDate     string
	logAt       string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record a session that was timed elsewhere",
	Args:  cobra.NoArgs,
	RunE:  runLog,
}

func init() {
	logCmd.Flags().DurationVar(&logDuration, "duration", 0, "How long the session lasted, e.g. 45m (required)")
	logCmd.Flags().DurationVar(&logTarget, "target", 0, "Session goal (default from config)")
	logCmd.Flags().StringVar(&logReason, "reason", "", "How it ended: completed, stopped, closed (default from duration)")
	logCmd.Flags().StringVar(&logDate, "date", "", "Day of the session (YYYY-MM-DD, default today)")
	logCmd.Flags().StringVar(&logAt, "at", "", "Start time of day (HH:MM)")
	_ = logCmd.MarkFlagRequired("duration")
}

func runLog(cmd *cobra.Command, args []string) error {
	now := time.Now()
	day, err := timecalc.ParseDate(logDate, now)
	if err != nil {
		return err
	}

	duration := int64(logDuration / time.Second)
	target := int64(logTarget / time.Second)
	if logTarget == 0 {
		target = cfg.Timer.DefaultTarget.Seconds()
	}

	reason := model.EndStopped
	if duration >= target {
		reason = model.EndCompleted
	}
	if logReason != "" {
		if reason, err = model.ParseEndReason(logReason); err != nil {
			return err
		}
	}

	start, err := sessionStart(day, now, logDuration)
	if err != nil {
		return err
	}
	s, err := model.NewSession(start, duration, target, reason)
	if err != nil {
		return err
	}

	l, saveErr := openMonth(day)
	l.AddSession(day, s)
	if err := saveErr(); err != nil {
		exitStorage(err)
	}

	rec, _ := l.Record(day)
	mark := "✗"
	if s.Completed {
		mark = "✓"
	}
	fmt.Printf("Logged %s %s on %s. Day total: %s (%s book).\n",
		mark, timecalc.FormatDuration(duration), day.Format("2006-01-02"),
		timecalc.FormatDuration(rec.StudySeconds), rec.BookType())
	return nil
}

// sessionStart picks the start time of a logged session: --at when given,
// otherwise "just finished" for today and midnight for other days.
func sessionStart(day, now time.Time, d time.Duration) (time.Time, error) {
	if logAt != "" {
		at, err := time.Parse("15:04", logAt)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --at %q (want HH:MM): %w", logAt, err)
		}
		return day.Add(time.Duration(at.Hour())*time.Hour + time.Duration(at.Minute())*time.Minute), nil
	}
	if timecalc.SameDay(day, now) {
		return now.Add(-d), nil
	}
	return day, nil
}
