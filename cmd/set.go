package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/focus-shelf/internal/timecalc"
)

var (
	setTime time.Duration
	setDate string
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Overwrite a day's study time",
	Long: `Overwrite the accumulated study time of a day. Sessions recorded later
on the same day are added on top of the new value.`,
	Args: cobra.NoArgs,
	RunE: runSet,
}

func init() {
	setCmd.Flags().DurationVar(&setTime, "time", 0, "New study time for the day, e.g. 1h30m (required)")
	setCmd.Flags().StringVar(&setDate, "date", "", "Day to change (YYYY-MM-DD, default today)")
	_ = setCmd.MarkFlagRequired("time")
}

func runSet(cmd *cobra.Command, args []string) error {
	if setTime < 0 {
		return fmt.Errorf("--time must not be negative")
	}
	day, err := timecalc.ParseDate(setDate, time.Now())
	if err != nil {
		return err
	}

	l, saveErr := openMonth(day)
	l.UpdateRecord(day, int64(setTime/time.Second))
	if err := saveErr(); err != nil {
		exitStorage(err)
	}

	rec, _ := l.Record(day)
	status := "not reached"
	if rec.IsAchieved() {
		status = "reached"
	}
	fmt.Printf("%s: study time set to %s, daily goal %s.\n",
		day.Format("2006-01-02"), timecalc.FormatDuration(rec.StudySeconds), status)
	return nil
}
