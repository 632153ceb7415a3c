package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/focus-shelf/internal/model"
	"github.com/Tiliavir/focus-shelf/internal/timecalc"
)

var dayDate string

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Show the sessions of one day",
	Args:  cobra.NoArgs,
	RunE:  runDay,
}

func init() {
	dayCmd.Flags().StringVar(&dayDate, "date", "", "Day to show (YYYY-MM-DD, default today)")
}

func runDay(cmd *cobra.Command, args []string) error {
	now := time.Now()
	day, err := timecalc.ParseDate(dayDate, now)
	if err != nil {
		return err
	}

	rec, _ := loadMonth(day).Record(day)
	fmt.Println(day.Format("Monday, 2006-01-02"))
	printSessions(rec.Sessions, now)
	fmt.Println()
	fmt.Printf("%-16s%s of %s\n", "Study", timecalc.FormatDuration(rec.StudySeconds), timecalc.FormatDuration(rec.RequiredSeconds))
	fmt.Printf("%-16s%d completed, %d failed (%s)\n", "Sessions", rec.CompletedCount(), rec.FailedCount(), percent(rec.FailureRate()*100))
	fmt.Printf("%-16s%s\n", "Book", rec.BookType())
	return nil
}

// printSessions lists sessions one per line with their outcome.
func printSessions(sessions []model.Session, now time.Time) {
	if len(sessions) == 0 {
		fmt.Println("No sessions found.")
		return
	}
	for _, s := range sessions {
		mark := "✗"
		if s.Completed {
			mark = "✓"
		}
		end := s.StartTime.Add(time.Duration(s.DurationSeconds) * time.Second)
		fmt.Printf("%s %s–%s  %s / %s %s  %s\n",
			mark, s.StartTime.Format("15:04"), end.Format("15:04"),
			timecalc.FormatDuration(s.DurationSeconds), timecalc.FormatDuration(s.TargetSeconds),
			s.EndReason.Label(), humanize.RelTime(s.StartTime, now, "ago", "from now"))
	}
}
