package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/focus-shelf/internal/timecalc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's progress and this week's goal",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	now := time.Now()

	l := loadMonth(now)
	rec, _ := l.Record(now)
	fmt.Printf("Today: %s of %s", timecalc.FormatDuration(rec.StudySeconds), timecalc.FormatDuration(rec.RequiredSeconds))
	if rec.IsAchieved() {
		fmt.Printf(" – book placed (%s)\n", rec.BookType())
	} else {
		fmt.Printf(" – %s to go\n", timecalc.FormatDuration(rec.RequiredSeconds-rec.StudySeconds))
	}
	fmt.Printf("Streak: %d day(s)\n", l.ConsecutiveDaysThrough(now))

	tr := loadTracker()
	g, ok := tr.Goal(now)
	if !ok || g.TargetSeconds == 0 {
		fmt.Printf("Week %s: no goal set.\n", timecalc.ISOWeekLabel(now))
		return nil
	}
	from, to := timecalc.WeekRange(now)
	p := tr.Progress(now, loadSpan(from, to))
	fmt.Printf("Week %d: %s of %s (%s), %s left\n",
		g.WeekNumber(), timecalc.FormatDuration(p.Current), timecalc.FormatDuration(p.Target),
		percent(p.Percentage), timecalc.FormatDuration(p.Remaining()))
	return nil
}
