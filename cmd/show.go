package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/focus-shelf/internal/shelf"
	"github.com/Tiliavir/focus-shelf/internal/timecalc"
	"github.com/Tiliavir/focus-shelf/internal/tui"
)

var (
	showMonth string
	showAll   bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the monthly shelf",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showMonth, "month", "", "Month to show (YYYY-MM, default this month)")
	showCmd.Flags().BoolVar(&showAll, "all", false, "List every day below the shelf")
}

func runShow(cmd *cobra.Command, args []string) error {
	now := time.Now()
	month, err := timecalc.ParseMonth(showMonth, now)
	if err != nil {
		return err
	}

	l := loadMonth(month)
	prev := loadMonth(month.AddDate(0, -1, 0))
	next := loadMonth(month.AddDate(0, 1, 0))

	fmt.Println(month.Format("January 2006"))
	fmt.Println()
	fmt.Println(tui.RenderShelf(shelf.Grid(l, prev, next), now, cfg.Shelf.ShowFailedBooks))
	fmt.Println()
	fmt.Println(tui.Legend(cfg.Shelf.ShowFailedBooks))
	fmt.Println()

	streak := l.ConsecutiveDays()
	if timecalc.SameMonth(month, now) {
		streak = l.ConsecutiveDaysThrough(now)
	}
	fmt.Printf("%-16s%s\n", "Total", timecalc.FormatDuration(l.TotalStudySeconds()))
	fmt.Printf("%-16s%d\n", "Books", l.AchievedDays())
	fmt.Printf("%-16s%d day(s)\n", "Streak", streak)
	fmt.Printf("%-16s%s\n", "Achievement", percent(l.AchievementRate()))

	if showAll {
		fmt.Println()
		printDays(l)
	}
	return nil
}

func printDays(l *shelf.Ledger) {
	fmt.Println("Date         Study     Sessions  Failed  Book")
	fmt.Println("---------------------------------------------------")
	for _, r := range l.Records() {
		if r.Date.IsEmpty() {
			continue
		}
		fmt.Printf("%-13s%-10s%-10d%-8d%s %s\n",
			r.Date, timecalc.FormatDuration(r.StudySeconds), len(r.Sessions), r.FailedCount(),
			r.BookType(), tui.Glyph(r, cfg.Shelf.ShowFailedBooks))
	}
}
