package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/focus-shelf/internal/timecalc"
)

var (
	goalTime time.Duration
	goalDate string
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage weekly study goals",
}

var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the study target of a week",
	Args:  cobra.NoArgs,
	RunE:  runGoalSet,
}

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a week's goal and progress",
	Args:  cobra.NoArgs,
	RunE:  runGoalShow,
}

func init() {
	goalSetCmd.Flags().DurationVar(&goalTime, "time", 0, "Weekly target, e.g. 10h (required)")
	_ = goalSetCmd.MarkFlagRequired("time")
	goalCmd.PersistentFlags().StringVar(&goalDate, "date", "", "Any day of the week (YYYY-MM-DD, default today)")

	goalCmd.AddCommand(goalSetCmd)
	goalCmd.AddCommand(goalShowCmd)
}

func runGoalSet(cmd *cobra.Command, args []string) error {
	if goalTime <= 0 {
		return fmt.Errorf("--time must be positive")
	}
	day, err := timecalc.ParseDate(goalDate, time.Now())
	if err != nil {
		return err
	}

	tr, saveErr := openTracker()
	tr.SetGoal(day, int64(goalTime/time.Second))
	if err := saveErr(); err != nil {
		exitStorage(err)
	}

	g, _ := tr.Goal(day)
	from, to := g.WeekRange()
	fmt.Printf("Week %d (%s – %s): target %s\n",
		g.WeekNumber(), from.Format("Jan 2"), to.Format("Jan 2"), timecalc.FormatDuration(g.TargetSeconds))
	return nil
}

func runGoalShow(cmd *cobra.Command, args []string) error {
	day, err := timecalc.ParseDate(goalDate, time.Now())
	if err != nil {
		return err
	}

	tr := loadTracker()
	g, ok := tr.Goal(day)
	if !ok {
		fmt.Printf("No goal for week %s. Set one with: shelf goal set --time 10h\n", timecalc.ISOWeekLabel(day))
		return nil
	}

	from, to := g.WeekRange()
	span := loadSpan(from, to)
	p := tr.Progress(day, span)

	fmt.Printf("Week %d (%s – %s)\n", g.WeekNumber(), from.Format("Jan 2"), to.Format("Jan 2, 2006"))
	fmt.Println("--------------------------------")
	for _, r := range span.RecordsBetween(from, to) {
		d, _ := r.Date.Time()
		fmt.Printf("%-20s%s\n", d.Format("Mon 02"), timecalc.FormatDuration(r.StudySeconds))
	}
	fmt.Println("--------------------------------")
	fmt.Printf("%-20s%s\n", "Studied", timecalc.FormatDuration(p.Current))
	if p.Target > 0 {
		fmt.Printf("%-20s%s\n", "Target", timecalc.FormatDuration(p.Target))
		fmt.Printf("%-20s%s\n", "Progress", percent(p.Percentage))
		fmt.Printf("%-20s%s\n", "Remaining", timecalc.FormatDuration(p.Remaining()))
	}
	return nil
}
