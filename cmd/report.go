package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/focus-shelf/internal/model"
	"github.com/Tiliavir/focus-shelf/internal/timecalc"
)

var (
	reportDate   string
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show study time per day of a week",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportDate, "date", "", "Any day of the week (YYYY-MM-DD, default today)")
	reportCmd.Flags().StringVar(&reportFormat, "format", "md", "Output format: md, csv, json")
}

type reportDay struct {
	Date         string `json:"date"`
	StudyMinutes int64  `json:"study_minutes"`
	Sessions     int    `json:"sessions"`
	Failed       int    `json:"failed"`
	Book         string `json:"book"`
}

type weekReport struct {
	Week          string      `json:"week"`
	Days          []reportDay `json:"days"`
	TotalMinutes  int64       `json:"total_minutes"`
	TargetMinutes int64       `json:"target_minutes,omitempty"`
}

func runReport(cmd *cobra.Command, args []string) error {
	day, err := timecalc.ParseDate(reportDate, time.Now())
	if err != nil {
		return err
	}

	from, to := timecalc.WeekRange(day)
	span := loadSpan(from, to)
	rep := buildWeekReport(timecalc.ISOWeekLabel(day), span.RecordsBetween(from, to))
	if g, ok := loadTracker().Goal(day); ok {
		rep.TargetMinutes = g.TargetSeconds / 60
	}

	switch reportFormat {
	case "csv":
		fmt.Println("date,study_minutes,sessions,failed,book")
		for _, d := range rep.Days {
			fmt.Printf("%s,%d,%d,%d,%s\n", d.Date, d.StudyMinutes, d.Sessions, d.Failed, d.Book)
		}
	case "json":
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("error encoding JSON: %w", err)
		}
		fmt.Println(string(data))
	case "md":
		fmt.Printf("Week %s\n", rep.Week)
		fmt.Println("--------------------------------")
		for _, d := range rep.Days {
			fmt.Printf("%-14s%-10s%s\n", d.Date, timecalc.FormatDuration(d.StudyMinutes*60), d.Book)
		}
		fmt.Println("--------------------------------")
		fmt.Printf("%-14s%s\n", "Total", timecalc.FormatDuration(rep.TotalMinutes*60))
		if rep.TargetMinutes > 0 {
			fmt.Printf("%-14s%s\n", "Target", timecalc.FormatDuration(rep.TargetMinutes*60))
		}
	default:
		return fmt.Errorf("unknown --format %q (want md, csv or json)", reportFormat)
	}
	return nil
}

func buildWeekReport(label string, records []model.DayRecord) weekReport {
	rep := weekReport{Week: label, Days: []reportDay{}}
	var total int64
	for _, r := range records {
		total += r.StudySeconds
		rep.Days = append(rep.Days, reportDay{
			Date:         r.Date.String(),
			StudyMinutes: r.StudySeconds / 60,
			Sessions:     len(r.Sessions),
			Failed:       r.FailedCount(),
			Book:         string(r.BookType()),
		})
	}
	rep.TotalMinutes = total / 60
	return rep
}
