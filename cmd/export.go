package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/focus-shelf/internal/model"
	"github.com/Tiliavir/focus-shelf/internal/storage"
	"github.com/Tiliavir/focus-shelf/internal/timecalc"
)

var (
	exportFormat string
	exportMonth  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sessions to stdout",
	Long:  "Export the sessions of this week, or of a whole month with --month.",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md")
	exportCmd.Flags().StringVar(&exportMonth, "month", "", "Export a whole month (YYYY-MM)")
}

// exportRow is one session with the day it is booked on.
type exportRow struct {
	Date string `json:"date"`
	model.Session
}

func runExport(cmd *cobra.Command, args []string) error {
	now := time.Now()

	from, to := timecalc.WeekRange(now)
	if exportMonth != "" {
		month, err := timecalc.ParseMonth(exportMonth, now)
		if err != nil {
			return err
		}
		from = month
		to = timecalc.EndOfDay(month.AddDate(0, 0, timecalc.DaysInMonth(month)-1))
	}

	days, err := storage.LoadRange(cfg.Home, from, to)
	if err != nil {
		exitStorage(err)
	}
	rows := flatten(days)

	switch exportFormat {
	case "json":
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("error encoding JSON: %w", err)
		}
		fmt.Println(string(data))
	case "md":
		printList(rows, now)
	case "csv":
		fmt.Print(formatCSV(rows))
	default:
		return fmt.Errorf("unknown --format %q (want csv, json or md)", exportFormat)
	}
	return nil
}

func flatten(days []model.DayFile) []exportRow {
	rows := []exportRow{}
	for _, df := range days {
		for _, s := range df.Sessions {
			rows = append(rows, exportRow{Date: df.Date, Session: s})
		}
	}
	return rows
}

// printList groups rows by date and prints them.
func printList(rows []exportRow, now time.Time) {
	if len(rows) == 0 {
		fmt.Println("No sessions found.")
		return
	}
	start := 0
	for i := 1; i <= len(rows); i++ {
		if i < len(rows) && rows[i].Date == rows[start].Date {
			continue
		}
		fmt.Println(rows[start].Date)
		sessions := make([]model.Session, 0, i-start)
		for _, r := range rows[start:i] {
			sessions = append(sessions, r.Session)
		}
		printSessions(sessions, now)
		start = i
	}
}

func formatCSV(rows []exportRow) string {
	var b strings.Builder
	b.WriteString("date,start,duration_minutes,target_minutes,completed,end_reason\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%s,%s,%d,%d,%t,%s\n",
			csvEscape(r.Date),
			csvEscape(r.StartTime.Format(time.RFC3339)),
			r.DurationSeconds/60,
			r.TargetSeconds/60,
			r.Completed,
			csvEscape(string(r.EndReason)),
		)
	}
	return b.String()
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	// Escape internal double quotes by doubling them.
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
