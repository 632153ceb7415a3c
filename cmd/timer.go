package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/focus-shelf/internal/model"
	"github.com/Tiliavir/focus-shelf/internal/timecalc"
	"github.com/Tiliavir/focus-shelf/internal/tui"
)

var (
	timerTarget time.Duration
	timerDate   string
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Open the focus timer",
	Long: `Open the interactive focus timer. Every stopped session is added to the
day's record. Quitting or interrupting the timer saves a running or paused
session as closed.`,
	Args: cobra.NoArgs,
	RunE: runTimer,
}

func init() {
	timerCmd.Flags().DurationVar(&timerTarget, "target", 0, "Session goal, e.g. 45m (default from config)")
	timerCmd.Flags().StringVar(&timerDate, "date", "", "Book sessions on this day (YYYY-MM-DD) instead of their start day")
}

func runTimer(cmd *cobra.Command, args []string) error {
	now := time.Now()
	target := int64(timerTarget / time.Second)
	if timerTarget == 0 {
		target = cfg.Timer.DefaultTarget.Seconds()
	}
	if target <= 0 {
		return fmt.Errorf("--target must be positive")
	}

	var fixed *time.Time
	if timerDate != "" {
		d, err := timecalc.ParseDate(timerDate, now)
		if err != nil {
			return err
		}
		fixed = &d
	}

	anchor := now
	if fixed != nil {
		anchor = *fixed
	}
	l, saveErr := openMonth(anchor)

	save := func(s model.Session) error {
		day := s.StartTime
		if fixed != nil {
			day = *fixed
		}
		if !timecalc.SameMonth(day, l.Month()) {
			l, saveErr = openMonth(day)
		}
		if !l.AddSession(day, s) {
			return fmt.Errorf("no record for %s", day.Format("2006-01-02"))
		}
		logger.Info("session saved", "date", day.Format("2006-01-02"),
			"duration", s.DurationSeconds, "reason", s.EndReason)
		return saveErr()
	}

	m := tui.New(tui.Options{
		Target:  target,
		Targets: cfg.TargetSeconds(),
		Save:    save,
		Now:     time.Now,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	m.Close()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("timer: %w", err)
	}

	fmt.Printf("Saved %d session(s).\n", m.Saved())
	if rec, ok := l.Record(now); ok {
		fmt.Printf("Today: %s of %s required.\n",
			formatElapsed(rec.StudySeconds), timecalc.FormatDuration(rec.RequiredSeconds))
	}
	return nil
}

func formatElapsed(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
