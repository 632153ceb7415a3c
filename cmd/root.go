package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/focus-shelf/internal/config"
	"github.com/Tiliavir/focus-shelf/internal/shelf"
	"github.com/Tiliavir/focus-shelf/internal/storage"
	"github.com/Tiliavir/focus-shelf/internal/weekly"
)

var (
	logLevel string

	cfg    config.Config
	logger = log.New(os.Stderr)
)

var rootCmd = &cobra.Command{
	Use:   "shelf",
	Short: "Focus shelf – a focus timer that fills a bookshelf",
	Long: `shelf times focused study sessions and places a book on a monthly
shelf for every day that reaches its required study time.
All data is stored as human-readable JSON files in ~/.shelf/ (or $SHELF_HOME).`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(timerCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(reflectCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		Prefix:          "shelf",
		ReportTimestamp: lvl == log.DebugLevel,
		TimeFormat:      time.Kitchen,
	})
	logger.Debug("config loaded", "home", cfg.Home, "required", cfg.Shelf.RequiredTime)
	return nil
}

// exitStorage reports a storage failure and exits with status 2.
func exitStorage(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(2)
}

func ledgerOptions() []shelf.Option {
	return []shelf.Option{
		shelf.WithRequiredSeconds(cfg.Shelf.RequiredTime.Seconds()),
		shelf.WithLogger(logger),
	}
}

// loadMonth returns the ledger for the month containing day.
func loadMonth(day time.Time) *shelf.Ledger {
	l, err := storage.LoadMonth(cfg.Home, day, ledgerOptions()...)
	if err != nil {
		exitStorage(err)
	}
	return l
}

// openMonth is loadMonth with every later change written back. The returned
// func reports the first write failure.
func openMonth(day time.Time) (*shelf.Ledger, func() error) {
	l := loadMonth(day)
	var first error
	storage.Persist(cfg.Home, l, func(err error) {
		logger.Error("saving day", "err", err)
		if first == nil {
			first = err
		}
	})
	return l, func() error { return first }
}

// loadSpan returns the merged ledgers covering [from, to].
func loadSpan(from, to time.Time) shelf.Span {
	span, err := shelf.SpanFor(from, to, storage.Loader(cfg.Home, ledgerOptions()...))
	if err != nil {
		exitStorage(err)
	}
	return span
}

func loadTracker() *weekly.Tracker {
	tr, err := storage.LoadTracker(cfg.Home)
	if err != nil {
		exitStorage(err)
	}
	return tr
}

// openTracker is loadTracker with every later change written back.
func openTracker() (*weekly.Tracker, func() error) {
	tr := loadTracker()
	var first error
	storage.PersistGoals(cfg.Home, tr, func(err error) {
		logger.Error("saving weeks", "err", err)
		if first == nil {
			first = err
		}
	})
	return tr, func() error { return first }
}

func percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v)
}
