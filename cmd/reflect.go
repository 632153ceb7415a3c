package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/focus-shelf/internal/journal"
	"github.com/Tiliavir/focus-shelf/internal/timecalc"
	"github.com/Tiliavir/focus-shelf/internal/weekly"
)

var (
	reflectText      string
	reflectPositive  []string
	reflectChallenge []string
	reflectDate      string
	reflectOut       string
)

var reflectCmd = &cobra.Command{
	Use:   "reflect",
	Short: "Write the weekly reflection and checklists",
	Long: `Write the reflection of a week. Checklist entries are free text or the
number of a suggested item (see "shelf reflect items"). A checklist flag
replaces that whole list; lists without a flag are kept.`,
	Args: cobra.NoArgs,
	RunE: runReflect,
}

var reflectItemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List the suggested checklist items",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printCatalogue("What helped (--positive)", weekly.PositiveItems)
		fmt.Println()
		printCatalogue("What got in the way (--challenge)", weekly.ChallengeItems)
	},
}

var reflectExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a week as Markdown with YAML frontmatter",
	Args:  cobra.NoArgs,
	RunE:  runReflectExport,
}

var reflectImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Read the reflection and checklists back from an exported page",
	Args:  cobra.ExactArgs(1),
	RunE:  runReflectImport,
}

func init() {
	reflectCmd.Flags().StringVar(&reflectText, "text", "", "Reflection text")
	reflectCmd.Flags().StringSliceVar(&reflectPositive, "positive", nil, "What helped (comma-separated text or item numbers)")
	reflectCmd.Flags().StringSliceVar(&reflectChallenge, "challenge", nil, "What got in the way (comma-separated text or item numbers)")
	reflectCmd.PersistentFlags().StringVar(&reflectDate, "date", "", "Any day of the week (YYYY-MM-DD, default today)")
	reflectExportCmd.Flags().StringVar(&reflectOut, "out", "", "Write to this file instead of stdout")

	reflectCmd.AddCommand(reflectItemsCmd)
	reflectCmd.AddCommand(reflectExportCmd)
	reflectCmd.AddCommand(reflectImportCmd)
}

func runReflect(cmd *cobra.Command, args []string) error {
	day, err := timecalc.ParseDate(reflectDate, time.Now())
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("text") && !flags.Changed("positive") && !flags.Changed("challenge") {
		return fmt.Errorf("nothing to update: pass --text, --positive or --challenge")
	}

	tr, saveErr := openTracker()
	if flags.Changed("text") {
		tr.UpdateReflection(day, strings.TrimSpace(reflectText))
	}
	if flags.Changed("positive") || flags.Changed("challenge") {
		current, _ := tr.Goal(day)
		positive, challenge := current.Positive, current.Challenge
		if flags.Changed("positive") {
			positive = weekly.Resolve(weekly.PositiveItems, reflectPositive)
		}
		if flags.Changed("challenge") {
			challenge = weekly.Resolve(weekly.ChallengeItems, reflectChallenge)
		}
		tr.UpdateChecklist(day, positive, challenge)
	}
	if err := saveErr(); err != nil {
		exitStorage(err)
	}

	g, _ := tr.Goal(day)
	fmt.Printf("Week %s updated: %d helped, %d got in the way.\n",
		timecalc.ISOWeekLabel(g.Week), len(g.Positive), len(g.Challenge))
	return nil
}

func runReflectExport(cmd *cobra.Command, args []string) error {
	day, err := timecalc.ParseDate(reflectDate, time.Now())
	if err != nil {
		return err
	}

	tr := loadTracker()
	g, ok := tr.Goal(day)
	if !ok {
		g = weekly.Goal{Week: timecalc.WeekStart(day)}
	}
	from, to := g.WeekRange()
	span := loadSpan(from, to)

	page, err := journal.Render(g, tr.Progress(day, span), span.RecordsBetween(from, to))
	if err != nil {
		return err
	}
	if reflectOut == "" {
		fmt.Print(page)
		return nil
	}
	if err := os.WriteFile(reflectOut, []byte(page), 0o600); err != nil {
		exitStorage(fmt.Errorf("writing %s: %w", reflectOut, err))
	}
	fmt.Printf("Wrote %s\n", reflectOut)
	return nil
}

func runReflectImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		exitStorage(fmt.Errorf("reading %s: %w", args[0], err))
	}
	page, err := journal.Parse(string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	week, err := page.WeekStart()
	if err != nil {
		return fmt.Errorf("%s: invalid week start %q: %w", args[0], page.Meta.From, err)
	}

	tr, saveErr := openTracker()
	tr.UpdateReflection(week, page.Reflection)
	tr.UpdateChecklist(week, page.Meta.Positive, page.Meta.Challenge)
	if err := saveErr(); err != nil {
		exitStorage(err)
	}
	fmt.Printf("Imported reflection for week %s.\n", page.Meta.Week)
	return nil
}

func printCatalogue(title string, items []string) {
	fmt.Println(title)
	for i, it := range items {
		fmt.Printf("%3d  %s\n", i+1, it)
	}
}
