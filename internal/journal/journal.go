// Package journal renders a week's goal and reflection as a Markdown page
// with YAML frontmatter, and reads edited pages back.
package journal

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/focus-shelf/internal/model"
	"github.com/Tiliavir/focus-shelf/internal/timecalc"
	"github.com/Tiliavir/focus-shelf/internal/weekly"
)

const (
	separator         = "---\n"
	reflectionHeading = "## Reflection"
)

// ErrNoFrontmatter is returned by Parse for pages without a frontmatter block.
var ErrNoFrontmatter = errors.New("missing frontmatter")

// Meta is the frontmatter of a week page.
type Meta struct {
	Week          string   `yaml:"week"`
	From          string   `yaml:"from"`
	To            string   `yaml:"to"`
	TargetSeconds int64    `yaml:"target_seconds"`
	StudySeconds  int64    `yaml:"study_seconds"`
	Percentage    float64  `yaml:"percentage"`
	Positive      []string `yaml:"positive,omitempty"`
	Challenge     []string `yaml:"challenge,omitempty"`
}

// Page is a parsed week page.
type Page struct {
	Meta       Meta
	Reflection string
	Body       string
}

// WeekStart returns the Monday the page belongs to.
func (p Page) WeekStart() (time.Time, error) {
	return time.ParseInLocation("2006-01-02", p.Meta.From, time.Local)
}

// Render builds the page for g. days are the records of g's week.
func Render(g weekly.Goal, progress weekly.Progress, days []model.DayRecord) (string, error) {
	from, to := g.WeekRange()
	meta := Meta{
		Week:          timecalc.ISOWeekLabel(g.Week),
		From:          from.Format("2006-01-02"),
		To:            to.Format("2006-01-02"),
		TargetSeconds: g.TargetSeconds,
		StudySeconds:  progress.Current,
		Percentage:    progress.Percentage,
		Positive:      g.Positive,
		Challenge:     g.Challenge,
	}
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(separator)
	buf.Write(raw)
	buf.WriteString(separator)
	buf.WriteString("\n")
	writeBody(&buf, g, progress, days)
	return buf.String(), nil
}

func writeBody(buf *bytes.Buffer, g weekly.Goal, progress weekly.Progress, days []model.DayRecord) {
	from, to := g.WeekRange()
	fmt.Fprintf(buf, "# Week %d · %s – %s\n\n", g.WeekNumber(), from.Format("Jan 2"), to.Format("Jan 2, 2006"))

	if g.TargetSeconds > 0 {
		fmt.Fprintf(buf, "Studied %s of %s (%.0f%%).\n\n",
			timecalc.FormatDuration(progress.Current), timecalc.FormatDuration(g.TargetSeconds), progress.Percentage)
	} else {
		fmt.Fprintf(buf, "Studied %s. No weekly target set.\n\n", timecalc.FormatDuration(progress.Current))
	}

	buf.WriteString("| Day | Study | Sessions | Failed | Book |\n")
	buf.WriteString("|-----|-------|----------|--------|------|\n")
	for _, d := range days {
		day, ok := d.Date.Time()
		if !ok {
			continue
		}
		fmt.Fprintf(buf, "| %s | %s | %d | %d | %s |\n",
			day.Format("Mon 02"), timecalc.FormatDuration(d.StudySeconds), len(d.Sessions), d.FailedCount(), d.BookType())
	}

	fmt.Fprintf(buf, "\n%s\n\n", reflectionHeading)
	if r := strings.TrimSpace(g.Reflection); r != "" {
		buf.WriteString(r + "\n")
	}
	writeList(buf, "## What helped", g.Positive)
	writeList(buf, "## What got in the way", g.Challenge)
}

func writeList(buf *bytes.Buffer, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(buf, "\n%s\n\n", heading)
	for _, it := range items {
		fmt.Fprintf(buf, "- %s\n", it)
	}
}

// Parse splits a page into frontmatter and body and extracts the text of
// the reflection section.
func Parse(content string) (Page, error) {
	if !strings.HasPrefix(content, separator) {
		return Page{}, ErrNoFrontmatter
	}
	rest := strings.TrimPrefix(content, separator)
	idx := strings.Index(rest, "\n"+separator)
	if idx < 0 {
		return Page{}, fmt.Errorf("invalid frontmatter: missing closing separator")
	}

	var p Page
	if err := yaml.Unmarshal([]byte(rest[:idx]), &p.Meta); err != nil {
		return Page{}, fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	p.Body = rest[idx+len("\n"+separator):]
	p.Reflection = section(p.Body, reflectionHeading)
	return p, nil
}

// section returns the trimmed text under heading up to the next "## " heading.
func section(body, heading string) string {
	start := strings.Index(body, heading+"\n")
	if start < 0 {
		return ""
	}
	text := body[start+len(heading)+1:]
	if end := strings.Index(text, "\n## "); end >= 0 {
		text = text[:end]
	}
	return strings.TrimSpace(text)
}
