package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/focus-shelf/internal/model"
	"github.com/Tiliavir/focus-shelf/internal/shelf"
	"github.com/Tiliavir/focus-shelf/internal/timecalc"
)

var weekdays = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// Glyph returns the marker for a day's book, "" when the shelf stays empty.
func Glyph(rec model.DayRecord, showFailed bool) string {
	switch rec.BookType() {
	case model.BookGolden:
		return "★"
	case model.BookLuxury:
		return "◆"
	case model.BookNormal:
		return "▪"
	}
	if showFailed && len(rec.Sessions) > 0 && !rec.ShouldShowBook() {
		return "✗"
	}
	return ""
}

// RenderShelf draws the month grid. Days outside the month are dimmed and
// today is underlined.
func RenderShelf(weeks []shelf.Week, today time.Time, showFailed bool) string {
	rows := make([]string, 0, len(weeks)+1)

	header := make([]string, len(weekdays))
	for i, d := range weekdays {
		header[i] = headerStyle.Render(d)
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	for _, w := range weeks {
		cells := make([]string, len(w))
		for i, c := range w {
			cells[i] = renderCell(c, today, showFailed)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderCell(c shelf.Cell, today time.Time, showFailed bool) string {
	day := fmt.Sprintf("%d", c.Date.Day())
	if timecalc.SameDay(c.Date, today) {
		day = todayStyle.Render(day)
	}
	if !c.InMonth {
		return outsideStyle.Render(day)
	}
	if !c.HasRecord {
		return normalStyle.Render(day)
	}

	glyph := Glyph(c.Record, showFailed)
	text := day + glyph
	switch {
	case glyph == "✗":
		return failedStyle.Render(text)
	case c.Record.BookType() == model.BookGolden:
		return goldenStyle.Render(text)
	case c.Record.BookType() == model.BookLuxury:
		return luxuryStyle.Render(text)
	default:
		return normalStyle.Render(text)
	}
}

// Legend explains the grid markers.
func Legend(showFailed bool) string {
	parts := []string{"▪ ≥ required", "◆ ≥ 1h", "★ ≥ 2h"}
	if showFailed {
		parts = append(parts, "✗ only failed sessions")
	}
	return mutedStyle.Render(strings.Join(parts, "   "))
}
