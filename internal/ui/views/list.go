package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ResultRow is one result as the list shows it
type ResultRow struct {
	Number        int // 1-based, matches the map marker
	ID            string
	Name          string
	Address       string
	Category      string
	Distance      float64 // meters, 0 when unknown
	HasCoordinate bool
	Hovered       bool
	Selected      bool
}

// ResultRenderer handles rendering of result rows
type ResultRenderer struct {
	styles *Styles
}

// NewResultRenderer creates a new result renderer
func NewResultRenderer(styles *Styles) *ResultRenderer {
	return &ResultRenderer{styles: styles}
}

// RenderResult renders one result as two lines
func (r *ResultRenderer) RenderResult(row ResultRow, width int) string {
	bg := lipgloss.NewStyle()
	switch {
	case row.Selected:
		bg = r.styles.SelectionBg
	case row.Hovered:
		bg = r.styles.HighlightBg
	}

	marker := fmt.Sprintf("%2d", row.Number)
	if !row.HasCoordinate {
		// Listed but not on the map
		marker = " -"
	}

	name := row.Name
	if row.Hovered || row.Selected {
		name = r.styles.Highlight.Inherit(bg).Render(name)
	} else {
		name = lipgloss.NewStyle().Bold(true).Render(name)
	}

	first := []string{bg.Render(marker + " "), name}
	if row.Distance > 0 {
		first = append(first, bg.Render(" "), r.styles.Distance.Inherit(bg).Render(FormatDistance(row.Distance)))
	}

	second := "   " + row.Address
	if row.Category != "" {
		second += "  " + r.styles.Category.Render("["+row.Category+"]")
	}

	lines := []string{
		truncate(strings.Join(first, ""), width),
		truncate(bg.Render(second), width),
	}
	return strings.Join(lines, "\n")
}

// FormatDistance renders meters for display
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0f m", meters)
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
