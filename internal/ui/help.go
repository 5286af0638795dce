package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Results", []helpEntry{
		{"↑/↓, j/k", "Move through results"},
		{"PgUp/PgDn", "Page through the visible list"},
		{"gg/G", "Go to first/last result"},
		{"Enter, Space", "Select result"},
		{"Esc", "Clear selection"},
		{"i", "Show details of the selected result"},
	}},
	{"Search", []helpEntry{
		{"/", "Edit the search box, Enter to search"},
		{"1-9", "Toggle a category facet"},
		{"0", "Clear facets"},
		{"[ / ]", "Previous/next page of results"},
		{"L", "Search near your location"},
	}},
	{"Map", []helpEntry{
		{"Tab", "Switch between list and map"},
		{"←↑↓→, hjkl", "Pan the map (map mode)"},
		{"+/-", "Zoom in/out (map mode)"},
		{"n/N", "Next/previous marker (map mode)"},
		{"a", "Search this area after panning"},
	}},
	{"Other", []helpEntry{
		{"y", "Show the link to this search"},
		{"?", "Show this help"},
		{"q", "Quit"},
	}},
}

// RenderHelpContentPlain generates help content with colors for pager
func (r *HelpRenderer) RenderHelpContentPlain(title string) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render(title + " Help"))
	help.WriteString("\n")

	for _, section := range helpSections {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, e := range section.entries {
			pad := 14 - lipgloss.Width(e.keys)
			if pad < 1 {
				pad = 1
			}
			help.WriteString(fmt.Sprintf("  %s%s%s\n", keyStyle.Render(e.keys), strings.Repeat(" ", pad), descStyle.Render(e.desc)))
		}
		help.WriteString("\n")
	}

	filterStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	help.WriteString(filterStyle.Render("  Links: ?q=coffee&near=35.68,139.76,2000&facet=category:cafe"))

	return help.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
