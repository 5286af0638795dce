package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title          lipgloss.Style
	Subtitle       lipgloss.Style
	Dim            lipgloss.Style
	Status         lipgloss.Style
	SearchBox      lipgloss.Style
	SearchFocused  lipgloss.Style
	Facet          lipgloss.Style
	FacetActive    lipgloss.Style
	Filter         lipgloss.Style
	InfoBox        lipgloss.Style
	Help           lipgloss.Style
	Main           lipgloss.Style
	Pane           lipgloss.Style
	PaneFocused    lipgloss.Style
	Scroll         lipgloss.Style
	Highlight      lipgloss.Style
	HighlightBg    lipgloss.Style
	SelectionBg    lipgloss.Style
	Distance       lipgloss.Style
	Category       lipgloss.Style
	StatusError    lipgloss.Style
	StatusLoading  lipgloss.Style
	StatusSuccess  lipgloss.Style
	AreaButton     lipgloss.Style
	Marker         lipgloss.Style
	MarkerHovered  lipgloss.Style
	MarkerSelected lipgloss.Style
	Crosshair      lipgloss.Style
	Link           lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Dim:      lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		SearchBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		SearchFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Facet:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		FacetActive: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // yellow
		Filter:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			Width(60).
			BorderForeground(lipgloss.Color("241")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(0, 1),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("238")),
		PaneFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("99")),
		Scroll:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		HighlightBg:    lipgloss.NewStyle().Background(lipgloss.Color("238")),
		SelectionBg:    lipgloss.NewStyle().Background(lipgloss.Color("24")),
		Distance:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		Category:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")), // gray
		StatusError:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		AreaButton:     lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Bold(true),
		Marker:         lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		MarkerHovered:  lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("226")).Bold(true),
		MarkerSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("24")).Bold(true),
		Crosshair:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Link:           lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true),
	}
}
