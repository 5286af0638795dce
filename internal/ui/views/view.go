package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FacetChip is one facet option in the facet bar
type FacetChip struct {
	Label  string
	Count  int
	Active bool
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width    int
	Height   int
	Title    string
	Subtitle string

	SearchBox     string // rendered text input
	SearchFocused bool
	ModeName      string
	ActiveFilters []string // display names of selected static filters

	Rows           []ResultRow
	ViewportOffset int
	ViewportHeight int // rows of results that fit
	ResultInfo     string
	Fallback       bool
	Error          string
	Facets         []FacetChip

	Map MapView

	Loading bool
	Spinner string

	StatusMessage string
	StatusIsError bool
	DeepLink      string
	ShowInfo      bool
	InfoContent   string
	HelpView      string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	listRender  *ResultRenderer
	mapRender   *MapRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		listRender:  NewResultRenderer(styles),
		mapRender:   NewMapRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Layout returns the size of the list and map panes for a terminal size
func Layout(width, height int) (listWidth, mapWidth, paneHeight int) {
	inner := width - 2 // main container padding
	listWidth = inner * 45 / 100
	mapWidth = inner - listWidth - 4 // two pane borders
	listWidth -= 2
	// Header (title, subtitle, search box, facets) and footer (status, help)
	paneHeight = height - 10
	if paneHeight < 4 {
		paneHeight = 4
	}
	return listWidth, mapWidth, paneHeight
}

// ListCapacity returns how many two-line result rows fit in the list pane
func ListCapacity(height int) int {
	_, _, paneHeight := Layout(80, height)
	rows := (paneHeight - 1) / 2 // one line for result info
	if rows < 1 {
		rows = 1
	}
	return rows
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.ShowInfo && state.InfoContent != "" {
		return r.popupRender.RenderPopupOverlay(state.InfoContent, state.Height, state.Width, r.styles.InfoBox)
	}

	content := &strings.Builder{}

	// Title with loading indicator
	title := r.styles.Title.Render(state.Title)
	if state.Loading {
		title = fmt.Sprintf("%s  %s", title, r.styles.StatusLoading.Render(state.Spinner+" Searching"))
	}
	content.WriteString(title)
	content.WriteString("\n")
	if state.Subtitle != "" {
		content.WriteString(r.styles.Subtitle.Render(state.Subtitle))
	}
	content.WriteString("\n")

	listWidth, mapWidth, paneHeight := Layout(state.Width, state.Height)

	boxStyle := r.styles.SearchBox
	if state.SearchFocused {
		boxStyle = r.styles.SearchFocused
	}
	content.WriteString(boxStyle.Width(state.Width - 6).Render(state.SearchBox))
	content.WriteString("\n")
	content.WriteString(r.renderFilterBar(state))
	content.WriteString("\n")

	listPane := r.styles.Pane
	mapPane := r.styles.Pane
	if state.Map.Focused {
		mapPane = r.styles.PaneFocused
	} else if !state.SearchFocused {
		listPane = r.styles.PaneFocused
	}

	list := listPane.Width(listWidth).Height(paneHeight).Render(r.renderResultList(state, listWidth, paneHeight))
	m := mapPane.Width(mapWidth).Height(paneHeight).Render(r.mapRender.Render(state.Map, mapWidth, paneHeight))
	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, m))
	content.WriteString("\n")

	content.WriteString(r.renderStatusLine(state))
	content.WriteString("\n")
	if state.HelpView != "" {
		content.WriteString(r.styles.Help.Render(state.HelpView))
	} else {
		content.WriteString(r.styles.Help.Render("Press ? for help"))
	}

	mainStyle := r.styles.Main.MaxHeight(state.Height)
	return mainStyle.Render(content.String())
}

func (r *Renderer) renderFilterBar(state ViewState) string {
	var parts []string
	for _, f := range state.ActiveFilters {
		parts = append(parts, r.styles.Filter.Render("["+f+"]"))
	}
	for i, f := range state.Facets {
		label := fmt.Sprintf("%d:%s(%d)", i+1, f.Label, f.Count)
		if f.Active {
			parts = append(parts, r.styles.FacetActive.Render("*"+label))
		} else {
			parts = append(parts, r.styles.Facet.Render(label))
		}
	}
	if len(parts) == 0 {
		return r.styles.Dim.Render("No filters")
	}
	return strings.Join(parts, " ")
}

// renderResultList renders the visible window of results
func (r *Renderer) renderResultList(state ViewState, width, height int) string {
	var lines []string

	switch {
	case state.Error != "":
		lines = append(lines, r.styles.StatusError.Render("Search failed: "+state.Error))
	case state.Fallback:
		lines = append(lines, r.styles.Filter.Render("No matches, showing all locations"))
	case state.ResultInfo != "":
		lines = append(lines, r.styles.Dim.Render(state.ResultInfo))
	}

	if len(state.Rows) == 0 {
		if state.Error == "" && !state.Loading {
			lines = append(lines, r.styles.Dim.Render("No locations found."))
		}
		return strings.Join(lines, "\n")
	}

	start := state.ViewportOffset
	if start < 0 || start >= len(state.Rows) {
		start = 0
	}
	end := start + state.ViewportHeight
	if end > len(state.Rows) {
		end = len(state.Rows)
	}

	if start > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more", start)))
	}
	for _, row := range state.Rows[start:end] {
		lines = append(lines, r.listRender.RenderResult(row, width))
	}
	if end < len(state.Rows) {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more", len(state.Rows)-end)))
	}

	return lipgloss.NewStyle().MaxHeight(height).Render(strings.Join(lines, "\n"))
}

func (r *Renderer) renderStatusLine(state ViewState) string {
	if state.StatusMessage != "" {
		if state.StatusIsError {
			return r.styles.StatusError.Render(state.StatusMessage)
		}
		return r.styles.StatusSuccess.Render(state.StatusMessage)
	}
	mode := r.styles.Status.Render("[" + state.ModeName + "]")
	if state.DeepLink == "" {
		return mode
	}
	return mode + " " + r.styles.Link.Render("?"+state.DeepLink)
}
