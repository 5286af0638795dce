package views

import (
	"strconv"
	"strings"

	"locator/internal/domain"
)

// minSpan keeps a single-point frame from collapsing to nothing
const minSpan = 0.005

// MapMarker is a result drawn on the map
type MapMarker struct {
	Number     int
	Coordinate domain.Coordinate
	Hovered    bool
	Selected   bool
}

// MapView contains the state needed to draw the map pane
type MapView struct {
	Bounds         domain.GeoBounds
	HasBounds      bool
	Markers        []MapMarker
	UserPanned     bool
	ShowAreaButton bool
	Focused        bool
}

// MapRenderer draws markers projected onto a character grid
type MapRenderer struct {
	styles *Styles
}

// NewMapRenderer creates a new map renderer
func NewMapRenderer(styles *Styles) *MapRenderer {
	return &MapRenderer{styles: styles}
}

// Padded widens degenerate bounds so every marker gets a cell
func Padded(b domain.GeoBounds) domain.GeoBounds {
	latSpan, lngSpan := b.Span()
	if latSpan < minSpan {
		pad := (minSpan - latSpan) / 2
		b.NE.Latitude += pad
		b.SW.Latitude -= pad
	}
	if lngSpan < minSpan {
		pad := (minSpan - lngSpan) / 2
		b.NE.Longitude += pad
		b.SW.Longitude -= pad
	}
	return b
}

// Project maps c to a cell of a cols x rows grid covering b.
// ok is false when c lies outside b.
func Project(b domain.GeoBounds, c domain.Coordinate, cols, rows int) (x, y int, ok bool) {
	if cols <= 0 || rows <= 0 || !b.Contains(c) {
		return 0, 0, false
	}
	latSpan, lngSpan := b.Span()
	if latSpan <= 0 || lngSpan <= 0 {
		return 0, 0, false
	}
	x = int((c.Longitude - b.SW.Longitude) / lngSpan * float64(cols-1))
	y = int((b.NE.Latitude - c.Latitude) / latSpan * float64(rows-1))
	return x, y, true
}

// Render draws the map into a cols x rows block
func (r *MapRenderer) Render(mv MapView, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	if !mv.HasBounds {
		return r.styles.Dim.Render("No locations to show")
	}

	// Reserve the bottom row for the legend
	gridRows := rows - 1
	if gridRows < 1 {
		gridRows = 1
	}

	grid := make([][]string, gridRows)
	for i := range grid {
		grid[i] = make([]string, cols)
		for j := range grid[i] {
			grid[i][j] = r.styles.Dim.Render("·")
		}
	}

	bounds := mv.Bounds
	if !mv.UserPanned {
		bounds = Padded(bounds)
	}

	if mv.UserPanned {
		cx, cy, ok := Project(bounds, bounds.Center(), cols, gridRows)
		if ok {
			grid[cy][cx] = r.styles.Crosshair.Render("+")
		}
	}

	// Hovered and selected markers are drawn last so they stay on top
	ordered := make([]MapMarker, 0, len(mv.Markers))
	var top []MapMarker
	for _, m := range mv.Markers {
		if m.Hovered || m.Selected {
			top = append(top, m)
			continue
		}
		ordered = append(ordered, m)
	}
	ordered = append(ordered, top...)

	for _, m := range ordered {
		x, y, ok := Project(bounds, m.Coordinate, cols, gridRows)
		if !ok {
			continue
		}
		style := r.styles.Marker
		switch {
		case m.Selected:
			style = r.styles.MarkerSelected
		case m.Hovered:
			style = r.styles.MarkerHovered
		}
		grid[y][x] = style.Render(markerLabel(m.Number))
	}

	var b strings.Builder
	for i, row := range grid {
		b.WriteString(strings.Join(row, ""))
		if i < len(grid)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if mv.ShowAreaButton {
		b.WriteString(r.styles.AreaButton.Render(" Search This Area (a) "))
	} else {
		c := bounds.Center()
		b.WriteString(r.styles.Dim.Render(strconv.FormatFloat(c.Latitude, 'f', 4, 64) + ", " +
			strconv.FormatFloat(c.Longitude, 'f', 4, 64)))
	}
	return b.String()
}

func markerLabel(n int) string {
	if n >= 1 && n <= 9 {
		return strconv.Itoa(n)
	}
	return "*"
}
