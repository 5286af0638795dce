package input

import (
	"locator/internal/ui/coordinator"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Coordinator *coordinator.Coordinator
}

// HoveredIndex returns the list position of the hovered result, or -1
func (c *ModelContext) HoveredIndex() int {
	return c.Coordinator.Selection.HoveredIndex(c.Coordinator.ResultIDs())
}

// TotalResults returns the number of results on the current page
func (c *ModelContext) TotalResults() int {
	return len(c.Coordinator.Results())
}

// HasHovered reports whether a result in the current set is hovered
func (c *ModelContext) HasHovered() bool {
	_, ok := c.Coordinator.HoveredResult()
	return ok
}

// HasSelected reports whether a result in the current set is selected
func (c *ModelContext) HasSelected() bool {
	_, ok := c.Coordinator.SelectedResult()
	return ok
}

// SearchAreaAvailable reports whether "search this area" is on offer
func (c *ModelContext) SearchAreaAvailable() bool {
	return c.Coordinator.Area.Available()
}

// CurrentInput returns the uncommitted search text
func (c *ModelContext) CurrentInput() string {
	return c.Coordinator.Query.GetQuery().Input
}

// FacetCount returns how many facet options are shown
func (c *ModelContext) FacetCount() int {
	return len(c.Coordinator.Facets.Options(c.Coordinator.Results()))
}
