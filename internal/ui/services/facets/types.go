package facets

// CategoryField is the result field facets are built from
const CategoryField = "category"

// Option is one facet value offered to the user
type Option struct {
	FieldID string
	Value   string
	Count   int // results on the current page with this value
	Active  bool
}

// Event types
type FacetToggledEvent struct {
	FieldID string
	Value   string
	Active  bool
}

type FacetsClearedEvent struct{}
