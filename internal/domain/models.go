package domain

// Coordinate is a WGS 84 position
type Coordinate struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// GeoBounds is a rectangular map area described by its corners
type GeoBounds struct {
	NE Coordinate // north-east corner
	SW Coordinate // south-west corner
}

// Viewport is the map area the user last panned to
type Viewport struct {
	Center Coordinate
	Bounds GeoBounds
}

// Matcher is the comparison a filter applies to its field
type Matcher string

const (
	MatcherEquals Matcher = "$eq"
	MatcherNear   Matcher = "$near"
)

// LocationFieldID is the field geo-radius filters apply to
const LocationFieldID = "builtin.location"

// Display names of the filters that occupy the geo slot
const (
	CurrentLocationName = "Current location"
	MapAreaName         = "Current map area"
)

// GeoValue is the value of a geo-radius filter
type GeoValue struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Radius float64 `json:"radius"` // meters
}

// Filter restricts a query on one field
type Filter struct {
	FieldID string    `json:"fieldId"`
	Matcher Matcher   `json:"matcher"`
	Text    string    `json:"text,omitempty"` // value for non-geo matchers
	Geo     *GeoValue `json:"geo,omitempty"`  // value for MatcherNear
}

// IsGeo reports whether the filter is a geo-radius filter
func (f Filter) IsGeo() bool {
	return f.Matcher == MatcherNear && f.Geo != nil
}

// SelectableFilter is a static filter as shown to the user
type SelectableFilter struct {
	Selected    bool   `json:"selected"`
	DisplayName string `json:"displayName"`
	Filter      Filter `json:"filter"`
}

// FacetFilter is a refinement derived from result facets
type FacetFilter struct {
	FieldID string `json:"fieldId"`
	Value   string `json:"value"`
}

// QueryState is the uncommitted query the controller will send next
type QueryState struct {
	Input         string             `json:"input"`
	StaticFilters []SelectableFilter `json:"staticFilters"`
	FacetFilters  []FacetFilter      `json:"facetFilters"`
	Offset        int                `json:"offset"`
}

// Clone returns a deep copy safe to hand to another goroutine
func (q QueryState) Clone() QueryState {
	out := q
	out.StaticFilters = append([]SelectableFilter(nil), q.StaticFilters...)
	for i, f := range out.StaticFilters {
		if f.Filter.Geo != nil {
			geo := *f.Filter.Geo
			out.StaticFilters[i].Filter.Geo = &geo
		}
	}
	out.FacetFilters = append([]FacetFilter(nil), q.FacetFilters...)
	return out
}

// GeoFilter returns the selected geo filter in the static set, if any
func (q QueryState) GeoFilter() (SelectableFilter, bool) {
	for _, f := range q.StaticFilters {
		if f.Selected && f.Filter.IsGeo() {
			return f, true
		}
	}
	return SelectableFilter{}, false
}

// Result is one location returned by the search backend
type Result struct {
	ID         string            `json:"id" yaml:"id"`
	Name       string            `json:"name" yaml:"name"`
	Address    string            `json:"address,omitempty" yaml:"address"`
	Category   string            `json:"category,omitempty" yaml:"category"`
	Coordinate *Coordinate       `json:"coordinate,omitempty" yaml:"coordinate"` // display coordinate, optional
	Distance   float64           `json:"distance,omitempty" yaml:"-"`            // meters from the geo filter center
	Fields     map[string]string `json:"fields,omitempty" yaml:"fields"`
}

// HasCoordinate reports whether the result can be placed on the map
func (r Result) HasCoordinate() bool {
	return r.Coordinate != nil
}

// InitialParams are the externally supplied filters applied before the first query
type InitialParams struct {
	Input         string
	StaticFilters []SelectableFilter
	FacetFilters  []FacetFilter
	Offset        int
}

// QueryPurpose tags why a request was issued
type QueryPurpose string

const (
	PurposeSearch    QueryPurpose = "search"
	PurposeFallback  QueryPurpose = "fallback" // broadened query after zero results
	PurposeAllOnLoad QueryPurpose = "all-on-load"
)

// QueryRequest is one committed query sent to the backend
type QueryRequest struct {
	Seq       uint64 // issue order, used to drop stale resolutions
	State     QueryState
	Limit     int
	Purpose   QueryPurpose
	AllOnLoad bool // true for the first execution under all-results-on-load
}

// QueryResponse is what the backend returns for a request
type QueryResponse struct {
	QueryID string // opaque, changes per executed query
	Results []Result
	Total   int
}

// QueryOutcome pairs a request sequence with its resolution
type QueryOutcome struct {
	Seq       uint64
	Purpose   QueryPurpose
	AllOnLoad bool
	Response  QueryResponse
	Err       error
}
