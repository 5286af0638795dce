package backend

import (
	"context"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"locator/internal/domain"
)

// Memory serves queries from an in-memory dataset.
// The dataset is never mutated after construction, so one Memory can
// serve concurrent requests.
type Memory struct {
	locations []domain.Result
}

// NewMemory creates a backend over the given locations
func NewMemory(locations []domain.Result) *Memory {
	return &Memory{locations: append([]domain.Result(nil), locations...)}
}

// ExecuteVerticalQuery filters, orders and pages the dataset
func (m *Memory) ExecuteVerticalQuery(ctx context.Context, req domain.QueryRequest) (domain.QueryResponse, error) {
	if err := ctx.Err(); err != nil {
		return domain.QueryResponse{}, err
	}

	geo, hasGeo := req.State.GeoFilter()

	var matched []domain.Result
	for _, loc := range m.locations {
		if !matchesText(loc, req.State.Input) {
			continue
		}
		if !matchesStatic(loc, req.State.StaticFilters) {
			continue
		}
		if !matchesFacets(loc, req.State.FacetFilters) {
			continue
		}
		if hasGeo {
			center := domain.Coordinate{Latitude: geo.Filter.Geo.Lat, Longitude: geo.Filter.Geo.Lng}
			loc.Distance = domain.DistanceMeters(center, *loc.Coordinate)
		}
		matched = append(matched, loc)
	}

	if hasGeo {
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Distance < matched[j].Distance
		})
	}

	return domain.QueryResponse{
		QueryID: uuid.NewString(),
		Results: page(matched, req.State.Offset, req.Limit),
		Total:   len(matched),
	}, nil
}

// matchesText reports whether every word of input appears in the location,
// allowing small typos against words of the name
func matchesText(loc domain.Result, input string) bool {
	words := strings.Fields(strings.ToLower(input))
	if len(words) == 0 {
		return true
	}

	haystack := strings.ToLower(loc.Name + " " + loc.Address + " " + loc.Category)
	nameWords := strings.Fields(strings.ToLower(loc.Name))

	for _, w := range words {
		if strings.Contains(haystack, w) {
			continue
		}
		if !fuzzyContains(nameWords, w) {
			return false
		}
	}
	return true
}

// fuzzyContains allows one edit per four characters of the query word
func fuzzyContains(candidates []string, word string) bool {
	budget := len(word) / 4
	if budget == 0 {
		return false
	}
	for _, c := range candidates {
		if levenshtein.ComputeDistance(c, word) <= budget {
			return true
		}
	}
	return false
}

func matchesStatic(loc domain.Result, filters []domain.SelectableFilter) bool {
	for _, f := range filters {
		if !f.Selected {
			continue
		}
		if f.Filter.IsGeo() {
			if !loc.HasCoordinate() {
				return false
			}
			center := domain.Coordinate{Latitude: f.Filter.Geo.Lat, Longitude: f.Filter.Geo.Lng}
			if domain.DistanceMeters(center, *loc.Coordinate) > f.Filter.Geo.Radius {
				return false
			}
			continue
		}
		if !strings.EqualFold(fieldValue(loc, f.Filter.FieldID), f.Filter.Text) {
			return false
		}
	}
	return true
}

func matchesFacets(loc domain.Result, facets []domain.FacetFilter) bool {
	for _, f := range facets {
		if !strings.EqualFold(fieldValue(loc, f.FieldID), f.Value) {
			return false
		}
	}
	return true
}

func fieldValue(loc domain.Result, fieldID string) string {
	switch fieldID {
	case "id":
		return loc.ID
	case "name":
		return loc.Name
	case "address":
		return loc.Address
	case "category":
		return loc.Category
	default:
		return loc.Fields[fieldID]
	}
}
