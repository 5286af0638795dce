package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"
	meili "github.com/meilisearch/meilisearch-go"

	"locator/internal/domain"
)

// geoField is Meilisearch's reserved geo attribute
const geoField = "_geo"

// Meili executes queries against a Meilisearch index
type Meili struct {
	client meili.ServiceManager
	index  string
}

// NewMeili creates a Meilisearch-backed client.
// The index is not required to exist yet; Search will fail until it does.
func NewMeili(url, apiKey, index string) *Meili {
	client := meili.New(url, meili.WithAPIKey(apiKey))
	if _, err := client.Health(); err != nil {
		log.Printf("backend: meilisearch unavailable at %s: %v", url, err)
	}
	return &Meili{client: client, index: index}
}

// ExecuteVerticalQuery runs one search on the configured index
func (m *Meili) ExecuteVerticalQuery(ctx context.Context, req domain.QueryRequest) (domain.QueryResponse, error) {
	sr := &meili.SearchRequest{
		Limit:  int64(req.Limit),
		Offset: int64(req.State.Offset),
	}
	if filters := BuildMeiliFilter(req.State); len(filters) > 0 {
		sr.Filter = filters
	}
	if geo, ok := req.State.GeoFilter(); ok {
		sr.Sort = []string{fmt.Sprintf("_geoPoint(%s, %s):asc", formatFloat(geo.Filter.Geo.Lat), formatFloat(geo.Filter.Geo.Lng))}
	}

	resp, err := m.client.Index(m.index).SearchWithContext(ctx, req.State.Input, sr)
	if err != nil {
		return domain.QueryResponse{}, fmt.Errorf("meilisearch search: %w", err)
	}

	results := make([]domain.Result, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		results = append(results, hitToResult(hit))
	}

	return domain.QueryResponse{
		QueryID: uuid.NewString(),
		Results: results,
		Total:   int(resp.EstimatedTotalHits),
	}, nil
}

// BuildMeiliFilter translates selected static filters and facets into
// Meilisearch filter expressions, joined with AND
func BuildMeiliFilter(state domain.QueryState) []string {
	var filters []string
	for _, f := range state.StaticFilters {
		if !f.Selected {
			continue
		}
		if f.Filter.IsGeo() {
			g := f.Filter.Geo
			filters = append(filters, fmt.Sprintf("_geoRadius(%s, %s, %s)",
				formatFloat(g.Lat), formatFloat(g.Lng), strconv.Itoa(int(g.Radius))))
			continue
		}
		filters = append(filters, fmt.Sprintf("%s = %s", meiliField(f.Filter.FieldID), quote(f.Filter.Text)))
	}
	for _, f := range state.FacetFilters {
		filters = append(filters, fmt.Sprintf("%s = %s", meiliField(f.FieldID), quote(f.Value)))
	}
	return filters
}

// meiliField maps a field id to its attribute path in the indexed document.
// Extra fields live under "fields".
func meiliField(fieldID string) string {
	switch fieldID {
	case domain.LocationFieldID:
		return geoField
	case "id", "name", "address", "category":
		return fieldID
	default:
		return "fields." + fieldID
	}
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`) + `"`
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// meiliDocument is the shape indexed by ConfigureIndex/IndexLocations
type meiliDocument struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Address  string            `json:"address,omitempty"`
	Category string            `json:"category,omitempty"`
	Geo      *meiliGeo         `json:"_geo,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
}

type meiliGeo struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func hitToResult(hit meili.Hit) domain.Result {
	r := domain.Result{
		ID:       decodeString(hit, "id"),
		Name:     decodeString(hit, "name"),
		Address:  decodeString(hit, "address"),
		Category: decodeString(hit, "category"),
	}

	if raw, ok := hit[geoField]; ok {
		var g meiliGeo
		if err := json.Unmarshal(raw, &g); err == nil {
			r.Coordinate = &domain.Coordinate{Latitude: g.Lat, Longitude: g.Lng}
		}
	}
	if raw, ok := hit["_geoDistance"]; ok {
		_ = json.Unmarshal(raw, &r.Distance)
	}
	if raw, ok := hit["fields"]; ok {
		_ = json.Unmarshal(raw, &r.Fields)
	}
	return r
}

func decodeString(hit meili.Hit, key string) string {
	raw, ok := hit[key]
	if !ok {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}

// ConfigureIndex creates the index and sets the attributes the locator filters on
func (m *Meili) ConfigureIndex(filterable []string) error {
	if _, err := m.client.CreateIndex(&meili.IndexConfig{
		Uid:        m.index,
		PrimaryKey: "id",
	}); err != nil {
		log.Printf("backend: create index %s (may already exist): %v", m.index, err)
	}

	index := m.client.Index(m.index)
	attrs := []interface{}{geoField, "category"}
	for _, f := range filterable {
		attrs = append(attrs, meiliField(f))
	}
	if _, err := index.UpdateFilterableAttributes(&attrs); err != nil {
		return fmt.Errorf("update filterable attributes: %w", err)
	}

	sortable := []string{geoField}
	if _, err := index.UpdateSortableAttributes(&sortable); err != nil {
		return fmt.Errorf("update sortable attributes: %w", err)
	}

	searchable := []string{"name", "address", "category"}
	if _, err := index.UpdateSearchableAttributes(&searchable); err != nil {
		return fmt.Errorf("update searchable attributes: %w", err)
	}
	return nil
}

// IndexLocations bulk-indexes the given locations
func (m *Meili) IndexLocations(locations []domain.Result) error {
	if len(locations) == 0 {
		return nil
	}

	docs := make([]meiliDocument, 0, len(locations))
	for _, loc := range locations {
		doc := meiliDocument{
			ID:       loc.ID,
			Name:     loc.Name,
			Address:  loc.Address,
			Category: loc.Category,
			Fields:   loc.Fields,
		}
		if loc.Coordinate != nil {
			doc.Geo = &meiliGeo{Lat: loc.Coordinate.Latitude, Lng: loc.Coordinate.Longitude}
		}
		docs = append(docs, doc)
	}

	task, err := m.client.Index(m.index).AddDocuments(docs, nil)
	if err != nil {
		return fmt.Errorf("add documents: %w", err)
	}
	log.Printf("backend: enqueued %d locations into %s (task %d)", len(docs), m.index, task.TaskUID)
	return nil
}
