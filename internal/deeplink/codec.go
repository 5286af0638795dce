// Package deeplink converts between a locator query and a URL query string.
//
// Keys:
//
//	q       free-text input
//	near    lat,lng,radiusMeters[,display name]
//	filter  field:value (repeatable, equality)
//	facet   field:value (repeatable)
//	offset  result offset
//
// Unknown keys are ignored so links survive new parameters.
package deeplink

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"locator/internal/domain"
)

// ErrMalformed is returned when a link cannot be decoded
var ErrMalformed = errors.New("malformed deep link")

// Encode renders the committed query as a query string (without '?')
func Encode(state domain.QueryState) string {
	values := url.Values{}
	if state.Input != "" {
		values.Set("q", state.Input)
	}
	for _, f := range state.StaticFilters {
		if !f.Selected {
			continue
		}
		if f.Filter.IsGeo() {
			g := f.Filter.Geo
			values.Set("near", strings.Join([]string{
				formatFloat(g.Lat), formatFloat(g.Lng), formatFloat(g.Radius), f.DisplayName,
			}, ","))
			continue
		}
		values.Add("filter", f.Filter.FieldID+":"+f.Filter.Text)
	}
	for _, f := range state.FacetFilters {
		values.Add("facet", f.FieldID+":"+f.Value)
	}
	if state.Offset > 0 {
		values.Set("offset", strconv.Itoa(state.Offset))
	}
	return values.Encode()
}

// Decode parses a query string or a full URL into initial parameters
func Decode(raw string) (domain.InitialParams, error) {
	var params domain.InitialParams

	if i := strings.Index(raw, "?"); i >= 0 {
		raw = raw[i+1:]
	}
	if raw == "" {
		return params, nil
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return params, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	params.Input = values.Get("q")

	if near := values.Get("near"); near != "" {
		f, err := decodeNear(near)
		if err != nil {
			return domain.InitialParams{}, err
		}
		params.StaticFilters = append(params.StaticFilters, f)
	}

	for _, v := range values["filter"] {
		field, value, ok := strings.Cut(v, ":")
		if !ok || field == "" {
			return domain.InitialParams{}, fmt.Errorf("%w: filter %q", ErrMalformed, v)
		}
		params.StaticFilters = append(params.StaticFilters, domain.SelectableFilter{
			Selected:    true,
			DisplayName: value,
			Filter: domain.Filter{
				FieldID: field,
				Matcher: domain.MatcherEquals,
				Text:    value,
			},
		})
	}

	for _, v := range values["facet"] {
		field, value, ok := strings.Cut(v, ":")
		if !ok || field == "" {
			return domain.InitialParams{}, fmt.Errorf("%w: facet %q", ErrMalformed, v)
		}
		params.FacetFilters = append(params.FacetFilters, domain.FacetFilter{FieldID: field, Value: value})
	}

	if offset := values.Get("offset"); offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil || n < 0 {
			return domain.InitialParams{}, fmt.Errorf("%w: offset %q", ErrMalformed, offset)
		}
		params.Offset = n
	}

	return params, nil
}

func decodeNear(v string) (domain.SelectableFilter, error) {
	parts := strings.SplitN(v, ",", 4)
	if len(parts) < 3 {
		return domain.SelectableFilter{}, fmt.Errorf("%w: near %q", ErrMalformed, v)
	}

	nums := make([]float64, 3)
	for i := range nums {
		n, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return domain.SelectableFilter{}, fmt.Errorf("%w: near %q", ErrMalformed, v)
		}
		nums[i] = n
	}
	if nums[0] < -90 || nums[0] > 90 || nums[1] < -180 || nums[1] > 180 || nums[2] <= 0 {
		return domain.SelectableFilter{}, fmt.Errorf("%w: near %q out of range", ErrMalformed, v)
	}

	name := domain.CurrentLocationName
	if len(parts) == 4 && parts[3] != "" {
		name = parts[3]
	}

	return domain.SelectableFilter{
		Selected:    true,
		DisplayName: name,
		Filter: domain.Filter{
			FieldID: domain.LocationFieldID,
			Matcher: domain.MatcherNear,
			Geo:     &domain.GeoValue{Lat: nums[0], Lng: nums[1], Radius: nums[2]},
		},
	}, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Source supplies initial parameters from a link given on the command line
type Source struct {
	Raw string
}

// Params decodes the link
func (s Source) Params(ctx context.Context) (domain.InitialParams, error) {
	if err := ctx.Err(); err != nil {
		return domain.InitialParams{}, err
	}
	return Decode(s.Raw)
}
