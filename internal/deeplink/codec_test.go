package deeplink

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locator/internal/domain"
)

func TestEncodeDecode(t *testing.T) {
	state := domain.QueryState{
		Input: "coffee & cake",
		StaticFilters: []domain.SelectableFilter{
			{
				Selected:    true,
				DisplayName: domain.MapAreaName,
				Filter: domain.Filter{
					FieldID: domain.LocationFieldID,
					Matcher: domain.MatcherNear,
					Geo:     &domain.GeoValue{Lat: 35.6812, Lng: 139.7671, Radius: 1430.5},
				},
			},
			{
				Selected:    true,
				DisplayName: "cafe",
				Filter:      domain.Filter{FieldID: "category", Matcher: domain.MatcherEquals, Text: "cafe"},
			},
		},
		FacetFilters: []domain.FacetFilter{{FieldID: "region", Value: "east"}},
		Offset:       20,
	}

	params, err := Decode(Encode(state))
	require.NoError(t, err)

	assert.Equal(t, state.Input, params.Input)
	assert.Equal(t, state.StaticFilters, params.StaticFilters)
	assert.Equal(t, state.FacetFilters, params.FacetFilters)
	assert.Equal(t, 20, params.Offset)
}

func TestEncodeSkipsUnselectedAndZeroOffset(t *testing.T) {
	link := Encode(domain.QueryState{
		StaticFilters: []domain.SelectableFilter{{
			Selected: false,
			Filter:   domain.Filter{FieldID: "category", Matcher: domain.MatcherEquals, Text: "cafe"},
		}},
	})
	assert.Empty(t, link)
}

func TestDecodeFullURL(t *testing.T) {
	params, err := Decode("https://example.com/locator?q=ramen&near=35.1,139.2,500")
	require.NoError(t, err)

	assert.Equal(t, "ramen", params.Input)
	require.Len(t, params.StaticFilters, 1)
	geo := params.StaticFilters[0]
	assert.Equal(t, domain.CurrentLocationName, geo.DisplayName)
	assert.Equal(t, &domain.GeoValue{Lat: 35.1, Lng: 139.2, Radius: 500}, geo.Filter.Geo)
}

func TestDecodeEmpty(t *testing.T) {
	params, err := Decode("")
	require.NoError(t, err)
	assert.Equal(t, domain.InitialParams{}, params)

	params, err = Decode("https://example.com/locator")
	require.NoError(t, err)
	assert.Equal(t, domain.InitialParams{}, params)
}

func TestDecodeMalformed(t *testing.T) {
	for _, raw := range []string{
		"near=1,2",
		"near=a,b,c",
		"near=95,0,100",
		"near=1,2,0",
		"filter=novalue",
		"facet=:x",
		"offset=-1",
		"offset=two",
		"q=%zz",
	} {
		_, err := Decode(raw)
		assert.ErrorIs(t, err, ErrMalformed, raw)
	}
}

func TestSource(t *testing.T) {
	params, err := Source{Raw: "q=tea"}.Params(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tea", params.Input)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Source{Raw: "q=tea"}.Params(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
