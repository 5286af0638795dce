package domain

import "math"

// earthRadiusMiles is the mean earth radius used by DistanceMiles
const earthRadiusMiles = 3958.8

// MetersPerMile converts the output of DistanceMiles into meters.
// It is tied to DistanceMiles returning statute miles; a different
// distance primitive needs its own conversion.
const MetersPerMile = 1609

// DistanceMiles returns the great-circle distance between two points in statute miles
func DistanceMiles(a, b Coordinate) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := lat2 - lat1
	dLng := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMiles * math.Asin(math.Min(1, math.Sqrt(h)))
}

// DistanceMeters returns the great-circle distance in meters
func DistanceMeters(a, b Coordinate) float64 {
	return DistanceMiles(a, b) * MetersPerMile
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Center returns the midpoint of the bounds
func (b GeoBounds) Center() Coordinate {
	return Coordinate{
		Latitude:  (b.NE.Latitude + b.SW.Latitude) / 2,
		Longitude: (b.NE.Longitude + b.SW.Longitude) / 2,
	}
}

// Contains reports whether c lies inside the bounds
func (b GeoBounds) Contains(c Coordinate) bool {
	return c.Latitude <= b.NE.Latitude && c.Latitude >= b.SW.Latitude &&
		c.Longitude <= b.NE.Longitude && c.Longitude >= b.SW.Longitude
}

// Span returns the latitude and longitude extent of the bounds
func (b GeoBounds) Span() (lat, lng float64) {
	return b.NE.Latitude - b.SW.Latitude, b.NE.Longitude - b.SW.Longitude
}

// Shift moves the bounds by the given fractions of its own span
func (b GeoBounds) Shift(latFrac, lngFrac float64) GeoBounds {
	latSpan, lngSpan := b.Span()
	dLat, dLng := latSpan*latFrac, lngSpan*lngFrac
	return GeoBounds{
		NE: Coordinate{Latitude: b.NE.Latitude + dLat, Longitude: b.NE.Longitude + dLng},
		SW: Coordinate{Latitude: b.SW.Latitude + dLat, Longitude: b.SW.Longitude + dLng},
	}
}

// Scale grows or shrinks the bounds around its center
func (b GeoBounds) Scale(factor float64) GeoBounds {
	c := b.Center()
	latSpan, lngSpan := b.Span()
	halfLat, halfLng := latSpan*factor/2, lngSpan*factor/2
	return GeoBounds{
		NE: Coordinate{Latitude: c.Latitude + halfLat, Longitude: c.Longitude + halfLng},
		SW: Coordinate{Latitude: c.Latitude - halfLat, Longitude: c.Longitude - halfLng},
	}
}

// BoundsOf returns the smallest bounds containing every coordinate.
// ok is false when coords is empty.
func BoundsOf(coords []Coordinate) (b GeoBounds, ok bool) {
	if len(coords) == 0 {
		return GeoBounds{}, false
	}
	b = GeoBounds{NE: coords[0], SW: coords[0]}
	for _, c := range coords[1:] {
		b.NE.Latitude = math.Max(b.NE.Latitude, c.Latitude)
		b.NE.Longitude = math.Max(b.NE.Longitude, c.Longitude)
		b.SW.Latitude = math.Min(b.SW.Latitude, c.Latitude)
		b.SW.Longitude = math.Min(b.SW.Longitude, c.Longitude)
	}
	return b, true
}
