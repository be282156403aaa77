package types

import "math"

// Spot categories understood by the category-balanced allocator.
const (
	CategoryAttraction = "attraction"
	CategoryRestaurant = "restaurant"
	CategoryCafe       = "cafe"
)

// Spot is a single point of interest returned by a spot source.
type Spot struct {
	Name        string  `json:"name" yaml:"name"`
	Lat         float64 `json:"lat" yaml:"lat"`
	Lng         float64 `json:"lng" yaml:"lng"`
	Description string  `json:"description" yaml:"description"`
	ImgURL      string  `json:"imgUrl,omitempty" yaml:"imgUrl,omitempty"`
	Address     string  `json:"address,omitempty" yaml:"address,omitempty"`
	Phone       string  `json:"phone,omitempty" yaml:"phone,omitempty"`
	Category    string  `json:"category,omitempty" yaml:"category,omitempty"`
}

// HasValidCoordinates reports whether the spot can be placed on a map.
// Zero coordinates are treated as missing.
func (s Spot) HasValidCoordinates() bool {
	if math.IsNaN(s.Lat) || math.IsNaN(s.Lng) || math.IsInf(s.Lat, 0) || math.IsInf(s.Lng, 0) {
		return false
	}
	if s.Lat == 0 || s.Lng == 0 {
		return false
	}
	return s.Lat >= -90 && s.Lat <= 90 && s.Lng >= -180 && s.Lng <= 180
}

// SpotsResponse is the payload of the spot query endpoint.
type SpotsResponse struct {
	Spots []Spot `json:"spots"`
}
