package spots

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

//go:embed spots.yml
var embeddedSpots []byte

var _ Source = (*StaticSource)(nil)

// Coordinates is a lat/lng pair.
type Coordinates struct {
	Lat float64 `yaml:"lat"`
	Lng float64 `yaml:"lng"`
}

// CityEntry is one city of the static table. The first name is the canonical one.
type CityEntry struct {
	Names  []string     `yaml:"names"`
	Center Coordinates  `yaml:"center"`
	Spots  []types.Spot `yaml:"spots"`
}

type staticTable struct {
	Default string      `yaml:"default"`
	Cities  []CityEntry `yaml:"cities"`
}

// StaticSource answers queries from a fixed table of cities.
type StaticSource struct {
	table    staticTable
	fallback *CityEntry
}

// NewStaticSource loads the embedded table.
func NewStaticSource() (*StaticSource, error) {
	return NewStaticSourceFromYAML(embeddedSpots)
}

// NewStaticSourceFromYAML parses a table in the spots.yml format.
func NewStaticSourceFromYAML(data []byte) (*StaticSource, error) {
	var table staticTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse static spot table: %w", err)
	}
	if len(table.Cities) == 0 {
		return nil, fmt.Errorf("static spot table has no cities")
	}

	s := &StaticSource{table: table}
	for i := range table.Cities {
		for _, name := range table.Cities[i].Names {
			if name == table.Default {
				s.fallback = &s.table.Cities[i]
			}
		}
	}
	if s.fallback == nil {
		s.fallback = &s.table.Cities[0]
	}
	return s, nil
}

func (s *StaticSource) Name() string { return SourceStatic }

// Search returns the spots of the best matching city, or the default city when nothing matches.
func (s *StaticSource) Search(_ context.Context, query string) ([]types.Spot, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	city, _ := s.Lookup(query)
	return cloneSpots(city.Spots), nil
}

// Lookup finds the city for a query. The boolean is false when the default city was used.
//
// Matching runs in two passes over the table in order: first a city whose name appears in the
// query, then a city whose canonical name contains the query or whose canonical name's first
// two characters appear in it.
func (s *StaticSource) Lookup(query string) (*CityEntry, bool) {
	q := normalizeQuery(query)
	if q == "" {
		return s.fallback, false
	}

	for i := range s.table.Cities {
		for _, name := range s.table.Cities[i].Names {
			if strings.Contains(q, strings.ToLower(name)) {
				return &s.table.Cities[i], true
			}
		}
	}

	for i := range s.table.Cities {
		city := &s.table.Cities[i]
		// aliases only match whole; a fragment like "e" would otherwise hit an English alias
		if strings.Contains(strings.ToLower(city.Names[0]), q) {
			return city, true
		}
		if prefix := runePrefix(city.Names[0], 2); prefix != "" && strings.Contains(q, strings.ToLower(prefix)) {
			return city, true
		}
	}
	return s.fallback, false
}

// Center returns the map centre of the city matched by query.
func (s *StaticSource) Center(query string) Coordinates {
	city, _ := s.Lookup(query)
	return city.Center
}

// Cities returns the canonical names of all cities in the table.
func (s *StaticSource) Cities() []string {
	names := make([]string, 0, len(s.table.Cities))
	for _, c := range s.table.Cities {
		names = append(names, c.Names[0])
	}
	return names
}

func runePrefix(s string, n int) string {
	if utf8.RuneCountInString(s) < n {
		return ""
	}
	runes := []rune(s)
	return string(runes[:n])
}

func cloneSpots(in []types.Spot) []types.Spot {
	out := make([]types.Spot, len(in))
	copy(out, in)
	return out
}
