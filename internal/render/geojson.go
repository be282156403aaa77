package render

import (
	"context"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

var _ Canvas = (*GeoJSONCanvas)(nil)

// GeoJSONCanvas collects markers and paths into a FeatureCollection that any web map
// library can draw. The fitted bounds become the collection's bbox.
type GeoJSONCanvas struct {
	fc *geojson.FeatureCollection
}

func NewGeoJSONCanvas() *GeoJSONCanvas {
	return &GeoJSONCanvas{fc: geojson.NewFeatureCollection()}
}

func (c *GeoJSONCanvas) PlaceMarker(_ context.Context, m Marker) error {
	f := geojson.NewFeature(orb.Point{m.Position.Lng, m.Position.Lat})
	f.Properties["kind"] = "marker"
	f.Properties["day"] = m.Day
	f.Properties["sequence"] = m.Sequence
	f.Properties["color"] = m.Color
	f.Properties["name"] = m.Name
	f.Properties["title"] = m.Title()
	if m.Description != "" {
		f.Properties["description"] = m.Description
	}
	if m.Address != "" {
		f.Properties["address"] = m.Address
	}
	c.fc.Append(f)
	return nil
}

func (c *GeoJSONCanvas) DrawPath(_ context.Context, p Path) error {
	line := make(orb.LineString, 0, len(p.Points))
	for _, pt := range p.Points {
		line = append(line, orb.Point{pt.Lng, pt.Lat})
	}
	f := geojson.NewFeature(line)
	f.Properties["kind"] = "path"
	f.Properties["day"] = p.Day
	f.Properties["color"] = p.Color
	c.fc.Append(f)
	return nil
}

func (c *GeoJSONCanvas) FitBounds(_ context.Context, b Bounds) error {
	c.fc.BBox = geojson.NewBBox(orb.Bound{
		Min: orb.Point{b.SouthWest.Lng, b.SouthWest.Lat},
		Max: orb.Point{b.NorthEast.Lng, b.NorthEast.Lat},
	})
	return nil
}

// FeatureCollection returns what has been drawn so far.
func (c *GeoJSONCanvas) FeatureCollection() *geojson.FeatureCollection {
	return c.fc
}
