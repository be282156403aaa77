// Package render draws travel plans onto map canvases and text views.
package render

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/go-trip-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// LatLng is a WGS84 position.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds is the smallest box containing a set of positions.
type Bounds struct {
	SouthWest LatLng `json:"southWest"`
	NorthEast LatLng `json:"northEast"`
}

func (b Bounds) extend(p LatLng) Bounds {
	b.SouthWest.Lat = min(b.SouthWest.Lat, p.Lat)
	b.SouthWest.Lng = min(b.SouthWest.Lng, p.Lng)
	b.NorthEast.Lat = max(b.NorthEast.Lat, p.Lat)
	b.NorthEast.Lng = max(b.NorthEast.Lng, p.Lng)
	return b
}

// Marker is one spot on the map, badged with its position in the day.
type Marker struct {
	Position    LatLng
	Day         int
	Sequence    int
	Color       string
	Name        string
	Description string
	Address     string
}

// Title is the info-window heading of the marker, e.g. "Day 2 - 3".
func (m Marker) Title() string {
	return fmt.Sprintf("Day %d - %d", m.Day, m.Sequence)
}

// Path connects the markers of one day in visiting order.
type Path struct {
	Day    int
	Color  string
	Points []LatLng
}

// Canvas is the capability a mapping backend has to provide.
type Canvas interface {
	PlaceMarker(ctx context.Context, m Marker) error
	DrawPath(ctx context.Context, p Path) error
	FitBounds(ctx context.Context, b Bounds) error
}

// Summary counts what RenderPlan drew and skipped.
type Summary struct {
	Markers int
	Paths   int
	Skipped int
}

// RenderPlan draws every day of plan onto canvas. Spots without usable coordinates and
// elements the canvas rejects are logged and skipped; rendering always runs to the end.
func RenderPlan(ctx context.Context, canvas Canvas, plan *types.TravelPlan, logger *slog.Logger) Summary {
	var summary Summary
	if plan == nil {
		return summary
	}
	skipped := metrics.Get().RenderSkippedTotal

	var bounds Bounds
	for _, day := range plan.Schedule {
		if len(day.Spots) == 0 {
			continue
		}
		points := make([]LatLng, 0, len(day.Spots))

		for i, spot := range day.Spots {
			if !spot.HasValidCoordinates() {
				logger.WarnContext(ctx, "Skipping spot without coordinates",
					slog.Int("day", day.Day), slog.String("spot", spot.Name))
				skipped.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", "coordinates")))
				summary.Skipped++
				continue
			}
			pos := LatLng{Lat: spot.Lat, Lng: spot.Lng}
			points = append(points, pos)

			marker := Marker{
				Position:    pos,
				Day:         day.Day,
				Sequence:    i + 1,
				Color:       day.Color,
				Name:        spot.Name,
				Description: spot.Description,
				Address:     spot.Address,
			}
			if err := canvas.PlaceMarker(ctx, marker); err != nil {
				logger.ErrorContext(ctx, "Failed to place marker",
					slog.Int("day", day.Day), slog.String("spot", spot.Name), slog.Any("error", err))
				skipped.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", "marker")))
				summary.Skipped++
				continue
			}
			if summary.Markers == 0 {
				bounds = Bounds{SouthWest: pos, NorthEast: pos}
			} else {
				bounds = bounds.extend(pos)
			}
			summary.Markers++
		}

		if len(points) > 1 {
			if err := canvas.DrawPath(ctx, Path{Day: day.Day, Color: day.Color, Points: points}); err != nil {
				logger.ErrorContext(ctx, "Failed to draw day path", slog.Int("day", day.Day), slog.Any("error", err))
				skipped.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", "path")))
				summary.Skipped++
			} else {
				summary.Paths++
			}
		}
	}

	if summary.Markers > 0 {
		if err := canvas.FitBounds(ctx, bounds); err != nil {
			logger.ErrorContext(ctx, "Failed to fit map bounds", slog.Any("error", err))
		}
	}
	return summary
}
