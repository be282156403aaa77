package spots

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/go-trip-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

var _ Source = (*FallbackSource)(nil)

// FallbackSource answers from the static table whenever the primary source fails.
// Source failures are logged and never returned to the caller.
type FallbackSource struct {
	primary  Source
	defaults *StaticSource
	logger   *slog.Logger
}

func NewFallbackSource(primary Source, defaults *StaticSource, logger *slog.Logger) *FallbackSource {
	return &FallbackSource{primary: primary, defaults: defaults, logger: logger}
}

func (f *FallbackSource) Name() string { return f.primary.Name() }

func (f *FallbackSource) Search(ctx context.Context, query string) ([]types.Spot, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	ctx, span := otel.Tracer("SpotSource").Start(ctx, "FallbackSource.Search")
	defer span.End()

	result, err := f.primary.Search(ctx, query)
	if err == nil {
		return result, nil
	}

	f.logger.WarnContext(ctx, "Spot source failed, using default spot table",
		slog.String("source", f.primary.Name()),
		slog.String("query", query),
		slog.Any("error", err))
	span.RecordError(err)
	span.SetAttributes(attribute.Bool("spots.fallback", true))
	metrics.Get().SpotSourceFallbacksTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("source", f.primary.Name())))

	return f.defaults.Search(ctx, query)
}
