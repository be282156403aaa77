package spots

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

var _ Source = (*InstrumentedSource)(nil)

// InstrumentedSource records a span and request metrics around another source.
type InstrumentedSource struct {
	next   Source
	logger *slog.Logger
}

func NewInstrumentedSource(next Source, logger *slog.Logger) *InstrumentedSource {
	return &InstrumentedSource{next: next, logger: logger}
}

func (s *InstrumentedSource) Name() string { return s.next.Name() }

func (s *InstrumentedSource) Search(ctx context.Context, query string) ([]types.Spot, error) {
	ctx, span := otel.Tracer("SpotSource").Start(ctx, "Search", trace.WithAttributes(
		attribute.String("spots.source", s.next.Name()),
		attribute.String("spots.query", query),
	))
	defer span.End()

	attrs := metric.WithAttributes(attribute.String("source", s.next.Name()))
	m := metrics.Get()
	m.SpotSourceRequestsTotal.Add(ctx, 1, attrs)

	start := time.Now()
	result, err := s.next.Search(ctx, query)
	m.SpotFetchDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		m.SpotSourceErrorsTotal.Add(ctx, 1, attrs)
		span.RecordError(err)
		span.SetStatus(codes.Error, "spot source query failed")
		return nil, err
	}

	s.logger.DebugContext(ctx, "Spot source query completed",
		slog.String("source", s.next.Name()),
		slog.String("query", query),
		slog.Int("count", len(result)),
		slog.Duration("latency", time.Since(start)))
	span.SetAttributes(attribute.Int("spots.count", len(result)))
	span.SetStatus(codes.Ok, "spots retrieved")
	return result, nil
}
