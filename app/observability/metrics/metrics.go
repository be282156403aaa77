package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	PlansGeneratedTotal           metric.Int64Counter
	PlanGenerationDurationSeconds metric.Float64Histogram
	SpotSourceRequestsTotal       metric.Int64Counter
	SpotSourceErrorsTotal         metric.Int64Counter
	SpotSourceFallbacksTotal      metric.Int64Counter
	SpotFetchDurationSeconds      metric.Float64Histogram
	SpotCacheHitsTotal            metric.Int64Counter
	RenderSkippedTotal            metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics creates the instruments from the global MeterProvider exactly once.
// Call it after the provider is installed so the instruments are exported.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("TripItinerary")
		m := &AppMetrics{}

		m.PlansGeneratedTotal = mustCounter(meter, "plans_generated_total",
			"Total number of travel plans generated", "{plan}")
		m.PlanGenerationDurationSeconds = mustHistogram(meter, "plan_generation_duration_seconds",
			"Duration of plan generation including the spot fetch")
		m.SpotSourceRequestsTotal = mustCounter(meter, "spot_source_requests_total",
			"Total number of spot source queries", "{request}")
		m.SpotSourceErrorsTotal = mustCounter(meter, "spot_source_errors_total",
			"Total number of failed spot source queries", "{error}")
		m.SpotSourceFallbacksTotal = mustCounter(meter, "spot_source_fallbacks_total",
			"Total number of queries answered from the default table after a source failure", "{fallback}")
		m.SpotFetchDurationSeconds = mustHistogram(meter, "spot_fetch_duration_seconds",
			"Duration of spot source queries")
		m.SpotCacheHitsTotal = mustCounter(meter, "spot_cache_hits_total",
			"Total number of spot queries served from cache", "{hit}")
		m.RenderSkippedTotal = mustCounter(meter, "render_skipped_total",
			"Total number of map elements skipped while rendering", "{element}")

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the instruments, initializing them against the current provider on first use.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}

func mustCounter(meter metric.Meter, name, description, unit string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		log.Fatalf("Metrics: Failed to create %s: %v", name, err)
	}
	return c
}

func mustHistogram(meter metric.Meter, name, description string) metric.Float64Histogram {
	h, err := meter.Float64Histogram(name, metric.WithDescription(description), metric.WithUnit("s"))
	if err != nil {
		log.Fatalf("Metrics: Failed to create %s: %v", name, err)
	}
	return h
}
