package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/session"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/spots"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service generates travel plans and manages the plan state of each session.
type Service interface {
	// BuildPlan validates the request, fetches spots and allocates them without touching session state.
	BuildPlan(ctx context.Context, city string, days int) (types.TravelPlan, error)
	GeneratePlan(ctx context.Context, sessionID uuid.UUID, req types.CreatePlanRequest) (types.PlanState, error)
	CurrentPlan(ctx context.Context, sessionID uuid.UUID) (types.PlanState, error)
	ClearPlan(ctx context.Context, sessionID uuid.UUID) (types.PlanState, error)
}

type ServiceImpl struct {
	logger    *slog.Logger
	source    spots.Source
	allocator Allocator
	store     session.Store
}

func NewServiceImpl(source spots.Source, allocator Allocator, store session.Store, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		source:    source,
		allocator: allocator,
		store:     store,
	}
}

// ValidateRequest applies the input contract: a non-empty city and 1 to 10 days.
func ValidateRequest(city string, days int) error {
	if strings.TrimSpace(city) == "" {
		return ErrEmptyCity
	}
	if days < MinDays || days > MaxDays {
		return ErrDaysOutOfRange
	}
	return nil
}

func (s *ServiceImpl) BuildPlan(ctx context.Context, city string, days int) (types.TravelPlan, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "BuildPlan", trace.WithAttributes(
		attribute.String("plan.city", city),
		attribute.Int("plan.days", days),
		attribute.String("plan.mode", s.allocator.Mode()),
	))
	defer span.End()

	city = strings.TrimSpace(city)
	if err := ValidateRequest(city, days); err != nil {
		span.SetStatus(codes.Error, "invalid request")
		return types.TravelPlan{}, err
	}

	start := time.Now()
	found, err := s.source.Search(ctx, city)
	if err != nil {
		s.logger.ErrorContext(ctx, "Spot source failed without fallback", slog.String("city", city), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "spot fetch failed")
		return types.TravelPlan{}, fmt.Errorf("%w: %w", ErrSourceFailed, err)
	}
	if len(found) == 0 {
		s.logger.InfoContext(ctx, "No spots found for city", slog.String("city", city))
		span.SetStatus(codes.Error, "no spots")
		return types.TravelPlan{}, ErrNoSpots
	}

	plan := s.allocator.Allocate(city, days, found)

	m := metrics.Get()
	attrs := metric.WithAttributes(attribute.String("mode", s.allocator.Mode()))
	m.PlansGeneratedTotal.Add(ctx, 1, attrs)
	m.PlanGenerationDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)

	s.logger.InfoContext(ctx, "Travel plan allocated",
		slog.String("city", city),
		slog.Int("days", days),
		slog.Int("spots", len(found)),
		slog.Int("scheduled_days", len(plan.Schedule)))
	span.SetAttributes(attribute.Int("plan.scheduled_days", len(plan.Schedule)))
	span.SetStatus(codes.Ok, "plan allocated")
	return plan, nil
}

func (s *ServiceImpl) GeneratePlan(ctx context.Context, sessionID uuid.UUID, req types.CreatePlanRequest) (types.PlanState, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GeneratePlan", trace.WithAttributes(
		attribute.String("session.id", sessionID.String()),
	))
	defer span.End()

	token, err := s.store.BeginGeneration(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		return types.PlanState{}, err
	}
	// the only place this generation's loading flag is released
	defer func() {
		if err := s.store.FinishGeneration(context.WithoutCancel(ctx), sessionID, token); err != nil {
			s.logger.WarnContext(ctx, "Failed to clear loading flag", slog.Any("error", err))
		}
	}()

	plan, err := s.BuildPlan(ctx, req.City, req.Days)
	if err != nil {
		message := err.Error()
		if errors.Is(err, ErrSourceFailed) {
			message = ErrSourceFailed.Error()
		}
		if storeErr := s.store.SetError(ctx, sessionID, message); storeErr != nil {
			s.logger.ErrorContext(ctx, "Failed to record plan error", slog.Any("error", storeErr))
		}
		return types.PlanState{}, err
	}

	if err := s.store.SetPlan(ctx, sessionID, plan); err != nil {
		s.logger.ErrorContext(ctx, "Failed to store plan", slog.Any("error", err))
		span.RecordError(err)
		return types.PlanState{}, fmt.Errorf("failed to store plan: %w", err)
	}
	return types.PlanState{Plan: &plan}, nil
}

func (s *ServiceImpl) CurrentPlan(ctx context.Context, sessionID uuid.UUID) (types.PlanState, error) {
	state, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return types.PlanState{}, fmt.Errorf("failed to load plan state: %w", err)
	}
	return state, nil
}

func (s *ServiceImpl) ClearPlan(ctx context.Context, sessionID uuid.UUID) (types.PlanState, error) {
	if err := s.store.Clear(ctx, sessionID); err != nil {
		return types.PlanState{}, fmt.Errorf("failed to clear plan: %w", err)
	}
	return s.CurrentPlan(ctx, sessionID)
}
