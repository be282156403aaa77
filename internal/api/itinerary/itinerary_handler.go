package itinerary

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	appMiddleware "github.com/FACorreiaa/go-trip-itinerary/app/middleware"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api"
	"github.com/FACorreiaa/go-trip-itinerary/internal/api/session"
	"github.com/FACorreiaa/go-trip-itinerary/internal/render"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

type HandlerImpl struct {
	service Service
	logger  *slog.Logger
}

func NewHandlerImpl(service Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{service: service, logger: logger}
}

// CreatePlan godoc
// @Summary      Generate a travel plan for the current session
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        request  body      types.CreatePlanRequest  true  "City and number of days"
// @Success      201      {object}  types.PlanState
// @Failure      400      {object}  api.ErrorBody
// @Failure      409      {object}  api.ErrorBody
// @Failure      422      {object}  api.ErrorBody
// @Router       /api/v1/plans [post]
func (h *HandlerImpl) CreatePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "CreatePlan", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/plans"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "CreatePlan"))

	sessionID, ok := appMiddleware.GetSessionIDFromContext(ctx)
	if !ok {
		l.ErrorContext(ctx, "Session ID not found in context")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Session unavailable")
		return
	}
	l = l.With(slog.String("sessionID", sessionID.String()))

	var req types.CreatePlanRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	span.SetAttributes(attribute.String("plan.city", req.City), attribute.Int("plan.days", req.Days))

	state, err := h.service.GeneratePlan(ctx, sessionID, req)
	if err != nil {
		status := statusForError(err)
		message := err.Error()
		if errors.Is(err, ErrSourceFailed) {
			message = ErrSourceFailed.Error()
		}
		if status >= http.StatusInternalServerError {
			l.ErrorContext(ctx, "Plan generation failed", slog.Any("error", err))
			span.RecordError(err)
		} else {
			l.InfoContext(ctx, "Plan request rejected", slog.String("reason", err.Error()))
		}
		span.SetStatus(codes.Error, message)
		api.ErrorResponse(w, r, status, message)
		return
	}

	l.InfoContext(ctx, "Plan generated", slog.Int("scheduled_days", len(state.Plan.Schedule)))
	span.SetStatus(codes.Ok, "plan generated")
	api.WriteJSONResponse(w, r, http.StatusCreated, state)
}

// GetCurrentPlan godoc
// @Summary      Current plan state of the session
// @Tags         plans
// @Produce      json
// @Success      200  {object}  types.PlanState
// @Router       /api/v1/plans/current [get]
func (h *HandlerImpl) GetCurrentPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GetCurrentPlan")
	defer span.End()

	sessionID, ok := appMiddleware.GetSessionIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Session unavailable")
		return
	}

	state, err := h.service.CurrentPlan(ctx, sessionID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to load plan state", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to load plan")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, state)
}

// ClearPlan godoc
// @Summary      Reset the session plan
// @Tags         plans
// @Produce      json
// @Success      200  {object}  types.PlanState
// @Router       /api/v1/plans/current [delete]
func (h *HandlerImpl) ClearPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "ClearPlan")
	defer span.End()

	sessionID, ok := appMiddleware.GetSessionIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Session unavailable")
		return
	}

	state, err := h.service.ClearPlan(ctx, sessionID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to clear plan", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to clear plan")
		return
	}
	h.logger.InfoContext(ctx, "Plan cleared", slog.String("sessionID", sessionID.String()))
	api.WriteJSONResponse(w, r, http.StatusOK, state)
}

// GetPlanMap godoc
// @Summary      Current plan as GeoJSON markers and day routes
// @Tags         plans
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  api.ErrorBody
// @Router       /api/v1/plans/current/map [get]
func (h *HandlerImpl) GetPlanMap(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GetPlanMap")
	defer span.End()

	sessionID, ok := appMiddleware.GetSessionIDFromContext(ctx)
	if !ok {
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Session unavailable")
		return
	}

	state, err := h.service.CurrentPlan(ctx, sessionID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to load plan state", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to load plan")
		return
	}
	if state.Plan == nil {
		api.ErrorResponse(w, r, http.StatusNotFound, "No plan has been generated yet")
		return
	}

	canvas := render.NewGeoJSONCanvas()
	summary := render.RenderPlan(ctx, canvas, state.Plan, h.logger)
	span.SetAttributes(
		attribute.Int("map.markers", summary.Markers),
		attribute.Int("map.paths", summary.Paths),
		attribute.Int("map.skipped", summary.Skipped),
	)
	api.WriteJSONResponse(w, r, http.StatusOK, canvas.FeatureCollection())
}

func statusForError(err error) int {
	switch {
	case IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrGenerationInProgress):
		return http.StatusConflict
	case errors.Is(err, ErrNoSpots):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
