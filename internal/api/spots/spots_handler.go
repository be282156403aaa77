package spots

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-itinerary/internal/api"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

type Handler struct {
	source Source
	logger *slog.Logger
}

func NewHandler(source Source, logger *slog.Logger) *Handler {
	return &Handler{source: source, logger: logger}
}

// SearchSpots godoc
// @Summary      Search spots for a city
// @Tags         spots
// @Produce      json
// @Param        query  query     string  true  "City name"
// @Success      200    {object}  types.SpotsResponse
// @Failure      400    {object}  api.ErrorBody
// @Failure      500    {object}  api.ErrorBody
// @Router       /api/v1/spots [get]
func (h *Handler) SearchSpots(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SpotsHandler").Start(r.Context(), "SearchSpots", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/spots"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SearchSpots"))

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		l.WarnContext(ctx, "Empty spot query")
		span.SetStatus(codes.Error, "empty query")
		api.ErrorResponse(w, r, http.StatusBadRequest, ErrEmptyQuery.Error())
		return
	}
	span.SetAttributes(attribute.String("spots.query", query))

	result, err := h.source.Search(ctx, query)
	if err != nil {
		if errors.Is(err, ErrEmptyQuery) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		l.ErrorContext(ctx, "Spot search failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "spot search failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "장소 검색 중 오류가 발생했습니다.")
		return
	}
	if result == nil {
		result = []types.Spot{}
	}

	l.InfoContext(ctx, "Spots returned", slog.String("query", query), slog.Int("count", len(result)))
	span.SetStatus(codes.Ok, "spots returned")
	api.WriteJSONResponse(w, r, http.StatusOK, types.SpotsResponse{Spots: result})
}
