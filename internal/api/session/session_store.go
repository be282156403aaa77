package session

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// Store kinds accepted in configuration.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

var ErrGenerationInProgress = errors.New("a plan is already being generated for this session")

// Store holds the latest plan state of each session. Plans are replaced wholesale.
type Store interface {
	Get(ctx context.Context, sessionID uuid.UUID) (types.PlanState, error)
	// BeginGeneration marks the session as loading and clears its error. The returned
	// token identifies this generation and must be passed to FinishGeneration.
	// It returns ErrGenerationInProgress if the session is already loading.
	BeginGeneration(ctx context.Context, sessionID uuid.UUID) (string, error)
	// FinishGeneration clears the loading flag if it is still held by token.
	// A stale token is a no-op, so a late finish never releases a newer generation.
	FinishGeneration(ctx context.Context, sessionID uuid.UUID, token string) error
	// SetPlan stores plan as the current plan and clears the error.
	SetPlan(ctx context.Context, sessionID uuid.UUID, plan types.TravelPlan) error
	// SetError records a user-facing error.
	SetError(ctx context.Context, sessionID uuid.UUID, message string) error
	// Clear removes the plan and the error.
	Clear(ctx context.Context, sessionID uuid.UUID) error
}
