package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

const (
	redisKeyPrefix  = "itinerary:session:"
	maxWatchRetries = 5
)

var _ Store = (*RedisStore)(nil)

// releaseScript deletes the loading key only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisStore keeps session state in Redis so several instances can share sessions.
// The loading flag lives in its own key holding the generation token, so BeginGeneration
// is a single SETNX and FinishGeneration a compare-and-delete.
type RedisStore struct {
	client     *redis.Client
	ttl        time.Duration
	loadingTTL time.Duration
}

func NewRedisStore(client *redis.Client, ttl, loadingTTL time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, loadingTTL: loadingTTL}
}

type storedState struct {
	Plan  *types.TravelPlan `json:"plan"`
	Error *string           `json:"error"`
}

func stateKey(id uuid.UUID) string   { return redisKeyPrefix + id.String() }
func loadingKey(id uuid.UUID) string { return redisKeyPrefix + id.String() + ":loading" }

func (s *RedisStore) Get(ctx context.Context, sessionID uuid.UUID) (types.PlanState, error) {
	stored, err := readState(ctx, s.client, stateKey(sessionID))
	if err != nil {
		return types.PlanState{}, err
	}
	loading, err := s.client.Exists(ctx, loadingKey(sessionID)).Result()
	if err != nil {
		return types.PlanState{}, fmt.Errorf("failed to read loading flag: %w", err)
	}
	return types.PlanState{Plan: stored.Plan, Error: stored.Error, IsLoading: loading > 0}, nil
}

func (s *RedisStore) BeginGeneration(ctx context.Context, sessionID uuid.UUID) (string, error) {
	token := uuid.NewString()
	acquired, err := s.client.SetNX(ctx, loadingKey(sessionID), token, s.loadingTTL).Result()
	if err != nil {
		return "", fmt.Errorf("failed to set loading flag: %w", err)
	}
	if !acquired {
		return "", ErrGenerationInProgress
	}
	if err := s.update(ctx, sessionID, func(state *storedState) {
		state.Error = nil
	}); err != nil {
		// the caller never sees the token, so the flag is released here
		if relErr := s.FinishGeneration(context.WithoutCancel(ctx), sessionID, token); relErr != nil {
			return "", errors.Join(err, relErr)
		}
		return "", err
	}
	return token, nil
}

func (s *RedisStore) FinishGeneration(ctx context.Context, sessionID uuid.UUID, token string) error {
	if err := releaseScript.Run(ctx, s.client, []string{loadingKey(sessionID)}, token).Err(); err != nil {
		return fmt.Errorf("failed to clear loading flag: %w", err)
	}
	return nil
}

func (s *RedisStore) SetPlan(ctx context.Context, sessionID uuid.UUID, plan types.TravelPlan) error {
	return s.update(ctx, sessionID, func(state *storedState) {
		state.Plan = &plan
		state.Error = nil
	})
}

func (s *RedisStore) SetError(ctx context.Context, sessionID uuid.UUID, message string) error {
	return s.update(ctx, sessionID, func(state *storedState) {
		state.Error = &message
	})
}

func (s *RedisStore) Clear(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.client.Del(ctx, stateKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session state: %w", err)
	}
	return nil
}

// update runs fn against the stored state under WATCH, retrying on concurrent writes.
func (s *RedisStore) update(ctx context.Context, sessionID uuid.UUID, fn func(*storedState)) error {
	key := stateKey(sessionID)
	txf := func(tx *redis.Tx) error {
		state, err := readState(ctx, tx, key)
		if err != nil {
			return err
		}
		fn(&state)
		data, err := json.Marshal(state)
		if err != nil {
			return fmt.Errorf("failed to encode session state: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxWatchRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return fmt.Errorf("failed to update session state: %w", err)
	}
	return fmt.Errorf("failed to update session state: too many concurrent writes")
}

func readState(ctx context.Context, c getter, key string) (storedState, error) {
	var state storedState
	data, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("failed to read session state: %w", err)
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return state, fmt.Errorf("failed to decode session state: %w", err)
	}
	return state, nil
}
