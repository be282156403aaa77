package session

import (
	"context"
	"errors"
	"net"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real server when REDIS_ADDR is set, e.g. REDIS_ADDR=localhost:6379.
func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())
	return NewRedisStore(client, time.Minute, 10*time.Second)
}

func TestRedisStoreLifecycle(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()
	id := uuid.New()
	t.Cleanup(func() { _ = s.client.Del(ctx, stateKey(id), loadingKey(id)).Err() })

	state, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, state.Plan)

	token, err := s.BeginGeneration(ctx, id)
	require.NoError(t, err)
	_, err = s.BeginGeneration(ctx, id)
	assert.ErrorIs(t, err, ErrGenerationInProgress)
	state, _ = s.Get(ctx, id)
	assert.True(t, state.IsLoading)

	require.NoError(t, s.SetPlan(ctx, id, samplePlan("제주도")))
	require.NoError(t, s.FinishGeneration(ctx, id, token))
	state, err = s.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, state.Plan)
	assert.Equal(t, "제주도", state.Plan.City)
	assert.False(t, state.IsLoading)

	require.NoError(t, s.SetError(ctx, id, "oops"))
	state, _ = s.Get(ctx, id)
	require.NotNil(t, state.Error)
	assert.Equal(t, "oops", *state.Error)

	require.NoError(t, s.Clear(ctx, id))
	state, _ = s.Get(ctx, id)
	assert.Nil(t, state.Plan)
	assert.Nil(t, state.Error)
}

func TestRedisStoreStaleFinishKeepsNewerGeneration(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()
	id := uuid.New()
	t.Cleanup(func() { _ = s.client.Del(ctx, stateKey(id), loadingKey(id)).Err() })

	first, err := s.BeginGeneration(ctx, id)
	require.NoError(t, err)
	require.NoError(t, s.FinishGeneration(ctx, id, first))

	second, err := s.BeginGeneration(ctx, id)
	require.NoError(t, err)

	require.NoError(t, s.FinishGeneration(ctx, id, first))
	state, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, state.IsLoading)
	_, err = s.BeginGeneration(ctx, id)
	assert.ErrorIs(t, err, ErrGenerationInProgress)

	require.NoError(t, s.FinishGeneration(ctx, id, second))
	state, _ = s.Get(ctx, id)
	assert.False(t, state.IsLoading)
}

func TestRedisStoreBeginReleasesFlagWhenStateIsUnreadable(t *testing.T) {
	s := newTestRedisStore(t)
	ctx := context.Background()
	id := uuid.New()
	t.Cleanup(func() { _ = s.client.Del(ctx, stateKey(id), loadingKey(id)).Err() })

	require.NoError(t, s.client.Set(ctx, stateKey(id), "not json", time.Minute).Err())

	_, err := s.BeginGeneration(ctx, id)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrGenerationInProgress)

	exists, err := s.client.Exists(ctx, loadingKey(id)).Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}

// offlineHook answers SETNX and the release script itself and refuses every dial,
// so the WATCH transaction behind BeginGeneration fails.
type offlineHook struct {
	mu       sync.Mutex
	released []string
}

var errOffline = errors.New("redis offline")

func (h *offlineHook) DialHook(redis.DialHook) redis.DialHook {
	return func(context.Context, string, string) (net.Conn, error) {
		return nil, errOffline
	}
}

func (h *offlineHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		switch c := cmd.(type) {
		case *redis.BoolCmd:
			if c.Name() == "set" {
				c.SetVal(true)
				return nil
			}
		case *redis.Cmd:
			if c.Name() == "evalsha" || c.Name() == "eval" {
				h.mu.Lock()
				// evalsha <sha> <numkeys> <key> <token>
				h.released = append(h.released, c.Args()[4].(string))
				h.mu.Unlock()
				c.SetVal(int64(1))
				return nil
			}
		}
		return next(ctx, cmd)
	}
}

func (h *offlineHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func TestRedisStoreBeginReleasesFlagWhenUpdateFails(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "redis.invalid:6379", MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	hook := &offlineHook{}
	client.AddHook(hook)

	s := NewRedisStore(client, time.Minute, 10*time.Second)
	id := uuid.New()

	token, err := s.BeginGeneration(context.Background(), id)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrGenerationInProgress)
	assert.Empty(t, token)

	hook.mu.Lock()
	defer hook.mu.Unlock()
	require.Len(t, hook.released, 1)
	_, parseErr := uuid.Parse(hook.released[0])
	assert.NoError(t, parseErr)
}

func TestRedisKeys(t *testing.T) {
	id := uuid.MustParse("6f1c2c1e-8a4b-4d7e-9f00-000000000001")
	assert.Equal(t, "itinerary:session:6f1c2c1e-8a4b-4d7e-9f00-000000000001", stateKey(id))
	assert.Equal(t, "itinerary:session:6f1c2c1e-8a4b-4d7e-9f00-000000000001:loading", loadingKey(id))
}
