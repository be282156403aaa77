package session

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

func samplePlan(city string) types.TravelPlan {
	return types.TravelPlan{
		City: city,
		Days: 1,
		Schedule: []types.DaySchedule{
			{Day: 1, Color: "#FF3B30", Spots: []types.Spot{{Name: "경복궁", Lat: 37.5788, Lng: 126.977}}},
		},
	}
}

func TestMemoryStoreLifecycle(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	s := NewMemoryStore(time.Hour, 0)
	id := uuid.New()

	state, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, types.PlanState{}, state)

	token, err := s.BeginGeneration(ctx, id)
	require.NoError(t, err)
	state, _ = s.Get(ctx, id)
	assert.True(t, state.IsLoading)

	_, err = s.BeginGeneration(ctx, id)
	assert.ErrorIs(t, err, ErrGenerationInProgress)

	require.NoError(t, s.SetPlan(ctx, id, samplePlan("서울")))
	state, _ = s.Get(ctx, id)
	require.NotNil(t, state.Plan)
	assert.Equal(t, "서울", state.Plan.City)
	assert.Nil(t, state.Error)
	// storing the plan does not end the generation
	assert.True(t, state.IsLoading)

	require.NoError(t, s.FinishGeneration(ctx, id, token))
	state, _ = s.Get(ctx, id)
	assert.False(t, state.IsLoading)

	token, err = s.BeginGeneration(ctx, id)
	require.NoError(t, err)
	require.NoError(t, s.SetError(ctx, id, "검색된 여행지가 없습니다."))
	require.NoError(t, s.FinishGeneration(ctx, id, token))
	state, _ = s.Get(ctx, id)
	require.NotNil(t, state.Error)
	assert.False(t, state.IsLoading)
	// the previous plan stays until replaced or cleared
	assert.NotNil(t, state.Plan)

	require.NoError(t, s.Clear(ctx, id))
	state, _ = s.Get(ctx, id)
	assert.Nil(t, state.Plan)
	assert.Nil(t, state.Error)
}

func TestMemoryStoreBeginClearsError(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour, 0)
	id := uuid.New()

	require.NoError(t, s.SetError(ctx, id, "oops"))
	token, err := s.BeginGeneration(ctx, id)
	require.NoError(t, err)
	state, _ := s.Get(ctx, id)
	assert.Nil(t, state.Error)
	require.NoError(t, s.FinishGeneration(ctx, id, token))
	state, _ = s.Get(ctx, id)
	assert.False(t, state.IsLoading)
}

func TestMemoryStoreStaleFinishKeepsNewerGeneration(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour, 0)
	id := uuid.New()

	first, err := s.BeginGeneration(ctx, id)
	require.NoError(t, err)
	require.NoError(t, s.FinishGeneration(ctx, id, first))

	second, err := s.BeginGeneration(ctx, id)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	// a late release from the first generation
	require.NoError(t, s.FinishGeneration(ctx, id, first))
	state, _ := s.Get(ctx, id)
	assert.True(t, state.IsLoading)
	_, err = s.BeginGeneration(ctx, id)
	assert.ErrorIs(t, err, ErrGenerationInProgress)

	require.NoError(t, s.FinishGeneration(ctx, id, second))
	state, _ = s.Get(ctx, id)
	assert.False(t, state.IsLoading)
}

func TestMemoryStoreSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour, 0)
	a, b := uuid.New(), uuid.New()

	require.NoError(t, s.SetPlan(ctx, a, samplePlan("부산")))
	state, _ := s.Get(ctx, b)
	assert.Nil(t, state.Plan)
}

func TestMemoryStoreSingleGenerationUnderContention(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	s := NewMemoryStore(time.Hour, 0)
	id := uuid.New()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.BeginGeneration(ctx, id); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, wins.Load())
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(20*time.Millisecond, 0)
	id := uuid.New()

	require.NoError(t, s.SetPlan(ctx, id, samplePlan("강릉")))
	time.Sleep(40 * time.Millisecond)
	state, _ := s.Get(ctx, id)
	assert.Nil(t, state.Plan)
}
