package spots

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

type stubSource struct {
	calls  atomic.Int32
	result []types.Spot
	err    error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Search(_ context.Context, _ string) ([]types.Spot, error) {
	s.calls.Add(1)
	return s.result, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustStatic(t *testing.T) *StaticSource {
	t.Helper()
	s, err := NewStaticSource()
	require.NoError(t, err)
	return s
}

func TestFallbackUsesDefaultsOnFailure(t *testing.T) {
	primary := &stubSource{err: errors.New("network unreachable")}
	f := NewFallbackSource(primary, mustStatic(t), testLogger())

	spots, err := f.Search(context.Background(), "Busan")
	require.NoError(t, err)
	require.NotEmpty(t, spots)
	assert.Equal(t, "해운대해수욕장", spots[0].Name)
	assert.Equal(t, "stub", f.Name())
}

func TestFallbackUnknownCityUsesGlobalDefault(t *testing.T) {
	f := NewFallbackSource(&stubSource{err: errors.New("timeout")}, mustStatic(t), testLogger())

	spots, err := f.Search(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.Equal(t, "경복궁", spots[0].Name)
}

func TestFallbackPassesThroughSuccess(t *testing.T) {
	want := []types.Spot{{Name: "a", Lat: 1, Lng: 1}}
	f := NewFallbackSource(&stubSource{result: want}, mustStatic(t), testLogger())

	spots, err := f.Search(context.Background(), "서울")
	require.NoError(t, err)
	assert.Equal(t, want, spots)
}

func TestFallbackPassesThroughEmptyResult(t *testing.T) {
	f := NewFallbackSource(&stubSource{result: []types.Spot{}}, mustStatic(t), testLogger())

	spots, err := f.Search(context.Background(), "서울")
	require.NoError(t, err)
	assert.Empty(t, spots)
}

func TestFallbackRejectsEmptyQuery(t *testing.T) {
	primary := &stubSource{}
	f := NewFallbackSource(primary, mustStatic(t), testLogger())
	_, err := f.Search(context.Background(), " ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Zero(t, primary.calls.Load())
}

func TestCachedSourceMemoizesNonEmptyResults(t *testing.T) {
	primary := &stubSource{result: []types.Spot{{Name: "a"}}}
	c := NewCachedSource(primary, time.Minute)

	for range 3 {
		spots, err := c.Search(context.Background(), " 서울 ")
		require.NoError(t, err)
		assert.Len(t, spots, 1)
	}
	_, _ = c.Search(context.Background(), "서울")
	assert.EqualValues(t, 1, primary.calls.Load())
}

func TestCachedSourceSkipsEmptyAndErrors(t *testing.T) {
	primary := &stubSource{result: []types.Spot{}}
	c := NewCachedSource(primary, time.Minute)
	_, _ = c.Search(context.Background(), "x")
	_, _ = c.Search(context.Background(), "x")
	assert.EqualValues(t, 2, primary.calls.Load())

	failing := &stubSource{err: errors.New("boom")}
	c = NewCachedSource(failing, time.Minute)
	_, err := c.Search(context.Background(), "x")
	assert.Error(t, err)
	_, _ = c.Search(context.Background(), "x")
	assert.EqualValues(t, 2, failing.calls.Load())
}

func TestCachedSourceReturnsCopies(t *testing.T) {
	c := NewCachedSource(&stubSource{result: []types.Spot{{Name: "a"}}}, time.Minute)
	first, _ := c.Search(context.Background(), "x")
	first[0].Name = "mutated"
	second, _ := c.Search(context.Background(), "x")
	assert.Equal(t, "a", second[0].Name)
}

func TestInstrumentedSourcePropagates(t *testing.T) {
	want := errors.New("boom")
	s := NewInstrumentedSource(&stubSource{err: want}, testLogger())
	_, err := s.Search(context.Background(), "서울")
	assert.ErrorIs(t, err, want)

	ok := NewInstrumentedSource(&stubSource{result: []types.Spot{{Name: "a"}}}, testLogger())
	spots, err := ok.Search(context.Background(), "서울")
	require.NoError(t, err)
	assert.Len(t, spots, 1)
	assert.Equal(t, "stub", ok.Name())
}
