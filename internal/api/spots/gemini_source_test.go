package spots

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

type fakeGenerator struct {
	text   string
	err    error
	prompt string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.text, f.err
}

func TestGeminiSearch(t *testing.T) {
	gen := &fakeGenerator{text: "```json\n{\"spots\":[" +
		`{"name":"경복궁","lat":37.5788,"lng":126.977,"description":"궁궐","category":"Attraction"},` +
		`{"name":"","lat":1,"lng":1},` +
		`{"name":"광장시장","lat":37.57,"lng":126.99,"description":"시장","category":"market"}` +
		"]}\n```"}
	g := NewGeminiSource(gen, 5, testLogger())

	spots, err := g.Search(context.Background(), "서울")
	require.NoError(t, err)
	require.Len(t, spots, 2)
	assert.Equal(t, "경복궁", spots[0].Name)
	assert.Equal(t, types.CategoryAttraction, spots[0].Category)
	assert.Equal(t, types.CategoryAttraction, spots[1].Category)
	assert.Contains(t, gen.prompt, `"서울"`)
	assert.Contains(t, gen.prompt, "5 most")
}

func TestGeminiSearchErrors(t *testing.T) {
	g := NewGeminiSource(&fakeGenerator{err: errors.New("quota")}, 0, testLogger())
	_, err := g.Search(context.Background(), "서울")
	assert.Error(t, err)

	g = NewGeminiSource(&fakeGenerator{text: "I cannot help with that"}, 0, testLogger())
	_, err = g.Search(context.Background(), "서울")
	assert.Error(t, err)

	_, err = g.Search(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestParseGeminiSpotsArray(t *testing.T) {
	spots, err := parseGeminiSpots(`Here you go: [{"name":"카페거리","lat":37.77,"lng":128.94,"category":"CAFE"}] enjoy`)
	require.NoError(t, err)
	require.Len(t, spots, 1)
	assert.Equal(t, types.CategoryCafe, spots[0].Category)
}

func TestCleanJSONResponse(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSONResponse("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `[1,2]`, cleanJSONResponse("list: [1,2]."))
	assert.Equal(t, "plain", cleanJSONResponse("plain"))
}
