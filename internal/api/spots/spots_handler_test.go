package spots

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

func TestSearchSpotsHandler(t *testing.T) {
	h := NewHandler(mustStatic(t), testLogger())

	rec := httptest.NewRecorder()
	h.SearchSpots(rec, httptest.NewRequest(http.MethodGet, "/api/v1/spots?query="+url.QueryEscape("강릉"), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body types.SpotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Spots, 6)
	assert.Equal(t, "경포해수욕장", body.Spots[0].Name)
}

func TestSearchSpotsHandlerEmptyQuery(t *testing.T) {
	h := NewHandler(mustStatic(t), testLogger())

	rec := httptest.NewRecorder()
	h.SearchSpots(rec, httptest.NewRequest(http.MethodGet, "/api/v1/spots?query=", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrEmptyQuery.Error())
}

func TestSearchSpotsHandlerSourceError(t *testing.T) {
	h := NewHandler(&stubSource{err: errors.New("boom")}, testLogger())

	rec := httptest.NewRecorder()
	h.SearchSpots(rec, httptest.NewRequest(http.MethodGet, "/api/v1/spots?query=x", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestSearchSpotsHandlerNilResult(t *testing.T) {
	h := NewHandler(&stubSource{}, testLogger())

	rec := httptest.NewRecorder()
	h.SearchSpots(rec, httptest.NewRequest(http.MethodGet, "/api/v1/spots?query=x", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"spots":[]}`, rec.Body.String())
}
