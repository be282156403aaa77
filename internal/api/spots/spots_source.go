package spots

import (
	"context"
	"errors"
	"strings"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// Source kinds accepted in configuration.
const (
	SourceStatic   = "static"
	SourceNaver    = "naver"
	SourceGemini   = "gemini"
	SourcePostgres = "postgres"
)

var (
	ErrEmptyQuery     = errors.New("검색어를 입력해주세요.")
	ErrSourceResponse = errors.New("spot source returned an error response")
)

// Source supplies the points of interest for a city query.
type Source interface {
	Search(ctx context.Context, query string) ([]types.Spot, error)
	Name() string
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
