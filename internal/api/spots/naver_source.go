package spots

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

const (
	defaultNaverBaseURL = "https://openapi.naver.com"
	naverLocalPath      = "/v1/search/local.json"
	// mapx/mapy are WGS84 degrees scaled by 1e7.
	naverCoordScale = 1e7
	// syntheticStep spreads spots without coordinates around the city centre.
	syntheticStep = 0.01
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

var _ Source = (*NaverSource)(nil)

// NaverConfig configures the Naver local search client.
type NaverConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Display      int
	Timeout      time.Duration
}

// NaverSource queries the Naver local search API.
type NaverSource struct {
	cfg     NaverConfig
	client  *http.Client
	centres *StaticSource
	logger  *slog.Logger
}

// NewNaverSource builds the client. centres supplies approximate coordinates for results the
// API returns without usable positions.
func NewNaverSource(cfg NaverConfig, centres *StaticSource, logger *slog.Logger) *NaverSource {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultNaverBaseURL
	}
	if cfg.Display <= 0 {
		cfg.Display = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &NaverSource{
		cfg: cfg,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		centres: centres,
		logger:  logger,
	}
}

func (n *NaverSource) Name() string { return SourceNaver }

func (n *NaverSource) Search(ctx context.Context, query string) ([]types.Spot, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if n.cfg.ClientID == "" || n.cfg.ClientSecret == "" {
		return nil, fmt.Errorf("naver client credentials are not configured")
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("display", strconv.Itoa(n.cfg.Display))
	q.Set("sort", "random")
	u := strings.TrimRight(n.cfg.BaseURL, "/") + naverLocalPath + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build naver request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", n.cfg.ClientID)
	req.Header.Set("X-Naver-Client-Secret", n.cfg.ClientSecret)
	req.Header.Set("Accept", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("naver request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: naver status %d: %s", ErrSourceResponse, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload types.NaverSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode naver response: %w", err)
	}

	centre := n.centres.Center(query)
	result := make([]types.Spot, 0, len(payload.Items))
	for i, item := range payload.Items {
		result = append(result, naverItemToSpot(item, i, centre))
	}
	n.logger.DebugContext(ctx, "Naver search completed",
		slog.String("query", query),
		slog.Int("total", payload.Total),
		slog.Int("items", len(result)))
	return result, nil
}

func naverItemToSpot(item types.NaverSearchResult, index int, centre Coordinates) types.Spot {
	address := item.RoadAddress
	if address == "" {
		address = item.Address
	}
	description := stripTags(item.Description)
	if description == "" {
		description = item.Category
	}

	lat, lng, ok := parseNaverCoordinates(item.MapX, item.MapY)
	if !ok {
		// Synthetic approximation: a small diagonal offset from the city centre per result.
		lat = centre.Lat + float64(index)*syntheticStep
		lng = centre.Lng + float64(index)*syntheticStep
	}

	return types.Spot{
		Name:        stripTags(item.Title),
		Lat:         lat,
		Lng:         lng,
		Description: description,
		Address:     address,
		Phone:       item.Telephone,
		Category:    classifyNaverCategory(item.Category),
	}
}

func parseNaverCoordinates(mapx, mapy string) (float64, float64, bool) {
	x, errX := strconv.ParseFloat(strings.TrimSpace(mapx), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(mapy), 64)
	if errX != nil || errY != nil {
		return 0, 0, false
	}
	lng := x / naverCoordScale
	lat := y / naverCoordScale
	spot := types.Spot{Lat: lat, Lng: lng}
	if !spot.HasValidCoordinates() {
		return 0, 0, false
	}
	return lat, lng, true
}

// classifyNaverCategory maps Naver's "대분류>소분류" category onto allocator categories.
func classifyNaverCategory(category string) string {
	switch {
	case strings.Contains(category, "카페"), strings.Contains(category, "디저트"):
		return types.CategoryCafe
	case strings.Contains(category, "음식점"), strings.Contains(category, "한식"),
		strings.Contains(category, "일식"), strings.Contains(category, "중식"),
		strings.Contains(category, "양식"):
		return types.CategoryRestaurant
	case category == "":
		return ""
	default:
		return types.CategoryAttraction
	}
}

func stripTags(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}
