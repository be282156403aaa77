package spots

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

const defaultGeminiModel = "gemini-2.0-flash"

const geminiSpotPrompt = `You are a local travel guide. List the %d most worthwhile places to visit in "%s".
Mix sightseeing attractions with a few restaurants and cafes.
Respond with JSON only, in this exact shape:
{"spots":[{"name":"","lat":0,"lng":0,"description":"","address":"","phone":"","category":"attraction|restaurant|cafe"}]}
Coordinates must be WGS84 decimal degrees.`

// ContentGenerator produces model text for a prompt.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type genaiGenerator struct {
	client *genai.Client
	model  string
}

// NewGenaiGenerator returns a ContentGenerator backed by the Gemini API.
func NewGenaiGenerator(ctx context.Context, apiKey, model string) (ContentGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not configured")
	}
	if model == "" {
		model = defaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &genaiGenerator{client: client, model: model}, nil
}

func (g *genaiGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.2),
		ResponseMIMEType: "application/json",
	}
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return result.Text(), nil
}

var _ Source = (*GeminiSource)(nil)

// GeminiSource asks a generative model for the spots of a city.
type GeminiSource struct {
	generator ContentGenerator
	count     int
	logger    *slog.Logger
}

func NewGeminiSource(generator ContentGenerator, count int, logger *slog.Logger) *GeminiSource {
	if count <= 0 {
		count = 12
	}
	return &GeminiSource{generator: generator, count: count, logger: logger}
}

func (g *GeminiSource) Name() string { return SourceGemini }

func (g *GeminiSource) Search(ctx context.Context, query string) ([]types.Spot, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	text, err := g.generator.GenerateContent(ctx, fmt.Sprintf(geminiSpotPrompt, g.count, query))
	if err != nil {
		return nil, err
	}
	result, err := parseGeminiSpots(text)
	if err != nil {
		g.logger.WarnContext(ctx, "Unparseable gemini response", slog.String("query", query), slog.Any("error", err))
		return nil, err
	}
	return result, nil
}

func parseGeminiSpots(text string) ([]types.Spot, error) {
	cleaned := cleanJSONResponse(text)

	var payload types.SpotsResponse
	if strings.HasPrefix(cleaned, "[") {
		if err := json.Unmarshal([]byte(cleaned), &payload.Spots); err != nil {
			return nil, fmt.Errorf("failed to parse gemini spot list: %w", err)
		}
	} else if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse gemini spot list: %w", err)
	}

	result := make([]types.Spot, 0, len(payload.Spots))
	for _, s := range payload.Spots {
		if strings.TrimSpace(s.Name) == "" {
			continue
		}
		s.Category = normalizeCategory(s.Category)
		result = append(result, s)
	}
	return result, nil
}

func normalizeCategory(category string) string {
	switch c := strings.ToLower(strings.TrimSpace(category)); c {
	case types.CategoryAttraction, types.CategoryRestaurant, types.CategoryCafe:
		return c
	case "":
		return ""
	default:
		return types.CategoryAttraction
	}
}

// cleanJSONResponse strips markdown fences and surrounding prose from model output.
func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	open := strings.IndexAny(response, "{[")
	if open == -1 {
		return response
	}
	closing := byte('}')
	if response[open] == '[' {
		closing = ']'
	}
	end := strings.LastIndexByte(response, closing)
	if end <= open {
		return response
	}
	return strings.TrimSpace(response[open : end+1])
}
