package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"feedback-console/internal/metrics"

	"google.golang.org/genai"
)

const (
	defaultModel     = "gemini-2.5-flash"
	jsonResponseType = "application/json"
)

// ErrNoAPIKey is returned by DisabledGenerator.
var ErrNoAPIKey = errors.New("gemini: api key is not configured")

// GeminiGenerator calls the Gemini API through the genai SDK and asks for a
// JSON response.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: jsonResponseType,
	})
	if err == nil && resp == nil {
		err = errors.New("gemini: nil response")
	}
	metrics.ObserveGeneration(g.model, start, err)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("gemini: empty response text")
	}
	return text, nil
}

// DisabledGenerator stands in when no API key is configured so that the
// submission path keeps working on fallback analyses.
type DisabledGenerator struct{}

func (DisabledGenerator) Generate(context.Context, string) (string, error) {
	return "", ErrNoAPIKey
}
