package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

var ErrEmptyResponse = errors.New("model returned no text")

const geminiAPIVersion = "v1beta"

// GeminiClient generates text with the Gemini Developer API.
type GeminiClient struct {
	logger zerolog.Logger
	client *genai.Client
	model  string
}

var _ Generator = (*GeminiClient)(nil)

// NewGeminiClient builds the client without contacting the API. An empty
// baseURL keeps the SDK default endpoint.
func NewGeminiClient(
	ctx context.Context,
	logger zerolog.Logger,
	baseURL string,
	apiKey string,
	model string,
	timeout time.Duration,
) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    baseURL,
			APIVersion: geminiAPIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		logger: logger,
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("model", c.model).
			Msg("failed to generate content")
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := candidateText(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}

	c.logger.Debug().
		Str("model", c.model).
		Dur("latency", time.Since(start)).
		Msg("generated text")
	return text, nil
}

// candidateText joins the text parts of the first candidate, skipping
// thought summaries.
func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}
