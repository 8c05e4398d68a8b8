package llm

import (
	"context"
	"fmt"
	"strings"

	"air-trip-planner/internal/shared"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient owns one genai client and hands out per-model generators.
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a new Gemini API client.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

// Model returns a generator bound to one model that answers in JSON.
func (c *GeminiClient) Model(name string) TextGenerator {
	model := c.client.GenerativeModel(name)
	model.ResponseMIMEType = "application/json"
	return &geminiModel{name: name, model: model}
}

// Close closes the underlying Gemini client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

type geminiModel struct {
	name  string
	model *genai.GenerativeModel
}

func (m *geminiModel) Name() string {
	return m.name
}

// GenerateContent sends a prompt to the Gemini model and returns the generated text.
func (m *geminiModel) GenerateContent(ctx context.Context, prompt string) (ContentResponse, error) {
	resp, err := m.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ContentResponse{}, fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		text, ok := part.(genai.Text)
		if !ok {
			return ContentResponse{}, fmt.Errorf("generated content is not text")
		}
		sb.WriteString(string(text))
	}

	usage := shared.TokenUsage{Model: m.name}
	if resp.UsageMetadata != nil {
		usage.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		usage.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}

	return ContentResponse{Content: sb.String(), Usage: usage}, nil
}
