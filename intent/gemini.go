package intent

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-1.5-flash"

// GeminiBackend asks a Gemini model through the genai SDK
type GeminiBackend struct {
	client *genai.Client
	model  string
}

// NewGeminiBackend returns nil when no key is configured
func NewGeminiBackend(ctx context.Context, apiKey, model string) (*GeminiBackend, error) {
	if !configuredKey(apiKey) {
		return nil, nil
	}
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiBackend{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiBackend) Name() string {
	return "gemini"
}

func (g *GeminiBackend) Extract(ctx context.Context, text string) (*Intent, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(fmt.Sprintf(userPromptTemplate, text), genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	})
	if err != nil {
		return nil, err
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini: no candidates returned")
	}

	var reply strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil {
			reply.WriteString(part.Text)
		}
	}

	return parseReply(reply.String())
}
