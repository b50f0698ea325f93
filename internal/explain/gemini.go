package explain

import (
	"context"
	"strings"

	"google.golang.org/genai"
)

const systemInstruction = `You explain personal financial plans in plain language.
Answer in short markdown sections. Never invent figures that are not in the prompt.
Do not recommend specific instruments unless fund metadata is provided.`

// contentGenerator is the subset of *genai.Models used here
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiExplainer asks a Gemini model for commentary
type GeminiExplainer struct {
	Model  string
	models contentGenerator
}

// NewGeminiExplainer creates a client for the Gemini API. An empty key yields
// ErrNoExplainer so callers can carry on without commentary.
func NewGeminiExplainer(ctx context.Context, apiKey, model string) (*GeminiExplainer, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNoExplainer
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &ExplainError{Provider: "gemini", Err: err}
	}
	return &GeminiExplainer{Model: model, models: client.Models}, nil
}

func (g *GeminiExplainer) Explain(ctx context.Context, req Request) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
	}
	resp, err := g.models.GenerateContent(ctx, g.Model, genai.Text(BuildPrompt(req)), config)
	if err != nil {
		return "", &ExplainError{Provider: "gemini", Err: err}
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", &ExplainError{Provider: "gemini", Err: errEmptyResponse}
	}
	return text, nil
}
