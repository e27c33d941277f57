package narrative

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// SystemInstruction frames the model as the engineer who ran the survey.
const SystemInstruction = "You are a CWNE wireless network engineer performing a site survey of a hospital."

const (
	DefaultModel    = "gemini-2.5-flash"
	temperature     = 0.3
	maxOutputTokens = 150
)

// ErrEmptyResponse reports a generation that returned no text.
var ErrEmptyResponse = errors.New("model returned no text")

// GenAI is a Narrator backed by the Gemini API.
type GenAI struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

// NewGenAI creates a client for model using apiKey. An empty model selects
// DefaultModel.
func NewGenAI(ctx context.Context, apiKey, model string, log *zap.Logger) (*GenAI, error) {
	if apiKey == "" {
		return nil, errors.New("GenAI API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAI{client: client, model: model, log: log.Named("narrative")}, nil
}

// Describe asks the model for a short technical analysis of summary.
func (g *GenAI) Describe(ctx context.Context, summary []Count) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(Prompt(summary), genai.RoleUser),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](temperature),
		MaxOutputTokens:   maxOutputTokens,
	})
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	g.log.Debug("Narrative generated", zap.String("model", g.model), zap.Int("length", len(text)))
	return text, nil
}
