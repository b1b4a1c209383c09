// File path: internal/llm/providers/googleai.go
package providers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/bidscope/bidscope/internal/common"
)

const defaultGeminiModel = "gemini-1.5-flash"

type GeminiProvider struct {
	model llms.Model
	name  string
}

func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	modelName := strings.TrimSpace(os.Getenv("GEMINI_MODEL"))
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	model, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	common.Logger().Info("llm: Gemini provider configured", "model", modelName)
	return &GeminiProvider{model: model, name: modelName}, nil
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt Prompt) (string, error) {
	logger := common.Logger()
	logger.Debug("llm: sending Gemini generation request", "model", g.name)
	out, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt.Combined(),
		llms.WithTemperature(0.3),
		llms.WithMaxTokens(3000),
	)
	if err != nil {
		return "", fmt.Errorf("gemini generation: %w", err)
	}
	logger.Debug("llm: Gemini generation succeeded", "model", g.name)
	return out, nil
}

func (g *GeminiProvider) Name() string {
	return "gemini"
}
