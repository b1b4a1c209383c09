// File path: internal/llm/providers/huggingface.go
package providers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/huggingface"

	"github.com/bidscope/bidscope/internal/common"
)

const defaultHuggingFaceModel = "mistralai/Mistral-7B-Instruct-v0.2"

type HuggingFaceProvider struct {
	model llms.Model
	name  string
}

func NewHuggingFaceProvider(token string) (*HuggingFaceProvider, error) {
	modelName := strings.TrimSpace(os.Getenv("HUGGINGFACE_MODEL"))
	if modelName == "" {
		modelName = defaultHuggingFaceModel
	}
	model, err := huggingface.New(
		huggingface.WithToken(token),
		huggingface.WithModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("init huggingface client: %w", err)
	}
	common.Logger().Info("llm: Hugging Face provider configured", "model", modelName)
	return &HuggingFaceProvider{model: model, name: modelName}, nil
}

func (h *HuggingFaceProvider) Generate(ctx context.Context, prompt Prompt) (string, error) {
	logger := common.Logger()
	logger.Debug("llm: sending Hugging Face generation request", "model", h.name)
	out, err := llms.GenerateFromSinglePrompt(ctx, h.model, prompt.Combined(),
		llms.WithTemperature(0.3),
		llms.WithMaxTokens(3000),
	)
	if err != nil {
		return "", fmt.Errorf("huggingface generation: %w", err)
	}
	logger.Debug("llm: Hugging Face generation succeeded", "model", h.name)
	return out, nil
}

func (h *HuggingFaceProvider) Name() string {
	return "huggingface"
}
