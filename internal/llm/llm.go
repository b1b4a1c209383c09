// File path: internal/llm/llm.go
package llm

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/bidscope/bidscope/internal/common"
	"github.com/bidscope/bidscope/internal/llm/providers"
)

type Prompt = providers.Prompt

type Provider = providers.Provider

// Capabilities records which provider credentials are present. It is built
// once at startup and passed into NewChain; providers whose credential is
// absent are never constructed, let alone attempted.
type Capabilities struct {
	GoogleAPIKey     string
	HuggingFaceToken string
	OpenAIAPIKey     string

	// CallTimeout bounds a single provider attempt. Zero means the chain
	// default.
	CallTimeout time.Duration
}

// DetectCapabilities reads provider credentials from the environment. This is
// the only place the chain touches ambient configuration.
func DetectCapabilities() Capabilities {
	caps := Capabilities{
		GoogleAPIKey:     strings.TrimSpace(os.Getenv("GOOGLE_API_KEY")),
		HuggingFaceToken: strings.TrimSpace(os.Getenv("HUGGINGFACE_API_KEY")),
		OpenAIAPIKey:     strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
	}
	if raw := strings.TrimSpace(os.Getenv("GENERATION_TIMEOUT")); raw != "" {
		if dur, err := time.ParseDuration(raw); err != nil {
			common.Logger().Warn("llm: invalid GENERATION_TIMEOUT, using default", "value", raw, "error", err)
		} else {
			caps.CallTimeout = dur
		}
	}
	return caps
}

// NewChain constructs the provider chain in fixed priority order: Gemini,
// then Hugging Face, then OpenAI. A provider with no credential is skipped
// outright.
func NewChain(ctx context.Context, caps Capabilities) *Chain {
	logger := common.Logger()
	var list []providers.Provider
	if caps.GoogleAPIKey != "" {
		provider, err := providers.NewGeminiProvider(ctx, caps.GoogleAPIKey)
		if err != nil {
			logger.Warn("llm: Gemini provider unavailable", "error", err)
		} else {
			list = append(list, provider)
		}
	} else {
		logger.Info("llm: Gemini skipped, GOOGLE_API_KEY not set")
	}
	if caps.HuggingFaceToken != "" {
		provider, err := providers.NewHuggingFaceProvider(caps.HuggingFaceToken)
		if err != nil {
			logger.Warn("llm: Hugging Face provider unavailable", "error", err)
		} else {
			list = append(list, provider)
		}
	} else {
		logger.Info("llm: Hugging Face skipped, HUGGINGFACE_API_KEY not set")
	}
	if caps.OpenAIAPIKey != "" {
		list = append(list, providers.NewOpenAIProvider(caps.OpenAIAPIKey))
	} else {
		logger.Info("llm: OpenAI skipped, OPENAI_API_KEY not set")
	}
	chain := NewChainFromProviders(caps.CallTimeout, list...)
	logger.Info("llm: provider chain ready", "providers", chain.Names())
	return chain
}
