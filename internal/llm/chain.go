// File path: internal/llm/chain.go
package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bidscope/bidscope/internal/common"
	"github.com/bidscope/bidscope/internal/llm/providers"
)

const defaultCallTimeout = 45 * time.Second

// ErrChainExhausted is returned when every provider in the chain failed or
// produced output below the requested minimum length. Callers are expected to
// substitute a deterministic offline fallback; the error never reaches the
// outer API surface.
var ErrChainExhausted = errors.New("all generation providers exhausted")

// Result carries the winning provider's output.
type Result struct {
	Text     string
	Provider string
}

// Chain tries an ordered list of providers sequentially and returns the first
// usable result. Individual provider failures are logged and swallowed; there
// are no retries within a provider and no parallel racing.
type Chain struct {
	providers []providers.Provider
	timeout   time.Duration
}

// NewChainFromProviders builds a chain over an explicit provider list.
// A zero timeout selects the default per-call timeout.
func NewChainFromProviders(timeout time.Duration, list ...providers.Provider) *Chain {
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	return &Chain{providers: list, timeout: timeout}
}

// Names returns the provider names in priority order.
func (c *Chain) Names() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return names
}

// Generate walks the chain in priority order and returns the first non-empty
// result of at least minLength characters. Lower-priority providers are not
// invoked once a provider succeeds.
func (c *Chain) Generate(ctx context.Context, prompt Prompt, minLength int) (Result, error) {
	logger := common.Logger()
	if c == nil || len(c.providers) == 0 {
		return Result{}, ErrChainExhausted
	}
	for _, provider := range c.providers {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		text, err := provider.Generate(callCtx, prompt)
		cancel()
		if err != nil {
			logger.Warn("llm: provider failed, trying next", "provider", provider.Name(), "error", err)
			continue
		}
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || len(trimmed) < minLength {
			logger.Warn("llm: provider output below minimum length", "provider", provider.Name(), "length", len(trimmed), "min", minLength)
			continue
		}
		logger.Info("llm: generation succeeded", "provider", provider.Name(), "length", len(trimmed))
		return Result{Text: trimmed, Provider: provider.Name()}, nil
	}
	logger.Warn("llm: chain exhausted", "providers", len(c.providers))
	return Result{}, ErrChainExhausted
}
