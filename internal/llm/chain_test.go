// File path: internal/llm/chain_test.go
package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bidscope/bidscope/internal/llm/providers"
)

type stubProvider struct {
	name   string
	text   string
	err    error
	calls  int
	slow   time.Duration
	cancel bool
}

func (s *stubProvider) Generate(ctx context.Context, prompt providers.Prompt) (string, error) {
	s.calls++
	if s.slow > 0 {
		select {
		case <-time.After(s.slow):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func (s *stubProvider) Name() string { return s.name }

func TestChainFirstSuccessShortCircuits(t *testing.T) {
	first := &stubProvider{name: "first", text: "generated summary text"}
	second := &stubProvider{name: "second", text: "should never be reached"}
	chain := NewChainFromProviders(0, first, second)

	result, err := chain.Generate(context.Background(), Prompt{User: "prompt"}, 0)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Provider != "first" {
		t.Fatalf("expected first provider to win, got %q", result.Provider)
	}
	if result.Text != "generated summary text" {
		t.Fatalf("unexpected text %q", result.Text)
	}
	if second.calls != 0 {
		t.Fatalf("expected second provider untouched, got %d calls", second.calls)
	}
}

func TestChainSkipsFailingProviders(t *testing.T) {
	failing := &stubProvider{name: "failing", err: errors.New("boom")}
	winner := &stubProvider{name: "winner", text: "usable output"}
	chain := NewChainFromProviders(0, failing, winner)

	result, err := chain.Generate(context.Background(), Prompt{User: "prompt"}, 0)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Provider != "winner" {
		t.Fatalf("expected winner, got %q", result.Provider)
	}
	if failing.calls != 1 {
		t.Fatalf("expected failing provider attempted once, got %d", failing.calls)
	}
}

func TestChainExhaustedWhenAllFail(t *testing.T) {
	a := &stubProvider{name: "a", err: errors.New("down")}
	b := &stubProvider{name: "b", err: errors.New("also down")}
	chain := NewChainFromProviders(0, a, b)

	if _, err := chain.Generate(context.Background(), Prompt{User: "prompt"}, 0); !errors.Is(err, ErrChainExhausted) {
		t.Fatalf("expected ErrChainExhausted, got %v", err)
	}
	if a.calls != 1 || b.calls != 1 {
		t.Fatalf("expected each provider attempted once, got %d/%d", a.calls, b.calls)
	}
}

func TestChainEnforcesMinimumLength(t *testing.T) {
	short := &stubProvider{name: "short", text: "too short"}
	long := &stubProvider{name: "long", text: strings.Repeat("breakdown ", 60)}
	chain := NewChainFromProviders(0, short, long)

	result, err := chain.Generate(context.Background(), Prompt{User: "prompt"}, 500)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Provider != "long" {
		t.Fatalf("expected long provider to satisfy minimum, got %q", result.Provider)
	}
}

func TestChainTimeoutCountsAsFailure(t *testing.T) {
	stalled := &stubProvider{name: "stalled", text: "late", slow: 200 * time.Millisecond}
	prompt := &stubProvider{name: "prompt", text: "on time"}
	chain := NewChainFromProviders(20*time.Millisecond, stalled, prompt)

	result, err := chain.Generate(context.Background(), Prompt{User: "prompt"}, 0)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Provider != "prompt" {
		t.Fatalf("expected fallback to next provider after timeout, got %q", result.Provider)
	}
}

func TestChainEmptyYieldsExhausted(t *testing.T) {
	chain := NewChainFromProviders(0)
	if _, err := chain.Generate(context.Background(), Prompt{User: "prompt"}, 0); !errors.Is(err, ErrChainExhausted) {
		t.Fatalf("expected ErrChainExhausted for empty chain, got %v", err)
	}
}
