// File path: internal/llm/providers/providers.go
package providers

import "context"

// Prompt is the uniform request handed to every generation backend. System
// text is optional; backends that have no system-role concept fold it into
// the user text.
type Prompt struct {
	System string
	User   string
}

// Provider is the capability shared by all generation backends: a single
// prompt in, a single text out. Providers are stateless between calls.
type Provider interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
	Name() string
}

// Combined flattens a prompt into a single string for backends without
// role-separated messages.
func (p Prompt) Combined() string {
	if p.System == "" {
		return p.User
	}
	return p.System + "\n\n" + p.User
}
