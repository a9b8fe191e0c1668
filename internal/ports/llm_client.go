package ports

import "context"

// LLMClient sends one prompt and returns the reply text.
// system may be empty.
type LLMClient interface {
	Send(ctx context.Context, prompt, system string) (string, error)
}
