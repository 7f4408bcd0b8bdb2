package llm

import (
	"context"
)

// Client is the inference capability every pipeline stage depends on:
// one prompt in, one structured-JSON response out. Any backing provider
// can be substituted without touching pipeline logic.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
