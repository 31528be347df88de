package ai

import "context"

// Generator turns a prompt into raw model text. Implementations do not retry.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
