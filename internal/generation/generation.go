// Package generation calls the external text-generation service.
package generation

import "context"

type Generator interface {
	// Generate returns the raw text the model produced for prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}
