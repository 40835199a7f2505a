// Package llm runs the fixed feature-extraction prompt against one of
// two interchangeable chat-model backends.
package llm

import "context"

// Generator is the minimal capability the pipeline needs from a chat
// model: one prompt in, plain text out. Both backends normalize their
// native response shapes behind this interface, so the concrete
// provider is chosen once at construction time.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
