// Package ai wraps text generation: a small gateway interface over the
// Gemini API plus the prompt builders for every drafting feature. Prompt
// builders are pure functions so they stay testable without a client.
package ai

import "context"

// Schema is a provider-neutral response schema. When set on a request the
// model is constrained to emit JSON matching it.
type Schema struct {
	Type        string             // object, array, string, number, integer, boolean
	Description string
	Properties  map[string]*Schema
	Items       *Schema
	Required    []string
}

// Request is one generation call. JSONSchema nil means free-form text.
type Request struct {
	Prompt     string
	JSONSchema *Schema
}

// Gateway generates text from a prompt. GenerateStream delivers the reply
// incrementally through onChunk; returning an error from onChunk aborts the
// stream.
type Gateway interface {
	Generate(ctx context.Context, req Request) (string, error)
	GenerateStream(ctx context.Context, req Request, onChunk func(text string) error) error
}
