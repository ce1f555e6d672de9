// Package transform defines the bulk text-transformation contract shared by
// the translation and summarization stages, and the providers implementing
// it.
package transform

import "context"

// Options bounds the length of transformed output, in words. Zero values
// leave a provider's defaults in place. Translation providers ignore Options;
// summarization providers use them to target the configured envelope.
type Options struct {
	MinWords int
	MaxWords int
}

// Transformer is a stateless bulk text transformation. The returned slice has
// the same length and order as texts. A failure applies to the whole call,
// never to an individual text.
type Transformer interface {
	Name() string
	Transform(ctx context.Context, texts []string, opts Options) ([]string, error)
}

// MemoryReleaser is implemented by providers that can drop transient model
// state between batches. The hint is advisory: callers log and ignore errors,
// and correctness never depends on it.
type MemoryReleaser interface {
	ReleaseMemory(ctx context.Context) error
}
