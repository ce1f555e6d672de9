package pipeline

import "fmt"

// Config is the single configuration object for a pipeline run.
type Config struct {
	// TranslationModel and SummarizationModel identify the models at the
	// providers; they also key the translation memory cache.
	TranslationModel   string
	SummarizationModel string

	// Device is an advisory compute target passed through to providers that
	// accept one. It never affects orchestration.
	Device string

	// BatchSize is the number of records per bulk translation call.
	BatchSize int

	// MinWords and MaxWords bound the final opinion length. Texts under
	// MinWords pass through verbatim; texts over MaxWords are summarized.
	MinWords int
	MaxWords int

	// ReclaimEvery is the number of batches between memory-release hints to
	// the providers.
	ReclaimEvery int
}

// ConfigError reports an invalid configuration. It is fatal and raised before
// any record is processed.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.msg
}

// Validate checks the bounds the run depends on.
func (c Config) Validate() error {
	if c.BatchSize < 1 {
		return &ConfigError{msg: fmt.Sprintf("batch size must be at least 1, got %d", c.BatchSize)}
	}
	if c.MinWords < 1 || c.MaxWords < 1 {
		return &ConfigError{msg: fmt.Sprintf("word bounds must be positive, got min=%d max=%d", c.MinWords, c.MaxWords)}
	}
	if c.MinWords > c.MaxWords {
		return &ConfigError{msg: fmt.Sprintf("min words %d exceeds max words %d", c.MinWords, c.MaxWords)}
	}
	if c.ReclaimEvery < 1 {
		return &ConfigError{msg: fmt.Sprintf("reclaim interval must be at least 1 batch, got %d", c.ReclaimEvery)}
	}
	return nil
}
