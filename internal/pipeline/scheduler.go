package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/valpere/tarjim/internal"
	"github.com/valpere/tarjim/internal/gate"
	"github.com/valpere/tarjim/internal/transform"
	"github.com/valpere/tarjim/internal/validator"
)

// TranslationCache satisfies a record's translation without calling the
// translator. Implemented by store.Store; nil disables caching. Cache errors
// are treated as misses.
type TranslationCache interface {
	Get(ctx context.Context, sourceText, model string) (string, bool, error)
	Put(ctx context.Context, sourceText, model, translatedText string) error
}

// Scheduler drives records through the two transformation stages in
// fixed-size contiguous batches, handing every finished result to a sink
// before the next batch begins.
//
// Failure isolation is deliberately asymmetric: a translation failure fails
// the records of that bulk call, while a summarization failure fails only the
// over-long sub-batch, leaving pass-through records intact.
type Scheduler struct {
	cfg        Config
	translator transform.Transformer
	summarizer transform.Transformer
	gate       gate.Gate
	cache      TranslationCache
	validator  *validator.Validator
	logger     *slog.Logger
}

func NewScheduler(cfg Config, translator, summarizer transform.Transformer) *Scheduler {
	return &Scheduler{
		cfg:        cfg,
		translator: translator,
		summarizer: summarizer,
		gate:       gate.Gate{MinWords: cfg.MinWords, MaxWords: cfg.MaxWords},
		logger:     slog.Default(),
	}
}

// WithCache enables the translation memory cache.
func (s *Scheduler) WithCache(c TranslationCache) *Scheduler {
	s.cache = c
	return s
}

// WithValidator enables the advisory output-language check.
func (s *Scheduler) WithValidator(v *validator.Validator) *Scheduler {
	s.validator = v
	return s
}

func (s *Scheduler) WithLogger(l *slog.Logger) *Scheduler {
	if l != nil {
		s.logger = l
	}
	return s
}

// Run processes records in order. Every record of a batch, successful or
// failed, reaches the sink before the next batch starts; a sink error aborts
// the run because losing a completed result is never acceptable, unlike
// losing in-flight work.
func (s *Scheduler) Run(ctx context.Context, records []internal.Record, sink func(internal.FinalResult) error) error {
	for start := 0; start < len(records); start += s.cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := min(start+s.cfg.BatchSize, len(records))
		batch := records[start:end]
		batchNum := start/s.cfg.BatchSize + 1

		results := s.processBatch(ctx, batch)
		ok, failed := 0, 0
		for _, res := range results {
			if err := sink(res); err != nil {
				return fmt.Errorf("failed to checkpoint result %d: %w", res.Index, err)
			}
			if res.OK() {
				ok++
			} else {
				failed++
			}
		}
		s.logger.Info("batch complete", "batch", batchNum, "records", len(batch), "ok", ok, "failed", failed)

		if batchNum%s.cfg.ReclaimEvery == 0 {
			s.releaseMemory(ctx)
		}
	}
	return nil
}

// processBatch runs one batch through both stages and returns a FinalResult
// for every record, in batch order.
func (s *Scheduler) processBatch(ctx context.Context, batch []internal.Record) []internal.FinalResult {
	results := make([]internal.FinalResult, len(batch))
	translations := make([]string, len(batch))
	failed := make([]bool, len(batch))

	// Stage 1: one bulk translation call for everything the cache cannot
	// satisfy.
	miss := make([]int, 0, len(batch))
	for i, rec := range batch {
		if s.cache != nil {
			if cached, ok, err := s.cache.Get(ctx, rec.SourceText, s.cfg.TranslationModel); err == nil && ok {
				translations[i] = cached
				continue
			}
		}
		miss = append(miss, i)
	}

	if len(miss) > 0 {
		texts := make([]string, len(miss))
		for j, i := range miss {
			texts[j] = batch[i].SourceText
		}

		out, err := s.translator.Transform(ctx, texts, transform.Options{})
		if err == nil && len(out) != len(texts) {
			err = fmt.Errorf("%s returned %d texts for %d inputs", s.translator.Name(), len(out), len(texts))
		}
		if err != nil {
			s.logger.Warn("batch translation failed", "records", len(miss), "error", err)
			for _, i := range miss {
				failed[i] = true
				results[i] = failedResult(batch[i], "", fmt.Sprintf("translation failed: %v", err))
			}
		} else {
			for j, i := range miss {
				translations[i] = out[j]
				if s.cache != nil {
					if err := s.cache.Put(ctx, batch[i].SourceText, s.cfg.TranslationModel, out[j]); err != nil {
						s.logger.Warn("failed to cache translation", "index", batch[i].Index, "error", err)
					}
				}
			}
		}
	}

	// Gate: partition survivors into pass-through and needs-summarization.
	var long []int
	for i, rec := range batch {
		if failed[i] {
			continue
		}
		if s.validator != nil {
			if err := s.validator.Validate(translations[i]); err != nil {
				s.logger.Warn("translation language check", "index", rec.Index, "warning", err)
			}
		}
		if s.gate.Classify(translations[i]) == gate.AboveMax {
			long = append(long, i)
			continue
		}
		// Short texts pass through verbatim; the gate only ever compresses.
		results[i] = okResult(rec, translations[i], translations[i])
	}

	// Stage 2: one bulk summarization call for the over-long sub-batch.
	if len(long) > 0 {
		texts := make([]string, len(long))
		for j, i := range long {
			texts[j] = translations[i]
		}

		out, err := s.summarizer.Transform(ctx, texts, transform.Options{
			MinWords: s.cfg.MinWords,
			MaxWords: s.cfg.MaxWords,
		})
		if err == nil && len(out) != len(texts) {
			err = fmt.Errorf("%s returned %d texts for %d inputs", s.summarizer.Name(), len(out), len(texts))
		}
		if err != nil {
			s.logger.Warn("sub-batch summarization failed", "records", len(long), "error", err)
			for _, i := range long {
				results[i] = failedResult(batch[i], translations[i], fmt.Sprintf("summarization failed: %v", err))
			}
		} else {
			for j, i := range long {
				// The summarizer's output is accepted even when it is still
				// over the limit; there is no re-summarization pass.
				results[i] = okResult(batch[i], translations[i], out[j])
			}
		}
	}

	return results
}

// releaseMemory hints every provider that can drop transient model state.
// Failures only affect throughput, never results.
func (s *Scheduler) releaseMemory(ctx context.Context) {
	for _, tr := range []transform.Transformer{s.translator, s.summarizer} {
		rel, ok := tr.(transform.MemoryReleaser)
		if !ok {
			continue
		}
		if err := rel.ReleaseMemory(ctx); err != nil {
			s.logger.Debug("memory release hint ignored", "provider", tr.Name(), "error", err)
		}
	}
}

func okResult(rec internal.Record, translated, opinion string) internal.FinalResult {
	return internal.FinalResult{
		Index:        rec.Index,
		Original:     rec.OriginalText,
		Translated:   translated,
		FinalOpinion: opinion,
		// Always recomputed from the final text, never copied from an
		// intermediate stage.
		WordCount: gate.WordCount(opinion),
	}
}

func failedResult(rec internal.Record, translated, detail string) internal.FinalResult {
	return internal.FinalResult{
		Index:       rec.Index,
		Original:    rec.OriginalText,
		Translated:  translated,
		Status:      internal.StatusFailed,
		ErrorDetail: detail,
	}
}
