package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/valpere/tarjim/internal"
	"github.com/valpere/tarjim/internal/checkpoint"
)

// Checkpointer persists every finished record before the run advances and
// replays the durable log afterwards. Implemented by checkpoint.Log.
type Checkpointer interface {
	Append(internal.FinalResult) error
	Replay(fn func(internal.FinalResult) error) error
}

// Orchestrator composes the batch scheduler with the checkpoint log and
// exposes the single entry point that processes an entire dataset.
type Orchestrator struct {
	cfg       Config
	scheduler *Scheduler
	log       Checkpointer
	logger    *slog.Logger
}

func NewOrchestrator(cfg Config, scheduler *Scheduler, log Checkpointer) *Orchestrator {
	return &Orchestrator{
		cfg:       cfg,
		scheduler: scheduler,
		log:       log,
		logger:    slog.Default(),
	}
}

func (o *Orchestrator) WithLogger(l *slog.Logger) *Orchestrator {
	if l != nil {
		o.logger = l
	}
	return o
}

// ProcessDataset validates the configuration, optionally skips records whose
// indices already appear in the checkpoint log, runs the scheduler over the
// remainder, and derives the summary purely by replaying the log so it covers
// the whole logical dataset, not just the newly processed tail.
func (o *Orchestrator) ProcessDataset(ctx context.Context, records []internal.Record, resume bool) (*Summary, error) {
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}

	remaining := records
	if resume {
		done := make(map[int]struct{})
		if err := o.log.Replay(func(res internal.FinalResult) error {
			done[res.Index] = struct{}{}
			return nil
		}); err != nil {
			return nil, fmt.Errorf("failed to scan checkpoint log: %w", err)
		}
		remaining = checkpoint.Filter(records, done)
		o.logger.Info("resuming run",
			"total", len(records),
			"completed", len(records)-len(remaining),
			"remaining", len(remaining))
	}

	if err := o.scheduler.Run(ctx, remaining, o.log.Append); err != nil {
		return nil, err
	}

	return o.Summarize()
}

// Summarize folds the entire checkpoint log into a Summary.
func (o *Orchestrator) Summarize() (*Summary, error) {
	sum := NewSummary(o.cfg.MinWords, o.cfg.MaxWords)
	if err := o.log.Replay(sum.Add); err != nil {
		return nil, fmt.Errorf("failed to replay checkpoint log: %w", err)
	}
	return sum, nil
}
