package sync

import (
	"context"

	"go.uber.org/zap"
)

// Worker runs syncs in the background. Trigger is fire-and-forget: it never
// blocks the caller, and triggers arriving while a run is already pending
// coalesce into one.
type Worker struct {
	orchestrator *Orchestrator
	trigger      chan struct{}
	onDone       func(*Result, error)
	logger       *zap.Logger
}

// NewWorker creates a background sync worker.
func NewWorker(orchestrator *Orchestrator, logger *zap.Logger) *Worker {
	return &Worker{
		orchestrator: orchestrator,
		trigger:      make(chan struct{}, 1),
		logger:       logger,
	}
}

// Start launches the worker loop. It stops when ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	go w.run(ctx)
}

// OnDone registers a hook invoked after every run with its result and error.
// It must be set before Start.
func (w *Worker) OnDone(fn func(*Result, error)) {
	w.onDone = fn
}

// Trigger requests a background sync. It reports false when a run was
// already pending (the request coalesced).
func (w *Worker) Trigger() bool {
	select {
	case w.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

func (w *Worker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.trigger:
			res, err := w.orchestrator.SyncAll(ctx)
			if err != nil {
				w.logger.Error("background sync failed", zap.Error(err))
			}
			if w.onDone != nil {
				w.onDone(res, err)
			}
		}
	}
}
