package sync

import (
	"context"
	"fmt"

	"catalog-service/core/version"
	"catalog-service/feature/sync/upstream"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Feed is the upstream client contract consumed by the orchestrator.
type Feed interface {
	FetchCategories(ctx context.Context) ([]string, error)
	FetchProducts(ctx context.Context) ([]upstream.RawProduct, error)
}

// Orchestrator owns the public SyncAll entry point. Categories are fully
// reconciled before any product work begins, and version counters are bumped
// only when the run changed product data. Concurrent invocations coalesce
// through a single-flight group: the engine assumes a single writer, and the
// guard makes that assumption explicit.
type Orchestrator struct {
	feed     Feed
	engine   *Engine
	versions *version.Service
	archiver *Archiver
	logger   *zap.Logger
	group    singleflight.Group
}

// NewOrchestrator creates a sync orchestrator. archiver may be nil, in which
// case results are not archived.
func NewOrchestrator(feed Feed, engine *Engine, versions *version.Service, archiver *Archiver, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		feed:     feed,
		engine:   engine,
		versions: versions,
		archiver: archiver,
		logger:   logger,
	}
}

// SyncAll runs one full synchronization. Upstream failures are reported
// inside the Result; only storage failures surface as a non-nil error.
func (o *Orchestrator) SyncAll(ctx context.Context) (*Result, error) {
	v, err, shared := o.group.Do("sync_all", func() (any, error) {
		return o.syncAll(ctx)
	})
	if shared {
		o.logger.Debug("sync invocation coalesced with a running sync")
	}
	if v == nil {
		return nil, err
	}
	return v.(*Result), err
}

func (o *Orchestrator) syncAll(ctx context.Context) (*Result, error) {
	res := NewResult()

	names, err := o.feed.FetchCategories(ctx)
	if err != nil {
		return o.abort(ctx, "categories", err), nil
	}

	categories, err := o.engine.ReconcileCategories(ctx, names, res)
	if err != nil {
		return nil, err
	}

	products, err := o.feed.FetchProducts(ctx)
	if err != nil {
		// Categories already reconciled stay committed; no rollback.
		return o.abort(ctx, "products", err), nil
	}

	if err := o.engine.ReconcileProducts(ctx, products, categories, res); err != nil {
		return nil, err
	}

	if res.Imported+res.Updated > 0 {
		if _, err := o.versions.Bump(ctx, version.CatalogKind); err != nil {
			return nil, err
		}
		if _, err := o.versions.Bump(ctx, version.StatsKind); err != nil {
			return nil, err
		}
	}

	o.logger.Info("sync finished",
		zap.Int("imported", res.Imported),
		zap.Int("updated", res.Updated),
		zap.Int("skipped", res.Skipped),
		zap.Int("errors", len(res.Errors)),
	)
	o.archive(ctx, res)

	return res, nil
}

// abort builds the early-return result for a failed fetch phase: zero counts
// and a single error entry naming the phase.
func (o *Orchestrator) abort(ctx context.Context, phase string, err error) *Result {
	o.logger.Error("sync phase failed", zap.String("phase", phase), zap.Error(err))
	res := NewResult()
	res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", phase, err))
	o.archive(ctx, res)
	return res
}

func (o *Orchestrator) archive(ctx context.Context, res *Result) {
	if o.archiver == nil {
		return
	}
	o.archiver.Archive(ctx, res)
}
