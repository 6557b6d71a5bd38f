package sync

import (
	"context"

	"catalog-service/core/version"
	"catalog-service/feature/sync/upstream"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature wires the sync pipeline into the feature loader.
type Feature struct {
	ctx          context.Context
	db           *gorm.DB
	orchestrator *Orchestrator
	logger       *zap.Logger
}

// NewFeature creates the sync feature. ctx bounds the background worker's
// lifetime; archiver may be nil.
func NewFeature(ctx context.Context, db *gorm.DB, versions *version.Service, upstreamCfg upstream.Config, archiver *Archiver, logger *zap.Logger) *Feature {
	feed := upstream.NewClient(upstreamCfg)
	engine := NewEngine(db, logger)
	return &Feature{
		ctx:          ctx,
		db:           db,
		orchestrator: NewOrchestrator(feed, engine, versions, archiver, logger),
		logger:       logger,
	}
}

// Name returns the feature name.
func (f *Feature) Name() string {
	return "sync"
}

// IsEnabled reports whether the feature can run; it needs the database.
func (f *Feature) IsEnabled() bool {
	return f.db != nil
}

// Load starts the background worker and registers the sync routes.
func (f *Feature) Load(app fiber.Router) error {
	worker := NewWorker(f.orchestrator, f.logger)
	worker.Start(f.ctx)

	h := NewHandler(f.orchestrator, worker, f.logger)
	h.RegisterRoutes(app)
	return nil
}

// Orchestrator exposes the sync entry point for CLI use.
func (f *Feature) Orchestrator() *Orchestrator {
	return f.orchestrator
}
