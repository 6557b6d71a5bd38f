package sync

import (
	"catalog-service/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the on-demand sync trigger.
type Handler struct {
	orchestrator *Orchestrator
	worker       *Worker
	logger       *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(orchestrator *Orchestrator, worker *Worker, logger *zap.Logger) *Handler {
	return &Handler{orchestrator: orchestrator, worker: worker, logger: logger}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/integrations/feed/sync", h.HandleSync)
}

// HandleSync runs a full sync and returns its result. With async=1 the sync
// is handed to the background worker and 202 is returned immediately.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRequestID(h.logger, c)

	if c.QueryBool("async") {
		if h.worker == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error":   "worker_unavailable",
				"message": "background sync worker is not running",
			})
		}
		triggered := h.worker.Trigger()
		l.Info("background sync requested", zap.Bool("triggered", triggered))
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"message": "sync queued",
		})
	}

	res, err := h.orchestrator.SyncAll(c.Context())
	if err != nil {
		l.Error("sync failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "sync_failed",
			"message": "synchronization aborted on a storage failure",
		})
	}

	return c.JSON(fiber.Map{
		"message":  "sync finished",
		"imported": res.Imported,
		"updated":  res.Updated,
		"skipped":  res.Skipped,
		"errors":   res.Errors,
	})
}
