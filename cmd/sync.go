package cmd

import (
	"context"
	"log"

	"catalog-service/core/config"
	"catalog-service/core/database"
	"catalog-service/core/logger"
	"catalog-service/core/storage"
	"catalog-service/core/version"
	"catalog-service/feature/catalog/models"
	"catalog-service/feature/sync"
	"catalog-service/feature/sync/upstream"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var syncAsync bool

// syncCmd runs one full synchronization against the upstream feed and prints
// the result summary. It shares orchestrator semantics with the HTTP trigger;
// --async dispatches through the background worker instead of calling the
// orchestrator inline, same as the HTTP trigger's async mode.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a full catalog synchronization",
	Long:  `Fetches categories and products from the upstream feed and reconciles them into local storage.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}
		if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &version.Counter{}); err != nil {
			return err
		}

		var archiver *sync.Archiver
		if cfg.Storage.Enabled {
			store, err := storage.NewClient(cfg.Storage)
			if err != nil {
				return err
			}
			archiver = sync.NewArchiver(store, cfg.Storage.Bucket, logg)
		}

		feed := upstream.NewClient(cfg.Upstream)
		engine := sync.NewEngine(db, logg)
		orchestrator := sync.NewOrchestrator(feed, engine, version.NewService(db), archiver, logg)

		if syncAsync {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			done := make(chan error, 1)
			worker := sync.NewWorker(orchestrator, logg)
			worker.OnDone(func(res *sync.Result, err error) {
				if err == nil {
					logSyncSummary(logg, res)
				}
				done <- err
			})
			worker.Start(ctx)

			worker.Trigger()
			logg.Info("sync dispatched to background worker")
			return <-done
		}

		res, err := orchestrator.SyncAll(context.Background())
		if err != nil {
			return err
		}

		logSyncSummary(logg, res)
		return nil
	},
}

func logSyncSummary(logg *zap.Logger, res *sync.Result) {
	logg.Info("sync finished",
		zap.Int("imported", res.Imported),
		zap.Int("updated", res.Updated),
		zap.Int("skipped", res.Skipped),
		zap.Strings("errors", res.Errors),
	)
}

func init() {
	syncCmd.Flags().BoolVar(&syncAsync, "async", false, "dispatch the sync through the background worker")
	RootCmd.AddCommand(syncCmd)
}
