package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"catalog-service/core/clock"
	"catalog-service/core/config"
	"catalog-service/core/database"
	"catalog-service/core/loader"
	"catalog-service/core/logger"
	"catalog-service/core/middleware/clientgate"
	"catalog-service/core/ratelimit"
	"catalog-service/core/storage"
	"catalog-service/core/version"
	"catalog-service/feature/catalog"
	"catalog-service/feature/catalog/models"
	"catalog-service/feature/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the catalog service server",
	Long:  `Starts the HTTP server, the background sync worker, and all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &version.Counter{}); err != nil {
			logg.Fatal("Failed to migrate schema", zap.Error(err))
		}
		versions := version.NewService(db)

		// 4. Optional report archive
		var archiver *sync.Archiver
		if cfg.Storage.Enabled {
			store, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			archiver = sync.NewArchiver(store, cfg.Storage.Bucket, logg)
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 6. Request gate: identity, correlation id, rate limit, access logs.
		limiter := ratelimit.NewLimiter(cfg.RateLimit, clock.NewRealClock())
		app.Use(clientgate.New(limiter, logg))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// 7. Register Features
		mgr := loader.NewManager()
		mgr.Register(catalog.NewFeature(db, versions, logg))
		mgr.Register(sync.NewFeature(ctx, db, versions, cfg.Upstream, archiver, logg))

		api := app.Group("/api")
		if err := mgr.LoadAll(api); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		cancel()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
