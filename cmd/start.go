package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"drill-eda/core/config"
	"drill-eda/core/database"
	"drill-eda/core/loader"
	"drill-eda/core/logger"
	"drill-eda/core/middleware/auth"
	"drill-eda/core/middleware/rayid"
	"drill-eda/core/storage"

	"drill-eda/feature/drillhole"
	"drill-eda/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "drill-eda/docs/swagger"
)

// @title Drill EDA API
// @version 1.0
// @description API for reconciling drillhole lithology and assay intervals and analysing the merged table.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the drill-eda server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		if jobFlag != "" {
			cfg.Reconcile.JobPath = jobFlag
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (Optional, only database sources and exports need it)
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 4. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// 5. Register Features
		mgr := loader.NewManager()
		dh := drillhole.NewFeature(store, cfg.Storage.Bucket, logg, db, cfg.Reconcile)
		mgr.Register(dh)
		mgr.Register(integrity.NewFeature(dh.Service(), store, cfg.Storage.Bucket, logg, db, cfg.Reconcile.JobPath))

		// RayID first so every log line below can be traced
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger stays public
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))
		if !cfg.Server.AuthEnabled() {
			logg.Warn("SERVER_API_KEY is empty, API is unauthenticated")
		}

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Optional initial run so the analysis endpoints are ready at once
		if cfg.Server.RunOnStart {
			runOnStart(dh.Service(), cfg.Reconcile.JobPath, logg)
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

// runOnStart reconciles the configured job. Failures are logged; the server
// still starts and answers analyses with 409 until a run succeeds.
func runOnStart(svc *drillhole.Service, jobPath string, logg *zap.Logger) {
	job, err := config.LoadJob(jobPath)
	if err != nil {
		logg.Error("Initial reconciliation skipped", zap.String("job", jobPath), zap.Error(err))
		return
	}
	summary, err := svc.Run(context.Background(), job)
	if err != nil {
		logg.Error("Initial reconciliation failed", zap.Error(err))
		return
	}
	logg.Info("Initial reconciliation finished",
		zap.String("run_id", summary.RunID),
		zap.Int("intervals", summary.Report.Intervals),
	)
}

func init() {
	RootCmd.AddCommand(startCmd)
}
