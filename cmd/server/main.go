// main.go
//
// A catalog read service for application listings, collections and statistics
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of appcatalog.
// appcatalog is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// appcatalog is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with appcatalog.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/appcatalog/internal/config"
	"github.com/localnerve/appcatalog/internal/enrichment"
	"github.com/localnerve/appcatalog/internal/handlers"
	"github.com/localnerve/appcatalog/internal/index"
	"github.com/localnerve/appcatalog/internal/logging"
	"github.com/localnerve/appcatalog/internal/middleware"
	"github.com/localnerve/appcatalog/internal/querycache"
	"github.com/localnerve/appcatalog/internal/refresh"
	"github.com/localnerve/appcatalog/internal/repometa"
	"github.com/localnerve/appcatalog/internal/search"
	"github.com/localnerve/appcatalog/internal/services"
	"github.com/localnerve/appcatalog/internal/stats"
	"github.com/localnerve/appcatalog/internal/store"
	"github.com/localnerve/appcatalog/internal/tasks"
	"github.com/localnerve/appcatalog/internal/utils"
	"github.com/localnerve/appcatalog/internal/views"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	_ "github.com/localnerve/appcatalog/docs/api" // Swagger docs
)

// @title App Catalog API
// @version 1.0.0
// @description Read service for an application catalog: listings, collections, statistics and a legacy compatibility schema
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/appcatalog
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:8000
// @BasePath /
// @schemes http https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	// Connect to the store and wait until it answers
	s, err := store.Open(cfg, log)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	if err := store.WaitForStore(context.Background(), s, 2*time.Second, cfg.StoreWaitTimeout, log); err != nil {
		log.Fatalf("Store not available: %v", err)
	}

	// Background enrichment
	queue := tasks.NewQueue(cfg.EnrichWorkers, cfg.EnrichQueueSize, log)
	repoClient := repometa.NewClient(repometa.Options{
		BaseURL: cfg.RepoAPIURL,
		Token:   cfg.RepoAPIToken,
		Rate:    cfg.RepoAPIRate,
		Burst:   cfg.RepoAPIBurst,
		Timeout: cfg.EnrichTimeout,
	}, log)
	enrich := enrichment.New(s, repoClient, queue, cfg.EnrichTimeout, log)

	// Query layer
	resolver := index.NewResolver(s, cfg.CollectionMaxLimit)
	statsProvider := stats.NewStoreProvider(s, log)
	searcher := search.NewStoreSearcher(s, resolver)
	memo := querycache.New[[]views.Listing](cfg.QueryCacheCapacity)

	catalog := services.NewCatalogService(s, resolver, statsProvider, searcher, memo, log)
	compat := services.NewCompatService(s, resolver, enrich, searcher, cfg.EnrichWorkers, log)
	refresher := refresh.New(s, refresh.NewIndexIngester(s, log), []refresh.Updater{
		refresh.NewSummaryUpdater(s),
		refresh.NewPicksUpdater(s, cfg.PicksLists...),
		statsProvider,
		refresh.Noop("exceptions"),
	}, []refresh.Invalidator{memo}, log)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          utils.ErrorHandler,
		DisableStartupMessage: true,
		Immutable:             true,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(middleware.CORS(cfg.CORSOrigins))

	// Prometheus metrics
	prometheus := fiberprometheus.New("appcatalog")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	handlers.RegisterRoutes(app,
		&handlers.CatalogHandler{Service: catalog},
		&handlers.CompatHandler{Service: compat},
		&handlers.AdminHandler{Refresher: refresher},
	)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found")
	})

	// Scheduled refresh
	if cfg.RefreshSchedule != "" {
		scheduler := cron.New()
		_, err := scheduler.AddFunc(cfg.RefreshSchedule, func() {
			if _, err := refresher.Run(context.Background()); err != nil {
				log.WithError(err).Error("Scheduled refresh failed")
			}
		})
		if err != nil {
			log.Fatalf("Invalid REFRESH_SCHEDULE %q: %v", cfg.RefreshSchedule, err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		log.WithField("schedule", cfg.RefreshSchedule).Info("Scheduled refresh enabled")
	}

	// Graceful shutdown
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigs
		log.Info("Gracefully shutting down...")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	// Start server
	log.WithFields(logrus.Fields{"port": cfg.Port, "store": cfg.StoreType}).Info("Starting server")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := queue.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("Background tasks abandoned")
	}

	log.Info("Server stopped")
}
