package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loyallight/backend/internal/config"
	"loyallight/backend/internal/handler"
	"loyallight/backend/internal/middleware"
	"loyallight/backend/internal/repository"
	"loyallight/backend/internal/service"
	"loyallight/backend/internal/service/storage"
	"loyallight/backend/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg := logger.New(cfg.LogLevel)

	// 2. Run migrations
	if err := config.Migrate(cfg.DatabaseURL, cfg.MigrationsPath, logg); err != nil {
		logg.Fatalf("Failed to run migrations: %v", err)
	}

	// 3. Setup database
	ctx := context.Background()
	dbPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logg.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(ctx); err != nil {
		logg.Fatalf("Failed to ping database: %v", err)
	}
	logg.Info("Connected to database")

	// 4. Setup logic
	clientRepo := repository.NewClientRepository(dbPool)
	itemRepo := repository.NewItemRepository(dbPool)
	purchaseRepo := repository.NewPurchaseRepository(dbPool)
	analyticsRepo := repository.NewAnalyticsRepository(dbPool)

	storageClient := storage.NewClient(storage.Config{
		BaseURL: cfg.Storage.BaseURL,
		Bucket:  cfg.Storage.Bucket,
		APIKey:  cfg.Storage.APIKey,
	})

	clientSvc := service.NewClientService(clientRepo)
	itemSvc := service.NewItemService(itemRepo, storageClient)
	purchaseSvc := service.NewPurchaseService(purchaseRepo)
	analyticsSvc := service.NewAnalyticsService(analyticsRepo)
	suggestionSvc := service.NewSuggestionService(clientRepo, analyticsRepo, analyticsSvc)

	auth := middleware.NewAuth(cfg.JWTSecret, logg)
	cors := middleware.NewCORS(cfg.AllowedOrigins)

	h := handler.NewHandler(
		logg,
		auth,
		cors,
		handler.NewClientHandler(clientSvc, logg),
		handler.NewItemHandler(itemSvc, logg),
		handler.NewPurchaseHandler(purchaseSvc, logg),
		handler.NewAnalyticsHandler(analyticsSvc, logg),
		handler.NewSuggestionHandler(suggestionSvc, logg),
	)

	// 5. Setup server
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: h,
	}

	// 6. Run server with graceful shutdown
	go func() {
		logg.Infof("Starting server on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 2)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logg.Info("Shutting down server...")

	// Create a deadline to wait for.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Fatalf("Server forced to shutdown: %v", err)
	}

	logg.Info("Server exiting")
}
