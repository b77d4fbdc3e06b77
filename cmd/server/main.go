package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/form-service/internal/cache"
	"github.com/SAP-F-2025/form-service/internal/config"
	"github.com/SAP-F-2025/form-service/internal/handlers"
	"github.com/SAP-F-2025/form-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/form-service/internal/services"
	"github.com/SAP-F-2025/form-service/internal/storage"
	"github.com/SAP-F-2025/form-service/internal/utils"
	"github.com/SAP-F-2025/form-service/internal/validator"
	"github.com/SAP-F-2025/form-service/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewDefaultLogger().Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment)
	slogger := utils.ToSlogLogger(logger)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}

	repo := postgres.NewRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	formCache := cache.NewNoopCache()
	if cfg.RedisURL != "" {
		client, err := pkg.NewRedisClient(ctx, cfg)
		if err != nil {
			logger.Warn("Redis unavailable, form cache disabled", "error", err)
		} else {
			defer client.Close()
			formCache = cache.NewRedisCache(client, slogger)
		}
	}

	eventPublisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := eventPublisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", "error", err)
		}
	}()

	store, err := storage.NewFSStore(cfg.UploadDir)
	if err != nil {
		logger.Error("Failed to prepare upload directory", "error", err)
		os.Exit(1)
	}

	serviceManager := services.NewServiceManager(services.ServiceDeps{
		Repo:           repo,
		Cache:          formCache,
		EventPublisher: eventPublisher,
		Store:          store,
		Validator:      validator.New(),
		Logger:         slogger,
		Forms: services.FormServiceOptions{
			CacheTTL:     cfg.CacheTTL,
			DeletePolicy: cfg.DeletePolicy,
		},
		UploadURL:      "/uploads",
		UploadMaxBytes: cfg.UploadMaxBytes,
	})

	handlerManager := handlers.NewHandlerManager(serviceManager, logger, handlers.RouterConfig{
		UploadDir:   store.Dir(),
		UploadURL:   "/uploads",
		CORSOrigins: cfg.CORSOrigins,
	})
	router := handlerManager.NewRouter()
	router.MaxMultipartMemory = cfg.UploadMaxBytes

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
}
