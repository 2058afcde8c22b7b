package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/praxiscommerce/catalog-api/internal/di"
	"github.com/praxiscommerce/catalog-api/internal/handlers"
	"github.com/praxiscommerce/catalog-api/internal/platform/auth"
	"github.com/praxiscommerce/catalog-api/internal/platform/config"
	"github.com/praxiscommerce/catalog-api/internal/platform/observability"
	"github.com/praxiscommerce/catalog-api/internal/platform/pagination"
)

func main() {
	logger, err := observability.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	logger = logger.Named("api")
	ctx := observability.WithLogger(context.Background(), logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load configuration", zap.Error(err))
	}

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		logger.Fatal("build container", zap.Error(err))
	}
	defer func() {
		if err := container.Close(); err != nil {
			logger.Warn("close container", zap.Error(err))
		}
	}()

	verifier := auth.NewHMACVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	healthHandlers := handlers.NewHealthHandlers(
		handlers.WithSystemService(container.Services.System),
	)
	productHandlers := handlers.NewProductHandlers(
		handlers.WithCatalogService(container.Services.Catalog),
		handlers.WithPageOptions(pagination.Options{
			DefaultPageSize: cfg.Catalog.DefaultPageSize,
			MaxPageSize:     cfg.Catalog.MaxPageSize,
		}),
	)

	router := handlers.NewRouter(
		handlers.WithMiddlewares(
			observability.InjectLoggerMiddleware(logger.Named("http")),
			observability.TraceMiddleware(),
			observability.RecoveryMiddleware(logger),
			observability.RequestLoggerMiddleware(),
			auth.BearerMiddleware(verifier),
		),
		handlers.WithHealthHandlers(healthHandlers),
		handlers.WithProductRoutes(productHandlers.Routes),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
