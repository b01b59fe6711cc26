// Command devserver runs a self-contained stand-in for the production
// backend: seeded artist catalog, in-memory accounts and saved networks,
// real JWT auth. The client cannot tell it from the real thing.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"soundmap/infrastructure/config"
	"soundmap/infrastructure/di"
	"soundmap/infrastructure/persistence/memory"
	"soundmap/interfaces/http/rest"
	"soundmap/pkg/auth"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := di.ProvideLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	secret := cfg.JWTSecret
	if secret == "" {
		// LoadConfig rejects this in production
		secret = "development-secret-change-in-production"
	}
	issuer := auth.NewTokenIssuer(secret, cfg.JWTIssuer)

	router := rest.NewRouter(memory.NewStore(), memory.NewCatalog(), issuer, logger)

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
	_ = logger.Sync()
}
