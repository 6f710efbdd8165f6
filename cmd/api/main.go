package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/wager-duel-backend/internal/api"
	"github.com/wager-duel-backend/internal/config"
	"github.com/wager-duel-backend/internal/identity"
	"github.com/wager-duel-backend/internal/service"
	"github.com/wager-duel-backend/internal/storage"
	"github.com/wager-duel-backend/internal/storage/cassandra"
	redisstore "github.com/wager-duel-backend/internal/storage/redis"
	"github.com/wager-duel-backend/pkg/logger"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	validator := identity.NewBase58Validator()

	// The admin identity is validated once at startup and held by the
	// service; no game operation consults it
	admin := ""
	if cfg.AdminAddress != "" {
		admin, err = validator.Validate(cfg.AdminAddress)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid ADMIN_ADDRESS: %v\n", err)
			os.Exit(1)
		}
		log.Info("Admin configured", logger.F("admin", admin))
	}

	store, cleanup, err := newRepository(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize storage: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()
	log.Info("Storage initialized", logger.F("backend", cfg.StoreBackend))

	gameService := service.NewGameService(store, validator, admin, log)
	handler := api.NewHandler(gameService, log)

	router := chi.NewRouter()
	router.Use(api.RequestIDMiddleware)
	router.Use(api.LoggingMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(10 * time.Second))
	router.Mount("/", handler.Routes())

	server := &http.Server{
		Addr:    cfg.Address(),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info("Server starting", logger.F("addr", cfg.Address()))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Server forced to shutdown: %v\n", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}

// newRepository builds the storage backend selected by STORE_BACKEND.
// The returned cleanup closes any backend connections.
func newRepository(cfg *config.Config, log *logger.Logger) (storage.Repository, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendCassandra:
		client, err := cassandra.NewClient(cfg.Cassandra, log)
		if err != nil {
			return nil, nil, err
		}
		repo := cassandra.NewRepository(client, log, cfg.Cassandra.Timeout)
		return repo, client.Close, nil

	case config.BackendRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		repo, err := redisstore.NewRepository(ctx, cfg.Redis, log)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { repo.Close() }, nil

	default:
		return storage.NewMemoryStorage(), func() {}, nil
	}
}
