package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/trackforge/internal/config"
	"github.com/iliyamo/trackforge/internal/database"
	"github.com/iliyamo/trackforge/internal/logging"
	"github.com/iliyamo/trackforge/internal/metrics"
	"github.com/iliyamo/trackforge/internal/router"
	"github.com/iliyamo/trackforge/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	if cfg.IsProduction() && cfg.SecretKey == config.DefaultSecretKey {
		slog.Warn("SECRET_KEY is the built-in development default; sessions can be forged")
	}

	ctx := context.Background()
	db, err := database.Open(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open database", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}

	var rdb *redis.Client
	if cfg.SessionBackend == config.SessionRedis {
		rdb, err = config.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
	}

	sessions, err := session.New(cfg, rdb)
	if err != nil {
		slog.Error("Failed to build session manager", "error", err)
		os.Exit(1)
	}

	e, err := router.New(router.Deps{
		DB:         db,
		Sessions:   sessions,
		Registry:   metrics.NewRegistry(),
		BcryptCost: cfg.BcryptCost,
	})
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	done := runGracefulShutdown(e, db, rdb)

	slog.Info("Server starting",
		"port", cfg.Port,
		"env", cfg.Env,
		"db_driver", cfg.DBDriver,
		"session_backend", cfg.SessionBackend,
	)
	if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}

// runGracefulShutdown stops the server on SIGINT or SIGTERM, then closes the
// database and Redis client.  The returned channel closes once cleanup is done.
func runGracefulShutdown(e *echo.Echo, db *sql.DB, rdb *redis.Client) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		if err := db.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
		if rdb != nil {
			if err := rdb.Close(); err != nil {
				slog.Error("Failed to close Redis client", "error", err)
			}
		}

		close(done)
	}()

	return done
}
