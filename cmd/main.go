package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/JhonesBR/go-bank/internal/api"
	"github.com/JhonesBR/go-bank/internal/config"
	"github.com/JhonesBR/go-bank/internal/db"
	"github.com/JhonesBR/go-bank/internal/logger"
)

func main() {
	cfg := config.Load()

	logg, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()
	if cfg.EnvFileErr != nil {
		logg.Warn("Could not load .env file, using system environment variables", zap.Error(cfg.EnvFileErr))
	}

	if cfg.MigrateOnStart {
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			logg.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	// DB connection
	pool, err := db.NewConnection(context.Background(), cfg.DatabaseURL, cfg.MaxConns)
	if err != nil {
		logg.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	app := api.NewApp(api.NewDependencies(pool, logg, cfg.RequestTimeout))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logg.Info("Server starting", zap.String("env", cfg.Env), zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			logg.Error("Server stopped", zap.Error(err))
		}
	}()

	<-stop
	logg.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		logg.Error("Server shutdown failed", zap.Error(err))
	}
}
