package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"stockroom/internal/auth"
	"stockroom/internal/commons"
	"stockroom/internal/component"
	"stockroom/internal/infrastructure/logger"
	"stockroom/internal/infrastructure/metrics"
	"stockroom/internal/infrastructure/mysql"
	"stockroom/internal/server"
)

func main() {
	cfg, err := commons.LoadConfig(commons.ConfigPath())
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	if cfg.Auth.JWTSecret == "" {
		zapLogger.Fatal("JWT_SECRET is required")
	}

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, cfg.Database.Name),
	)
	componentMetrics := metrics.NewComponentMetrics(registry)

	componentCtrl := component.NewModule(db, cfg, zapLogger, componentMetrics)

	router := server.NewRouter(server.RouterDeps{
		Components: componentCtrl,
		Auth:       auth.Middleware(cfg.Auth, cfg.Companies, zapLogger),
		DB:         db,
		Gatherer:   registry,
		Logger:     zapLogger,
	})

	srv := server.New(cfg.Server.Port, router, zapLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		zapLogger.Fatal("server error", zap.Error(err))
	}
	zapLogger.Info("server stopped gracefully")
}
