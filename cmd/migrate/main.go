package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"stockroom/internal/commons"
	"stockroom/internal/infrastructure/logger"
	"stockroom/internal/infrastructure/migrations"
	"stockroom/internal/infrastructure/mysql"
)

func main() {
	cmd := flag.String("cmd", "up", "migration command: up|down|status|version|to")
	version := flag.String("version", "", "target version (YYYYMMDDHHMMSS) for -cmd=to")
	flag.Parse()

	cfg, err := commons.LoadConfig(commons.ConfigPath())
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger = zapLogger.With(zap.String("cmd", *cmd))

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	switch *cmd {
	case "up", "down", "status", "version":
		err = migrations.Run(ctx, db, *cmd)
	case "to":
		if *version == "" {
			fmt.Fprintln(os.Stderr, "missing -version for -cmd=to")
			os.Exit(1)
		}
		err = migrations.MigrateToVersion(ctx, db, *version)
	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}
	if err != nil {
		zapLogger.Fatal("migration failed", zap.Error(err))
	}
	zapLogger.Info("migration finished")
}
