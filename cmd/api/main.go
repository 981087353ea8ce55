package main

import (
	"context"
	"flag"
	"os"

	"yamdb/proj/internal/config"
	"yamdb/proj/internal/lib/logger"
	"yamdb/proj/internal/storage/postgres"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config/local.yml", "Path to a config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)
	log := logger.SetupLogger(cfg.Debug)

	storage, err := postgres.New(context.Background(), cfg.DB.Dsn, cfg.DB.MaxConns, cfg.DB.MaxConnIdleTime)
	if err != nil {
		log.Error("failed to connect to database", "errMsg", err.Error())
		os.Exit(1)
	}
	defer storage.Conn.Close()
	log.Info("database connection pool established")

	if err := storage.Migrate(); err != nil {
		log.Error("failed to apply migrations", "errMsg", err.Error())
		os.Exit(1)
	}

	app := NewApplication(cfg, log, storage)
	app.bgTasks.Run()

	if err := app.serve(); err != nil {
		log.Error("server error", "errMsg", err.Error())
		os.Exit(1)
	}
}
