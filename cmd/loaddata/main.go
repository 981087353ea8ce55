package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"yamdb/proj/internal/config"
	"yamdb/proj/internal/fixtures"
	"yamdb/proj/internal/lib/logger"
	"yamdb/proj/internal/storage/postgres"
)

func main() {
	var (
		configPath string
		dataDir    string
	)

	cmd := &cobra.Command{
		Use:   "loaddata",
		Short: "Load CSV fixtures into an empty database",
		Long: "Reads the fixture CSV files (users, categories, genres, titles, " +
			"genre-title links, reviews and comments) from a directory and inserts " +
			"them keeping their original ids. Refuses to run against a non-empty " +
			"database.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.MustLoad(configPath)
			log := logger.SetupLogger(cfg.Debug)

			ctx := cmd.Context()
			storage, err := postgres.New(ctx, cfg.DB.Dsn, cfg.DB.MaxConns, cfg.DB.MaxConnIdleTime)
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}
			defer storage.Conn.Close()

			if err := storage.Migrate(); err != nil {
				return fmt.Errorf("applying migrations: %w", err)
			}
			return fixtures.Load(ctx, log, storage.Conn, os.DirFS(dataDir))
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "config/local.yml", "path to a config file")
	cmd.Flags().StringVar(&dataDir, "dir", "static/data", "directory with fixture CSV files")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
