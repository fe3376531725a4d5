package main

import (
	"fmt"

	"github.com/ikkim/storefeed/config"
	"github.com/ikkim/storefeed/internal/db"
	"github.com/ikkim/storefeed/pkg/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load catalog data into the storefeed database",
	Long: `Seed fills the products table shared by the shop and social apps.

Examples:
  seed defaults                           # insert the starter catalog into an empty table
  seed import products.xlsx --batch 500   # bulk insert products from a spreadsheet`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return connect()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	},
}

func connect() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Initialize(logger.Config{
		Level:       cfg.LogLevel(),
		Format:      cfg.Log.Format,
		EnableColor: true,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		return err
	}
	return db.Migrate()
}
