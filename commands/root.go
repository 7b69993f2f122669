package commands

import (
	"fmt"
	"os"

	"storefront/confs"
	"storefront/db"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// v resolves settings from flags, then the environment and .env, then defaults.
var v = viper.New()

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront - headless catalog, favorites and cart service",
	Long: `Storefront keeps a product catalog, per-user favorites and shopping carts
in a local SQLite file (or PostgreSQL) and serves the catalog, cart, login and
register screens as JSON over HTTP with live state pushes over WebSocket.

Settings come from flags, environment variables or a .env file:
  DB_DRIVER             sqlite | postgres | memory
  DB_PATH               SQLite file path
  DB_URL                PostgreSQL connection URL
  SESSION_BACKEND       file | redis | memory
  CHECKOUT_WEBHOOK_URL  receives completed orders (optional)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db-driver", "", "Store driver: sqlite, postgres or memory")
	flags.String("db-path", "", "SQLite database file")
	flags.String("db-url", "", "PostgreSQL connection URL")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.String("log-format", "", "Log format: text or json")

	for key, flag := range map[string]string{
		"DB_DRIVER":  "db-driver",
		"DB_PATH":    "db-path",
		"DB_URL":     "db-url",
		"LOG_LEVEL":  "log-level",
		"LOG_FORMAT": "log-format",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}
}

// setup loads the config and logger and opens the migrated, seeded store.
func setup() (*confs.Config, *logrus.Logger, db.Database, error) {
	cfg, err := confs.LoadConfig(v)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	log := confs.NewLogger(cfg)

	database, err := db.Connect(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, database, nil
}
