// Package app implements the main application commands.
package app

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/go-wishlist/go-wishlist/internal/config"
	"github.com/go-wishlist/go-wishlist/internal/logger"
)

// Version is set at build time with -ldflags "-X github.com/go-wishlist/go-wishlist/app.Version=...".
var Version = "dev"

var (
	configPath string // directory holding main.toml
	cfg        config.Config

	rootCmd = &cobra.Command{
		Use:   "go-wishlist",
		Short: "go-wishlist serves a personal wishlist",
		Long: `go-wishlist serves a personal wishlist with an admin API
for items and presentation presets and a database setup routine.`,
		Args:         cobra.OnlyValidArgs,
		SilenceUsage: true,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "directory holding main.toml")
}

// loadConfig reads the config and initializes the global logger.
func loadConfig() error {
	var err error

	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err
	}

	if err = logger.Init(cfg.Log); err != nil {
		return errors.Wrap(err, "failed to init logger")
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
