package app

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/go-wishlist/go-wishlist/internal/db"
	"github.com/go-wishlist/go-wishlist/internal/db/setup"
)

// ErrSetupFailed is returned when the setup report contains errors.
var ErrSetupFailed = errors.New("setup finished with errors")

func init() { //nolint: gochecknoinits
	setupCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the report to stdout")

	rootCmd.AddCommand(setupCmd)
}

var (
	quiet bool

	setupCmd = &cobra.Command{
		Use:   "setup",
		Short: "Create or upgrade the database schema and seed the default presets",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			gdb, err := db.Open(&cfg)
			if err != nil {
				return err
			}

			defer func() {
				if closeErr := db.Close(gdb); closeErr != nil {
					log.Error().Err(closeErr).Msg("failed to close database")
				}
			}()

			report := setup.Run(cmd.Context(), gdb, setup.Config{
				Version: setup.FileVersion(cfg.Setup.VersionFile),
			})

			if !quiet {
				if _, err = report.WriteTo(os.Stdout); err != nil {
					return errors.Wrap(err, "failed to print report")
				}
			}

			if report.HasError() {
				return ErrSetupFailed
			}

			return nil
		},
	}
)
