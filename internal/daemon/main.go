// Package daemon wires the database, the setup routine and the web service.
package daemon

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/go-wishlist/go-wishlist/internal/config"
	"github.com/go-wishlist/go-wishlist/internal/db"
	"github.com/go-wishlist/go-wishlist/internal/db/setup"
	"github.com/go-wishlist/go-wishlist/internal/web"
)

// ErrConfigNil is returned by New without config.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	webService *web.Service
}

// New opens the database, runs the setup routine when configured and
// creates the web service.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	d, err := NewWithDB(cfg, gdb)
	if err != nil {
		_ = db.Close(gdb)

		return nil, err
	}

	return d, nil
}

// NewWithDB creates the daemon on an already opened database.
func NewWithDB(cfg *config.Config, gdb *gorm.DB) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	if cfg.Setup.RunOnStart {
		report := setup.Run(context.Background(), gdb, setup.Config{
			Version: setup.FileVersion(cfg.Setup.VersionFile),
		})
		if report.HasError() {
			log.Warn().Str("status", report.Status()).Msg("setup on start finished with errors")
		}
	}

	webService, err := web.New(cfg, gdb)
	if err != nil {
		return nil, errors.Wrap(err, "create web service")
	}

	return &Daemon{
		cfg:        cfg,
		db:         gdb,
		webService: webService,
	}, nil
}

// Start starts the web service and blocks until it stops.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	err := d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))

	if closeErr := db.Close(d.db); closeErr != nil {
		log.Error().Err(closeErr).Msg("failed to close database")
	}

	return err
}

// Web returns the web service.
func (d *Daemon) Web() *web.Service {
	return d.webService
}
