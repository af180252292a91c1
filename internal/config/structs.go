package config

import (
	"github.com/go-wishlist/go-wishlist/internal/logger"
)

const (
	// DefaultAdminUsername is used when Admin.Username is not configured.
	DefaultAdminUsername = "admin"

	// DefaultVersionFile is the setup version marker shipped with the service.
	DefaultVersionFile = "./setup/version.txt"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Admin     Admin
	Setup     Setup
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool   // disable recover middleware
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
}

// Admin holds the credentials guarding the admin API and the setup page.
type Admin struct {
	Username     string
	PasswordHash string // argon2id encoded hash
}

// Setup controls the schema setup routine.
type Setup struct {
	VersionFile string // text file holding the target schema version
	RunOnStart  bool   // run the setup routine before the webserver starts
}
