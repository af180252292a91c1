// Package setup serves the database setup routine over HTTP.
package setup

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/go-wishlist/go-wishlist/internal/config"
	"github.com/go-wishlist/go-wishlist/internal/db/controller/status"
	dbsetup "github.com/go-wishlist/go-wishlist/internal/db/setup"
	"github.com/go-wishlist/go-wishlist/internal/web/handler"
	"github.com/go-wishlist/go-wishlist/internal/web/navigation"
)

const (
	// Path is the HTML setup page.
	Path = "/setup"

	// APIPath runs the setup routine and answers with JSON.
	APIPath = handler.AdminAPIPath + "/setup"

	// StatusPath returns the setup_status row.
	StatusPath = APIPath + "/status"

	// TemplateName is the name of the setup report template.
	TemplateName = "setup/report"
)

// Service is the setup handler service.
type Service struct {
	handler.Service
	cfg     *config.Config
	db      *gorm.DB
	version dbsetup.VersionSource
}

// Response is the JSON answer of a setup run.
type Response struct {
	Status   string          `json:"status"`
	HasError bool            `json:"hasError"`
	Report   *dbsetup.Report `json:"report"`
}

// Handler is the setup handler.
var Handler = Service{}

// Init initializes the setup handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, guard fiber.Handler) error {
	if app == nil || cfg == nil || db == nil || guard == nil {
		return handler.ErrNilACD
	}

	s.cfg = cfg
	s.db = db
	s.version = dbsetup.FileVersion(cfg.Setup.VersionFile)

	app.Get(Path, guard, s.Get)
	app.Post(APIPath, guard, s.Post)
	app.Get(StatusPath, guard, s.Status)

	return nil
}

func (s *Service) run(c *fiber.Ctx) *dbsetup.Report {
	return dbsetup.Run(c.UserContext(), s.db, dbsetup.Config{Version: s.version})
}

// Get runs the setup routine and renders its report.
func (s *Service) Get(c *fiber.Ctx) error {
	report := s.run(c)

	nav := navigation.NewContext(s.cfg.Title, "Database Setup (v"+report.Version+")", "admin").
		Add("Wishlist", "/").
		Add("Setup", Path)

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Report":     report,
		"Status":     report.Status(),
	}, handler.BaseLayout)
}

// Post runs the setup routine and returns the report as JSON.
func (s *Service) Post(c *fiber.Ctx) error {
	report := s.run(c)

	return c.JSON(Response{
		Status:   report.Status(),
		HasError: report.HasError(),
		Report:   report,
	})
}

// Status returns the recorded setup state.
func (s *Service) Status(c *fiber.Ctx) error {
	st, err := status.Get(s.db.WithContext(c.UserContext()))
	if err != nil {
		if errors.Is(err, status.ErrStatusNotFound) {
			return handler.JSONError(c, fiber.StatusNotFound, "setup has not run yet")
		}

		log.Error().Err(err).Msg("failed to read setup status")

		return handler.JSONError(c, fiber.StatusServiceUnavailable, "setup status unavailable")
	}

	return c.JSON(st)
}
