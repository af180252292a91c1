// Package preset serves the admin API for customization presets.
package preset

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/go-wishlist/go-wishlist/internal/config"
	presetctl "github.com/go-wishlist/go-wishlist/internal/db/controller/preset"
	"github.com/go-wishlist/go-wishlist/internal/db/models"
	"github.com/go-wishlist/go-wishlist/internal/validation"
	"github.com/go-wishlist/go-wishlist/internal/web/handler"
)

// Path is the base path of the preset API.
const Path = handler.AdminAPIPath + "/presets"

// Service is the admin preset handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator validation.XValidator
}

// Input carries the editable fields of a preset.
type Input struct {
	BgImageEnabled        bool   `json:"bgImageEnabled"`
	BgImageURL            string `json:"bgImageUrl"            validate:"omitempty,max=255"`
	DarkModeSwitchEnabled bool   `json:"darkModeSwitchEnabled"`
	DefaultMode           string `json:"defaultMode"           validate:"omitempty,oneof=light dark system"`
	HeaderTitle           string `json:"headerTitle"           validate:"max=255"`
	FaviconURL            string `json:"faviconUrl"            validate:"omitempty,max=255"`
	ErrImageURL           string `json:"errImageUrl"           validate:"omitempty,max=255"`
	BgBlur                int    `json:"bgBlur"                validate:"gte=0,lte=20"`
	PresetName            string `json:"presetName"            validate:"required,max=255"`
	Active                bool   `json:"active"`
	FavoriteBorderHex     string `json:"favoriteBorderHex"     validate:"omitempty,hexrgb"`
}

// Handler is the admin preset handler.
var Handler = Service{}

// Init initializes the admin preset handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, guard fiber.Handler) error {
	if app == nil || cfg == nil || db == nil || guard == nil {
		return handler.ErrNilACD
	}

	s.cfg = cfg
	s.db = db

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, guard, s.List)
		router.Get("/active", guard, s.Active)
		router.Get("/:id", guard, s.Get)
		router.Put("/:id", guard, s.Save)
		router.Post("/:id/activate", guard, s.Activate)
	})

	return nil
}

func (s *Service) conn(c *fiber.Ctx) *gorm.DB {
	return s.db.WithContext(c.UserContext())
}

func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, presetctl.ErrPresetNotFound),
		errors.Is(err, presetctl.ErrPresetOutOfRange):
		return handler.JSONError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, handler.ErrInvalidID):
		return handler.JSONError(c, fiber.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("preset request failed")

		return handler.JSONError(c, fiber.StatusInternalServerError, "internal error")
	}
}

// List returns all presets.
func (s *Service) List(c *fiber.Ctx) error {
	presets, err := presetctl.List(s.conn(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(presets)
}

// Active returns the preset in use.
func (s *Service) Active(c *fiber.Ctx) error {
	p, err := presetctl.Active(s.conn(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(p)
}

// Get returns one preset.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParseID(c)
	if err != nil {
		return fail(c, err)
	}

	p, err := presetctl.Get(s.conn(c), id)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(p)
}

// Save replaces the editable fields of a preset.
func (s *Service) Save(c *fiber.Ctx) error {
	id, err := handler.ParseID(c)
	if err != nil {
		return fail(c, err)
	}

	var in Input
	if err = c.BodyParser(&in); err != nil {
		return handler.JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if errs := s.validator.Validate(in); len(errs) > 0 {
		return handler.JSONValidationError(c, errs)
	}

	p, err := presetctl.Save(s.conn(c), &models.Preset{
		ID:                    id,
		BgImageEnabled:        in.BgImageEnabled,
		BgImageURL:            in.BgImageURL,
		DarkModeSwitchEnabled: in.DarkModeSwitchEnabled,
		DefaultMode:           in.DefaultMode,
		HeaderTitle:           in.HeaderTitle,
		FaviconURL:            in.FaviconURL,
		ErrImageURL:           in.ErrImageURL,
		BgBlur:                in.BgBlur,
		PresetName:            in.PresetName,
		Active:                in.Active,
		FavoriteBorderHex:     in.FavoriteBorderHex,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(p)
}

// Activate makes the preset the one in use.
func (s *Service) Activate(c *fiber.Ctx) error {
	id, err := handler.ParseID(c)
	if err != nil {
		return fail(c, err)
	}

	db := s.conn(c)

	p, err := presetctl.Get(db, id)
	if err != nil {
		return fail(c, err)
	}

	p.Active = true

	if p, err = presetctl.Save(db, p); err != nil {
		return fail(c, err)
	}

	return c.JSON(p)
}
