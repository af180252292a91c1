// Package item serves the admin API for wishlist items.
package item

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/go-wishlist/go-wishlist/internal/config"
	itemctl "github.com/go-wishlist/go-wishlist/internal/db/controller/item"
	"github.com/go-wishlist/go-wishlist/internal/validation"
	"github.com/go-wishlist/go-wishlist/internal/web/handler"
)

// Path is the base path of the item API.
const Path = handler.AdminAPIPath + "/items"

// Service is the admin item handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator validation.XValidator
}

// ReorderRequest is the body of POST /reorder.
type ReorderRequest struct {
	Section string   `json:"section" validate:"required,oneof=favorites others"`
	IDs     []uint64 `json:"ids"     validate:"required,min=1,dive,gt=0"`
}

// Handler is the admin item handler.
var Handler = Service{}

// Init initializes the admin item handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, guard fiber.Handler) error {
	if app == nil || cfg == nil || db == nil || guard == nil {
		return handler.ErrNilACD
	}

	s.cfg = cfg
	s.db = db

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, guard, s.List)
		router.Post(handler.RouterRootPath, guard, s.Create)
		router.Post("/reorder", guard, s.Reorder)
		router.Get("/:id", guard, s.Get)
		router.Put("/:id", guard, s.Update)
		router.Delete("/:id", guard, s.Delete)
		router.Post("/:id/favorite", guard, s.ToggleFavorite)
	})

	return nil
}

func (s *Service) conn(c *fiber.Ctx) *gorm.DB {
	return s.db.WithContext(c.UserContext())
}

// fail maps controller errors to HTTP answers.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, itemctl.ErrItemNotFound):
		return handler.JSONError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, itemctl.ErrItemNameEmpty),
		errors.Is(err, itemctl.ErrUnknownSection),
		errors.Is(err, handler.ErrInvalidID):
		return handler.JSONError(c, fiber.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("item request failed")

		return handler.JSONError(c, fiber.StatusInternalServerError, "internal error")
	}
}

// bind parses and validates the body into dst. When ok is false the
// response has already been written.
func (s *Service) bind(c *fiber.Ctx, dst interface{}) (ok bool, err error) {
	if err = c.BodyParser(dst); err != nil {
		return false, handler.JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if errs := s.validator.Validate(dst); len(errs) > 0 {
		return false, handler.JSONValidationError(c, errs)
	}

	return true, nil
}

// List returns all items in display order.
func (s *Service) List(c *fiber.Ctx) error {
	items, err := itemctl.List(s.conn(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(items)
}

// Get returns one item.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParseID(c)
	if err != nil {
		return fail(c, err)
	}

	it, err := itemctl.Get(s.conn(c), id)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(it)
}

// Create adds an item at the end of the list.
func (s *Service) Create(c *fiber.Ctx) error {
	var in itemctl.Input
	if ok, err := s.bind(c, &in); !ok {
		return err
	}

	it, err := itemctl.Create(s.conn(c), in)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(it)
}

// Update replaces the editable fields of an item.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParseID(c)
	if err != nil {
		return fail(c, err)
	}

	var in itemctl.Input
	if ok, bindErr := s.bind(c, &in); !ok {
		return bindErr
	}

	it, err := itemctl.Update(s.conn(c), id, in)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(it)
}

// Delete removes an item.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParseID(c)
	if err != nil {
		return fail(c, err)
	}

	if err = itemctl.Delete(s.conn(c), id); err != nil {
		return fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleFavorite flips the favorite flag.
func (s *Service) ToggleFavorite(c *fiber.Ctx) error {
	id, err := handler.ParseID(c)
	if err != nil {
		return fail(c, err)
	}

	it, err := itemctl.ToggleFavorite(s.conn(c), id)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(it)
}

// Reorder stores the order of one section.
func (s *Service) Reorder(c *fiber.Ctx) error {
	var req ReorderRequest
	if ok, err := s.bind(c, &req); !ok {
		return err
	}

	if err := itemctl.Reorder(s.conn(c), req.IDs, req.Section); err != nil {
		return fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
