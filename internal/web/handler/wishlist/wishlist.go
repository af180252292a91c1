// Package wishlist serves the public wishlist as JSON.
package wishlist

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/go-wishlist/go-wishlist/internal/config"
	"github.com/go-wishlist/go-wishlist/internal/db/controller/item"
	"github.com/go-wishlist/go-wishlist/internal/db/controller/preset"
	"github.com/go-wishlist/go-wishlist/internal/db/models"
	"github.com/go-wishlist/go-wishlist/internal/web/handler"
)

// Path of the public wishlist API.
const Path = handler.APIPath + "/wishlist"

// Service is the public wishlist handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Theme holds the presentation values of the active preset.
type Theme struct {
	PresetID              uint64 `json:"presetId"`
	Title                 string `json:"title"`
	FaviconURL            string `json:"faviconUrl"`
	ErrImageURL           string `json:"errImageUrl"`
	BgImageURL            string `json:"bgImageUrl"`
	BgBlur                int    `json:"bgBlur"`
	DarkModeSwitchEnabled bool   `json:"darkModeSwitchEnabled"`
	DefaultMode           string `json:"defaultMode"`
	FavoriteBorderHex     string `json:"favoriteBorderHex"`
}

// Response is the public wishlist document.
type Response struct {
	Theme Theme         `json:"theme"`
	Items []models.Item `json:"items"`
}

// Handler is the public wishlist handler.
var Handler = Service{}

// Init initializes the public wishlist handler. The route is not guarded.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, _ fiber.Handler) error {
	if app == nil || cfg == nil || db == nil {
		return handler.ErrNilACD
	}

	s.cfg = cfg
	s.db = db

	app.Get(Path, s.Get)

	return nil
}

// DefaultTheme is used when no preset row exists.
func DefaultTheme(title string) Theme {
	if title == "" {
		title = preset.DefaultHeaderTitle
	}

	return Theme{
		Title:                 title,
		DarkModeSwitchEnabled: true,
		DefaultMode:           models.ModeSystem,
		FavoriteBorderHex:     preset.DefaultFavoriteBorderHex,
	}
}

// ThemeFrom maps a preset to its public theme.
func ThemeFrom(p *models.Preset, fallbackTitle string) Theme {
	t := DefaultTheme(fallbackTitle)
	t.PresetID = p.ID
	t.DarkModeSwitchEnabled = p.DarkModeSwitchEnabled
	t.BgBlur = p.BgBlur

	if p.HeaderTitle != "" {
		t.Title = p.HeaderTitle
	}

	switch p.DefaultMode {
	case models.ModeLight, models.ModeDark, models.ModeSystem:
		t.DefaultMode = p.DefaultMode
	}

	if hex := preset.SanitizeHex(p.FavoriteBorderHex); hex != "" {
		t.FavoriteBorderHex = hex
	}

	t.FaviconURL = p.FaviconURL
	t.ErrImageURL = p.ErrImageURL

	if p.BgImageEnabled {
		t.BgImageURL = p.BgImageURL
	}

	return t
}

// Get returns the ordered items and the active theme.
func (s *Service) Get(c *fiber.Ctx) error {
	db := s.db.WithContext(c.UserContext())

	items, err := item.List(db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list wishlist items")

		return handler.JSONError(c, fiber.StatusServiceUnavailable, "wishlist unavailable")
	}

	theme := DefaultTheme(s.cfg.Title)

	p, err := preset.Active(db)

	switch {
	case err == nil:
		theme = ThemeFrom(p, s.cfg.Title)
	case errors.Is(err, preset.ErrPresetNotFound):
	default:
		log.Error().Err(err).Msg("failed to load active preset")
	}

	return c.JSON(Response{Theme: theme, Items: items})
}
