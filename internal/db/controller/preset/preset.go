// Package preset manages the fixed customization preset slots.
package preset

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/go-wishlist/go-wishlist/internal/db/models"
	"github.com/go-wishlist/go-wishlist/internal/validation"
)

const (
	// MinID is the first preset slot.
	MinID = 1
	// MaxID is the last preset slot.
	MaxID = 10
	// MaxBlur is the largest background blur in pixels.
	MaxBlur = 20

	// DefaultFavoriteBorderHex is used when a preset carries no valid border color.
	DefaultFavoriteBorderHex = "#facc15"
	// DefaultHeaderTitle of a freshly seeded preset.
	DefaultHeaderTitle = "Wishlist NAME 🎁"
)

var (
	// ErrPresetNotFound is returned when a preset row is missing.
	ErrPresetNotFound = errors.New("preset not found")
	// ErrPresetOutOfRange is returned for ids outside MinID..MaxID.
	ErrPresetOutOfRange = errors.New("preset id out of range")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// InRange reports whether id is a valid preset slot.
func InRange(id uint64) bool {
	return id >= MinID && id <= MaxID
}

// SanitizeHex returns s when it is a #RGB or #RRGGBB color, else "".
func SanitizeHex(s string) string {
	return validation.Hex(s)
}

// List returns all presets ordered by id.
func List(db *gorm.DB) ([]models.Preset, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	presets := []models.Preset{}
	result := db.Where("id BETWEEN ? AND ?", MinID, MaxID).Order("id ASC").Find(&presets)
	if result.Error != nil {
		return nil, result.Error
	}

	return presets, nil
}

// Get retrieves a preset by its slot id.
func Get(db *gorm.DB, id uint64) (*models.Preset, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if !InRange(id) {
		return nil, ErrPresetOutOfRange
	}

	var p models.Preset
	result := db.Where("id = ?", id).Take(&p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPresetNotFound
		}
		return nil, result.Error
	}

	return &p, nil
}

// Exists reports whether the preset row with id is present.
func Exists(db *gorm.DB, id uint64) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	var count int64
	if err := db.Model(&models.Preset{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// Active returns the active preset, falling back to the first slot.
func Active(db *gorm.DB) (*models.Preset, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var p models.Preset
	result := db.Where("active = ?", true).Order("id ASC").Take(&p)
	if result.Error == nil {
		return &p, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	return Get(db, MinID)
}

// Normalize clamps and defaults the user editable fields of p.
func Normalize(p *models.Preset) {
	switch p.DefaultMode {
	case models.ModeLight, models.ModeDark, models.ModeSystem:
	default:
		p.DefaultMode = models.ModeSystem
	}

	if p.BgBlur < 0 {
		p.BgBlur = 0
	}
	if p.BgBlur > MaxBlur {
		p.BgBlur = MaxBlur
	}

	p.PresetName = strings.TrimSpace(p.PresetName)
	p.HeaderTitle = strings.TrimSpace(p.HeaderTitle)
	p.BgImageURL = validation.HTTPURL(p.BgImageURL)
	p.FaviconURL = validation.HTTPURL(p.FaviconURL)
	p.ErrImageURL = validation.HTTPURL(p.ErrImageURL)

	if p.FavoriteBorderHex = SanitizeHex(p.FavoriteBorderHex); p.FavoriteBorderHex == "" {
		p.FavoriteBorderHex = DefaultFavoriteBorderHex
	}
}

// Save writes all fields of an existing preset.
// Activating a preset deactivates every other slot in the same transaction.
func Save(db *gorm.DB, p *models.Preset) (*models.Preset, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if !InRange(p.ID) {
		return nil, ErrPresetOutOfRange
	}

	Normalize(p)

	err := db.Transaction(func(tx *gorm.DB) error {
		exists, err := Exists(tx, p.ID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrPresetNotFound
		}

		if p.Active {
			err = tx.Model(&models.Preset{}).
				Where("id BETWEEN ? AND ? AND id <> ?", MinID, MaxID, p.ID).
				Update("active", false).Error
			if err != nil {
				return err
			}
		}

		return tx.Save(p).Error
	})
	if err != nil {
		return nil, err
	}

	return Get(db, p.ID)
}
