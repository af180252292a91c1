// Package item provides CRUD and ordering operations for wishlist items.
package item

import (
	"errors"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/go-wishlist/go-wishlist/internal/db/models"
	"github.com/go-wishlist/go-wishlist/internal/validation"
)

// Reorder sections.
const (
	SectionFavorites = "favorites"
	SectionOthers    = "others"
)

const idQueryPattern = "id = ?"

var (
	// ErrItemNotFound is returned when an item is not found.
	ErrItemNotFound = errors.New("item not found")
	// ErrItemNameEmpty is returned when creating or updating an item without a name.
	ErrItemNameEmpty = errors.New("item name cannot be empty")
	// ErrUnknownSection is returned by Reorder for sections other than favorites and others.
	ErrUnknownSection = errors.New("unknown section")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Input carries the editable fields of an item.
type Input struct {
	Name       string  `json:"name"       validate:"required,max=255"`
	Price      float64 `json:"price"      validate:"gte=0"`
	ImageURL   string  `json:"imageUrl"`
	ProductURL string  `json:"productUrl"`
	IsFavorite bool    `json:"isFavorite"`
	ColorHex   string  `json:"colorHex"`
	ImgFit     bool    `json:"imgFit"`
}

// normalize trims the input, drops invalid URLs and colors and rounds the price.
func (in Input) normalize() (Input, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, ErrItemNameEmpty
	}

	in.Price = math.Round(in.Price*100) / 100
	in.ImageURL = validation.HTTPURL(in.ImageURL)
	in.ProductURL = validation.HTTPURL(in.ProductURL)
	in.ColorHex = validation.Hex(in.ColorHex)

	return in, nil
}

func colorPtr(hex string) *string {
	if hex == "" {
		return nil
	}

	return &hex
}

// List returns all items, favorites first, then by position.
func List(db *gorm.DB) ([]models.Item, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	items := []models.Item{}
	result := db.Order("is_favorite DESC").Order("position ASC").Order("id ASC").Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}

// Get retrieves an item by its ID.
func Get(db *gorm.DB, id uint64) (*models.Item, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var it models.Item
	result := db.First(&it, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, result.Error
	}

	return &it, nil
}

// Create appends a new item after the current last position.
func Create(db *gorm.DB, in Input) (*models.Item, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	var maxPos int
	if err = db.Model(&models.Item{}).Select("COALESCE(MAX(position), -1)").Scan(&maxPos).Error; err != nil {
		return nil, err
	}

	it := &models.Item{
		Name:       in.Name,
		Price:      in.Price,
		ImageURL:   in.ImageURL,
		ProductURL: in.ProductURL,
		IsFavorite: in.IsFavorite,
		Position:   maxPos + 1,
		ColorHex:   colorPtr(in.ColorHex),
		ImgFit:     in.ImgFit,
	}

	if err = db.Create(it).Error; err != nil {
		return nil, err
	}

	return it, nil
}

// Update replaces the editable fields of an item. The position is kept.
func Update(db *gorm.DB, id uint64, in Input) (*models.Item, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	if _, err = Get(db, id); err != nil {
		return nil, err
	}

	result := db.Model(&models.Item{}).Where(idQueryPattern, id).Updates(map[string]any{
		"name":        in.Name,
		"price":       in.Price,
		"image_url":   in.ImageURL,
		"product_url": in.ProductURL,
		"is_favorite": in.IsFavorite,
		"color_hex":   colorPtr(in.ColorHex),
		"img_fit":     in.ImgFit,
	})
	if result.Error != nil {
		return nil, result.Error
	}

	return Get(db, id)
}

// Delete deletes an item by ID.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Item{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}

// ToggleFavorite flips the favorite flag of an item.
func ToggleFavorite(db *gorm.DB, id uint64) (*models.Item, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	result := db.Model(&models.Item{}).Where(idQueryPattern, id).
		Update("is_favorite", gorm.Expr("NOT is_favorite"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrItemNotFound
	}

	return Get(db, id)
}

// Reorder assigns positions to ids in the given order.
// Positions in the others section start after the number of favorites.
func Reorder(db *gorm.DB, ids []uint64, section string) error {
	if db == nil {
		return ErrDBNil
	}

	var offset int64

	switch section {
	case SectionFavorites:
	case SectionOthers:
		if err := db.Model(&models.Item{}).Where("is_favorite = ?", true).Count(&offset).Error; err != nil {
			return err
		}
	default:
		return ErrUnknownSection
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			err := tx.Model(&models.Item{}).Where(idQueryPattern, id).
				Update("position", offset+int64(i)).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}
