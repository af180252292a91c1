package models

// Item represents one wish on the list.
// Favorites are listed first, then items are ordered by Position.
type Item struct {
	// ID is the unique identifier for the item.
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	// Name of the wished product.
	Name string `gorm:"size:255;not null" json:"name"`
	// Price with two decimals.
	Price float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	// ImageURL is an http(s) URL or empty.
	ImageURL string `gorm:"column:image_url;size:255;not null;default:''" json:"imageUrl"`
	// ProductURL is an http(s) URL or empty.
	ProductURL string `gorm:"column:product_url;size:255;not null;default:''" json:"productUrl"`
	// IsFavorite pins the item to the favorites section.
	IsFavorite bool `gorm:"not null;default:false" json:"isFavorite"`
	// Position is the manual order inside the item's section.
	Position int `gorm:"not null;default:0" json:"position"`
	// ColorHex is an optional #RGB or #RRGGBB tag color.
	ColorHex *string `gorm:"size:7" json:"colorHex,omitempty"`
	// ImgFit switches the image from cover to contain.
	ImgFit bool `gorm:"not null;default:false" json:"imgFit"`
}

// TableName specifies the database table name for the Item model.
func (Item) TableName() string {
	return "wishlist"
}
