package models

// Display modes of a preset.
const (
	ModeLight  = "light"
	ModeDark   = "dark"
	ModeSystem = "system"
)

// Preset is one of the fixed customization slots controlling the look of the wishlist.
// At most one preset is active at a time.
type Preset struct {
	// ID is the slot number, 1 to 10.
	ID uint64 `gorm:"primaryKey;autoIncrement:false" json:"id"`
	// BgImageEnabled toggles the background image.
	BgImageEnabled bool `gorm:"not null;default:false" json:"bgImageEnabled"`
	// BgImageURL of the background image.
	BgImageURL string `gorm:"column:bg_image_url;size:255;not null;default:''" json:"bgImageUrl"`
	// DarkModeSwitchEnabled shows the light/dark switch.
	DarkModeSwitchEnabled bool `gorm:"not null" json:"darkModeSwitchEnabled"`
	// DefaultMode is light, dark or system.
	DefaultMode string `gorm:"size:16;not null;default:'system'" json:"defaultMode"`
	// HeaderTitle shown on top of the list.
	HeaderTitle string `gorm:"size:255;not null" json:"headerTitle"`
	// FaviconURL of the page.
	FaviconURL string `gorm:"column:favicon_url;size:255;not null;default:''" json:"faviconUrl"`
	// ErrImageURL replaces broken item images.
	ErrImageURL string `gorm:"column:errimage_url;size:255;not null;default:''" json:"errImageUrl"`
	// BgBlur in pixels.
	BgBlur int `gorm:"not null;default:0" json:"bgBlur"`
	// PresetName is the display name of the slot.
	PresetName string `gorm:"size:255;not null" json:"presetName"`
	// Active marks the preset in use.
	Active bool `gorm:"not null;default:false" json:"active"`
	// FavoriteBorderHex colors the border of favorite items.
	FavoriteBorderHex string `gorm:"size:7;not null;default:'#facc15'" json:"favoriteBorderHex"`
}

// TableName specifies the database table name for the Preset model.
func (Preset) TableName() string {
	return "customization_settings"
}
