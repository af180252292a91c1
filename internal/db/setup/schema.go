package setup

import (
	"fmt"

	"github.com/go-wishlist/go-wishlist/internal/db/controller/preset"
	"github.com/go-wishlist/go-wishlist/internal/db/models"
)

// Names of the status table and its version column.
const (
	StatusTable   = "setup_status"
	VersionColumn = "version"
)

var statusSchema = TableSchema{
	Name: StatusTable,
	Columns: []Column{
		{Name: "id", Kind: KindInt, PrimaryKey: true},
		{Name: "executed", Kind: KindBool, NotNull: true, Default: "FALSE"},
		{Name: "executed_at", Kind: KindDateTime},
	},
}

var versionColumn = Column{
	Name:    VersionColumn,
	Kind:    KindVarchar,
	Size:    20,
	NotNull: true,
	Default: "'0.0.0'",
}

// Tables returns the managed tables in the order they are converged.
func Tables() []TableSchema {
	return []TableSchema{
		{
			Name: models.Item{}.TableName(),
			Columns: []Column{
				{Name: "id", Kind: KindInt, PrimaryKey: true, AutoIncrement: true},
				{Name: "name", Kind: KindVarchar, Size: 255, NotNull: true},
				{Name: "price", Kind: KindDecimal, Precision: 10, Scale: 2, NotNull: true},
			},
			Added: []Column{
				{Name: "image_url", Kind: KindVarchar, Size: 255, NotNull: true, Default: "''"},
				{Name: "product_url", Kind: KindVarchar, Size: 255, NotNull: true, Default: "''"},
				{Name: "is_favorite", Kind: KindBool, NotNull: true, Default: "FALSE"},
				{Name: "position", Kind: KindInt, NotNull: true, Default: "0"},
				{Name: "color_hex", Kind: KindVarchar, Size: 7},
				{Name: "img_fit", Kind: KindBool, NotNull: true, Default: "FALSE"},
			},
		},
		{
			Name: models.Preset{}.TableName(),
			Columns: []Column{
				{Name: "id", Kind: KindInt, PrimaryKey: true},
				{Name: "bg_image_enabled", Kind: KindBool, NotNull: true, Default: "FALSE"},
				{Name: "bg_image_url", Kind: KindVarchar, Size: 255, NotNull: true, Default: "''"},
				{Name: "dark_mode_switch_enabled", Kind: KindBool, NotNull: true, Default: "TRUE"},
				{
					Name:    "default_mode",
					Kind:    KindEnum,
					Values:  []string{models.ModeLight, models.ModeDark, models.ModeSystem},
					NotNull: true,
					Default: "'system'",
				},
				{Name: "header_title", Kind: KindVarchar, Size: 255, NotNull: true, Default: "'Wishlist NAME 🎁'"},
				{Name: "favicon_url", Kind: KindVarchar, Size: 255, NotNull: true, Default: "''"},
				{Name: "errimage_url", Kind: KindVarchar, Size: 255, NotNull: true, Default: "''"},
				{Name: "bg_blur", Kind: KindInt, NotNull: true, Default: "0"},
				{Name: "preset_name", Kind: KindVarchar, Size: 255, NotNull: true, Default: "'Preset NAME'"},
				{Name: "active", Kind: KindBool, NotNull: true, Default: "FALSE"},
			},
			Added: []Column{
				{
					Name:    "favorite_border_hex",
					Kind:    KindVarchar,
					Size:    7,
					NotNull: true,
					Default: "'" + preset.DefaultFavoriteBorderHex + "'",
				},
			},
		},
	}
}

// DefaultPresets returns the seed rows of the preset slots, the first one active.
func DefaultPresets() []models.Preset {
	out := make([]models.Preset, 0, preset.MaxID)

	for id := uint64(preset.MinID); id <= preset.MaxID; id++ {
		out = append(out, models.Preset{
			ID:                    id,
			PresetName:            fmt.Sprintf("Preset-%d", id),
			Active:                id == preset.MinID,
			DarkModeSwitchEnabled: true,
			DefaultMode:           models.ModeSystem,
			HeaderTitle:           preset.DefaultHeaderTitle,
			FavoriteBorderHex:     preset.DefaultFavoriteBorderHex,
		})
	}

	return out
}
