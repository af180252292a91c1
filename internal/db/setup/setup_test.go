package setup

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/go-wishlist/go-wishlist/internal/db/models"
)

var wishlistColumns = []string{
	"id", "name", "price", "image_url", "product_url",
	"is_favorite", "position", "color_hex", "img_fit",
}

var presetColumns = []string{
	"id", "bg_image_enabled", "bg_image_url", "dark_mode_switch_enabled", "default_mode",
	"header_title", "favicon_url", "errimage_url", "bg_blur", "preset_name", "active",
	"favorite_border_hex",
}

func loadStatus(t *testing.T, db *gorm.DB) []models.SetupStatus {
	t.Helper()

	var rows []models.SetupStatus
	require.NoError(t, db.Order("id").Find(&rows).Error)

	return rows
}

func loadPresets(t *testing.T, db *gorm.DB) []models.Preset {
	t.Helper()

	var rows []models.Preset
	require.NoError(t, db.Order("id").Find(&rows).Error)

	return rows
}

func assertConverged(t *testing.T, db *gorm.DB, version string) {
	t.Helper()

	rows := loadStatus(t, db)
	require.Len(t, rows, 1)
	assert.Equal(t, uint64(1), rows[0].ID)
	assert.True(t, rows[0].Executed)
	assert.Equal(t, version, rows[0].Version)

	for _, c := range wishlistColumns {
		assert.True(t, db.Migrator().HasColumn("wishlist", c), "wishlist.%s", c)
	}

	for _, c := range presetColumns {
		assert.True(t, db.Migrator().HasColumn("customization_settings", c), "customization_settings.%s", c)
	}

	presets := loadPresets(t, db)
	require.Len(t, presets, 10)

	for i, p := range presets {
		assert.Equal(t, uint64(i+1), p.ID)
		assert.Equal(t, i == 0, p.Active, "preset %d active", p.ID)
	}
}

func TestRunFreshDatabase(t *testing.T) {
	db := openTestDB(t)

	r := Run(context.Background(), db, testConfig("1.0.0"))

	assert.Equal(t, "1.0.0", r.Version)
	assert.False(t, r.Skipped)
	assert.False(t, r.HasError(), "%v", messages(r, SeverityError))
	assert.Equal(t, StatusSucceeded, r.Status())
	assert.Positive(t, r.Statements)

	last := r.Steps[len(r.Steps)-1]
	assert.Equal(t, SeveritySuccess, last.Severity)
	assert.Equal(t, "Setup v1.0.0 completed successfully!", last.Message)

	assertConverged(t, db, "1.0.0")

	rows := loadStatus(t, db)
	require.NotNil(t, rows[0].ExecutedAt)
	assert.True(t, fixedNow.Equal(*rows[0].ExecutedAt))

	var items int64
	require.NoError(t, db.Model(&models.Item{}).Count(&items).Error)
	assert.Zero(t, items)

	first := loadPresets(t, db)[0]
	assert.Equal(t, "Preset-1", first.PresetName)
	assert.Equal(t, "Wishlist NAME 🎁", first.HeaderTitle)
	assert.Equal(t, models.ModeSystem, first.DefaultMode)
	assert.True(t, first.DarkModeSwitchEnabled)
	assert.Equal(t, "#facc15", first.FavoriteBorderHex)
	assert.Zero(t, first.BgBlur)

	assert.True(t, containsMessage(r, SeveritySuccess, "Inserted preset 10"))
}

func TestRunIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	first := Run(context.Background(), db, testConfig("1.0.0"))
	require.False(t, first.HasError(), "%v", messages(first, SeverityError))

	session, rec := recorded(db)
	second := Run(context.Background(), session, testConfig("1.0.0"))

	assert.True(t, second.Skipped)
	assert.Equal(t, StatusSkipped, second.Status())
	assert.Zero(t, second.Statements)
	assert.Empty(t, rec.writes())

	skips := 0
	for _, s := range second.Steps {
		if strings.Contains(s.Message, "skipping setup") {
			skips++
			assert.Equal(t, SeverityInfo, s.Severity)
			assert.Equal(t, "Already at v1.0.0 (>= 1.0.0), skipping setup.", s.Message)
		}
	}
	assert.Equal(t, 1, skips)

	assertConverged(t, db, "1.0.0")
}

func TestRunVersionGate(t *testing.T) {
	db := openTestDB(t)

	require.False(t, Run(context.Background(), db, testConfig("1.2.0")).HasError())

	tests := []struct {
		target string
		skip   bool
	}{
		{"1.2.0", true},
		{"1.1.9", true},
		{"0.9.0", true},
		{"1.2.1", false},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			session, rec := recorded(db)
			r := Run(context.Background(), session, testConfig(tt.target))

			assert.Equal(t, tt.skip, r.Skipped)
			if tt.skip {
				assert.Empty(t, rec.writes())
			} else {
				assert.NotEmpty(t, rec.writes())
			}
		})
	}
}

func TestRunNotExecutedConverges(t *testing.T) {
	db := openTestDB(t)

	require.False(t, Run(context.Background(), db, testConfig("1.0.0")).HasError())
	require.NoError(t, db.Exec("UPDATE setup_status SET executed = FALSE WHERE id = 1").Error)

	r := Run(context.Background(), db, testConfig("1.0.0"))
	assert.False(t, r.Skipped)
	assert.False(t, r.HasError())
	assert.True(t, containsMessage(r, SeverityInfo, "Column 'color_hex' already exists in 'wishlist'."))
	assert.True(t, containsMessage(r, SeverityInfo, "Preset 4 already exists."))

	assertConverged(t, db, "1.0.0")
}

func TestRunColumnBackfill(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Exec(`CREATE TABLE wishlist (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name VARCHAR(255) NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		image_url VARCHAR(255) NOT NULL DEFAULT '',
		product_url VARCHAR(255) NOT NULL DEFAULT '',
		is_favorite BOOLEAN NOT NULL DEFAULT FALSE,
		position INTEGER NOT NULL DEFAULT 0,
		img_fit BOOLEAN NOT NULL DEFAULT FALSE)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO wishlist (name, price, image_url, product_url, is_favorite, position)
		VALUES ('Camera', 349.90, 'https://img.example.com/c.png', 'https://shop.example.com/c', TRUE, 3)`).Error)

	r := Run(context.Background(), db, testConfig("1.0.0"))
	require.False(t, r.HasError(), "%v", messages(r, SeverityError))

	var alters []string
	for _, m := range messages(r, SeverityInfo) {
		if strings.HasPrefix(m, "Executing SQL: ALTER TABLE wishlist") {
			alters = append(alters, m)
		}
	}
	require.Len(t, alters, 1)
	assert.Contains(t, alters[0], "ADD COLUMN color_hex VARCHAR(7) NULL")
	assert.True(t, db.Migrator().HasColumn("wishlist", "color_hex"))

	var items []models.Item
	require.NoError(t, db.Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, "Camera", items[0].Name)
	assert.InDelta(t, 349.90, items[0].Price, 0.001)
	assert.Equal(t, "https://img.example.com/c.png", items[0].ImageURL)
	assert.Equal(t, "https://shop.example.com/c", items[0].ProductURL)
	assert.True(t, items[0].IsFavorite)
	assert.Equal(t, 3, items[0].Position)
	assert.Nil(t, items[0].ColorHex)
}

func TestRunSeedsOnlyMissingPresets(t *testing.T) {
	db := openTestDB(t)

	require.False(t, Run(context.Background(), db, testConfig("1.0.0")).HasError())
	require.NoError(t, db.Exec("DELETE FROM customization_settings WHERE id IN (3, 7)").Error)
	require.NoError(t, db.Exec("UPDATE customization_settings SET preset_name = 'Summer', active = FALSE WHERE id = 1").Error)
	require.NoError(t, db.Exec("UPDATE customization_settings SET active = TRUE WHERE id = 2").Error)

	r := Run(context.Background(), db, testConfig("1.1.0"))
	require.False(t, r.HasError(), "%v", messages(r, SeverityError))

	assert.True(t, containsMessage(r, SeveritySuccess, "Inserted preset 3"))
	assert.True(t, containsMessage(r, SeveritySuccess, "Inserted preset 7"))
	assert.True(t, containsMessage(r, SeverityInfo, "Preset 1 already exists."))
	assert.False(t, containsMessage(r, SeveritySuccess, "Inserted preset 1"))

	presets := loadPresets(t, db)
	require.Len(t, presets, 10)
	assert.Equal(t, "Summer", presets[0].PresetName)
	assert.False(t, presets[0].Active)
	assert.True(t, presets[1].Active)
	assert.Equal(t, "Preset-3", presets[2].PresetName)
	assert.False(t, presets[2].Active)
}

func TestRunPartialFailure(t *testing.T) {
	db := openTestDB(t)

	broken := TableSchema{
		Name:    "broken",
		Columns: []Column{{Name: "id", Kind: KindInt, PrimaryKey: true}},
		// sqlite refuses to add primary key columns
		Added: []Column{{Name: "other_id", Kind: KindInt, PrimaryKey: true}},
	}

	cfg := testConfig("1.0.0")
	cfg.Tables = append([]TableSchema{broken}, Tables()...)

	r := Run(context.Background(), db, cfg)

	assert.True(t, r.HasError())
	assert.Equal(t, StatusFailed, r.Status())

	errs := messages(r, SeverityError)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "Error (")
	assert.Equal(t, "Setup v1.0.0 finished with errors.", errs[1])

	assertConverged(t, db, "1.0.0")
}

func TestRunConnectionFailure(t *testing.T) {
	t.Run("nil handle", func(t *testing.T) {
		r := Run(context.Background(), nil, testConfig("1.0.0"))

		require.Len(t, r.Steps, 2)
		assert.Equal(t, SeverityError, r.Steps[1].Severity)
		assert.Contains(t, r.Steps[1].Message, "Database connection failed")
		assert.Zero(t, r.Statements)
		assert.Equal(t, StatusFailed, r.Status())
	})

	t.Run("closed handle", func(t *testing.T) {
		db := openTestDB(t)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())

		r := Run(context.Background(), db, testConfig("1.0.0"))

		require.Len(t, r.Steps, 2)
		assert.Equal(t, SeverityError, r.Steps[1].Severity)
		assert.Contains(t, r.Steps[1].Message, "Database connection failed")
		assert.Zero(t, r.Statements)
	})
}

func TestRunMissingVersionFile(t *testing.T) {
	db := openTestDB(t)

	cfg := testConfig("")
	cfg.Version = FileVersion(filepath.Join(t.TempDir(), "version.txt"))

	r := Run(context.Background(), db, cfg)

	assert.Equal(t, FallbackVersion, r.Version)
	assert.Equal(t, SeverityError, r.Steps[0].Severity)
	assert.Contains(t, r.Steps[0].Message, "defaulting to 0.0.0")
	assert.Equal(t, StatusFailed, r.Status())

	assertConverged(t, db, FallbackVersion)
}

func TestRunInvalidVersion(t *testing.T) {
	db := openTestDB(t)

	r := Run(context.Background(), db, testConfig("latest"))

	assert.Equal(t, FallbackVersion, r.Version)
	assert.Contains(t, r.Steps[0].Message, `"latest" is not a semantic version`)
}

func TestRunUpgrade(t *testing.T) {
	db := openTestDB(t)

	require.False(t, Run(context.Background(), db, testConfig("1.0.0")).HasError())

	up := Run(context.Background(), db, testConfig("1.1.0"))
	require.False(t, up.HasError(), "%v", messages(up, SeverityError))
	assert.False(t, up.Skipped)
	assert.Equal(t, "Setup v1.1.0 completed successfully!", up.Steps[len(up.Steps)-1].Message)
	assertConverged(t, db, "1.1.0")

	down := Run(context.Background(), db, testConfig("1.0.0"))
	assert.True(t, down.Skipped)
	assertConverged(t, db, "1.1.0")
}

func TestRunIntegerVersionColumn(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Exec(`CREATE TABLE setup_status (
		id INTEGER PRIMARY KEY,
		executed BOOLEAN NOT NULL DEFAULT FALSE,
		executed_at DATETIME NULL,
		version INTEGER NOT NULL DEFAULT 0)`).Error)
	require.NoError(t, db.Exec("INSERT INTO setup_status (id, executed, version) VALUES (1, TRUE, 0)").Error)

	r := Run(context.Background(), db, testConfig("1.0.0"))
	require.False(t, r.HasError(), "%v", messages(r, SeverityError))
	assert.True(t, containsMessage(r, SeverityInfo, "keeping it"))
	assert.False(t, r.Skipped)
	assertConverged(t, db, "1.0.0")

	again := Run(context.Background(), db, testConfig("1.0.0"))
	assert.True(t, again.Skipped)
}

func TestRunConcurrent(t *testing.T) {
	db := openTestDB(t)

	var wg sync.WaitGroup

	reports := make([]*Report, 4)
	for i := range reports {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()
			reports[i] = Run(context.Background(), db, testConfig("1.0.0"))
		}(i)
	}

	wg.Wait()

	skipped := 0
	for _, r := range reports {
		assert.False(t, r.HasError(), "%v", messages(r, SeverityError))
		if r.Skipped {
			skipped++
		}
	}

	assert.Equal(t, len(reports)-1, skipped)
	assertConverged(t, db, "1.0.0")
}
