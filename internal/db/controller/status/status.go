// Package status reads and writes the singleton setup_status row.
package status

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/go-wishlist/go-wishlist/internal/db/models"
)

// InitialVersion is recorded before the first setup run completes.
const InitialVersion = "0.0.0"

const idQueryPattern = "id = ?"

var (
	// ErrStatusNotFound is returned when the status row does not exist.
	ErrStatusNotFound = errors.New("setup status not found")
	// ErrVersionEmpty is returned when marking the setup executed without a version.
	ErrVersionEmpty = errors.New("setup version cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves the status row.
func Get(db *gorm.DB) (*models.SetupStatus, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var st models.SetupStatus
	result := db.Where(idQueryPattern, models.SetupStatusID).Take(&st)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrStatusNotFound
		}
		return nil, result.Error
	}

	return &st, nil
}

// Init inserts the initial status row unless it exists.
// It reports whether this call inserted the row.
func Init(db *gorm.DB) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	st := models.SetupStatus{
		ID:      models.SetupStatusID,
		Version: InitialVersion,
	}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&st)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// MarkExecuted records a finished setup run at version.
func MarkExecuted(db *gorm.DB, version string, at time.Time) error {
	if db == nil {
		return ErrDBNil
	}
	if version == "" {
		return ErrVersionEmpty
	}

	result := db.Model(&models.SetupStatus{}).
		Where(idQueryPattern, models.SetupStatusID).
		Updates(map[string]any{
			"executed":    true,
			"executed_at": at,
			"version":     version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStatusNotFound
	}

	return nil
}
