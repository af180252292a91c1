package models

import "time"

// SetupStatusID is the key of the only setup_status row.
const SetupStatusID = 1

// SetupStatus records whether and at which version the schema setup ran.
type SetupStatus struct {
	ID         uint64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Executed   bool       `gorm:"not null;default:false" json:"executed"`
	ExecutedAt *time.Time `json:"executedAt"`
	Version    string     `gorm:"size:20;not null;default:'0.0.0'" json:"version"`
}

// TableName specifies the database table name for the SetupStatus model.
func (SetupStatus) TableName() string {
	return "setup_status"
}
