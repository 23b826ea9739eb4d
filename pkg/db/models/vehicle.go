package models

import (
	"time"

	"github.com/google/uuid"
	dbtypes "github.com/parksense/parksense-backend/pkg/db/types"
	"gorm.io/gorm"
)

// Vehicle is a detected vehicle with its observation window. Snapshots and
// tracking payloads come from the camera pipeline and are stored opaquely.
type Vehicle struct {
	ID                     uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	LicensePlate           string             `gorm:"column:license_plate;type:text;not null;index" json:"license_plate"`
	Make                   *string            `gorm:"type:text" json:"make"`
	Model                  *string            `gorm:"type:text" json:"model"`
	Color                  *string            `gorm:"type:text" json:"color"`
	FirstDetectedAt        time.Time          `gorm:"column:first_detected_at;not null" json:"first_detected_at"`
	LastDetectedAt         time.Time          `gorm:"column:last_detected_at;not null" json:"last_detected_at"`
	ParkingDurationSeconds *int               `gorm:"column:parking_duration_seconds" json:"parking_duration_seconds"`
	Snapshots              dbtypes.StringList `gorm:"type:jsonb" json:"snapshots"`
	Tracking               dbtypes.Document   `gorm:"type:jsonb" json:"tracking"`
	IsDeleted              bool               `gorm:"column:is_deleted;not null;default:false" json:"is_deleted"`
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
