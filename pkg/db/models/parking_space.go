package models

import (
	"time"

	"github.com/google/uuid"
	dbtypes "github.com/parksense/parksense-backend/pkg/db/types"
	"gorm.io/gorm"
)

// ParkingSpace tracks a single stall inside a zone. Occupancy references a
// vehicle id and violation ids as plain strings; no referential integrity is
// enforced across kinds.
type ParkingSpace struct {
	ID                            uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	ZoneID                        string             `gorm:"column:zone_id;type:text;not null;index" json:"zone_id"`
	Type                          string             `gorm:"type:text;not null" json:"type"`
	Status                        string             `gorm:"type:text;not null" json:"status"`
	OccupiedByCarID               *string            `gorm:"column:occupied_by_car_id;type:text" json:"occupied_by_car_id"`
	OccupiedSince                 *time.Time         `gorm:"column:occupied_since" json:"occupied_since"`
	CurrentParkingDurationSeconds *int               `gorm:"column:current_parking_duration_seconds" json:"current_parking_duration_seconds"`
	AssociatedViolationIDs        dbtypes.StringList `gorm:"type:jsonb;column:associated_violation_ids" json:"associated_violation_ids"`
	IsDeleted                     bool               `gorm:"column:is_deleted;not null;default:false" json:"is_deleted"`
}

func (ParkingSpace) TableName() string {
	return "parking_spaces"
}

func (p *ParkingSpace) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
