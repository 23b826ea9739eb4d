package models

import (
	"time"

	"github.com/google/uuid"
	dbtypes "github.com/parksense/parksense-backend/pkg/db/types"
	"gorm.io/gorm"
)

// Violation records a detected parking infraction together with its evidence
// trail and downstream verification/enforcement state.
type Violation struct {
	ID                  uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	CarID               string               `gorm:"column:car_id;type:text;not null;index" json:"car_id"`
	ParkingSpaceID      string               `gorm:"column:parking_space_id;type:text;not null;index" json:"parking_space_id"`
	ZoneID              string               `gorm:"column:zone_id;type:text;not null;index" json:"zone_id"`
	Type                string               `gorm:"type:text;not null" json:"type"`
	Status              string               `gorm:"type:text;not null" json:"status"`
	DetectedAt          time.Time            `gorm:"column:detected_at;not null" json:"detected_at"`
	Evidence            dbtypes.StringList   `gorm:"type:jsonb" json:"evidence"`
	VerificationDetails dbtypes.Document     `gorm:"type:jsonb;column:verification_details" json:"verification_details"`
	VerificationHistory dbtypes.DocumentList `gorm:"type:jsonb;column:verification_history" json:"verification_history"`
	EnforcementDetails  dbtypes.Document     `gorm:"type:jsonb;column:enforcement_details" json:"enforcement_details"`
	BlockchainRecord    dbtypes.Document     `gorm:"type:jsonb;column:blockchain_record" json:"blockchain_record"`
	IsDeleted           bool                 `gorm:"column:is_deleted;not null;default:false" json:"is_deleted"`
}

func (v *Violation) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
