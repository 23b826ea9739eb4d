package models

import (
	"time"

	"github.com/google/uuid"
	dbtypes "github.com/parksense/parksense-backend/pkg/db/types"
	"gorm.io/gorm"
)

// Zone is a monitored parking area with geometry and enforcement rules.
type Zone struct {
	ID         uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string               `gorm:"type:text;not null" json:"name"`
	Boundaries dbtypes.Document     `gorm:"type:jsonb" json:"boundaries"`
	Rules      dbtypes.DocumentList `gorm:"type:jsonb" json:"rules"`
	IsDeleted  bool                 `gorm:"column:is_deleted;not null;default:false" json:"is_deleted"`
	CreatedAt  time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (z *Zone) BeforeCreate(tx *gorm.DB) error {
	if z.ID == uuid.Nil {
		z.ID = uuid.New()
	}
	return nil
}
