package models

import (
	"time"

	"github.com/google/uuid"
	dbtypes "github.com/parksense/parksense-backend/pkg/db/types"
	"gorm.io/gorm"
)

// Camera is a monitoring device attached to a zone. Configuration and health
// are opaque payloads owned by the ingestion pipeline.
type Camera struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	ZoneID        string           `gorm:"column:zone_id;type:text;not null;index" json:"zone_id"`
	Name          string           `gorm:"type:text;not null" json:"name"`
	Configuration dbtypes.Document `gorm:"type:jsonb" json:"configuration"`
	Health        dbtypes.Document `gorm:"type:jsonb" json:"health"`
	Status        string           `gorm:"type:text;not null;default:offline" json:"status"`
	IsDeleted     bool             `gorm:"column:is_deleted;not null;default:false" json:"is_deleted"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (c *Camera) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
