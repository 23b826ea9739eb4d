package models

import (
	"time"

	"github.com/google/uuid"
	dbtypes "github.com/parksense/parksense-backend/pkg/db/types"
	"gorm.io/gorm"
)

// User represents the canonical principal entity. Users are never
// soft-deleted; administrative deactivation flips is_active instead.
type User struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string             `gorm:"type:text;not null;uniqueIndex" json:"email"`
	PasswordHash string             `gorm:"column:password_hash;not null" json:"-"`
	Roles        dbtypes.StringList `gorm:"type:jsonb;not null" json:"roles"`
	IsActive     bool               `gorm:"column:is_active;not null;default:true" json:"is_active"`
	MFAEnabled   bool               `gorm:"column:mfa_enabled;not null;default:false" json:"mfa_enabled"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    *time.Time         `gorm:"column:updated_at" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// HasRole reports membership in the principal's role set.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
