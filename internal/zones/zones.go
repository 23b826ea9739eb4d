package zones

import (
	"github.com/parksense/parksense-backend/internal/repo"
	"github.com/parksense/parksense-backend/internal/resource"
	"github.com/parksense/parksense-backend/pkg/db/models"
	dbtypes "github.com/parksense/parksense-backend/pkg/db/types"
	"gorm.io/gorm"
)

// CreateInput carries the client-settable zone fields. Identifier, deletion
// flag, and creation timestamp are always server-assigned.
type CreateInput struct {
	Name       string               `json:"name" validate:"required"`
	Boundaries dbtypes.Document     `json:"boundaries" validate:"required"`
	Rules      dbtypes.DocumentList `json:"rules"`
}

// Service binds the uniform resource protocol to zones.
type Service = resource.Service[CreateInput, models.Zone]

func NewService(db *gorm.DB) *Service {
	return resource.NewService(resource.Binding[CreateInput, models.Zone]{
		Repo: repo.NewResource[models.Zone](db, repo.Options{
			DefaultSort: "created_at",
			Columns:     []string{"name", "created_at"},
		}),
		New: func(in CreateInput) *models.Zone {
			return &models.Zone{
				Name:       in.Name,
				Boundaries: in.Boundaries,
				Rules:      in.Rules,
			}
		},
		Patch: func(in CreateInput) map[string]any {
			return map[string]any{
				"name":       in.Name,
				"boundaries": in.Boundaries,
				"rules":      in.Rules,
			}
		},
		Filters: []string{"name"},
	})
}
