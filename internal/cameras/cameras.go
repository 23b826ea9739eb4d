package cameras

import (
	"github.com/parksense/parksense-backend/internal/repo"
	"github.com/parksense/parksense-backend/internal/resource"
	"github.com/parksense/parksense-backend/pkg/db/models"
	dbtypes "github.com/parksense/parksense-backend/pkg/db/types"
	"gorm.io/gorm"
)

const defaultStatus = "offline"

// CreateInput carries the client-settable camera fields.
type CreateInput struct {
	ZoneID        string           `json:"zone_id" validate:"required"`
	Name          string           `json:"name" validate:"required"`
	Configuration dbtypes.Document `json:"configuration"`
	Health        dbtypes.Document `json:"health"`
	Status        string           `json:"status"`
}

// Service binds the uniform resource protocol to cameras.
type Service = resource.Service[CreateInput, models.Camera]

func NewService(db *gorm.DB) *Service {
	return resource.NewService(resource.Binding[CreateInput, models.Camera]{
		Repo: repo.NewResource[models.Camera](db, repo.Options{
			DefaultSort: "created_at",
			Columns:     []string{"zone_id", "created_at"},
		}),
		New: func(in CreateInput) *models.Camera {
			return &models.Camera{
				ZoneID:        in.ZoneID,
				Name:          in.Name,
				Configuration: in.Configuration,
				Health:        in.Health,
				Status:        statusOrDefault(in.Status),
			}
		},
		Patch: func(in CreateInput) map[string]any {
			return map[string]any{
				"zone_id":       in.ZoneID,
				"name":          in.Name,
				"configuration": in.Configuration,
				"health":        in.Health,
				"status":        statusOrDefault(in.Status),
			}
		},
		Filters: []string{"zone_id"},
	})
}

func statusOrDefault(status string) string {
	if status == "" {
		return defaultStatus
	}
	return status
}
