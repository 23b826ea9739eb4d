package spaces

import (
	"time"

	"github.com/parksense/parksense-backend/internal/repo"
	"github.com/parksense/parksense-backend/internal/resource"
	"github.com/parksense/parksense-backend/pkg/db/models"
	dbtypes "github.com/parksense/parksense-backend/pkg/db/types"
	"gorm.io/gorm"
)

// CreateInput carries the client-settable parking space fields. Occupancy
// references other kinds by opaque string id.
type CreateInput struct {
	ZoneID                        string             `json:"zone_id" validate:"required"`
	Type                          string             `json:"type" validate:"required"`
	Status                        string             `json:"status" validate:"required"`
	OccupiedByCarID               *string            `json:"occupied_by_car_id"`
	OccupiedSince                 *time.Time         `json:"occupied_since"`
	CurrentParkingDurationSeconds *int               `json:"current_parking_duration_seconds"`
	AssociatedViolationIDs        dbtypes.StringList `json:"associated_violation_ids"`
}

// Service binds the uniform resource protocol to parking spaces.
type Service = resource.Service[CreateInput, models.ParkingSpace]

func NewService(db *gorm.DB) *Service {
	return resource.NewService(resource.Binding[CreateInput, models.ParkingSpace]{
		Repo: repo.NewResource[models.ParkingSpace](db, repo.Options{
			DefaultSort: "zone_id",
			Columns:     []string{"zone_id", "type", "status"},
		}),
		New: func(in CreateInput) *models.ParkingSpace {
			return &models.ParkingSpace{
				ZoneID:                        in.ZoneID,
				Type:                          in.Type,
				Status:                        in.Status,
				OccupiedByCarID:               in.OccupiedByCarID,
				OccupiedSince:                 in.OccupiedSince,
				CurrentParkingDurationSeconds: in.CurrentParkingDurationSeconds,
				AssociatedViolationIDs:        in.AssociatedViolationIDs,
			}
		},
		Patch: func(in CreateInput) map[string]any {
			return map[string]any{
				"zone_id":                          in.ZoneID,
				"type":                             in.Type,
				"status":                           in.Status,
				"occupied_by_car_id":               in.OccupiedByCarID,
				"occupied_since":                   in.OccupiedSince,
				"current_parking_duration_seconds": in.CurrentParkingDurationSeconds,
				"associated_violation_ids":         in.AssociatedViolationIDs,
			}
		},
		Filters: []string{"zone_id", "type", "status"},
	})
}
