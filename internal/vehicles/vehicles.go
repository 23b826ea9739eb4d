package vehicles

import (
	"time"

	"github.com/parksense/parksense-backend/internal/repo"
	"github.com/parksense/parksense-backend/internal/resource"
	"github.com/parksense/parksense-backend/pkg/db/models"
	dbtypes "github.com/parksense/parksense-backend/pkg/db/types"
	"gorm.io/gorm"
)

// CreateInput carries the client-settable vehicle fields. Detection
// timestamps come from the camera pipeline, not the server clock.
type CreateInput struct {
	LicensePlate           string             `json:"license_plate" validate:"required"`
	Make                   *string            `json:"make"`
	Model                  *string            `json:"model"`
	Color                  *string            `json:"color"`
	FirstDetectedAt        time.Time          `json:"first_detected_at" validate:"required"`
	LastDetectedAt         time.Time          `json:"last_detected_at" validate:"required"`
	ParkingDurationSeconds *int               `json:"parking_duration_seconds"`
	Snapshots              dbtypes.StringList `json:"snapshots"`
	Tracking               dbtypes.Document   `json:"tracking"`
}

// Service binds the uniform resource protocol to vehicles.
type Service = resource.Service[CreateInput, models.Vehicle]

func NewService(db *gorm.DB) *Service {
	return resource.NewService(resource.Binding[CreateInput, models.Vehicle]{
		Repo: repo.NewResource[models.Vehicle](db, repo.Options{
			DefaultSort: "first_detected_at",
			Columns:     []string{"license_plate", "make", "model", "color", "first_detected_at"},
		}),
		New: func(in CreateInput) *models.Vehicle {
			return &models.Vehicle{
				LicensePlate:           in.LicensePlate,
				Make:                   in.Make,
				Model:                  in.Model,
				Color:                  in.Color,
				FirstDetectedAt:        in.FirstDetectedAt,
				LastDetectedAt:         in.LastDetectedAt,
				ParkingDurationSeconds: in.ParkingDurationSeconds,
				Snapshots:              in.Snapshots,
				Tracking:               in.Tracking,
			}
		},
		Patch: func(in CreateInput) map[string]any {
			return map[string]any{
				"license_plate":            in.LicensePlate,
				"make":                     in.Make,
				"model":                    in.Model,
				"color":                    in.Color,
				"first_detected_at":        in.FirstDetectedAt,
				"last_detected_at":         in.LastDetectedAt,
				"parking_duration_seconds": in.ParkingDurationSeconds,
				"snapshots":                in.Snapshots,
				"tracking":                 in.Tracking,
			}
		},
		Filters: []string{"license_plate", "make", "model", "color"},
	})
}
