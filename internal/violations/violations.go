package violations

import (
	"time"

	"github.com/parksense/parksense-backend/internal/repo"
	"github.com/parksense/parksense-backend/internal/resource"
	"github.com/parksense/parksense-backend/pkg/db/models"
	dbtypes "github.com/parksense/parksense-backend/pkg/db/types"
	"gorm.io/gorm"
)

// CreateInput carries the client-settable violation fields. Verification and
// enforcement payloads are opaque documents produced elsewhere.
type CreateInput struct {
	CarID               string               `json:"car_id" validate:"required"`
	ParkingSpaceID      string               `json:"parking_space_id" validate:"required"`
	ZoneID              string               `json:"zone_id" validate:"required"`
	Type                string               `json:"type" validate:"required"`
	Status              string               `json:"status" validate:"required"`
	DetectedAt          time.Time            `json:"detected_at" validate:"required"`
	Evidence            dbtypes.StringList   `json:"evidence"`
	VerificationDetails dbtypes.Document     `json:"verification_details"`
	VerificationHistory dbtypes.DocumentList `json:"verification_history"`
	EnforcementDetails  dbtypes.Document     `json:"enforcement_details"`
	BlockchainRecord    dbtypes.Document     `json:"blockchain_record"`
}

// Service binds the uniform resource protocol to violations.
type Service = resource.Service[CreateInput, models.Violation]

func NewService(db *gorm.DB) *Service {
	return resource.NewService(resource.Binding[CreateInput, models.Violation]{
		Repo: repo.NewResource[models.Violation](db, repo.Options{
			DefaultSort: "detected_at",
			Columns:     []string{"car_id", "parking_space_id", "zone_id", "type", "status", "detected_at"},
		}),
		New: func(in CreateInput) *models.Violation {
			return &models.Violation{
				CarID:               in.CarID,
				ParkingSpaceID:      in.ParkingSpaceID,
				ZoneID:              in.ZoneID,
				Type:                in.Type,
				Status:              in.Status,
				DetectedAt:          in.DetectedAt,
				Evidence:            in.Evidence,
				VerificationDetails: in.VerificationDetails,
				VerificationHistory: in.VerificationHistory,
				EnforcementDetails:  in.EnforcementDetails,
				BlockchainRecord:    in.BlockchainRecord,
			}
		},
		Patch: func(in CreateInput) map[string]any {
			return map[string]any{
				"car_id":               in.CarID,
				"parking_space_id":     in.ParkingSpaceID,
				"zone_id":              in.ZoneID,
				"type":                 in.Type,
				"status":               in.Status,
				"detected_at":          in.DetectedAt,
				"evidence":             in.Evidence,
				"verification_details": in.VerificationDetails,
				"verification_history": in.VerificationHistory,
				"enforcement_details":  in.EnforcementDetails,
				"blockchain_record":    in.BlockchainRecord,
			}
		},
		Filters: []string{"car_id", "parking_space_id", "zone_id", "type", "status"},
	})
}
