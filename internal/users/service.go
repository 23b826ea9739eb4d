package users

import (
	"context"

	"github.com/google/uuid"
	"github.com/parksense/parksense-backend/pkg/db/models"
	dbtypes "github.com/parksense/parksense-backend/pkg/db/types"
	pkgerrors "github.com/parksense/parksense-backend/pkg/errors"
)

// PatchInput carries the administrative account mutations. Nil fields are
// left untouched.
type PatchInput struct {
	Roles      *[]string `json:"roles"`
	IsActive   *bool     `json:"is_active"`
	MFAEnabled *bool     `json:"mfa_enabled"`
}

// Service exposes the administrative account surface. Registration and login
// live in the auth service; this one only lists and adjusts accounts.
type Service struct {
	repo *Repo
}

func NewService(repo *Repo) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, params ListParams) (*Page, error) {
	return s.repo.List(ctx, params)
}

func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	parsed, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, parsed)
}

func (s *Service) Patch(ctx context.Context, id string, in PatchInput) (*models.User, error) {
	parsed, err := parseID(id)
	if err != nil {
		return nil, err
	}

	patch := map[string]any{}
	if in.Roles != nil {
		patch["roles"] = dbtypes.StringList(*in.Roles)
	}
	if in.IsActive != nil {
		patch["is_active"] = *in.IsActive
	}
	if in.MFAEnabled != nil {
		patch["mfa_enabled"] = *in.MFAEnabled
	}
	return s.repo.Patch(ctx, parsed, patch)
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
	}
	return parsed, nil
}
