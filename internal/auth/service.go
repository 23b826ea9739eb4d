package auth

import (
	"context"
	"time"

	"github.com/parksense/parksense-backend/internal/users"
	"github.com/parksense/parksense-backend/pkg/auth"
	"github.com/parksense/parksense-backend/pkg/config"
	"github.com/parksense/parksense-backend/pkg/db/models"
	dbtypes "github.com/parksense/parksense-backend/pkg/db/types"
	pkgerrors "github.com/parksense/parksense-backend/pkg/errors"
	"github.com/parksense/parksense-backend/pkg/security"
)

// DefaultRole is granted to every self-registered account.
const DefaultRole = "public_user"

const tokenType = "bearer"

// Service implements registration and credential-based token issuance.
type Service struct {
	users    *users.Repo
	jwt      config.JWTConfig
	password config.PasswordConfig
}

func NewService(repo *users.Repo, jwt config.JWTConfig, password config.PasswordConfig) *Service {
	return &Service{users: repo, jwt: jwt, password: password}
}

// Register creates a new active account with the default role. A duplicate
// email is a Conflict regardless of the existing account's state.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	hash, err := security.HashPassword(in.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Email:        in.Email,
		PasswordHash: hash,
		Roles:        dbtypes.StringList{DefaultRole},
		IsActive:     true,
	}
	return s.users.Create(ctx, user)
}

// Login verifies credentials and mints an access token. Unknown email, wrong
// password, and deactivated account all collapse into the same Unauthorized
// so callers cannot probe which accounts exist.
func (s *Service) Login(ctx context.Context, in LoginInput) (*TokenResponse, error) {
	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil && appErr.Code() == pkgerrors.CodeNotFound {
			return nil, invalidCredentials()
		}
		return nil, err
	}
	if !security.VerifyPassword(in.Password, user.PasswordHash) {
		return nil, invalidCredentials()
	}
	if !user.IsActive {
		return nil, invalidCredentials()
	}

	token, err := auth.MintAccessToken(s.jwt, time.Now().UTC(), auth.AccessTokenPayload{
		UserID: user.ID,
		Roles:  user.Roles,
		Email:  user.Email,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &TokenResponse{AccessToken: token, TokenType: tokenType}, nil
}

func invalidCredentials() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
}
