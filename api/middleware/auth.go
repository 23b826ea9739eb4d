package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/parksense/parksense-backend/api/responses"
	pkgAuth "github.com/parksense/parksense-backend/pkg/auth"
	"github.com/parksense/parksense-backend/pkg/config"
	"github.com/parksense/parksense-backend/pkg/db/models"
	pkgerrors "github.com/parksense/parksense-backend/pkg/errors"
	"github.com/parksense/parksense-backend/pkg/logger"
)

// PrincipalSource resolves token subjects to live accounts.
type PrincipalSource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Auth validates a bearer token, resolves the account it names, and seeds the
// request context with the principal. Roles come from the stored account, not
// the token, so role changes take effect without reissuing tokens.
func Auth(cfg config.JWTConfig, source PrincipalSource, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token subject"))
				return
			}

			user, err := source.FindByID(r.Context(), userID)
			if err != nil {
				if appErr := pkgerrors.As(err); appErr != nil && appErr.Code() == pkgerrors.CodeNotFound {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown account"))
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve account"))
				return
			}
			if !user.IsActive {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "account deactivated"))
				return
			}

			ctx := WithPrincipal(r.Context(), user.ID.String(), user.Roles, user.Email)

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id": user.ID.String(),
					"roles":   []string(user.Roles),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
