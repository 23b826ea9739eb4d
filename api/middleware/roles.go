package middleware

import (
	"net/http"

	"github.com/parksense/parksense-backend/api/responses"
	pkgerrors "github.com/parksense/parksense-backend/pkg/errors"
	"github.com/parksense/parksense-backend/pkg/logger"
)

// RequireRole rejects requests whose principal does not carry the role.
// Authorization additivity lives here: the role grants everything the
// authenticated tier grants, plus the guarded routes.
func RequireRole(role string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !HasRole(r.Context(), role) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
