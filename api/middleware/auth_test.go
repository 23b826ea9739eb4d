package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	pkgAuth "github.com/parksense/parksense-backend/pkg/auth"
	"github.com/parksense/parksense-backend/pkg/config"
	"github.com/parksense/parksense-backend/pkg/db/models"
	dbtypes "github.com/parksense/parksense-backend/pkg/db/types"
	pkgerrors "github.com/parksense/parksense-backend/pkg/errors"
)

type stubPrincipalSource struct {
	user *models.User
	err  error
}

func (s stubPrincipalSource) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func testJWT() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "parksense", ExpirationMinutes: 60}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func mintToken(t *testing.T, cfg config.JWTConfig, userID uuid.UUID) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: userID,
		Roles:  []string{"public_user"},
		Email:  "user@example.com",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthRejectsMissingToken(t *testing.T) {
	handler := Auth(testJWT(), stubPrincipalSource{}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	handler := Auth(testJWT(), stubPrincipalSource{}, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsUnknownAccount(t *testing.T) {
	source := stubPrincipalSource{err: pkgerrors.New(pkgerrors.CodeNotFound, "account not found")}
	handler := Auth(testJWT(), source, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, testJWT(), uuid.New()))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsDeactivatedAccount(t *testing.T) {
	id := uuid.New()
	source := stubPrincipalSource{user: &models.User{ID: id, IsActive: false}}
	handler := Auth(testJWT(), source, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, testJWT(), id))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthSeedsPrincipalFromStoredAccount(t *testing.T) {
	id := uuid.New()
	source := stubPrincipalSource{user: &models.User{
		ID:       id,
		Email:    "stored@example.com",
		Roles:    dbtypes.StringList{"public_user", "admin"},
		IsActive: true,
	}}

	var captured struct {
		user  string
		roles []string
		email string
	}
	handler := Auth(testJWT(), source, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.user = UserIDFromContext(r.Context())
		captured.roles = RolesFromContext(r.Context())
		captured.email = EmailFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, testJWT(), id))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured.user != id.String() {
		t.Fatalf("expected user %s got %s", id, captured.user)
	}
	if len(captured.roles) != 2 || captured.roles[1] != "admin" {
		t.Fatalf("expected stored roles, got %v", captured.roles)
	}
	if captured.email != "stored@example.com" {
		t.Fatalf("expected stored email got %s", captured.email)
	}
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole("admin", nil)(okHandler())

	ctx := WithPrincipal(context.Background(), uuid.NewString(), []string{"public_user"}, "")
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for missing role got %d", resp.Code)
	}

	ctx = WithPrincipal(context.Background(), uuid.NewString(), []string{"public_user", "admin"}, "")
	req = httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}
