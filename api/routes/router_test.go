package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/parksense/parksense-backend/api/controllers"
	authsvc "github.com/parksense/parksense-backend/internal/auth"
	"github.com/parksense/parksense-backend/internal/cameras"
	"github.com/parksense/parksense-backend/internal/spaces"
	"github.com/parksense/parksense-backend/internal/users"
	"github.com/parksense/parksense-backend/internal/vehicles"
	"github.com/parksense/parksense-backend/internal/violations"
	"github.com/parksense/parksense-backend/internal/zones"
	"github.com/parksense/parksense-backend/pkg/config"
	"github.com/parksense/parksense-backend/pkg/db/models"
	"github.com/parksense/parksense-backend/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	router   http.Handler
	userRepo *users.Repo
	authSvc  *authsvc.Service
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "parksense", ExpirationMinutes: 60},
		Password: config.PasswordConfig{
			ArgonMemoryKB:    8,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     8,
			ArgonKeyLen:      16,
		},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Zone{}, &models.Camera{},
		&models.ParkingSpace{}, &models.Vehicle{}, &models.Violation{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := testConfig()
	userRepo := users.NewRepo(db)
	authService := authsvc.NewService(userRepo, cfg.JWT, cfg.Password)

	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
	router := NewRouter(cfg, logg, Services{
		Auth:       authService,
		Users:      users.NewService(userRepo),
		Principals: userRepo,
		Zones:      zones.NewService(db),
		Cameras:    cameras.NewService(db),
		Spaces:     spaces.NewService(db),
		Vehicles:   vehicles.NewService(db),
		Violations: violations.NewService(db),
	}, Dependencies{
		Pingers: map[string]controllers.Pinger{},
	})

	return &testEnv{router: router, userRepo: userRepo, authSvc: authService}
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

func decodeData(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body %q: %v", resp.Body.String(), err)
	}
	return envelope.Data
}

func (e *testEnv) registerAndLogin(t *testing.T, email, password string, admin bool) string {
	t.Helper()
	ctx := context.Background()

	user, err := e.authSvc.Register(ctx, authsvc.RegisterInput{Email: email, Password: password})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	if admin {
		roles := []string{"public_user", "admin"}
		if _, err := users.NewService(e.userRepo).Patch(ctx, user.ID.String(), users.PatchInput{Roles: &roles}); err != nil {
			t.Fatalf("grant admin: %v", err)
		}
	}

	token, err := e.authSvc.Login(ctx, authsvc.LoginInput{Email: email, Password: password})
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	return token.AccessToken
}

func TestHealthAlwaysServes(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/health", "", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRegisterAndLoginOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/v1/auth/register", "", `{"email":"ops@example.com","password":"correct-horse"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("register: expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if strings.Contains(resp.Body.String(), "correct-horse") {
		t.Fatal("response leaked the password")
	}
	if strings.Contains(resp.Body.String(), "password_hash") {
		t.Fatal("response leaked the password hash")
	}

	resp = env.do(t, http.MethodPost, "/api/v1/auth/register", "", `{"email":"ops@example.com","password":"other-pass-123"}`)
	if resp.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409 got %d", resp.Code)
	}

	resp = env.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"email":"ops@example.com","password":"correct-horse"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("login: expected 200 got %d", resp.Code)
	}
	data := decodeData(t, resp)
	if data["token_type"] != "bearer" {
		t.Fatalf("expected bearer token type, got %v", data["token_type"])
	}
	if data["access_token"] == "" {
		t.Fatal("expected access token")
	}

	resp = env.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"email":"ops@example.com","password":"wrong"}`)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401 got %d", resp.Code)
	}
}

func TestResourceRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/api/v1/zones", "", "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestZoneLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	userToken := env.registerAndLogin(t, "user@example.com", "user-password", false)
	adminToken := env.registerAndLogin(t, "admin@example.com", "admin-password", true)

	resp := env.do(t, http.MethodPost, "/api/v1/zones", userToken, `{"name":"downtown","boundaries":{"type":"Polygon"}}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	id, _ := decodeData(t, resp)["id"].(string)
	if id == "" {
		t.Fatal("expected server-assigned id")
	}

	resp = env.do(t, http.MethodGet, "/api/v1/zones?name=downtown", userToken, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("list: expected 200 got %d", resp.Code)
	}
	page := decodeData(t, resp)
	if total, _ := page["total"].(float64); total != 1 {
		t.Fatalf("expected total 1 got %v", page["total"])
	}

	resp = env.do(t, http.MethodPut, "/api/v1/zones/"+id, userToken, `{"name":"midtown","boundaries":{"type":"Polygon"}}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("replace: expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if decodeData(t, resp)["name"] != "midtown" {
		t.Fatal("replace did not apply")
	}

	resp = env.do(t, http.MethodGet, "/api/v1/zones/not-a-uuid", userToken, "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("malformed id: expected 404 got %d", resp.Code)
	}

	resp = env.do(t, http.MethodDelete, "/api/v1/zones/"+id, userToken, "")
	if resp.Code != http.StatusForbidden {
		t.Fatalf("delete without admin: expected 403 got %d", resp.Code)
	}

	resp = env.do(t, http.MethodDelete, "/api/v1/zones/"+id, adminToken, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("admin delete: expected 200 got %d", resp.Code)
	}

	resp = env.do(t, http.MethodDelete, "/api/v1/zones/"+id, adminToken, "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404 got %d", resp.Code)
	}

	resp = env.do(t, http.MethodGet, "/api/v1/zones/"+id, userToken, "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404 got %d", resp.Code)
	}
}

func TestBulkCreateRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	userToken := env.registerAndLogin(t, "user@example.com", "user-password", false)
	adminToken := env.registerAndLogin(t, "admin@example.com", "admin-password", true)

	body := `[{"name":"a","boundaries":{}},{"name":"b","boundaries":{}}]`

	resp := env.do(t, http.MethodPost, "/api/v1/zones/bulk", userToken, body)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("bulk as user: expected 403 got %d", resp.Code)
	}

	resp = env.do(t, http.MethodPost, "/api/v1/zones/bulk", adminToken, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("bulk as admin: expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCreateRejectsInvalidBody(t *testing.T) {
	env := newTestEnv(t)
	userToken := env.registerAndLogin(t, "user@example.com", "user-password", false)

	resp := env.do(t, http.MethodPost, "/api/v1/zones", userToken, `{"boundaries":{}}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("missing name: expected 400 got %d", resp.Code)
	}

	resp = env.do(t, http.MethodPost, "/api/v1/zones", userToken, `{`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("malformed json: expected 400 got %d", resp.Code)
	}
}

func TestUserAdministrationRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	userToken := env.registerAndLogin(t, "user@example.com", "user-password", false)
	adminToken := env.registerAndLogin(t, "admin@example.com", "admin-password", true)

	resp := env.do(t, http.MethodGet, "/api/v1/auth/users", userToken, "")
	if resp.Code != http.StatusForbidden {
		t.Fatalf("list as user: expected 403 got %d", resp.Code)
	}

	resp = env.do(t, http.MethodGet, "/api/v1/auth/users?email=user@example.com", adminToken, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("list as admin: expected 200 got %d", resp.Code)
	}
	page := decodeData(t, resp)
	if total, _ := page["total"].(float64); total != 1 {
		t.Fatalf("expected total 1 got %v", page["total"])
	}
}

func TestUserListSupportsSorting(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "later@example.com", "user-password", false)
	adminToken := env.registerAndLogin(t, "admin@example.com", "admin-password", true)

	resp := env.do(t, http.MethodGet, "/api/v1/auth/users?sort_by=email&order=1", adminToken, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("sorted list: expected 200 got %d", resp.Code)
	}
	page := decodeData(t, resp)
	items, _ := page["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 accounts got %d", len(items))
	}
	first, _ := items[0].(map[string]any)
	if first["email"] != "admin@example.com" {
		t.Fatalf("order=1 sort_by=email should list admin@example.com first, got %v", first["email"])
	}

	resp = env.do(t, http.MethodGet, "/api/v1/auth/users?sort_by=email&order=0", adminToken, "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("order=0: expected 400 got %d", resp.Code)
	}
}
