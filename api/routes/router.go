package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/parksense/parksense-backend/api/controllers"
	"github.com/parksense/parksense-backend/api/middleware"
	authsvc "github.com/parksense/parksense-backend/internal/auth"
	"github.com/parksense/parksense-backend/internal/cameras"
	"github.com/parksense/parksense-backend/internal/resource"
	"github.com/parksense/parksense-backend/internal/spaces"
	"github.com/parksense/parksense-backend/internal/users"
	"github.com/parksense/parksense-backend/internal/vehicles"
	"github.com/parksense/parksense-backend/internal/violations"
	"github.com/parksense/parksense-backend/internal/zones"
	"github.com/parksense/parksense-backend/pkg/config"
	"github.com/parksense/parksense-backend/pkg/logger"
	"github.com/parksense/parksense-backend/pkg/metrics"
)

// AdminRole guards the administrative tier: bulk creates, deletes, and
// account management.
const AdminRole = "admin"

// Services bundles everything the router mounts.
type Services struct {
	Auth       *authsvc.Service
	Users      *users.Service
	Principals middleware.PrincipalSource

	Zones      *zones.Service
	Cameras    *cameras.Service
	Spaces     *spaces.Service
	Vehicles   *vehicles.Service
	Violations *violations.Service
}

// Dependencies carries the infrastructure handles the router needs beyond
// the services: health-check pingers, the rate limit store, and metrics.
type Dependencies struct {
	Pingers     map[string]controllers.Pinger
	RateLimiter middleware.RateLimiterStore
	Metrics     *metrics.HTTPMetrics
}

func NewRouter(cfg *config.Config, logg *logger.Logger, svcs Services, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(cfg.CORS),
	)

	authMW := middleware.Auth(cfg.JWT, svcs.Principals, logg)
	adminMW := middleware.RequireRole(AdminRole, logg)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", controllers.HealthLive(cfg))
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Pingers))
	})
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(registerPolicy, deps.RateLimiter, logg)).
				Post("/register", controllers.AuthRegister(svcs.Auth, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, deps.RateLimiter, logg)).
				Post("/login", controllers.AuthLogin(svcs.Auth, logg))

			r.Route("/users", func(r chi.Router) {
				r.Use(authMW, adminMW)
				r.Get("/", controllers.UsersList(svcs.Users, logg))
				r.Patch("/{userId}", controllers.UserPatch(svcs.Users, logg))
			})
		})

		mountResource(r, "/zones", svcs.Zones, authMW, adminMW, logg)
		mountResource(r, "/cameras", svcs.Cameras, authMW, adminMW, logg)
		mountResource(r, "/parking-spaces", svcs.Spaces, authMW, adminMW, logg)
		mountResource(r, "/vehicles", svcs.Vehicles, authMW, adminMW, logg)
		mountResource(r, "/violations", svcs.Violations, authMW, adminMW, logg)
	})

	return r
}

// mountResource wires the uniform lifecycle routes for one kind. Reads,
// creates, and replaces need an authenticated principal; bulk create and
// delete need the admin role on top.
func mountResource[C any, T any](
	r chi.Router,
	path string,
	svc *resource.Service[C, T],
	authMW, adminMW func(http.Handler) http.Handler,
	logg *logger.Logger,
) {
	r.Route(path, func(r chi.Router) {
		r.Use(authMW)
		r.Get("/", controllers.ResourceList(svc, logg))
		r.Post("/", controllers.ResourceCreate(svc, logg))
		r.With(adminMW).Post("/bulk", controllers.ResourceCreateBulk(svc, logg))
		r.Get("/{resourceId}", controllers.ResourceGet(svc, logg))
		r.Put("/{resourceId}", controllers.ResourceReplace(svc, logg))
		r.With(adminMW).Delete("/{resourceId}", controllers.ResourceDelete(svc, logg))
	})
}
