package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/aromabase/aromabase/internal/domain/auth"
	"github.com/aromabase/aromabase/internal/gate"
	"github.com/aromabase/aromabase/internal/ports"
	"github.com/aromabase/aromabase/internal/service"
)

// roleGuard wraps a handler with a role requirement.
type roleGuard func(http.HandlerFunc) http.HandlerFunc

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth        *service.AuthService
	Users       *service.UserService
	Perfumes    *service.PerfumeService
	Brands      *service.BrandService
	Notes       *service.NoteService
	Submissions *service.SubmissionService
	Dashboard   *service.DashboardService

	Gate    *gate.Gate
	Roles   ports.RoleMapper
	Cookies CookieSettings

	// CallbackURL is the absolute OAuth callback URL handed to the provider.
	CallbackURL string

	Logger *slog.Logger
}

// NewRouter creates the HTTP handler tree. Every request passes through the
// access gate before reaching a route; the gate skips its own exempt paths.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	authHandler := NewAuthHandler(AuthHandlerOptions{
		Auth:        services.Auth,
		Users:       services.Users,
		Roles:       services.Roles,
		Cookies:     services.Cookies,
		CallbackURL: services.CallbackURL,
		Logger:      logger,
	})
	perfumeHandler := NewPerfumeHandler(PerfumeHandlerOptions{
		Perfumes: services.Perfumes,
		Users:    services.Users,
		Logger:   logger,
	})
	brandHandler := NewBrandHandler(BrandHandlerOptions{Brands: services.Brands, Logger: logger})
	noteHandler := NewNoteHandler(NoteHandlerOptions{Notes: services.Notes, Logger: logger})
	submissionHandler := NewSubmissionHandler(SubmissionHandlerOptions{
		Submissions: services.Submissions,
		Users:       services.Users,
		Logger:      logger,
	})
	userHandler := NewUserHandler(UserHandlerOptions{Users: services.Users, Logger: logger})
	dashboardHandler := NewDashboardHandler(DashboardHandlerOptions{
		Dashboard: services.Dashboard,
		Users:     services.Users,
		Logger:    logger,
	})

	// Operation-level role requirements. The gate's path-prefix table covers
	// the page sections; these guards enforce who may mutate catalog data.
	team := roleGuard(RequireRole(services.Roles, domainauth.RoleTeamMember, domainauth.RoleSuperAdmin))
	admin := roleGuard(RequireRole(services.Roles, domainauth.RoleSuperAdmin))

	registerAuthRoutes(mux, authHandler)
	registerPerfumeRoutes(mux, perfumeHandler, team, admin)
	registerBrandRoutes(mux, brandHandler, team)
	registerNoteRoutes(mux, noteHandler, team)
	registerSubmissionRoutes(mux, submissionHandler, team, admin)
	registerUserRoutes(mux, userHandler, admin)
	registerDashboardRoutes(mux, dashboardHandler, team)
	registerPageRoutes(mux, NewPageHandler())

	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	// The gate fronts every route; logging and panic recovery wrap the whole
	// tree in bootstrap.
	resolver := NewSessionResolver(services.Auth, services.Cookies)
	return gate.Middleware(gate.MiddlewareOptions{
		Gate:     services.Gate,
		Resolver: resolver,
		Roles:    services.Roles,
		Logger:   logger,
	})(mux)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandler) {
	mux.HandleFunc("GET /auth/login", h.Login)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
}

func registerPerfumeRoutes(mux *http.ServeMux, h *PerfumeHandler, team, admin roleGuard) {
	// Contributors submit perfumes directly; edits to the live catalog,
	// review decisions, and deletion require elevated roles.
	registerCRUD(mux, crudRoutes{
		Base:    "/api/perfumes",
		Create:  h.Create,
		List:    h.List,
		GetByID: h.Get,
		Update:  team(h.Update),
		Delete:  admin(h.Delete),
	})
	mux.HandleFunc("POST /api/perfumes/{id}/review", team(h.Review))
}

func registerBrandRoutes(mux *http.ServeMux, h *BrandHandler, team roleGuard) {
	// Contributor-proposed brands arrive via the submission queue.
	registerCRUD(mux, crudRoutes{
		Base:    "/api/brands",
		Create:  team(h.Create),
		List:    h.List,
		GetByID: h.Get,
		Update:  team(h.Update),
		Delete:  team(h.Delete),
	})
}

func registerNoteRoutes(mux *http.ServeMux, h *NoteHandler, team roleGuard) {
	registerCRUD(mux, crudRoutes{
		Base:    "/api/notes",
		Create:  team(h.Create),
		List:    h.List,
		GetByID: h.Get,
		Update:  team(h.Update),
		Delete:  team(h.Delete),
	})
}

func registerSubmissionRoutes(mux *http.ServeMux, h *SubmissionHandler, team, admin roleGuard) {
	registerCRUD(mux, crudRoutes{
		Base:    "/api/submissions",
		Create:  h.Create,
		List:    h.List,
		GetByID: h.Get,
		Update:  nil,
		Delete:  admin(h.Delete),
	})
	mux.HandleFunc("POST /api/submissions/{id}/review", team(h.Review))
}

func registerUserRoutes(mux *http.ServeMux, h *UserHandler, admin roleGuard) {
	mux.HandleFunc("GET /api/users", admin(h.List))
	mux.HandleFunc("GET /api/users/{id}", admin(h.Get))
	mux.HandleFunc("PATCH /api/users/{id}", admin(h.Update))
	mux.HandleFunc("DELETE /api/users/{id}", admin(h.Delete))
}

func registerDashboardRoutes(mux *http.ServeMux, h *DashboardHandler, team roleGuard) {
	mux.HandleFunc("GET /api/dashboard/admin", team(h.AdminStats))
	mux.HandleFunc("GET /api/dashboard/contributor", h.ContributorStats)
}

func registerPageRoutes(mux *http.ServeMux, h *PageHandler) {
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /login", h.Login)
	mux.HandleFunc("GET /admin/dashboard", h.AdminDashboard)
	mux.HandleFunc("GET /contribute/dashboard", h.ContributorDashboard)
}

// crudRoutes registers standard CRUD routes for a resource base path. A nil
// handler skips that verb.
type crudRoutes struct {
	Base    string
	Create  http.HandlerFunc
	List    http.HandlerFunc
	GetByID http.HandlerFunc
	Update  http.HandlerFunc
	Delete  http.HandlerFunc
}

func registerCRUD(mux *http.ServeMux, cfg crudRoutes) {
	if cfg.Base == "" {
		panic("registerCRUD: Base must not be empty")
	}
	if cfg.Create != nil {
		mux.Handle("POST "+cfg.Base, cfg.Create)
	}
	if cfg.List != nil {
		mux.Handle("GET "+cfg.Base, cfg.List)
	}
	if cfg.GetByID != nil {
		mux.Handle("GET "+cfg.Base+"/{id}", cfg.GetByID)
	}
	if cfg.Update != nil {
		mux.Handle("PATCH "+cfg.Base+"/{id}", cfg.Update)
	}
	if cfg.Delete != nil {
		mux.Handle("DELETE "+cfg.Base+"/{id}", cfg.Delete)
	}
}
