package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/aromabase/aromabase/config"
	"github.com/aromabase/aromabase/internal/data"
	"github.com/aromabase/aromabase/internal/service"
)

// ServiceDeps contains the dependencies needed to construct the services.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// ServiceContainer holds the constructed service layer.
type ServiceContainer struct {
	Auth        *service.AuthService
	Users       *service.UserService
	Perfumes    *service.PerfumeService
	Brands      *service.BrandService
	Notes       *service.NoteService
	Submissions *service.SubmissionService
	Dashboard   *service.DashboardService
}

// NewServices wires repositories and services from the shared dependencies.
// A missing auth service is a startup failure: the session resolver and auth
// handlers dereference it on the first request carrying a session cookie, so
// running without one would turn every sign-in into a panic.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	authService := BuildAuthService(AuthConfig{
		Auth:        deps.Config.Auth,
		RedisClient: deps.RedisClient,
		Logger:      deps.Logger,
	})
	if authService == nil {
		return ServiceContainer{}, fmt.Errorf("auth service not configured: check AUTH_MODE (%q), redis connectivity, and the mode's required settings", deps.Config.Auth.Mode)
	}

	userRepo := data.NewUserRepo(deps.DB)
	brandRepo := data.NewBrandRepo(deps.DB)
	noteRepo := data.NewNoteRepo(deps.DB)
	perfumeRepo := data.NewPerfumeRepo(deps.DB)
	submissionRepo := data.NewSubmissionRepo(deps.DB)

	return ServiceContainer{
		Auth: authService,
		Users:    service.NewUserService(service.UserServiceOptions{UserRepo: userRepo}),
		Brands:   service.NewBrandService(service.BrandServiceOptions{BrandRepo: brandRepo}),
		Notes:    service.NewNoteService(service.NoteServiceOptions{NoteRepo: noteRepo}),
		Perfumes: service.NewPerfumeService(service.PerfumeServiceOptions{
			PerfumeRepo: perfumeRepo,
			BrandRepo:   brandRepo,
			NoteRepo:    noteRepo,
		}),
		Submissions: service.NewSubmissionService(service.SubmissionServiceOptions{
			SubmissionRepo: submissionRepo,
			PerfumeRepo:    perfumeRepo,
			BrandRepo:      brandRepo,
			NoteRepo:       noteRepo,
		}),
		Dashboard: service.NewDashboardService(service.DashboardServiceOptions{
			PerfumeRepo:    perfumeRepo,
			SubmissionRepo: submissionRepo,
		}),
	}, nil
}
