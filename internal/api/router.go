package api

import (
	"net/http"
	"time"

	"dsa_arena/internal/api/handler"
	"dsa_arena/internal/api/middleware"
	"dsa_arena/internal/app/service"
	"dsa_arena/internal/common/security"
	"dsa_arena/internal/platform/logger"
	"dsa_arena/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies is everything the HTTP layer needs from main.
type Dependencies struct {
	Log     *logger.Logger
	Metrics *metrics.Metrics
	Tokens  *security.TokenIssuer
	DB      handler.Pinger
	// AuthLimiter throttles signup and login. Nil disables throttling.
	AuthLimiter middleware.Limiter

	AuthService      *service.AuthService
	UserService      *service.UserService
	GroupService     *service.GroupService
	MemberService    *service.MemberService
	ProblemService   *service.ProblemService
	ProgressService  *service.ProgressService
	DashboardService *service.DashboardService
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Method(http.MethodGet, "/health", handler.NewHealthHandler(deps.DB, deps.Log))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{}))

	authHandler := handler.NewAuthHandler(deps.AuthService, deps.Log)
	groupHandler := handler.NewGroupHandler(deps.GroupService, deps.Log)
	memberHandler := handler.NewMemberHandler(deps.MemberService, deps.Log)
	problemHandler := handler.NewProblemHandler(deps.ProblemService, deps.Log)
	progressHandler := handler.NewProgressHandler(deps.ProgressService, deps.Log)
	userHandler := handler.NewUserHandler(deps.UserService, deps.DashboardService, deps.Log)

	r.Route("/api", func(api chi.Router) {
		// Verifier only parses the bearer token; Authenticator enforces it.
		api.Use(jwtauth.Verifier(deps.Tokens.Auth))

		api.Route("/auth", func(ar chi.Router) {
			ar.Group(func(public chi.Router) {
				if deps.AuthLimiter != nil {
					public.Use(middleware.RateLimit(deps.AuthLimiter, "auth", deps.Metrics, deps.Log))
				}
				authHandler.RegisterRoutes(public)
			})
			ar.Group(func(protected chi.Router) {
				protected.Use(middleware.Authenticator)
				authHandler.RegisterProtectedRoutes(protected)
			})
		})

		api.Group(func(protected chi.Router) {
			protected.Use(middleware.Authenticator)

			protected.Route("/groups", func(gr chi.Router) {
				groupHandler.RegisterRoutes(gr)
				gr.Route("/{groupID}/members", memberHandler.RegisterRoutes)
				gr.Route("/{groupID}/problems", problemHandler.RegisterGroupRoutes)
			})
			protected.Route("/problems", problemHandler.RegisterRoutes)
			protected.Route("/progress", progressHandler.RegisterRoutes)
			protected.Route("/dashboard", userHandler.RegisterDashboardRoutes)
			protected.Route("/user", userHandler.RegisterRoutes)
		})
	})

	return r
}
