package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dsa_arena/internal/api"
	"dsa_arena/internal/api/middleware"
	"dsa_arena/internal/app/service"
	"dsa_arena/internal/common/security"
	"dsa_arena/internal/domain/access"
	"dsa_arena/internal/domain/repository"
	"dsa_arena/internal/platform/config"
	"dsa_arena/internal/platform/database"
	"dsa_arena/internal/platform/logger"
	"dsa_arena/internal/platform/metrics"
	"dsa_arena/internal/platform/throttle"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("Server exited with error", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx := context.Background()

	// 1. Database and schema
	db, err := database.Connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer database.Close(db, log)

	if err := database.NewMigrator(db).Migrate(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	// 2. Redis-backed auth throttling. The API still serves without it.
	var authLimiter middleware.Limiter
	var rdb *redis.Client
	if cfg.AuthRateLimit > 0 {
		rdb, err = throttle.ConnectRedis(ctx, cfg, log)
		if err != nil {
			log.Warn("Auth rate limiting disabled", "error", err)
		} else {
			authLimiter = throttle.NewFixedWindowLimiter(rdb, "ratelimit", cfg.AuthRateLimit, cfg.AuthRateWindow)
		}
	}
	defer throttle.CloseRedis(rdb, log)

	// 3. Repositories and services
	userRepo := repository.NewPgUserRepository(db)
	groupRepo := repository.NewPgGroupRepository(db)
	problemRepo := repository.NewPgProblemRepository(db)
	progressRepo := repository.NewPgProgressRepository(db)
	statsRepo := repository.NewPgStatsRepository(db)

	checker := access.NewChecker(groupRepo)
	tokens := security.NewTokenIssuer(cfg.JWTKey, cfg.JWTExp)
	m := metrics.New()

	router := api.NewRouter(api.Dependencies{
		Log:              log,
		Metrics:          m,
		Tokens:           tokens,
		DB:               db,
		AuthLimiter:      authLimiter,
		AuthService:      service.NewAuthService(userRepo, tokens, log),
		UserService:      service.NewUserService(userRepo),
		GroupService:     service.NewGroupService(groupRepo, checker, log),
		MemberService:    service.NewMemberService(groupRepo, userRepo, checker, log),
		ProblemService:   service.NewProblemService(problemRepo, checker, log),
		ProgressService:  service.NewProgressService(problemRepo, progressRepo, checker, m),
		DashboardService: service.NewDashboardService(userRepo, statsRepo),
	})

	// 4. HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 65 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("listen on %s: %w", cfg.APIPort, err)
		}
	}()

	select {
	case err := <-serveErr:
		return err
	case <-stop:
	}
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("Server stopped gracefully")
	return nil
}
