package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"ats/internal/app"
	"ats/internal/config"
	"ats/internal/database"
	apphttp "ats/internal/http"
	"ats/internal/http/handlers"
	"ats/internal/http/metrics"
	httpmw "ats/internal/http/middleware"
	"ats/internal/http/response"
	"ats/internal/observability"
	"ats/internal/repository/postgres"
	"ats/internal/security"
	"ats/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := observability.NewLogger()
	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := postgres.NewUserRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	resumeRepo := postgres.NewResumeRepository(db)

	store, err := storage.NewDiskStore(cfg.ResumeUploadDir)
	if err != nil {
		log.Fatal(err)
	}

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)
	loginGuard := security.NewLoginGuard(cfg.LoginMaxAttempts, cfg.LoginLockout)

	authService := app.NewAuthService(userRepo, loginGuard, jwtProvider, logger, cfg.AccessTokenTTL)
	userService := app.NewUserService(userRepo)
	jobService := app.NewJobService(jobRepo, userRepo, applicationRepo, resumeRepo, logger)
	applicationService := app.NewApplicationService(applicationRepo, jobRepo, userRepo, resumeRepo, store, logger)
	resumeService := app.NewResumeService(resumeRepo, applicationRepo, jobRepo, store)
	adminService := app.NewAdminService(userRepo, jobRepo)

	var rateLimiter httpmw.Limiter
	if cfg.RedisAddr != "" {
		rateLimiter = httpmw.NewRedisLimiter(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	} else {
		rateLimiter = httpmw.NewRateLimiter()
	}
	authHandler := handlers.NewAuthHandler(authService, rateLimiter)
	jobHandler := handlers.NewJobHandler(jobService)
	applicationHandler := handlers.NewApplicationHandler(applicationService, rateLimiter)
	resumeHandler := handlers.NewResumeHandler(resumeService)
	profileHandler := handlers.NewProfileHandler(userService)
	adminHandler := handlers.NewAdminHandler(adminService)
	middleware := httpmw.NewAuthMiddleware(jwtProvider)

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:        authHandler,
		JobHandler:         jobHandler,
		ApplicationHandler: applicationHandler,
		ResumeHandler:      resumeHandler,
		ProfileHandler:     profileHandler,
		AdminHandler:       adminHandler,
		MetricsHandler:     handlers.NewMetricsHandler(collector),
		AuthMiddleware:     middleware,
		Metrics:            collector,
		RequestTimeout:     cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
