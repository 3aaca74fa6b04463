package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stepik_backend/internal/api"
	"stepik_backend/internal/app/service"
	"stepik_backend/internal/app/session"
	"stepik_backend/internal/common/security"
	"stepik_backend/internal/domain/repository"
	"stepik_backend/internal/platform/cache"
	"stepik_backend/internal/platform/config"
	"stepik_backend/internal/platform/database"
	"stepik_backend/internal/platform/logger"
	"stepik_backend/internal/platform/observability"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log.Info("configuration loaded", "env", cfg.AppEnv, "port", cfg.APIPort)

	shutdownTracing := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		Enabled:     cfg.OtelEnabled,
		ServiceName: cfg.OtelServiceName,
		Environment: cfg.AppEnv,
		Version:     cfg.ServiceVersion,
		Endpoint:    cfg.OtelEndpoint,
		Insecure:    cfg.OtelInsecure,
		SampleRatio: cfg.OtelSampleRatio,
	})

	// 2. Initialize JWT
	security.InitJWT()

	// 3. Initialize Database
	if err := database.Connect(log); err != nil {
		log.Fatal("database connection failed", "error", err)
	}
	defer database.Close(log)
	if cfg.DBAutoMigrate {
		if err := database.Migrate(context.Background(), database.DB); err != nil {
			log.Fatal("schema migration failed", "error", err)
		}
		log.Info("schema applied")
	}

	// 4. Initialize Redis
	if err := cache.ConnectRedis(log); err != nil {
		log.Fatal("redis connection failed", "error", err)
	}
	defer cache.CloseRedis(log)

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	profileRepo := repository.NewPgProfileRepository(database.DB)
	courseRepo := repository.NewPgCourseRepository(database.DB)
	enrollmentRepo := repository.NewPgEnrollmentRepository(database.DB)
	moduleRepo := repository.NewPgModuleRepository(database.DB)
	taskRepo := repository.NewPgTaskRepository(database.DB)
	submissionRepo := repository.NewPgSubmissionRepository(database.DB)

	// 6. Initialize Services
	refreshTokens := session.NewRefreshStore(cache.RDB, cfg.RedisKeyPrefix, cfg.RefreshTokenTTL)
	services := api.Services{
		Auth:        service.NewAuthService(userRepo, refreshTokens, log),
		Users:       service.NewUserService(userRepo, profileRepo, log),
		Courses:     service.NewCourseService(courseRepo, moduleRepo, taskRepo, enrollmentRepo, log),
		Enrollments: service.NewEnrollmentService(courseRepo, enrollmentRepo, log),
		Modules:     service.NewModuleService(courseRepo, moduleRepo, taskRepo, log),
		Tasks:       service.NewTaskService(courseRepo, moduleRepo, taskRepo, log),
		Submissions: service.NewSubmissionService(submissionRepo, enrollmentRepo, courseRepo, moduleRepo, taskRepo, log),
	}

	// 7. Initialize Router & HTTP Server
	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      api.NewRouter(services, log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info("server starting", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("could not listen", "port", cfg.APIPort, "error", err)
		}
	}()

	<-stop

	log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn("tracer shutdown failed", "error", err)
	}
	log.Info("server stopped gracefully")
}
