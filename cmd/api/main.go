package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobboard-backend/config"
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/repository/postgres"
	"go-jobboard-backend/internal/repository/s3store"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/database"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/redis"
	"go-jobboard-backend/pkg/security"

	"github.com/go-playground/validator/v10"
)

func main() {
	logger.Init()

	cfg := config.LoadConfig()
	logger.Log.Info("Starting job board backend", "port", cfg.Port)

	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// Redis is optional; the rate limiters fall back to in-memory counters.
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, continuing without it", "error", err)
		} else {
			defer redis.Close()
		}
	}

	cvStore, err := s3store.NewCVStore(context.Background(), s3store.Config{
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Endpoint:  cfg.S3Endpoint,
		URLTTL:    time.Duration(cfg.CVUrlTTLMins) * time.Minute,
	})
	if err != nil {
		logger.Log.Error("Failed to set up CV storage", "error", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	employerRepo := postgres.NewEmployerRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	adminRepo := postgres.NewAdminRepository(dbPool)

	validate := validator.New()
	authUC := usecase.NewAuthUsecase(userRepo, candidateRepo, employerRepo)
	jobUC := usecase.NewJobUsecase(jobRepo, employerRepo, cfg.JobsPerPage)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, cvStore, validate)
	employerUC := usecase.NewEmployerUsecase(employerRepo, jobRepo, validate)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, candidateRepo, cvStore)
	adminUC := usecase.NewAdminUsecase(adminRepo, jobRepo)

	jwksProvider := auth.NewProvider(cfg.JWKSUrl)
	uploadLimiter := security.NewUploadLimiter(cfg.UploadsPerMinute, cfg.UploadsPerDay)

	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		JobUC:         jobUC,
		CandidateUC:   candidateUC,
		EmployerUC:    employerUC,
		ApplicationUC: applicationUC,
		AdminUC:       adminUC,
		UploadLimiter: uploadLimiter,
		JWKSProvider:  jwksProvider,
		Config:        cfg,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
