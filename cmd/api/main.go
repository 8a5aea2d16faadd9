package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hacker123-star/k-learnstudio2/internal/api"
	"github.com/hacker123-star/k-learnstudio2/internal/core/ports"
	"github.com/hacker123-star/k-learnstudio2/internal/core/service"
	"github.com/hacker123-star/k-learnstudio2/internal/infrastructure/config"
	mongodb "github.com/hacker123-star/k-learnstudio2/internal/infrastructure/db/mongo"
	redisdb "github.com/hacker123-star/k-learnstudio2/internal/infrastructure/db/redis"
	"github.com/hacker123-star/k-learnstudio2/internal/infrastructure/mail"
	"github.com/hacker123-star/k-learnstudio2/internal/infrastructure/storage"
	"github.com/hacker123-star/k-learnstudio2/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet.
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Service: "klearnstudio-api",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	// --- External collaborators ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	media, err := storage.NewMediaStore(storage.Config{URL: cfg.Cloudinary.URL, Folder: cfg.Cloudinary.Folder})
	if err != nil {
		log.Fatal().Err(err).Msg("media store init failed")
	}

	var mailer ports.Mailer = mail.NewConsoleMailer(log)
	if cfg.SendGrid.APIKey != "" {
		mailer = mail.NewSendGridMailer(cfg.SendGrid.APIKey, cfg.SendGrid.AppName, cfg.SendGrid.FromEmail, cfg.SendGrid.LoginURL)
	}

	// --- Repositories ---
	students := mongodb.NewStudentRepository(db)
	tutors := mongodb.NewTutorRepository(db)
	admins := mongodb.NewAdminRepository(db)

	// Unique indexes are the actual uniqueness guarantee for the identity
	// namespace; the service-level check is a pre-flight only.
	if err := mongodb.EnsureIndexes(ctx, students, tutors, admins); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Services ---
	registry := service.NewRegistryService(students, tutors)
	throttle := redisdb.NewLoginThrottle(rdb, cfg.Throttle.MaxAttempts, cfg.Throttle.Window)
	authService := service.NewAuthService(students, tutors, admins, registry, media, throttle, cfg.JWTSecret, cfg.TokenTTL, log)
	intakeService := service.NewIntakeService(tutors, registry, media, log)
	reviewService := service.NewReviewService(tutors, mailer, log)
	profileService := service.NewProfileService(students, tutors, log)

	e := api.NewRouter(api.Dependencies{
		Auth:      authService,
		Intake:    intakeService,
		Review:    reviewService,
		Profile:   profileService,
		Mongo:     db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
