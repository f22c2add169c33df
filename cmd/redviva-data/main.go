package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"redviva-data/internal/auth"
	"redviva-data/internal/config"
	httpapi "redviva-data/internal/http"
	"redviva-data/internal/logger"
	"redviva-data/internal/repository"
	"redviva-data/internal/service"
	"redviva-data/internal/store"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "redviva-data")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	kv := store.NewRedisKV(redisClient)

	db, err := repository.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	profilesRepo := repository.NewPostgresProfilesRepository(db)
	recipientsRepo := repository.NewPostgresRecipientsRepository(db)
	reportsRepo := repository.NewPostgresReportsRepository(db)
	alertsRepo := repository.NewPostgresAlertsRepository(db)
	casesRepo := repository.NewPostgresCasesRepository(db)
	auditRepo := repository.NewPostgresAuditRepository(db)

	authClient := auth.NewClient(cfg.Auth, log)
	verifier := auth.NewTokenVerifier(cfg.Auth.JWTSecret)

	drafts := service.NewDraftService(kv, log)
	submission := service.NewSubmissionService(reportsRepo, recipientsRepo, auditRepo, drafts, kv, log)
	alerts := service.NewAlertService(alertsRepo, auditRepo, kv, log)
	cases := service.NewCaseService(casesRepo, recipientsRepo, auditRepo, log)

	gate := httpapi.NewSessionGate(verifier, authClient, profilesRepo, log)

	router := httpapi.NewRouter(log)
	router.RegisterAuthRoutes(httpapi.NewAuthHandler(authClient, log))
	router.RegisterCareRoutes(httpapi.NewCareHandler(recipientsRepo, drafts, submission, alerts, log), gate)
	router.RegisterProRoutes(httpapi.NewProHandler(reportsRepo, recipientsRepo, auditRepo, alerts, cases, log), gate)

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			log.Error("HTTP server stopped", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Stop(shutdownCtx)
	_ = redisClient.Close()
	_ = db.Close()
}
