package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-records/internal/config"
	"hospital-records/internal/database"
	"hospital-records/internal/handlers"
	"hospital-records/internal/logger"
	"hospital-records/internal/models"
	"hospital-records/internal/repository"
	"hospital-records/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to load config")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	fees, err := models.LoadFeeTable(cfg.FeeTablePath)
	if err != nil {
		logger.WithField("path", cfg.FeeTablePath).WithError(err).Fatal("failed to load fee table")
	}

	repo, err := openRepository(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to open repository")
	}
	defer database.Close()

	svc := service.NewHospitalService(repo, fees)
	router := handlers.NewRouter(cfg, handlers.NewHandler(svc))

	srv := &http.Server{
		Addr:              ":" + cfg.ListenPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.ListenPort).Info("hospital records service listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Error("graceful shutdown failed")
	}
}

// openRepository uses PostgreSQL when POSTGRES_URI is set and memory otherwise.
func openRepository(cfg *config.Config) (repository.Repository, error) {
	if cfg.PostgresURI == "" {
		logger.Log.Warn("POSTGRES_URI not set, records are kept in memory only")
		return repository.NewMemoryRepository(), nil
	}
	if err := database.InitDB(cfg); err != nil {
		return nil, err
	}
	repo := repository.NewGormRepository(database.DB)
	if err := repo.Migrate(); err != nil {
		return nil, err
	}
	return repo, nil
}
