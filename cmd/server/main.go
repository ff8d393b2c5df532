package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "agrirent-backend/internal/api/http"
	"agrirent-backend/internal/config"
	"agrirent-backend/internal/logger"
	"agrirent-backend/internal/repository/postgres"
	"agrirent-backend/internal/security"
	"agrirent-backend/internal/service"
	"agrirent-backend/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting AgriRent Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	if cfg.Database.ApplySchema {
		if err := postgres.ApplySchema(context.Background(), db); err != nil {
			log.Fatalf("Failed to apply schema: %v", err)
		}
		logger.Info("Database schema applied")
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Storage
	objects, err := storage.New(storage.Config{
		Type:    cfg.Storage.Type,
		Dir:     cfg.Storage.UploadDir,
		BaseURL: cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err, "type", cfg.Storage.Type)
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	logger.Info("Object storage ready", "type", cfg.Storage.Type, "upload_dir", cfg.Storage.UploadDir)

	// Initialize Services
	tokenManager := security.NewTokenManager(cfg.Auth.JWTSecret, cfg.SessionTTL())
	notifier := service.NewNotificationService(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)

	authSvc := service.NewAuthService(store.AccountRepository, store.ProfileRepository, tokenManager)
	catalogSvc := service.NewCatalogService(store.EquipmentRepository, objects, cfg.Storage.AllowedTypes, cfg.MaxUploadBytes())
	bookingSvc := service.NewBookingService(store.BookingRepository, store.EquipmentRepository, store.ProfileRepository, notifier)
	dashboardSvc := service.NewDashboardService(store.ProfileRepository, store.EquipmentRepository, store.BookingRepository)
	reportSvc := service.NewReportService(store.BookingRepository)

	if cfg.Keys.Service == "" {
		logger.Warn("No service key configured; /service endpoints other than health are disabled")
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Auth:           authSvc,
		Catalog:        catalogSvc,
		Bookings:       bookingSvc,
		Dashboards:     dashboardSvc,
		Reports:        reportSvc,
		Store:          objects,
		DB:             store,
		CookieName:     cfg.Auth.CookieName,
		CookieSecure:   cfg.Auth.CookieSecure,
		AnonKey:        cfg.Keys.Anon,
		ServiceKey:     cfg.Keys.Service,
		MaxUploadBytes: cfg.MaxUploadBytes(),
	})

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
