package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lordiod/NMUstudenthousing/config"
	"github.com/Lordiod/NMUstudenthousing/internal/api"
	"github.com/Lordiod/NMUstudenthousing/internal/auth"
	"github.com/Lordiod/NMUstudenthousing/internal/db"
	"github.com/Lordiod/NMUstudenthousing/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "housing-backend ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	if cfg.Auth.Secret == "" {
		logger.Fatalf("auth.secret must be configured; sessions cannot be signed without it")
	}

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Seed the back-office account
	adminHash, err := auth.HashPassword(cfg.Auth.AdminPassword)
	if err != nil {
		logger.Fatalf("failed to hash admin password: %v", err)
	}
	if err := db.SeedAdmin(gormDB, adminHash); err != nil {
		logger.Fatalf("failed to seed admin user: %v", err)
	}

	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	sessions := auth.NewSessions(cfg.Auth.Secret, time.Duration(cfg.Auth.SessionTTLMinutes)*time.Minute)

	// Initialize router
	router := api.NewRouter(appStore, cfg, sessions)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
