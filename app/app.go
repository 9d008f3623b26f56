package app

import (
	"context"
	"fmt"
	"go-voice-api/config"
	"go-voice-api/db"
	"go-voice-api/handler"
	"go-voice-api/logger"
	"go-voice-api/repository"
	"go-voice-api/router"
	"go-voice-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func Run() {
	logger.Init()
	logger.Log.Info("Logger initialized")

	cfg, err := config.Load(".")
	if err != nil {
		logger.Log.Fatalf("Error loading configuration: %v", err)
	}
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect(cfg)
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	migrateConnStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Database.User, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
	if err := db.RunMigrations("file://db/migrations", migrateConnStr); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis(cfg)
	if err != nil {
		logger.Log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	// --- Wiring All Layers Together ---
	// Repositories, services and handlers are constructed here; the auth
	// configuration is injected once and never consulted again at request
	// time.

	userRepo := repository.NewUserRepository(database)
	tokenService := service.NewTokenService(cfg.Auth)
	authService := service.NewAuthService(userRepo, tokenService, cfg.Auth)
	authzService := service.NewAuthzService(authService, cfg.Auth)
	authHandler := handler.NewAuthHandler(authService)

	phoneRepo := repository.NewPhoneRepository(database)
	phoneService := service.NewPhoneService(phoneRepo, redisClient)
	phoneHandler := handler.NewPhoneHandler(phoneService)

	agentRepo := repository.NewAgentRepository(database)
	agentHandler := handler.NewAgentHandler(agentRepo)

	historyRepo := repository.NewHistoryRepository(database)
	historyService := service.NewHistoryService(historyRepo, agentRepo)
	historyHandler := handler.NewHistoryHandler(historyService)

	r := router.NewRouter(authzService, authHandler, phoneHandler, agentHandler, historyHandler)

	// --- Start the Server with Graceful Shutdown ---
	port := cfg.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
