package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shsyteam/shsy-staking-backend/api/routes"
	"github.com/shsyteam/shsy-staking-backend/internal/config"
	"github.com/shsyteam/shsy-staking-backend/internal/handlers"
	"github.com/shsyteam/shsy-staking-backend/internal/services"
	mongorepo "github.com/shsyteam/shsy-staking-backend/internal/repositories/mongodb"
	"github.com/shsyteam/shsy-staking-backend/pkg/mongodb"
	"github.com/shsyteam/shsy-staking-backend/pkg/tokengateway"
)

func main() {
	// Load .env if present; real deployments rely on the environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogger(cfg.LogLevel)

	// Connect to MongoDB
	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	userRepo := mongorepo.NewUserRepository(db)
	lockedFundRepo := mongorepo.NewLockedFundRepository(db)
	lockSettingRepo := mongorepo.NewLockSettingRepository(db)
	rewardSettingRepo := mongorepo.NewRewardSettingRepository(db)
	adminUserRepo := mongorepo.NewAdminUserRepository(db)
	activityRepo := mongorepo.NewActivityRepository(db)

	// Services
	rewardLocker := services.NewRewardLockerService(lockSettingRepo, lockedFundRepo, cfg.Lock)
	userService := services.NewUserService(userRepo)
	eligibilityService := services.NewEligibilityService(activityRepo)
	settingsService := services.NewSettingsService(lockSettingRepo, rewardSettingRepo)
	authService := services.NewAuthService(adminUserRepo, cfg)
	challengeManager := services.NewChallengeManager(rewardSettingRepo, cfg.Challenge)

	gateway := tokengateway.NewGateway(cfg)

	// Start the challenge windows and the expiry scan
	if err := challengeManager.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start challenge manager: %v", err)
	}

	// Handlers
	handlerDeps := routes.HandlerDependencies{
		AuthHandler:       handlers.NewAuthHandler(authService),
		ChallengeHandler:  handlers.NewChallengeHandler(challengeManager, userService, eligibilityService, rewardLocker, gateway),
		LockedFundHandler: handlers.NewLockedFundHandler(rewardLocker, gateway),
		SettingsHandler:   handlers.NewSettingsHandler(settingsService, challengeManager),
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}
	if err := challengeManager.Stop(); err != nil {
		slog.Error("Error stopping challenge manager", "error", err)
	}

	slog.Info("Server exiting")
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}
