package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shsyteam/shsy-staking-backend/internal/config"
	"github.com/shsyteam/shsy-staking-backend/internal/handlers"
	"github.com/shsyteam/shsy-staking-backend/internal/middleware"
)

// HandlerDependencies holds the handlers used by the router
type HandlerDependencies struct {
	AuthHandler       *handlers.AuthHandler
	ChallengeHandler  *handlers.ChallengeHandler
	LockedFundHandler *handlers.LockedFundHandler
	SettingsHandler   *handlers.SettingsHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	// Create router
	router := gin.Default()

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		// Auth routes
		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
		}

		// Challenge routes
		challenges := public.Group("/challenges")
		{
			challenges.GET("/status/:walletAddress", deps.ChallengeHandler.GetChallengeStatus)
			challenges.POST("/claim", deps.ChallengeHandler.ClaimReward)
		}

		// Locked fund routes
		lockedFunds := public.Group("/locked-funds")
		{
			lockedFunds.GET("/:walletAddress", deps.LockedFundHandler.GetLockedFunds)
			lockedFunds.POST("/unlock", deps.LockedFundHandler.UnlockLockedFund)
		}
	}

	// Admin routes
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware(cfg))
	{
		settings := admin.Group("/settings")
		{
			settings.GET("/lock", deps.SettingsHandler.GetLockSettings)
			settings.PUT("/lock", deps.SettingsHandler.UpdateLockSettings)
			settings.GET("/rewards", deps.SettingsHandler.GetRewardSettings)
			settings.PUT("/rewards", deps.SettingsHandler.UpdateRewardSetting)
		}
	}

	return router
}
