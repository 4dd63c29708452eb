package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/habitfam/family-habits-api/internal/config"
	"github.com/habitfam/family-habits-api/internal/database"
	"github.com/habitfam/family-habits-api/internal/handlers"
	"github.com/habitfam/family-habits-api/internal/identity"
	"github.com/habitfam/family-habits-api/internal/middleware"
	"github.com/habitfam/family-habits-api/internal/repository"
	"github.com/habitfam/family-habits-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Identity verifier (external provider's tokens)
	var verifier identity.Verifier
	if cfg.AuthBypass {
		log.Println("WARNING: AUTH_BYPASS enabled, accepting any credential")
		verifier = identity.BypassVerifier{}
	} else {
		v, err := identity.NewJWTVerifier(cfg.JWTSecret)
		if err != nil {
			log.Fatalf("Failed to configure identity verifier: %v", err)
		}
		verifier = v
	}

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	completionRepo := repository.NewCompletionRepository(db)
	rewardRepo := repository.NewRewardRepository(db)

	// Services
	authService := services.NewAuthService(userRepo)
	familyService := services.NewFamilyService(familyRepo, userRepo)
	habitService := services.NewHabitService(habitRepo, userRepo)
	completionService := services.NewCompletionService(habitRepo, completionRepo, userRepo)
	rewardService := services.NewRewardService(rewardRepo, userRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	familyHandler := handlers.NewFamilyHandler(familyService)
	habitHandler := handlers.NewHabitHandler(habitService, completionService)
	rewardHandler := handlers.NewRewardHandler(rewardService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Family Habits API is running",
		})
	})

	// API routes (all behind bearer verification)
	api := r.Group("/api")
	api.Use(middleware.RequireAuth(verifier))
	{
		auth := api.Group("/auth")
		{
			auth.POST("", authHandler.Authenticate)
			auth.GET("/me", authHandler.Me)
		}

		family := api.Group("/family")
		{
			family.GET("", familyHandler.GetFamily)
			family.POST("", familyHandler.CreateFamily)
			family.PATCH("", familyHandler.RenameFamily)
			family.DELETE("", familyHandler.DeleteFamily)
			family.POST("/members", familyHandler.AddMember)
			family.PATCH("/members/:id", familyHandler.UpdateMember)
		}

		habits := api.Group("/habits")
		{
			habits.GET("", habitHandler.ListHabits)
			habits.POST("", habitHandler.CreateHabit)
			habits.GET("/assigned/me", habitHandler.GetAssignedHabits)
			habits.PATCH("/assigned/:id", habitHandler.UpdateAssignment)
			habits.DELETE("/assigned/:id", habitHandler.RemoveAssignment)
			habits.GET("/:id", habitHandler.GetHabit)
			habits.PATCH("/:id", habitHandler.UpdateHabit)
			habits.DELETE("/:id", habitHandler.DeleteHabit)
			habits.POST("/:id/assign", habitHandler.AssignHabit)
			habits.GET("/:id/completions", habitHandler.GetCompletions)
			habits.POST("/:id/completions", habitHandler.CompleteHabit)
		}

		rewards := api.Group("/rewards")
		{
			rewards.GET("", rewardHandler.ListRewards)
			rewards.POST("", rewardHandler.CreateReward)
			rewards.GET("/redeemed", rewardHandler.GetRedeemedRewards)
			rewards.PATCH("/:id", rewardHandler.UpdateReward)
			rewards.DELETE("/:id", rewardHandler.DeleteReward)
			rewards.POST("/:id/redeem", rewardHandler.RedeemReward)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
