package main

import (
	"PlanBuilder/config/database"
	"PlanBuilder/config/environment"
	"PlanBuilder/controllers"
	"PlanBuilder/middleware"
	"PlanBuilder/repositories"
	route "PlanBuilder/routes/api"
	"PlanBuilder/services"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/phuslu/log"
)

func main() {

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using process environment")
	}

	// Firestore when credentials are configured, in-memory store otherwise
	var placeRepo repositories.PlaceRepository
	var regionRepo repositories.RegionRepository
	if environment.GetFirebaseKey() != "" {
		database.InitFirebase()
		firestoreRepo := repositories.NewFirestoreRepository(database.GetFirestoreClient())
		placeRepo = firestoreRepo
		regionRepo = firestoreRepo
		log.Info().Msg("Using Firestore place store")
	} else {
		memoryRepo := repositories.NewMemoryRepository()
		placeRepo = memoryRepo
		regionRepo = memoryRepo
		log.Warn().Msg("FIREBASE_CREDENTIALS_BASE64 not set, using in-memory place store")
	}

	placesService := services.NewPlacesService()
	activityService := services.NewActivityService(placesService, placeRepo, regionRepo)
	planService := services.NewPlanService(activityService, services.NewGreedyMealPlanner(), services.NewOpenAIService())
	placeController := controllers.NewPlaceController(placesService, activityService, planService)

	// Setup Gin router
	r := gin.Default()

	r.Use(middleware.ErrorHandlerMiddleware())

	// CORS Middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Register all routes
	route.RegisterRoutes(r, placeController)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info().Str("port", port).Msg("Server running")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
