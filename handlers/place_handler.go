package handlers

import (
	"PlanBuilder/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterPlaceRoutes(router *gin.RouterGroup, placeController *controllers.PlaceController) {
	router.POST("/fetch_places_nearby", placeController.FetchPlacesNearby)
	router.POST("/fetch_activities", placeController.FetchActivities)
	router.POST("/generate_plan", placeController.GeneratePlan)
}
