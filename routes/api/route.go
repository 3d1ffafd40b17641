package route

import (
	"PlanBuilder/controllers"
	"PlanBuilder/handlers"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes initializes all routes
func RegisterRoutes(router *gin.Engine, placeController *controllers.PlaceController) {
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello, World!")
	})

	apiRoutes := router.Group("/api")
	{
		handlers.RegisterPlaceRoutes(apiRoutes, placeController)
	}
}
