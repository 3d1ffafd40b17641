package controllers

import (
	"PlanBuilder/models"
	"PlanBuilder/services"
	"PlanBuilder/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PlaceController serves the trip planning endpoints. Binding problems answer
// directly with 400; service errors go through the error middleware.
type PlaceController struct {
	PlacesService   *services.PlacesService
	ActivityService *services.ActivityService
	PlanService     *services.PlanService
}

func NewPlaceController(placesService *services.PlacesService, activityService *services.ActivityService, planService *services.PlanService) *PlaceController {
	return &PlaceController{
		PlacesService:   placesService,
		ActivityService: activityService,
		PlanService:     planService,
	}
}

// FetchPlacesNearby proxies a single Nearby Search call and returns the raw
// Google place objects as a JSON array.
func (p *PlaceController) FetchPlacesNearby(c *gin.Context) {
	var req models.PlacesNearbyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Location) != 2 {
		utils.ErrorResponse(c, http.StatusBadRequest, "location must be a [lat, lng] pair")
		return
	}
	if req.Radius < 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "radius must be a non-negative number")
		return
	}

	results, err := p.PlacesService.SearchNearby(c.Request.Context(), req.Location[0], req.Location[1], req.Query, req.Radius)
	if err != nil {
		c.Error(err)
		return
	}
	if results == nil {
		results = []models.PlaceResult{}
	}

	c.JSON(http.StatusOK, results)
}

// FetchActivities aggregates the fixed keyword searches around the given
// center and returns the merged, categorized places.
func (p *PlaceController) FetchActivities(c *gin.Context) {
	var req models.ActivitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Location) != 2 {
		utils.ErrorResponse(c, http.StatusBadRequest, "location must be a [lat, lng] pair")
		return
	}
	if req.Radius < 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "radius must be a non-negative number")
		return
	}

	places, err := p.ActivityService.FetchActivities(c.Request.Context(), req.Location[0], req.Location[1], req.Radius)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, places)
}

// GeneratePlan builds a day itinerary. Every request field is optional; the
// plan service fills documented defaults and validates the rest.
func (p *PlaceController) GeneratePlan(c *gin.Context) {
	var req models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	itinerary, err := p.PlanService.GeneratePlan(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, itinerary)
}
