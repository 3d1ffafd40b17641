package services

import (
	"PlanBuilder/models"
	"PlanBuilder/utils"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"
)

// Defaults applied to an empty PlanRequest, matching the documented example
// request around lower Manhattan.
var (
	defaultPlanLocation  = []float64{40.7128, -74.0060}
	defaultHotelLocation = []float64{40.7130, -74.0100}
)

const (
	defaultPlanBudget    = 500.0
	defaultPlanStartTime = "2025-01-08 14:00"
	defaultPlanEndTime   = "2025-01-08 19:00"
	defaultMaxTravelTime = 60
)

// PlanService turns a PlanRequest into a scheduled itinerary: validation and
// defaults, candidate pool around the requested center, mealtime slots, then
// the planner strategy.
type PlanService struct {
	ActivityService *ActivityService
	Planner         PlannerStrategy
	OpenAIService   *OpenAIService
}

// NewPlanService initializes PlanService with the aggregator, a planner
// strategy and the optional summarizer
func NewPlanService(activityService *ActivityService, planner PlannerStrategy, openAIService *OpenAIService) *PlanService {
	return &PlanService{
		ActivityService: activityService,
		Planner:         planner,
		OpenAIService:   openAIService,
	}
}

// GeneratePlan builds a day itinerary under the request's constraints. An
// over-constrained request is not an error; it yields an empty itinerary with
// an explanatory message.
func (s *PlanService) GeneratePlan(ctx context.Context, req models.PlanRequest) (*models.Itinerary, error) {
	location, err := resolveCoordinates(req.Location, defaultPlanLocation, "location")
	if err != nil {
		return nil, err
	}
	hotel, err := resolveCoordinates(req.HotelLocation, defaultHotelLocation, "hotel_location")
	if err != nil {
		return nil, err
	}

	budget := defaultPlanBudget
	if req.Budget != nil {
		if *req.Budget < 0 {
			return nil, utils.NewValidationError("budget must be a non-negative number")
		}
		budget = *req.Budget
	}

	if req.Radius < 0 {
		return nil, utils.NewValidationError("radius must be a positive integer")
	}
	radius := req.Radius
	if radius == 0 {
		radius = DefaultSearchRadius
	}

	if req.MaxTravelTime < 0 {
		return nil, utils.NewValidationError("max_travel_time must be a positive integer")
	}
	maxTravel := req.MaxTravelTime
	if maxTravel == 0 {
		maxTravel = defaultMaxTravelTime
	}

	startStr := req.StartTime
	if startStr == "" {
		startStr = defaultPlanStartTime
	}
	endStr := req.EndTime
	if endStr == "" {
		endStr = defaultPlanEndTime
	}
	start, err := time.Parse(models.TimeLayout, startStr)
	if err != nil {
		return nil, utils.NewValidationError("start_time must use the format YYYY-MM-DD HH:MM")
	}
	end, err := time.Parse(models.TimeLayout, endStr)
	if err != nil {
		return nil, utils.NewValidationError("end_time must use the format YYYY-MM-DD HH:MM")
	}
	if !end.After(start) {
		return nil, utils.NewValidationError("end_time must be after start_time")
	}

	activities, err := s.ActivityService.FetchActivities(ctx, location[0], location[1], radius)
	if err != nil {
		var customErr *utils.CustomError
		if errors.As(err, &customErr) && customErr.StatusCode == http.StatusNotFound {
			// No known places at all degrades to the empty itinerary below.
			activities = nil
		} else {
			return nil, err
		}
	}

	visited := toIDSet(req.VisitedLocations)
	planned := toIDSet(req.PlannedLocations)
	candidates := buildCandidatePool(activities, visited, planned, budget, location[0], location[1], radius, float64(maxTravel))

	if len(candidates) == 0 {
		log.Info().
			Int("known_places", len(activities)).
			Msg("No candidate places survived the plan filters")
		return &models.Itinerary{
			ID:      uuid.New().String(),
			Stops:   []models.ItineraryStop{},
			Message: "No candidate places found within filters.",
		}, nil
	}

	stops, returnMinutes := s.Planner.Plan(PlanInputs{
		Candidates:       candidates,
		HotelLat:         hotel[0],
		HotelLng:         hotel[1],
		Start:            start,
		End:              end,
		Budget:           budget,
		MaxTravelMinutes: float64(maxTravel),
		MealSlots:        MealSlotsInWindow(start, end),
	})
	if stops == nil {
		stops = []models.ItineraryStop{}
	}

	total := 0.0
	for _, stop := range stops {
		total += stop.EstimatedCost
	}

	message := "No candidate places found within filters."
	if len(stops) > 0 {
		message = fmt.Sprintf("Itinerary generated with %d stops.", len(stops))
		if s.OpenAIService != nil && s.OpenAIService.Enabled() {
			summary, summaryErr := s.OpenAIService.SummarizeItinerary(ctx, stops)
			if summaryErr != nil {
				log.Warn().Err(summaryErr).Msg("Itinerary summary failed, keeping the default message")
			} else if summary != "" {
				message = summary
			}
		}
	}

	itinerary := &models.Itinerary{
		ID:                  uuid.New().String(),
		Stops:               stops,
		TotalEstimatedCost:  total,
		ReturnTravelMinutes: returnMinutes,
		Message:             message,
	}

	log.Info().
		Str("itinerary_id", itinerary.ID).
		Int("stops", len(stops)).
		Float64("total_estimated_cost", total).
		Msg("Plan generated")

	return itinerary, nil
}

// buildCandidatePool filters aggregated places down to plannable candidates:
// named, not visited or planned, affordable, inside the radius, and reachable
// from the center within the travel ceiling.
func buildCandidatePool(places []models.Place, visited, planned map[string]bool, budget, lat, lng float64, radius int, maxTravel float64) []Candidate {
	var candidates []Candidate
	for _, place := range places {
		if place.Name == "" || (place.Lat == 0 && place.Lng == 0) {
			continue
		}
		if visited[place.PlaceID] || planned[place.PlaceID] {
			continue
		}
		cost := EstimateCost(place.PriceLevel)
		if cost > budget {
			continue
		}
		distance := utils.Haversine(lat, lng, place.Lat, place.Lng) * 1000 // km to meters
		if distance > float64(radius) {
			continue
		}
		if utils.TravelTimeMinutes(lat, lng, place.Lat, place.Lng) > maxTravel {
			continue
		}
		candidates = append(candidates, Candidate{Place: place, EstimatedCost: cost})
	}
	return candidates
}

func resolveCoordinates(coords, fallback []float64, field string) ([]float64, error) {
	if len(coords) == 0 {
		return fallback, nil
	}
	if len(coords) != 2 {
		return nil, utils.NewValidationError(fmt.Sprintf("%s must be a [lat, lng] pair", field))
	}
	return coords, nil
}

func toIDSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
