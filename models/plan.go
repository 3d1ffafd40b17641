package models

import "time"

// TimeLayout is the accepted format for start_time / end_time in plan requests
const TimeLayout = "2006-01-02 15:04"

// PlanRequest is the body of POST /api/generate_plan. Every field is optional;
// the plan service fills documented defaults. Budget is a pointer because an
// explicit 0 and an absent budget behave differently.
type PlanRequest struct {
	Location         []float64 `json:"location"`
	HotelLocation    []float64 `json:"hotel_location"`
	Budget           *float64  `json:"budget"`
	StartTime        string    `json:"start_time"`
	EndTime          string    `json:"end_time"`
	VisitedLocations []string  `json:"visited_locations"`
	PlannedLocations []string  `json:"planned_locations"`
	Radius           int       `json:"radius"`
	MaxTravelTime    int       `json:"max_travel_time"`
}

// ItineraryStop is one scheduled visit. TravelMinutes is the transit leg into
// the stop from the previous location, so consecutive stops never overlap:
// each starts at the previous end plus its travel time.
type ItineraryStop struct {
	PlaceID       string    `json:"place_id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Meal          string    `json:"meal,omitempty"`
	TravelMinutes int       `json:"travel_minutes"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	EstimatedCost float64   `json:"estimated_cost"`
}

// Itinerary is the generated day plan. Built per request, never persisted.
type Itinerary struct {
	ID                  string          `json:"id"`
	Stops               []ItineraryStop `json:"itinerary"`
	TotalEstimatedCost  float64         `json:"total_estimated_cost"`
	ReturnTravelMinutes int             `json:"return_travel_minutes,omitempty"`
	Message             string          `json:"message"`
}
