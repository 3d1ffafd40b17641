package models

import "time"

// Category labels assigned by the activity aggregator. Each place gets exactly
// one, derived from the keyword query that surfaced it.
const (
	CategoryAttraction = "attraction"
	CategoryRestaurant = "restaurant"
	CategoryTheater    = "theater"
)

// Place is a point of interest in the local store, keyed by its Google place_id.
// Immutable once stored; the store only ever inserts absent ids.
type Place struct {
	PlaceID    string   `json:"place_id"`
	Name       string   `json:"name"`
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	Rating     *float64 `json:"rating,omitempty"`
	PriceLevel *int     `json:"price_level,omitempty"`
	Category   string   `json:"category"`
}

// FetchedRegion records a circle already loaded from the Places API, so repeat
// lookups inside it are served from the store instead of upstream.
type FetchedRegion struct {
	CenterLat float64   `json:"center_lat"`
	CenterLng float64   `json:"center_lng"`
	Radius    int       `json:"radius"`
	FetchedAt time.Time `json:"fetched_at"`
}

// PlacesNearbyRequest is the body of POST /api/fetch_places_nearby
type PlacesNearbyRequest struct {
	Location []float64 `json:"location" binding:"required"`
	Query    string    `json:"query"`
	Radius   int       `json:"radius"`
}

// ActivitiesRequest is the body of POST /api/fetch_activities
type ActivitiesRequest struct {
	Location []float64 `json:"location" binding:"required"`
	Radius   int       `json:"radius"`
}
