package repositories

import (
	"PlanBuilder/models"
	"PlanBuilder/utils"
	"context"
	"sort"
	"sync"
)

// MemoryRepository is a process-local place and region store. It backs the
// server when Firestore credentials are absent and every repository-facing
// test. The mutex makes SavePlaceIfAbsent a compare-and-insert.
type MemoryRepository struct {
	mu      sync.Mutex
	places  map[string]models.Place
	regions []models.FetchedRegion
}

// NewMemoryRepository returns an empty in-memory store
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		places: make(map[string]models.Place),
	}
}

// SavePlaceIfAbsent inserts the place unless its place_id already exists
func (r *MemoryRepository) SavePlaceIfAbsent(_ context.Context, place models.Place) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.places[place.PlaceID]; exists {
		return false, nil
	}
	r.places[place.PlaceID] = place
	return true, nil
}

// GetPlacesWithinRadius filters the stored places by haversine distance,
// ordered by place_id so responses are stable.
func (r *MemoryRepository) GetPlacesWithinRadius(_ context.Context, lat, lng float64, radius int) ([]models.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var places []models.Place
	for _, place := range r.places {
		distance := utils.Haversine(lat, lng, place.Lat, place.Lng) * 1000 // km to meters
		if distance <= float64(radius) {
			places = append(places, place)
		}
	}
	sort.Slice(places, func(i, j int) bool { return places[i].PlaceID < places[j].PlaceID })
	return places, nil
}

// SaveRegion records the fetched circle
func (r *MemoryRepository) SaveRegion(_ context.Context, region models.FetchedRegion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.regions = append(r.regions, region)
	return nil
}

// IsCovered checks the circle against every recorded region
func (r *MemoryRepository) IsCovered(_ context.Context, lat, lng float64, radius int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, region := range r.regions {
		distance := utils.Haversine(lat, lng, region.CenterLat, region.CenterLng) * 1000 // km to meters
		if distance <= float64(radius)+float64(region.Radius) {
			return true, nil
		}
	}
	return false, nil
}

// PlaceCount reports how many places are stored; used by idempotence checks
func (r *MemoryRepository) PlaceCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.places)
}
