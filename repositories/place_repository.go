package repositories

import (
	"PlanBuilder/models"
	"context"
)

// PlaceRepository is the local place store. Writes are insert-if-absent only,
// keyed by place_id; there is no update path.
type PlaceRepository interface {
	// SavePlaceIfAbsent inserts the place when its place_id has not been seen.
	// Returns true when a new record was created. Concurrent calls for the same
	// place_id result in exactly one insert.
	SavePlaceIfAbsent(ctx context.Context, place models.Place) (bool, error)

	// GetPlacesWithinRadius returns stored places within radius meters of the center.
	GetPlacesWithinRadius(ctx context.Context, lat, lng float64, radius int) ([]models.Place, error)
}

// RegionRepository tracks circles already fetched from the Places API so the
// aggregator can skip redundant upstream calls.
type RegionRepository interface {
	// SaveRegion records a freshly fetched circle.
	SaveRegion(ctx context.Context, region models.FetchedRegion) error

	// IsCovered reports whether the given circle overlaps a recorded region,
	// using the haversine distance between centers against the summed radii.
	IsCovered(ctx context.Context, lat, lng float64, radius int) (bool, error)
}
