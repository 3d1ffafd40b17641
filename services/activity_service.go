package services

import (
	"PlanBuilder/models"
	"PlanBuilder/repositories"
	"PlanBuilder/utils"
	"context"
	"sync"
	"time"

	"github.com/phuslu/log"
)

// activityKeywords are the fixed category searches issued per aggregation.
// Order matters: when two keywords surface the same place_id, the earlier
// keyword's category wins.
var activityKeywords = []string{"tourist attractions", "restaurants", "movie theater"}

// keywordCategories maps each search keyword to the stored category label
var keywordCategories = map[string]string{
	"tourist attractions": models.CategoryAttraction,
	"restaurants":         models.CategoryRestaurant,
	"movie theater":       models.CategoryTheater,
}

// PlacesGateway is the upstream search the aggregator fans out to.
type PlacesGateway interface {
	SearchNearby(ctx context.Context, lat, lng float64, keyword string, radius int) ([]models.PlaceResult, error)
}

// ActivityService merges the fixed category searches into one deduplicated,
// categorized place list, persisting unseen places as it goes. Regions already
// fetched are served from the store without calling Google again.
type ActivityService struct {
	Places     PlacesGateway
	PlaceRepo  repositories.PlaceRepository
	RegionRepo repositories.RegionRepository
}

// NewActivityService initializes ActivityService with the places gateway and both stores
func NewActivityService(places PlacesGateway, placeRepo repositories.PlaceRepository, regionRepo repositories.RegionRepository) *ActivityService {
	return &ActivityService{
		Places:     places,
		PlaceRepo:  placeRepo,
		RegionRepo: regionRepo,
	}
}

// FetchActivities returns all known places around the given point. A circle
// already covered by a recorded region is answered from the store; otherwise
// the category searches run concurrently, results are merged and saved, and
// the circle is recorded so the next call skips the upstream trip.
func (s *ActivityService) FetchActivities(ctx context.Context, lat, lng float64, radius int) ([]models.Place, error) {
	if radius <= 0 {
		radius = DefaultSearchRadius
	}

	covered, err := s.RegionRepo.IsCovered(ctx, lat, lng, radius)
	if err != nil {
		return nil, err
	}
	if covered {
		log.Info().
			Float64("latitude", lat).
			Float64("longitude", lng).
			Int("radius", radius).
			Msg("Region already fetched, serving activities from the store")

		places, err := s.PlaceRepo.GetPlacesWithinRadius(ctx, lat, lng, radius)
		if err != nil {
			return nil, err
		}
		if len(places) == 0 {
			return nil, utils.NewNotFoundError("No places found")
		}
		return places, nil
	}

	log.Info().
		Float64("latitude", lat).
		Float64("longitude", lng).
		Int("radius", radius).
		Msg("Fetching new activities from the Places API")

	// One search per keyword, concurrently. Results land in keyword order so
	// the merge below stays deterministic regardless of arrival order.
	results := make([][]models.PlaceResult, len(activityKeywords))
	searchErrs := make([]error, len(activityKeywords))

	var wg sync.WaitGroup
	for i, keyword := range activityKeywords {
		wg.Add(1)
		go func(i int, keyword string) {
			defer wg.Done()
			results[i], searchErrs[i] = s.Places.SearchNearby(ctx, lat, lng, keyword, radius)
		}(i, keyword)
	}
	wg.Wait()

	failed := 0
	for i, searchErr := range searchErrs {
		if searchErr != nil {
			failed++
			log.Warn().Err(searchErr).Str("keyword", activityKeywords[i]).Msg("Category search failed, continuing with the remaining categories")
		}
	}
	if failed == len(activityKeywords) {
		return nil, utils.NewGatewayError("Error fetching places")
	}

	// Deduplicate by place_id, first occurrence wins
	var merged []models.Place
	seen := make(map[string]bool)
	for i, keyword := range activityKeywords {
		category := keywordCategories[keyword]
		for _, result := range results[i] {
			if result.PlaceID == "" || seen[result.PlaceID] {
				continue
			}
			seen[result.PlaceID] = true
			merged = append(merged, models.Place{
				PlaceID:    result.PlaceID,
				Name:       result.Name,
				Lat:        result.Geometry.Location.Lat,
				Lng:        result.Geometry.Location.Lng,
				Rating:     result.Rating,
				PriceLevel: result.PriceLevel,
				Category:   category,
			})
		}
	}

	if len(merged) == 0 {
		return nil, utils.NewNotFoundError("No places found")
	}

	inserted := 0
	for _, place := range merged {
		created, err := s.PlaceRepo.SavePlaceIfAbsent(ctx, place)
		if err != nil {
			return nil, err
		}
		if created {
			inserted++
		}
	}

	// Record the circle only when every category search succeeded, so a later
	// call retries the categories that failed this time.
	if failed == 0 {
		region := models.FetchedRegion{
			CenterLat: lat,
			CenterLng: lng,
			Radius:    radius,
			FetchedAt: time.Now(),
		}
		if err := s.RegionRepo.SaveRegion(ctx, region); err != nil {
			return nil, err
		}
	} else {
		log.Warn().Int("failed_searches", failed).Msg("Region left unrecorded after partial fetch")
	}

	log.Info().
		Int("total_places", len(merged)).
		Int("newly_saved", inserted).
		Msg("Activity aggregation completed")

	return merged, nil
}
