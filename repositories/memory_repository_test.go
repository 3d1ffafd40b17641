package repositories

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"PlanBuilder/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlace(id string, lat, lng float64) models.Place {
	rating := 4.2
	return models.Place{
		PlaceID:  id,
		Name:     "Place " + id,
		Lat:      lat,
		Lng:      lng,
		Rating:   &rating,
		Category: models.CategoryAttraction,
	}
}

func TestSavePlaceIfAbsent_InsertsOnce(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	created, err := repo.SavePlaceIfAbsent(ctx, testPlace("p1", 40.7128, -74.0060))
	require.NoError(t, err)
	assert.True(t, created)

	// Second write with the same id is a no-op, mutated fields do not overwrite
	again := testPlace("p1", 40.7128, -74.0060)
	again.Name = "Renamed"
	created, err = repo.SavePlaceIfAbsent(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)

	places, err := repo.GetPlacesWithinRadius(ctx, 40.7128, -74.0060, 1000)
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Place p1", places[0].Name)
}

func TestSavePlaceIfAbsent_ConcurrentSameID(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	inserted := make(chan bool, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := repo.SavePlaceIfAbsent(ctx, testPlace("same", 40.7128, -74.0060))
			if err != nil {
				t.Errorf("save: %v", err)
				return
			}
			inserted <- created
		}()
	}
	wg.Wait()
	close(inserted)

	wins := 0
	for created := range inserted {
		if created {
			wins++
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent writer should insert")
	assert.Equal(t, 1, repo.PlaceCount())
}

func TestGetPlacesWithinRadius_FiltersAndSorts(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	// Two places near lower Manhattan, one far uptown (~8.5 km away)
	for _, place := range []models.Place{
		testPlace("b-near", 40.7138, -74.0060),
		testPlace("a-near", 40.7128, -74.0070),
		testPlace("c-far", 40.7880, -73.9760),
	} {
		_, err := repo.SavePlaceIfAbsent(ctx, place)
		require.NoError(t, err)
	}

	places, err := repo.GetPlacesWithinRadius(ctx, 40.7128, -74.0060, 2000)
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "a-near", places[0].PlaceID)
	assert.Equal(t, "b-near", places[1].PlaceID)
}

func TestIsCovered_UsesSummedRadii(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	covered, err := repo.IsCovered(ctx, 40.7128, -74.0060, 3000)
	require.NoError(t, err)
	assert.False(t, covered, "empty store covers nothing")

	require.NoError(t, repo.SaveRegion(ctx, models.FetchedRegion{
		CenterLat: 40.7128,
		CenterLng: -74.0060,
		Radius:    3000,
	}))

	// Same center
	covered, err = repo.IsCovered(ctx, 40.7128, -74.0060, 3000)
	require.NoError(t, err)
	assert.True(t, covered)

	// ~5.3 km away: inside 3000+3000 overlap
	covered, err = repo.IsCovered(ctx, 40.7580, -73.9855, 3000)
	require.NoError(t, err)
	assert.True(t, covered)

	// Same point but tiny radius: 5300 > 3000+1000
	covered, err = repo.IsCovered(ctx, 40.7580, -73.9855, 1000)
	require.NoError(t, err)
	assert.False(t, covered)
}

func TestGetPlacesWithinRadius_ManyPlaces(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		// Spread east in ~0.9 km steps
		place := testPlace(fmt.Sprintf("p%02d", i), 40.7128, -74.0060+float64(i)*0.0106)
		_, err := repo.SavePlaceIfAbsent(ctx, place)
		require.NoError(t, err)
	}

	places, err := repo.GetPlacesWithinRadius(ctx, 40.7128, -74.0060, 3000)
	require.NoError(t, err)
	assert.Greater(t, len(places), 2)
	assert.Less(t, len(places), 10)
	for _, place := range places {
		assert.LessOrEqual(t, places[0].PlaceID, place.PlaceID)
	}
}
