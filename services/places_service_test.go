package services

import (
	"PlanBuilder/models"
	"PlanBuilder/utils"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlacesService(baseURL string) *PlacesService {
	return NewPlacesService(
		WithAPIKey("test-key"),
		WithBaseURL(baseURL),
		WithRateLimit(1000),
	)
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestPlacesService_SearchNearby_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)

		q := r.URL.Query()
		assert.Equal(t, "40.712800,-74.006000", q.Get("location"))
		assert.Equal(t, "1000", q.Get("radius"))
		assert.Equal(t, "restaurants", q.Get("keyword"))
		assert.Equal(t, "test-key", q.Get("key"))

		resp := models.PlacesSearchResponse{
			Status: "OK",
			Results: []models.PlaceResult{
				{
					PlaceID:    "place-a",
					Name:       "Joe's Diner",
					Geometry:   models.Geometry{Location: models.Location{Lat: 40.713, Lng: -74.005}},
					Rating:     floatPtr(4.5),
					PriceLevel: intPtr(2),
				},
				{
					PlaceID:  "place-b",
					Name:     "Corner Bistro",
					Geometry: models.Geometry{Location: models.Location{Lat: 40.714, Lng: -74.007}},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	svc := newTestPlacesService(srv.URL)
	results, err := svc.SearchNearby(context.Background(), 40.7128, -74.0060, "restaurants", 1000)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "place-a", results[0].PlaceID)
	assert.Equal(t, "Joe's Diner", results[0].Name)
	assert.Equal(t, 40.713, results[0].Geometry.Location.Lat)
	require.NotNil(t, results[0].Rating)
	assert.Equal(t, 4.5, *results[0].Rating)
	assert.Nil(t, results[1].Rating)
	assert.Nil(t, results[1].PriceLevel)
}

func TestPlacesService_SearchNearby_DefaultsRadiusAndSkipsEmptyKeyword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "3000", q.Get("radius"))
		assert.False(t, q.Has("keyword"))

		json.NewEncoder(w).Encode(models.PlacesSearchResponse{Status: "OK"})
	}))
	defer srv.Close()

	svc := newTestPlacesService(srv.URL)
	results, err := svc.SearchNearby(context.Background(), 40.7128, -74.0060, "", 0)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestPlacesService_SearchNearby_ZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.PlacesSearchResponse{Status: "ZERO_RESULTS"})
	}))
	defer srv.Close()

	svc := newTestPlacesService(srv.URL)
	results, err := svc.SearchNearby(context.Background(), 40.7128, -74.0060, "movie theater", 3000)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestPlacesService_SearchNearby_RequestDenied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.PlacesSearchResponse{
			Status:       "REQUEST_DENIED",
			ErrorMessage: "The provided API key is invalid.",
		})
	}))
	defer srv.Close()

	svc := newTestPlacesService(srv.URL)
	_, err := svc.SearchNearby(context.Background(), 40.7128, -74.0060, "restaurants", 3000)

	var customErr *utils.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, http.StatusBadGateway, customErr.StatusCode)
	assert.Equal(t, "Error fetching places", customErr.Message)
}

func TestPlacesService_SearchNearby_UpstreamServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream broke"))
	}))
	defer srv.Close()

	svc := newTestPlacesService(srv.URL)
	_, err := svc.SearchNearby(context.Background(), 40.7128, -74.0060, "restaurants", 3000)

	var customErr *utils.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, http.StatusBadGateway, customErr.StatusCode)
}

func TestPlacesService_SearchNearby_Unreachable(t *testing.T) {
	svc := newTestPlacesService("http://127.0.0.1:1") // nothing listening

	_, err := svc.SearchNearby(context.Background(), 40.7128, -74.0060, "restaurants", 3000)

	var customErr *utils.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, http.StatusBadGateway, customErr.StatusCode)
	assert.Equal(t, "Error fetching places", customErr.Message)
}
