package services

import (
	"PlanBuilder/config/environment"
	"PlanBuilder/models"
	"PlanBuilder/utils"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/phuslu/log"
	"golang.org/x/time/rate"
)

const (
	// DefaultPlacesBaseURL is the Google Places Nearby Search endpoint.
	DefaultPlacesBaseURL = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"

	// DefaultSearchRadius is applied when a request does not carry a radius, in meters.
	DefaultSearchRadius = 3000

	// DefaultPlacesTimeout bounds a single upstream call. One attempt per call,
	// no retries.
	DefaultPlacesTimeout = 10 * time.Second

	// DefaultPlacesRateLimit is the request budget per second against Google.
	DefaultPlacesRateLimit = 10
)

// PlacesService calls the Google Places Nearby Search API. Any upstream
// failure is reported as a single gateway error so handlers can answer with
// the documented message; details go to the log instead.
type PlacesService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// PlacesOption configures the PlacesService.
type PlacesOption func(*PlacesService)

// WithAPIKey overrides the key taken from the environment.
func WithAPIKey(apiKey string) PlacesOption {
	return func(s *PlacesService) {
		s.apiKey = apiKey
	}
}

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) PlacesOption {
	return func(s *PlacesService) {
		s.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) PlacesOption {
	return func(s *PlacesService) {
		s.httpClient = httpClient
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) PlacesOption {
	return func(s *PlacesService) {
		s.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewPlacesService initializes PlacesService with the API key from the environment
func NewPlacesService(opts ...PlacesOption) *PlacesService {
	s := &PlacesService{
		baseURL: DefaultPlacesBaseURL,
		apiKey:  environment.GetGooglePlacesKey(),
		httpClient: &http.Client{
			Timeout: DefaultPlacesTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultPlacesRateLimit), DefaultPlacesRateLimit),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SearchNearby performs a Nearby Search around the given point. An empty
// keyword searches without a keyword filter. Radius falls back to
// DefaultSearchRadius when not positive. ZERO_RESULTS is not an error; it
// returns an empty slice.
func (s *PlacesService) SearchNearby(ctx context.Context, lat, lng float64, keyword string, radius int) ([]models.PlaceResult, error) {
	if radius <= 0 {
		radius = DefaultSearchRadius
	}

	if err := s.limiter.Wait(ctx); err != nil {
		log.Error().Err(err).Msg("Places nearby search aborted while rate limited")
		return nil, utils.NewGatewayError("Error fetching places")
	}

	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("radius", fmt.Sprintf("%d", radius))
	if keyword != "" {
		params.Set("keyword", keyword)
	}
	params.Set("key", s.apiKey)

	fullURL := fmt.Sprintf("%s?%s", s.baseURL, params.Encode())

	// Redact API key in logs
	logURL := fmt.Sprintf("%s?location=%f,%f&radius=%d&keyword=%s&key=***REDACTED***", s.baseURL, lat, lng, radius, url.QueryEscape(keyword))
	log.Debug().Str("url", logURL).Msg("Calling Google Places Nearby Search API")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build Places request")
		return nil, utils.NewGatewayError("Error fetching places")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("Failed to call Google Places API")
		return nil, utils.NewGatewayError("Error fetching places")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error().Int("status_code", resp.StatusCode).Str("body", string(body)).Msg("Google Places API returned non-OK status")
		return nil, utils.NewGatewayError("Error fetching places")
	}

	var apiResp models.PlacesSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		log.Error().Err(err).Msg("Failed to decode Places response")
		return nil, utils.NewGatewayError("Error fetching places")
	}

	if apiResp.Status != "OK" && apiResp.Status != "ZERO_RESULTS" {
		log.Error().Str("status", apiResp.Status).Str("error_message", apiResp.ErrorMessage).Msg("Google Places API error")
		return nil, utils.NewGatewayError("Error fetching places")
	}

	log.Info().
		Str("keyword", keyword).
		Float64("latitude", lat).
		Float64("longitude", lng).
		Int("radius", radius).
		Int("results_count", len(apiResp.Results)).
		Str("status", apiResp.Status).
		Msg("Google Places Nearby Search completed")

	return apiResp.Results, nil
}
