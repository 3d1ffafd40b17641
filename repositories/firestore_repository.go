package repositories

import (
	"PlanBuilder/models"
	"PlanBuilder/utils"
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/mmcloughlin/geohash"
	"google.golang.org/api/iterator"
	"google.golang.org/genproto/googleapis/type/latlng"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	placesCollection  = "places"
	regionsCollection = "fetched_regions"
)

// FirestoreRepository stores places and fetched regions in Firestore. Place
// documents are keyed by place_id, carry a GeoPoint plus a geohash, and radius
// queries run as geohash prefix ranges refined by haversine.
type FirestoreRepository struct {
	Client *firestore.Client
}

// NewFirestoreRepository wraps an initialized Firestore client
func NewFirestoreRepository(client *firestore.Client) *FirestoreRepository {
	return &FirestoreRepository{Client: client}
}

// SavePlaceIfAbsent creates the place document keyed by place_id. Create fails
// with AlreadyExists when the id is taken, which is the atomic no-overwrite
// guarantee the store needs under concurrent requests.
func (r *FirestoreRepository) SavePlaceIfAbsent(ctx context.Context, place models.Place) (bool, error) {
	geoHash := geohash.Encode(place.Lat, place.Lng)

	data := map[string]interface{}{
		"place_id":   place.PlaceID,
		"name":       place.Name,
		"location":   &latlng.LatLng{Latitude: place.Lat, Longitude: place.Lng},
		"geohash":    geoHash,
		"category":   place.Category,
		"created_at": time.Now(),
	}
	if place.Rating != nil {
		data["rating"] = *place.Rating
	}
	if place.PriceLevel != nil {
		data["price_level"] = *place.PriceLevel
	}

	_, err := r.Client.Collection(placesCollection).Doc(place.PlaceID).Create(ctx, data)
	if status.Code(err) == codes.AlreadyExists {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetPlacesWithinRadius queries by geohash prefix range and refines the
// over-fetched candidates with the exact haversine distance.
func (r *FirestoreRepository) GetPlacesWithinRadius(ctx context.Context, lat, lng float64, radius int) ([]models.Place, error) {
	targetGeoHash := geohash.Encode(lat, lng)
	prefix := targetGeoHash[:prefixLenForRadius(radius)]

	iter := r.Client.Collection(placesCollection).
		Where("geohash", ">=", prefix).
		Where("geohash", "<=", prefix+"~").
		Documents(ctx)

	var places []models.Place
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		place := placeFromDoc(doc.Data())
		distance := utils.Haversine(lat, lng, place.Lat, place.Lng) * 1000 // km to meters
		if distance <= float64(radius) {
			places = append(places, place)
		}
	}
	return places, nil
}

// SaveRegion appends the fetched circle to the regions collection
func (r *FirestoreRepository) SaveRegion(ctx context.Context, region models.FetchedRegion) error {
	_, _, err := r.Client.Collection(regionsCollection).Add(ctx, map[string]interface{}{
		"center_lat": region.CenterLat,
		"center_lng": region.CenterLng,
		"geohash":    geohash.Encode(region.CenterLat, region.CenterLng),
		"radius":     region.Radius,
		"fetched_at": region.FetchedAt,
	})
	return err
}

// IsCovered scans the recorded regions and checks center distance against the
// summed radii, the same overlap rule the aggregator documents.
func (r *FirestoreRepository) IsCovered(ctx context.Context, lat, lng float64, radius int) (bool, error) {
	iter := r.Client.Collection(regionsCollection).Documents(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return false, err
		}

		data := doc.Data()
		centerLat, _ := data["center_lat"].(float64)
		centerLng, _ := data["center_lng"].(float64)
		regionRadius, _ := data["radius"].(int64)

		distance := utils.Haversine(lat, lng, centerLat, centerLng) * 1000 // km to meters
		if distance <= float64(radius)+float64(regionRadius) {
			return true, nil
		}
	}
	return false, nil
}

// prefixLenForRadius maps a search radius to a geohash prefix length whose cell
// comfortably contains the circle; the haversine refinement trims the rest.
func prefixLenForRadius(radius int) int {
	switch {
	case radius <= 1500:
		return 5
	case radius <= 25000:
		return 4
	default:
		return 3
	}
}

func placeFromDoc(data map[string]interface{}) models.Place {
	var place models.Place
	place.PlaceID, _ = data["place_id"].(string)
	place.Name, _ = data["name"].(string)
	place.Category, _ = data["category"].(string)

	if loc, ok := data["location"].(*latlng.LatLng); ok {
		place.Lat = loc.Latitude
		place.Lng = loc.Longitude
	}
	if rating, ok := data["rating"].(float64); ok {
		place.Rating = &rating
	}
	if level, ok := data["price_level"].(int64); ok {
		priceLevel := int(level)
		place.PriceLevel = &priceLevel
	}
	return place
}
