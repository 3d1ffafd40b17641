package utils

import "math"

const earthRadiusKm = 6371.0 // Radius of Earth in km

// Average transit speed used for travel-time estimates, in km/h. There is no
// real travel-time source; distance over a flat speed is the documented stand-in.
const AverageSpeedKmh = 30.0

// MinTravelMinutes prevents unrealistically short transit legs
const MinTravelMinutes = 10.0

// Haversine computes the great-circle distance between two lat/lng points in km
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLng := (lng2 - lng1) * (math.Pi / 180.0)

	lat1 = lat1 * (math.Pi / 180.0)
	lat2 = lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// TravelTimeMinutes approximates transit time between two points by dividing the
// haversine distance by AverageSpeedKmh, floored at MinTravelMinutes.
func TravelTimeMinutes(lat1, lng1, lat2, lng2 float64) float64 {
	distKm := Haversine(lat1, lng1, lat2, lng2)
	minutes := distKm / AverageSpeedKmh * 60.0
	return math.Max(minutes, MinTravelMinutes)
}
