package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine_SamePoint(t *testing.T) {
	assert.Zero(t, Haversine(40.7128, -74.0060, 40.7128, -74.0060))
}

func TestHaversine_KnownDistances(t *testing.T) {
	// Lower Manhattan to Times Square is roughly 5.3 km
	d := Haversine(40.7128, -74.0060, 40.7580, -73.9855)
	assert.InDelta(t, 5.3, d, 0.2)

	// New York to London is roughly 5570 km
	d = Haversine(40.7128, -74.0060, 51.5074, -0.1278)
	assert.InDelta(t, 5570, d, 30)
}

func TestTravelTimeMinutes_FloorsShortHops(t *testing.T) {
	// A few hundred meters is still a 10 minute leg
	minutes := TravelTimeMinutes(40.7128, -74.0060, 40.7130, -74.0100)
	assert.Equal(t, MinTravelMinutes, minutes)
}

func TestTravelTimeMinutes_ScalesWithDistance(t *testing.T) {
	// ~5.3 km at 30 km/h is just over the 10 minute floor
	minutes := TravelTimeMinutes(40.7128, -74.0060, 40.7580, -73.9855)
	assert.Greater(t, minutes, MinTravelMinutes)
	assert.InDelta(t, 10.6, minutes, 0.5)
}
