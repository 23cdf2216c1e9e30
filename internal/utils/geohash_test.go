package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeAndDecodePoint(t *testing.T) {
	hash := EncodePoint(-6.175392, 106.827153, RosterGeohashPrecision)
	assert.Len(t, hash, RosterGeohashPrecision)

	lat, lng := DecodeGeohash(hash)
	assert.InDelta(t, -6.175392, lat, 0.01)
	assert.InDelta(t, 106.827153, lng, 0.01)
}

func TestNeighbors(t *testing.T) {
	hash := EncodePoint(-6.175392, 106.827153, RosterGeohashPrecision)
	neighbors := Neighbors(hash)
	assert.Len(t, neighbors, 8)
	for _, n := range neighbors {
		assert.Len(t, n, RosterGeohashPrecision)
		assert.NotEqual(t, hash, n)
	}
}

func TestCalculateDistance(t *testing.T) {
	tests := []struct {
		name      string
		point1    GeoPoint
		point2    GeoPoint
		expected  float64
		tolerance float64
	}{
		{
			name:      "Same point",
			point1:    GeoPoint{Latitude: -6.175392, Longitude: 106.827153},
			point2:    GeoPoint{Latitude: -6.175392, Longitude: 106.827153},
			expected:  0.0,
			tolerance: 0.001,
		},
		{
			name:      "Jakarta to Bandung (approximately)",
			point1:    GeoPoint{Latitude: -6.175392, Longitude: 106.827153},
			point2:    GeoPoint{Latitude: -6.914744, Longitude: 107.609810},
			expected:  120.0,
			tolerance: 10.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateDistance(tt.point1, tt.point2)
			assert.InDelta(t, tt.expected, got, tt.tolerance)
		})
	}
}

func TestIsFiniteCoordinate(t *testing.T) {
	assert.True(t, IsFiniteCoordinate(-6.2, 106.8))
	assert.True(t, IsFiniteCoordinate(0, 0))
	assert.False(t, IsFiniteCoordinate(math.NaN(), 106.8))
	assert.False(t, IsFiniteCoordinate(-6.2, math.NaN()))
	assert.False(t, IsFiniteCoordinate(math.Inf(1), 106.8))
}
