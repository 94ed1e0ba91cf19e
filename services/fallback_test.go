package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFlightsFallback(t *testing.T) {
	flights := GenerateFlightsFallback("JFK", "CDG", "2025-06-01")
	require.Len(t, flights, 5)

	for _, f := range flights {
		assert.Equal(t, "JFK", f.Origin)
		assert.Equal(t, "CDG", f.Destination)
		assert.Greater(t, f.Price, 0.0)
		assert.Greater(t, f.DurationMinutes, 0)

		dep, err := time.Parse("2006-01-02T15:04:05", f.DepartureTime)
		require.NoError(t, err, f.FlightNumber)
		assert.Equal(t, "2025-06-01", dep.Format("2006-01-02"))
	}

	// One-stop options carry a connection penalty over the direct ones
	assert.Greater(t, flights[3].DurationMinutes, flights[0].DurationMinutes)
}

func TestGenerateFlightsFallback_UnknownRouteStillProduces(t *testing.T) {
	flights := GenerateFlightsFallback("AAA", "BBB", "2025-06-01")
	require.Len(t, flights, 5)
	assert.Greater(t, flights[0].Price, 0.0)
}

func TestGenerateHotelsFallback_KnownCityHasCoords(t *testing.T) {
	hotels := GenerateHotelsFallback("CDG")
	require.NotEmpty(t, hotels)
	for _, h := range hotels {
		assert.NotZero(t, h.Lat, h.Name)
		assert.NotZero(t, h.Lon, h.Name)
		assert.Greater(t, h.Price, 0.0)
	}
}

func TestGenerateHotelsFallback_UnknownCityGeneric(t *testing.T) {
	hotels := GenerateHotelsFallback("XYZ")
	require.Len(t, hotels, 4)
	assert.Contains(t, hotels[0].Location, "XYZ")
	assert.Zero(t, hotels[0].Lat)
}

func TestGenerateActivitiesFallback(t *testing.T) {
	acts := GenerateActivitiesFallback("CDG", 5000)
	require.Len(t, acts, 5)

	categories := make(map[string]bool)
	for _, a := range acts {
		categories[a.Category] = true
		assert.Greater(t, a.DurationMinutes, 0)
		assert.Greater(t, a.Price, 0.0)
		assert.NotEmpty(t, a.Tags)
	}
	for _, want := range []string{"Cultural", "Adventure", "Food", "Nature", "Entertainment"} {
		assert.True(t, categories[want], want)
	}
}

func TestGenerateActivitiesFallback_ZeroBudgetDefaults(t *testing.T) {
	acts := GenerateActivitiesFallback("IST", 0)
	require.Len(t, acts, 5)
	for _, a := range acts {
		assert.Greater(t, a.Price, 0.0)
	}
}
