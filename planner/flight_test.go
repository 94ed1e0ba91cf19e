package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Late departure west across two zones: 22:00 UTC-5 plus ten hours lands at
// 06:00 the next destination-local day, two hours further behind.
func TestArrival_NextDayWestward(t *testing.T) {
	ny, err := ZoneOf("JFK")
	require.NoError(t, err)

	dep := time.Date(2024, 12, 20, 22, 0, 0, 0, ny)
	arr := Arrival(dep, 600, "JFK", "DEN")

	assert.False(t, arr.Degraded)
	assert.Equal(t, "America/New_York", arr.OriginZone.String())
	assert.Equal(t, "America/Denver", arr.DestZone.String())
	assert.Equal(t, -2.0, arr.NetOffsetShiftHours)
	assert.True(t, arr.CrossesToNextLocalDay)

	assert.Equal(t, 2024, arr.Arrival.Year())
	assert.Equal(t, time.December, arr.Arrival.Month())
	assert.Equal(t, 21, arr.Arrival.Day())
	assert.Equal(t, 6, arr.Arrival.Hour())
	assert.Equal(t, 0, arr.Arrival.Minute())
}

func TestArrival_SameDayShortHop(t *testing.T) {
	london, err := ZoneOf("LHR")
	require.NoError(t, err)

	dep := time.Date(2024, 6, 1, 9, 0, 0, 0, london)
	arr := Arrival(dep, 75, "LHR", "CDG")

	assert.False(t, arr.CrossesToNextLocalDay)
	// London summer is UTC+1, Paris UTC+2.
	assert.Equal(t, 1.0, arr.NetOffsetShiftHours)
	assert.Equal(t, 11, arr.Arrival.Hour())
	assert.Equal(t, 15, arr.Arrival.Minute())
}

// An eastward overnight: 17:00 out of JFK is already 22:00 in London, so the
// seven-hour leg lands 05:00 the next London day.
func TestArrival_EastwardOvernight(t *testing.T) {
	ny, err := ZoneOf("JFK")
	require.NoError(t, err)

	dep := time.Date(2024, 1, 5, 17, 0, 0, 0, ny)
	arr := Arrival(dep, 420, "JFK", "LHR")

	assert.True(t, arr.CrossesToNextLocalDay)
	assert.Equal(t, 5.0, arr.NetOffsetShiftHours)
	assert.Equal(t, 6, arr.Arrival.Day())
	assert.Equal(t, 5, arr.Arrival.Hour())
}

func TestArrival_Monotonicity(t *testing.T) {
	ny, err := ZoneOf("JFK")
	require.NoError(t, err)
	dep := time.Date(2024, 12, 20, 22, 0, 0, 0, ny)

	prev := Arrival(dep, 60, "JFK", "DEN").Arrival
	for minutes := 90; minutes <= 900; minutes += 30 {
		next := Arrival(dep, minutes, "JFK", "DEN").Arrival
		assert.True(t, next.After(prev), "duration %dm did not move arrival forward", minutes)
		prev = next
	}
}

func TestArrival_DegradedFallback(t *testing.T) {
	dep := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	arr := Arrival(dep, 300, "???", "!!!")
	assert.True(t, arr.Degraded)
	assert.Equal(t, 0.0, arr.NetOffsetShiftHours)
	assert.True(t, arr.Arrival.Equal(dep.Add(5*time.Hour)))

	// One resolvable end anchors both.
	half := Arrival(dep, 300, "JFK", "???")
	assert.True(t, half.Degraded)
	assert.Equal(t, "America/New_York", half.DestZone.String())
	assert.Equal(t, 0.0, half.NetOffsetShiftHours)
}

// DST can differ across the flight itself: departing New York just before
// spring-forward and landing after it shifts the net offset even within one
// zone pair.
func TestArrival_DSTChangeMidFlight(t *testing.T) {
	ny, err := ZoneOf("JFK")
	require.NoError(t, err)

	// 2024-03-10 02:00 EST jumps to 03:00 EDT.
	dep := time.Date(2024, 3, 10, 0, 30, 0, 0, ny)
	arr := Arrival(dep, 360, "JFK", "LHR")

	// Origin offset at departure is -5 (EST); London is +0 all March 10.
	assert.Equal(t, 5.0, arr.NetOffsetShiftHours)
}
