package planner

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPool(n int) []ActivityOption {
	pool := make([]ActivityOption, n)
	names := []string{"Museum Tour", "City Walking Tour", "Local Food Tour", "Park Visit", "Local Show"}
	for i := range pool {
		pool[i] = ActivityOption{
			Name:            names[i%len(names)],
			Category:        "Cultural",
			DurationMinutes: 120,
			Price:           40 + float64(i)*10,
			Currency:        "USD",
			Location:        LocationInfo{Name: "Paris", Role: RoleVenue},
		}
	}
	return pool
}

func testAnchors(trip TripWindow, zone *time.Location, startHour, endHour int) Anchors {
	return Anchors{
		GroundStart: time.Date(trip.Start.Year(), trip.Start.Month(), trip.Start.Day(), startHour, 0, 0, 0, zone),
		GroundEnd:   time.Date(trip.End.Year(), trip.End.Month(), trip.End.Day(), endHour, 0, 0, 0, zone),
		HasOutbound: true,
		HasReturn:   true,
	}
}

func TestDistribute_PoolCyclingFillsLongTrip(t *testing.T) {
	paris, err := ZoneOf("CDG")
	require.NoError(t, err)

	trip := testTrip(7)
	anchors := testAnchors(trip, paris, 11, 20)
	pool := testPool(3)

	var diags Diagnostics
	items := DistributeActivities(trip, anchors, pool, paris, DefaultConfig(), &diags)

	// Arrival day 1 + five interior days at min-2 + departure day 2.
	require.Len(t, items, 13)

	// Every instance has a unique identifier, repeats included.
	ids := map[string]bool{}
	for _, it := range items {
		assert.False(t, ids[it.ID], "duplicate id %s", it.ID)
		ids[it.ID] = true
	}

	// No two activities share a day and slot.
	taken := map[string]bool{}
	for _, it := range items {
		key := fmt.Sprintf("%s", it.Window.Start.Format(time.RFC3339))
		assert.False(t, taken[key], "slot collision at %s", key)
		taken[key] = true
	}

	// Cycled repeats carry a day suffix but keep the provider provenance:
	// the data still came from the search result they repeat.
	var repeats int
	for _, it := range items[3:] {
		if strings.Contains(it.Title, "(Day ") {
			repeats++
			assert.Equal(t, SourceSearchAPI, it.Source)
		}
	}
	assert.Equal(t, 10, repeats)
}

func TestDistribute_LateArrivalEmptiesDayZero(t *testing.T) {
	paris, err := ZoneOf("CDG")
	require.NoError(t, err)

	trip := testTrip(4)
	anchors := testAnchors(trip, paris, 18, 20) // on the ground after 16:00

	var diags Diagnostics
	items := DistributeActivities(trip, anchors, testPool(8), paris, DefaultConfig(), &diags)

	for _, it := range items {
		assert.NotEqual(t, trip.Start.Day(), it.Window.Start.Day(),
			"activity %q scheduled on a late-arrival day", it.Title)
	}
}

func TestDistribute_EarlyReturnShrinksLastDay(t *testing.T) {
	paris, err := ZoneOf("CDG")
	require.NoError(t, err)

	trip := testTrip(4)
	lastDay := trip.End.Day()

	late := testAnchors(trip, paris, 10, 20)
	early := testAnchors(trip, paris, 10, 11) // departure before 15:00

	var diags Diagnostics
	count := func(a Anchors) int {
		n := 0
		for _, it := range DistributeActivities(trip, a, testPool(12), paris, DefaultConfig(), &diags) {
			if it.Window.Start.Day() == lastDay {
				n++
			}
		}
		return n
	}

	assert.Equal(t, 2, count(late))
	// Early ground end: budget caps at 1 and the boarding cutoff removes
	// even that morning slot (09:00+2h ends past 11:00-3h).
	assert.Equal(t, 0, count(early))
}

func TestDistribute_ArrivalDaySkipsSlotsBeforeGroundStart(t *testing.T) {
	paris, err := ZoneOf("CDG")
	require.NoError(t, err)

	trip := testTrip(5)
	anchors := testAnchors(trip, paris, 12, 20)

	var diags Diagnostics
	items := DistributeActivities(trip, anchors, testPool(10), paris, DefaultConfig(), &diags)

	for _, it := range items {
		if it.Window.Start.Day() == trip.Start.Day() {
			assert.False(t, it.Window.Start.Before(anchors.GroundStart),
				"%q starts before the traveler is on the ground", it.Title)
		}
	}
}

func TestDistribute_InteriorTargetScalesWithPool(t *testing.T) {
	paris, err := ZoneOf("CDG")
	require.NoError(t, err)

	trip := testTrip(5)
	anchors := testAnchors(trip, paris, 10, 20)
	interiorDays := []int{trip.Start.Day() + 1, trip.Start.Day() + 2, trip.Start.Day() + 3}

	var diags Diagnostics
	perDay := func(pool int) map[int]int {
		counts := map[int]int{}
		for _, it := range DistributeActivities(trip, anchors, testPool(pool), paris, DefaultConfig(), &diags) {
			counts[it.Window.Start.Day()]++
		}
		return counts
	}

	// 25 candidates over 5 days hits the max of 4; 5 candidates floors at 2.
	big := perDay(25)
	small := perDay(5)
	for _, d := range interiorDays {
		assert.Equal(t, 4, big[d])
		assert.Equal(t, 2, small[d])
	}
}

func TestDistribute_DefaultDurationApplied(t *testing.T) {
	paris, err := ZoneOf("CDG")
	require.NoError(t, err)

	trip := testTrip(3)
	anchors := testAnchors(trip, paris, 10, 20)
	pool := testPool(4)
	pool[0].DurationMinutes = 0 // unknown

	cfg := DefaultConfig()
	var diags Diagnostics
	items := DistributeActivities(trip, anchors, pool, paris, cfg, &diags)

	require.NotEmpty(t, items)
	first := items[0]
	assert.Equal(t, cfg.DefaultActivityDuration, first.Window.End.Sub(first.Window.Start))
}

func TestDistribute_EmptyPool(t *testing.T) {
	paris, err := ZoneOf("CDG")
	require.NoError(t, err)

	trip := testTrip(3)
	var diags Diagnostics
	items := DistributeActivities(trip, testAnchors(trip, paris, 10, 20), nil, paris, DefaultConfig(), &diags)

	assert.Empty(t, items)
	assert.True(t, diags.Has(DiagMissingResult))
}
