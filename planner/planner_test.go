package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullResults() SearchResults {
	res := testResults()
	res.Activities = testPool(6)
	return res
}

func TestCompose_FullBundle(t *testing.T) {
	trip := testTrip(7)
	plan := Compose(trip, fullResults(), DefaultConfig())

	assert.Equal(t, 7, plan.TripDays)
	assert.Equal(t, 2, plan.Travelers)
	assert.Equal(t, "CDG", plan.Destination.Code)
	require.Len(t, plan.Days, 7)

	// Flat list and buckets agree item for item.
	bucketed := 0
	for _, b := range plan.Days {
		bucketed += len(b.Items)
	}
	assert.Equal(t, len(plan.Items), bucketed)

	for _, it := range plan.Items {
		assert.GreaterOrEqual(t, it.DayIndex, 0)
		assert.Less(t, it.DayIndex, plan.TripDays)
	}

	// Both flights, the stay, and a distributed activity set are present.
	counts := map[Category]int{}
	for _, it := range plan.Items {
		counts[it.Category]++
	}
	assert.Equal(t, 2, counts[CategoryFlight])
	assert.Equal(t, 1, counts[CategoryHotel])
	assert.Greater(t, counts[CategoryActivity], 0)

	// Total cost is the item-price sum.
	var sum float64
	for _, it := range plan.Items {
		sum += it.Price
	}
	assert.InDelta(t, sum, plan.TotalCost, 0.001)
	assert.Equal(t, "USD", plan.Currency)
}

func TestCompose_CheckInNeverPrecedesGroundStart(t *testing.T) {
	ny, err := ZoneOf("JFK")
	require.NoError(t, err)

	// Sweep departure hours; the property must hold for every plan that has
	// both a flight and a stay.
	for hour := 0; hour < 24; hour += 3 {
		res := fullResults()
		res.Outbound.Departure = time.Date(2025, 6, 1, hour, 0, 0, 0, ny)
		plan := Compose(testTrip(7), res, DefaultConfig())

		var flightEnd, checkIn time.Time
		for _, it := range plan.Items {
			switch {
			case it.Category == CategoryHotel:
				checkIn = it.Window.Start
			case it.Category == CategoryFlight && it.Title == "Outbound flight":
				flightEnd = it.Window.End
			}
		}
		require.False(t, checkIn.IsZero())
		require.False(t, flightEnd.IsZero())
		assert.False(t, checkIn.Before(flightEnd), "departure hour %d: check-in precedes arrival", hour)
	}
}

func TestCompose_NoProvidersStillPlans(t *testing.T) {
	plan := Compose(testTrip(5), SearchResults{}, DefaultConfig())

	assert.Empty(t, plan.Items)
	require.Len(t, plan.Days, 5)
	assert.True(t, plan.Diagnostics.Has(DiagMissingResult))
	assert.Zero(t, plan.TotalCost)
}

func TestCompose_ActivitiesOnly(t *testing.T) {
	res := SearchResults{Activities: testPool(5)}
	plan := Compose(testTrip(4), res, DefaultConfig())

	assert.Greater(t, len(plan.Items), 0)
	for _, it := range plan.Items {
		assert.Equal(t, CategoryActivity, it.Category)
	}
	// Missing flight and stay were reported, not fatal.
	assert.True(t, plan.Diagnostics.Has(DiagMissingResult))
}

func TestCompose_UnknownDestinationDegradesToUTC(t *testing.T) {
	trip := testTrip(4)
	trip.Destination = LocationInfo{Code: "XQZ", Name: "Nowhere", Role: RoleCity}
	res := SearchResults{Activities: testPool(4)}

	plan := Compose(trip, res, DefaultConfig())

	assert.True(t, plan.Diagnostics.Has(DiagTimezoneFallback))
	assert.NotEmpty(t, plan.Items)
	for _, it := range plan.Items {
		assert.Equal(t, "UTC", it.Window.StartZone)
	}
}

func TestCompose_ReversedTripWindowReported(t *testing.T) {
	trip := testTrip(1)
	trip.End = trip.Start.AddDate(0, 0, -3)

	plan := Compose(trip, SearchResults{Activities: testPool(3)}, DefaultConfig())

	assert.Equal(t, 1, plan.TripDays)
	assert.True(t, plan.Diagnostics.Has(DiagConstraintViolation))
}

func TestCompose_Deterministic(t *testing.T) {
	trip := testTrip(6)
	res := fullResults()
	cfg := DefaultConfig()

	a := Compose(trip, res, cfg)
	b := Compose(trip, res, cfg)

	require.Equal(t, len(a.Items), len(b.Items))
	for i := range a.Items {
		// IDs are freshly minted per call; everything else must match.
		assert.Equal(t, a.Items[i].Title, b.Items[i].Title)
		assert.True(t, a.Items[i].Window.Start.Equal(b.Items[i].Window.Start))
		assert.Equal(t, a.Items[i].DayIndex, b.Items[i].DayIndex)
	}
	assert.Equal(t, a.TotalCost, b.TotalCost)
}

func TestCompose_MalformedProviderTimeSurvives(t *testing.T) {
	res := fullResults()
	res.Outbound.Departure = time.Time{} // upstream parse failure

	plan := Compose(testTrip(5), res, DefaultConfig())

	// The flight is kept, sentinel-sorted to the front of day 0.
	require.NotEmpty(t, plan.Items)
	assert.Equal(t, CategoryFlight, plan.Items[0].Category)
	assert.Equal(t, 0, plan.Items[0].DayIndex)
	assert.True(t, plan.Diagnostics.Has(DiagMalformedTime))
}
