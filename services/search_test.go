package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISODurationMinutes(t *testing.T) {
	cases := map[string]int{
		"PT5H30M": 330,
		"PT2H":    120,
		"PT45M":   45,
		"pt1h5m":  65,
		"":        0,
		"bogus":   0,
	}
	for iso, want := range cases {
		assert.Equal(t, want, parseISODurationMinutes(iso), iso)
	}
}

func TestParsePrice(t *testing.T) {
	assert.Equal(t, 620.5, parsePrice("620.50"))
	assert.Equal(t, 0.0, parsePrice("free"))
}

func TestParseRating_Clamped(t *testing.T) {
	assert.Equal(t, 4.0, parseRating(""))
	assert.Equal(t, 3.5, parseRating("3.5"))
	assert.Equal(t, 5.0, parseRating("9"))
}

func TestParseFlightOffers(t *testing.T) {
	payload := []byte(`{
		"data": [
			{
				"price": {"grandTotal": "620.00", "currency": "USD"},
				"validatingAirlineCodes": ["AF"],
				"itineraries": [
					{
						"duration": "PT7H10M",
						"segments": [
							{
								"departure": {"iataCode": "JFK", "at": "2025-06-01T19:00:00"},
								"arrival": {"iataCode": "CDG", "at": "2025-06-02T08:10:00"},
								"carrierCode": "AF",
								"number": "007"
							}
						]
					}
				]
			},
			{
				"price": {"grandTotal": "0", "currency": "USD"},
				"itineraries": [{"duration": "PT1H", "segments": [
					{"departure": {"iataCode": "A", "at": "x"}, "arrival": {"iataCode": "B", "at": "y"}, "carrierCode": "ZZ", "number": "1"}
				]}]
			}
		]
	}`)

	flights, err := parseFlightOffers(payload)
	require.NoError(t, err)
	require.Len(t, flights, 1) // zero-priced offer dropped

	f := flights[0]
	assert.Equal(t, "Air France", f.Airline)
	assert.Equal(t, "AF007", f.FlightNumber)
	assert.Equal(t, "JFK", f.Origin)
	assert.Equal(t, "CDG", f.Destination)
	assert.Equal(t, 430, f.DurationMinutes)
	assert.Equal(t, 0, f.Stops)
	assert.Equal(t, 620.0, f.Price)
}

func TestParseFlightOffers_MultiSegment(t *testing.T) {
	payload := []byte(`{
		"data": [
			{
				"price": {"grandTotal": "410.00", "currency": "USD"},
				"itineraries": [
					{
						"duration": "PT9H",
						"segments": [
							{"departure": {"iataCode": "TAS", "at": "2025-06-01T06:00:00"}, "arrival": {"iataCode": "IST", "at": "2025-06-01T09:30:00"}, "carrierCode": "TK", "number": "371"},
							{"departure": {"iataCode": "IST", "at": "2025-06-01T11:00:00"}, "arrival": {"iataCode": "LHR", "at": "2025-06-01T13:00:00"}, "carrierCode": "TK", "number": "1979"}
						]
					}
				]
			}
		]
	}`)

	flights, err := parseFlightOffers(payload)
	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, "TAS", flights[0].Origin)
	assert.Equal(t, "LHR", flights[0].Destination)
	assert.Equal(t, 1, flights[0].Stops)
	assert.Equal(t, 540, flights[0].DurationMinutes)
}

func TestParseFlightOffers_Malformed(t *testing.T) {
	_, err := parseFlightOffers([]byte(`{not json`))
	assert.Error(t, err)
}

func TestAirportToCity(t *testing.T) {
	assert.Equal(t, "LON", airportToCity("LHR"))
	assert.Equal(t, "PAR", airportToCity("CDG"))
	assert.Equal(t, "IST", airportToCity("IST"))
}

func TestCityCoords(t *testing.T) {
	lat, lon, ok := CityCoords("CDG")
	require.True(t, ok)
	assert.InDelta(t, 48.86, lat, 0.1)
	assert.InDelta(t, 2.35, lon, 0.1)

	_, _, ok = CityCoords("ZZZ")
	assert.False(t, ok)
}
