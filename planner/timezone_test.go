package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoneOf_KnownCodes(t *testing.T) {
	cases := map[string]string{
		"JFK": "America/New_York",
		"lhr": "Europe/London", // case-insensitive
		"DEL": "Asia/Kolkata",
		"TAS": "Asia/Tashkent",
	}
	for code, want := range cases {
		loc, err := ZoneOf(code)
		require.NoError(t, err, code)
		assert.Equal(t, want, loc.String())
	}
}

func TestZoneOf_RawIANAName(t *testing.T) {
	loc, err := ZoneOf("Europe/Paris")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", loc.String())

	loc, err = ZoneOf(" America/New_York ")
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())
}

func TestZoneOf_RawIANANameIsCaseSensitive(t *testing.T) {
	// Zoneinfo lookups are case-sensitive; only the short-code table is not.
	_, err := ZoneOf("EUROPE/PARIS")
	assert.ErrorIs(t, err, ErrUnknownLocation)
}

func TestZoneOf_Unknown(t *testing.T) {
	_, err := ZoneOf("ZZZ")
	assert.ErrorIs(t, err, ErrUnknownLocation)
}

func TestOffsetHours_DSTAware(t *testing.T) {
	ny, err := ZoneOf("JFK")
	require.NoError(t, err)

	winter := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	summer := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, -5.0, OffsetHours(ny, winter))
	assert.Equal(t, -4.0, OffsetHours(ny, summer))
}

func TestOffsetHours_FractionalZones(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	delhi, err := ZoneOf("DEL")
	require.NoError(t, err)
	assert.Equal(t, 5.5, OffsetHours(delhi, at))

	kathmandu, err := ZoneOf("KTM")
	require.NoError(t, err)
	assert.Equal(t, 5.75, OffsetHours(kathmandu, at))
}

func TestConvert_RoundTrip(t *testing.T) {
	a, err := ZoneOf("JFK")
	require.NoError(t, err)
	b, err := ZoneOf("NRT")
	require.NoError(t, err)

	for _, x := range []time.Time{
		time.Date(2024, 3, 10, 1, 30, 0, 0, a), // spring-forward morning
		time.Date(2024, 11, 3, 12, 0, 0, 0, a),
		time.Date(2024, 12, 20, 22, 0, 0, 0, a),
	} {
		back := Convert(Convert(x, a, b), b, a)
		assert.True(t, back.Equal(x), "round trip changed %v to %v", x, back)
	}
}

func TestConvert_WallClockShift(t *testing.T) {
	london, err := ZoneOf("LHR")
	require.NoError(t, err)
	dubai, err := ZoneOf("DXB")
	require.NoError(t, err)

	// 12:00 London in winter (UTC+0) is 16:00 in Dubai (UTC+4).
	noon := time.Date(2024, 1, 10, 12, 0, 0, 0, london)
	assert.Equal(t, 16, Convert(noon, london, dubai).Hour())
}
