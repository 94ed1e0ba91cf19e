package planner

import (
	"errors"
	"strings"
	"time"
)

// ErrUnknownLocation is returned when a location code cannot be resolved to
// an IANA timezone. Callers must handle it; there is no silent default zone.
var ErrUnknownLocation = errors.New("unknown location code")

// locationZones maps IATA airport and city codes to IANA timezone names.
var locationZones = map[string]string{
	// North America
	"JFK": "America/New_York", "LGA": "America/New_York", "EWR": "America/New_York",
	"NYC": "America/New_York", "BOS": "America/New_York", "MIA": "America/New_York",
	"ATL": "America/New_York", "YYZ": "America/Toronto",
	"ORD": "America/Chicago", "DFW": "America/Chicago", "IAH": "America/Chicago",
	"DEN": "America/Denver", "PHX": "America/Phoenix",
	"LAX": "America/Los_Angeles", "SFO": "America/Los_Angeles", "SEA": "America/Los_Angeles",
	"LAS": "America/Los_Angeles", "YVR": "America/Vancouver",
	"MEX": "America/Mexico_City",
	// South America
	"GRU": "America/Sao_Paulo", "EZE": "America/Argentina/Buenos_Aires",
	"BOG": "America/Bogota", "LIM": "America/Lima",
	// Europe
	"LHR": "Europe/London", "LGW": "Europe/London", "STN": "Europe/London",
	"LTN": "Europe/London", "LON": "Europe/London",
	"CDG": "Europe/Paris", "ORY": "Europe/Paris", "PAR": "Europe/Paris",
	"FRA": "Europe/Berlin", "MUC": "Europe/Berlin", "BER": "Europe/Berlin",
	"SXF": "Europe/Berlin",
	"AMS": "Europe/Amsterdam", "BRU": "Europe/Brussels", "ZRH": "Europe/Zurich",
	"VIE": "Europe/Vienna", "PRG": "Europe/Prague", "WAW": "Europe/Warsaw",
	"MAD": "Europe/Madrid", "BCN": "Europe/Madrid", "LIS": "Europe/Lisbon",
	"FCO": "Europe/Rome", "CIA": "Europe/Rome", "ROM": "Europe/Rome",
	"MXP": "Europe/Rome", "ATH": "Europe/Athens",
	"IST": "Europe/Istanbul", "SAW": "Europe/Istanbul",
	"CPH": "Europe/Copenhagen", "OSL": "Europe/Oslo", "ARN": "Europe/Stockholm",
	"HEL": "Europe/Helsinki", "DUB": "Europe/Dublin", "SVO": "Europe/Moscow",
	// Middle East & Africa
	"DXB": "Asia/Dubai", "AUH": "Asia/Dubai", "DOH": "Asia/Qatar",
	"TLV": "Asia/Jerusalem", "CAI": "Africa/Cairo", "JNB": "Africa/Johannesburg",
	"NBO": "Africa/Nairobi", "CMN": "Africa/Casablanca",
	// Central & South Asia (non-integer offsets included)
	"TAS": "Asia/Tashkent", "ALA": "Asia/Almaty",
	"DEL": "Asia/Kolkata", "BOM": "Asia/Kolkata", "KTM": "Asia/Kathmandu",
	"CMB": "Asia/Colombo", "KHI": "Asia/Karachi", "THR": "Asia/Tehran",
	// East & Southeast Asia
	"SIN": "Asia/Singapore", "BKK": "Asia/Bangkok", "KUL": "Asia/Kuala_Lumpur",
	"CGK": "Asia/Jakarta", "MNL": "Asia/Manila", "SGN": "Asia/Ho_Chi_Minh",
	"HKG": "Asia/Hong_Kong", "PVG": "Asia/Shanghai", "PEK": "Asia/Shanghai",
	"ICN": "Asia/Seoul", "NRT": "Asia/Tokyo", "HND": "Asia/Tokyo", "TYO": "Asia/Tokyo",
	// Oceania
	"SYD": "Australia/Sydney", "MEL": "Australia/Melbourne", "AKL": "Pacific/Auckland",
}

// ZoneOf resolves an airport or city code to its IANA timezone. A code
// containing a slash is treated as a raw IANA name so callers can pass either
// form.
func ZoneOf(code string) (*time.Location, error) {
	code = strings.TrimSpace(code)
	if name, ok := locationZones[strings.ToUpper(code)]; ok {
		return time.LoadLocation(name)
	}
	// IANA names are case-sensitive, so the raw form is looked up as given.
	if strings.Contains(code, "/") {
		if loc, err := time.LoadLocation(code); err == nil {
			return loc, nil
		}
	}
	return nil, ErrUnknownLocation
}

// OffsetHours computes the zone's UTC offset at a given instant, as float
// hours (half- and quarter-hour zones included). The offset is derived by
// rendering the same instant in UTC and in the zone and diffing wall-clock
// minutes, re-done per instant because DST shifts it across the year.
func OffsetHours(loc *time.Location, at time.Time) float64 {
	local := at.In(loc)
	wall := time.Date(local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(), 0, time.UTC)
	return wall.Sub(at.UTC()).Minutes() / 60
}

// Convert reinterprets the wall-clock reading of an instant in the `from`
// zone and renders that absolute instant in the `to` zone. Converting back
// yields the original instant.
func Convert(at time.Time, from, to *time.Location) time.Time {
	wall := time.Date(at.Year(), at.Month(), at.Day(),
		at.Hour(), at.Minute(), at.Second(), at.Nanosecond(), from)
	return wall.In(to)
}

// localHour pins a wall-clock hour onto the calendar date of the given
// instant, in the given zone. Safe across DST transitions, where adding a
// duration to midnight would drift.
func localHour(date time.Time, hour, minute int, loc *time.Location) time.Time {
	d := date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, loc)
}
