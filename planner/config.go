package planner

import "time"

// DaySlot is one of the fixed non-overlapping daily start times activities
// are assigned to.
type DaySlot struct {
	Name   string
	Hour   int
	Minute int
}

// Config holds every tunable the engine uses. The numeric defaults mirror the
// original planner's conventions and are deliberately preserved as named,
// overridable values rather than re-derived.
type Config struct {
	// Destination-local conventional hotel hours.
	CheckInHour  int
	CheckOutHour int

	// Assumed ground-start hour on day 0 when no flight result exists, and
	// ground-end hour on the last day when no return flight exists.
	DefaultArrivalHour   int
	DefaultDepartureHour int

	// Minimum airport-to-hotel transfer buffer; also the floor for the
	// coordinate-based estimate.
	TransferBuffer time.Duration
	// Assumed ground speed for the coordinate-based transfer estimate.
	TransferSpeedKmh float64

	// Required gap between the last activity's end and the return flight's
	// departure.
	ReturnBuffer time.Duration

	// Arrival-day cutoff: a ground start at or after this local hour yields
	// an activity-free arrival day.
	LateArrivalHour int
	// Departure-day cutoff: a ground end before this local hour caps the
	// last day at a single activity.
	EarlyDepartureHour int

	// Interior-day activity target bounds.
	MinActivitiesPerDay int
	MaxActivitiesPerDay int

	// Fallback duration for activities that do not state their own.
	DefaultActivityDuration time.Duration

	// The fixed ordered daily slot table.
	Slots []DaySlot
}

// DefaultConfig returns the engine's standard tuning.
func DefaultConfig() Config {
	return Config{
		CheckInHour:             15,
		CheckOutHour:            11,
		DefaultArrivalHour:      15,
		DefaultDepartureHour:    21,
		TransferBuffer:          60 * time.Minute,
		TransferSpeedKmh:        30,
		ReturnBuffer:            3 * time.Hour,
		LateArrivalHour:         16,
		EarlyDepartureHour:      15,
		MinActivitiesPerDay:     2,
		MaxActivitiesPerDay:     4,
		DefaultActivityDuration: 3 * time.Hour,
		Slots: []DaySlot{
			{"morning", 9, 0},
			{"late-morning", 11, 0},
			{"afternoon", 13, 30},
			{"late-afternoon", 16, 0},
			{"evening", 19, 0},
		},
	}
}
