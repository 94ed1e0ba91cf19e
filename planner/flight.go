package planner

import "time"

// ArrivalInfo is the result of flight-time arithmetic for a single leg.
type ArrivalInfo struct {
	Departure             time.Time
	Arrival               time.Time // rendered in the destination zone
	OriginZone            *time.Location
	DestZone              *time.Location
	NetOffsetShiftHours   float64
	CrossesToNextLocalDay bool
	// Degraded means one or both zones were unresolvable and the result was
	// computed with identity offsets. Callers must surface this rather than
	// present a false precise time.
	Degraded bool
}

// Arrival computes the arrival instant for a flight leg. Duration is added to
// the departure instant directly (instant arithmetic is zone-agnostic); zones
// only affect how the endpoints render. Offsets are taken at the relevant
// instants since DST can differ across the flight.
func Arrival(dep time.Time, durationMinutes int, originCode, destCode string) ArrivalInfo {
	raw := dep.Add(time.Duration(durationMinutes) * time.Minute)

	originZone, errOrigin := ZoneOf(originCode)
	destZone, errDest := ZoneOf(destCode)

	degraded := errOrigin != nil || errDest != nil
	if degraded {
		// Identity-offset fallback: treat both ends as one zone, preferring
		// whichever end resolved.
		switch {
		case errOrigin == nil:
			destZone = originZone
		case errDest == nil:
			originZone = destZone
		default:
			originZone, destZone = dep.Location(), dep.Location()
		}
	}

	originOffset := OffsetHours(originZone, dep)
	destOffset := OffsetHours(destZone, raw)

	arrival := raw.In(destZone)
	depAtDest := dep.In(destZone)

	return ArrivalInfo{
		Departure:             dep.In(originZone),
		Arrival:               arrival,
		OriginZone:            originZone,
		DestZone:              destZone,
		NetOffsetShiftHours:   destOffset - originOffset,
		CrossesToNextLocalDay: laterLocalDate(arrival, depAtDest),
		Degraded:              degraded,
	}
}

// laterLocalDate reports whether a's calendar date is strictly after b's,
// both already rendered in the same zone.
func laterLocalDate(a, b time.Time) bool {
	if a.Year() != b.Year() {
		return a.Year() > b.Year()
	}
	return a.YearDay() > b.YearDay()
}
