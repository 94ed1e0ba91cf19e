package services

import (
	"time"

	"tripweave/planner"
)

// The adapter normalizes loose provider shapes into the planner's input
// types, so the scheduling core never sniffs optional fields.

// BuildResults assembles the planner inputs from a bundle and the caller's
// selections. Indices are assumed bounds-checked by the handler; a missing
// section simply yields a nil field, which the planner degrades around.
func BuildResults(bundle SearchBundle, outboundIdx, returnIdx, hotelIdx int) planner.SearchResults {
	res := planner.SearchResults{}

	if len(bundle.Outbound) > 0 {
		res.Outbound = ToFlightLeg(bundle.Outbound[outboundIdx])
	}
	if len(bundle.Return) > 0 {
		res.Return = ToFlightLeg(bundle.Return[returnIdx])
	}
	if len(bundle.Hotels) > 0 {
		res.Stay = ToStay(bundle.Hotels[hotelIdx])
	}
	for _, a := range bundle.Activities {
		res.Activities = append(res.Activities, ToActivityOption(a))
	}
	return res
}

// ToFlightLeg anchors the provider's wall-clock departure in the origin zone
// and fills a missing duration from the arrival timestamp when possible.
func ToFlightLeg(f Flight) *planner.FlightLeg {
	dep := parseProviderTime(f.DepartureTime, f.Origin)

	dur := f.DurationMinutes
	if dur <= 0 && !dep.IsZero() {
		if arr := parseProviderTime(f.ArrivalTime, f.Destination); arr.After(dep) {
			dur = int(arr.Sub(dep).Minutes())
		}
	}

	return &planner.FlightLeg{
		Airline:         f.Airline,
		FlightNumber:    f.FlightNumber,
		Origin:          f.Origin,
		Destination:     f.Destination,
		Departure:       dep,
		DurationMinutes: dur,
		Price:           f.Price,
		Currency:        f.Currency,
	}
}

func ToStay(h Hotel) *planner.Stay {
	address := h.Address
	if address == "" {
		address = h.Location
	}
	return &planner.Stay{
		Name:          h.Name,
		Address:       address,
		Lat:           h.Lat,
		Lon:           h.Lon,
		Rating:        h.Rating,
		PricePerNight: h.Price,
		Currency:      h.Currency,
	}
}

func ToActivityOption(a Activity) planner.ActivityOption {
	return planner.ActivityOption{
		Name:            a.Name,
		Description:     a.Description,
		Category:        a.Category,
		Tags:            a.Tags,
		DurationMinutes: a.DurationMinutes,
		Price:           a.Price,
		Currency:        a.Currency,
		Location: planner.LocationInfo{
			Name: a.Location,
			Lat:  a.Lat,
			Lon:  a.Lon,
			Role: planner.RoleVenue,
		},
		MinGroup: a.MinGroup,
		MaxGroup: a.MaxGroup,
	}
}

// BuildTrip constructs the trip boundary from validated request dates.
func BuildTrip(origin, destination string, start, end time.Time, travelers int) planner.TripWindow {
	return planner.TripWindow{
		Start:       start,
		End:         end,
		Travelers:   travelers,
		Origin:      locationFor(origin),
		Destination: locationFor(destination),
	}
}

func locationFor(code string) planner.LocationInfo {
	loc := planner.LocationInfo{Code: code, Name: code, Role: planner.RoleCity}
	if lat, lon, ok := CityCoords(code); ok {
		loc.Lat, loc.Lon = lat, lon
	}
	return loc
}

// parseProviderTime handles the timestamp shapes providers actually emit:
// RFC3339 with an offset, or the zoneless local form Amadeus uses, which is
// anchored in the location's zone. Anything else maps to the zero instant so
// the merger's sentinel path keeps the item visible instead of dropping it.
func parseProviderTime(s, locationCode string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}

	loc, err := planner.ZoneOf(locationCode)
	if err != nil {
		loc = time.UTC
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}
