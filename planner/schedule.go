package planner

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Anchors are the placed fixed-dependency legs of a trip: outbound flight,
// accommodation stay and return flight, plus the ground window they imply.
type Anchors struct {
	Items []ItineraryItem

	// GroundStart is when time at the destination begins (outbound arrival,
	// or the conventional arrival hour when no flight result exists).
	GroundStart time.Time
	// GroundEnd is when it ends (return departure, or the conventional
	// evening hour when no return result exists).
	GroundEnd time.Time

	Constraints []ScheduleConstraint
	HasStay     bool
	HasOutbound bool
	HasReturn   bool
}

// PlaceAnchors puts the three anchor legs on the absolute timeline, enforcing
// the transfer buffer between dependent events. Missing results degrade to
// the documented defaults; they never abort the plan.
func PlaceAnchors(trip TripWindow, res SearchResults, destZone *time.Location, cfg Config, diags *Diagnostics) Anchors {
	a := Anchors{}

	// Outbound flight: placed verbatim; its arrival is the trip's ground
	// start.
	if res.Outbound != nil {
		leg := res.Outbound
		arr := Arrival(leg.Departure, leg.DurationMinutes, leg.Origin, leg.Destination)
		if arr.Degraded {
			diags.Add(DiagTimezoneFallback, "",
				"outbound %s-%s: timezone unresolved, arrival computed with identity offset",
				leg.Origin, leg.Destination)
		}
		a.GroundStart = arr.Arrival
		a.HasOutbound = true
		a.Items = append(a.Items, flightItem(leg, arr, "Outbound flight"))
	} else {
		diags.Add(DiagMissingResult, "", "no outbound flight result; assuming %02d:00 arrival on day 0", cfg.DefaultArrivalHour)
		a.GroundStart = localHour(trip.DateOf(0, destZone), cfg.DefaultArrivalHour, 0, destZone)
	}

	// Return flight: its departure is the ground end.
	if res.Return != nil {
		leg := res.Return
		arr := Arrival(leg.Departure, leg.DurationMinutes, leg.Origin, leg.Destination)
		if arr.Degraded {
			diags.Add(DiagTimezoneFallback, "",
				"return %s-%s: timezone unresolved, arrival computed with identity offset",
				leg.Origin, leg.Destination)
		}
		a.GroundEnd = leg.Departure.In(destZone)
		a.HasReturn = true
		a.Items = append(a.Items, flightItem(leg, arr, "Return flight"))
	} else {
		diags.Add(DiagMissingResult, "", "no return flight result; assuming %02d:00 departure on the last day", cfg.DefaultDepartureHour)
		a.GroundEnd = localHour(trip.DateOf(trip.Days()-1, destZone), cfg.DefaultDepartureHour, 0, destZone)
	}

	// Accommodation: check-in is the later of the conventional hour and
	// arrival plus the transfer from the airport. Check-out stays at the
	// conventional hour on the end date; it normally precedes the return
	// flight and is independent of it.
	if res.Stay != nil {
		stay := res.Stay
		hotelLoc := LocationInfo{
			Name:    stay.Name,
			Address: stay.Address,
			Lat:     stay.Lat,
			Lon:     stay.Lon,
			Role:    RoleHotel,
		}

		standardCheckIn := localHour(trip.DateOf(0, destZone), cfg.CheckInHour, 0, destZone)
		transfer := EstimateTransfer(trip.Destination, hotelLoc, cfg)

		checkIn := standardCheckIn
		if buffered := a.GroundStart.Add(transfer); buffered.After(checkIn) {
			checkIn = buffered
		}
		checkOut := localHour(trip.DateOf(trip.Days()-1, destZone), cfg.CheckOutHour, 0, destZone)

		nights := trip.Days() - 1
		if nights < 1 {
			nights = 1
		}

		item := ItineraryItem{
			ID:       uuid.New().String(),
			Category: CategoryHotel,
			Title:    stay.Name,
			Detail:   fmt.Sprintf("%d night(s), rated %.1f", nights, stay.Rating),
			Window: TimeWindow{
				Start:     checkIn,
				End:       checkOut,
				StartZone: destZone.String(),
				EndZone:   destZone.String(),
			},
			Location: hotelLoc,
			Price:    stay.PricePerNight * float64(nights),
			Currency: stay.Currency,
			Source:   SourceSearchAPI,
			DayIndex: UnassignedDay,
		}
		a.Items = append(a.Items, item)
		a.HasStay = true

		a.Constraints = append(a.Constraints, ScheduleConstraint{
			Label:  "hotel check-in after arrival transfer",
			Before: a.GroundStart,
			After:  checkIn,
		})
	} else {
		diags.Add(DiagMissingResult, "", "no accommodation result; stay anchors omitted")
	}

	// Placement sanity: with the max() rule above this cannot fire for data
	// the engine produced, so a violation points at inconsistent provider
	// input. Logged, never thrown.
	for _, c := range a.Constraints {
		if !c.Satisfied() {
			diags.Add(DiagConstraintViolation, "", "%s: %s precedes %s",
				c.Label, c.After.Format(time.RFC3339), c.Before.Add(c.MinBuffer).Format(time.RFC3339))
		}
	}

	return a
}

func flightItem(leg *FlightLeg, arr ArrivalInfo, title string) ItineraryItem {
	detail := fmt.Sprintf("%s %s, %s-%s", leg.Airline, leg.FlightNumber, leg.Origin, leg.Destination)
	if arr.CrossesToNextLocalDay {
		detail += " (arrives next day)"
	}
	if arr.Degraded {
		detail += " (timezone estimated)"
	}
	return ItineraryItem{
		ID:       uuid.New().String(),
		Category: CategoryFlight,
		Title:    title,
		Detail:   detail,
		Window: TimeWindow{
			Start:     arr.Departure,
			End:       arr.Arrival,
			StartZone: arr.OriginZone.String(),
			EndZone:   arr.DestZone.String(),
		},
		Location: LocationInfo{Code: leg.Origin, Name: leg.Origin, Role: RoleAirport},
		Price:    leg.Price,
		Currency: leg.Currency,
		Source:   SourceSearchAPI,
		DayIndex: UnassignedDay,
	}
}
