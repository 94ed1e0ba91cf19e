// Package planner assembles independently-sourced flight, hotel and activity
// search results into a single chronologically ordered, day-partitioned trip
// plan. It is a pure computation: no shared state survives a call, every
// degradation is reported through the returned diagnostics, and nothing here
// is fatal: the contract is to always return the best achievable plan for
// whatever inputs arrived.
package planner

import "time"

// Plan is the composed itinerary handed to downstream consumers: the flat
// time-sorted item list, the parallel day-bucketed view, the cost aggregate
// and the trip metadata.
type Plan struct {
	Items       []ItineraryItem `json:"items"`
	Days        []DayBucket     `json:"days"`
	TotalCost   float64         `json:"total_cost"`
	Currency    string          `json:"currency,omitempty"`
	Destination LocationInfo    `json:"destination"`
	TripDays    int             `json:"trip_days"`
	Travelers   int             `json:"travelers"`
	Diagnostics Diagnostics     `json:"diagnostics"`
}

// Compose runs the full pipeline: anchor placement, activity distribution and
// the chronological merge. Deterministic for a given input; safe to call from
// concurrent requests.
func Compose(trip TripWindow, res SearchResults, cfg Config) Plan {
	var diags Diagnostics

	if trip.End.Before(trip.Start) {
		diags.Add(DiagConstraintViolation, "", "trip end %s precedes start %s; treating as a one-day trip",
			trip.End.Format("2006-01-02"), trip.Start.Format("2006-01-02"))
		trip.End = trip.Start
	}
	if trip.Travelers < 1 {
		trip.Travelers = 1
	}

	destZone, err := ZoneOf(trip.Destination.Code)
	if err != nil {
		diags.Add(DiagTimezoneFallback, "", "destination %q: timezone unresolved, using UTC", trip.Destination.Code)
		destZone = time.UTC
	}

	anchors := PlaceAnchors(trip, res, destZone, cfg, &diags)
	activities := DistributeActivities(trip, anchors, res.Activities, destZone, cfg, &diags)

	all := make([]ItineraryItem, 0, len(anchors.Items)+len(activities))
	all = append(all, anchors.Items...)
	all = append(all, activities...)

	items, buckets := MergeTimeline(trip, all, destZone, &diags)

	validateReturnGap(anchors, items, cfg, &diags)

	var total float64
	var currency string
	for _, it := range items {
		total += it.Price
		if currency == "" && it.Currency != "" {
			currency = it.Currency
		}
	}

	return Plan{
		Items:       items,
		Days:        buckets,
		TotalCost:   total,
		Currency:    currency,
		Destination: trip.Destination,
		TripDays:    trip.Days(),
		Travelers:   trip.Travelers,
		Diagnostics: diags,
	}
}

// validateReturnGap checks that the last activity leaves room for the airport
// transfer before the return flight's departure. Advisory only: the
// distributor already suppresses last-day overruns, so a violation here means
// the inputs carried one in.
func validateReturnGap(anchors Anchors, items []ItineraryItem, cfg Config, diags *Diagnostics) {
	if !anchors.HasReturn {
		return
	}
	var lastEnd time.Time
	var lastID string
	for _, it := range items {
		if it.Category == CategoryActivity && it.Window.End.After(lastEnd) {
			lastEnd, lastID = it.Window.End, it.ID
		}
	}
	if lastEnd.IsZero() {
		return
	}
	c := ScheduleConstraint{
		Label:     "return departure after last activity",
		Before:    lastEnd,
		After:     anchors.GroundEnd,
		MinBuffer: cfg.ReturnBuffer,
	}
	if !c.Satisfied() {
		diags.Add(DiagConstraintViolation, lastID,
			"last activity ends %s, inside the %s buffer before the %s return departure",
			lastEnd.Format(time.RFC3339), cfg.ReturnBuffer, anchors.GroundEnd.Format(time.RFC3339))
	}
}
