package planner

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AllocationContext carries the distributor's working state through one
// planning request. It exists as an explicit value, not package state, so
// concurrent requests never share counters.
type AllocationContext struct {
	trip     TripWindow
	anchors  Anchors
	destZone *time.Location
	cfg      Config

	poolIdx int
}

// DistributeActivities assigns the candidate pool across the trip's
// non-anchor time. Arrival and departure days get reduced budgets driven by
// the ground window; interior days get a target derived from pool size. When
// the pool is smaller than the demand, it cycles, producing repeat instances
// under fresh identifiers so downstream consumers never mistake a repeat for
// its original.
func DistributeActivities(trip TripWindow, anchors Anchors, pool []ActivityOption, destZone *time.Location, cfg Config, diags *Diagnostics) []ItineraryItem {
	if len(pool) == 0 {
		diags.Add(DiagMissingResult, "", "no activity results; plan contains anchors only")
		return nil
	}

	ctx := &AllocationContext{trip: trip, anchors: anchors, destZone: destZone, cfg: cfg}
	days := trip.Days()

	perDay := len(pool) / days
	if perDay < cfg.MinActivitiesPerDay {
		perDay = cfg.MinActivitiesPerDay
	}
	if perDay > cfg.MaxActivitiesPerDay {
		perDay = cfg.MaxActivitiesPerDay
	}

	var items []ItineraryItem
	for day := 0; day < days; day++ {
		items = append(items, ctx.fillDay(day, ctx.dayBudget(day, days, perDay), pool)...)
	}
	return items
}

// dayBudget returns how many activities a day may hold. A late ground start
// empties the arrival day; an early ground end caps the departure day.
func (ctx *AllocationContext) dayBudget(day, days, perDay int) int {
	arrival := func() int {
		if ctx.anchors.GroundStart.In(ctx.destZone).Hour() >= ctx.cfg.LateArrivalHour {
			return 0
		}
		return 1
	}
	departure := func() int {
		if ctx.anchors.GroundEnd.In(ctx.destZone).Hour() < ctx.cfg.EarlyDepartureHour {
			return 1
		}
		return 2
	}

	switch {
	case days == 1:
		a, d := arrival(), departure()
		if a < d {
			return a
		}
		return d
	case day == 0:
		return arrival()
	case day == days-1:
		return departure()
	default:
		return perDay
	}
}

// fillDay takes the next `budget` pool entries and pins them to the day's
// slots. The Nth activity of a day takes the Nth slot, offset on the arrival
// day so nothing starts before the traveler is on the ground.
func (ctx *AllocationContext) fillDay(day, budget int, pool []ActivityOption) []ItineraryItem {
	slots := ctx.cfg.Slots
	base := ctx.trip.DateOf(day, ctx.destZone)

	slotOffset := 0
	if day == 0 {
		for slotOffset < len(slots)-1 && ctx.slotStart(base, slots[slotOffset]).Before(ctx.anchors.GroundStart) {
			slotOffset++
		}
	}

	lastDay := day == ctx.trip.Days()-1
	cutoff := ctx.anchors.GroundEnd.Add(-ctx.cfg.ReturnBuffer)

	var items []ItineraryItem
	for n := 0; n < budget; n++ {
		opt := pool[ctx.poolIdx%len(pool)]
		cycle := ctx.poolIdx / len(pool)

		start := ctx.slotStart(base, slots[(slotOffset+n)%len(slots)])
		dur := time.Duration(opt.DurationMinutes) * time.Minute
		if dur <= 0 {
			dur = ctx.cfg.DefaultActivityDuration
		}
		end := start.Add(dur)

		// Keep the airport transfer ahead of the return boarding cutoff.
		if lastDay && end.After(cutoff) {
			break
		}

		// Repeats keep the provider provenance: the suffix and fresh ID are
		// what distinguish them, the underlying option is still a search
		// result.
		title := opt.Name
		if cycle > 0 {
			title = fmt.Sprintf("%s (Day %d)", opt.Name, day+1)
		}

		loc := opt.Location
		if loc.Role == "" {
			loc.Role = RoleVenue
		}

		items = append(items, ItineraryItem{
			ID:       uuid.New().String(),
			Category: CategoryActivity,
			Title:    title,
			Detail:   opt.Description,
			Window: TimeWindow{
				Start:     start,
				End:       end,
				StartZone: ctx.destZone.String(),
				EndZone:   ctx.destZone.String(),
			},
			Location: loc,
			Price:    opt.Price,
			Currency: opt.Currency,
			Source:   SourceSearchAPI,
			DayIndex: UnassignedDay,
		})
		ctx.poolIdx++
	}
	return items
}

func (ctx *AllocationContext) slotStart(base time.Time, s DaySlot) time.Time {
	return localHour(base, s.Hour, s.Minute, ctx.destZone)
}
