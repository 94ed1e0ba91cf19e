package planner

import (
	"math"
	"sort"
	"time"
)

// MergeTimeline combines all placed items into one globally time-sorted
// sequence and re-partitions them into day buckets. Nothing is dropped: a
// malformed start sorts first under a sentinel instant, and an out-of-range
// day index clamps to the nearest valid day. Both cases are reported through
// diagnostics.
func MergeTimeline(trip TripWindow, items []ItineraryItem, destZone *time.Location, diags *Diagnostics) ([]ItineraryItem, []DayBucket) {
	days := trip.Days()

	merged := make([]ItineraryItem, len(items))
	copy(merged, items)

	for i := range merged {
		if merged[i].Window.Start.IsZero() {
			// Sentinel: the zero instant sorts ahead of every real start, so
			// the anomaly stays visible at the head of the plan.
			diags.Add(DiagMalformedTime, merged[i].ID,
				"%q has no parseable start time; sorted first under sentinel", merged[i].Title)
		} else if !merged[i].Window.Valid() {
			diags.Add(DiagMalformedTime, merged[i].ID,
				"%q has end not after start", merged[i].Title)
		}
	}

	// Stable and total: equal starts preserve input relative order, which
	// also makes re-sorting a sorted list the identity.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Window.Start.Before(merged[j].Window.Start)
	})

	tripStart := trip.DateOf(0, destZone)
	for i := range merged {
		merged[i].DayIndex = clampDay(dayIndexOf(merged[i].Window.Start, tripStart, destZone), days, merged[i], diags)
	}

	buckets := make([]DayBucket, days)
	for d := 0; d < days; d++ {
		buckets[d] = DayBucket{DayIndex: d, Date: trip.DateOf(d, destZone)}
	}
	for _, it := range merged {
		buckets[it.DayIndex].Items = append(buckets[it.DayIndex].Items, it)
	}

	return merged, buckets
}

// dayIndexOf is the calendar-day offset of an instant from the trip start,
// both rendered destination-local. Rounded, not truncated: DST makes some
// days 23 or 25 hours long.
func dayIndexOf(start, tripStart time.Time, loc *time.Location) int {
	s := start.In(loc)
	day := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, loc)
	return int(math.Round(day.Sub(tripStart).Hours() / 24))
}

func clampDay(idx, days int, it ItineraryItem, diags *Diagnostics) int {
	switch {
	case idx < 0:
		diags.Add(DiagDayClamped, it.ID, "%q falls %d day(s) before the trip; clamped to day 0", it.Title, -idx)
		return 0
	case idx >= days:
		diags.Add(DiagDayClamped, it.ID, "%q falls past the trip end; clamped to day %d", it.Title, days-1)
		return days - 1
	default:
		return idx
	}
}
