package planner

import (
	"fmt"
	"time"
)

// ─── Locations ────────────────────────────────────────────────────────────────

type LocationRole string

const (
	RoleAirport LocationRole = "airport"
	RoleHotel   LocationRole = "hotel"
	RoleVenue   LocationRole = "activity-venue"
	RoleCity    LocationRole = "city"
)

// LocationInfo identifies a place for scheduling purposes. Coordinates are
// used only for transfer-time estimation, never for exactness. Immutable once
// constructed.
type LocationInfo struct {
	Code    string       `json:"code,omitempty"` // IATA airport/city code
	Name    string       `json:"name"`
	Address string       `json:"address,omitempty"`
	Lat     float64      `json:"lat,omitempty"`
	Lon     float64      `json:"lon,omitempty"`
	Role    LocationRole `json:"role"`
}

// HasCoords reports whether the location carries usable coordinates.
func (l LocationInfo) HasCoords() bool {
	return l.Lat != 0 || l.Lon != 0
}

// ─── Time windows ─────────────────────────────────────────────────────────────

// TimeWindow is a half-open interval [Start, End). The instants are absolute;
// StartZone/EndZone carry the IANA names each endpoint is displayed in.
type TimeWindow struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	StartZone string    `json:"start_zone,omitempty"`
	EndZone   string    `json:"end_zone,omitempty"`
}

func (w TimeWindow) Valid() bool {
	return !w.Start.IsZero() && w.Start.Before(w.End)
}

// ─── Itinerary items ──────────────────────────────────────────────────────────

type Category string

const (
	CategoryFlight   Category = "flight"
	CategoryHotel    Category = "hotel"
	CategoryActivity Category = "activity"
)

type Provenance string

const (
	SourceSearchAPI  Provenance = "search-api"
	SourceGenerated  Provenance = "generated"
	SourceUserEdited Provenance = "user-edited"
)

// UnassignedDay marks an item not yet placed on the day grid.
const UnassignedDay = -1

// ItineraryItem is the unit of scheduling. Items are never mutated after
// placement; a change produces a new item.
type ItineraryItem struct {
	ID       string       `json:"id"`
	Category Category     `json:"category"`
	Title    string       `json:"title"`
	Detail   string       `json:"detail,omitempty"`
	Window   TimeWindow   `json:"window"`
	Location LocationInfo `json:"location"`
	Price    float64      `json:"price"`
	Currency string       `json:"currency,omitempty"`
	Source   Provenance   `json:"source"`
	DayIndex int          `json:"day_index"`
}

// ─── Trip boundary ────────────────────────────────────────────────────────────

// TripWindow is the overall trip boundary. Start and End are calendar dates
// (midnight, any zone); End is inclusive.
type TripWindow struct {
	Start       time.Time    `json:"start"`
	End         time.Time    `json:"end"`
	Travelers   int          `json:"travelers"`
	Origin      LocationInfo `json:"origin"`
	Destination LocationInfo `json:"destination"`
}

// Days returns the trip length in days (end - start + 1). A reversed window
// counts as a single day; callers surface that through diagnostics.
func (t TripWindow) Days() int {
	d := int(t.End.Sub(t.Start).Hours()/24) + 1
	if d < 1 {
		return 1
	}
	return d
}

// DateOf returns midnight of trip day i in the given zone.
func (t TripWindow) DateOf(i int, loc *time.Location) time.Time {
	d := t.Start.AddDate(0, 0, i)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}

// ─── Day buckets ──────────────────────────────────────────────────────────────

// DayBucket holds the items assigned to one calendar day of the trip, sorted
// by window start.
type DayBucket struct {
	DayIndex int             `json:"day_index"`
	Date     time.Time       `json:"date"`
	Items    []ItineraryItem `json:"items"`
}

// ─── Constraints ──────────────────────────────────────────────────────────────

// ScheduleConstraint is a directed ordering relation between two placed
// instants. Constraints are validated, not solved: a violation is reported
// through diagnostics and signals upstream provider data worth inspecting.
type ScheduleConstraint struct {
	Label     string
	Before    time.Time
	After     time.Time
	MinBuffer time.Duration
}

func (c ScheduleConstraint) Satisfied() bool {
	return !c.After.Before(c.Before.Add(c.MinBuffer))
}

// ─── Diagnostics ──────────────────────────────────────────────────────────────

type DiagKind string

const (
	DiagTimezoneFallback    DiagKind = "timezone-fallback"
	DiagMissingResult       DiagKind = "missing-result"
	DiagMalformedTime       DiagKind = "malformed-time"
	DiagConstraintViolation DiagKind = "constraint-violation"
	DiagDayClamped          DiagKind = "day-clamped"
)

type Diagnostic struct {
	Kind    DiagKind `json:"kind"`
	ItemID  string   `json:"item_id,omitempty"`
	Message string   `json:"message"`
}

// Diagnostics collects every degradation and violation encountered while
// composing a plan. It replaces log output as the engine's trace channel so
// callers and tests can consume decisions without parsing text.
type Diagnostics struct {
	Entries []Diagnostic `json:"entries,omitempty"`
}

func (d *Diagnostics) Add(kind DiagKind, itemID, format string, args ...interface{}) {
	d.Entries = append(d.Entries, Diagnostic{
		Kind:    kind,
		ItemID:  itemID,
		Message: fmt.Sprintf(format, args...),
	})
}

// Has reports whether any entry of the given kind was recorded.
func (d *Diagnostics) Has(kind DiagKind) bool {
	for _, e := range d.Entries {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// ─── Provider inputs ──────────────────────────────────────────────────────────

// FlightLeg is a normalized single-leg flight search result. Departure is an
// absolute instant already anchored in the origin zone by the adapter layer.
type FlightLeg struct {
	Airline         string
	FlightNumber    string
	Origin          string // airport code
	Destination     string // airport code
	Departure       time.Time
	DurationMinutes int
	Price           float64
	Currency        string
}

// Stay is a normalized accommodation search result.
type Stay struct {
	Name          string
	Address       string
	Lat           float64
	Lon           float64
	Rating        float64
	PricePerNight float64
	Currency      string
}

// ActivityOption is a normalized activity search result. DurationMinutes of 0
// means unknown; the distributor substitutes its configured default.
type ActivityOption struct {
	Name            string
	Description     string
	Category        string
	Tags            []string
	DurationMinutes int
	Price           float64
	Currency        string
	Location        LocationInfo
	MinGroup        int
	MaxGroup        int
}

// SearchResults carries whatever the provider fan-out produced. Any field may
// be nil/empty; the engine composes a best-effort plan from what remains.
type SearchResults struct {
	Outbound   *FlightLeg
	Return     *FlightLeg
	Stay       *Stay
	Activities []ActivityOption
}
