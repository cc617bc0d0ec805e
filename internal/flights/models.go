package flights

import "strings"

// Canonical cabin keys. Raw cabin labels from the results page are folded
// into these buckets by CanonicalCabin; unrecognized labels pass through
// lower-cased.
const (
	CabinMain     = "main"
	CabinFirst    = "first"
	CabinBusiness = "business"
)

// NoFareSentinel is the mileage (in thousands) assumed for a cabin with no
// published award fare. It is larger than any realistic threshold, so any
// finite max-miles filter excludes such flights.
const NoFareSentinel = 1e7

// RawCabinFare is one cabin label and its mileage text exactly as they
// appear on the results page (e.g. "Main Cabin" / "20K"). Order matters:
// when two labels fold into the same canonical cabin, the later one wins.
type RawCabinFare struct {
	Label string
	Miles string
}

// RawFlightFields holds the unprocessed text fields isolated from one
// flight row of the rendered search results page.
type RawFlightFields struct {
	Origin      string
	Destination string
	DepartTime  string // "h:mm AM/PM"
	ArriveTime  string // "h:mm AM/PM"
	Duration    string // free-form, e.g. "5h 30m"
	NumStops    string // leading integer plus words, e.g. "1 stop"
	Fares       []RawCabinFare
}

// FlightRecord is the typed form of one award flight.
type FlightRecord struct {
	Origin          string             `json:"origin"`
	Destination     string             `json:"destination"`
	Date            string             `json:"date,omitempty"` // query departure date, set by the search driver
	DepartTime      ClockTime          `json:"depart_time"`
	ArriveTime      ClockTime          `json:"arrive_time"`
	DurationMinutes int                `json:"duration"`
	NumStops        int                `json:"num_stops"`
	Miles           map[string]float64 `json:"miles"` // canonical cabin -> thousands of miles
}

// MilesInMain returns the main-cabin fare, or NoFareSentinel when the
// flight has no main-cabin award availability.
func (r FlightRecord) MilesInMain() float64 {
	if miles, ok := r.Miles[CabinMain]; ok {
		return miles
	}
	return NoFareSentinel
}

// CanonicalCabin folds a raw cabin label into a canonical key. Substring
// match against main, first, business in that priority order,
// case-insensitive; anything else keeps the lower-cased label verbatim.
func CanonicalCabin(label string) string {
	lowered := strings.ToLower(label)
	switch {
	case strings.Contains(lowered, CabinMain):
		return CabinMain
	case strings.Contains(lowered, CabinFirst):
		return CabinFirst
	case strings.Contains(lowered, CabinBusiness):
		return CabinBusiness
	}
	return lowered
}
