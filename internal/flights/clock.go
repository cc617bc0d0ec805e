package flights

import (
	"fmt"
	"strings"
	"time"
)

// ClockTime is a wall-clock time of day with no date or timezone. Flights
// that land past midnight still carry plain times; elapsed time comes from
// the duration field, never from arrive minus depart.
type ClockTime struct {
	Hour   int
	Minute int
}

// Minutes returns the time as minutes after midnight, the comparison key
// for sorting and range checks.
func (t ClockTime) Minutes() int {
	return t.Hour*60 + t.Minute
}

// String formats the time as 24-hour "HH:MM".
func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MarshalJSON renders the time as its 24-hour string form.
func (t ClockTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// ParseClock12 parses a 12-hour time with AM/PM suffix as it appears on the
// results page, e.g. "1:05 PM" -> 13:05, "12:00 AM" -> 00:00.
func ParseClock12(text string) (ClockTime, error) {
	parsed, err := time.Parse("3:04 PM", strings.ToUpper(strings.TrimSpace(text)))
	if err != nil {
		return ClockTime{}, &ParseError{Field: "time", Text: text, Err: err}
	}
	return ClockTime{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

// ParseClock24 parses a 24-hour "HH:MM" time, the format used for filter
// window bounds in config and flags.
func ParseClock24(text string) (ClockTime, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(text))
	if err != nil {
		return ClockTime{}, &ParseError{Field: "time", Text: text, Err: err}
	}
	return ClockTime{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}
