package flights

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var integerPattern = regexp.MustCompile(`\d+`)

// Normalize converts raw per-flight field text into typed FlightRecords and
// sorts them ascending by departure time (stable, so equal times keep their
// page order). Pure function: malformed input returns a *ParseError rather
// than a partial result.
func Normalize(raw []RawFlightFields) ([]FlightRecord, error) {
	records := make([]FlightRecord, 0, len(raw))
	for _, fields := range raw {
		record, err := normalizeOne(fields)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].DepartTime.Minutes() < records[j].DepartTime.Minutes()
	})

	return records, nil
}

func normalizeOne(fields RawFlightFields) (FlightRecord, error) {
	departTime, err := ParseClock12(fields.DepartTime)
	if err != nil {
		return FlightRecord{}, err
	}

	arriveTime, err := ParseClock12(fields.ArriveTime)
	if err != nil {
		return FlightRecord{}, err
	}

	duration, err := parseDuration(fields.Duration)
	if err != nil {
		return FlightRecord{}, err
	}

	stops, err := parseStops(fields.NumStops)
	if err != nil {
		return FlightRecord{}, err
	}

	miles, err := parseFares(fields.Fares)
	if err != nil {
		return FlightRecord{}, err
	}

	return FlightRecord{
		Origin:          fields.Origin,
		Destination:     fields.Destination,
		DepartTime:      departTime,
		ArriveTime:      arriveTime,
		DurationMinutes: duration,
		NumStops:        stops,
		Miles:           miles,
	}, nil
}

// parseDuration scans the text for integers and reads the first as hours,
// the second as minutes. Both "5h 30m" and "5 hr 30 min" yield 330.
func parseDuration(text string) (int, error) {
	numbers := integerPattern.FindAllString(text, -1)
	if len(numbers) < 2 {
		return 0, &ParseError{Field: "duration", Text: text}
	}

	hours, err := strconv.Atoi(numbers[0])
	if err != nil {
		return 0, &ParseError{Field: "duration", Text: text, Err: err}
	}
	minutes, err := strconv.Atoi(numbers[1])
	if err != nil {
		return 0, &ParseError{Field: "duration", Text: text, Err: err}
	}

	return hours*60 + minutes, nil
}

// parseStops reads the leading whitespace-delimited token as an integer,
// so "1 stop" -> 1 and "Nonstop" fails.
func parseStops(text string) (int, error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return 0, &ParseError{Field: "stops", Text: text}
	}

	stops, err := strconv.Atoi(tokens[0])
	if err != nil {
		return 0, &ParseError{Field: "stops", Text: text, Err: err}
	}
	if stops < 0 {
		return 0, &ParseError{Field: "stops", Text: text}
	}

	return stops, nil
}

// parseFares strips the trailing "K" marker from each mileage string and
// parses the remainder as thousands of miles, keyed by canonical cabin.
// Later fares overwrite earlier ones that fold into the same cabin.
func parseFares(fares []RawCabinFare) (map[string]float64, error) {
	miles := make(map[string]float64, len(fares))
	for _, fare := range fares {
		value, err := strconv.ParseFloat(strings.TrimSuffix(fare.Miles, "K"), 64)
		if err != nil {
			return nil, &ParseError{Field: "miles", Text: fare.Miles, Err: err}
		}
		miles[CanonicalCabin(fare.Label)] = value
	}
	return miles, nil
}
