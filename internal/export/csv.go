package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/yegors/awardsearch/internal/flights"
)

var fixedHeader = []string{"origin", "destination", "date", "depart_time", "arrive_time", "duration", "num_stops"}

// cabinPriority orders the well-known cabin columns ahead of any
// unrecognized ones.
var cabinPriority = map[string]int{
	flights.CabinMain:     0,
	flights.CabinFirst:    1,
	flights.CabinBusiness: 2,
}

// cabinColumns returns every cabin present across the batch: main, first,
// business first, then the rest alphabetically.
func cabinColumns(records []flights.FlightRecord) []string {
	seen := make(map[string]bool)
	for _, record := range records {
		for cabin := range record.Miles {
			seen[cabin] = true
		}
	}

	cabins := make([]string, 0, len(seen))
	for cabin := range seen {
		cabins = append(cabins, cabin)
	}
	sort.Slice(cabins, func(i, j int) bool {
		pi, iKnown := cabinPriority[cabins[i]]
		pj, jKnown := cabinPriority[cabins[j]]
		switch {
		case iKnown && jKnown:
			return pi < pj
		case iKnown != jKnown:
			return iKnown
		default:
			return cabins[i] < cabins[j]
		}
	})
	return cabins
}

func header(cabins []string) []string {
	columns := append([]string{}, fixedHeader...)
	for _, cabin := range cabins {
		columns = append(columns, "miles_"+cabin)
	}
	return columns
}

func row(record flights.FlightRecord, cabins []string) []string {
	fields := []string{
		record.Origin,
		record.Destination,
		record.Date,
		record.DepartTime.String(),
		record.ArriveTime.String(),
		strconv.Itoa(record.DurationMinutes),
		strconv.Itoa(record.NumStops),
	}
	for _, cabin := range cabins {
		if miles, ok := record.Miles[cabin]; ok {
			fields = append(fields, fmt.Sprintf("%.2f", miles))
		} else {
			fields = append(fields, "")
		}
	}
	return fields
}

// WriteCSV flattens the records into a CSV file at path: one column per
// flight attribute plus one mileage column per cabin present in the batch.
func WriteCSV(records []flights.FlightRecord, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	cabins := cabinColumns(records)

	if err := writer.Write(header(cabins)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(row(record, cabins)); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}
