package search

import (
	"context"
	"fmt"
	"testing"

	"github.com/yegors/awardsearch/internal/flights"
	"github.com/yegors/awardsearch/pkg/logger"
)

// fakeFetcher serves canned raw fields (or an error) per URL and records the
// order URLs were requested in.
type fakeFetcher struct {
	pages map[string][]flights.RawFlightFields
	fails map[string]error
	calls []string
}

func (f *fakeFetcher) FetchAndExtract(ctx context.Context, url string) ([]flights.RawFlightFields, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.fails[url]; ok {
		return nil, err
	}
	return f.pages[url], nil
}

// testURL is the URLBuilder used in tests; it keys pages by combination.
func testURL(date, origin, destination string, adults, children int) string {
	return fmt.Sprintf("%s|%s|%s", date, origin, destination)
}

func rawFlight(departTime, mainMiles string) flights.RawFlightFields {
	return flights.RawFlightFields{
		Origin:      "JFK",
		Destination: "LAX",
		DepartTime:  departTime,
		ArriveTime:  "9:00 PM",
		Duration:    "6h 0m",
		NumStops:    "0 stops",
		Fares:       []flights.RawCabinFare{{Label: "Main Cabin", Miles: mainMiles}},
	}
}

func testParams(dates, origins, destinations []string) Params {
	return Params{
		Dates:        dates,
		Origins:      origins,
		Destinations: destinations,
		Passengers:   Passengers{Adults: 1},
		Filter: flights.FilterConfig{
			MaxMilesMain:       20,
			MaxDurationMinutes: 11 * 60,
			DepartWindow:       flights.TimeWindow{Min: flights.ClockTime{Hour: 0}, Max: flights.ClockTime{Hour: 23, Minute: 59}},
			ArriveWindow:       flights.TimeWindow{Min: flights.ClockTime{Hour: 0}, Max: flights.ClockTime{Hour: 23, Minute: 59}},
			MaxStops:           1,
		},
	}
}

func TestRunPartialFailure(t *testing.T) {
	// One combination returns 3 flights (1 under the miles cap), the other
	// fails outright. The run must finish and account for both.
	fetcher := &fakeFetcher{
		pages: map[string][]flights.RawFlightFields{
			"2024-01-01|JFK|LAX": {
				rawFlight("8:00 AM", "18K"),
				rawFlight("11:00 AM", "45K"),
				rawFlight("2:00 PM", "32K"),
			},
		},
		fails: map[string]error{
			"2024-01-01|JFK|SFO": fmt.Errorf("render timeout"),
		},
	}

	svc := NewService(fetcher, testURL, logger.NewNop())
	results, err := svc.Run(context.Background(), testParams(
		[]string{"2024-01-01"}, []string{"JFK"}, []string{"LAX", "SFO"},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results.All) != 3 {
		t.Fatalf("expected 3 flights in All, got %d", len(results.All))
	}
	if len(results.Filtered) != 1 {
		t.Fatalf("expected 1 flight in Filtered, got %d", len(results.Filtered))
	}
	if len(results.Errors) != 1 || results.Errors[0] != (Combination{Date: "2024-01-01", Origin: "JFK", Destination: "SFO"}) {
		t.Fatalf("expected exactly the failed combination in Errors, got %+v", results.Errors)
	}
	if len(results.Missing) != 0 {
		t.Fatalf("expected no missing combinations, got %+v", results.Missing)
	}
}

func TestRunEmptyCombination(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string][]flights.RawFlightFields{}}

	svc := NewService(fetcher, testURL, logger.NewNop())
	results, err := svc.Run(context.Background(), testParams(
		[]string{"2024-01-01"}, []string{"JFK"}, []string{"LAX"},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results.Missing) != 1 || results.Missing[0] != (Combination{Date: "2024-01-01", Origin: "JFK", Destination: "LAX"}) {
		t.Fatalf("expected the empty combination in Missing, got %+v", results.Missing)
	}
	if len(results.Errors) != 0 || len(results.All) != 0 || len(results.Filtered) != 0 {
		t.Fatalf("empty combination must contribute nothing else, got %+v", results)
	}
}

func TestRunParseFailureAbandonsCombination(t *testing.T) {
	bad := rawFlight("8:00 AM", "18K")
	bad.Duration = "unknown"

	fetcher := &fakeFetcher{
		pages: map[string][]flights.RawFlightFields{
			"2024-01-01|JFK|LAX": {bad},
		},
	}

	svc := NewService(fetcher, testURL, logger.NewNop())
	results, err := svc.Run(context.Background(), testParams(
		[]string{"2024-01-01"}, []string{"JFK"}, []string{"LAX"},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results.Errors) != 1 {
		t.Fatalf("parse failure must land in Errors, got %+v", results)
	}
	if len(results.All) != 0 {
		t.Fatalf("abandoned combination must not contribute flights")
	}
}

func TestRunTagsRecordsWithDate(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[string][]flights.RawFlightFields{
			"2024-01-01|JFK|LAX": {rawFlight("8:00 AM", "18K")},
		},
	}

	svc := NewService(fetcher, testURL, logger.NewNop())
	results, err := svc.Run(context.Background(), testParams(
		[]string{"2024-01-01"}, []string{"JFK"}, []string{"LAX"},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results.All[0].Date != "2024-01-01" {
		t.Fatalf("record not tagged with query date: %+v", results.All[0])
	}
}

func TestRunIterationOrder(t *testing.T) {
	// Dates outer, then origins, destinations fastest.
	fetcher := &fakeFetcher{pages: map[string][]flights.RawFlightFields{}}

	svc := NewService(fetcher, testURL, logger.NewNop())
	_, err := svc.Run(context.Background(), testParams(
		[]string{"2024-01-01", "2024-01-02"}, []string{"JFK", "EWR"}, []string{"LAX", "SFO"},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"2024-01-01|JFK|LAX", "2024-01-01|JFK|SFO",
		"2024-01-01|EWR|LAX", "2024-01-01|EWR|SFO",
		"2024-01-02|JFK|LAX", "2024-01-02|JFK|SFO",
		"2024-01-02|EWR|LAX", "2024-01-02|EWR|SFO",
	}
	if len(fetcher.calls) != len(want) {
		t.Fatalf("expected %d fetches, got %d", len(want), len(fetcher.calls))
	}
	for i := range want {
		if fetcher.calls[i] != want[i] {
			t.Fatalf("fetch %d: expected %s, got %s", i, want[i], fetcher.calls[i])
		}
	}
}

func TestRunCompositeSort(t *testing.T) {
	laterDate := rawFlight("6:00 AM", "10K")
	earlierDateLate := rawFlight("9:00 PM", "10K")
	earlierDateEarly := rawFlight("7:00 AM", "10K")

	fetcher := &fakeFetcher{
		pages: map[string][]flights.RawFlightFields{
			"2024-01-02|JFK|LAX": {laterDate},
			"2024-01-01|JFK|LAX": {earlierDateLate, earlierDateEarly},
		},
	}

	svc := NewService(fetcher, testURL, logger.NewNop())
	results, err := svc.Run(context.Background(), testParams(
		[]string{"2024-01-02", "2024-01-01"}, []string{"JFK"}, []string{"LAX"},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results.Filtered) != 3 {
		t.Fatalf("expected 3 filtered flights, got %d", len(results.Filtered))
	}
	// Earlier date first regardless of fetch order; within a date, earlier
	// depart time first.
	if results.Filtered[0].Date != "2024-01-01" || results.Filtered[0].DepartTime.Minutes() != 7*60 {
		t.Fatalf("unexpected first record: %+v", results.Filtered[0])
	}
	if results.Filtered[1].Date != "2024-01-01" || results.Filtered[1].DepartTime.Minutes() != 21*60 {
		t.Fatalf("unexpected second record: %+v", results.Filtered[1])
	}
	if results.Filtered[2].Date != "2024-01-02" {
		t.Fatalf("unexpected third record: %+v", results.Filtered[2])
	}
}

func TestRunRejectsEmptyParams(t *testing.T) {
	svc := NewService(&fakeFetcher{}, testURL, logger.NewNop())
	if _, err := svc.Run(context.Background(), testParams(nil, []string{"JFK"}, []string{"LAX"})); err == nil {
		t.Fatalf("expected error for empty dates")
	}
}
