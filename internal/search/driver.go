package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/yegors/awardsearch/internal/flights"
	"github.com/yegors/awardsearch/pkg/logger"
)

// Combination is one (date, origin, destination) triple driving a single
// search query.
type Combination struct {
	Date        string `json:"date"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

func (c Combination) String() string {
	return fmt.Sprintf("%s %s-%s", c.Date, c.Origin, c.Destination)
}

// Passengers is the party size for every query.
type Passengers struct {
	Adults   int
	Children int
}

// Params describes one search run across the Cartesian product of dates,
// origins, and destinations.
type Params struct {
	Dates        []string
	Origins      []string
	Destinations []string
	Passengers   Passengers
	Filter       flights.FilterConfig
}

// Results accumulates the outcome of a run. All holds every normalized
// flight in accumulation order (per-combination batches are depart-time
// sorted); Filtered holds the flights that passed the criteria, globally
// sorted by origin, then date, then departure time. Errors and Missing
// record the combinations that failed or came back empty.
type Results struct {
	All      []flights.FlightRecord `json:"all"`
	Filtered []flights.FlightRecord `json:"filtered"`
	Errors   []Combination          `json:"errors"`
	Missing  []Combination          `json:"missing"`
}

// Fetcher retrieves a results page and extracts its raw flight fields.
// Implemented by scraper.Client.
type Fetcher interface {
	FetchAndExtract(ctx context.Context, url string) ([]flights.RawFlightFields, error)
}

// URLBuilder constructs the search URL for one combination.
type URLBuilder func(date, origin, destination string, adults, children int) string

// Service runs award searches across query combinations, strictly
// sequentially: one fetch in flight at a time.
type Service struct {
	fetcher  Fetcher
	buildURL URLBuilder
	logger   *logger.Logger
}

// NewService creates a new search service.
func NewService(fetcher Fetcher, buildURL URLBuilder, logger *logger.Logger) *Service {
	return &Service{
		fetcher:  fetcher,
		buildURL: buildURL,
		logger:   logger.Named("search"),
	}
}

// comboOutcome is the discriminated result of one combination: found
// records, an empty page, or a failure. Parse failures count as failures,
// the same as fetch failures.
type comboOutcome struct {
	records []flights.FlightRecord
	empty   bool
	err     error
}

// Run iterates every combination (dates outer, origins, then destinations
// fastest), fetching, normalizing, date-tagging, and filtering each batch.
// A failed combination is recorded and skipped, never retried; the run
// itself only fails on invalid params.
func (s *Service) Run(ctx context.Context, params Params) (*Results, error) {
	if len(params.Dates) == 0 || len(params.Origins) == 0 || len(params.Destinations) == 0 {
		return nil, fmt.Errorf("dates, origins, and destinations must all be non-empty")
	}

	total := len(params.Dates) * len(params.Origins) * len(params.Destinations)
	results := &Results{
		All:      []flights.FlightRecord{},
		Filtered: []flights.FlightRecord{},
		Errors:   []Combination{},
		Missing:  []Combination{},
	}

	current := 0
	for _, date := range params.Dates {
		for _, origin := range params.Origins {
			for _, destination := range params.Destinations {
				current++
				combo := Combination{Date: date, Origin: origin, Destination: destination}

				s.logger.Info("Searching combination",
					logger.Int("current", current),
					logger.Int("total", total),
					logger.String("date", combo.Date),
					logger.String("origin", combo.Origin),
					logger.String("destination", combo.Destination),
				)

				outcome := s.runCombination(ctx, combo, params.Passengers)
				switch {
				case outcome.err != nil:
					s.logger.Warn("Combination failed, continuing",
						logger.String("combination", combo.String()),
						logger.Error(outcome.err),
					)
					results.Errors = append(results.Errors, combo)

				case outcome.empty:
					s.logger.Info("No flights found",
						logger.String("combination", combo.String()),
					)
					results.Missing = append(results.Missing, combo)

				default:
					filtered := flights.Filter(outcome.records, params.Filter)
					results.All = append(results.All, outcome.records...)
					results.Filtered = append(results.Filtered, filtered...)

					s.logger.Info("Combination done",
						logger.String("combination", combo.String()),
						logger.Int("found", len(outcome.records)),
						logger.Int("matched", len(filtered)),
					)
				}
			}
		}
	}

	// Global sort over the matches; All keeps accumulation order.
	sort.SliceStable(results.Filtered, func(i, j int) bool {
		a, b := results.Filtered[i], results.Filtered[j]
		if a.Origin != b.Origin {
			return a.Origin < b.Origin
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.DepartTime.Minutes() < b.DepartTime.Minutes()
	})

	s.logger.Info("Search run complete",
		logger.Int("combinations", total),
		logger.Int("total_flights", len(results.All)),
		logger.Int("matched_flights", len(results.Filtered)),
		logger.Int("errored_combinations", len(results.Errors)),
		logger.Int("empty_combinations", len(results.Missing)),
	)

	return results, nil
}

func (s *Service) runCombination(ctx context.Context, combo Combination, pax Passengers) comboOutcome {
	url := s.buildURL(combo.Date, combo.Origin, combo.Destination, pax.Adults, pax.Children)

	raw, err := s.fetcher.FetchAndExtract(ctx, url)
	if err != nil {
		return comboOutcome{err: err}
	}
	if len(raw) == 0 {
		return comboOutcome{empty: true}
	}

	records, err := flights.Normalize(raw)
	if err != nil {
		return comboOutcome{err: err}
	}

	for i := range records {
		records[i].Date = combo.Date
	}

	return comboOutcome{records: records}
}
