package flights

// TimeWindow is an inclusive time-of-day range.
type TimeWindow struct {
	Min ClockTime
	Max ClockTime
}

// Contains reports whether t falls within the window, bounds included.
func (w TimeWindow) Contains(t ClockTime) bool {
	minutes := t.Minutes()
	return minutes >= w.Min.Minutes() && minutes <= w.Max.Minutes()
}

// FilterConfig holds the criteria a flight must satisfy. All thresholds are
// inclusive and all predicates must pass.
type FilterConfig struct {
	MaxMilesMain       float64 // thousands of miles in the main cabin
	MaxDurationMinutes int
	DepartWindow       TimeWindow
	ArriveWindow       TimeWindow
	MaxStops           int
}

// Filter returns the flights satisfying every criterion, preserving their
// relative order. Flights without a main-cabin fare carry the NoFareSentinel
// mileage and so never pass a finite MaxMilesMain. Pure and idempotent.
func Filter(records []FlightRecord, cfg FilterConfig) []FlightRecord {
	filtered := make([]FlightRecord, 0, len(records))
	for _, record := range records {
		if record.MilesInMain() <= cfg.MaxMilesMain &&
			record.DurationMinutes <= cfg.MaxDurationMinutes &&
			cfg.DepartWindow.Contains(record.DepartTime) &&
			cfg.ArriveWindow.Contains(record.ArriveTime) &&
			record.NumStops <= cfg.MaxStops {
			filtered = append(filtered, record)
		}
	}
	return filtered
}
