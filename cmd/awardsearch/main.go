package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/yegors/awardsearch/internal/api"
	"github.com/yegors/awardsearch/internal/config"
	"github.com/yegors/awardsearch/internal/export"
	"github.com/yegors/awardsearch/internal/scraper"
	"github.com/yegors/awardsearch/internal/search"
	"github.com/yegors/awardsearch/pkg/logger"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// listFlag collects repeatable, comma-separable string values.
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("awardsearch", flag.ContinueOnError)
	fs.SetOutput(out)

	defaults := config.Default()

	var dates, origins, destinations listFlag
	fs.Var(&dates, "date", "departure date in YYYY-MM-DD format (repeatable or comma-separated)")
	fs.Var(&origins, "origin", "origin airport code (repeatable or comma-separated)")
	fs.Var(&destinations, "destination", "destination airport code (repeatable or comma-separated)")

	var (
		configPath  = fs.String("config", "", "path to awardsearch.toml")
		adults      = fs.Int("adults", defaults.Search.Adults, "number of adults")
		children    = fs.Int("children", defaults.Search.Children, "number of children")
		settleDelay = fs.Int("settle-delay", defaults.Search.SettleDelaySeconds, "seconds to let each page settle before extraction")
		maxMiles    = fs.Float64("max-miles-main", defaults.Filter.MaxMilesMain, "maximum main-cabin miles, in thousands")
		maxDuration = fs.Int("max-duration", defaults.Filter.MaxDurationMinutes, "maximum flight duration in minutes")
		departMin   = fs.String("depart-min", defaults.Filter.DepartTimeRange[0], "earliest departure time, HH:MM")
		departMax   = fs.String("depart-max", defaults.Filter.DepartTimeRange[1], "latest departure time, HH:MM")
		arriveMin   = fs.String("arrive-min", defaults.Filter.ArriveTimeRange[0], "earliest arrival time, HH:MM")
		arriveMax   = fs.String("arrive-max", defaults.Filter.ArriveTimeRange[1], "latest arrival time, HH:MM")
		maxStops    = fs.Int("max-stops", defaults.Filter.MaxStops, "maximum number of stops")
		outAll      = fs.String("out-all", defaults.Export.RawPath, "CSV output for all flights found")
		outFiltered = fs.String("out-filtered", defaults.Export.FilteredPath, "CSV output for flights matching the criteria")
		serve       = fs.Bool("serve", false, "serve the results over HTTP after the run")
		listenAddr  = fs.String("listen", defaults.Server.Addr, "address for -serve")
		logLevel    = fs.String("log-level", defaults.Logging.Level, "log level: debug, info, warn, error")
		logFormat   = fs.String("log-format", defaults.Logging.Format, "log format: console, json")
	)

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if len(cfg.Filter.DepartTimeRange) != 2 || len(cfg.Filter.ArriveTimeRange) != 2 {
		return fmt.Errorf("depart_time_range and arrive_time_range must each have exactly two HH:MM values")
	}

	// Explicitly set flags win over the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "adults":
			cfg.Search.Adults = *adults
		case "children":
			cfg.Search.Children = *children
		case "settle-delay":
			cfg.Search.SettleDelaySeconds = *settleDelay
		case "max-miles-main":
			cfg.Filter.MaxMilesMain = *maxMiles
		case "max-duration":
			cfg.Filter.MaxDurationMinutes = *maxDuration
		case "depart-min":
			cfg.Filter.DepartTimeRange[0] = *departMin
		case "depart-max":
			cfg.Filter.DepartTimeRange[1] = *departMax
		case "arrive-min":
			cfg.Filter.ArriveTimeRange[0] = *arriveMin
		case "arrive-max":
			cfg.Filter.ArriveTimeRange[1] = *arriveMax
		case "max-stops":
			cfg.Filter.MaxStops = *maxStops
		case "out-all":
			cfg.Export.RawPath = *outAll
		case "out-filtered":
			cfg.Export.FilteredPath = *outFiltered
		case "serve":
			cfg.Server.Enabled = *serve
		case "listen":
			cfg.Server.Addr = *listenAddr
		case "log-level":
			cfg.Logging.Level = *logLevel
		case "log-format":
			cfg.Logging.Format = *logFormat
		}
	})

	if len(dates) == 0 || len(origins) == 0 || len(destinations) == 0 {
		fs.Usage()
		return fmt.Errorf("at least one -date, -origin, and -destination is required")
	}

	log, err := logger.New(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		return err
	}
	defer log.Sync()

	filter, err := cfg.FlightFilter()
	if err != nil {
		return err
	}

	client := scraper.NewClient(cfg.RequestTimeout(), scraper.FixedDelay(cfg.SettleDelay()), log)
	service := search.NewService(client, scraper.BuildSearchURL, log)

	results, err := service.Run(context.Background(), search.Params{
		Dates:        dates,
		Origins:      origins,
		Destinations: destinations,
		Passengers:   search.Passengers{Adults: cfg.Search.Adults, Children: cfg.Search.Children},
		Filter:       filter,
	})
	if err != nil {
		return err
	}

	if len(results.Filtered) > 0 {
		export.RenderTable(out, results.Filtered)
	}

	if len(results.All) > 0 {
		if err := export.WriteCSV(results.All, cfg.Export.RawPath); err != nil {
			return err
		}
		log.Info("Saved all flights",
			logger.Int("records", len(results.All)),
			logger.String("path", cfg.Export.RawPath),
		)
	}
	if len(results.Filtered) > 0 {
		if err := export.WriteCSV(results.Filtered, cfg.Export.FilteredPath); err != nil {
			return err
		}
		log.Info("Saved matching flights",
			logger.Int("records", len(results.Filtered)),
			logger.String("path", cfg.Export.FilteredPath),
		)
	}

	for _, combo := range results.Errors {
		log.Warn("Combination errored", logger.String("combination", combo.String()))
	}
	for _, combo := range results.Missing {
		log.Info("Combination returned no flights", logger.String("combination", combo.String()))
	}

	if cfg.Server.Enabled {
		router := api.NewRouter(results, cfg, log)
		log.Info("Serving results", logger.String("addr", cfg.Server.Addr))
		return http.ListenAndServe(cfg.Server.Addr, router.Routes())
	}

	return nil
}
