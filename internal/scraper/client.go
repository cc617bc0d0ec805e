package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html"

	"github.com/yegors/awardsearch/internal/flights"
	"github.com/yegors/awardsearch/pkg/logger"
)

const defaultUserAgent = "awardsearch/1.0"

// FetchError reports a failed page fetch or render.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// WaitStrategy blocks until the fetched page is considered settled and safe
// to extract from. The results page fills in asynchronously after load, so
// there is no completion signal to poll, only a wait.
type WaitStrategy interface {
	Wait(ctx context.Context) error
}

// FixedDelay waits a constant duration.
type FixedDelay time.Duration

// Wait blocks for the configured delay or until the context is done.
func (d FixedDelay) Wait(ctx context.Context) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Duration(d)):
		return nil
	}
}

// NoWait skips the settle delay, for tests.
type NoWait struct{}

// Wait returns immediately.
func (NoWait) Wait(ctx context.Context) error { return nil }

// Client fetches award search result pages and extracts the raw flight
// fields from them. One client is a reusable session: acquire it once and
// use it for every query combination.
type Client struct {
	httpClient *http.Client
	wait       WaitStrategy
	userAgent  string
	logger     *logger.Logger
}

// NewClient creates a new results-page client.
func NewClient(timeout time.Duration, wait WaitStrategy, logger *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		wait:      wait,
		userAgent: defaultUserAgent,
		logger:    logger.Named("scraper"),
	}
}

// FetchAndExtract fetches the page at url, blocks for the settle delay, and
// returns the raw flight fields found on it. Transport and status failures
// come back as *FetchError; a page with no flight rows is not an error.
func (c *Client) FetchAndExtract(ctx context.Context, url string) ([]flights.RawFlightFields, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	req.Header.Set("Accept", "text/html")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("Fetching results page",
		logger.String("url", url),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	// Let the page settle before reading anything out of it.
	if err := c.wait.Wait(ctx); err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("failed to parse page: %w", err)}
	}

	raw, err := extractFlights(doc)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Extracted flights from page",
		logger.Int("flight_count", len(raw)),
		logger.String("url", url),
	)

	return raw, nil
}
