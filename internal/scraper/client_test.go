package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yegors/awardsearch/pkg/logger"
)

func TestClientFetchAndExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(resultsPage))
	}))
	defer srv.Close()

	client := NewClient(5*time.Second, NoWait{}, logger.NewNop())
	raw, err := client.FetchAndExtract(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raw) != 2 {
		t.Fatalf("expected 2 flight rows, got %d", len(raw))
	}
}

func TestClientFetchErrorOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "try later", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(5*time.Second, NoWait{}, logger.NewNop())
	_, err := client.FetchAndExtract(context.Background(), srv.URL)
	if err == nil {
		t.Fatalf("expected error for 503 response")
	}
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %T (%v)", err, err)
	}
}

func TestClientFetchErrorOnConnRefused(t *testing.T) {
	client := NewClient(time.Second, NoWait{}, logger.NewNop())
	_, err := client.FetchAndExtract(context.Background(), "http://127.0.0.1:1/results")
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %T (%v)", err, err)
	}
}

func TestFixedDelayHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := FixedDelay(time.Minute).Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBuildSearchURL(t *testing.T) {
	url := BuildSearchURL("2024-01-05", "JFK", "LAX", 2, 1)

	for _, want := range []string{
		"pax=3", "adult=2", "child=1",
		"%22orig%22:%22JFK%22",
		"%22dest%22:%22LAX%22",
		"%22date%22:%222024-01-05%22",
		"searchType=Award",
	} {
		if !strings.Contains(url, want) {
			t.Fatalf("url missing %q: %s", want, url)
		}
	}
}
