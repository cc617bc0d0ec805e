package main

import (
	"reflect"
	"testing"
)

func TestListFlagCommaSeparated(t *testing.T) {
	var l listFlag
	if err := l.Set("JFK,EWR, LGA"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual([]string(l), []string{"JFK", "EWR", "LGA"}) {
		t.Fatalf("unexpected values: %v", l)
	}
}

func TestListFlagRepeatable(t *testing.T) {
	var l listFlag
	for _, v := range []string{"2024-01-01", "2024-01-02"} {
		if err := l.Set(v); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if !reflect.DeepEqual([]string(l), []string{"2024-01-01", "2024-01-02"}) {
		t.Fatalf("unexpected values: %v", l)
	}
}

func TestRunRequiresDatesOriginsDestinations(t *testing.T) {
	err := run([]string{"-date", "2024-01-01", "-origin", "JFK"}, discard{})
	if err == nil {
		t.Fatalf("expected error when destinations are missing")
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
