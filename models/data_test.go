package models

import (
	"errors"
	"testing"
)

func TestParseSeriesSplit(t *testing.T) {
	s, err := ParseSeries(`[["Monday",0],["Tuesday",4],["Wednesday",50]]`)
	if err != nil {
		t.Fatalf("Failed to parse series: %v", err)
	}

	labels, values := s.Split()
	wantLabels := []string{"Monday", "Tuesday", "Wednesday"}
	wantValues := []float64{0, 4, 50}

	if len(labels) != len(wantLabels) || len(values) != len(wantValues) {
		t.Fatalf("Expected 3 labels and values, got %d and %d", len(labels), len(values))
	}
	for i := range wantLabels {
		if labels[i] != wantLabels[i] {
			t.Errorf("Expected label %d to be %s, got %s", i, wantLabels[i], labels[i])
		}
		if values[i] != wantValues[i] {
			t.Errorf("Expected value %d to be %v, got %v", i, wantValues[i], values[i])
		}
	}
}

func TestSplitKeepsIndexCorrespondence(t *testing.T) {
	s := Series{{"a", 3}, {"b", -1.5}, {"a", 7}, {"", 0}, {"z", 1e6}}
	labels, values := s.Split()
	if len(labels) != len(s) || len(values) != len(s) {
		t.Fatalf("Expected %d labels and values, got %d and %d", len(s), len(labels), len(values))
	}
	for i, p := range s {
		if labels[i] != p.Label || values[i] != p.Value {
			t.Errorf("Index %d: expected (%s, %v), got (%s, %v)", i, p.Label, p.Value, labels[i], values[i])
		}
	}
}

func TestSplitEmptySeries(t *testing.T) {
	s, err := ParseSeries(`[]`)
	if err != nil {
		t.Fatalf("Failed to parse empty series: %v", err)
	}
	labels, values := s.Split()
	if labels == nil || values == nil {
		t.Fatal("Expected non-nil slices for an empty series")
	}
	if len(labels) != 0 || len(values) != 0 {
		t.Errorf("Expected no points, got %d labels and %d values", len(labels), len(values))
	}
}

func TestParseSeriesMalformed(t *testing.T) {
	cases := []string{
		`not json`,
		`{"Monday": 1}`,
		`[["Monday"]]`,
		`[["Monday", "four"]]`,
		`[[1, 2]]`,
		`[["Monday", 1, 2]]`,
	}
	for _, raw := range cases {
		if _, err := ParseSeries(raw); !errors.Is(err, ErrMalformedSeries) {
			t.Errorf("ParseSeries(%s): expected ErrMalformedSeries, got %v", raw, err)
		}
	}
}

func TestSeriesAttrRoundTrip(t *testing.T) {
	s := Series{{"Jan 2026", 2}, {"Feb 2026", 0.5}}
	attr, err := s.Attr()
	if err != nil {
		t.Fatalf("Failed to serialize series: %v", err)
	}
	if attr != `[["Jan 2026",2],["Feb 2026",0.5]]` {
		t.Errorf("Unexpected attribute payload %s", attr)
	}

	var empty Series
	attr, err = empty.Attr()
	if err != nil || attr != "[]" {
		t.Errorf("Expected [] for a nil series, got %s (%v)", attr, err)
	}
}
