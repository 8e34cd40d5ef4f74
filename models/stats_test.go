package models

import (
	"testing"
	"time"
)

func at(year int, month time.Month, day, hour int) Occurrence {
	return Occurrence{
		Time:     time.Date(year, month, day, hour, 0, 0, 0, time.UTC),
		Location: "Ghent",
		Target:   "me",
	}
}

func TestWeeklyBarSeries(t *testing.T) {
	// Sunday
	now := time.Date(2026, time.October, 18, 15, 0, 0, 0, time.UTC)
	occurrences := []Occurrence{
		at(2026, time.October, 18, 9),
		at(2026, time.October, 18, 10),
		at(2026, time.October, 14, 23),
		at(2026, time.October, 11, 12), // eight days back, outside the week
		at(2026, time.October, 19, 1),  // tomorrow
	}

	s := WeeklyBarSeries(occurrences, now)
	wantLabels := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	wantValues := []float64{0, 0, 1, 0, 0, 0, 2}

	labels, values := s.Split()
	if len(labels) != 7 {
		t.Fatalf("Expected 7 days, got %d", len(labels))
	}
	for i := range wantLabels {
		if labels[i] != wantLabels[i] || values[i] != wantValues[i] {
			t.Errorf("Day %d: expected (%s, %v), got (%s, %v)", i, wantLabels[i], wantValues[i], labels[i], values[i])
		}
	}
}

func TestMonthlyLineSeries(t *testing.T) {
	now := time.Date(2026, time.October, 18, 15, 0, 0, 0, time.UTC)
	s := MonthlyLineSeries([]Occurrence{at(2026, time.September, 19, 8), at(2026, time.September, 18, 8)}, now)

	if len(s) != 30 {
		t.Fatalf("Expected 30 days, got %d", len(s))
	}
	if s[0].Label != "Sep 19" || s[0].Value != 1 {
		t.Errorf("Expected first point (Sep 19, 1), got %+v", s[0])
	}
	if s[29].Label != "Oct 18" || s[29].Value != 0 {
		t.Errorf("Expected last point (Oct 18, 0), got %+v", s[29])
	}
}

func TestYearlyLineSeries(t *testing.T) {
	now := time.Date(2026, time.January, 31, 12, 0, 0, 0, time.UTC)
	s := YearlyLineSeries([]Occurrence{
		at(2025, time.February, 3, 1),
		at(2025, time.February, 28, 1),
		at(2026, time.January, 1, 1),
		at(2025, time.January, 30, 1), // thirteen months back
	}, now)

	if len(s) != 12 {
		t.Fatalf("Expected 12 months, got %d", len(s))
	}
	if s[0].Label != "Feb 2025" || s[0].Value != 2 {
		t.Errorf("Expected first point (Feb 2025, 2), got %+v", s[0])
	}
	if s[11].Label != "Jan 2026" || s[11].Value != 1 {
		t.Errorf("Expected last point (Jan 2026, 1), got %+v", s[11])
	}
}

func TestLifetimeLineSeries(t *testing.T) {
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	s := LifetimeLineSeries([]Occurrence{
		at(2024, time.March, 1, 1),
		at(2026, time.May, 1, 1),
		at(2026, time.May, 2, 1),
		at(2027, time.January, 1, 1),
	}, now)

	want := Series{{"2024", 1}, {"2025", 0}, {"2026", 2}}
	if len(s) != len(want) {
		t.Fatalf("Expected %d years, got %d", len(want), len(s))
	}
	for i := range want {
		if s[i] != want[i] {
			t.Errorf("Year %d: expected %+v, got %+v", i, want[i], s[i])
		}
	}

	if empty := LifetimeLineSeries(nil, now); len(empty) != 0 {
		t.Errorf("Expected no points without occurrences, got %d", len(empty))
	}
}

func TestDashboardCharts(t *testing.T) {
	charts := DashboardCharts(nil, time.Now())
	if len(charts) != 4 {
		t.Fatalf("Expected 4 charts, got %d", len(charts))
	}
	if charts[0].Kind != BarChart || charts[0].Name != "Small Radius" {
		t.Errorf("Unexpected weekly chart %s/%s", charts[0].Kind, charts[0].Name)
	}
	if charts[1].Name != "Occurrences This Day" || charts[2].Name != "Occurrences This Month" {
		t.Errorf("Unexpected line chart names %s, %s", charts[1].Name, charts[2].Name)
	}
	for _, c := range charts[1:] {
		if c.Kind != LineChart {
			t.Errorf("Expected %s to be a line chart", c.SurfaceID)
		}
	}
}
