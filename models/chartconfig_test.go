package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNewChartConfigBar(t *testing.T) {
	s := Series{{"Monday", 0}, {"Tuesday", 4}}
	cfg := NewChartConfig(BarChart, "Small Radius", s)

	if cfg.Type != BarChart {
		t.Errorf("Expected type bar, got %s", cfg.Type)
	}
	if !cfg.Options.Responsive {
		t.Error("Expected responsive chart")
	}
	if cfg.Options.Plugins.Legend.Position != "none" {
		t.Errorf("Expected hidden legend, got %q", cfg.Options.Plugins.Legend.Position)
	}
	if cfg.Options.Plugins.Title.Display {
		t.Error("Expected title to be hidden")
	}
	if len(cfg.Data.Datasets) != 1 {
		t.Fatalf("Expected 1 dataset, got %d", len(cfg.Data.Datasets))
	}

	ds := cfg.Data.Datasets[0]
	if ds.Label != "Small Radius" {
		t.Errorf("Expected dataset label Small Radius, got %s", ds.Label)
	}
	if ds.BackgroundColor != BarBackgroundColor || ds.BorderColor != ChartBorderColor {
		t.Errorf("Unexpected bar colors %s/%s", ds.BackgroundColor, ds.BorderColor)
	}
	if ds.BorderWidth != 5 || ds.BorderRadius != 10 {
		t.Errorf("Expected border width 5 and radius 10, got %d and %d", ds.BorderWidth, ds.BorderRadius)
	}
	if ds.BorderSkipped == nil || *ds.BorderSkipped {
		t.Error("Expected borderSkipped to be false")
	}
	if ds.Smooth() {
		t.Error("Bar dataset should not be smooth")
	}
}

func TestNewChartConfigLine(t *testing.T) {
	cfg := NewChartConfig(LineChart, "Occurrences This Day", Series{{"Jan 01", 1}})
	ds := cfg.Data.Datasets[0]

	if cfg.Type != LineChart {
		t.Errorf("Expected type line, got %s", cfg.Type)
	}
	if ds.Fill == nil || *ds.Fill {
		t.Error("Expected fill to be false")
	}
	if ds.CubicInterpolationMode != "monotone" || ds.Tension != 0.4 {
		t.Errorf("Unexpected interpolation %s/%v", ds.CubicInterpolationMode, ds.Tension)
	}
	if !ds.Smooth() {
		t.Error("Line dataset should be smooth")
	}
	if ds.BackgroundColor != "" {
		t.Errorf("Line dataset should have no background, got %s", ds.BackgroundColor)
	}
}

func TestChartConfigJSONShape(t *testing.T) {
	cfg := NewChartConfig(LineChart, "x", Series{})
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}
	got := string(data)
	for _, want := range []string{
		`"type":"line"`,
		`"labels":[]`,
		`"data":[]`,
		`"responsive":true`,
		`"legend":{"position":"none"}`,
		`"title":{"display":false}`,
		`"fill":false`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %s in %s", want, got)
		}
	}
}

func TestNewChartConfigUnknownKindFallsBackToBar(t *testing.T) {
	cfg := NewChartConfig(ChartKind("pie"), "x", nil)
	if cfg.Type != BarChart {
		t.Errorf("Expected bar fallback, got %s", cfg.Type)
	}
}

func TestSurfaceIDValidation(t *testing.T) {
	for _, id := range []string{"bargraph-weekly", "linegraph_yearly", "a"} {
		if !ValidSurfaceID(id) {
			t.Errorf("Expected %q to be valid", id)
		}
	}
	for _, id := range []string{"", "1chart", "x=1;alert(document.cookie);let y", "a.b", "chart id", "<script>"} {
		if ValidSurfaceID(id) {
			t.Errorf("Expected %q to be rejected", id)
		}
		if _, err := NewChartSurface(id, Series{}); !errors.Is(err, ErrInvalidSurfaceID) {
			t.Errorf("NewChartSurface(%q): expected ErrInvalidSurfaceID, got %v", id, err)
		}
	}
}
