package server

import (
	"errors"
	"strings"
	"testing"

	"github.com/kys/models"
)

func TestRenderSeriesBar(t *testing.T) {
	series := models.Series{{Label: "Monday", Value: 0}, {Label: "Tuesday", Value: 4}, {Label: "Wednesday", Value: 50}}
	chart, err := RenderSeries("bargraph-weekly", "Small Radius", models.BarChart, series)
	if err != nil {
		t.Fatalf("Failed to render chart: %v", err)
	}

	html := chart.HTML
	for _, want := range []string{
		`id="bargraph_weekly"`,
		`"type":"bar"`,
		`"Monday"`,
		`"Wednesday"`,
		`"color":"#FF0000"`,
		`"borderColor":"#FEFEFE"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected %s in rendered chart", want)
		}
	}
	if chart.Surface.ID != "bargraph-weekly" {
		t.Errorf("Expected surface bargraph-weekly, got %s", chart.Surface.ID)
	}
	if chart.Surface.DataChart != `[["Monday",0],["Tuesday",4],["Wednesday",50]]` {
		t.Errorf("Unexpected data-chart payload %s", chart.Surface.DataChart)
	}
}

func TestRenderChartLineFromSurface(t *testing.T) {
	surface := models.ChartSurface{ID: "linegraph-monthly", DataChart: `[["Sep 19",1],["Sep 20",3]]`}
	chart, err := RenderChart(surface, "Occurrences This Day", models.LineChart)
	if err != nil {
		t.Fatalf("Failed to render chart: %v", err)
	}

	html := chart.HTML
	for _, want := range []string{`"type":"line"`, `"smooth":true`, `"Sep 20"`} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected %s in rendered chart", want)
		}
	}
}

func TestRenderEmptySeries(t *testing.T) {
	chart, err := RenderChart(models.ChartSurface{ID: "empty", DataChart: `[]`}, "Nothing", models.LineChart)
	if err != nil {
		t.Fatalf("Empty series should render, got %v", err)
	}
	if !strings.Contains(chart.HTML, `id="empty"`) {
		t.Error("Expected the chart element in the output")
	}

	if _, err := RenderSeries("empty-bar", "Nothing", models.BarChart, nil); err != nil {
		t.Errorf("Nil series should render, got %v", err)
	}
}

func TestRenderChartMalformed(t *testing.T) {
	_, err := RenderChart(models.ChartSurface{ID: "broken", DataChart: `[["Monday"`}, "x", models.BarChart)
	if !errors.Is(err, models.ErrMalformedSeries) {
		t.Errorf("Expected ErrMalformedSeries, got %v", err)
	}
}

func TestChartID(t *testing.T) {
	if got := chartID("linegraph-yearly"); got != "linegraph_yearly" {
		t.Errorf("Expected linegraph_yearly, got %s", got)
	}
}

func TestRenderRejectsUnsafeInput(t *testing.T) {
	_, err := RenderChart(models.ChartSurface{ID: "x=1;alert(document.cookie);let y", DataChart: `[["a",1]]`}, "x", models.BarChart)
	if !errors.Is(err, models.ErrInvalidSurfaceID) {
		t.Errorf("Expected ErrInvalidSurfaceID, got %v", err)
	}

	_, err = RenderSeries("chart", "</script><script>alert(2)</script>", models.LineChart, models.Series{{Label: "a", Value: 1}})
	if !errors.Is(err, errUnsafeChartName) {
		t.Errorf("Expected errUnsafeChartName, got %v", err)
	}
}
