package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"
	"github.com/kys/models"
)

const (
	chartTheme         = "macarons"
	chartHeight        = "400px"
	fixedChartWidth    = "900px"
	responsiveWidth    = "100%"
	chartTooltipBorder = "#ccc"
)

// chart names are written unescaped into the chart script
var errUnsafeChartName = errors.New("chart name contains markup")

// RenderedChart is a chart drawn on its surface, ready to embed in a page
type RenderedChart struct {
	Surface models.ChartSurface
	Name    string
	HTML    string // trusted echarts markup
}

// RenderChart parses the surface's data-chart payload and draws it.
// A malformed payload is returned as an error and nothing is drawn.
func RenderChart(surface models.ChartSurface, name string, kind models.ChartKind) (RenderedChart, error) {
	if err := surface.Validate(); err != nil {
		chartRenders.WithLabelValues(string(kind), "error").Inc()
		return RenderedChart{}, err
	}
	series, err := models.ParseSeries(surface.DataChart)
	if err != nil {
		chartRenders.WithLabelValues(string(kind), "error").Inc()
		return RenderedChart{}, fmt.Errorf("chart %s: %w", surface.ID, err)
	}
	return drawChart(surface, name, kind, series)
}

// RenderSeries draws a series passed in directly onto the surface with the given id.
func RenderSeries(surfaceID, name string, kind models.ChartKind, series models.Series) (RenderedChart, error) {
	surface, err := models.NewChartSurface(surfaceID, series)
	if err != nil {
		chartRenders.WithLabelValues(string(kind), "error").Inc()
		return RenderedChart{}, fmt.Errorf("chart %s: %w", surfaceID, err)
	}
	return drawChart(surface, name, kind, series)
}

func drawChart(surface models.ChartSurface, name string, kind models.ChartKind, series models.Series) (RenderedChart, error) {
	if strings.ContainsAny(name, "<>&") {
		chartRenders.WithLabelValues(string(kind), "error").Inc()
		return RenderedChart{}, fmt.Errorf("chart %s: %w", surface.ID, errUnsafeChartName)
	}
	cfg := models.NewChartConfig(kind, name, series)

	var renderer render.Renderer
	switch cfg.Type {
	case models.LineChart:
		renderer = generateLineChart(surface.ID, cfg)
	default:
		renderer = generateBarChart(surface.ID, cfg)
	}

	snippet, err := renderSnippet(renderer)
	if err != nil {
		chartRenders.WithLabelValues(string(cfg.Type), "error").Inc()
		return RenderedChart{}, fmt.Errorf("chart %s: %w", surface.ID, err)
	}
	chartRenders.WithLabelValues(string(cfg.Type), "ok").Inc()

	return RenderedChart{
		Surface: surface,
		Name:    name,
		HTML:    snippet.Element + snippet.Script,
	}, nil
}

// renderSnippet turns the template panics of go-echarts into errors
func renderSnippet(r render.Renderer) (snippet render.ChartSnippet, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("failed to render chart: %v", p)
		}
	}()
	return r.RenderSnippet(), nil
}

// chartID derives an echarts instance id from a validated surface id;
// echarts uses it in JS identifiers.
func chartID(surfaceID string) string {
	return strings.ReplaceAll(surfaceID, "-", "_")
}

func globalOptions(surfaceID string, cfg models.ChartConfig) []charts.GlobalOpts {
	width := fixedChartWidth
	if cfg.Options.Responsive {
		width = responsiveWidth
	}
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: chartID(surfaceID),
			Width:   width,
			Height:  chartHeight,
			Theme:   chartTheme,
		}),
		charts.WithTitleOpts(opts.Title{
			Show: opts.Bool(cfg.Options.Plugins.Title.Display),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(cfg.Options.Plugins.Legend.Position != models.HiddenLegendPosition),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:        opts.Bool(true),
			Trigger:     "axis",
			BorderColor: chartTooltipBorder,
		}),
	}
}

func generateBarChart(surfaceID string, cfg models.ChartConfig) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions(surfaceID, cfg)...)

	// X-axis data
	bar.SetXAxis(cfg.Data.Labels)

	for _, ds := range cfg.Data.Datasets {
		bar.AddSeries(ds.Label, generateBarItems(ds.Data),
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color:        ds.BackgroundColor,
				BorderColor:  ds.BorderColor,
				BorderWidth:  float32(ds.BorderWidth),
				BorderRadius: fmt.Sprint(ds.BorderRadius),
			}),
		)
	}
	return bar
}

func generateLineChart(surfaceID string, cfg models.ChartConfig) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(globalOptions(surfaceID, cfg)...)

	// X-axis data
	line.SetXAxis(cfg.Data.Labels)

	for _, ds := range cfg.Data.Datasets {
		line.AddSeries(ds.Label, generateLineItems(ds.Data),
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(ds.Smooth())}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: ds.BorderColor}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: ds.BorderColor}),
		)
	}
	return line
}

// generateLineItems converts a value slice to LineData
func generateLineItems(data []float64) []opts.LineData {
	items := make([]opts.LineData, 0, len(data))
	for _, v := range data {
		items = append(items, opts.LineData{Value: v})
	}
	return items
}

func generateBarItems(data []float64) []opts.BarData {
	items := make([]opts.BarData, 0, len(data))
	for _, v := range data {
		items = append(items, opts.BarData{Value: v})
	}
	return items
}
