package models

import (
	"errors"
	"fmt"
	"regexp"
)

var ErrInvalidSurfaceID = errors.New("invalid surface id")

// surface ids end up in element ids and in chart script identifiers
var surfaceIDPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

type ChartKind string

const (
	BarChart  ChartKind = "bar"
	LineChart ChartKind = "line"
)

// Style constants shared by every dashboard chart
const (
	ChartBorderColor     = "#FEFEFE"
	BarBackgroundColor   = "#FF0000"
	BarBorderWidth       = 5
	BarBorderRadius      = 10
	LineInterpolation    = "monotone"
	LineTension          = 0.4
	HiddenLegendPosition = "none"
)

// ChartConfig describes one chart the way the charting contract expects it:
// {type, data:{labels, datasets}, options:{responsive, plugins}}
type ChartConfig struct {
	Type    ChartKind    `json:"type"`
	Data    ChartData    `json:"data"`
	Options ChartOptions `json:"options"`
}

type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`

	BorderColor     string `json:"borderColor,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	BorderWidth     int    `json:"borderWidth,omitempty"`
	BorderRadius    int    `json:"borderRadius,omitempty"`
	BorderSkipped   *bool  `json:"borderSkipped,omitempty"`

	Fill                   *bool   `json:"fill,omitempty"`
	CubicInterpolationMode string  `json:"cubicInterpolationMode,omitempty"`
	Tension                float64 `json:"tension,omitempty"`
}

type ChartOptions struct {
	Responsive bool          `json:"responsive"`
	Plugins    PluginOptions `json:"plugins"`
}

type PluginOptions struct {
	Legend LegendOptions `json:"legend"`
	Title  TitleOptions  `json:"title"`
}

type LegendOptions struct {
	Position string `json:"position"`
}

type TitleOptions struct {
	Display bool `json:"display"`
}

// NewChartConfig builds a fresh configuration for the given series.
// Labels and values keep the order of s.
func NewChartConfig(kind ChartKind, name string, s Series) ChartConfig {
	labels, values := s.Split()

	dataset := Dataset{
		Label:       name,
		Data:        values,
		BorderColor: ChartBorderColor,
	}
	switch kind {
	case LineChart:
		dataset.Fill = boolPtr(false)
		dataset.CubicInterpolationMode = LineInterpolation
		dataset.Tension = LineTension
	default:
		kind = BarChart
		dataset.BackgroundColor = BarBackgroundColor
		dataset.BorderWidth = BarBorderWidth
		dataset.BorderRadius = BarBorderRadius
		dataset.BorderSkipped = boolPtr(false)
	}

	return ChartConfig{
		Type: kind,
		Data: ChartData{
			Labels:   labels,
			Datasets: []Dataset{dataset},
		},
		Options: ChartOptions{
			Responsive: true,
			Plugins: PluginOptions{
				Legend: LegendOptions{Position: HiddenLegendPosition},
				Title:  TitleOptions{Display: false},
			},
		},
	}
}

// Smooth reports whether the dataset asks for interpolated lines.
func (d Dataset) Smooth() bool {
	return d.CubicInterpolationMode != "" || d.Tension > 0
}

func boolPtr(b bool) *bool {
	return &b
}

// ChartSurface is the element a chart is drawn on. DataChart carries the
// serialized series, the same payload a data-chart attribute holds.
type ChartSurface struct {
	ID        string
	DataChart string
}

// ValidSurfaceID reports whether id can name a chart surface.
func ValidSurfaceID(id string) bool {
	return surfaceIDPattern.MatchString(id)
}

// Validate checks the surface id.
func (cs ChartSurface) Validate() error {
	if !ValidSurfaceID(cs.ID) {
		return fmt.Errorf("%w: %q", ErrInvalidSurfaceID, cs.ID)
	}
	return nil
}

// NewChartSurface serializes s onto a surface with the given element id.
func NewChartSurface(id string, s Series) (ChartSurface, error) {
	if !ValidSurfaceID(id) {
		return ChartSurface{}, fmt.Errorf("%w: %q", ErrInvalidSurfaceID, id)
	}
	attr, err := s.Attr()
	if err != nil {
		return ChartSurface{}, err
	}
	return ChartSurface{ID: id, DataChart: attr}, nil
}
