package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMalformedSeries = errors.New("malformed series")

// Point is a single label/value pair of a Series
type Point struct {
	Label string
	Value float64
}

// Series is the ordered data behind one chart.
// Its wire form is a JSON array of [label, value] pairs.
type Series []Point

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{p.Label, p.Value})
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSeries, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: expected [label, value], got %d elements", ErrMalformedSeries, len(pair))
	}
	if err := json.Unmarshal(pair[0], &p.Label); err != nil {
		return fmt.Errorf("%w: label: %v", ErrMalformedSeries, err)
	}
	if err := json.Unmarshal(pair[1], &p.Value); err != nil {
		return fmt.Errorf("%w: value: %v", ErrMalformedSeries, err)
	}
	return nil
}

// ParseSeries decodes the payload of a data-chart attribute.
func ParseSeries(raw string) (Series, error) {
	var s Series
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		if errors.Is(err, ErrMalformedSeries) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedSeries, err)
	}
	if s == nil {
		s = Series{}
	}
	return s, nil
}

// Split reshapes the series into parallel label and value slices.
func (s Series) Split() ([]string, []float64) {
	labels := make([]string, len(s))
	values := make([]float64, len(s))
	for i, p := range s {
		labels[i] = p.Label
		values[i] = p.Value
	}
	return labels, values
}

// Attr serializes the series for a data-chart attribute.
func (s Series) Attr() (string, error) {
	if s == nil {
		s = Series{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal series: %w", err)
	}
	return string(data), nil
}
