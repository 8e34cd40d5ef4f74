package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

var ErrInvalidCoordinate = errors.New("invalid coordinate")

type LinkerState string

const (
	NoMarker     LinkerState = "NoMarker"
	MarkerPlaced LinkerState = "MarkerPlaced"
)

// fields are written with six decimals
const coordinatePrec = 6

// CoordinateFields holds the values of the lat and lng inputs as decimal strings
type CoordinateFields struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

// Parse converts both fields into a coordinate.
func (f CoordinateFields) Parse() (LatLng, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(f.Lat), 64)
	if err != nil {
		return LatLng{}, fmt.Errorf("%w: lat %q", ErrInvalidCoordinate, f.Lat)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(f.Lng), 64)
	if err != nil {
		return LatLng{}, fmt.Errorf("%w: lng %q", ErrInvalidCoordinate, f.Lng)
	}
	p := LatLng{Lat: lat, Lng: lng}
	if !p.Valid() {
		return LatLng{}, fmt.Errorf("%w: (%v, %v) out of range", ErrInvalidCoordinate, lat, lng)
	}
	return p, nil
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', coordinatePrec, 64)
}

// ClickEvent is what the map delivers on a click
type ClickEvent struct {
	LatLng LatLng `json:"latlng"`
}

// LinkerSnapshot is the observable state of a MarkerLinker after an event
type LinkerSnapshot struct {
	State   LinkerState      `json:"state"`
	Marker  *Marker          `json:"marker,omitempty"`
	Fields  CoordinateFields `json:"fields"`
	Markers int              `json:"markers"`
}

// MarkerLinker keeps a single map marker and the lat/lng fields in step.
// Handlers run one at a time; the marker is created once and then only moved.
type MarkerLinker struct {
	mu       sync.Mutex
	view     *MapView
	fields   CoordinateFields
	markerID int // 0 until the first marker is placed
}

func NewMarkerLinker(view *MapView) *MarkerLinker {
	return &MarkerLinker{view: view}
}

// View returns the map the linker places its marker on
func (l *MarkerLinker) View() *MapView {
	return l.view
}

// OnMapClick writes the clicked coordinate into the fields and places or moves the marker.
func (l *MarkerLinker) OnMapClick(e ClickEvent) LinkerSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.fields = CoordinateFields{
		Lat: formatCoordinate(e.LatLng.Lat),
		Lng: formatCoordinate(e.LatLng.Lng),
	}
	l.place(e.LatLng)
	return l.snapshot()
}

// OnFieldEdit stores the edited field values and moves the marker to them.
// Content that does not parse to a coordinate leaves the linker untouched.
func (l *MarkerLinker) OnFieldEdit(fields CoordinateFields) (LinkerSnapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := fields.Parse()
	if err != nil {
		return l.snapshot(), err
	}
	l.fields = fields
	l.place(p)
	return l.snapshot(), nil
}

// Snapshot returns the current state
func (l *MarkerLinker) Snapshot() LinkerSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

func (l *MarkerLinker) place(p LatLng) {
	if l.markerID != 0 {
		if _, ok := l.view.MoveMarker(l.markerID, p); ok {
			return
		}
	}
	l.markerID = l.view.AddMarker(p).ID
}

func (l *MarkerLinker) snapshot() LinkerSnapshot {
	s := LinkerSnapshot{
		State:   NoMarker,
		Fields:  l.fields,
		Markers: l.view.MarkerCount(),
	}
	if l.markerID == 0 {
		return s
	}
	if m, ok := l.view.Marker(l.markerID); ok {
		s.State = MarkerPlaced
		s.Marker = &m
	}
	return s
}
