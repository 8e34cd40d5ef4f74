package models

import (
	"sync"
)

// LatLng is a WGS 84 coordinate
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinate lies within latitude/longitude bounds.
func (p LatLng) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

const (
	DefaultMapElementID = "map"
	DefaultZoom         = 10
	OSMTileURLTemplate  = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	OSMTileMaxZoom      = 19
	OSMTileAttribution  = "© OpenStreetMap contributors"
)

var DefaultMapCenter = LatLng{Lat: 51.05, Lng: 3.73}

type TileLayer struct {
	URLTemplate string `json:"urlTemplate"`
	MaxZoom     int    `json:"maxZoom"`
	Attribution string `json:"attribution"`
}

// OSMTiles returns the OpenStreetMap tile layer used by the map page
func OSMTiles() TileLayer {
	return TileLayer{
		URLTemplate: OSMTileURLTemplate,
		MaxZoom:     OSMTileMaxZoom,
		Attribution: OSMTileAttribution,
	}
}

// Marker is a point annotation on a MapView. It is moved in place and never recreated.
type Marker struct {
	ID  int    `json:"id"`
	Pos LatLng `json:"pos"`
}

// SetLatLng moves the marker
func (m *Marker) SetLatLng(p LatLng) {
	m.Pos = p
}

// MapView is the server side description of a map widget: its view, its
// tile layers and the markers added to it. Markers are only reachable as
// copies; they move through MoveMarker.
type MapView struct {
	ElementID string
	Center    LatLng
	Zoom      int
	Layers    []TileLayer

	mu      sync.Mutex
	markers []*Marker
	nextID  int
}

// NewMapView creates an empty map bound to the given element id.
func NewMapView(elementID string) *MapView {
	return &MapView{
		ElementID: elementID,
		Layers:    []TileLayer{},
		nextID:    1,
	}
}

// SetView centers the map
func (m *MapView) SetView(center LatLng, zoom int) *MapView {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Center = center
	m.Zoom = zoom
	return m
}

func (m *MapView) AddLayer(layer TileLayer) *MapView {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Layers = append(m.Layers, layer)
	return m
}

// AddMarker places a new marker on the map.
func (m *MapView) AddMarker(p LatLng) Marker {
	m.mu.Lock()
	defer m.mu.Unlock()
	marker := &Marker{ID: m.nextID, Pos: p}
	m.nextID++
	m.markers = append(m.markers, marker)
	return *marker
}

// MoveMarker repositions the marker with the given id.
func (m *MapView) MoveMarker(id int, p LatLng) (Marker, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, marker := range m.markers {
		if marker.ID == id {
			marker.SetLatLng(p)
			return *marker, true
		}
	}
	return Marker{}, false
}

// Marker returns a copy of the marker with the given id
func (m *MapView) Marker(id int) (Marker, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, marker := range m.markers {
		if marker.ID == id {
			return *marker, true
		}
	}
	return Marker{}, false
}

// Markers returns copies of every marker on the map
func (m *MapView) Markers() []Marker {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Marker, len(m.markers))
	for i, marker := range m.markers {
		out[i] = *marker
	}
	return out
}

// MapOptions is the part of a MapView the browser needs to draw the widget
type MapOptions struct {
	ElementID string      `json:"elementId"`
	Center    LatLng      `json:"center"`
	Zoom      int         `json:"zoom"`
	Layers    []TileLayer `json:"layers"`
}

func (m *MapView) Options() MapOptions {
	m.mu.Lock()
	defer m.mu.Unlock()
	layers := make([]TileLayer, len(m.Layers))
	copy(layers, m.Layers)
	return MapOptions{
		ElementID: m.ElementID,
		Center:    m.Center,
		Zoom:      m.Zoom,
		Layers:    layers,
	}
}

// MarkerCount returns how many markers were added to the map
func (m *MapView) MarkerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.markers)
}

// NewDefaultMapView returns the map page view: OpenStreetMap tiles centered on Ghent.
func NewDefaultMapView() *MapView {
	return NewMapView(DefaultMapElementID).
		SetView(DefaultMapCenter, DefaultZoom).
		AddLayer(OSMTiles())
}
