package models

import (
	"encoding/json"
)

const (
	HeatmapElementID = "heatmap"
	HeatmapZoom      = 6
)

// HeatPoint is one weighted coordinate of the location heatmap.
// Its wire form is [lat, lng, weight].
type HeatPoint struct {
	Lat    float64
	Lng    float64
	Weight float64
}

func (p HeatPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{p.Lat, p.Lng, p.Weight})
}

// LocationCount is a mapped location and how many occurrences happened there
type LocationCount struct {
	Location Location
	Count    int
}

// Heatmap is everything the home page needs to draw the occurrence heatmap
type Heatmap struct {
	Map    MapOptions  `json:"map"`
	Points []HeatPoint `json:"points"`
	Max    float64     `json:"max"`
}

// NewHeatmap weights every mapped location by its occurrence count.
// Locations without coordinates or occurrences are left out.
func NewHeatmap(counts []LocationCount) Heatmap {
	view := NewMapView(HeatmapElementID).
		SetView(DefaultMapCenter, HeatmapZoom).
		AddLayer(OSMTiles())

	h := Heatmap{Map: view.Options(), Points: []HeatPoint{}}
	for _, c := range counts {
		if !c.Location.Mapped() || c.Count == 0 {
			continue
		}
		weight := float64(c.Count)
		h.Points = append(h.Points, HeatPoint{
			Lat:    *c.Location.Latitude,
			Lng:    *c.Location.Longitude,
			Weight: weight,
		})
		if weight > h.Max {
			h.Max = weight
		}
	}
	return h
}
