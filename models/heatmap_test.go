package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestLocationCountsAndHeatmap(t *testing.T) {
	ds := NewDataStore()
	now := time.Now()
	for _, o := range []Occurrence{
		{Time: now, Location: "Kitchen", Target: "Bob"},
		{Time: now, Location: "Kitchen", Target: "Amy"},
		{Time: now, Location: "Garden", Target: "Bob"},
		{Time: now, Location: "Attic", Target: "Bob"},
	} {
		if err := ds.AddOccurrence(o); err != nil {
			t.Fatal(err)
		}
	}
	if err := ds.MapLocation("Kitchen", LatLng{Lat: 51.05, Lng: 3.73}); err != nil {
		t.Fatal(err)
	}
	if err := ds.MapLocation("Garden", LatLng{Lat: 50.85, Lng: 4.35}); err != nil {
		t.Fatal(err)
	}
	// mapped but never used
	lat, lng := 1.0, 2.0
	ds.AddLocation(Location{Label: "Shed", Latitude: &lat, Longitude: &lng})

	counts := ds.LocationCounts()
	if len(counts) != 2 {
		t.Fatalf("Expected 2 mapped locations with occurrences, got %+v", counts)
	}
	if counts[0].Location.Label != "Garden" || counts[0].Count != 1 || counts[1].Count != 2 {
		t.Errorf("Unexpected counts %+v", counts)
	}

	h := NewHeatmap(counts)
	if h.Map.ElementID != HeatmapElementID || h.Map.Zoom != 6 || h.Map.Center != DefaultMapCenter {
		t.Errorf("Unexpected heatmap view %+v", h.Map)
	}
	if h.Max != 2 {
		t.Errorf("Expected max weight 2, got %v", h.Max)
	}

	data, err := json.Marshal(h.Points)
	if err != nil {
		t.Fatalf("Failed to marshal points: %v", err)
	}
	if string(data) != `[[50.85,4.35,1],[51.05,3.73,2]]` {
		t.Errorf("Unexpected points %s", data)
	}
}

func TestEmptyHeatmap(t *testing.T) {
	h := NewHeatmap(nil)
	data, _ := json.Marshal(h)
	if h.Max != 0 || len(h.Points) != 0 {
		t.Errorf("Expected an empty heatmap, got %s", data)
	}
}
