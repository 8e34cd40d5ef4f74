package models

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAddOccurrenceRegistersLocation(t *testing.T) {
	ds := NewDataStore()
	err := ds.AddOccurrence(Occurrence{Time: time.Now(), Location: " Kitchen ", Target: "Bob", Context: "dishes"})
	if err != nil {
		t.Fatalf("Failed to add occurrence: %v", err)
	}

	loc, ok := ds.Location("Kitchen")
	if !ok {
		t.Fatal("Expected Kitchen to be registered")
	}
	if loc.Mapped() {
		t.Error("New location should have no coordinates")
	}
	if got := ds.Occurrences(); len(got) != 1 || got[0].Location != "Kitchen" {
		t.Errorf("Unexpected occurrences %+v", got)
	}
}

func TestAddOccurrenceValidation(t *testing.T) {
	ds := NewDataStore()
	bad := []Occurrence{
		{Location: "a", Target: "b"},
		{Time: time.Now(), Target: "b"},
		{Time: time.Now(), Location: "a", Target: "  "},
	}
	for _, o := range bad {
		if err := ds.AddOccurrence(o); err == nil {
			t.Errorf("Expected error for %+v", o)
		}
	}
	if len(ds.Occurrences()) != 0 {
		t.Error("Rejected occurrences were stored")
	}
}

func TestMapLocation(t *testing.T) {
	ds := NewDataStore()
	ds.AddLocation(Location{Label: "Office"})

	if err := ds.MapLocation("Office", LatLng{Lat: 51.05, Lng: 3.73}); err != nil {
		t.Fatalf("Failed to map location: %v", err)
	}
	loc, _ := ds.Location("Office")
	if !loc.Mapped() || *loc.Latitude != 51.05 || *loc.Longitude != 3.73 {
		t.Errorf("Unexpected location %+v", loc)
	}

	if err := ds.MapLocation("Nowhere", LatLng{}); !errors.Is(err, ErrUnknownLocation) {
		t.Errorf("Expected ErrUnknownLocation, got %v", err)
	}
	if err := ds.MapLocation("Office", LatLng{Lat: 100}); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("Expected ErrInvalidCoordinate, got %v", err)
	}
}

func TestOptions(t *testing.T) {
	ds := NewDataStore()
	now := time.Now()
	for _, o := range []Occurrence{
		{Time: now, Location: "b", Target: "Zed"},
		{Time: now, Location: "a", Target: "Amy"},
		{Time: now, Location: "b", Target: "Zed"},
	} {
		if err := ds.AddOccurrence(o); err != nil {
			t.Fatal(err)
		}
	}

	locs := ds.LocationOptions()
	if len(locs) != 2 || locs[0] != "a" || locs[1] != "b" {
		t.Errorf("Expected sorted locations [a b], got %v", locs)
	}
	targets := ds.TargetOptions()
	if len(targets) != 2 || targets[0] != "Zed" || targets[1] != "Amy" {
		t.Errorf("Expected targets [Zed Amy], got %v", targets)
	}
}

func TestPopulateFromSeed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.json")
	seed := `{
        "occurrences": [
            {"time": "2026-10-01T10:00:00Z", "location": "Kitchen", "target": "Bob", "context": "dishes"}
        ],
        "locations": [
            {"label": "Garden", "latitude": 51.0, "longitude": 3.7}
        ],
        "users": [
            {"username": "admin", "email": "admin@example.com", "password_hash": "$2a$10$abcdefghijklmnopqrstuu", "admin": true}
        ]
    }`
	if err := os.WriteFile(path, []byte(seed), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("Failed to load seed: %v", err)
	}
	ds := NewDataStore()
	if err := ds.Populate(loaded); err != nil {
		t.Fatalf("Failed to populate store: %v", err)
	}

	if len(ds.Occurrences()) != 1 {
		t.Errorf("Expected 1 occurrence, got %d", len(ds.Occurrences()))
	}
	if u, ok := ds.User("admin"); !ok || !u.Admin {
		t.Errorf("Expected seeded admin, got %+v", u)
	}
	garden, ok := ds.Location("Garden")
	if !ok || !garden.Mapped() {
		t.Errorf("Expected Garden to be mapped, got %+v", garden)
	}

	if _, err := LoadSeed(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for a missing seed file")
	}
}
