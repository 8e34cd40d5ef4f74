package models

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
)

// DataStore keeps occurrences, locations and users in memory
type DataStore struct {
	mu          sync.RWMutex
	occurrences []Occurrence
	locations   map[string]*Location
	users       map[string]*User
}

var Store = NewDataStore()

func NewDataStore() *DataStore {
	return &DataStore{
		locations: make(map[string]*Location),
		users:     make(map[string]*User),
	}
}

// AddOccurrence records o. An unseen location label is registered without coordinates.
func (ds *DataStore) AddOccurrence(o Occurrence) error {
	o.Location = strings.TrimSpace(o.Location)
	o.Target = strings.TrimSpace(o.Target)
	if o.Time.IsZero() {
		return fmt.Errorf("occurrence has no time")
	}
	if o.Location == "" {
		return fmt.Errorf("occurrence has no location")
	}
	if o.Target == "" {
		return fmt.Errorf("occurrence has no target")
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()
	if _, ok := ds.locations[o.Location]; !ok {
		ds.locations[o.Location] = &Location{Label: o.Location}
	}
	ds.occurrences = append(ds.occurrences, o)
	return nil
}

// AddLocation registers a location, keeping the coordinates of an existing one when l has none.
func (ds *DataStore) AddLocation(l Location) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if _, ok := ds.locations[l.Label]; ok && !l.Mapped() {
		return
	}
	loc := l
	ds.locations[l.Label] = &loc
}

// MapLocation assigns coordinates to a known location label
func (ds *DataStore) MapLocation(label string, p LatLng) error {
	if !p.Valid() {
		return fmt.Errorf("%w: (%v, %v) out of range", ErrInvalidCoordinate, p.Lat, p.Lng)
	}
	ds.mu.Lock()
	defer ds.mu.Unlock()
	loc, ok := ds.locations[label]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLocation, label)
	}
	lat, lng := p.Lat, p.Lng
	loc.Latitude = &lat
	loc.Longitude = &lng
	log.Printf("Mapped location %q to (%f, %f)", label, lat, lng)
	return nil
}

// Location returns a copy of the location with the given label
func (ds *DataStore) Location(label string) (Location, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	loc, ok := ds.locations[label]
	if !ok {
		return Location{}, false
	}
	return *loc, true
}

// LocationOptions returns the known location labels in sorted order.
func (ds *DataStore) LocationOptions() []string {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	options := make([]string, 0, len(ds.locations))
	for label := range ds.locations {
		options = append(options, label)
	}
	sort.Strings(options)
	return options
}

// TargetOptions returns every target seen so far, in order of first appearance.
func (ds *DataStore) TargetOptions() []string {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	seen := make(map[string]bool)
	options := make([]string, 0)
	for _, o := range ds.occurrences {
		if seen[o.Target] {
			continue
		}
		seen[o.Target] = true
		options = append(options, o.Target)
	}
	return options
}

// Occurrences returns a snapshot of all recorded occurrences
func (ds *DataStore) Occurrences() []Occurrence {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	out := make([]Occurrence, len(ds.occurrences))
	copy(out, ds.occurrences)
	return out
}

// LocationCounts returns every mapped location that has occurrences, with
// the number of occurrences, sorted by label.
func (ds *DataStore) LocationCounts() []LocationCount {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	counts := make(map[string]int)
	for _, o := range ds.occurrences {
		counts[o.Location]++
	}
	out := make([]LocationCount, 0)
	for label, loc := range ds.locations {
		if !loc.Mapped() || counts[label] == 0 {
			continue
		}
		out = append(out, LocationCount{Location: *loc, Count: counts[label]})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Location.Label < out[j].Location.Label
	})
	return out
}

// Populate loads a seed into the store.
func (ds *DataStore) Populate(seed *Seed) error {
	for _, l := range seed.Locations {
		ds.AddLocation(l)
	}
	for i, o := range seed.Occurrences {
		if err := ds.AddOccurrence(o); err != nil {
			return fmt.Errorf("seed occurrence %d: %w", i, err)
		}
	}
	for _, u := range seed.Users {
		if err := ds.AddUser(u); err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
	}
	log.Printf("Loaded %d occurrences and %d locations", len(seed.Occurrences), len(ds.LocationOptions()))
	return nil
}
