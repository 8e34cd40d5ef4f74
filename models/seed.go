package models

import (
	"encoding/json"
	"fmt"
	"os"
)

// Seed is the read-only start-up data: occurrences, optionally pre-mapped
// locations, and accounts with bcrypt password hashes.
type Seed struct {
	Occurrences []Occurrence `json:"occurrences"`
	Locations   []Location   `json:"locations"`
	Users       []User       `json:"users"`
}

// LoadSeed reads a seed file.
func LoadSeed(path string) (*Seed, error) {
	// check if seed file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("seed file %s does not exist", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed Seed
	err = json.Unmarshal(data, &seed)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed data: %w", err)
	}

	return &seed, nil
}
