package models

import (
	"errors"
	"strings"
	"testing"
)

func TestCreateAndAuthenticateUser(t *testing.T) {
	ds := NewDataStore()
	u, err := ds.CreateUser(" alice ", "alice@example.com", "s3cret", true)
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	if u.Username != "alice" || !u.Admin {
		t.Errorf("Unexpected user %+v", u)
	}
	if u.PasswordHash == "s3cret" || !strings.HasPrefix(u.PasswordHash, "$2") {
		t.Errorf("Expected a bcrypt hash, got %q", u.PasswordHash)
	}

	got, err := ds.Authenticate("alice", "s3cret")
	if err != nil {
		t.Fatalf("Failed to authenticate: %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Errorf("Expected alice@example.com, got %s", got.Email)
	}

	if _, err := ds.Authenticate("alice", "wrong"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("Expected ErrWrongPassword, got %v", err)
	}
	if _, err := ds.Authenticate("bob", "s3cret"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestCreateUserValidation(t *testing.T) {
	ds := NewDataStore()
	if _, err := ds.CreateUser("alice", "", "pw", false); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	if _, err := ds.CreateUser("alice", "", "other", false); !errors.Is(err, ErrUserExists) {
		t.Errorf("Expected ErrUserExists, got %v", err)
	}
	if _, err := ds.CreateUser("  ", "", "pw", false); err == nil {
		t.Error("Expected error for an empty username")
	}
	if _, err := ds.CreateUser("carol", "", "", false); err == nil {
		t.Error("Expected error for an empty password")
	}
}
