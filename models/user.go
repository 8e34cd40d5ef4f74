package models

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound  = errors.New("user with that username doesn't exist")
	ErrWrongPassword = errors.New("wrong password")
	ErrUserExists    = errors.New("username already taken")
)

// User is an account allowed to use the dashboard. Admins may also map
// locations and add users.
type User struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Admin        bool   `json:"admin"`
}

// HashPassword hashes a plain text password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares password with the stored hash.
func (u User) CheckPassword(password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrWrongPassword
	}
	if err != nil {
		return fmt.Errorf("failed to check password: %w", err)
	}
	return nil
}

// AddUser registers an account whose password is already hashed.
func (ds *DataStore) AddUser(u User) error {
	u.Username = strings.TrimSpace(u.Username)
	if u.Username == "" {
		return fmt.Errorf("user has no username")
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()
	if _, ok := ds.users[u.Username]; ok {
		return fmt.Errorf("%w: %q", ErrUserExists, u.Username)
	}
	ds.users[u.Username] = &u
	return nil
}

// CreateUser hashes password and registers the account.
func (ds *DataStore) CreateUser(username, email, password string, admin bool) (User, error) {
	if password == "" {
		return User{}, fmt.Errorf("user has no password")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return User{}, err
	}
	u := User{
		Username:     strings.TrimSpace(username),
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
		Admin:        admin,
	}
	if err := ds.AddUser(u); err != nil {
		return User{}, err
	}
	log.Printf("Created user %q (admin: %t)", u.Username, u.Admin)
	return u, nil
}

// User returns a copy of the account with the given username
func (ds *DataStore) User(username string) (User, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	u, ok := ds.users[username]
	if !ok {
		return User{}, false
	}
	return *u, true
}

// Authenticate checks the credentials and returns the matching account.
func (ds *DataStore) Authenticate(username, password string) (User, error) {
	u, ok := ds.User(strings.TrimSpace(username))
	if !ok {
		return User{}, ErrUserNotFound
	}
	if err := u.CheckPassword(password); err != nil {
		return User{}, err
	}
	return u, nil
}
