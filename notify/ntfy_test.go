package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kys/models"
)

func TestNewOccurrenceNotification(t *testing.T) {
	var gotHeaders http.Header
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewNtfy(srv.URL, "Bearer tk_123")
	o := models.Occurrence{
		Time:     time.Date(2026, time.October, 18, 9, 30, 0, 0, time.UTC),
		Location: "Kitchen",
		Target:   "Bob",
		Context:  "dishes",
	}
	if err := n.NewOccurrence(context.Background(), o, "admin"); err != nil {
		t.Fatalf("Failed to send notification: %v", err)
	}

	if gotHeaders.Get("Authorization") != "Bearer tk_123" {
		t.Errorf("Expected auth header, got %q", gotHeaders.Get("Authorization"))
	}
	if gotHeaders.Get("Priority") != "3" || gotHeaders.Get("Tags") != "newoccurrence" {
		t.Errorf("Unexpected priority/tags %q/%q", gotHeaders.Get("Priority"), gotHeaders.Get("Tags"))
	}
	if gotHeaders.Get("Title") != "New occurrence was added by admin" {
		t.Errorf("Unexpected title %q", gotHeaders.Get("Title"))
	}
	if !strings.Contains(gotBody, "location: Kitchen") || !strings.Contains(gotBody, "2026-10-18 09:30") {
		t.Errorf("Unexpected body %q", gotBody)
	}
}

func TestNewUserNotification(t *testing.T) {
	got := make(chan *http.Request, 1)
	bodies := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got <- r
		bodies <- string(body)
	}))
	defer srv.Close()

	NewNtfy(srv.URL, "").NewUserAsync(models.User{Username: "carol", Email: "carol@example.com", Admin: true})

	select {
	case r := <-got:
		if r.Header.Get("Title") != "User carol was given access to kys" {
			t.Errorf("Unexpected title %q", r.Header.Get("Title"))
		}
		if r.Header.Get("Priority") != "4" || r.Header.Get("Tags") != "newuser" {
			t.Errorf("Unexpected priority/tags %q/%q", r.Header.Get("Priority"), r.Header.Get("Tags"))
		}
		if body := <-bodies; body != "admin: true, email: carol@example.com" {
			t.Errorf("Unexpected body %q", body)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Expected the new user notification to be sent")
	}
}

func TestSendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := NewNtfy(srv.URL, "").Send(context.Background(), Message{Body: "x"})
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Errorf("Expected a 401 error, got %v", err)
	}
}

func TestDisabledNotifier(t *testing.T) {
	n := NewNtfy("", "")
	if n.Enabled() {
		t.Error("Notifier without endpoint should be disabled")
	}
	if err := n.Send(context.Background(), Message{Body: "x"}); err != nil {
		t.Errorf("Disabled notifier should not fail, got %v", err)
	}

	var nilNotifier *Ntfy
	if nilNotifier.Enabled() {
		t.Error("Nil notifier should be disabled")
	}
}
