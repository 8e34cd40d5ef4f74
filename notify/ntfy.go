package notify

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/kys/models"
)

// Message is one push notification
type Message struct {
	Title    string
	Body     string
	Tags     string
	Priority string
}

// Ntfy posts notifications to an ntfy topic endpoint
type Ntfy struct {
	Endpoint string
	Auth     string
	Client   *http.Client
}

func NewNtfy(endpoint, auth string) *Ntfy {
	return &Ntfy{
		Endpoint: endpoint,
		Auth:     auth,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether an endpoint is configured
func (n *Ntfy) Enabled() bool {
	return n != nil && n.Endpoint != ""
}

// Send posts msg. It does nothing when no endpoint is configured.
func (n *Ntfy) Send(ctx context.Context, msg Message) error {
	if !n.Enabled() {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.Endpoint, strings.NewReader(msg.Body))
	if err != nil {
		return fmt.Errorf("failed to create notification request: %w", err)
	}
	if n.Auth != "" {
		req.Header.Set("Authorization", n.Auth)
	}
	req.Header.Set("Markdown", "yes")
	if msg.Title != "" {
		req.Header.Set("Title", msg.Title)
	}
	if msg.Tags != "" {
		req.Header.Set("Tags", msg.Tags)
	}
	if msg.Priority != "" {
		req.Header.Set("Priority", msg.Priority)
	}

	client := n.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("notification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to send notification: %d %s", resp.StatusCode, string(bodyBytes))
	}
	return nil
}

// NewOccurrence announces an occurrence added by user.
// Priority 3 is the lowest that still makes a sound.
func (n *Ntfy) NewOccurrence(ctx context.Context, o models.Occurrence, user string) error {
	return n.Send(ctx, Message{
		Title: fmt.Sprintf("New occurrence was added by %s", user),
		Body: fmt.Sprintf("time: %s, location: %s, target: %s, context: %s",
			o.Time.Format("2006-01-02 15:04"), o.Location, o.Target, o.Context),
		Tags:     "newoccurrence",
		Priority: "3",
	})
}

// NewUser announces that an admin gave u access
func (n *Ntfy) NewUser(ctx context.Context, u models.User) error {
	return n.Send(ctx, Message{
		Title:    fmt.Sprintf("User %s was given access to kys", u.Username),
		Body:     fmt.Sprintf("admin: %t, email: %s", u.Admin, u.Email),
		Tags:     "newuser",
		Priority: "4",
	})
}

// NewOccurrenceAsync sends the notification in the background; failures are only logged.
func (n *Ntfy) NewOccurrenceAsync(o models.Occurrence, user string) {
	n.async("occurrence", func(ctx context.Context) error {
		return n.NewOccurrence(ctx, o, user)
	})
}

func (n *Ntfy) NewUserAsync(u models.User) {
	n.async("new user", func(ctx context.Context) error {
		return n.NewUser(ctx, u)
	})
}

func (n *Ntfy) async(what string, send func(ctx context.Context) error) {
	if !n.Enabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := send(ctx); err != nil {
			log.Printf("Failed to send %s notification: %v", what, err)
		}
	}()
}
