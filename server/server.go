package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/cli/browser"
	"github.com/kys/models"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Notifier announces new occurrences and new users
type Notifier interface {
	NewOccurrenceAsync(o models.Occurrence, user string)
	NewUserAsync(u models.User)
}

// Server serves the dashboard, the map page and their event endpoints
type Server struct {
	Config   models.Config
	Store    *models.DataStore
	Notifier Notifier
	Now      func() time.Time

	linkers *linkerRegistry
	logins  *sessionTable[string]
}

func New(cfg models.Config, store *models.DataStore, notifier Notifier) *Server {
	return &Server{
		Config:   cfg,
		Store:    store,
		Notifier: notifier,
		Now:      time.Now,
		linkers:  newLinkerRegistry(models.NewDefaultMapView),
		logins:   newSessionTable[string](loginSessionTTL, maxLoginSession),
	}
}

// Routes builds the HTTP handler with logging and metrics middleware applied.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	fs := http.FileServer(http.Dir("static"))
	mux.Handle("/static/", http.StripPrefix("/static/", fs))

	mux.HandleFunc("/", s.indexHandler)
	mux.HandleFunc("/login", s.loginHandler)
	mux.HandleFunc("/logout", s.requireLogin(s.logoutHandler))
	mux.HandleFunc("/home", s.requireLogin(s.homeHandler))
	mux.HandleFunc("/charts", s.requireLogin(s.chartsHandler))
	mux.HandleFunc("/new-occurrence", s.requireLogin(s.newOccurrenceHandler))

	// Admin pages
	mux.HandleFunc("/map-location", s.requireAdmin(s.mapLocationHandler))
	mux.HandleFunc("/new-user", s.requireAdmin(s.newUserHandler))

	// Map marker events
	mux.HandleFunc("/map/click", s.requireAdminAPI(s.mapClickHandler))
	mux.HandleFunc("/map/fields", s.requireAdminAPI(s.mapFieldsHandler))
	mux.HandleFunc("/map/state", s.requireAdminAPI(s.mapStateHandler))

	mux.Handle("/metrics", promhttp.Handler())

	return loggingMiddleware(metricsMiddleware(mux))
}

// Serve runs the server until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	logFile, err := setupLogging(s.Config.LogDir, s.Config.LogStdout)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer logFile.Close()

	srv := &http.Server{
		Addr:              ":" + s.Config.Port,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	url := fmt.Sprintf("http://localhost:%s", s.Config.Port)
	log.Printf("Server starting on %s", url)
	log.Printf("Visit %s to see the charts", url)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	if s.Config.OpenBrowser {
		if err := browser.OpenURL(url); err != nil {
			log.Printf("Failed to open browser: %v", err)
		}
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		log.Println("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
