package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/kys/models"
)

const (
	mapSessionCookie = "map_session"
	mapSessionTTL    = 30 * time.Minute
	maxMapSessions   = 1000
)

// linkerRegistry holds one marker linker per browser session
type linkerRegistry struct {
	sessions *sessionTable[*models.MarkerLinker]
	newView  func() *models.MapView
}

func newLinkerRegistry(newView func() *models.MapView) *linkerRegistry {
	sessions := newSessionTable[*models.MarkerLinker](mapSessionTTL, maxMapSessions)
	sessions.onChange = func(n int) {
		activeMapSessions.Set(float64(n))
	}
	return &linkerRegistry{sessions: sessions, newView: newView}
}

// lookup returns the linker of the session without creating one.
func (lr *linkerRegistry) lookup(r *http.Request) (*models.MarkerLinker, bool) {
	c, err := r.Cookie(mapSessionCookie)
	if err != nil {
		return nil, false
	}
	return lr.sessions.lookup(c.Value)
}

// get returns the linker of the session, creating both when missing.
func (lr *linkerRegistry) get(w http.ResponseWriter, r *http.Request) *models.MarkerLinker {
	if linker, ok := lr.lookup(r); ok {
		return linker
	}

	linker := models.NewMarkerLinker(lr.newView())
	id := lr.sessions.create(linker)
	http.SetCookie(w, &http.Cookie{
		Name:     mapSessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(mapSessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return linker
}

// reset drops the linker of the session, e.g. after its coordinates were saved
func (lr *linkerRegistry) reset(r *http.Request) {
	if c, err := r.Cookie(mapSessionCookie); err == nil {
		lr.sessions.remove(c.Value)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

type errorResponse struct {
	Error string                `json:"error"`
	State models.LinkerSnapshot `json:"state"`
}

func writeJSONError(w http.ResponseWriter, status int, message string, state models.LinkerSnapshot) {
	writeJSON(w, status, errorResponse{Error: message, State: state})
}

// emptyState is reported to sessions that have no linker yet
var emptyState = models.LinkerSnapshot{State: models.NoMarker}

// mapClickHandler handles a click on the map: {"latlng":{"lat":..,"lng":..}}
func (s *Server) mapClickHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "Invalid request method", emptyState)
		return
	}

	var event models.ClickEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		markerEvents.WithLabelValues("click", "rejected").Inc()
		writeJSONError(w, http.StatusBadRequest, "Failed to parse click event", s.mapState(r))
		return
	}

	linker := s.linkers.get(w, r)
	state := linker.OnMapClick(event)
	markerEvents.WithLabelValues("click", "ok").Inc()
	writeJSON(w, http.StatusOK, state)
}

// mapFieldsHandler handles an edit of the lat or lng field: {"lat":"..","lng":".."}
func (s *Server) mapFieldsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "Invalid request method", emptyState)
		return
	}

	var fields models.CoordinateFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		markerEvents.WithLabelValues("fields", "rejected").Inc()
		writeJSONError(w, http.StatusBadRequest, "Failed to parse field values", s.mapState(r))
		return
	}

	linker := s.linkers.get(w, r)
	state, err := linker.OnFieldEdit(fields)
	if err != nil {
		markerEvents.WithLabelValues("fields", "rejected").Inc()
		writeJSONError(w, http.StatusBadRequest, err.Error(), state)
		return
	}
	markerEvents.WithLabelValues("fields", "ok").Inc()
	writeJSON(w, http.StatusOK, state)
}

// mapStateHandler returns the current linker state of the session
func (s *Server) mapStateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "Invalid request method", emptyState)
		return
	}
	writeJSON(w, http.StatusOK, s.mapState(r))
}

func (s *Server) mapState(r *http.Request) models.LinkerSnapshot {
	if linker, ok := s.linkers.lookup(r); ok {
		return linker.Snapshot()
	}
	return emptyState
}
