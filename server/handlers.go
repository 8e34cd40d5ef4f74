package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/kys/models"
	"github.com/kys/templates"
)

// occurrence form times come from a datetime-local input
const formTimeLayout = "2006-01-02T15:04"

// page fills the layout state of a full page from the logged in user.
func (s *Server) page(r *http.Request, title, active, flash string) templates.Page {
	u, ok := currentUser(r)
	if !ok {
		u, _ = s.sessionUser(r)
	}
	return templates.Page{
		Title:  title,
		Active: active,
		Flash:  flash,
		User:   u.Username,
		Admin:  u.Admin,
	}
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	component := templates.Error(s.page(r, "Error", "", ""), message)
	templ.Handler(component, templ.WithStatus(status)).ServeHTTP(w, r)
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.renderError(w, r, http.StatusNotFound, "Page not found")
		return
	}
	if _, ok := s.sessionUser(r); ok {
		http.Redirect(w, r, "/home", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

// dashboardCharts draws every dashboard chart from the current occurrences.
func (s *Server) dashboardCharts() ([]templates.ChartView, error) {
	dashboard := models.DashboardCharts(s.Store.Occurrences(), s.Now())
	views := make([]templates.ChartView, 0, len(dashboard))
	for _, c := range dashboard {
		chart, err := RenderSeries(c.SurfaceID, c.Name, c.Kind, c.Series)
		if err != nil {
			return nil, err
		}
		views = append(views, toView(chart))
	}
	return views, nil
}

func toView(chart RenderedChart) templates.ChartView {
	return templates.ChartView{
		SurfaceID: chart.Surface.ID,
		DataChart: chart.Surface.DataChart,
		Name:      chart.Name,
		HTML:      chart.HTML,
	}
}

func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	views, err := s.dashboardCharts()
	if err != nil {
		log.Printf("Failed to render dashboard: %v", err)
		s.renderError(w, r, http.StatusInternalServerError, "Failed to render charts: "+err.Error())
		return
	}
	heatmap := models.NewHeatmap(s.Store.LocationCounts())

	component := templates.Index(s.page(r, "Home", "home", ""), views, heatmap)
	templ.Handler(component).ServeHTTP(w, r)
}

// chartsHandler renders the chart fragment. ?surface=<id> limits it to the
// dashboard chart drawn on that surface.
func (s *Server) chartsHandler(w http.ResponseWriter, r *http.Request) {
	surface := r.URL.Query().Get("surface")
	if surface != "" && !models.ValidSurfaceID(surface) {
		http.Error(w, models.ErrInvalidSurfaceID.Error(), http.StatusBadRequest)
		return
	}

	views, err := s.dashboardCharts()
	if err != nil {
		log.Printf("Failed to render charts: %v", err)
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}
	if surface != "" {
		var match []templates.ChartView
		for _, v := range views {
			if v.SurfaceID == surface {
				match = append(match, v)
			}
		}
		if len(match) == 0 {
			http.Error(w, "No chart on surface "+surface, http.StatusNotFound)
			return
		}
		views = match
	}
	templ.Handler(templates.Charts(views)).ServeHTTP(w, r)
}

func (s *Server) newOccurrenceHandler(w http.ResponseWriter, r *http.Request) {
	flash := ""
	status := http.StatusOK

	if r.Method == http.MethodPost {
		// Parse the form data
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form data", http.StatusBadRequest)
			return
		}

		// form has built in validation, this only guards against hand made requests
		t, err := time.ParseInLocation(formTimeLayout, r.FormValue("time"), s.Now().Location())
		if err != nil {
			s.renderError(w, r, http.StatusBadRequest, "Invalid time: "+r.FormValue("time"))
			return
		}
		o := models.Occurrence{
			Time:     t,
			Location: r.FormValue("location"),
			Target:   r.FormValue("target"),
			Context:  r.FormValue("context"),
		}
		if err := s.Store.AddOccurrence(o); err != nil {
			flash = "Error: " + err.Error()
			status = http.StatusBadRequest
		} else {
			log.Printf("Occurrence added at %s", o.Location)
			flash = "Occurrence added"
			if s.Notifier != nil {
				u, _ := currentUser(r)
				s.Notifier.NewOccurrenceAsync(o, u.Username)
			}
		}
	} else if r.Method != http.MethodGet {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	page := s.page(r, "New occurrence", "new-occurrence", flash)
	component := templates.NewOccurrence(page, s.Store.LocationOptions(), s.Store.TargetOptions())
	templ.Handler(component, templ.WithStatus(status)).ServeHTTP(w, r)
}

func (s *Server) mapLocationHandler(w http.ResponseWriter, r *http.Request) {
	flash := ""
	status := http.StatusOK

	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form data", http.StatusBadRequest)
			return
		}
		label := r.FormValue("location")
		p, err := models.CoordinateFields{Lat: r.FormValue("latitude"), Lng: r.FormValue("longitude")}.Parse()
		if err == nil {
			err = s.Store.MapLocation(label, p)
		}
		switch {
		case errors.Is(err, models.ErrUnknownLocation):
			status = http.StatusNotFound
			flash = "Error: " + err.Error()
		case err != nil:
			status = http.StatusBadRequest
			flash = "Error: " + err.Error()
		default:
			flash = "Location " + label + " mapped to " +
				strconv.FormatFloat(p.Lat, 'f', 6, 64) + ", " + strconv.FormatFloat(p.Lng, 'f', 6, 64)
			s.linkers.reset(r)
		}
	default:
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	linker := s.linkers.get(w, r)
	page := s.page(r, "Map location", "map-location", flash)
	component := templates.MapLocation(page, linker.View().Options(), linker.Snapshot(), s.Store.LocationOptions())
	templ.Handler(component, templ.WithStatus(status)).ServeHTTP(w, r)
}
