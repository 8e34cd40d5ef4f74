package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/kys/models"
	"github.com/kys/templates"
)

const (
	loginCookie     = "kys_session"
	loginSessionTTL = 30 * 24 * time.Hour
	maxLoginSession = 10000
)

type contextKey string

const userContextKey contextKey = "user"

// currentUser returns the logged in user that requireLogin attached to the request.
func currentUser(r *http.Request) (models.User, bool) {
	u, ok := r.Context().Value(userContextKey).(models.User)
	return u, ok
}

// sessionUser resolves the login cookie to a user.
func (s *Server) sessionUser(r *http.Request) (models.User, bool) {
	c, err := r.Cookie(loginCookie)
	if err != nil {
		return models.User{}, false
	}
	username, ok := s.logins.lookup(c.Value)
	if !ok {
		return models.User{}, false
	}
	return s.Store.User(username)
}

// requireLogin sends anonymous visitors to the login page.
func (s *Server) requireLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := s.sessionUser(r)
		if !ok {
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userContextKey, u)))
	}
}

// requireAdmin is requireLogin for pages only admins may see.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return s.requireLogin(func(w http.ResponseWriter, r *http.Request) {
		u, _ := currentUser(r)
		if !u.Admin {
			s.renderError(w, r, http.StatusForbidden, "You need admin rights to view this page")
			return
		}
		next(w, r)
	})
}

// requireAdminAPI guards the JSON endpoints of the map page.
func (s *Server) requireAdminAPI(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := s.sessionUser(r)
		if !ok {
			writeJSONError(w, http.StatusUnauthorized, "Login required", emptyState)
			return
		}
		if !u.Admin {
			writeJSONError(w, http.StatusForbidden, "Admin rights required", emptyState)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userContextKey, u)))
	}
}

// safeNext keeps redirects after login on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/home"
	}
	return next
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r.URL.Query().Get("next"))

	switch r.Method {
	case http.MethodGet:
		if _, ok := s.sessionUser(r); ok {
			http.Redirect(w, r, next, http.StatusFound)
			return
		}
		templ.Handler(templates.Login(s.page(r, "Login", "login", ""), next)).ServeHTTP(w, r)
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form data", http.StatusBadRequest)
			return
		}
		next = safeNext(r.FormValue("next"))
		u, err := s.Store.Authenticate(r.FormValue("username"), r.FormValue("password"))
		if err != nil {
			status := http.StatusUnauthorized
			if !errors.Is(err, models.ErrUserNotFound) && !errors.Is(err, models.ErrWrongPassword) {
				log.Printf("Failed to authenticate %q: %v", r.FormValue("username"), err)
				status = http.StatusInternalServerError
			}
			loginAttempts.WithLabelValues("rejected").Inc()
			component := templates.Login(s.page(r, "Login", "login", "Error: "+err.Error()), next)
			templ.Handler(component, templ.WithStatus(status)).ServeHTTP(w, r)
			return
		}

		loginAttempts.WithLabelValues("ok").Inc()
		http.SetCookie(w, &http.Cookie{
			Name:     loginCookie,
			Value:    s.logins.create(u.Username),
			Path:     "/",
			MaxAge:   int(loginSessionTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		log.Printf("User %q logged in", u.Username)
		http.Redirect(w, r, next, http.StatusFound)
	default:
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
	}
}

func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(loginCookie); err == nil {
		s.logins.remove(c.Value)
	}
	s.linkers.reset(r)
	http.SetCookie(w, &http.Cookie{Name: loginCookie, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) newUserHandler(w http.ResponseWriter, r *http.Request) {
	flash := ""
	status := http.StatusOK

	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form data", http.StatusBadRequest)
			return
		}
		u, err := s.Store.CreateUser(
			r.FormValue("username"),
			r.FormValue("email"),
			r.FormValue("password"),
			r.FormValue("admin-state") == "on",
		)
		switch {
		case errors.Is(err, models.ErrUserExists):
			status = http.StatusConflict
			flash = "Error: " + err.Error()
		case err != nil:
			status = http.StatusBadRequest
			flash = "Error: " + err.Error()
		default:
			flash = "User added"
			if s.Notifier != nil {
				s.Notifier.NewUserAsync(u)
			}
		}
	default:
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	component := templates.NewUser(s.page(r, "New user", "new-user", flash))
	templ.Handler(component, templ.WithStatus(status)).ServeHTTP(w, r)
}
