// ABOUTME: Route handlers for login, signup, password reset, menu, and dashboards.
// ABOUTME: Form posts re-render pages with alert or error messages; dashboards read the current snapshot.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/harperreed/fitness/internal/account"
	"github.com/harperreed/fitness/internal/models"
)

// User-facing messages.
const (
	msgAccountCreated     = "Account created successfully! Please login."
	msgEmailRegistered    = "Email already registered. Try logging in."
	msgInvalidCredentials = "Invalid email or password."
	msgResetSent          = "Reset link sent! Please check your email."
	msgDataUpdated        = "Data Updated!"
)

// errMissingField is returned when a required form field is absent.
var errMissingField = errors.New("missing form field")

// formValues returns the named fields of a posted form. A field that is
// present but empty is accepted; an absent field is an error.
func formValues(r *http.Request, keys ...string) ([]string, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	values := make([]string, len(keys))
	for i, k := range keys {
		if _, ok := r.PostForm[k]; !ok {
			return nil, fmt.Errorf("%w: %s", errMissingField, k)
		}
		values[i] = r.PostForm.Get(k)
	}
	return values, nil
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	if err := s.pages.render(w, status, name, data); err != nil {
		s.logger.Error("failed to render page", "page", name, "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.logger.Error(msg, "path", r.URL.Path, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// handleHealthCheck handles GET /healthz
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := s.health.Ping(ctx); err != nil {
			s.logger.Warn("health check failed", "error", err)
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleLoginPage handles GET /
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, pageLogin, pageData{Title: "Login"})
}

// handleSignupPage handles GET /signup
func (s *Server) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, pageSignup, pageData{Title: "Sign Up"})
}

// handleRegister handles POST /register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	values, err := formValues(r, "name", "email", "password")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	name, email, password := values[0], values[1], values[2]

	_, err = s.accounts.Register(r.Context(), name, email, password)
	if errors.Is(err, account.ErrDuplicateEmail) {
		s.renderPage(w, r, http.StatusOK, pageSignup, pageData{Title: "Sign Up", ErrorMsg: msgEmailRegistered})
		return
	}
	if err != nil {
		s.internalError(w, r, "failed to register user", err)
		return
	}

	s.logger.Info("user registered", "email", email)
	s.renderPage(w, r, http.StatusOK, pageLogin, pageData{Title: "Login", AlertMsg: msgAccountCreated})
}

// handleLogin handles POST /login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	values, err := formValues(r, "email", "password")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	email, password := values[0], values[1]

	_, err = s.accounts.Authenticate(r.Context(), email, password)
	if errors.Is(err, account.ErrInvalidCredentials) {
		s.renderPage(w, r, http.StatusOK, pageLogin, pageData{Title: "Login", ErrorMsg: msgInvalidCredentials})
		return
	}
	if err != nil {
		s.internalError(w, r, "failed to authenticate user", err)
		return
	}

	http.Redirect(w, r, "/menu", http.StatusFound)
}

// handleForgotPasswordPage handles GET /forgot_password
func (s *Server) handleForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, pageForgotPassword, pageData{Title: "Forgot Password"})
}

// handlePerformReset handles POST /perform_reset
func (s *Server) handlePerformReset(w http.ResponseWriter, r *http.Request) {
	values, err := formValues(r, "email")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.notifier.SendReset(r.Context(), values[0]); err != nil {
		s.logger.Warn("reset notification failed", "error", err)
	}

	s.renderPage(w, r, http.StatusOK, pageLogin, pageData{Title: "Login", AlertMsg: msgResetSent})
}

// handleMenu handles GET /menu
func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, pageMenu, pageData{Title: "Menu", Dashboards: models.Dashboards})
}

// handleDashboard returns the handler for GET /dashboardN
func (s *Server) handleDashboard(d models.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := s.stats.Current(r.Context())
		if err != nil {
			s.internalError(w, r, "failed to load stats", err)
			return
		}

		s.renderPage(w, r, http.StatusOK, pageDashboard, pageData{
			Title:     d.Title,
			Dashboard: d,
			Tiles:     d.Project(*snap),
		})
	}
}

// handleSimulateUpdate handles GET /simulate_update
func (s *Server) handleSimulateUpdate(w http.ResponseWriter, r *http.Request) {
	snap, err := s.stats.SimulateUpdate(r.Context())
	if err != nil {
		s.internalError(w, r, "failed to simulate update", err)
		return
	}

	s.logger.Debug("stats updated",
		"steps", snap.Steps,
		"calories", snap.Calories,
		"active_minutes", snap.ActiveMinutes,
		"heart_rate", snap.HeartRate,
	)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(msgDataUpdated))
}
