// ABOUTME: HTTP server for the fitness web application.
// ABOUTME: Wires account, stats, and reset collaborators into routes via functional options.
package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/notify"
)

// Accounts registers and authenticates users.
type Accounts interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

// Stats reads and updates the shared snapshot.
type Stats interface {
	Current(ctx context.Context) (*models.StatsSnapshot, error)
	SimulateUpdate(ctx context.Context) (*models.StatsSnapshot, error)
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Server serves the login, menu, and dashboard pages.
type Server struct {
	accounts Accounts
	stats    Stats
	notifier notify.ResetNotifier
	health   HealthChecker
	logger   *slog.Logger
	pages    *pages
}

// ServerOption defines a functional option for configuring Server
type ServerOption func(*Server)

// WithAccounts configures the account service
func WithAccounts(a Accounts) ServerOption {
	return func(s *Server) {
		s.accounts = a
	}
}

// WithStats configures the stats service
func WithStats(st Stats) ServerOption {
	return func(s *Server) {
		s.stats = st
	}
}

// WithNotifier configures where password reset requests go
func WithNotifier(n notify.ResetNotifier) ServerOption {
	return func(s *Server) {
		s.notifier = n
	}
}

// WithHealthChecker configures the store pinged by /healthz
func WithHealthChecker(h HealthChecker) ServerOption {
	return func(s *Server) {
		s.health = h
	}
}

// WithLogger configures the request logger
func WithLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = l
	}
}

// NewServer creates a server. Accounts and stats are required.
func NewServer(options ...ServerOption) (*Server, error) {
	s := &Server{}
	for _, option := range options {
		option(s)
	}

	if s.accounts == nil {
		return nil, fmt.Errorf("web server: accounts not configured")
	}
	if s.stats == nil {
		return nil, fmt.Errorf("web server: stats not configured")
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.notifier == nil {
		s.notifier = notify.NewLogNotifier(s.logger)
	}

	p, err := loadPages()
	if err != nil {
		return nil, err
	}
	s.pages = p

	return s, nil
}

// SetupRoutes registers every route on mux.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealthCheck)
	mux.Handle("GET /static/", staticHandler())

	// Login and signup
	mux.HandleFunc("GET /{$}", s.handleLoginPage)
	mux.HandleFunc("GET /signup", s.handleSignupPage)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /login", s.handleLogin)

	// Forgot password
	mux.HandleFunc("GET /forgot_password", s.handleForgotPasswordPage)
	mux.HandleFunc("POST /perform_reset", s.handlePerformReset)

	// Menu and dashboards
	mux.HandleFunc("GET /menu", s.handleMenu)
	for _, d := range models.Dashboards {
		mux.HandleFunc(fmt.Sprintf("GET /dashboard%d", d.Number), s.handleDashboard(d))
	}
	mux.HandleFunc("GET /simulate_update", s.handleSimulateUpdate)
}

// Handler returns the routed handler wrapped in logging and panic recovery.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.SetupRoutes(mux)
	return s.LoggingMiddleware(s.RecoverMiddleware(mux))
}
