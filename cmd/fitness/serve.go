// ABOUTME: CLI command for running the fitness web app.
// ABOUTME: Starts the HTTP server and shuts it down gracefully on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harperreed/fitness/internal/notify"
	"github.com/harperreed/fitness/internal/web"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web app",
	Long: `Start the fitness web app.

ROUTES:

  /                  Login
  /signup            Create an account
  /forgot_password   Request a password reset (logged only)
  /menu              Dashboard menu
  /dashboard1..4     Dashboards of the current snapshot
  /simulate_update   Randomize steps, calories, active minutes, heart rate
  /healthz           Liveness check

EXAMPLES:

  fitness serve                     # Listen on the configured address
  fitness serve --addr :8080        # Listen on all interfaces, port 8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.GetAddr()
		if serveAddr != "" {
			addr = serveAddr
		}

		logger := slog.Default()
		srv, err := web.NewServer(
			web.WithAccounts(accounts),
			web.WithStats(statsSvc),
			web.WithNotifier(notify.NewLogNotifier(logger)),
			web.WithHealthChecker(db),
			web.WithLogger(logger),
		)
		if err != nil {
			return err
		}

		httpServer := &http.Server{
			Addr:              addr,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runServer(ctx, httpServer)
	},
}

// runServer serves until ctx is done, then shuts the server down.
func runServer(ctx context.Context, httpServer *http.Server) error {
	serverError := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case err := <-serverError:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	}
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: 127.0.0.1:5000)")
	rootCmd.AddCommand(serveCmd)
}
