// ABOUTME: Password reset notification hook.
// ABOUTME: The default notifier only logs the request; no email is sent.
package notify

import (
	"context"
	"log/slog"
)

// ResetNotifier is told when someone asks for a password reset.
type ResetNotifier interface {
	SendReset(ctx context.Context, email string) error
}

// LogNotifier records reset requests in the log.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier writing to logger, or to the default
// logger when logger is nil.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// SendReset logs the email. The address is not checked against registered
// accounts.
func (n *LogNotifier) SendReset(ctx context.Context, email string) error {
	n.logger.InfoContext(ctx, "password reset requested", "email", email)
	return nil
}
