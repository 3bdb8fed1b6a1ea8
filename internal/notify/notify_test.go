// ABOUTME: Tests for the logging reset notifier.
// ABOUTME: Checks the email reaches the structured log.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogNotifierLogsEmail(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, n.SendReset(context.Background(), "ann@x.com"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "password reset requested", entry["msg"])
	assert.Equal(t, "ann@x.com", entry["email"])
}

func TestLogNotifierAcceptsAnyInput(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewJSONHandler(&buf, nil)))

	assert.NoError(t, n.SendReset(context.Background(), ""))
	assert.NoError(t, n.SendReset(context.Background(), "not an email"))
}

func TestNewLogNotifierNilLogger(t *testing.T) {
	n := NewLogNotifier(nil)
	assert.NotNil(t, n.logger)
	assert.NoError(t, n.SendReset(context.Background(), "x@y.z"))
}
