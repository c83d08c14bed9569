package inkcell

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultSilent(t *testing.T) {
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	buf := &bytes.Buffer{}
	SetLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	Logger().Debug("hello", "cell", 7)
	if !strings.Contains(buf.String(), "cell=7") {
		t.Errorf("unexpected log output %q", buf.String())
	}

	SetLogger(nil)
	buf.Reset()
	Logger().Info("ignored")
	if buf.Len() != 0 {
		t.Errorf("log output after reset: %q", buf.String())
	}
}
