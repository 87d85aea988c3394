package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestInitVerbose(t *testing.T) {
	Init(true)
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be enabled in verbose mode")
	}
}

func TestInitQuiet(t *testing.T) {
	Init(false)
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be disabled by default")
	}
	if !slog.Default().Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be enabled")
	}
}
