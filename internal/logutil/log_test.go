package logutil

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestGetOrDefault_ReturnsStoredLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "debug", false).With().Str("component", "test").Logger()
	ctx := WithLogger(context.Background(), logger)

	got := GetOrDefault(ctx)
	got.Info().Msg("hello")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if line["component"] != "test" || line["message"] != "hello" {
		t.Errorf("unexpected log line: %v", line)
	}
}

func TestGetOrDefault_FallsBackToGlobal(t *testing.T) {
	got := GetOrDefault(context.Background())
	if got.GetLevel() != log.Logger.GetLevel() {
		t.Errorf("unexpected default logger level %v", got.GetLevel())
	}
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", false)
	logger.Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}
	logger.Warn().Msg("kept")
	if buf.Len() == 0 {
		t.Error("warn should be written")
	}

	if New(&buf, "bogus", false).GetLevel() != zerolog.InfoLevel {
		t.Error("unknown level should fall back to info")
	}
}
