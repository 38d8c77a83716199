package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
)

func TestSetup_RejectsUnknownLevel(t *testing.T) {
	if _, err := Setup(LogConfig{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestSetup_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	closer, err := Setup(LogConfig{Level: "info", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	l := WithComponent("test")
	l.Info().Str("mobile", "9999999999").Msg("hello")
	log.Debug().Msg("filtered")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, `"component":"test"`) || !strings.Contains(got, `"message":"hello"`) {
		t.Errorf("unexpected log output: %s", got)
	}
	if strings.Contains(got, "filtered") {
		t.Errorf("debug line written at info level: %s", got)
	}
}
