package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetupWriterLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	var buf bytes.Buffer
	logger, err := SetupWriter(&buf, "warn", false)
	if err != nil {
		t.Fatalf("SetupWriter: %v", err)
	}

	logger.Info().Msg("hidden")
	logger.Warn().Int("col", 3).Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message written at warn level: %q", out)
	}
	if !strings.Contains(out, `"col":3`) || !strings.Contains(out, `"message":"shown"`) {
		t.Errorf("warn message missing or malformed: %q", out)
	}
}

func TestSetupWriterBadLevel(t *testing.T) {
	if _, err := SetupWriter(&bytes.Buffer{}, "loud", false); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
}

func TestSetupWriterEmptyLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	if _, err := SetupWriter(&bytes.Buffer{}, "", true); err != nil {
		t.Fatalf("SetupWriter: %v", err)
	}
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("global level %s, want info", zerolog.GlobalLevel())
	}
}
