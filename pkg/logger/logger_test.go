package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	log := Init(Options{Level: "warn", Output: &buf})

	log.Info().Msg("below threshold")
	log.Warn().Msg("session store unreachable")

	out := buf.String()
	if strings.Contains(out, "below threshold") {
		t.Fatalf("info message emitted despite warn level: %s", out)
	}
	if !strings.Contains(out, "session store unreachable") {
		t.Fatalf("warn message missing: %s", out)
	}

	// Later calls must not rebuild the instance.
	var other bytes.Buffer
	again := Init(Options{Level: "trace", Output: &other})
	again.Warn().Msg("still the first writer")
	if other.Len() != 0 {
		t.Fatalf("second Init rebuilt the logger")
	}
	if !strings.Contains(buf.String(), "still the first writer") {
		t.Fatalf("logger from second Init does not share the first writer")
	}
}
