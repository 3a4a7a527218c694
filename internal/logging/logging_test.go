package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func withBuffer(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}

	mu.Lock()
	old := baseWriter
	baseWriter = buf
	mu.Unlock()

	t.Cleanup(func() {
		mu.Lock()
		baseWriter = old
		mu.Unlock()
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	})
	return buf
}

func TestInitJSONFormatSetsLevelAndComponent(t *testing.T) {
	buf := withBuffer(t)

	Init(Config{Format: "json", Level: "debug", Component: "sarif"})
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Fatalf("expected global level debug, got %s", zerolog.GlobalLevel())
	}

	log.Debug().Int("rules", 2).Msg("built rule catalog")

	var event map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &event); err != nil {
		t.Fatalf("failed to unmarshal log line %q: %v", buf.String(), err)
	}
	if event["component"] != "sarif" {
		t.Fatalf("expected component sarif, got %v", event["component"])
	}
	if event["message"] != "built rule catalog" {
		t.Fatalf("unexpected message: %v", event["message"])
	}
}

func TestInitDefaultLevelSuppressesDebug(t *testing.T) {
	buf := withBuffer(t)

	Init(Config{Format: "json"})
	log.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no debug output at default level, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"":         zerolog.WarnLevel,
		"DEBUG":    zerolog.DebugLevel,
		"info":     zerolog.InfoLevel,
		"error":    zerolog.ErrorLevel,
		"disabled": zerolog.Disabled,
		"nonsense": zerolog.WarnLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestSelectWriterAutoUsesJSONOffTerminal(t *testing.T) {
	old := isTerminalFn
	t.Cleanup(func() { isTerminalFn = old })
	isTerminalFn = func(int) bool { return false }

	buf := &bytes.Buffer{}
	if got := selectWriter("auto", buf); got != buf {
		t.Fatalf("expected raw writer for non-file output")
	}
	if _, ok := selectWriter("console", buf).(zerolog.ConsoleWriter); !ok {
		t.Fatalf("expected console writer")
	}
}
