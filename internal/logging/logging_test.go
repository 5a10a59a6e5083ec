package logging

import (
	"bytes"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestConfigure(t *testing.T) {
	tests := []struct {
		name  string
		level string
		debug bool
		want  log.Level
	}{
		{"empty defaults to info", "", false, log.InfoLevel},
		{"explicit warn", "warn", false, log.WarnLevel},
		{"debug flag wins", "error", true, log.DebugLevel},
		{"invalid falls back", "chatty", false, log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Configure(&buf, tt.level, tt.debug)
			if got := log.GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigure_InvalidLevelWarns(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, "chatty", false)
	if !strings.Contains(buf.String(), "invalid log level chatty") {
		t.Errorf("expected warning in output, got %q", buf.String())
	}
}
