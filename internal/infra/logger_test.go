package infra

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("debug", &buf)
	if logger.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level = %v", logger.GetLevel())
	}
	logger.WithField("tier", "economy").Info("quoted")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("not json: %v (%s)", err, buf.String())
	}
	if entry["message"] != "quoted" || entry["tier"] != "economy" || entry["level"] != "info" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestNewLogger_BadLevel(t *testing.T) {
	if got := NewLogger("loud", &bytes.Buffer{}).GetLevel(); got != logrus.InfoLevel {
		t.Errorf("level = %v, want info", got)
	}
}
