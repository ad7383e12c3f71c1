package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dvdbackup/internal/logging"
)

func TestNewConsoleFormatWritesComponentPrefixedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
	logging.NewComponentLogger(logger, "rip").Info("gap fill finished")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "INFO rip: gap fill finished") {
		t.Fatalf("expected component-prefixed line, got: %s", data)
	}
}

func TestNewJSONFormatIsValidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("gap fill finished", logging.String("file", "VTS_01_1.VOB"), logging.Int("filled", 42))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("expected valid JSON line, got error: %v (%s)", err, data)
	}
	if payload["file"] != "VTS_01_1.VOB" {
		t.Fatalf("unexpected file field: %v", payload["file"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAttachesRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := logging.WithRunID(context.Background(), "run-123")

	scoped := logging.WithContext(ctx, logger)
	scoped.Info("started")

	if !strings.Contains(buf.String(), "run_id=run-123") {
		t.Fatalf("expected run_id attribute in output, got: %s", buf.String())
	}
}

func TestErrorAttrHandlesNil(t *testing.T) {
	attr := logging.Error(nil)
	if attr.Value.String() != "<nil>" {
		t.Fatalf("expected <nil> placeholder, got %q", attr.Value.String())
	}
}
