package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTraceWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trace.log")
	Configure(path)
	SetTraceEnabled(true)
	t.Cleanup(func() {
		SetTraceEnabled(false)
		_ = Close()
	})

	Trace("menu.select", map[string]interface{}{"index": 2})
	Trace("menu.commit", map[string]interface{}{"id": 20})
	if err := Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("expected log file, got %v", err)
	}
	defer f.Close()
	var events []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry struct {
			Event string `json:"event"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("expected JSON line, got %q", scanner.Text())
		}
		events = append(events, entry.Event)
	}
	if strings.Join(events, ",") != "menu.select,menu.commit" {
		t.Fatalf("unexpected events %v", events)
	}
}

func TestTraceDisabledWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiet.log")
	Configure(path)
	SetTraceEnabled(false)
	t.Cleanup(func() { _ = Close() })

	Trace("menu.select", nil)
	_ = Close()
	if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
		t.Fatalf("expected no trace output, got %q", data)
	}
}

func TestErrorAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.log")
	Configure(path)
	t.Cleanup(func() { _ = Close() })

	Error(errors.New("window creation failed"))
	Error(nil)
	_ = Close()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file, got %v", err)
	}
	if !strings.Contains(string(data), "window creation failed") {
		t.Fatalf("expected error text in log, got %q", data)
	}
	if strings.Count(string(data), "\n") != 1 {
		t.Fatalf("expected exactly one line, got %q", data)
	}
}
