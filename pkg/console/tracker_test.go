package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestConsoleTracker(t *testing.T) {
	// Disable color so output assertions see plain text
	oldNoColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = oldNoColor }()

	var buf bytes.Buffer
	tracker := NewConsoleTracker().WithWriter(&buf)

	tracker.Listening("127.0.0.1:8080")
	tracker.Request("127.0.0.1:51000", "GET", "/", 200, 1024)
	tracker.Request("127.0.0.1:51001", "GET", "/missing", 404, 0)
	tracker.Dropped("127.0.0.1:51002", "read error")
	tracker.Finish()

	output := buf.String()

	if !strings.Contains(output, "Listening on 127.0.0.1:8080") {
		t.Errorf("Expected listening line, got: %s", output)
	}
	if !strings.Contains(output, "GET / -> 200 (1024 bytes)") {
		t.Errorf("Expected request line for 200, got: %s", output)
	}
	if !strings.Contains(output, "GET /missing -> 404 (0 bytes)") {
		t.Errorf("Expected request line for 404, got: %s", output)
	}
	if !strings.Contains(output, "dropped (read error)") {
		t.Errorf("Expected dropped line, got: %s", output)
	}
	if !strings.Contains(output, "Served 2 requests, dropped 1 connections") {
		t.Errorf("Expected run summary, got: %s", output)
	}
}

func TestNopTracker(t *testing.T) {
	// The nop tracker must accept every event without output or panic
	tracker := NewNopTracker()
	tracker.Listening("127.0.0.1:8080")
	tracker.Request("127.0.0.1:51000", "GET", "/", 200, 10)
	tracker.Dropped("127.0.0.1:51001", "parse error")
	tracker.Finish()
}
