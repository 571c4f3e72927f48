package console

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Tracker is an interface for reporting server activity on the console.
// It is separate from structured logging: log output is for operators and
// files, tracker output is the human-readable line-per-request view.
type Tracker interface {
	// Listening reports that the server has bound its address
	Listening(addr string)
	// Request reports one completed request cycle
	Request(remote, method, path string, status, bytes int)
	// Dropped reports a connection that ended before a response was written
	Dropped(remote string, reason string)
	// Finish prints a summary of the run
	Finish()
}

// ConsoleTracker implements Tracker for console output
type ConsoleTracker struct {
	mu        sync.Mutex
	writer    io.Writer
	startTime time.Time
	served    int
	dropped   int
}

// NewConsoleTracker creates a new console tracker
func NewConsoleTracker() *ConsoleTracker {
	return &ConsoleTracker{
		writer: os.Stdout,
	}
}

// WithWriter sets the writer for the console tracker
func (t *ConsoleTracker) WithWriter(writer io.Writer) *ConsoleTracker {
	t.writer = writer
	return t
}

// Listening reports that the server has bound its address
func (t *ConsoleTracker) Listening(addr string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.startTime = time.Now()
	fmt.Fprintf(t.writer, "Listening on %s\n", color.CyanString(addr))
}

// Request reports one completed request cycle as a single colored line
func (t *ConsoleTracker) Request(remote, method, path string, status, bytes int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.served++
	fmt.Fprintf(t.writer, "%s %s %s -> %s (%d bytes)\n",
		remote, method, path, colorStatus(status), bytes)
}

// Dropped reports a connection that ended before a response was written
func (t *ConsoleTracker) Dropped(remote string, reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.dropped++
	fmt.Fprintf(t.writer, "%s %s (%s)\n", remote, color.RedString("dropped"), reason)
}

// Finish prints a summary of the run
func (t *ConsoleTracker) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.startTime.IsZero() {
		return
	}
	duration := time.Since(t.startTime).Round(time.Second)
	fmt.Fprintf(t.writer, "\nServed %d requests, dropped %d connections in %s\n",
		t.served, t.dropped, duration)
}

// colorStatus renders a status code colored by its class
func colorStatus(status int) string {
	text := fmt.Sprintf("%d", status)
	switch {
	case status >= 200 && status < 300:
		return color.GreenString(text)
	case status == 404:
		return color.YellowString(text)
	default:
		return color.RedString(text)
	}
}

// NopTracker is a Tracker that reports nothing. It is used with --quiet and
// in tests.
type NopTracker struct{}

// NewNopTracker creates a tracker that discards all events
func NewNopTracker() *NopTracker {
	return &NopTracker{}
}

// Listening implements Tracker
func (t *NopTracker) Listening(addr string) {}

// Request implements Tracker
func (t *NopTracker) Request(remote, method, path string, status, bytes int) {}

// Dropped implements Tracker
func (t *NopTracker) Dropped(remote string, reason string) {}

// Finish implements Tracker
func (t *NopTracker) Finish() {}
