package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/niels/tinyhttpd/pkg/config"
	"github.com/niels/tinyhttpd/pkg/console"
	"github.com/niels/tinyhttpd/pkg/dispatch"
	"github.com/niels/tinyhttpd/pkg/httpmsg"
	"github.com/niels/tinyhttpd/pkg/logging"
	"github.com/niels/tinyhttpd/pkg/retry"
	"github.com/niels/tinyhttpd/pkg/util"
)

// Server runs the connection loop: accept one connection, read one buffer,
// dispatch, write one response, close, repeat. Connections are handled
// strictly sequentially; the next accept does not happen until the current
// connection's full cycle is complete.
type Server struct {
	cfg        *config.Config
	dispatcher *dispatch.Dispatcher
	tracker    console.Tracker
	backoff    *retry.Backoff
	limits     httpmsg.Limits
	debug      bool
}

// Option configures a Server
type Option func(*Server)

// WithTracker sets the console tracker
func WithTracker(tracker console.Tracker) Option {
	return func(s *Server) {
		s.tracker = tracker
	}
}

// WithDebug enables raw payload dumps in the debug log
func WithDebug(debug bool) Option {
	return func(s *Server) {
		s.debug = debug
	}
}

// New creates a server from configuration and a dispatcher
func New(cfg *config.Config, dispatcher *dispatch.Dispatcher, opts ...Option) *Server {
	s := &Server{
		cfg:        cfg,
		dispatcher: dispatcher,
		tracker:    console.NewNopTracker(),
		backoff:    retry.NewBackoff(retry.FromConfig(cfg)),
		limits: httpmsg.Limits{
			MaxMethodLen: cfg.Limits.MaxMethodLen,
			MaxPathLen:   cfg.Limits.MaxPathLen,
			MaxBodyLen:   cfg.Limits.MaxBodyLen,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListenAndServe binds the address and runs the connection loop until the
// context is cancelled. A bind failure is fatal and returned immediately.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve runs the connection loop on an existing listener. It returns only
// when the context is cancelled; per-connection failures are logged and the
// loop continues.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer ln.Close()

	addr := ln.Addr().String()
	logging.InfoWith("Server listening", map[string]interface{}{
		"addr": addr,
	})
	s.tracker.Listening(addr)

	// Cancelling the context closes the listener, which unblocks Accept
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.tracker.Finish()
				logging.Info("Server shutting down")
				return nil
			}
			delay := s.backoff.Next()
			logging.ErrorWith("Failed to accept connection", map[string]interface{}{
				"error": err.Error(),
				"retry": delay.String(),
			})
			sleepOrDone(ctx, delay)
			continue
		}
		s.backoff.Reset()

		// The whole cycle for this connection completes before the next
		// accept; a slow client stalls the server
		s.handle(conn)
	}
}

// handle runs one connection's read/dispatch/write/close cycle
func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	remote := conn.RemoteAddr().String()
	logging.DebugWith("Connection established", map[string]interface{}{
		"remote": remote,
	})

	// One receive; anything beyond the buffer is silently truncated
	buf := make([]byte, s.cfg.Server.ReadBufferSize)
	n, err := conn.Read(buf)
	if err != nil {
		logging.ErrorWith("Failed to receive data", map[string]interface{}{
			"remote": remote,
			"error":  err.Error(),
		})
		s.tracker.Dropped(remote, "read error")
		return
	}

	raw := buf[:n]
	if s.debug {
		logging.DebugWith("Received data", map[string]interface{}{
			"remote":  remote,
			"payload": util.EscapeCRLF(string(raw)),
		})
	}

	req, err := httpmsg.ParseRequest(raw, s.limits)
	if err != nil {
		// Never dispatch a request that failed to parse
		logging.WarnWith("Failed to parse request", map[string]interface{}{
			"remote": remote,
			"error":  err.Error(),
		})
		s.tracker.Dropped(remote, "parse error")
		return
	}

	resp := s.dispatcher.Dispatch(req)
	wire := resp.Bytes()

	// One send for the whole response
	if _, err := conn.Write(wire); err != nil {
		logging.ErrorWith("Failed to send response", map[string]interface{}{
			"remote": remote,
			"error":  err.Error(),
		})
		s.tracker.Dropped(remote, "write error")
		return
	}

	if s.debug {
		logging.DebugWith("Response sent", map[string]interface{}{
			"remote":  remote,
			"payload": util.EscapeCRLF(string(wire)),
		})
	}

	s.tracker.Request(remote, req.Method, req.Path, resp.StatusCode, resp.ContentLength())
	logging.InfoWith("Request served", map[string]interface{}{
		"remote": remote,
		"method": req.Method,
		"path":   req.Path,
		"status": resp.StatusCode,
		"bytes":  resp.ContentLength(),
	})
}

// ValidateAddr checks a dotted-quad IPv4 address and port pair the way the
// CLI contract requires: the address must parse as IPv4 and the port must be
// in (0, 65534].
func ValidateAddr(ipStr string, port int) error {
	ip := net.ParseIP(ipStr)
	if ip == nil || ip.To4() == nil {
		return fmt.Errorf("invalid IP address: %s", ipStr)
	}
	if port <= 0 || port > 65534 {
		return errors.New("port must be in range 1-65534")
	}
	return nil
}

// sleepOrDone waits for the delay unless the context ends first
func sleepOrDone(ctx context.Context, delay time.Duration) {
	if delay <= 0 {
		return
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
