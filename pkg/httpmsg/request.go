package httpmsg

import (
	"bytes"
	"errors"
	"strconv"
)

// Common errors
var (
	// ErrNoRequest indicates the raw buffer did not contain a parseable request
	ErrNoRequest = errors.New("no request")
)

const (
	// DefaultMaxMethodLen is the default maximum length of the request method
	DefaultMaxMethodLen = 9
	// DefaultMaxPathLen is the default maximum length of the request path
	DefaultMaxPathLen = 99
	// DefaultMaxBodyLen is the default maximum number of body bytes retained
	DefaultMaxBodyLen = 4095
)

// Limits bounds the sizes of the parsed request fields. Oversized fields are
// truncated, not rejected, matching the behavior of a fixed receive buffer.
type Limits struct {
	MaxMethodLen int
	MaxPathLen   int
	MaxBodyLen   int
}

// DefaultLimits returns the default parser limits
func DefaultLimits() Limits {
	return Limits{
		MaxMethodLen: DefaultMaxMethodLen,
		MaxPathLen:   DefaultMaxPathLen,
		MaxBodyLen:   DefaultMaxBodyLen,
	}
}

// Request represents a parsed HTTP request.
// Body is nil unless the request carried a Content-Length header; BodyDeclared
// holds the header's value, which may exceed len(Body) when the body was
// truncated by the receive buffer or the body limit.
type Request struct {
	Method       string
	Path         string
	Body         []byte
	BodyDeclared int
}

const contentLengthPrefix = "Content-Length:"

var headerSeparator = []byte("\r\n\r\n")

// ParseRequest extracts the method, path and optional body from a raw request
// buffer. The method and path are the first two space-delimited tokens of the
// buffer; if either is missing the buffer is not a request and ErrNoRequest is
// returned. A malformed Content-Length value or a missing blank-line separator
// leaves the body empty but does not fail the parse. The HTTP version is not
// validated and headers other than Content-Length are ignored.
func ParseRequest(raw []byte, lim Limits) (*Request, error) {
	if len(raw) == 0 {
		return nil, ErrNoRequest
	}

	method, rest := nextToken(raw)
	path, _ := nextToken(rest)
	if len(method) == 0 || len(path) == 0 {
		return nil, ErrNoRequest
	}

	req := &Request{
		Method: string(truncate(method, lim.MaxMethodLen)),
		Path:   string(truncate(path, lim.MaxPathLen)),
	}

	// Only the Content-Length header is understood; everything else is noise
	n, ok := contentLength(raw)
	if !ok {
		return req, nil
	}
	req.BodyDeclared = n

	sep := bytes.Index(raw, headerSeparator)
	if sep == -1 {
		// Headers never ended; declared length stands but the body stays empty
		req.Body = []byte{}
		return req, nil
	}

	body := raw[sep+len(headerSeparator):]
	copyLen := n
	if copyLen > len(body) {
		copyLen = len(body)
	}
	if lim.MaxBodyLen > 0 && copyLen > lim.MaxBodyLen {
		copyLen = lim.MaxBodyLen
	}
	req.Body = append([]byte{}, body[:copyLen]...)

	return req, nil
}

// nextToken returns the next run of non-space bytes and the remainder of the
// buffer after it, skipping leading spaces and stopping at line endings.
func nextToken(buf []byte) ([]byte, []byte) {
	start := 0
	for start < len(buf) && buf[start] == ' ' {
		start++
	}
	end := start
	for end < len(buf) && buf[end] != ' ' && buf[end] != '\r' && buf[end] != '\n' {
		end++
	}
	return buf[start:end], buf[end:]
}

// contentLength locates the first Content-Length header and parses its value.
// A header with a non-numeric or negative value reports not-found.
func contentLength(raw []byte) (int, bool) {
	idx := bytes.Index(raw, []byte(contentLengthPrefix))
	if idx == -1 {
		return 0, false
	}

	value := raw[idx+len(contentLengthPrefix):]
	if end := bytes.IndexByte(value, '\r'); end != -1 {
		value = value[:end]
	}
	n, err := strconv.Atoi(string(bytes.TrimSpace(value)))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// truncate bounds b to at most max bytes; max <= 0 means unbounded
func truncate(b []byte, max int) []byte {
	if max > 0 && len(b) > max {
		return b[:max]
	}
	return b
}
