package routes

import (
	"github.com/niels/tinyhttpd/pkg/config"
	"github.com/niels/tinyhttpd/pkg/httpmsg"
)

// Handler serves a request for a route directly instead of the default
// file-backed behavior. Routes with a nil Handler are served from their File.
type Handler interface {
	// Serve handles the request and produces a response
	Serve(req *httpmsg.Request) *httpmsg.Response
}

// HandlerFunc adapts a plain function to the Handler interface
type HandlerFunc func(req *httpmsg.Request) *httpmsg.Response

// Serve calls f(req)
func (f HandlerFunc) Serve(req *httpmsg.Request) *httpmsg.Response {
	return f(req)
}

// Route maps an exact URL path to a file on disk, with an optional Handler
// that takes over serving the route when set
type Route struct {
	Path    string
	File    string
	Handler Handler
}

// Table is an immutable, insertion-ordered route table. It is scanned
// front-to-back on lookup; the first exact match wins.
type Table struct {
	routes []Route
}

// New creates a route table from the given routes. The table owns a copy of
// the slice, so the caller cannot mutate it afterwards.
func New(rts ...Route) *Table {
	owned := make([]Route, len(rts))
	copy(owned, rts)
	return &Table{routes: owned}
}

// Default returns the built-in route table
func Default() *Table {
	return New(
		Route{Path: "/", File: "./public_html/index.html"},
		Route{Path: "/test", File: "./public_html/test.html"},
	)
}

// FromConfig builds a route table from configuration entries, preserving
// their declaration order
func FromConfig(cfg *config.Config) *Table {
	rts := make([]Route, 0, len(cfg.Routes))
	for _, rc := range cfg.Routes {
		rts = append(rts, Route{Path: rc.Path, File: rc.File})
	}
	return New(rts...)
}

// Lookup scans the table in declaration order and returns the first route
// whose path is byte-equal to the request path
func (t *Table) Lookup(path string) (Route, bool) {
	for _, rt := range t.routes {
		if rt.Path == path {
			return rt, true
		}
	}
	return Route{}, false
}

// Len returns the number of routes in the table
func (t *Table) Len() int {
	return len(t.routes)
}
