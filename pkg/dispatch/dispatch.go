package dispatch

import (
	"github.com/niels/tinyhttpd/pkg/fileload"
	"github.com/niels/tinyhttpd/pkg/httpmsg"
	"github.com/niels/tinyhttpd/pkg/logging"
	"github.com/niels/tinyhttpd/pkg/routes"
)

// Dispatcher matches a request against the route table and produces a
// response. Only GET requests reach the route scan; every other method gets
// a 405 Method Not Allowed rather than a silently dropped connection.
type Dispatcher struct {
	table  *routes.Table
	loader fileload.Loader
}

// New creates a dispatcher over the given route table and file loader
func New(table *routes.Table, loader fileload.Loader) *Dispatcher {
	return &Dispatcher{
		table:  table,
		loader: loader,
	}
}

// Dispatch produces a response for the request. It always returns a non-nil
// response; every failure mode maps to a status code.
func (d *Dispatcher) Dispatch(req *httpmsg.Request) *httpmsg.Response {
	// The server never passes a nil request, but a broken caller must not
	// take the process down
	if req == nil {
		logging.Error("Dispatch called with nil request")
		return httpmsg.NewResponse(httpmsg.StatusInternalServerError, nil)
	}

	if req.Method != "GET" {
		logging.WarnWith("Unsupported HTTP method", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
		})
		return httpmsg.NewResponse(httpmsg.StatusMethodNotAllowed, nil)
	}

	route, ok := d.table.Lookup(req.Path)
	if !ok {
		return httpmsg.NewResponse(httpmsg.StatusNotFound, nil)
	}

	// A route handler takes over serving entirely
	if route.Handler != nil {
		return route.Handler.Serve(req)
	}

	content, err := d.loader.Load(route.File)
	if err != nil {
		logging.ErrorWith("Failed to load route file", map[string]interface{}{
			"path":  req.Path,
			"file":  route.File,
			"error": err.Error(),
		})
		return httpmsg.NewResponse(httpmsg.StatusInternalServerError, nil)
	}

	return httpmsg.NewResponse(httpmsg.StatusOK, content)
}
