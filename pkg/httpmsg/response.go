package httpmsg

import (
	"fmt"
)

// HTTP status codes produced by the server
const (
	StatusOK                  = 200
	StatusNotFound            = 404
	StatusMethodNotAllowed    = 405
	StatusInternalServerError = 500
)

// contentType is emitted on every response regardless of the actual file type
const contentType = "text/html;charset=UTF-8"

// statusPhrases maps the status codes the server produces to their reason phrases
var statusPhrases = map[int]string{
	StatusOK:                  "OK",
	StatusNotFound:            "Not Found",
	StatusMethodNotAllowed:    "Method Not Allowed",
	StatusInternalServerError: "Internal Server Error",
}

// Response represents an HTTP response before serialization.
// The content length on the wire is always len(Content); it is computed at
// serialization time rather than stored, so the two cannot disagree.
type Response struct {
	StatusCode    int
	StatusMessage string
	Content       []byte
}

// NewResponse creates a response with the reason phrase for the given status
// code filled in. Codes outside the produced set get an empty phrase.
func NewResponse(code int, content []byte) *Response {
	return &Response{
		StatusCode:    code,
		StatusMessage: statusPhrases[code],
		Content:       content,
	}
}

// StatusPhrase returns the reason phrase for a status code the server produces
func StatusPhrase(code int) string {
	return statusPhrases[code]
}

// ContentLength returns the byte length of the response content
func (r *Response) ContentLength() int {
	return len(r.Content)
}

// Bytes serializes the response into its wire form:
//
//	HTTP/1.1 <code> <message>\r\n
//	Content-Type: text/html;charset=UTF-8\r\n
//	Content-Length: <length>\r\n
//	\r\n
//	<content>
//
// The length of the returned slice is the exact byte count for the socket write.
func (r *Response) Bytes() []byte {
	header := fmt.Sprintf("HTTP/1.1 %d %s\r\nContent-Type: %s\r\nContent-Length: %d\r\n\r\n",
		r.StatusCode, r.StatusMessage, contentType, len(r.Content))

	out := make([]byte, 0, len(header)+len(r.Content))
	out = append(out, header...)
	out = append(out, r.Content...)
	return out
}

// String renders the response wire form as a string, for debug logging
func (r *Response) String() string {
	return string(r.Bytes())
}
