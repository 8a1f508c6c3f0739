package tracing

import "fmt"

// Context carries the request identifiers attached by the
// tracing middleware and threaded through error responses.
type Context struct {
	RequestID     string `json:"request_id"`
	RequestSource string `json:"request_source"`
}

func (c Context) String() string {
	return fmt.Sprintf("[%s] %s", c.RequestSource, c.RequestID)
}
