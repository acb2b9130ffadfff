package testutil

import (
	"net/http"

	"fayda/pkg/requestcontext"
)

// WithRequestID attaches a request ID to the request context, as the
// request ID middleware would.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
