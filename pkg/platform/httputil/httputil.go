// Package httputil centralises JSON encoding and error translation for handlers.
package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"fayda/pkg/platform/sentinel"
)

// Error codes returned in the {"error": ...} envelope.
const (
	CodeBadRequest  = "bad_request"
	CodeNotFound    = "not_found"
	CodeUnavailable = "unavailable"
	CodeInternal    = "internal_error"
)

// maxBodyBytes caps request bodies; verification payloads are tiny.
const maxBodyBytes = 1 << 16

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates err into a status code and a JSON error envelope.
// Anything that is not a known sentinel is reported as a store outage, since
// the only errors the identity services return come from backing stores.
func WriteError(w http.ResponseWriter, err error) {
	status, code := StatusFor(err)
	WriteJSON(w, status, map[string]string{"error": code})
}

// StatusFor maps an error onto its HTTP status and envelope code.
func StatusFor(err error) (int, string) {
	var badReq *BadRequestError
	switch {
	case errors.As(err, &badReq):
		return http.StatusBadRequest, CodeBadRequest
	case errors.Is(err, sentinel.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case err != nil:
		return http.StatusServiceUnavailable, CodeUnavailable
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// BadRequestError marks a request that could not be decoded.
type BadRequestError struct {
	Err error
}

func (e *BadRequestError) Error() string {
	return fmt.Sprintf("bad request: %v", e.Err)
}

func (e *BadRequestError) Unwrap() error {
	return e.Err
}

// DecodeJSON decodes the request body into T, rejecting unknown fields and
// trailing data.
func DecodeJSON[T any](r *http.Request) (*T, error) {
	var v T
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return nil, &BadRequestError{Err: err}
	}
	if dec.More() {
		return nil, &BadRequestError{Err: errors.New("unexpected trailing data")}
	}
	return &v, nil
}
