package httputil

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fayda/pkg/platform/sentinel"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"bad request", &BadRequestError{Err: errors.New("eof")}, http.StatusBadRequest, CodeBadRequest},
		{"wrapped not found", fmt.Errorf("find: %w", sentinel.ErrNotFound), http.StatusNotFound, CodeNotFound},
		{"store failure", errors.New("dial tcp: refused"), http.StatusServiceUnavailable, CodeUnavailable},
		{"nil", nil, http.StatusInternalServerError, CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, code := StatusFor(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, code)
		})
	}
}

type payload struct {
	FaydaID string `json:"fayda_id"`
}

func TestDecodeJSON(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"fayda_id":"2205150100000008"}`))
		got, err := DecodeJSON[payload](req)
		require.NoError(t, err)
		assert.Equal(t, "2205150100000008", got.FaydaID)
	})

	for name, body := range map[string]string{
		"malformed":     `{"fayda_id":`,
		"unknown field": `{"fayda_id":"1","extra":true}`,
		"trailing data": `{"fayda_id":"1"} {"fayda_id":"2"}`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
			_, err := DecodeJSON[payload](req)
			var badReq *BadRequestError
			assert.ErrorAs(t, err, &badReq)
		})
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, errors.New("redis: connection pool timeout"))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"unavailable"}`, rr.Body.String())
}
