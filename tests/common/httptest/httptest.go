//go:build unit || e2e

package httptest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Request describes one call against a router. Token is sent as a bearer
// token; ClientIP becomes the remote address seen by the rate limiter.
type Request struct {
	Method   string
	Path     string
	Body     any
	Token    string
	Header   map[string]string
	ClientIP string
}

func Do(t *testing.T, router http.Handler, r Request) *httptest.ResponseRecorder {
	t.Helper()

	body := bytes.NewBuffer(nil)
	if r.Body != nil {
		raw, err := json.Marshal(r.Body)
		require.NoError(t, err, "encode request body")
		body = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(r.Method, r.Path, body)
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}
	for k, v := range r.Header {
		req.Header.Set(k, v)
	}
	if r.ClientIP != "" {
		req.RemoteAddr = r.ClientIP + ":40000"
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// PerformRequest sends body as JSON with an optional admin bearer token.
func PerformRequest(t *testing.T, router http.Handler, method, path string, body any, adminToken string) *httptest.ResponseRecorder {
	t.Helper()
	return Do(t, router, Request{Method: method, Path: path, Body: body, Token: adminToken})
}
