//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// errorBody mirrors httperr.Response on the wire.
type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail json.RawMessage `json:"detail"`
}

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "response: %s", w.Body.String()) {
		return
	}
	if target != nil && expectedStatus < http.StatusMultipleChoices {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "decode %s", w.Body.String())
	}
}

// AssertErrorResponse checks the status and that the public error message
// contains expectedMsg. Upstream error text must never reach the body.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedMsg string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "response: %s", w.Body.String())

	var body errorBody
	if !assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "decode error body %s", w.Body.String()) {
		return
	}
	assert.NotEmpty(t, body.Error.Message)
	if expectedMsg != "" {
		assert.Contains(t, body.Error.Message, expectedMsg)
	}
}

// AssertRateLimited checks the limiter rejected the request.
func AssertRateLimited(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	AssertErrorResponse(t, w, http.StatusTooManyRequests, "too many requests")
}
