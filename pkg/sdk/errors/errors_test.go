package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIErrorError(t *testing.T) {
	err := &APIError{StatusCode: 404, Message: "agent not found"}
	assert.Equal(t, "API error (404): agent not found", err.Error())
}

func TestTransportErrorUnwrap(t *testing.T) {
	err := &TransportError{Op: "send", Method: "GET", Path: "agents", Err: context.DeadlineExceeded}
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "send GET agents")
}

func TestStatusHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"not found", &APIError{StatusCode: 404}, IsNotFound, true},
		{"not found wrapped", fmt.Errorf("get agent: %w", &APIError{StatusCode: 404}), IsNotFound, true},
		{"forbidden", &APIError{StatusCode: 403}, IsForbidden, true},
		{"unauthorized", &APIError{StatusCode: 401}, IsUnauthorized, true},
		{"bad request", &APIError{StatusCode: 400}, IsBadRequest, true},
		{"bad request mismatch", &APIError{StatusCode: 500}, IsBadRequest, false},
		{"plain error", stderrors.New("boom"), IsNotFound, false},
		{"transport", &TransportError{Err: stderrors.New("reset")}, IsTransport, true},
		{"configuration", &ConfigurationError{Field: "api_key"}, IsConfiguration, true},
		{"nil", nil, IsTransport, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.err))
		})
	}
}

func TestKind(t *testing.T) {
	assert.Equal(t, "api_error", Kind(&APIError{StatusCode: 500}))
	assert.Equal(t, "transport_error", Kind(fmt.Errorf("x: %w", &TransportError{Err: ErrMalformedJSON})))
	assert.Equal(t, "invalid_argument", Kind(Required("agent_id")))
	assert.Equal(t, "configuration_error", Kind(&ConfigurationError{Message: "missing"}))
	assert.Equal(t, "internal_error", Kind(stderrors.New("other")))
}

func TestMessageFromBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"error_description wins", `{"error":"invalid_request","error_description":"Agent does not exist"}`, "Agent does not exist"},
		{"error string", `{"error":"Unauthorized"}`, "Unauthorized"},
		{"nested error message", `{"error":{"code":"x","message":"bad page"}}`, "bad page"},
		{"message", `{"status":"error","message":"quota exceeded"}`, "quota exceeded"},
		{"detail", `{"detail":"Not found."}`, "Not found."},
		{"plain text", `upstream timeout`, "upstream timeout"},
		{"empty body", ``, "502 Bad Gateway"},
		{"json without message", `{"foo":1}`, `{"foo":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MessageFromBody([]byte(tt.body), "502 Bad Gateway"))
		})
	}
}
