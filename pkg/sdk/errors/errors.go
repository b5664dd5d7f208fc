// Package errors provides SDK-specific error types for the OmniDimension API client.
//
// Three kinds of failure are distinguished:
//   - ConfigurationError: the client cannot be built (missing or invalid credentials).
//   - APIError: the service answered with a non-success status.
//   - TransportError: no usable response (connection failure, timeout, malformed JSON).
//
// ArgumentError is returned when a required parameter is missing, before any
// request is sent.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrMalformedJSON is wrapped by TransportError when a response body is not valid JSON.
var ErrMalformedJSON = stderrors.New("malformed JSON response")

// ConfigurationError reports missing or invalid client configuration.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Message)
	}
	return "configuration error: " + e.Message
}

// APIError represents a non-success response returned by the OmniDimension API.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	// Body is the raw response body, if any.
	Body      []byte `json:"-"`
	RequestID string `json:"request_id,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// TransportError reports a request that produced no usable response.
type TransportError struct {
	Op        string // "send", "read" or "decode"
	Method    string
	Path      string
	RequestID string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s %s %s: %v", e.Op, e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ArgumentError reports a missing required parameter.
type ArgumentError struct {
	Param  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Param, e.Reason)
}

// Required returns an ArgumentError for a missing parameter.
func Required(param string) *ArgumentError {
	return &ArgumentError{Param: param, Reason: "is required"}
}

func statusOf(err error) int {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound returns true if the error is a 404 Not Found error.
func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

// IsForbidden returns true if the error is a 403 Forbidden error.
func IsForbidden(err error) bool {
	return statusOf(err) == http.StatusForbidden
}

// IsUnauthorized returns true if the error is a 401 Unauthorized error.
func IsUnauthorized(err error) bool {
	return statusOf(err) == http.StatusUnauthorized
}

// IsBadRequest returns true if the error is a 400 Bad Request error.
func IsBadRequest(err error) bool {
	return statusOf(err) == http.StatusBadRequest
}

// IsTransport returns true if the error is a TransportError.
func IsTransport(err error) bool {
	var tErr *TransportError
	return stderrors.As(err, &tErr)
}

// IsConfiguration returns true if the error is a ConfigurationError.
func IsConfiguration(err error) bool {
	var cErr *ConfigurationError
	return stderrors.As(err, &cErr)
}

// Kind classifies err for callers that report failures as data, such as MCP
// tool results.
func Kind(err error) string {
	var (
		apiErr  *APIError
		tErr    *TransportError
		argErr  *ArgumentError
		confErr *ConfigurationError
	)
	switch {
	case stderrors.As(err, &apiErr):
		return "api_error"
	case stderrors.As(err, &tErr):
		return "transport_error"
	case stderrors.As(err, &argErr):
		return "invalid_argument"
	case stderrors.As(err, &confErr):
		return "configuration_error"
	default:
		return "internal_error"
	}
}

// MessageFromBody extracts the service-provided error message from a response body.
// The lookup order is error_description, error (string or {message}), message, detail.
// When none is present the trimmed body is used, then fallback.
func MessageFromBody(body []byte, fallback string) string {
	if gjson.ValidBytes(body) {
		root := gjson.ParseBytes(body)
		if root.IsObject() {
			for _, path := range []string{"error_description", "error", "error.message", "message", "detail"} {
				if r := root.Get(path); r.Type == gjson.String && r.Str != "" {
					return r.Str
				}
			}
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 512 {
		return text
	}
	return fallback
}
