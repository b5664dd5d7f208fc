// Package testutil provides testing utilities for the OmniDimension SDK.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

// TestAPIKey is a syntactically valid key for mock-backed clients.
const TestAPIKey = "test_key_0123456789"

// MockServer provides a mock HTTP server for testing SDK clients.
type MockServer struct {
	*httptest.Server
	t        *testing.T
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc
	hits     atomic.Int64
}

// NewMockServer creates a new mock server for testing. It is closed when the test ends.
func NewMockServer(t *testing.T) *MockServer {
	ms := &MockServer{
		t:        t,
		handlers: make(map[string]http.HandlerFunc),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", ms.handleRequest)

	ms.Server = httptest.NewServer(mux)
	t.Cleanup(ms.Server.Close)
	return ms
}

// On registers a handler for a specific method and path.
func (ms *MockServer) On(method, path string, handler http.HandlerFunc) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.handlers[method+" "+path] = handler
}

// OnJSON registers a handler that returns JSON for a specific method and path.
func (ms *MockServer) OnJSON(method, path string, statusCode int, response interface{}) {
	ms.On(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		if response != nil {
			if err := json.NewEncoder(w).Encode(response); err != nil {
				ms.t.Errorf("failed to encode response: %v", err)
			}
		}
	})
}

// OnRaw registers a handler that writes body verbatim.
func (ms *MockServer) OnRaw(method, path string, statusCode int, body string) {
	ms.On(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_, _ = io.WriteString(w, body)
	})
}

// Hits reports how many requests reached the server.
func (ms *MockServer) Hits() int {
	return int(ms.hits.Load())
}

// handleRequest routes requests to registered handlers.
func (ms *MockServer) handleRequest(w http.ResponseWriter, r *http.Request) {
	ms.hits.Add(1)

	key := r.Method + " " + r.URL.Path
	ms.mu.RLock()
	handler, ok := ms.handlers[key]
	ms.mu.RUnlock()
	if !ok {
		ms.t.Logf("no handler registered for %s", key)
		http.NotFound(w, r)
		return
	}
	handler(w, r)
}

// Close closes the mock server.
func (ms *MockServer) Close() {
	ms.Server.Close()
}

// AssertHeader asserts that a request header has the expected value.
func AssertHeader(t *testing.T, r *http.Request, key, expected string) {
	t.Helper()
	actual := r.Header.Get(key)
	if actual != expected {
		t.Errorf("expected header %s=%q, got %q", key, expected, actual)
	}
}

// AssertQuery asserts that a query parameter has the expected value.
func AssertQuery(t *testing.T, r *http.Request, key, expected string) {
	t.Helper()
	actual := r.URL.Query().Get(key)
	if actual != expected {
		t.Errorf("expected query %s=%q, got %q", key, expected, actual)
	}
}

// AssertJSONBody decodes the request body and compares it to expected.
func AssertJSONBody(t *testing.T, r *http.Request, expected interface{}) {
	t.Helper()
	var actual interface{}
	if err := json.NewDecoder(r.Body).Decode(&actual); err != nil {
		t.Fatalf("failed to decode request body: %v", err)
	}

	expectedJSON, _ := json.Marshal(expected)
	var expectedNorm interface{}
	_ = json.Unmarshal(expectedJSON, &expectedNorm)
	expectedJSON, _ = json.Marshal(expectedNorm)
	actualJSON, _ := json.Marshal(actual)

	if string(expectedJSON) != string(actualJSON) {
		t.Errorf("expected body %s, got %s", string(expectedJSON), string(actualJSON))
	}
}

// JSONResponse writes a JSON response to the response writer.
func JSONResponse(t *testing.T, w http.ResponseWriter, data interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		t.Errorf("failed to encode JSON response: %v", err)
	}
}
