// Package auth provides authentication mechanisms for the OmniDimension API SDK.
package auth

import (
	"net/http"
	"strings"
)

// Provider defines the interface for authentication providers.
type Provider interface {
	// Authenticate adds authentication headers to the HTTP request.
	Authenticate(req *http.Request) error
}

// APIKeyProvider implements Provider for OmniDimension API keys.
// Keys are sent as Bearer tokens.
type APIKeyProvider struct {
	apiKey string
}

// NewAPIKeyProvider creates a new API key authentication provider.
func NewAPIKeyProvider(apiKey string) *APIKeyProvider {
	return &APIKeyProvider{apiKey: strings.TrimSpace(apiKey)}
}

// Authenticate adds the Authorization: Bearer header with the API key.
// A header already present on the request is left untouched.
func (p *APIKeyProvider) Authenticate(req *http.Request) error {
	if req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}
	return nil
}

// Mask hides all but the last four characters of a key for display.
func Mask(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return "***" + key[len(key)-4:]
}
