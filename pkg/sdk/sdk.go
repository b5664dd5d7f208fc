// Package sdk provides a Go client library for the OmniDimension voice-agent API.
//
// Example usage:
//
//	client, err := sdk.New(sdk.Config{
//		APIKey: os.Getenv("OMNIDIM_API_KEY"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	bots, err := client.Agents.List(ctx, 1, 30)
//
// Every method performs exactly one HTTP request and returns the response
// payload as a jsonvalue.Value, with any success envelope removed.
package sdk

import (
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/agents"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/auth"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/calls"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/envelope"
	sdkerrors "github.com/ryu-ryuk/omnidim-go/pkg/sdk/errors"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/integrations"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/internal/rest"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/knowledgebase"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/phonenumbers"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/simulations"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://backend.omnidim.io/api/v1"
	// DefaultTimeout bounds each request.
	DefaultTimeout = 30 * time.Second
	// Version is reported in the User-Agent header.
	Version = "0.2.11"

	// EnvAPIKey is the environment variable holding the API key.
	EnvAPIKey = "OMNIDIM_API_KEY"
	// EnvLegacyAPIKey is the older name still honored as a fallback.
	EnvLegacyAPIKey = "OMNIDIMENSION_API_KEY"

	minAPIKeyLength = 8
)

// Client is the main SDK client for the OmniDimension API.
// It is immutable after New and safe for concurrent use.
type Client struct {
	base string

	Agents        *agents.Client
	Calls         *calls.Client
	KnowledgeBase *knowledgebase.Client
	Integrations  *integrations.Client
	PhoneNumbers  *phonenumbers.Client
	Simulations   *simulations.Client
}

// Config holds configuration for the SDK client.
type Config struct {
	APIKey     string
	BaseURL    string             // Optional: defaults to DefaultBaseURL
	Timeout    time.Duration      // Optional: per-request timeout, defaults to DefaultTimeout
	HTTPClient *http.Client       // Optional: custom HTTP client
	Envelope   envelope.Unwrapper // Optional: defaults to envelope.Standard
	Logger     *slog.Logger       // Optional: request logging at debug level
	UserAgent  string             // Optional
}

// New creates a new OmniDimension API client. It performs no network access.
func New(cfg Config) (*Client, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, &sdkerrors.ConfigurationError{
			Field:   "api_key",
			Message: "API key is required; pass it explicitly or set " + EnvAPIKey,
		}
	}
	if len(key) < minAPIKeyLength {
		return nil, &sdkerrors.ConfigurationError{Field: "api_key", Message: "API key appears to be invalid (too short)"}
	}

	base, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "omnidim-go/" + Version
	}

	r := rest.New(rest.Options{
		BaseURL:    base,
		Timeout:    timeout,
		HTTPClient: cfg.HTTPClient,
		Auth:       auth.NewAPIKeyProvider(key),
		Envelope:   cfg.Envelope,
		Logger:     cfg.Logger,
		UserAgent:  ua,
	})

	return &Client{
		base:          base,
		Agents:        agents.NewClient(r),
		Calls:         calls.NewClient(r),
		KnowledgeBase: knowledgebase.NewClient(r),
		Integrations:  integrations.NewClient(r),
		PhoneNumbers:  phonenumbers.NewClient(r),
		Simulations:   simulations.NewClient(r),
	}, nil
}

// NewFromEnv creates a client whose API key comes from OMNIDIM_API_KEY, or
// OMNIDIMENSION_API_KEY when the former is unset. cfg.APIKey, when set, wins.
func NewFromEnv(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		cfg.APIKey = APIKeyFromEnv()
	}
	return New(cfg)
}

// APIKeyFromEnv returns the first non-empty API key environment variable.
func APIKeyFromEnv() string {
	for _, name := range []string{EnvAPIKey, EnvLegacyAPIKey} {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// BaseURL returns the normalized base URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.base
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultBaseURL, nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", &sdkerrors.ConfigurationError{Field: "base_url", Message: "must be an absolute http(s) URL, got " + raw}
	}
	return strings.TrimRight(raw, "/"), nil
}
