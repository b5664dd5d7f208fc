// Package config resolves the API key, base URL and timeout used by the
// omnidim binaries.
//
// Sources, highest precedence first: command-line flags, OMNIDIM_* environment
// variables (with OMNIDIMENSION_API_KEY as a legacy fallback for the key), and
// the YAML config file written by `omnidim config`.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/fx"

	"github.com/ryu-ryuk/omnidim-go/pkg/logger"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk/auth"
	sdkerrors "github.com/ryu-ryuk/omnidim-go/pkg/sdk/errors"
)

var Module = fx.Module("config",
	fx.Provide(NewSettings, LogLevel, NewClient),
)

// DefaultLogLevel applies when neither --debug nor LOG_LEVEL is given.
const DefaultLogLevel = "info"

// Env holds the environment variables the binaries understand.
type Env struct {
	APIKey       string        `env:"OMNIDIM_API_KEY"`
	LegacyAPIKey string        `env:"OMNIDIMENSION_API_KEY"`
	BaseURL      string        `env:"OMNIDIM_BASE_URL"`
	Timeout      time.Duration `env:"OMNIDIM_TIMEOUT"`
	ConfigPath   string        `env:"OMNIDIM_CONFIG"`
	LogLevel     string        `env:"LOG_LEVEL"`
}

// LoadEnv parses Env from the process environment.
func LoadEnv() (*Env, error) {
	e := &Env{}
	if err := env.Parse(e); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return e, nil
}

// Overrides are values given on the command line. Empty fields are unset.
type Overrides struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	ConfigPath string
	LogLevel   string
}

// Key sources reported by Settings.APIKeySource.
const (
	SourceFlag      = "flag"
	SourceEnv       = "env:OMNIDIM_API_KEY"
	SourceLegacyEnv = "env:OMNIDIMENSION_API_KEY"
	SourceFile      = "config file"
	SourceNone      = "none"
)

// Settings is the resolved configuration.
type Settings struct {
	APIKey       string
	APIKeySource string
	BaseURL      string
	Timeout      time.Duration
	ConfigPath   string
	LogLevel     string
}

// Resolve merges overrides, environment and config file. A missing API key is
// not an error here; see RequireAPIKey.
func Resolve(o Overrides) (*Settings, error) {
	e, err := LoadEnv()
	if err != nil {
		return nil, err
	}

	path := o.ConfigPath
	if path == "" {
		path = e.ConfigPath
	}
	path = DiscoverPath(path)

	file, err := Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	s := &Settings{
		ConfigPath:   path,
		LogLevel:     firstNonEmpty(o.LogLevel, e.LogLevel, DefaultLogLevel),
		APIKeySource: SourceNone,
	}

	switch {
	case strings.TrimSpace(o.APIKey) != "":
		s.APIKey, s.APIKeySource = o.APIKey, SourceFlag
	case e.APIKey != "":
		s.APIKey, s.APIKeySource = e.APIKey, SourceEnv
	case e.LegacyAPIKey != "":
		s.APIKey, s.APIKeySource = e.LegacyAPIKey, SourceLegacyEnv
	case file.APIKey != "":
		s.APIKey, s.APIKeySource = file.APIKey, SourceFile
	}
	s.APIKey = strings.TrimSpace(s.APIKey)

	s.BaseURL = firstNonEmpty(o.BaseURL, e.BaseURL, file.BaseURL, sdk.DefaultBaseURL)

	s.Timeout = sdk.DefaultTimeout
	fileTimeout, err := file.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	for _, d := range []time.Duration{o.Timeout, e.Timeout, fileTimeout} {
		if d > 0 {
			s.Timeout = d
			break
		}
	}

	return s, nil
}

// RequireAPIKey fails when no source supplied an API key.
func (s *Settings) RequireAPIKey() error {
	if s.APIKey == "" {
		return &sdkerrors.ConfigurationError{
			Field:   "api_key",
			Message: "no API key found; pass --api-key or set " + sdk.EnvAPIKey,
		}
	}
	return nil
}

// SDKConfig returns the client configuration for these settings.
func (s *Settings) SDKConfig(log *slog.Logger) sdk.Config {
	return sdk.Config{
		APIKey:  s.APIKey,
		BaseURL: s.BaseURL,
		Timeout: s.Timeout,
		Logger:  log,
	}
}

// NewSettings resolves settings for the fx graph. The logger is built from
// them, so the API key is checked later by NewClient.
func NewSettings(o Overrides) (*Settings, error) {
	return Resolve(o)
}

// LogLevel hands the resolved level to logger.NewLogger.
func LogLevel(s *Settings) logger.Level {
	return logger.Level(s.LogLevel)
}

// NewClient builds the SDK client the fx graph shares and fails without an
// API key.
func NewClient(s *Settings, log *slog.Logger) (*sdk.Client, error) {
	if err := s.RequireAPIKey(); err != nil {
		return nil, err
	}

	log.Info("configuration loaded",
		logger.Scope("config"),
		slog.String("api_key", auth.Mask(s.APIKey)),
		slog.String("api_key_source", s.APIKeySource),
		slog.String("base_url", s.BaseURL),
		slog.Duration("timeout", s.Timeout),
		slog.String("log_level", s.LogLevel),
	)
	return sdk.New(s.SDKConfig(log.With(logger.Scope("sdk"))))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
