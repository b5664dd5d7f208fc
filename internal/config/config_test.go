package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryu-ryuk/omnidim-go/pkg/logger"
	"github.com/ryu-ryuk/omnidim-go/pkg/sdk"
	sdkerrors "github.com/ryu-ryuk/omnidim-go/pkg/sdk/errors"
)

// isolate clears every variable Resolve reads and points the config file at
// an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	for _, name := range []string{
		"OMNIDIM_API_KEY", "OMNIDIMENSION_API_KEY", "OMNIDIM_BASE_URL",
		"OMNIDIM_TIMEOUT", "OMNIDIM_CONFIG", "OMNIDIM_OUTPUT", "LOG_LEVEL",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	return filepath.Join(t.TempDir(), "config.yaml")
}

func TestResolveKeyPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		flag       string
		env        string
		legacy     string
		file       string
		wantKey    string
		wantSource string
	}{
		{"flag beats env", "flag_key_123", "env_key_456", "", "", "flag_key_123", SourceFlag},
		{"env beats legacy", "", "env_key_456", "legacy_key_789", "", "env_key_456", SourceEnv},
		{"legacy beats file", "", "", "legacy_key_789", "file_key_000", "legacy_key_789", SourceLegacyEnv},
		{"file last", "", "", "", "file_key_000", "file_key_000", SourceFile},
		{"nothing", "", "", "", "", "", SourceNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := isolate(t)
			if tt.env != "" {
				t.Setenv("OMNIDIM_API_KEY", tt.env)
			}
			if tt.legacy != "" {
				t.Setenv("OMNIDIMENSION_API_KEY", tt.legacy)
			}
			if tt.file != "" {
				require.NoError(t, Save(&File{APIKey: tt.file}, path))
			}

			s, err := Resolve(Overrides{APIKey: tt.flag, ConfigPath: path})
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, s.APIKey)
			assert.Equal(t, tt.wantSource, s.APIKeySource)
		})
	}
}

func TestResolveBaseURLAndTimeout(t *testing.T) {
	path := isolate(t)
	require.NoError(t, Save(&File{BaseURL: "https://file.example.com/api/v1", Timeout: "45s"}, path))

	s, err := Resolve(Overrides{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "https://file.example.com/api/v1", s.BaseURL)
	assert.Equal(t, 45*time.Second, s.Timeout)

	t.Setenv("OMNIDIM_BASE_URL", "https://env.example.com/api/v1")
	t.Setenv("OMNIDIM_TIMEOUT", "10s")
	s, err = Resolve(Overrides{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com/api/v1", s.BaseURL)
	assert.Equal(t, 10*time.Second, s.Timeout)

	s, err = Resolve(Overrides{ConfigPath: path, BaseURL: "http://localhost:9000", Timeout: 2 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", s.BaseURL)
	assert.Equal(t, 2*time.Second, s.Timeout)
}

func TestResolveDefaults(t *testing.T) {
	path := isolate(t)

	s, err := Resolve(Overrides{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, sdk.DefaultBaseURL, s.BaseURL)
	assert.Equal(t, sdk.DefaultTimeout, s.Timeout)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, path, s.ConfigPath)
}

func TestResolveBadTimeout(t *testing.T) {
	path := isolate(t)
	require.NoError(t, Save(&File{Timeout: "soon"}, path))

	_, err := Resolve(Overrides{ConfigPath: path})
	assert.Error(t, err)
}

func TestNewClientRequiresKey(t *testing.T) {
	path := isolate(t)
	log := slog.New(slog.DiscardHandler)

	s, err := NewSettings(Overrides{ConfigPath: path})
	require.NoError(t, err)
	_, err = NewClient(s, log)
	require.Error(t, err)
	assert.True(t, sdkerrors.IsConfiguration(err))
	assert.Contains(t, err.Error(), "--api-key")

	s, err = NewSettings(Overrides{ConfigPath: path, APIKey: "flag_key_123"})
	require.NoError(t, err)
	client, err := NewClient(s, log)
	require.NoError(t, err)
	assert.NotNil(t, client)
	cfg := s.SDKConfig(log)
	assert.Equal(t, "flag_key_123", cfg.APIKey)
	assert.Equal(t, sdk.DefaultBaseURL, cfg.BaseURL)
}

func TestResolveLogLevel(t *testing.T) {
	path := isolate(t)

	s, err := Resolve(Overrides{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, DefaultLogLevel, s.LogLevel)
	assert.Equal(t, logger.Level("info"), LogLevel(s))

	t.Setenv("LOG_LEVEL", "warn")
	s, err = Resolve(Overrides{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "warn", s.LogLevel)

	s, err = Resolve(Overrides{ConfigPath: path, LogLevel: "debug"})
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
	assert.True(t, logger.NewLogger(LogLevel(s)).Enabled(context.Background(), slog.LevelDebug))
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, Save(&File{APIKey: "file_key_000", Output: "json"}, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file_key_000", cfg.APIKey)
	assert.Equal(t, "json", cfg.Output)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &File{}, cfg)
}

func TestDiscoverPath(t *testing.T) {
	isolate(t)
	assert.Equal(t, "/tmp/explicit.yaml", DiscoverPath("/tmp/explicit.yaml"))

	t.Setenv("OMNIDIM_CONFIG", "/tmp/from-env.yaml")
	assert.Equal(t, "/tmp/from-env.yaml", DiscoverPath(""))

	os.Unsetenv("OMNIDIM_CONFIG")
	assert.Equal(t, filepath.Join(".omnidim", "config.yaml"), filepath.Join(filepath.Base(filepath.Dir(DiscoverPath(""))), "config.yaml"))
}
