package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// File is the on-disk CLI configuration.
type File struct {
	APIKey  string `mapstructure:"api_key" yaml:"api_key,omitempty"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url,omitempty"`
	Timeout string `mapstructure:"timeout" yaml:"timeout,omitempty"`
	Output  string `mapstructure:"output" yaml:"output,omitempty"` // table, json, yaml
}

// TimeoutDuration parses Timeout. An empty value yields zero.
func (f *File) TimeoutDuration() (time.Duration, error) {
	if f.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(f.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q in config file: %w", f.Timeout, err)
	}
	return d, nil
}

// Load reads the config file at path. A missing file yields an empty File.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &File{}, nil
	}
	if err != nil {
		return nil, err
	}

	cfg := &File{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory. The file holds a secret,
// so it is only readable by the owner.
func Save(cfg *File, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// DiscoverPath returns flagPath when given, then $OMNIDIM_CONFIG, then
// ~/.omnidim/config.yaml.
func DiscoverPath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if envPath := os.Getenv("OMNIDIM_CONFIG"); envPath != "" {
		return envPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".omnidim", "config.yaml")
	}
	return filepath.Join(homeDir, ".omnidim", "config.yaml")
}
