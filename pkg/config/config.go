// Package config loads and saves the textdb tool configuration.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/htmlindex"
	"gopkg.in/yaml.v3"

	"github.com/ptero-tools/textdb/pkg/codec"
)

// Config represents the textdb tool configuration.
type Config struct {
	File    string      `yaml:"file"` // default database file
	Codec   CodecConfig `yaml:"codec"`
	Server  Server      `yaml:"server"`
	Logging Logging     `yaml:"logging"`
}

// CodecConfig selects the wire conventions of the files being handled.
type CodecConfig struct {
	// NulLengths mirrors codec.Options.LengthIncludesNul: length fields
	// count a trailing NUL byte.
	NulLengths bool `yaml:"nul_lengths"`

	// Encoding is an IANA charset name such as "windows-1250". Empty or
	// "utf-8" means UTF-8.
	Encoding string `yaml:"encoding"`
}

// Server contains settings for the dictionary HTTP service.
type Server struct {
	Port   int    `yaml:"port"`
	Bind   string `yaml:"bind"`
	APIKey string `yaml:"api_key"`
}

// Logging contains logging configuration.
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		File: "./strings.tdb",
		Server: Server{
			Port: 8080,
			Bind: "127.0.0.1",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Options resolves the codec section into codec.Options.
func (c *Config) Options() (codec.Options, error) {
	opts := codec.Options{LengthIncludesNul: c.Codec.NulLengths}

	name := c.Codec.Encoding
	if name == "" || name == "utf-8" || name == "utf8" {
		return opts, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return codec.Options{}, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	opts.Encoding = enc
	return opts, nil
}

// LoadConfig loads configuration from the specified path.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves the configuration to the specified path with secure
// permissions.
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateSecureKey generates a cryptographically secure random key.
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig creates a new configuration with a generated API key and
// saves it.
func BootstrapConfig(configPath string, file string) (*Config, error) {
	config := DefaultConfig()
	if file != "" {
		config.File = file
	}

	apiKey, err := GenerateSecureKey(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}
	config.Server.APIKey = apiKey

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the
// current platform.
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./textdb.yaml"
	}

	configDir := filepath.Join(homeDir, ".config", "textdb")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists.
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
