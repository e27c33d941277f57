// Package config holds the program configuration: YAML file values over built-in
// defaults, then environment overrides.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"
)

// Narrative providers.
const (
	ProviderGenAI  = "genai"
	ProviderStatic = "static"
)

type (
	DatabaseConfig struct {
		// Path of the sqlite database file; ":memory:" keeps everything in memory.
		Path string `yaml:"path"`
	}

	ServerConfig struct {
		Listen          string        `yaml:"listen"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		// MaxBodyBytes caps request bodies, base64 payload included.
		MaxBodyBytes int64 `yaml:"max_body_bytes"`
	}

	LLMConfig struct {
		Provider string       `yaml:"provider"`
		Model    string       `yaml:"model"`
		APIKey   SecretString `yaml:"api_key"`
		// StaticText is the analysis used by the static provider.
		StaticText string `yaml:"static_text"`
	}

	Config struct {
		Database DatabaseConfig `yaml:"database"`
		Server   ServerConfig   `yaml:"server"`
		LLM      LLMConfig      `yaml:"llm"`
		Logging  LoggingConfig  `yaml:"logging"`
	}
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "scorecard.db"},
		Server: ServerConfig{
			Listen:          ":8080",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    32 << 20,
		},
		LLM: LLMConfig{
			Provider:   ProviderGenAI,
			Model:      "gemini-2.5-flash",
			StaticText: "No technical analysis available.",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load returns the defaults overlaid with the YAML file at path (when path is not
// empty) and the environment, validated.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := Decode(data, cfg); err != nil {
			return nil, err
		}
	}
	ApplyEnvironment(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode overlays YAML data on cfg. Unknown fields are an error.
func Decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return nil
}

// ApplyEnvironment overrides cfg with the SCORECARD_* variables that are set.
// Unparsable values are ignored.
func ApplyEnvironment(cfg *Config) {
	// SCORECARD_DB_PATH
	if val := os.Getenv("SCORECARD_DB_PATH"); val != "" {
		cfg.Database.Path = val
	}

	// SCORECARD_LISTEN
	if val := os.Getenv("SCORECARD_LISTEN"); val != "" {
		cfg.Server.Listen = val
	}

	// SCORECARD_MAX_BODY_BYTES
	if val := os.Getenv("SCORECARD_MAX_BODY_BYTES"); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Server.MaxBodyBytes = n
		}
	}

	// SCORECARD_SHUTDOWN_TIMEOUT
	if val := os.Getenv("SCORECARD_SHUTDOWN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ShutdownTimeout = d
		}
	}

	// SCORECARD_LOG_LEVEL
	if val := os.Getenv("SCORECARD_LOG_LEVEL"); val != "" {
		cfg.Logging.Level = strings.ToLower(val)
	}

	// SCORECARD_LOG_DEVELOPMENT
	if val := os.Getenv("SCORECARD_LOG_DEVELOPMENT"); val != "" {
		cfg.Logging.Development = parseBool(val)
	}

	// SCORECARD_LLM_PROVIDER
	if val := os.Getenv("SCORECARD_LLM_PROVIDER"); val != "" {
		cfg.LLM.Provider = strings.ToLower(val)
	}

	// SCORECARD_LLM_MODEL
	if val := os.Getenv("SCORECARD_LLM_MODEL"); val != "" {
		cfg.LLM.Model = val
	}

	// SCORECARD_LLM_API_KEY, falling back to the Gemini SDK's own variable
	if val := os.Getenv("SCORECARD_LLM_API_KEY"); val != "" {
		cfg.LLM.APIKey = SecretString(val)
	} else if val := os.Getenv("GEMINI_API_KEY"); val != "" && cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = SecretString(val)
	}
}

// Validate checks if the configuration is valid. Every problem is reported.
func (c *Config) Validate() error {
	var err error
	if c.Database.Path == "" {
		err = multierr.Append(err, &ConfigurationError{Field: "database.path", Reason: "must not be empty"})
	}
	if c.Server.Listen == "" {
		err = multierr.Append(err, &ConfigurationError{Field: "server.listen", Reason: "must not be empty"})
	}
	for _, d := range []struct {
		field string
		value time.Duration
	}{
		{"server.read_timeout", c.Server.ReadTimeout},
		{"server.write_timeout", c.Server.WriteTimeout},
		{"server.shutdown_timeout", c.Server.ShutdownTimeout},
	} {
		if d.value < 0 {
			err = multierr.Append(err, &ConfigurationError{Field: d.field, Reason: "cannot be negative"})
		}
	}
	if c.Server.MaxBodyBytes <= 0 {
		err = multierr.Append(err, &ConfigurationError{Field: "server.max_body_bytes", Reason: "must be positive"})
	}
	switch c.LLM.Provider {
	case ProviderGenAI, ProviderStatic:
	default:
		err = multierr.Append(err, &ConfigurationError{Field: "llm.provider", Reason: "unknown provider " + strconv.Quote(c.LLM.Provider)})
	}
	if !validLogLevels[c.Logging.Level] {
		err = multierr.Append(err, &ConfigurationError{Field: "logging.level", Reason: "invalid log level: " + c.Logging.Level})
	}
	return err
}

// Dump renders cfg as YAML. Secrets are masked.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}

// parseBool parses a boolean value from a string
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
