package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	awsx "github.com/jayesh820/AWS-TASK/internal/aws"
)

const (
	configDirName  = "cwview"
	configFileName = "config.yaml"
)

// Config represents the persisted user configuration. Credentials are never
// part of it.
type Config struct {
	DefaultRegion string `yaml:"defaultRegion,omitempty"`
	LastRegion    string `yaml:"lastRegion,omitempty"`
	LastLogGroup  string `yaml:"lastLogGroup,omitempty"`
}

// RuntimeConfig resolves configuration after applying precedence rules.
type RuntimeConfig struct {
	Profile  string
	Region   string
	LogGroup string
	LogFile  string
	Verbose  bool
}

// Flags captures CLI flag values.
type Flags struct {
	Profile string
	Region  string
	LogFile string
	Verbose bool
}

// Env captures supported environment variables.
type Env struct {
	Profile string
	Region  string
	LogFile string
}

// DefaultRuntime builds the runtime config when no inputs are provided.
func DefaultRuntime() RuntimeConfig {
	return RuntimeConfig{
		Region: awsx.DefaultRegion,
	}
}

// DefaultPath returns the location of the config file using OS conventions.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(dir, configDirName, configFileName), nil
}

// Load reads the config file if present; a missing file is not an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Save persists the config to disk, creating directories as needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Resolve merges configuration using the precedence:
// 1) CLI flags, 2) environment, 3) config file, 4) defaults.
func Resolve(flags Flags, env Env, cfg *Config) RuntimeConfig {
	result := DefaultRuntime()
	result.Verbose = flags.Verbose

	switch {
	case flags.Profile != "":
		result.Profile = flags.Profile
	case env.Profile != "":
		result.Profile = env.Profile
	}

	switch {
	case flags.Region != "":
		result.Region = flags.Region
	case env.Region != "":
		result.Region = env.Region
	case cfg != nil && cfg.LastRegion != "":
		result.Region = cfg.LastRegion
	case cfg != nil && cfg.DefaultRegion != "":
		result.Region = cfg.DefaultRegion
	}

	switch {
	case flags.LogFile != "":
		result.LogFile = flags.LogFile
	case env.LogFile != "":
		result.LogFile = env.LogFile
	}

	if cfg != nil {
		result.LogGroup = cfg.LastLogGroup
	}
	return result
}

// FromEnv reads relevant environment variables. Region falls back from
// AWS_REGION to AWS_DEFAULT_REGION.
func FromEnv() Env {
	v := viper.New()
	_ = v.BindEnv("profile", "AWS_PROFILE")
	_ = v.BindEnv("region", "AWS_REGION", "AWS_DEFAULT_REGION")
	_ = v.BindEnv("log_file", "CWVIEW_LOG_FILE")
	return Env{
		Profile: v.GetString("profile"),
		Region:  v.GetString("region"),
		LogFile: v.GetString("log_file"),
	}
}

// Remember records what the session ended on.
func (c *Config) Remember(runtime RuntimeConfig) {
	c.LastRegion = runtime.Region
	c.LastLogGroup = runtime.LogGroup
}
