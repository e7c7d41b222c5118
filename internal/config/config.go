package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultEventsPath = "samples/events.json"
	defaultLogLevel   = "info"
)

type Config struct {
	// EventsPath is the JSON backing file holding the event collection.
	EventsPath string `yaml:"events_path"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Load builds the configuration from defaults, an optional YAML file and
// the environment, in that order of increasing precedence. An empty file
// argument falls back to CALKEEP_CONFIG; no file at all is fine.
func Load(file string) (Config, error) {
	cfg := Config{
		EventsPath: defaultEventsPath,
		LogLevel:   defaultLogLevel,
	}

	if file == "" {
		file = strings.TrimSpace(os.Getenv("CALKEEP_CONFIG"))
	}
	if file != "" {
		raw, err := os.ReadFile(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", file, err)
		}
		if cfg.EventsPath == "" {
			cfg.EventsPath = defaultEventsPath
		}
		if cfg.LogLevel == "" {
			cfg.LogLevel = defaultLogLevel
		}
	}

	cfg.EventsPath = getenvDefault("CALKEEP_EVENTS_PATH", cfg.EventsPath)
	cfg.LogLevel = getenvDefault("CALKEEP_LOG_LEVEL", cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.EventsPath == "" {
		return errors.New("events path is required")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	return nil
}

func getenvDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}
