package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the config file when --config is not given.
const EnvConfigPath = "KOMPAK_CONFIG"

// Config holds all runtime configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Quiz   QuizConfig   `yaml:"quiz"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig configures the landing page and question API server.
type ServerConfig struct {
	Addr     string `yaml:"addr"`      // Default: ":8080"
	BankPath string `yaml:"bank_path"` // Empty serves the embedded bank.
	// ShutdownTimeout bounds graceful shutdown. Default: 10s.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// QuizConfig configures the terminal quiz.
type QuizConfig struct {
	// URL of a running server to fetch questions from. When empty the
	// quiz reads BankPath, or the embedded bank.
	URL              string        `yaml:"url"`
	BankPath         string        `yaml:"bank_path"`
	TimeLimit        time.Duration `yaml:"time_limit"`        // Default: 5m
	ExplanationDelay time.Duration `yaml:"explanation_delay"` // Default: 3s
	RequestTimeout   time.Duration `yaml:"request_timeout"`   // Default: 10s
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level string `yaml:"level"` // trace, debug, info, warn, error, off
	JSON  bool   `yaml:"json"`
	// File receives log output instead of stderr. The terminal quiz
	// discards logs unless this is set.
	File string `yaml:"file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Quiz: QuizConfig{
			TimeLimit:        5 * time.Minute,
			ExplanationDelay: 3 * time.Second,
			RequestTimeout:   10 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path falls back to $KOMPAK_CONFIG; if that is unset too, the defaults are
// returned unchanged. The result is validated.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := Parse(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg. Keys absent from data keep their current
// values; unknown keys are rejected.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// Validate rejects non-positive durations and unknown log levels.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Server.Addr) == "" {
		problems = append(problems, "server.addr must not be empty")
	}
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"server.shutdown_timeout", c.Server.ShutdownTimeout},
		{"quiz.time_limit", c.Quiz.TimeLimit},
		{"quiz.explanation_delay", c.Quiz.ExplanationDelay},
		{"quiz.request_timeout", c.Quiz.RequestTimeout},
	}
	for _, d := range durations {
		if d.d <= 0 {
			problems = append(problems, fmt.Sprintf("%s must be positive, got %s", d.name, d.d))
		}
	}
	if c.Quiz.TimeLimit > 0 && c.Quiz.TimeLimit < time.Second {
		problems = append(problems, "quiz.time_limit must be at least 1s")
	}
	if c.Quiz.URL != "" && c.Quiz.BankPath != "" {
		problems = append(problems, "quiz.url and quiz.bank_path are mutually exclusive")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// ParseLevel maps a level name to an hclog level.
func ParseLevel(s string) (hclog.Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return hclog.Info, nil
	}
	lvl := hclog.LevelFromString(name)
	if lvl == hclog.NoLevel {
		return hclog.NoLevel, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}
