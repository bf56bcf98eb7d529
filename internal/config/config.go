// Package config loads polyroots settings from TOML or YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/errgo.v1"
	"gopkg.in/yaml.v3"

	"github.com/njchilds90/polyroots"
)

// EnvVar names the environment variable holding a config file path.
const EnvVar = "POLYROOTS_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Engine  EngineConfig  `toml:"engine" yaml:"engine"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
	TUI     TUIConfig     `toml:"tui" yaml:"tui"`
}

// GeneralConfig holds logging settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// EngineConfig holds root-finding limits
type EngineConfig struct {
	MaxDegree int `toml:"max_degree" yaml:"max_degree"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string   `toml:"host" yaml:"host"`
	Port         int      `toml:"port" yaml:"port"`
	ReadTimeout  Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout" yaml:"write_timeout"`
	IdleTimeout  Duration `toml:"idle_timeout" yaml:"idle_timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes" yaml:"max_body_bytes"`
	// SessionTTL bounds how long an idle WebSocket tutorial stays open.
	SessionTTL Duration `toml:"session_ttl" yaml:"session_ttl"`
}

// TUIConfig holds terminal UI settings
type TUIConfig struct {
	ShowLaTeX bool `toml:"show_latex" yaml:"show_latex"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML accepts the same strings as UnmarshalText.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		General: GeneralConfig{LogLevel: "info", LogFormat: "text"},
		Engine:  EngineConfig{MaxDegree: polyroots.DefaultMaxDegree},
		Server: ServerConfig{
			Host:         "127.0.0.1",
			Port:         8080,
			ReadTimeout:  Duration{10 * time.Second},
			WriteTimeout: Duration{10 * time.Second},
			IdleTimeout:  Duration{60 * time.Second},
			MaxBodyBytes: 1 << 20,
			SessionTTL:   Duration{30 * time.Minute},
		},
		TUI: TUIConfig{ShowLaTeX: false},
	}
}

// Load reads path over the defaults. The format follows the extension:
// .yaml and .yml are YAML, anything else TOML.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errgo.Notef(err, "cannot read config")
	}
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, errgo.Notef(err, "YAML parse error in %s", path)
		}
	default:
		if _, err := toml.Decode(string(content), cfg); err != nil {
			return nil, errgo.Notef(err, "TOML parse error in %s", path)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, errgo.Notef(err, "invalid config %s", path)
	}
	return cfg, nil
}

// LoadFromEnv loads the file named by POLYROOTS_CONFIG, the first of the
// default locations that exists, or the defaults when there is none.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	candidates := []string{"./polyroots.toml", "./polyroots.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "polyroots", "config.toml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	var problems []string
	switch strings.ToLower(c.General.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("general.log_level %q is not one of debug, info, warn, error", c.General.LogLevel))
	}
	switch strings.ToLower(c.General.LogFormat) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("general.log_format %q is not text or json", c.General.LogFormat))
	}
	if c.Engine.MaxDegree < 2 {
		problems = append(problems, fmt.Sprintf("engine.max_degree %d is below 2", c.Engine.MaxDegree))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d is out of range", c.Server.Port))
	}
	if c.Server.MaxBodyBytes <= 0 {
		problems = append(problems, "server.max_body_bytes must be positive")
	}
	for name, d := range map[string]Duration{
		"read_timeout":  c.Server.ReadTimeout,
		"write_timeout": c.Server.WriteTimeout,
		"idle_timeout":  c.Server.IdleTimeout,
		"session_ttl":   c.Server.SessionTTL,
	} {
		if d.Duration < 0 {
			problems = append(problems, fmt.Sprintf("server.%s is negative", name))
		}
	}
	if len(problems) > 0 {
		return errgo.New(strings.Join(problems, "; "))
	}
	return nil
}

// Address is the host:port the server listens on.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// EngineOptions turns the engine section into core options.
func (c *Config) EngineOptions() []polyroots.Option {
	return []polyroots.Option{polyroots.WithMaxDegree(c.Engine.MaxDegree)}
}
