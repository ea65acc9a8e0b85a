package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all ravi configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Insight InsightConfig `toml:"insight"`
}

type ServerConfig struct {
	Addr                string `toml:"addr"`
	ReadTimeoutSeconds  int    `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `toml:"write_timeout_seconds"`
	IdleTimeoutSeconds  int    `toml:"idle_timeout_seconds"`
	Compress            bool   `toml:"compress"`
	TemplatesDir        string `toml:"templates_dir"`
}

// InsightConfig names the text-generation provider. The credential itself
// never lives in the file; APIKeyEnv names the environment variable holding it.
type InsightConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	APIKeyEnv      string `toml:"api_key_env"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:                ":8080",
			ReadTimeoutSeconds:  5,
			WriteTimeoutSeconds: 30,
			IdleTimeoutSeconds:  60,
			Compress:            true,
		},
		Insight: InsightConfig{
			Provider:       "gemini",
			Model:          "gemini-2.5-flash",
			APIKeyEnv:      "API_KEY",
			BaseURL:        "https://generativelanguage.googleapis.com/v1beta",
			TimeoutSeconds: 20,
		},
	}
}

// Load reads config from the standard path, falling back to defaults.
func Load() (Config, error) {
	cfg := DefaultConfig()

	for _, p := range configPaths() {
		if _, err := os.Stat(p); err == nil {
			if _, err := toml.DecodeFile(p, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", p, err)
			}
			break
		}
	}

	cfg.Server.TemplatesDir = expandHome(cfg.Server.TemplatesDir)

	return cfg, nil
}

func configPaths() []string {
	var paths []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "ravi", "config.toml"))
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "ravi", "config.toml"))
	}

	return paths
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// APIKey returns the insight credential from the environment, or "" when
// unset. Callers read it once at startup.
func (c Config) APIKey() string {
	if c.Insight.APIKeyEnv == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(c.Insight.APIKeyEnv))
}

// Timeout returns the per-request deadline for insight calls.
func (c InsightConfig) Timeout() time.Duration {
	return seconds(c.TimeoutSeconds, 20)
}

func (c ServerConfig) ReadTimeout() time.Duration  { return seconds(c.ReadTimeoutSeconds, 5) }
func (c ServerConfig) WriteTimeout() time.Duration { return seconds(c.WriteTimeoutSeconds, 30) }
func (c ServerConfig) IdleTimeout() time.Duration  { return seconds(c.IdleTimeoutSeconds, 60) }

func seconds(n, fallback int) time.Duration {
	if n <= 0 {
		n = fallback
	}
	return time.Duration(n) * time.Second
}
