package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDir returns the ravi config directory path.
// Uses $XDG_CONFIG_HOME/ravi if set, otherwise ~/.config/ravi.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ravi")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ravi")
}

const defaultTOML = `# ravi configuration

[server]
addr = ":8080"
read_timeout_seconds = 5
write_timeout_seconds = 30
idle_timeout_seconds = 60
compress = true
# Load templates from disk and reload them on change (development only).
templates_dir = ""

[insight]
# "gemini" or "openai" (any OpenAI-compatible endpoint)
provider = "gemini"
model = "gemini-2.5-flash"
# Environment variable holding the credential. Unset means demo mode.
api_key_env = "API_KEY"
base_url = "https://generativelanguage.googleapis.com/v1beta"
timeout_seconds = 20
`

// WriteDefault writes a default config.toml and returns its path plus the
// action taken: "created" or "exists". Skips if config.toml already exists.
func WriteDefault() (string, string, error) {
	dir := ConfigDir()
	path := filepath.Join(dir, "config.toml")

	if _, err := os.Stat(path); err == nil {
		return path, "exists", nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create config dir: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultTOML), 0o644); err != nil {
		return "", "", fmt.Errorf("write config: %w", err)
	}

	return path, "created", nil
}
