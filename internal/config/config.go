package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"punch.cli/internal/api"
)

// Config is the root configuration for punch, stored in ~/.punch/config.json.
// The file supports single-line // comments for documentation purposes, and
// every field can be overridden through a PUNCH_* environment variable.
type Config struct {
	// BaseURL is the API root of the HR platform.
	BaseURL string `json:"base_url" env:"PUNCH_BASE_URL"`
	// Username is the login name offered as the default at `punch login`.
	Username string `json:"username" env:"PUNCH_USERNAME"`
	// LogLevel is a zerolog level name ("debug", "info", "warn", "error").
	LogLevel string `json:"log_level" env:"PUNCH_LOG_LEVEL"`
	// NonInteractive suppresses confirmation prompts, as if --yes were
	// passed to every command.
	NonInteractive bool `json:"non_interactive" env:"PUNCH_NON_INTERACTIVE"`
}

const defaultLogLevel = "warn"

// defaultConfig returns a Config pre-filled with built-in defaults.
func defaultConfig() Config {
	return Config{
		BaseURL:  api.DefaultBaseURL,
		LogLevel: defaultLogLevel,
	}
}

// configTemplate is the annotated config written on first run. Lines whose
// trimmed content starts with // are stripped before JSON parsing, allowing
// human-readable documentation inside the file.
const configTemplate = `// punch configuration – ~/.punch/config.json
//
// All settings are optional; the built-in defaults shown below work out of
// the box. Every setting can also be overridden with a PUNCH_* environment
// variable (PUNCH_BASE_URL, PUNCH_USERNAME, PUNCH_LOG_LEVEL,
// PUNCH_NON_INTERACTIVE).
{
  // API root of the HR platform.
  "base_url": "https://app.rippling.com/api/",

  // Login name offered as the default by: punch login
  "username": "",

  // Log verbosity: "debug", "info", "warn" or "error".
  "log_level": "warn",

  // Set to true to skip confirmation prompts (same as passing --yes).
  "non_interactive": false
}
`

// Dir returns the punch configuration directory (~/.punch).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".punch"), nil
}

func configFilePath(dir string) string {
	return filepath.Join(dir, "config.json")
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads config.json from dir, creating it with annotated defaults on
// first run, then applies PUNCH_* environment overrides. Zero-value fields
// are filled with built-in defaults so callers always get a usable Config.
func Load(dir string) (Config, error) {
	cfg := defaultConfig()
	path := configFilePath(dir)

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
	case err != nil:
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	default:
		cleaned := stripLineComments(data)
		cfg = Config{}
		if err := json.Unmarshal(cleaned, &cfg); err != nil {
			return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return defaultConfig(), fmt.Errorf("reading PUNCH_* environment: %w", err)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = api.DefaultBaseURL
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	return cfg, nil
}

// Save writes cfg back to config.json in dir. The annotated template
// comments are not preserved.
func Save(dir string, cfg Config) error {
	path := configFilePath(dir)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving config file: %w", err)
	}
	return nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
