package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Defaults applied for any key missing from config.json. A missing file
// is not an error; every key has a working default.
const (
	DefaultHost         = "http://localhost:11434"
	DefaultTimeout      = 30
	DefaultUserAgent    = "Ollama-MCP-Guidance/1.0"
	DefaultDocPath      = "ollama-api.md"
	DefaultDocMaxLength = 8000
)

// OllamaConfig describes the backend connection.
type OllamaConfig struct {
	// Host is the backend base URL.
	Host string
	// Timeout bounds each backend exchange, in seconds.
	Timeout int
	// UserAgent identifies this adapter to the backend.
	UserAgent string
}

// TimeoutDuration returns the per-call timeout.
func (c OllamaConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// APIDocConfig describes the documentation source used by the doc tools.
type APIDocConfig struct {
	FilePath  string
	MaxLength int
}

// Config is the complete configuration. It is loaded once at startup,
// validated, and passed by value; nothing reads configuration ambiently
// after load.
type Config struct {
	Ollama OllamaConfig
	APIDoc APIDocConfig
	Log    LogConfig
}

// ConfigDir returns the path to ~/.ollama-mcp/
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".ollama-mcp"), nil
}

// Load reads config.json from the given path, or from the working
// directory and ~/.ollama-mcp/ when path is empty. Environment variables
// prefixed OLLAMA_MCP_ override file values (dots become underscores,
// e.g. OLLAMA_MCP_OLLAMA_HOST).
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("OLLAMA_MCP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("json")
		v.AddConfigPath(".")
		if dir, err := ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := Config{
		Ollama: OllamaConfig{
			Host:      v.GetString("ollama.host"),
			Timeout:   v.GetInt("ollama.timeout"),
			UserAgent: v.GetString("ollama.user_agent"),
		},
		APIDoc: APIDocConfig{
			FilePath:  v.GetString("api_doc.file_path"),
			MaxLength: v.GetInt("api_doc.max_length"),
		},
		Log: LogConfig{
			Level:      v.GetString("log.level"),
			MaxSize:    v.GetInt("log.max_size_mb"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAge:     v.GetInt("log.max_age_days"),
			Compress:   v.GetBool("log.compress"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ollama.host", DefaultHost)
	v.SetDefault("ollama.timeout", DefaultTimeout)
	v.SetDefault("ollama.user_agent", DefaultUserAgent)
	v.SetDefault("api_doc.file_path", DefaultDocPath)
	v.SetDefault("api_doc.max_length", DefaultDocMaxLength)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 14)
	v.SetDefault("log.compress", true)
}

// Validate checks the loaded values before anything uses them.
func (c Config) Validate() error {
	u, err := url.Parse(c.Ollama.Host)
	if err != nil || u.Host == "" {
		return fmt.Errorf("ollama.host %q is not a valid URL", c.Ollama.Host)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("ollama.host %q must use http or https", c.Ollama.Host)
	}
	if c.Ollama.Timeout <= 0 {
		return fmt.Errorf("ollama.timeout must be positive, got %d", c.Ollama.Timeout)
	}
	if c.APIDoc.MaxLength <= 0 {
		return fmt.Errorf("api_doc.max_length must be positive, got %d", c.APIDoc.MaxLength)
	}
	return nil
}
