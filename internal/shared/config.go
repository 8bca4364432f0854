package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	IPTV        IPTVConfig        `toml:"iptv"`
	App         AppConfig         `toml:"app"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	TMDB   TMDBConfig   `toml:"tmdb"`
	Email  EmailConfig  `toml:"email"`
	Gemini GeminiConfig `toml:"gemini"`
}

// TMDBConfig contains TMDB API credentials and catalog options.
type TMDBConfig struct {
	APIKey string `toml:"api_key"` // v3 key, sent as query parameter
	// ReadAccessToken is the optional v4 bearer token. When set it is
	// preferred over the v3 key and sent via an OAuth2 static token source.
	ReadAccessToken string `toml:"read_access_token"`
	Language        string `toml:"language"`
	// RateLimit is the maximum request rate against the TMDB API in
	// requests per second. Zero disables client-side limiting.
	RateLimit float64 `toml:"rate_limit"`
}

// EmailConfig contains EmailJS credentials for the verification code flow.
type EmailConfig struct {
	ServiceID  string `toml:"service_id"`
	TemplateID string `toml:"template_id"`
	PublicKey  string `toml:"public_key"`
	AppName    string `toml:"app_name"`
}

// GeminiConfig contains the Gemini API credentials for the catalog assistant.
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// IPTVConfig contains M3U playlist sources and CORS proxy templates.
//
// Proxies are URL templates with a %s placeholder for the escaped playlist
// URL. Each source is tried through every proxy before falling back to a
// direct request.
type IPTVConfig struct {
	Sources []string        `toml:"sources"`
	Proxies []string        `toml:"proxies"`
	Pinned  []PinnedChannel `toml:"pinned"`
}

// PinnedChannel is a channel always present in the IPTV listing regardless of
// what the public playlists return.
type PinnedChannel struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Logo  string `toml:"logo"`
	URL   string `toml:"url"`
	Group string `toml:"group"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Language string `toml:"language"` // UI language ("pt" or "en")
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
