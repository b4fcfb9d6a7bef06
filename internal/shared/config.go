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
	Server      ServerConfig      `toml:"server"`
	RateLimits  RateLimitConfig   `toml:"rate_limits"`
	Confidence  ConfidenceConfig  `toml:"confidence"`
	Suggestions SuggestionsConfig `toml:"suggestions"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify API credentials.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// RateLimitConfig contains per-endpoint admission quotas.
//
// WindowMS applies to every bucket; quotas are requests per window.
type RateLimitConfig struct {
	WindowMS      int `toml:"window_ms"`
	ImportMax     int `toml:"import_max"`
	SuggestMax    int `toml:"suggest_max"`
	NowPlayingMax int `toml:"now_playing_max"`
	PlaylistMax   int `toml:"playlist_max"`
}

// ConfidenceConfig contains match scoring weights and level thresholds.
//
// Values are empirically fixed; do not change them without mismatch data.
type ConfidenceConfig struct {
	TitleWeight     float64 `toml:"title_weight"`
	ArtistWeight    float64 `toml:"artist_weight"`
	HighThreshold   int     `toml:"high_threshold"`
	MediumThreshold int     `toml:"medium_threshold"`
}

// SuggestionsConfig selects the suggestion strategy ("artist-top" or "recommendations").
type SuggestionsConfig struct {
	Strategy string `toml:"strategy"`
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
		return fmt.Errorf("config file already exists at %s: %w", path, ErrInvalidInput)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
