// Package config loads application configuration from an optional YAML file,
// a .env file and environment variables, in that order of increasing priority.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Lightspeed endpoint defaults. Override via config file or env for testing
// against a mock token server.
const (
	DefaultAuthURL    = "https://secure.vendhq.com/connect"
	DefaultTokenURL   = "https://cloud.lightspeedapp.com/oauth/access_token.php"
	DefaultAPIBaseURL = "https://api.lightspeedapp.com/API/V3"
	DefaultScope      = "employee:inventory_read"
)

// SessionTTL is how long an issued session token stays valid.
const SessionTTL = 4 * time.Hour

// OAuth holds the Lightspeed integration credentials and endpoints.
type OAuth struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
	AuthURL      string `yaml:"auth_url"`
	TokenURL     string `yaml:"token_url"`
	APIBaseURL   string `yaml:"api_base_url"`
	AccountID    string `yaml:"account_id"`
	Scope        string `yaml:"scope"`
}

// Config is the full application configuration. It is constructed once at
// startup and passed to constructors explicitly.
type Config struct {
	Host      string `yaml:"host"`
	Port      string `yaml:"port"`
	DBPath    string `yaml:"db_path"`
	SecretKey string `yaml:"secret_key"`
	OAuth     OAuth  `yaml:"oauth"`
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// Load builds the configuration. A YAML file referenced by BRIDGE_CONFIG_FILE
// is read first, then environment variables override individual fields.
func Load() (*Config, error) {
	// Load .env if present (ignore error in production)
	_ = godotenv.Load()

	cfg := &Config{
		Host:   "127.0.0.1",
		Port:   "8080",
		DBPath: "bridge.db",
		OAuth: OAuth{
			AuthURL:    DefaultAuthURL,
			TokenURL:   DefaultTokenURL,
			APIBaseURL: DefaultAPIBaseURL,
			Scope:      DefaultScope,
		},
	}

	if path := os.Getenv("BRIDGE_CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg.Host, "HOST")
	applyEnv(&cfg.Port, "PORT")
	applyEnv(&cfg.DBPath, "BRIDGE_DB_PATH")
	applyEnv(&cfg.SecretKey, "BRIDGE_SECRET_KEY")
	applyEnv(&cfg.OAuth.ClientID, "LIGHTSPEED_CLIENT_ID")
	applyEnv(&cfg.OAuth.ClientSecret, "LIGHTSPEED_CLIENT_SECRET")
	applyEnv(&cfg.OAuth.RedirectURL, "LIGHTSPEED_REDIRECT_URL")
	applyEnv(&cfg.OAuth.AuthURL, "LIGHTSPEED_AUTH_URL")
	applyEnv(&cfg.OAuth.TokenURL, "LIGHTSPEED_TOKEN_URL")
	applyEnv(&cfg.OAuth.APIBaseURL, "LIGHTSPEED_API_BASE_URL")
	applyEnv(&cfg.OAuth.AccountID, "LIGHTSPEED_ACCOUNT_ID")
	applyEnv(&cfg.OAuth.Scope, "LIGHTSPEED_SCOPE")

	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("BRIDGE_SECRET_KEY is required")
	}
	if cfg.OAuth.ClientID == "" || cfg.OAuth.ClientSecret == "" {
		fmt.Println("Warning: LIGHTSPEED_CLIENT_ID or LIGHTSPEED_CLIENT_SECRET not set, the consent flow will not work")
	}

	return cfg, nil
}

func applyEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
