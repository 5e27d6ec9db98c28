package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/pawsnclaws/intake-api/internal/tenant"
)

// Config holds all configuration for the application
type Config struct {
	Server        ServerConfig    `yaml:"server"`
	Database      DatabaseConfig  `yaml:"database"`
	Redis         RedisConfig     `yaml:"redis"`
	Email         EmailConfig     `yaml:"email"`
	Stripe        StripeConfig    `yaml:"stripe"`
	Auth          AuthConfig      `yaml:"auth"`
	Logging       LoggingConfig   `yaml:"logging"`
	Tenants       []tenant.Config `yaml:"tenants"`
	DefaultTenant string          `yaml:"default_tenant"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port                int      `yaml:"port"`
	Host                string   `yaml:"host"`
	AppURL              string   `yaml:"app_url"`
	AllowedOrigins      []string `yaml:"allowed_origins"`
	ReadTimeoutSeconds  int      `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int      `yaml:"write_timeout_seconds"`
}

// GetHost returns the server host, with container detection
func (c ServerConfig) GetHost() string {
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// Addr is the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.GetHost(), c.Port)
}

func (c ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

func (c ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

// DatabaseConfig holds PostgreSQL settings. An empty URL disables persistence.
type DatabaseConfig struct {
	URL          string `yaml:"url"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

// Enabled reports whether a database is configured.
func (c DatabaseConfig) Enabled() bool { return c.URL != "" }

// RedisConfig holds the session store connection. Empty means in-memory sessions.
type RedisConfig struct {
	URL string `yaml:"url"`
}

// EmailConfig selects and configures the outbound email provider.
type EmailConfig struct {
	// Provider is "ses" or "log".
	Provider         string `yaml:"provider"`
	From             string `yaml:"from"`
	Region           string `yaml:"region"`
	AccessKey        string `yaml:"access_key"`
	SecretKey        string `yaml:"secret_key"`
	ConfigurationSet string `yaml:"configuration_set"`
}

// StripeConfig holds payment processor settings
type StripeConfig struct {
	SecretKey               string `yaml:"secret_key"`
	WebhookSecret           string `yaml:"webhook_secret"`
	BaseURL                 string `yaml:"base_url"`
	TimeoutSeconds          int    `yaml:"timeout_seconds"`
	WebhookToleranceSeconds int    `yaml:"webhook_tolerance_seconds"`
}

// Timeout returns the configured timeout as a duration
func (c StripeConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// WebhookTolerance is the maximum accepted age of a signed webhook.
func (c StripeConfig) WebhookTolerance() time.Duration {
	return time.Duration(c.WebhookToleranceSeconds) * time.Second
}

// AuthConfig holds admin authentication configuration
type AuthConfig struct {
	Enabled            bool     `yaml:"enabled"`
	GoogleClientID     string   `yaml:"google_client_id"`
	GoogleClientSecret string   `yaml:"google_client_secret"`
	RedirectURL        string   `yaml:"redirect_url"`
	AllowedDomain      string   `yaml:"allowed_domain"`
	AdminEmails        []string `yaml:"admin_emails"`
	AdminPasswordHash  string   `yaml:"admin_password_hash"`
	CookieName         string   `yaml:"cookie_name"`
	CookieMaxAge       int      `yaml:"cookie_max_age"`
	CookieSecure       bool     `yaml:"cookie_secure"`
}

// SessionTTL is how long an admin session lives.
func (c AuthConfig) SessionTTL() time.Duration {
	return time.Duration(c.CookieMaxAge) * time.Second
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	RedactPII *bool  `yaml:"redact_pii"`
}

// ShouldRedact defaults to true when unset.
func (c LoggingConfig) ShouldRedact() bool {
	return c.RedactPII == nil || *c.RedactPII
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.AppURL == "" {
		cfg.Server.AppURL = "http://localhost:3000"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{cfg.Server.AppURL}
	}
	if cfg.Server.ReadTimeoutSeconds == 0 {
		cfg.Server.ReadTimeoutSeconds = 15
	}
	if cfg.Server.WriteTimeoutSeconds == 0 {
		cfg.Server.WriteTimeoutSeconds = 30
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Email.Provider == "" {
		cfg.Email.Provider = "log"
	}
	if cfg.Email.From == "" {
		cfg.Email.From = "PawsNClaws ATX <noreply@pawsandclawsatx.com>"
	}
	if cfg.Email.Region == "" {
		cfg.Email.Region = "us-east-1"
	}
	if cfg.Stripe.BaseURL == "" {
		cfg.Stripe.BaseURL = "https://api.stripe.com"
	}
	if cfg.Stripe.TimeoutSeconds == 0 {
		cfg.Stripe.TimeoutSeconds = 30
	}
	if cfg.Stripe.WebhookToleranceSeconds == 0 {
		cfg.Stripe.WebhookToleranceSeconds = 300
	}
	if cfg.Auth.CookieName == "" {
		cfg.Auth.CookieName = "pnc_admin_session"
	}
	if cfg.Auth.CookieMaxAge == 0 {
		cfg.Auth.CookieMaxAge = 8 * 60 * 60
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.DefaultTenant == "" {
		cfg.DefaultTenant = "austin"
	}
}

// LoadFromEnv loads configuration with environment variable overrides.
// It loads a .env file (if present) before reading env vars, so secrets can
// live in .env locally and in real env vars in production.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

func (cfg *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString(&cfg.Server.AppURL, "APP_URL")
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}

	// Database override (deployments keep local defaults in config.yaml)
	setString(&cfg.Database.URL, "DATABASE_URL")
	setString(&cfg.Redis.URL, "REDIS_URL")

	setString(&cfg.Email.From, "EMAIL_FROM")
	setString(&cfg.Email.AccessKey, "AWS_SES_ACCESS_KEY")
	setString(&cfg.Email.SecretKey, "AWS_SES_SECRET_KEY")
	setString(&cfg.Email.Region, "AWS_SES_REGION")
	setString(&cfg.Email.ConfigurationSet, "AWS_SES_CONFIGURATION_SET")
	setString(&cfg.Email.Provider, "EMAIL_PROVIDER")

	setString(&cfg.Stripe.SecretKey, "STRIPE_SECRET_KEY")
	setString(&cfg.Stripe.WebhookSecret, "STRIPE_WEBHOOK_SECRET")
	setString(&cfg.Stripe.BaseURL, "STRIPE_BASE_URL")

	setString(&cfg.Auth.GoogleClientID, "GOOGLE_CLIENT_ID")
	setString(&cfg.Auth.GoogleClientSecret, "GOOGLE_CLIENT_SECRET")
	setString(&cfg.Auth.AllowedDomain, "AUTH_ALLOWED_DOMAIN")
	setString(&cfg.Auth.AdminPasswordHash, "ADMIN_PASSWORD_HASH")
	if v := os.Getenv("ADMIN_EMAIL"); v != "" {
		cfg.Auth.AdminEmails = splitList(v)
	}

	setString(&cfg.Logging.Level, "LOG_LEVEL")

	// A single operator inbox for every city.
	if v := os.Getenv("ADMIN_NOTIFICATION_EMAIL"); v != "" {
		if len(cfg.Tenants) == 0 {
			cfg.Tenants = tenant.Builtin()
		}
		for i := range cfg.Tenants {
			cfg.Tenants[i].NotificationEmail = v
		}
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
