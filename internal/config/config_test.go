package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  host: "0.0.0.0"
  app_url: "https://pawsnclaws.org"

database:
  url: "postgres://localhost/pawsnclaws?sslmode=disable"

email:
  provider: ses
  from: "PawsNClaws <noreply@example.org>"
  region: us-west-2

stripe:
  timeout_seconds: 10

logging:
  level: debug
  redact_pii: false

default_tenant: charlotte
tenants:
  - slug: austin
    name: PawsNClaws ATX
    notification_email: hello@example.org
  - slug: charlotte
    name: PawsNClaws CLT
    notification_email: clt@example.org
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, []string{"https://pawsnclaws.org"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, "ses", cfg.Email.Provider)
	assert.Equal(t, "us-west-2", cfg.Email.Region)
	assert.Equal(t, "https://api.stripe.com", cfg.Stripe.BaseURL)
	assert.Equal(t, 10, cfg.Stripe.TimeoutSeconds)
	assert.Equal(t, 300, cfg.Stripe.WebhookToleranceSeconds)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.Logging.ShouldRedact())
	assert.Equal(t, "charlotte", cfg.DefaultTenant)
	require.Len(t, cfg.Tenants, 2)
	assert.Equal(t, "clt@example.org", cfg.Tenants[1].NotificationEmail)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "http://localhost:3000", cfg.Server.AppURL)
	assert.False(t, cfg.Database.Enabled())
	assert.Equal(t, "log", cfg.Email.Provider)
	assert.Equal(t, "pnc_admin_session", cfg.Auth.CookieName)
	assert.Equal(t, 8*60*60, cfg.Auth.CookieMaxAge)
	assert.True(t, cfg.Logging.ShouldRedact())
	assert.Equal(t, "austin", cfg.DefaultTenant)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8081\n")

	t.Setenv("DATABASE_URL", "postgres://db/prod")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_abc")
	t.Setenv("ADMIN_EMAIL", "ops@example.org, director@example.org")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.org,https://b.example.org")
	t.Setenv("ADMIN_NOTIFICATION_EMAIL", "inbox@example.org")

	cfg, err := LoadFromEnv(path)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "postgres://db/prod", cfg.Database.URL)
	assert.Equal(t, "redis://cache:6379/0", cfg.Redis.URL)
	assert.Equal(t, "sk_test_123", cfg.Stripe.SecretKey)
	assert.Equal(t, "whsec_abc", cfg.Stripe.WebhookSecret)
	assert.Equal(t, []string{"ops@example.org", "director@example.org"}, cfg.Auth.AdminEmails)
	assert.Equal(t, []string{"https://a.example.org", "https://b.example.org"}, cfg.Server.AllowedOrigins)
	require.NotEmpty(t, cfg.Tenants)
	for _, tn := range cfg.Tenants {
		assert.Equal(t, "inbox@example.org", tn.NotificationEmail)
	}
}
