package showcase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SITE_NAME", "Acme Studio")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123")
	t.Setenv("ALLOW_SIGNUP", "true")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "Acme Studio", cfg.Name)
	assert.True(t, cfg.AllowSignUp)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, cfg.SessionSecret, cfg.TokenSecret, "token secret defaults to the session secret")
	assert.Equal(t, ":3000", cfg.Addr)
	assert.NoError(t, cfg.validate())
}

func TestConfigFromEnvMalformed(t *testing.T) {
	t.Setenv("COOKIE_SECURE", "sometimes")
	_, err := ConfigFromEnv()
	assert.ErrorContains(t, err, "COOKIE_SECURE")

	t.Setenv("COOKIE_SECURE", "")
	t.Setenv("CACHE_TTL", "forever")
	_, err = ConfigFromEnv()
	assert.ErrorContains(t, err, "CACHE_TTL")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  SiteConfig
		want string
	}{
		{"missing secret", SiteConfig{}, "SessionSecret is required"},
		{"short secret", SiteConfig{SessionSecret: "short"}, "at least 16 bytes"},
		{"admin without password", SiteConfig{SessionSecret: "0123456789abcdef", AdminEmail: "a@example.com"}, "set together"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorContains(t, tt.cfg.validate(), tt.want)
		})
	}
	assert.NoError(t, SiteConfig{SessionSecret: "0123456789abcdef"}.validate())
}
