package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_TLS", "")
	t.Setenv("DB_TLS_SKIP_VERIFY", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.True(t, cfg.DBTLS)
	assert.False(t, cfg.DBTLSSkipVerify)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.Equal(t, "10M", cfg.BodyLimit)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
	assert.Nil(t, cfg)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_TLS_SKIP_VERIFY", "true")
	t.Setenv("AUTO_MIGRATE", "false")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("DB_TLS", "not-a-bool")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.True(t, cfg.DBTLSSkipVerify)
	assert.False(t, cfg.AutoMigrate)
	assert.True(t, cfg.DBTLS, "unparseable bool falls back to the default")
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowOrigins)
}

func TestRead_WithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ADMIN_EMAIL", "root@shop.test")

	cfg := Read()
	require.NotNil(t, cfg)
	assert.Empty(t, cfg.JWTSecret)
	assert.Equal(t, "root@shop.test", cfg.AdminEmail)
}
