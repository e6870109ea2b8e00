package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_NAME", "APP_ENV", "PORT", "LOG_LEVEL", "DATABASE_URL", "REDIS_URL",
		"JWT_SECRET", "JWT_ISSUER", "BCRYPT_COST", "CORS_ALLOWED_ORIGINS",
		"DB_NAME", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASS", "DB_SSLMODE",
		shutdownSecondsEnvVar, shutdownDurationEnvVar, idemTTLSecondsEnvVar, idemTTLDurEnvVar,
		summaryCacheTTLEnvVar,
	} {
		t.Setenv(key, "")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoadDefaultsInDevelopment(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, defaultAppName, cfg.AppName)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, ":4000", cfg.Address())
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, defaultShutdownDelay, cfg.ShutdownPeriod)
	assert.Equal(t, defaultIdempotencyTTL, cfg.IdempotencyTTL)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoadRequiresBackendsOutsideDevelopment(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://localhost/finance")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.IsDev())
}

func TestLoadBuildsDatabaseURLFromParts(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_NAME", "finance_tracker")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASS", "pw")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://root:pw@db:5432/finance_tracker", cfg.DatabaseURL)
}

func TestLoadParsesDurationsAndCost(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv(shutdownSecondsEnvVar, "3")
	t.Setenv(idemTTLDurEnvVar, "90m")
	t.Setenv(summaryCacheTTLEnvVar, "30s")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.ShutdownPeriod)
	assert.Equal(t, 90*time.Minute, cfg.IdempotencyTTL)
	assert.Equal(t, 30*time.Second, cfg.SummaryCacheTTL)
	assert.Equal(t, 4, cfg.BcryptCost)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"bcrypt not a number":  {"BCRYPT_COST", "many"},
		"bcrypt out of range":  {"BCRYPT_COST", "99"},
		"shutdown seconds":     {shutdownSecondsEnvVar, "soon"},
		"idempotency duration": {idemTTLDurEnvVar, "forever"},
		"summary cache ttl":    {summaryCacheTTLEnvVar, "5 minutes"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("JWT_SECRET", "s3cret")
			t.Setenv(kv[0], kv[1])

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
