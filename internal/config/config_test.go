package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))
	return dir
}

func TestLoadConfig(t *testing.T) {
	dir := writeEnvFile(t, `DB_SOURCE=postgres://u:p@localhost:5432/db?sslmode=disable
SERVER_ADDRESS=127.0.0.1:9000
REDIS_URL=redis://localhost:6379/0
GEOCODER_TIMEOUT=3s
RATE_LIMIT_REQUESTS=10
RATE_LIMIT_WINDOW=30s
CORS_ALLOWED_ORIGINS=https://a.example,https://b.example
TRUSTED_PROXIES=10.0.0.0/8,192.168.1.2
SEARCH_REPORT_RANKED_TOTAL=false
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@localhost:5432/db?sslmode=disable", cfg.DBSource)
	assert.Equal(t, "127.0.0.1:9000", cfg.ServerAddress)
	assert.Equal(t, 3*time.Second, cfg.GeocoderTimeout)
	assert.Equal(t, 10, cfg.RateLimitRequests)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.2"}, cfg.TrustedProxies)
	assert.False(t, cfg.SearchReportRankedTotal)

	// untouched keys fall back to defaults
	assert.Equal(t, 24*time.Hour, cfg.GeocodeCacheTTL)
	assert.Equal(t, "au", cfg.GeocoderCountryCodes)
	assert.True(t, cfg.RateLimitEnabled)
}

func TestLoadConfig_NoTrustedProxiesByDefault(t *testing.T) {
	cfg, err := LoadConfig(writeEnvFile(t, "DB_SOURCE=postgres://x\nRATE_LIMIT_ENABLED=false\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is skipped", func(t *testing.T) {
		assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("valid file seeds the environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("CONFIG_TEST_DOTENV=seeded\n"), 0o600))
		t.Setenv("CONFIG_TEST_DOTENV", "")
		require.NoError(t, os.Unsetenv("CONFIG_TEST_DOTENV"))

		require.NoError(t, loadDotEnv(path))
		assert.Equal(t, "seeded", os.Getenv("CONFIG_TEST_DOTENV"))
	})

	t.Run("unreadable file is reported", func(t *testing.T) {
		// a directory opens but cannot be read as a file
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.Mkdir(path, 0o700))

		err := loadDotEnv(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config: load")
	})
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := writeEnvFile(t, "DB_SOURCE=postgres://file\nREDIS_URL=redis://file:6379/0\n")
	t.Setenv("DB_SOURCE", "postgres://env")
	t.Setenv("SEARCH_BOUNDING_BOX_PREFILTER", "true")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "postgres://env", cfg.DBSource)
	assert.True(t, cfg.SearchBoundingBoxPrefilter)
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing db source",
			content: "REDIS_URL=redis://localhost:6379/0\n",
		},
		{
			name:    "rate limit without redis",
			content: "DB_SOURCE=postgres://x\nRATE_LIMIT_ENABLED=true\n",
		},
		{
			name:    "non-positive rate limit",
			content: "DB_SOURCE=postgres://x\nREDIS_URL=redis://localhost:6379/0\nRATE_LIMIT_REQUESTS=0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeEnvFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFileUsesEnvironment(t *testing.T) {
	t.Setenv("DB_SOURCE", "postgres://env-only")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "postgres://env-only", cfg.DBSource)
	assert.False(t, cfg.RateLimitEnabled)
}
