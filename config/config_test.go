package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spacesedan/decisions/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"APP_ENV", "LOG_LEVEL", "REDDIT_CLIENT_ID", "REDDIT_CLIENT_SECRET", "REDDIT_USER_AGENT",
	"REDDIT_MAX_RETRIES", "REDDIT_AUTH_URL", "REDDIT_API_URL", "SHEET_ID", "INPUT_FILE",
	"OUTPUT_FILE", "ID_COLUMN", "URL_COLUMN", "HTTP_TIMEOUT",
}

// unsetEnv removes keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, configKeys...)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, config.DefaultUserAgent, cfg.RedditUserAgent)
	assert.Equal(t, 5, cfg.RedditMaxRetries)
	assert.Equal(t, config.DefaultSheetID, cfg.SheetID)
	assert.Empty(t, cfg.InputFile)
	assert.Equal(t, config.DefaultOutputFile, cfg.OutputFile)
	assert.Equal(t, config.DefaultIDColumn, cfg.IDColumn)
	assert.Equal(t, config.DefaultURLColumn, cfg.URLColumn)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Empty(t, cfg.RedditAuthURL)
	assert.Empty(t, cfg.RedditAPIURL)
	assert.ErrorIs(t, cfg.Validate(), config.ErrMissingClientID)
}

func TestLoadOverrides(t *testing.T) {
	unsetEnv(t, configKeys...)
	t.Setenv("REDDIT_CLIENT_ID", "id")
	t.Setenv("REDDIT_CLIENT_SECRET", "secret")
	t.Setenv("REDDIT_MAX_RETRIES", "2")
	t.Setenv("INPUT_FILE", "posts.csv")
	t.Setenv("OUTPUT_FILE", "out.csv")
	t.Setenv("ID_COLUMN", "id")
	t.Setenv("URL_COLUMN", "url")
	t.Setenv("HTTP_TIMEOUT", "5s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "id", cfg.RedditClientID)
	assert.Equal(t, "secret", cfg.RedditClientSecret)
	assert.Equal(t, 2, cfg.RedditMaxRetries)
	assert.Equal(t, "posts.csv", cfg.InputFile)
	assert.Equal(t, "out.csv", cfg.OutputFile)
	assert.Equal(t, "id", cfg.IDColumn)
	assert.Equal(t, "url", cfg.URLColumn)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"retries not a number", "REDDIT_MAX_RETRIES", "ten"},
		{"retries zero", "REDDIT_MAX_RETRIES", "0"},
		{"timeout without unit", "HTTP_TIMEOUT", "30"},
		{"timeout negative", "HTTP_TIMEOUT", "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetEnv(t, configKeys...)
			t.Setenv(tt.key, tt.value)

			cfg, err := config.Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := &config.Config{}
	require.ErrorIs(t, cfg.Validate(), config.ErrMissingClientID)

	cfg.RedditClientID = "id"
	require.ErrorIs(t, cfg.Validate(), config.ErrMissingClientSecret)

	cfg.RedditClientSecret = "secret"
	require.NoError(t, cfg.Validate())
}

func TestLoadEnvFrom(t *testing.T) {
	unsetEnv(t, "DECISIONS_FROM_FILE", "DECISIONS_ALREADY_SET")
	t.Setenv("DECISIONS_ALREADY_SET", "os")

	dir := t.TempDir()
	contents := "DECISIONS_FROM_FILE=file\nDECISIONS_ALREADY_SET=file\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte(contents), 0o644))

	require.NoError(t, config.LoadEnvFrom(dir, "test"))
	assert.Equal(t, "file", os.Getenv("DECISIONS_FROM_FILE"))
	assert.Equal(t, "os", os.Getenv("DECISIONS_ALREADY_SET"))
}

func TestLoadEnvFromMissingFile(t *testing.T) {
	err := config.LoadEnvFrom(t.TempDir(), "prod")
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), ".env.prod")
}
