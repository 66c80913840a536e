package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("ENCRYPTION_KEY", "k")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "https://haveibeenpwned.com/api/v3", cfg.BreachAPIURL)
	assert.Equal(t, "gpt-4o-mini", cfg.TextGenModel)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "auto", cfg.R2.Region)
	assert.Equal(t, "2fa/directory.json", cfg.R2.DirectoryKey)
	assert.False(t, cfg.R2.Enabled())
	assert.Empty(t, cfg.DBURL)
}

func TestLoad_FromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=9090\nBREACH_API_KEY=hibp\nR2_ACCOUNT_ID=acc\n"), 0o600))

	t.Setenv("ENV_FILE", path)
	t.Setenv("ENCRYPTION_KEY", "k")
	t.Setenv("LOG_LEVEL", "debug")
	// godotenv does not override variables already present
	t.Setenv("PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)
	t.Cleanup(func() {
		os.Unsetenv("BREACH_API_KEY")
		os.Unsetenv("R2_ACCOUNT_ID")
	})

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "hibp", cfg.BreachAPIKey)
	assert.Equal(t, "acc", cfg.R2.AccountID)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_RequiresEncryptionKey(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("ENCRYPTION_KEY", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingEncryptionKey)
}

func TestSurveySecret(t *testing.T) {
	assert.Equal(t, []byte("survey:k"), Config{EncryptionKey: "k"}.SurveySecret())
	assert.Equal(t, []byte("s"), Config{EncryptionKey: "k", SurveyTokenSecret: "s"}.SurveySecret())
}

func TestCorsOptions(t *testing.T) {
	opts := Config{CorsOrigins: " https://a.example , ,chrome-extension://abc"}.CorsOptions()
	assert.Equal(t, []string{"https://a.example", "chrome-extension://abc"}, opts.AllowedOrigins)
}

func TestR2Enabled(t *testing.T) {
	r := R2Config{AccountID: "a", BucketName: "b", AccessKeyID: "k", SecretAccessKey: "s"}
	assert.True(t, r.Enabled())
	r.SecretAccessKey = ""
	assert.False(t, r.Enabled())
}
