package config

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/cors"
)

// R2Config points at an optional bucket holding the 2FA directory.
// Variables are read with the R2_ prefix, e.g. R2_BUCKET_NAME.
type R2Config struct {
	AccountID       string `envconfig:"ACCOUNT_ID"`
	AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
	BucketName      string `envconfig:"BUCKET_NAME"`
	Region          string `envconfig:"REGION" default:"auto"`
	DirectoryKey    string `envconfig:"DIRECTORY_KEY" default:"2fa/directory.json"`
}

// Enabled reports whether enough settings are present to reach the bucket.
func (r R2Config) Enabled() bool {
	return r.AccountID != "" && r.BucketName != "" && r.AccessKeyID != "" && r.SecretAccessKey != ""
}

type Config struct {
	Port               string   `envconfig:"PORT" default:"8080"`
	Environment        string   `envconfig:"ENV" default:"development"`
	DBURL              string   `envconfig:"DB_URL"`
	EncryptionKey      string   `envconfig:"ENCRYPTION_KEY"`
	BreachAPIKey       string   `envconfig:"BREACH_API_KEY"`
	BreachAPIURL       string   `envconfig:"BREACH_API_URL" default:"https://haveibeenpwned.com/api/v3"`
	TextGenAPIKey      string   `envconfig:"TEXTGEN_API_KEY"`
	TextGenAPIURL      string   `envconfig:"TEXTGEN_API_URL" default:"https://api.openai.com/v1"`
	TextGenModel       string   `envconfig:"TEXTGEN_MODEL" default:"gpt-4o-mini"`
	SurveyTokenSecret  string   `envconfig:"SURVEY_TOKEN_SECRET"`
	TwoFADirectoryFile string   `envconfig:"TWOFA_DIRECTORY_FILE"`
	LogLevel           string   `envconfig:"LOG_LEVEL" default:"info"`
	CorsOrigins        string   `envconfig:"CORS_ORIGINS" default:"*"`
	R2                 R2Config `envconfig:"R2"`
}

var ErrMissingEncryptionKey = errors.New("ENCRYPTION_KEY is required")

// Load reads an optional .env file (ENV_FILE overrides the path) and then
// the process environment.
func Load() (Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	if cfg.EncryptionKey == "" {
		return cfg, ErrMissingEncryptionKey
	}
	return cfg, nil
}

// SurveySecret returns the key used to sign survey tokens.
func (c Config) SurveySecret() []byte {
	if c.SurveyTokenSecret != "" {
		return []byte(c.SurveyTokenSecret)
	}
	return []byte("survey:" + c.EncryptionKey)
}

func (c Config) CorsOptions() cors.Options {
	origins := []string{}
	for _, o := range strings.Split(c.CorsOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}
}
