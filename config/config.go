package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Vendors ship sample .env files with these literals; treat them as unset.
const (
	placeholderOpenAIKey  = "your_openai_api_key_here"
	placeholderApifyToken = "your_apify_api_token_here"
)

var (
	ErrOpenAIKeyMissing  = errors.New("OPENAI_API_KEY not configured; set your OpenAI API key in the .env file")
	ErrApifyTokenMissing = errors.New("APIFY_API_TOKEN not configured; set your Apify API token in the .env file")
)

// Config holds everything the workflow reads from the environment.
type Config struct {
	OpenAIAPIKey  string        `env:"OPENAI_API_KEY"`
	OpenAIModel   string        `env:"OPENAI_MODEL" envDefault:"gpt-4o"`
	OpenAIBaseURL string        `env:"OPENAI_BASE_URL"`
	ApifyAPIToken string        `env:"APIFY_API_TOKEN"`
	Address       string        `env:"ADDRESS" envDefault:":8080"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	RunTimeout    time.Duration `env:"WORKFLOW_TIMEOUT" envDefault:"10m"`
}

// Load reads .env (if present) and then the process environment.
func Load(files ...string) (Config, error) {
	// Missing .env is fine; real deployments may configure the
	// environment directly.
	if len(files) > 0 {
		_ = godotenv.Load(files...)
	} else {
		_ = godotenv.Load()
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// HasOpenAI reports whether a usable OpenAI key is present.
func (c Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != "" && c.OpenAIAPIKey != placeholderOpenAIKey
}

// HasApify reports whether a usable Apify token is present.
func (c Config) HasApify() bool {
	return c.ApifyAPIToken != "" && c.ApifyAPIToken != placeholderApifyToken
}

func (c Config) RequireOpenAI() error {
	if !c.HasOpenAI() {
		return ErrOpenAIKeyMissing
	}
	return nil
}

func (c Config) RequireApify() error {
	if !c.HasApify() {
		return ErrApifyTokenMissing
	}
	return nil
}
