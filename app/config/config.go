package config

import (
	"errors"
	"os"
	"strings"

	// this will automatically load your .env file:
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	HTTPAddr     string
	DB           PostgresConfig
	Gemini       GeminiConfig
	Stripe       StripeConfig
	Auth         AuthConfig
	AllowedUsers []string
}

type PostgresConfig struct {
	Username string
	Password string
	URL      string
	Port     string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type StripeConfig struct {
	SecretKey             string
	WebhookSecret         string
	PriceIDPremiumMonthly string
	FrontendURL           string
}

type AuthConfig struct {
	Issuer   string
	Audience string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		HTTPAddr: os.Getenv("HTTP_ADDR"),
		DB: PostgresConfig{
			Username: os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PWD"),
			URL:      os.Getenv("POSTGRES_URL"),
			Port:     os.Getenv("POSTGRES_PORT"),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  os.Getenv("GEMINI_MODEL"),
		},
		Stripe: StripeConfig{
			SecretKey:             os.Getenv("STRIPE_SECRET_KEY"),
			WebhookSecret:         os.Getenv("STRIPE_WEBHOOK_SECRET"),
			PriceIDPremiumMonthly: os.Getenv("STRIPE_PRICE_ID_PREMIUM_MONTHLY"),
			FrontendURL:           os.Getenv("FRONTEND_URL"),
		},
		Auth: AuthConfig{
			Issuer:   os.Getenv("AUTH0_ISSUER"),
			Audience: os.Getenv("AUTH0_AUDIENCE"),
		},
		AllowedUsers: splitList(os.Getenv("ALLOWED_USERS")),
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = "0.0.0.0:8080"
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.5-flash"
	}
	if cfg.Gemini.APIKey == "" {
		return nil, errors.New("GEMINI_API_KEY must be set")
	}

	return cfg, nil
}

// splitList parses a comma separated env value, dropping empty entries.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
