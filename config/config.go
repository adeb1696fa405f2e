package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is read once at startup from the environment (and .env when present).
type Config struct {
	Port           string
	MongoURI       string
	DBName         string
	JWTSecret      string
	StripeKey      string
	PostmarkToken  string
	EmailSender    string
	RateLimitRPS   float64
	RateLimitBurst int
	RequestTimeout time.Duration
}

// Load reads the configuration. The Mongo URI comes from MONGO_URI or is assembled from
// DB_USER/DB_PASSWORD/DB_HOST.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	cfg := Config{
		Port:          getEnv("PORT", "4000"),
		DBName:        getEnv("DB_NAME", "MotoHub"),
		JWTSecret:     firstEnv("JWTOKEN", "JWT_SECRET"),
		StripeKey:     os.Getenv("STRIPE_SECRET_KEY"),
		PostmarkToken: os.Getenv("POSTMARK_API_TOKEN"),
		EmailSender:   getEnv("EMAIL_SENDER", "no-reply@motohub.app"),
	}

	cfg.MongoURI = os.Getenv("MONGO_URI")
	if cfg.MongoURI == "" {
		user, pass := os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD")
		if user == "" || pass == "" {
			return Config{}, fmt.Errorf("config: MONGO_URI or DB_USER and DB_PASSWORD must be set")
		}
		host := getEnv("DB_HOST", "cluster0.rfyyfuu.mongodb.net")
		cfg.MongoURI = fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority", user, pass, host)
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("config: JWTOKEN must be set")
	}

	var err error
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "20"), 64); err != nil {
		return Config{}, fmt.Errorf("config: RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimitBurst, err = strconv.Atoi(getEnv("RATE_LIMIT_BURST", "40")); err != nil {
		return Config{}, fmt.Errorf("config: RATE_LIMIT_BURST: %w", err)
	}
	if cfg.RequestTimeout, err = time.ParseDuration(getEnv("REQUEST_TIMEOUT", "5s")); err != nil {
		return Config{}, fmt.Errorf("config: REQUEST_TIMEOUT: %w", err)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
