package config

import (
	"os"
	"strconv"
	"time"
)

// ScraperConfig controls one ingestion batch. Limits that were embedded
// constants in earlier iterations (batch cap, cast cap, request delay) are
// environment-tunable here.
type ScraperConfig struct {
	ListURL     string
	MaxMovies   int
	CastLimit   int
	Delay       time.Duration
	HTTPTimeout time.Duration
}

func LoadScraperConfig() ScraperConfig {
	return ScraperConfig{
		ListURL:     envString("MOVIEHUB_LIST_URL", "https://www.imdb.com/chart/top/"),
		MaxMovies:   envInt("MOVIEHUB_MAX_MOVIES", 250),
		CastLimit:   envInt("MOVIEHUB_CAST_LIMIT", 5),
		Delay:       time.Duration(envInt("MOVIEHUB_DELAY_MS", 1000)) * time.Millisecond,
		HTTPTimeout: time.Duration(envInt("MOVIEHUB_HTTP_TIMEOUT_S", 15)) * time.Second,
	}
}

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration
	AdminKey    string
}

func LoadAuthConfig() AuthConfig {
	secret := os.Getenv("MOVIEHUB_JWT_SECRET")
	if secret == "" {
		// dev default (change for demo / production)
		secret = "dev-secret-change-me"
	}

	adminKey := os.Getenv("MOVIEHUB_ADMIN_KEY")
	if adminKey == "" {
		adminKey = "dev-admin-key-change-me"
	}

	return AuthConfig{
		JWTSecret:   secret,
		JWTIssuer:   envString("MOVIEHUB_JWT_ISSUER", "moviehub"),
		JWTDuration: time.Duration(envInt("MOVIEHUB_JWT_TTL_HOURS", 24)) * time.Hour,
		AdminKey:    adminKey,
	}
}

type ServerConfig struct {
	Addr string
}

func LoadServerConfig() ServerConfig {
	return ServerConfig{
		Addr: envString("MOVIEHUB_ADDR", ":8080"),
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
