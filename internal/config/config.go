package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultHTTPAddr           = ":8080"
	defaultAccessTokenTTL     = "15m"
	defaultRefreshTokenTTL    = "168h"
	defaultSessionMaxDuration = "720h"
	defaultJWKSCacheTTL       = "1h"
	defaultJWTSecret          = "change-me-jwt-secret"
	defaultRefreshTokenPepper = "change-me-refresh-pepper"
	defaultMicrosoftIssuer    = "https://login.microsoftonline.com/common/v2.0"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string

	JWTSecret          string
	RefreshTokenPepper string

	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	SessionMaxDuration time.Duration

	GoogleClientID    string
	GoogleJWKSURL     string
	MicrosoftClientID string
	MicrosoftIssuer   string
	MicrosoftJWKSURL  string
	JWKSCacheTTL      time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.RefreshTokenPepper = strings.TrimSpace(getEnv("REFRESH_TOKEN_PEPPER", defaultRefreshTokenPepper))

	cfg.GoogleClientID = strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_ID"))
	cfg.GoogleJWKSURL = strings.TrimSpace(os.Getenv("GOOGLE_JWKS_URL"))
	cfg.MicrosoftClientID = strings.TrimSpace(os.Getenv("MICROSOFT_CLIENT_ID"))
	cfg.MicrosoftIssuer = strings.TrimSpace(getEnv("MICROSOFT_ISSUER", defaultMicrosoftIssuer))
	cfg.MicrosoftJWKSURL = strings.TrimSpace(os.Getenv("MICROSOFT_JWKS_URL"))

	var err error
	cfg.AccessTokenTTL, err = parseDurationEnv("ACCESS_TOKEN_TTL", defaultAccessTokenTTL)
	if err != nil {
		return nil, err
	}
	cfg.RefreshTokenTTL, err = parseDurationEnv("REFRESH_TOKEN_TTL", defaultRefreshTokenTTL)
	if err != nil {
		return nil, err
	}
	cfg.SessionMaxDuration, err = parseDurationEnv("SESSION_MAX_DURATION", defaultSessionMaxDuration)
	if err != nil {
		return nil, err
	}
	cfg.JWKSCacheTTL, err = parseDurationEnv("JWKS_CACHE_TTL", defaultJWKSCacheTTL)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be > 0")
	}
	if cfg.RefreshTokenTTL <= 0 {
		return fmt.Errorf("REFRESH_TOKEN_TTL must be > 0")
	}
	if cfg.SessionMaxDuration < cfg.RefreshTokenTTL {
		return fmt.Errorf("SESSION_MAX_DURATION must be >= REFRESH_TOKEN_TTL")
	}

	if IsProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.RefreshTokenPepper, defaultRefreshTokenPepper) {
			return fmt.Errorf("in prod/release REFRESH_TOKEN_PEPPER must be set and not default")
		}
		if cfg.GoogleClientID == "" && cfg.MicrosoftClientID == "" {
			return fmt.Errorf("in prod/release at least one provider client id must be configured")
		}
	}

	return nil
}

// IsProdLike reports whether the environment name should get production
// strictness (release gin mode, no default secrets).
func IsProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
