package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Issuer string `env:"ACCOUNTS_ISSUER" envDefault:"openreel-accounts"`

	Env       string `env:"ENV"        envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	Port      int    `env:"PORT"       envDefault:"8080"`

	DatabaseFile string `env:"ACCOUNTS_DATABASE_FILE" envDefault:"accounts.db"`
	PepperFile   string `env:"ACCOUNTS_PEPPER_FILE"   envDefault:"pepper"`

	AccessTokenSecret  string        `env:"ACCESS_TOKEN_SECRET"`
	AccessTokenExpiry  time.Duration `env:"ACCESS_TOKEN_EXPIRY"  envDefault:"15m"`
	RefreshTokenSecret string        `env:"REFRESH_TOKEN_SECRET"`
	RefreshTokenExpiry time.Duration `env:"REFRESH_TOKEN_EXPIRY" envDefault:"168h"`

	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"true"`

	MediaHostURL       string        `env:"MEDIA_HOST_URL"`
	MediaHostAPIKey    string        `env:"MEDIA_HOST_API_KEY"`
	MediaUploadTimeout time.Duration `env:"MEDIA_UPLOAD_TIMEOUT" envDefault:"30s"`

	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.AccessTokenSecret == "" {
		return fmt.Errorf("ACCESS_TOKEN_SECRET is required")
	}
	if c.RefreshTokenSecret == "" {
		return fmt.Errorf("REFRESH_TOKEN_SECRET is required")
	}
	// Shared secrets would let a refresh token pass access verification.
	if c.AccessTokenSecret == c.RefreshTokenSecret {
		return fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	if c.MediaHostURL == "" {
		return fmt.Errorf("MEDIA_HOST_URL is required")
	}
	return nil
}
