package config

import (
	"errors"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	// DevJWTSecret signs tokens outside production when JWT_SECRET is unset.
	DevJWTSecret = "dev-secret-change-me"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required in production")

// Config contains runtime configuration values.
type Config struct {
	Environment        string
	Port               string
	JWTSecret          string
	UsingDevSecret     bool
	RedisURL           string
	NATSURL            string
	LoginRateLimitRPM  int
	LoginRateBurst     int
	LogLevel           string
	SeedPassword       string
	CORSAllowedOrigins []string
	MaxBodyBytes       int64
	ShutdownTimeout    time.Duration
}

// Load reads configuration from environment variables with development
// defaults. It refuses to run production without a signing secret.
func Load() (Config, error) {
	cfg := Config{
		Environment:        getEnv("APP_ENV", EnvDevelopment),
		Port:               getEnv("PORT", "8080"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		RedisURL:           getEnv("REDIS_URL", ""),
		NATSURL:            getEnv("NATS_URL", ""),
		LoginRateLimitRPM:  getInt("LOGIN_RATE_LIMIT_RPM", 30),
		LoginRateBurst:     getInt("LOGIN_RATE_BURST", 5),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		SeedPassword:       getEnv("SEED_PASSWORD", "password"),
		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		MaxBodyBytes:       getInt64("MAX_BODY_BYTES", 1<<20),
		ShutdownTimeout:    getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return Config{}, ErrMissingJWTSecret
		}
		cfg.JWTSecret = DevJWTSecret
		cfg.UsingDevSecret = true
	}

	if cfg.LoginRateLimitRPM <= 0 {
		cfg.LoginRateLimitRPM = 30
	}
	if cfg.LoginRateBurst <= 0 {
		cfg.LoginRateBurst = 5
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Environment == EnvProduction
}
