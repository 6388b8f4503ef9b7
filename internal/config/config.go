// Package config loads the site configuration from the environment once at
// startup. Components receive the values they need from Config instead of
// reading environment variables themselves.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultTokenTTL is the lifetime of an issued session token.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Config holds all runtime settings for the site and the CLI.
type Config struct {
	Env  string
	Port int
	Host string

	JWTSecret string
	TokenTTL  time.Duration

	DatabaseURL string
	DBMaxConns  int32

	Redis  RedisConfig
	S3     S3Config
	Consul ConsulConfig

	CORSOrigins []string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	LogLevel  string
	LogFormat string
}

// RedisConfig holds cache connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// S3Config holds object storage settings. Storage is disabled when Endpoint is empty.
type S3Config struct {
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	Bucket         string
	UseSSL         bool
}

// Enabled reports whether object storage was configured.
func (c S3Config) Enabled() bool {
	return c.Endpoint != ""
}

// ConsulConfig holds service registration settings. Registration is skipped when Addr is empty.
type ConsulConfig struct {
	Addr  string
	Token string
}

// Load reads configuration from environment variables, applying defaults.
func Load() *Config {
	return &Config{
		Env:  GetEnvOrDefault("APP_ENV", "development"),
		Port: getEnvInt("PORT", 8080),
		Host: GetEnvOrDefault("SERVICE_HOST", "localhost"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  getEnvDuration("TOKEN_TTL", DefaultTokenTTL),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBMaxConns:  int32(getEnvInt("DB_MAX_CONNS", 10)),

		Redis: RedisConfig{
			Addr:     GetEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		S3: S3Config{
			Endpoint:       os.Getenv("S3_ENDPOINT"),
			PublicEndpoint: os.Getenv("S3_PUBLIC_ENDPOINT"),
			AccessKey:      os.Getenv("S3_ACCESS_KEY"),
			SecretKey:      os.Getenv("S3_SECRET_KEY"),
			Bucket:         os.Getenv("S3_BUCKET_NAME"),
			UseSSL:         os.Getenv("S3_USE_SSL") == "true",
		},
		Consul: ConsulConfig{
			Addr:  os.Getenv("CONSUL_HTTP_ADDR"),
			Token: os.Getenv("CONSUL_HTTP_TOKEN"),
		},

		CORSOrigins: splitList(GetEnvOrDefault("CORS_ORIGINS", "http://localhost:3000")),

		ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),

		LogLevel:  GetEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: GetEnvOrDefault("LOG_FORMAT", "json"),
	}
}

// IsProduction reports whether the site runs in production mode.
// Cookies are marked Secure only in production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// GetEnvOrDefault retrieves an environment variable or returns a default value
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
