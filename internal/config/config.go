package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr string
	GRPCAddr string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	RedisAddr     string
	RedisPassword string

	SecretKey  string
	TokenTTL   time.Duration
	BcryptCost int

	LogFile  string
	LogLevel string

	OTLPEndpoint string
	ServiceName  string
	Environment  string

	CORSOrigins    []string
	IdempotencyTTL time.Duration
}

var defaults = map[string]interface{}{
	"HTTP_ADDR":       ":8080",
	"GRPC_ADDR":       ":50054",
	"DB_HOST":         "localhost",
	"DB_PORT":         "5432",
	"DB_USER":         "postgres",
	"DB_NAME":         "employees",
	"DB_SSLMODE":      "disable",
	"TOKEN_TTL":       "24h",
	"BCRYPT_COST":     10,
	"LOG_LEVEL":       "info",
	"SERVICE_NAME":    "employee-api",
	"ENVIRONMENT":     "development",
	"CORS_ORIGINS":    "*",
	"IDEMPOTENCY_TTL": "24h",
}

// Load reads envFile (if it exists) into the process environment and
// resolves the configuration from it.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "load %s", envFile)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := &Config{
		HTTPAddr:       v.GetString("HTTP_ADDR"),
		GRPCAddr:       v.GetString("GRPC_ADDR"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		DBHost:         v.GetString("DB_HOST"),
		DBPort:         v.GetString("DB_PORT"),
		DBUser:         v.GetString("DB_USER"),
		DBPassword:     v.GetString("DB_PASSWORD"),
		DBName:         v.GetString("DB_NAME"),
		DBSSLMode:      v.GetString("DB_SSLMODE"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		SecretKey:      v.GetString("SECRET_KEY"),
		TokenTTL:       v.GetDuration("TOKEN_TTL"),
		BcryptCost:     v.GetInt("BCRYPT_COST"),
		LogFile:        v.GetString("LOG_FILE"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		OTLPEndpoint:   v.GetString("OTLP_ENDPOINT"),
		ServiceName:    v.GetString("SERVICE_NAME"),
		Environment:    v.GetString("ENVIRONMENT"),
		CORSOrigins:    splitList(v.GetString("CORS_ORIGINS")),
		IdempotencyTTL: v.GetDuration("IDEMPOTENCY_TTL"),
	}

	if cfg.SecretKey == "" {
		return nil, errors.New("SECRET_KEY is required")
	}
	if cfg.TokenTTL < 0 {
		return nil, errors.Errorf("TOKEN_TTL must not be negative, got %s", cfg.TokenTTL)
	}
	return cfg, nil
}

// DSN returns DATABASE_URL when set, otherwise a key/value DSN built from the DB_* settings.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, quote(c.DBPassword), c.DBName, c.DBSSLMode)
}

// RedactedDSN is safe to log.
func (c *Config) RedactedDSN() string {
	if c.DatabaseURL != "" {
		u, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return "<invalid DATABASE_URL>"
		}
		return u.Redacted()
	}
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBName, c.DBSSLMode)
}

func quote(value string) string {
	if value == "" {
		return "''"
	}
	if !strings.ContainsAny(value, ` '\`) {
		return value
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(value) + "'"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
