// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var requiredEnv = []string{
	"POSTGRES_HOST",
	"POSTGRES_PORT",
	"POSTGRES_USER",
	"POSTGRES_PASSWORD",
	"POSTGRES_DB",
	"REDIS_HOST",
	"REDIS_PORT",
}

// Config holds everything the process needs to start. Handlers never read
// the environment themselves; all values flow through here.
type Config struct {
	Addr string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	RedisHost string
	RedisPort string

	WebDir     string
	UploadsDir string
}

// Load reads .env (when present) and the process environment, failing if
// any required key is missing.
func Load() (*Config, error) {
	godotenv.Load()

	if missing := checkenv(requiredEnv); len(missing) != 0 {
		return nil, fmt.Errorf("missing %v in env", strings.Join(missing, ", "))
	}

	return &Config{
		Addr:             env("ADDR", ":3000"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     os.Getenv("POSTGRES_PORT"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		RedisHost:        os.Getenv("REDIS_HOST"),
		RedisPort:        os.Getenv("REDIS_PORT"),
		WebDir:           env("WEB_DIR", "web/templates"),
		UploadsDir:       env("UPLOADS_DIR", "public/uploads"),
	}, nil
}

// PostgresURL builds the connection string for gorm.
func (c *Config) PostgresURL() string {
	u := url.URL{
		User:   url.UserPassword(c.PostgresUser, c.PostgresPassword),
		Scheme: "postgres",
		Host:   c.PostgresHost + ":" + c.PostgresPort,
		Path:   c.PostgresDB,
		RawQuery: url.Values{
			"sslmode": {"disable"},
		}.Encode(),
	}

	return u.String()
}

// RedisAddr returns the host:port pair for the session store.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func checkenv(keys []string) []string {
	var missing []string
	for _, key := range keys {
		if val, ok := os.LookupEnv(key); len(val) == 0 || !ok {
			missing = append(missing, key)
		}
	}

	return missing
}
