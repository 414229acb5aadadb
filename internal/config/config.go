package config

import (
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	SessionStore  string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string
	HTTPAddr      string
	AppURL        string
	LogLevel      string
	LogFormat     string
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	MailFrom      string
	StorageDir    string
	StorageURL    string
	RolesFile     string
	OpenAIAPIKey  string

	// Limits applied to the unauthenticated acceptance and login endpoints.
	AcceptRateRequests int
	AcceptRateWindow   time.Duration
}

func Load() *Config {
	return &Config{
		DBDriver:           getEnv("DB_DRIVER", "mysql"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "3306"),
		DBUser:             getEnv("DB_USER", "artwork"),
		DBPassword:         getEnv("DB_PASSWORD", "artwork"),
		DBName:             getEnv("DB_NAME", "artwork"),
		SessionStore:       getEnv("SESSION_STORE", "redis"),
		RedisHost:          getEnv("REDIS_HOST", "localhost"),
		RedisPort:          getEnv("REDIS_PORT", "6379"),
		SessionSecret:      getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		AppURL:             getEnv("APP_URL", "http://localhost:8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		SMTPHost:           getEnv("SMTP_HOST", ""),
		SMTPPort:           getEnvInt("SMTP_PORT", 587),
		SMTPUsername:       getEnv("SMTP_USERNAME", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		MailFrom:           getEnv("MAIL_FROM", "no-reply@artwork.local"),
		StorageDir:         getEnv("STORAGE_DIR", "storage"),
		StorageURL:         getEnv("STORAGE_URL", "/storage"),
		RolesFile:          getEnv("ROLES_FILE", ""),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		AcceptRateRequests: getEnvInt("RATELIMIT_ACCEPT_REQUESTS", 10),
		AcceptRateWindow:   getEnvDuration("RATELIMIT_ACCEPT_WINDOW", time.Minute),
	}
}

// BindFlags registers command-line overrides for the settings an operator
// usually changes per invocation. Defaults come from the environment.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.HTTPAddr, "addr", c.HTTPAddr, "HTTP listen address")
	fs.StringVar(&c.DBDriver, "db-driver", c.DBDriver, "database driver (mysql, postgres, sqlite)")
	fs.StringVar(&c.DBName, "db-name", c.DBName, "database name, or file path for sqlite")
	fs.StringVar(&c.SessionStore, "session-store", c.SessionStore, "session backend (redis, cookie)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format (json, console)")
	fs.StringVar(&c.RolesFile, "roles", c.RolesFile, "path to a role catalog YAML file")
	fs.StringVar(&c.StorageDir, "storage-dir", c.StorageDir, "directory for uploaded files")
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
