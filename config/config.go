package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Database drivers accepted in DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Classifier backends accepted in CLASSIFIER_BACKEND.
const (
	ClassifierHTTP        = "http"
	ClassifierRekognition = "rekognition"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	// MigrationsDir holds the postgres *.up.sql files applied at startup.
	MigrationsDir string

	// Redis configuration. Leaving both RedisURL and RedisHost empty
	// disables rate limiting and token revocation.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string
	JWTTTL    time.Duration

	// LLM (OpenAI-compatible chat completions)
	LLMAPIKey      string
	LLMAPIURL      string
	LLMModel       string
	LLMTemperature float64

	// Image classification and storage
	ClassifierBackend string
	ClassifierURL     string
	ClassifierToken   string
	AWSRegion         string
	S3BucketName      string

	AppTimezone      string
	ExternalTimeout  time.Duration
	RateLimitPerHour int
}

// lookupFunc returns the raw value of a setting, or "" when unset.
type lookupFunc func(key string) string

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{Environment: env}

	// Load configuration based on environment
	switch env {
	case CI:
		populate(cfg, os.Getenv, false)
	case Development, Test:
		loadDotEnv()
		populate(cfg, os.Getenv, true)
	case Production:
		populate(cfg, secretOrEnv, false)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadDotEnv loads ENV_FILE (default .env) if present. Variables already in
// the environment win.
func loadDotEnv() {
	file := os.Getenv("ENV_FILE")
	if file == "" {
		file = ".env"
	}
	if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
		log.Printf("[Config] Could not load %s: %v", file, err)
	}
}

// populate fills cfg from get. Development defaults are only applied to
// secrets when devSecrets is set.
func populate(cfg *Config, get lookupFunc, devSecrets bool) {
	cfg.ServerPort = withDefault(get("SERVER_PORT"), "8080")
	cfg.ServerHost = withDefault(get("SERVER_HOST"), "0.0.0.0")
	cfg.CORSOrigins = splitList(withDefault(get("CORS_ALLOWED_ORIGINS"), "http://localhost:3000"))

	cfg.DBDriver = strings.ToLower(withDefault(get("DB_DRIVER"), DriverPostgres))
	cfg.DatabaseURL = get("DATABASE_URL")
	cfg.DBHost = withDefault(get("DB_HOST"), "localhost")
	cfg.DBPort = get("DB_PORT")
	cfg.DBUser = get("DB_USER")
	cfg.DBPassword = get("DB_PASSWORD")
	cfg.DBName = withDefault(get("DB_NAME"), "bangladiet")
	cfg.DBSSLMode = withDefault(get("DB_SSL_MODE"), "disable")
	cfg.MigrationsDir = withDefault(get("MIGRATIONS_DIR"), "migrations")
	if cfg.DBPort == "" {
		cfg.DBPort = defaultPort(cfg.DBDriver)
	}

	cfg.RedisHost = get("REDIS_HOST")
	cfg.RedisPort = withDefault(get("REDIS_PORT"), "6379")
	cfg.RedisPassword = get("REDIS_PASSWORD")
	cfg.RedisDB = intOr(get("REDIS_DB"), 0)
	cfg.RedisURL = get("REDIS_URL")

	cfg.JWTSecret = get("JWT_SECRET")
	cfg.JWTTTL = durationOr(get("JWT_TTL"), 24*time.Hour)

	cfg.LLMAPIKey = get("LLM_API_KEY")
	cfg.LLMAPIURL = withDefault(get("LLM_API_URL"), "https://api.groq.com/openai/v1/chat/completions")
	cfg.LLMModel = withDefault(get("LLM_MODEL"), "llama-3.3-70b-versatile")
	cfg.LLMTemperature = floatOr(get("LLM_TEMPERATURE"), 0.3)

	cfg.ClassifierBackend = strings.ToLower(withDefault(get("CLASSIFIER_BACKEND"), ClassifierHTTP))
	cfg.ClassifierURL = get("CLASSIFIER_URL")
	cfg.ClassifierToken = get("CLASSIFIER_TOKEN")
	cfg.AWSRegion = withDefault(get("AWS_REGION"), "us-east-1")
	cfg.S3BucketName = get("S3_BUCKET_NAME")

	cfg.AppTimezone = withDefault(get("APP_TIMEZONE"), "UTC")
	cfg.ExternalTimeout = durationOr(get("EXTERNAL_TIMEOUT"), 30*time.Second)
	cfg.RateLimitPerHour = intOr(get("RATE_LIMIT_PER_HOUR"), 60)

	if devSecrets {
		if cfg.DBUser == "" {
			cfg.DBUser = "postgres"
		}
		if cfg.DBPassword == "" {
			cfg.DBPassword = "postgres"
		}
		if cfg.JWTSecret == "" {
			cfg.JWTSecret = "development-jwt-secret"
		}
	}
}

// DSN returns the connection string for the configured driver. DATABASE_URL
// takes precedence; for sqlite DB_NAME is the file path.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	switch c.DBDriver {
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	case DriverSQLite:
		return c.DBName
	default:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
	}
}

// RedisEnabled reports whether a Redis endpoint is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// ServerAddr returns host:port for the HTTP listener.
func (c *Config) ServerAddr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// Location resolves AppTimezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.AppTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func defaultPort(driver string) string {
	switch driver {
	case DriverMySQL:
		return "3306"
	case DriverSQLite:
		return ""
	default:
		return "5432"
	}
}

// secretOrEnv reads a Docker secret named after the lower-cased key, then
// KEY_FILE, then the plain environment variable.
func secretOrEnv(key string) string {
	if v := readSecret(strings.ToLower(key)); v != "" {
		return v
	}
	if path := os.Getenv(key + "_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return os.Getenv(key)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func intOr(v string, def int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
		return n
	}
	return def
}

func floatOr(v string, def float64) float64 {
	if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
		return f
	}
	return def
}

func durationOr(v string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
		return d
	}
	return def
}
