// Package config handles loading and validation of configuration values from
// environment variables, with support for required variables, default values,
// and collective error reporting: every problem found during loading is
// collected and reported in one aggregated error instead of failing on the
// first missing variable.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// PoolConfig represents configuration for the database connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// SessionConfig holds session-management settings.
type SessionConfig struct {
	// TTL is the fixed validity window of a session from issuance.
	TTL time.Duration
	// PruneInterval is how often the store sweeps stale entries; entries
	// untouched for longer than this are removed regardless of TTL.
	PruneInterval time.Duration
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string
	// ClientURL is the single origin allowed by the CORS policy.
	ClientURL string
	// Production toggles the Secure and SameSite=None cookie attributes.
	Production bool
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	DB      *PoolConfig
	Session *SessionConfig
	Server  *ServerConfig
}

func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getOptionalEnvInt(key string, defaultValue int, errs *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

func getOptionalEnvDuration(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// validatePoolSize clamps the pool size between 5 and 100, collecting an
// error when the configured value falls outside those bounds.
func validatePoolSize(size int, varName string, errs *[]string) int {
	if size < 5 {
		*errs = append(*errs, fmt.Sprintf("pool size for %s (%d) is less than minimum 5, clamping to 5", varName, size))
		return 5
	}
	if size > 100 {
		*errs = append(*errs, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100, clamping to 100", varName, size))
		return 100
	}
	return size
}

// LoadConfig creates and returns an AppConfig by reading and validating
// environment variables. It collects all errors encountered during loading
// and returns a single aggregated error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	dbUser := getRequiredEnv("DB_USER", &errs)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errs)
	dbName := getRequiredEnv("DB_NAME", &errs)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errs)
	poolSize := validatePoolSize(getOptionalEnvInt("DB_POOL_SIZE", 10, &errs), "DB_POOL_SIZE", &errs)

	dbConfig := &PoolConfig{
		Host:     dbHost,
		Port:     dbPort,
		User:     dbUser,
		Password: dbPassword,
		DBName:   dbName,
		MaxSize:  poolSize,
	}

	// Session windows mirror the deployed defaults: sessions live for three
	// hours, and the store is swept every five.
	sessionConfig := &SessionConfig{
		TTL:           getOptionalEnvDuration("SESSION_TTL", 3*time.Hour, &errs),
		PruneInterval: getOptionalEnvDuration("SESSION_PRUNE_INTERVAL", 5*time.Hour, &errs),
	}
	if sessionConfig.TTL <= 0 {
		errs = append(errs, fmt.Sprintf("SESSION_TTL must be positive, got %s", sessionConfig.TTL))
	}
	if sessionConfig.PruneInterval <= 0 {
		errs = append(errs, fmt.Sprintf("SESSION_PRUNE_INTERVAL must be positive, got %s", sessionConfig.PruneInterval))
	}

	serverConfig := &ServerConfig{
		Port:       getOptionalEnv("PORT", "8000"),
		ClientURL:  getOptionalEnv("CLIENT_URL", "http://localhost:3000"),
		Production: getOptionalEnv("APP_ENV", "development") == "production",
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &AppConfig{
		DB:      dbConfig,
		Session: sessionConfig,
		Server:  serverConfig,
	}, nil
}
