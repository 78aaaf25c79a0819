package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/quochao170402/cekspek/internal/repository"
)

type AppConfig struct {
	AppEnv      string
	AppPort     string
	LogLevel    string
	CORSOrigins []string
}

func (a AppConfig) Development() bool {
	return a.AppEnv == "development"
}

type DatabaseConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
	TimeZone string
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode, d.TimeZone,
	)
}

type DynamoConfig struct {
	TablePrefix string
	// Endpoint overrides the AWS endpoint, e.g. for dynamodb-local.
	Endpoint string
}

// DevJWTSecret signs tokens when APP_ENV=development and JWT_SECRET is unset.
const DevJWTSecret = "cekspek-development-only"

type AuthConfig struct {
	JWTSecret         string
	AccessExpire      time.Duration
	RefreshExpire     time.Duration
	AdminEmail        string
	AdminPasswordHash string
}

// Validate reports a missing signing secret. Only the server needs one.
func (a AuthConfig) Validate() error {
	if a.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set outside APP_ENV=development")
	}
	return nil
}

type Config struct {
	App         AppConfig
	StoreDriver string
	Database    DatabaseConfig
	Dynamo      DynamoConfig
	Auth        AuthConfig
}

// LoadConfig reads the optional env files and then the environment. Values
// already set in the environment win over the files.
func LoadConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	accessMinutes, err := envInt("JWT_ACCESS_EXPIRE", 20)
	if err != nil {
		return nil, err
	}
	refreshDays, err := envInt("JWT_REFRESH_EXPIRE", 7)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			AppEnv:      getEnv("APP_ENV", "production"),
			AppPort:     getEnv("APP_PORT", "8080"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		},
		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", repository.DriverPostgres)),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "cekspek"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			TimeZone: getEnv("DB_TIMEZONE", "Asia/Jakarta"),
		},
		Dynamo: DynamoConfig{
			TablePrefix: getEnv("DYNAMO_TABLE_PREFIX", "cekspek_"),
			Endpoint:    os.Getenv("DYNAMO_ENDPOINT"),
		},
		Auth: AuthConfig{
			JWTSecret:         os.Getenv("JWT_SECRET"),
			AccessExpire:      time.Duration(accessMinutes) * time.Minute,
			RefreshExpire:     time.Duration(refreshDays) * 24 * time.Hour,
			AdminEmail:        getEnv("ADMIN_EMAIL", "admin@cekspek.id"),
			AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		},
	}

	if cfg.Auth.JWTSecret == "" && cfg.App.Development() {
		cfg.Auth.JWTSecret = DevJWTSecret
	}

	switch cfg.StoreDriver {
	case repository.DriverPostgres, repository.DriverDynamoDB:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return n, nil
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
