package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ErrMissingJWTSecret is returned when JWT_SECRET is not configured.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	// DBDSN, when set, is passed to the driver verbatim and the parts above are ignored.
	DBDSN string
	// DBTLS enables TLS to the database. Certificates are verified unless
	// DBTLSSkipVerify is explicitly turned on.
	DBTLS           bool
	DBTLSSkipVerify bool
	AutoMigrate     bool

	JWTSecret string

	LogLevel  string
	LogFormat string

	CORSAllowOrigins []string
	BodyLimit        string

	AdminEmail    string
	AdminPassword string
}

// Load reads the configuration and fails when JWT_SECRET is missing.
func Load() (*Config, error) {
	cfg := Read()
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	return cfg, nil
}

// Read loads an optional .env file and builds Config from the environment with
// defaults, without checking required values. Tools that never issue tokens
// use it directly.
func Read() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("config: .env not loaded: %v", err)
	}

	return &Config{
		ServerPort:       getEnv("PORT", "4000"),
		DBDriver:         strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           os.Getenv("DB_PORT"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_DATABASE"),
		DBDSN:            os.Getenv("DATABASE_DSN"),
		DBTLS:            getEnvBool("DB_TLS", true),
		DBTLSSkipVerify:  getEnvBool("DB_TLS_SKIP_VERIFY", false),
		AutoMigrate:      getEnvBool("AUTO_MIGRATE", true),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		LogLevel:         getEnv("LOG_LEVEL", "debug"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		CORSAllowOrigins: getEnvList("CORS_ALLOW_ORIGINS", []string{"*"}),
		BodyLimit:        getEnv("BODY_LIMIT", "10M"),
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
