package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"hotel_pos_backend/pkg/utils"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port string

	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBApplySchema bool

	JWTSecret string
	JWTTTL    time.Duration

	// Seeds the first OWNER account when the users table is empty.
	BootstrapUsername string
	BootstrapPassword string

	CORSAllowedOrigins []string

	LogLevel  string
	LogPretty bool

	// Location used to truncate attendance dates to local midnight.
	Location *time.Location

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	MenuCacheTTL  time.Duration

	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	tzName := utils.Getenv("BUSINESS_TIMEZONE", "Local")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid BUSINESS_TIMEZONE %q: %w", tzName, err)
	}

	cfg := &Config{
		Port:              utils.Getenv("PORT", "8080"),
		DBHost:            utils.Getenv("DB_HOST", "localhost"),
		DBPort:            utils.Getenv("DB_PORT", "5432"),
		DBUser:            utils.Getenv("DB_USER", "hotel_pos_user"),
		DBPassword:        utils.Getenv("DB_PASSWORD", "hotel_pos_password"),
		DBName:            utils.Getenv("DB_NAME", "hotel_pos_db"),
		DBSSLMode:         utils.Getenv("DB_SSLMODE", "disable"),
		DBApplySchema:     utils.GetenvBool("DB_APPLY_SCHEMA", true),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTTTL:            utils.GetenvDuration("JWT_TTL", 12*time.Hour),
		BootstrapUsername: os.Getenv("BOOTSTRAP_USERNAME"),
		BootstrapPassword: os.Getenv("BOOTSTRAP_PASSWORD"),
		LogLevel:          utils.Getenv("LOG_LEVEL", "info"),
		LogPretty:         utils.GetenvBool("LOG_PRETTY", false),
		Location:          loc,
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           utils.GetenvInt("REDIS_DB", 0),
		MenuCacheTTL:      utils.GetenvDuration("MENU_CACHE_TTL", 5*time.Minute),
		ShutdownTimeout:   utils.GetenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	origins := utils.Getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}
	return cfg, nil
}

// DSN returns the lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}
