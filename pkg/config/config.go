package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Geocode  GeocodeConfig
	Auth     AuthConfig
	Booking  BookingConfig
	Log      LogConfig
}

type ServerConfig struct {
	Address      string
	WriteTimeout time.Duration
	ReadTimeout  time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	MaxPoolConns int
}

type GeocodeConfig struct {
	BaseURL string
	Country string
}

type AuthConfig struct {
	AdminEmail        string
	AdminPasswordHash string
	SessionTTL        time.Duration
}

type BookingConfig struct {
	// DriverPhone is the WhatsApp number booking handoffs open a chat with.
	DriverPhone     string
	SuggestDebounce time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

func (dc *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s pool_max_conns=%d",
		dc.Host,
		dc.Port,
		dc.Name,
		dc.User,
		dc.Password,
		dc.MaxPoolConns,
	)
}

func NewConfig() (*Config, error) {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	serverCfg, err := newServerConfig()
	if err != nil {
		return nil, fmt.Errorf("server config error: %w", err)
	}

	dbCfg, err := newDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("database config error: %w", err)
	}

	authCfg, err := newAuthConfig()
	if err != nil {
		return nil, fmt.Errorf("auth config error: %w", err)
	}

	bookingCfg, err := newBookingConfig()
	if err != nil {
		return nil, fmt.Errorf("booking config error: %w", err)
	}

	return &Config{
		Server:   serverCfg,
		Database: dbCfg,
		Geocode:  newGeocodeConfig(),
		Auth:     authCfg,
		Booking:  bookingCfg,
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}, nil
}

func newServerConfig() (ServerConfig, error) {
	writeTimeout, err := getDurationFromEnv("SERVER_WRITE_TIMEOUT", "15s")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("write timeout parse error: %w", err)
	}

	readTimeout, err := getDurationFromEnv("SERVER_READ_TIMEOUT", "15s")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("read timeout parse error: %w", err)
	}

	idleTimeout, err := getDurationFromEnv("SERVER_IDLE_TIMEOUT", "30s")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("idle timeout parse error: %w", err)
	}

	return ServerConfig{
		Address:      getEnvOrDefault("SERVER_ADDRESS", ":5000"),
		WriteTimeout: writeTimeout,
		ReadTimeout:  readTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func newDatabaseConfig() (DatabaseConfig, error) {
	maxConns, err := strconv.Atoi(getEnvOrDefault("MAX_CONNS", "10"))
	if err != nil {
		return DatabaseConfig{}, fmt.Errorf("max connections parse error: %w", err)
	}

	return DatabaseConfig{
		Host:         getEnvOrDefault("POSTGRES_HOST", "localhost"),
		Port:         getEnvOrDefault("POSTGRES_PORT", "5432"),
		Name:         getEnvOrDefault("POSTGRES_DB", "taxiresa"),
		User:         getEnvOrDefault("POSTGRES_USER", "postgres"),
		Password:     getEnvOrDefault("POSTGRES_PASSWORD", ""),
		MaxPoolConns: maxConns,
	}, nil
}

func newGeocodeConfig() GeocodeConfig {
	return GeocodeConfig{
		BaseURL: getEnvOrDefault("GEOCODE_URL", "https://nominatim.openstreetmap.org"),
		Country: getEnvOrDefault("GEOCODE_COUNTRY", "fr"),
	}
}

func newAuthConfig() (AuthConfig, error) {
	ttl, err := getDurationFromEnv("SESSION_TTL", "12h")
	if err != nil {
		return AuthConfig{}, fmt.Errorf("session ttl parse error: %w", err)
	}

	return AuthConfig{
		AdminEmail:        getEnvOrDefault("ADMIN_EMAIL", ""),
		AdminPasswordHash: getEnvOrDefault("ADMIN_PASSWORD_HASH", ""),
		SessionTTL:        ttl,
	}, nil
}

func newBookingConfig() (BookingConfig, error) {
	debounce, err := getDurationFromEnv("SUGGEST_DEBOUNCE", "300ms")
	if err != nil {
		return BookingConfig{}, fmt.Errorf("suggest debounce parse error: %w", err)
	}

	return BookingConfig{
		DriverPhone:     getEnvOrDefault("DRIVER_WHATSAPP", "33615392250"),
		SuggestDebounce: debounce,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationFromEnv(key, defaultValue string) (time.Duration, error) {
	return time.ParseDuration(getEnvOrDefault(key, defaultValue))
}
