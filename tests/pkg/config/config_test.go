package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgaultier/taxiresa/pkg/config"
)

func TestNewConfigDefaults(t *testing.T) {
	os.Clearenv()

	cfg, err := config.NewConfig()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Address)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.IdleTimeout)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "taxiresa", cfg.Database.Name)
	assert.Equal(t, 10, cfg.Database.MaxPoolConns)

	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.Geocode.BaseURL)
	assert.Equal(t, "fr", cfg.Geocode.Country)

	assert.Equal(t, 12*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "33615392250", cfg.Booking.DriverPhone)
	assert.Equal(t, 300*time.Millisecond, cfg.Booking.SuggestDebounce)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestNewConfigFromEnv(t *testing.T) {
	os.Clearenv()
	os.Setenv("SERVER_ADDRESS", ":8080")
	os.Setenv("POSTGRES_HOST", "db.internal")
	os.Setenv("POSTGRES_DB", "reservations")
	os.Setenv("MAX_CONNS", "25")
	os.Setenv("ADMIN_EMAIL", "admin@taxi.example")
	os.Setenv("SESSION_TTL", "2h")
	os.Setenv("DRIVER_WHATSAPP", "33600000000")
	os.Setenv("SUGGEST_DEBOUNCE", "150ms")
	os.Setenv("LOG_LEVEL", "debug")
	defer os.Clearenv()

	cfg, err := config.NewConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "reservations", cfg.Database.Name)
	assert.Equal(t, 25, cfg.Database.MaxPoolConns)
	assert.Equal(t, "admin@taxi.example", cfg.Auth.AdminEmail)
	assert.Equal(t, 2*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "33600000000", cfg.Booking.DriverPhone)
	assert.Equal(t, 150*time.Millisecond, cfg.Booking.SuggestDebounce)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestNewConfigInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"Bad write timeout", "SERVER_WRITE_TIMEOUT", "soon"},
		{"Bad max conns", "MAX_CONNS", "many"},
		{"Bad session ttl", "SESSION_TTL", "forever"},
		{"Bad debounce", "SUGGEST_DEBOUNCE", "fast"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			os.Setenv(tt.key, tt.value)
			defer os.Clearenv()

			_, err := config.NewConfig()
			assert.Error(t, err)
		})
	}
}

func TestDSN(t *testing.T) {
	dc := config.DatabaseConfig{
		Host:         "localhost",
		Port:         "5432",
		Name:         "taxiresa",
		User:         "postgres",
		Password:     "secret",
		MaxPoolConns: 10,
	}

	assert.Equal(t,
		"host=localhost port=5432 dbname=taxiresa user=postgres password=secret pool_max_conns=10",
		dc.DSN())
}
