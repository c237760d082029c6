package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	path := writeConfig(t, `
http:
  address: ":9090"
auth:
  jwt_secret: "secret"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Address)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "booking_events", cfg.Kafka.BookingEventsTopic)
	assert.Equal(t, time.Second, cfg.Payment.SimulatedDelay())
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, time.Minute, cfg.Booking.HotelsCacheDuration())
}

func TestLoadConfig_SecretFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	path := writeConfig(t, "logging:\n  level: debug\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	path := writeConfig(t, "http:\n  address: \":8080\"\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "hotels", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=hotels sslmode=disable", d.DSN())
}

func TestLoadConfig_Driver(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig(writeConfig(t, "database:\n  driver: memory\n"))
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)

	_, err = LoadConfig(writeConfig(t, "database:\n  driver: mysql\n"))
	assert.Error(t, err)
}
