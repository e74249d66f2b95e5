package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:                "8080",
		DB:                  DBConfig{Host: "localhost", Port: 5432, User: "postgres", Name: "school_mis", SSLMode: "disable"},
		MaxOpenConns:        25,
		MaxIdleConns:        5,
		JWTSecret:           "secret",
		Timezone:            "UTC",
		AcademicMonthOffset: 2,
		AMQPExchange:        "fees",
		ReconcileAt:         "01:00",
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ACADEMIC_MONTH_OFFSET", "")
	t.Setenv("RECONCILE_SCHOOLS", " school-1, ,school-2 ")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2, cfg.AcademicMonthOffset)
	assert.Equal(t, []string{"school-1", "school-2"}, cfg.ReconcileSchools)
	assert.Contains(t, cfg.DSN(), "host=")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/fees?sslmode=disable")
	t.Setenv("DB_MAX_OPEN_CONNS", "10")
	t.Setenv("DB_MAX_IDLE_CONNS", "not-a-number")
	t.Setenv("ACADEMIC_MONTH_OFFSET", "3")

	cfg := Load()
	assert.Equal(t, "postgres://u:p@db:5432/fees?sslmode=disable", cfg.DSN())
	assert.Equal(t, 10, cfg.MaxOpenConns)
	assert.Equal(t, 5, cfg.MaxIdleConns)
	assert.Equal(t, 3, cfg.AcademicMonthOffset)
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"port not numeric", func(c *Config) { c.Port = "http" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "between 1 and 65535"},
		{"no database", func(c *Config) { c.DB.Host = "" }, "DATABASE_URL"},
		{"idle above open", func(c *Config) { c.MaxIdleConns = 30 }, "DB_MAX_IDLE_CONNS"},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET"},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, "invalid timezone"},
		{"bad offset", func(c *Config) { c.AcademicMonthOffset = 12 }, "academic month offset"},
		{"bad amqp scheme", func(c *Config) { c.AMQPURL = "http://broker" }, "AMQP URL scheme"},
		{"bad reconcile time", func(c *Config) {
			c.ReconcileSchools = []string{"school-1"}
			c.ReconcileAt = "1am"
		}, "RECONCILE_AT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateAggregatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "x"
	cfg.JWTSecret = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}
