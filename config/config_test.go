package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name: "default configuration",
			envVars: map[string]string{
				"ENVIRONMENT": "development",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "development", cfg.Environment)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.False(t, cfg.Database.Enabled())
				assert.Equal(t, "property-dashboard", cfg.Auth.Issuer)
				assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
				assert.Equal(t, 1000, cfg.Audit.BufferSize)
				assert.Equal(t, 2, cfg.Audit.WorkerCount)
				assert.False(t, cfg.Audit.RecordAllowed)
				assert.Equal(t, []string{"http://localhost:5173"}, cfg.HTTP.AllowedOrigins)
				assert.Equal(t, 120, cfg.HTTP.RateLimitRPM)
			},
		},
		{
			name: "production configuration",
			envVars: map[string]string{
				"ENVIRONMENT":     "production",
				"SERVER_PORT":     "9000",
				"DB_HOST":         "prod-db.example.com",
				"DB_PORT":         "5433",
				"DB_USER":         "dashboard",
				"DB_NAME":         "dashboard",
				"AUTH_JWT_SECRET": "s3cret",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.IsProduction())
				assert.False(t, cfg.IsDevelopment())
				assert.Equal(t, 9000, cfg.Server.Port)
				assert.True(t, cfg.Database.Enabled())
				assert.Equal(t, "prod-db.example.com", cfg.Database.Host)
				assert.Equal(t, 5433, cfg.Database.Port)
				assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
			},
		},
		{
			name: "DATABASE_URL takes precedence",
			envVars: map[string]string{
				"DATABASE_URL": "postgres://u:p@db.internal:6543/audit?sslmode=require",
				"DB_HOST":      "ignored",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Database.Enabled())
				assert.Empty(t, cfg.Database.Host)
				assert.Equal(t, "postgres://u:p@db.internal:6543/audit?sslmode=require", cfg.Database.DSN())
				assert.Equal(t, "host=db.internal port=6543 database=audit", cfg.Database.LogString())
			},
		},
		{
			name: "custom timeouts, audit and edge settings",
			envVars: map[string]string{
				"SERVER_READ_TIMEOUT":  "60s",
				"SERVER_WRITE_TIMEOUT": "90s",
				"AUDIT_BUFFER_SIZE":    "50",
				"AUDIT_WORKERS":        "4",
				"AUDIT_RECORD_ALLOWED": "true",
				"CORS_ALLOWED_ORIGINS": "https://app.example.com, https://admin.example.com",
				"RATE_LIMIT_RPM":       "0",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 90*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, 50, cfg.Audit.BufferSize)
				assert.Equal(t, 4, cfg.Audit.WorkerCount)
				assert.True(t, cfg.Audit.RecordAllowed)
				assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.HTTP.AllowedOrigins)
				assert.Equal(t, 0, cfg.HTTP.RateLimitRPM)
			},
		},
		{
			name: "observability configuration",
			envVars: map[string]string{
				"LOG_LEVEL":  "debug",
				"LOG_FORMAT": "text",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Observability.LogLevel)
				assert.Equal(t, "text", cfg.Observability.LogFormat)
			},
		},
		{
			name: "PORT env var takes precedence over SERVER_PORT",
			envVars: map[string]string{
				"PORT":        "9443",
				"SERVER_PORT": "9000",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9443, cfg.Server.Port)
			},
		},
		{
			name: "production without jwt secret",
			envVars: map[string]string{
				"ENVIRONMENT": "production",
			},
			wantErr: true,
		},
		{
			name: "db host without user",
			envVars: map[string]string{
				"DB_HOST": "localhost",
				"DB_NAME": "dashboard",
			},
			wantErr: true,
		},
		{
			name: "negative rate limit",
			envVars: map[string]string{
				"RATE_LIMIT_RPM": "-5",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Clearenv()

			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			cfg, err := New(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func validConfig() *Config {
	return &Config{
		Environment:   "development",
		Auth:          AuthConfig{TokenTTL: time.Hour},
		Audit:         AuditConfig{BufferSize: 10, WorkerCount: 1},
		Observability: ObservabilityConfig{LogLevel: "info"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid development config without database",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name: "valid config with database",
			mutate: func(c *Config) {
				c.Database = DatabaseConfig{Host: "localhost", User: "user", Database: "db"}
			},
			wantErr: false,
		},
		{
			name: "missing database user",
			mutate: func(c *Config) {
				c.Database = DatabaseConfig{Host: "localhost", Database: "db"}
			},
			wantErr: true,
			errMsg:  "database user is required",
		},
		{
			name: "missing database name",
			mutate: func(c *Config) {
				c.Database = DatabaseConfig{Host: "localhost", User: "user"}
			},
			wantErr: true,
			errMsg:  "database name is required",
		},
		{
			name: "zero token ttl",
			mutate: func(c *Config) {
				c.Auth.TokenTTL = 0
			},
			wantErr: true,
			errMsg:  "token TTL",
		},
		{
			name: "zero audit workers",
			mutate: func(c *Config) {
				c.Audit.WorkerCount = 0
			},
			wantErr: true,
			errMsg:  "audit buffer size and worker count",
		},
		{
			name: "missing log level",
			mutate: func(c *Config) {
				c.Observability.LogLevel = ""
			},
			wantErr: true,
			errMsg:  "log level is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		want        bool
	}{
		{"production", "production", true},
		{"prod", "prod", true},
		{"development", "development", false},
		{"staging", "staging", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Environment: tt.environment}
			assert.Equal(t, tt.want, cfg.IsProduction())
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "testuser",
		Password: "testpass",
		Database: "testdb",
		SSLMode:  "disable",
	}

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, cfg.DSN())
	assert.Equal(t, "host=localhost port=5432 database=testdb", cfg.LogString())
}

func TestServerConfig_Address(t *testing.T) {
	cfg := ServerConfig{
		Host: "0.0.0.0",
		Port: 8080,
	}

	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
}

func TestGetEnvAsBool(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue bool
		want         bool
	}{
		{"true", "true", false, true},
		{"false", "false", true, false},
		{"empty value", "", true, true},
		{"invalid bool", "not-a-bool", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			if tt.value != "" {
				os.Setenv("TEST_BOOL", tt.value)
			}
			assert.Equal(t, tt.want, getEnvAsBool("TEST_BOOL", tt.defaultValue))
		})
	}
}

func TestGetEnvAsList(t *testing.T) {
	os.Clearenv()
	assert.Equal(t, []string{"a"}, getEnvAsList("TEST_LIST", []string{"a"}))

	os.Setenv("TEST_LIST", " , ")
	assert.Equal(t, []string{"a"}, getEnvAsList("TEST_LIST", []string{"a"}))

	os.Setenv("TEST_LIST", "x, y ,z")
	assert.Equal(t, []string{"x", "y", "z"}, getEnvAsList("TEST_LIST", nil))
}
