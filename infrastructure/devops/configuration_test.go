package devops

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

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8090
  timezone: UTC
database:
  driver: mysql
  dsn: "root:development@tcp(localhost:3306)/hr?parseTime=true"
auth:
  jwtSecret: file-secret
  tokenTTL: 12h
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, "/api", cfg.Server.BasePath)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "abdurrehman@gmail.com", cfg.Seed.AdminEmail)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, "auth:\n  jwtSecret: file-secret\n")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEED_ADMIN_NAME", "Ops Admin")
	t.Setenv("SEED_ADMIN_EMAIL", "admin@x.com")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "Ops Admin", cfg.Seed.AdminName)
	assert.Equal(t, "admin@x.com", cfg.Seed.AdminEmail)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing secret", "database:\n  driver: sqlite\n"},
		{"bad driver", "auth:\n  jwtSecret: s\ndatabase:\n  driver: postgres\n"},
		{"bad timezone", "auth:\n  jwtSecret: s\nserver:\n  timezone: Mars/Olympus\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseDBEntries(t *testing.T) {
	entries, err := ParseDBEntries(`
- name: hrportal
  host: db.internal
  username: app
  password: secret
`)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "app:secret@tcp(db.internal:3306)/hrportal?charset=utf8mb4&parseTime=True&loc=UTC", entries[0].GetDSN())
}
