package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
auth:
  passphrase: secret
  jwt_secret: jwt
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Mode)
	assert.Equal(t, ":8443", cfg.HTTP.Addr)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "data/emprestimos.csv", cfg.Storage.File.Path)
	assert.Equal(t, "Emprestimos", cfg.Storage.Spreadsheet.Sheet)
	assert.Equal(t, "sqlite", cfg.Storage.Database.Driver)
	assert.Equal(t, 480, cfg.Auth.SessionTTLMinutes)
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
mode: release
http:
  addr: ":9000"
auth:
  passphrase_hash: "$2a$10$abcdefghijklmnopqrstuv"
  jwt_secret: jwt
  session_ttl_minutes: 30
storage:
  backend: database
  database:
    driver: mysql
    host: db.internal
    port: 3306
    user: verde
    password: pw
    dbname: verde
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, "database", cfg.Storage.Backend)
	assert.Equal(t, "mysql", cfg.Storage.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Storage.Database.Host)
	assert.Equal(t, 30, cfg.Auth.SessionTTLMinutes)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad mode", "mode: staging\nauth: {passphrase: x, jwt_secret: y}\n"},
		{"bad backend", "auth: {passphrase: x, jwt_secret: y}\nstorage: {backend: s3}\n"},
		{"missing jwt secret", "auth: {passphrase: x}\n"},
		{"missing passphrase", "auth: {jwt_secret: y}\n"},
		{"not yaml", "{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestEnvOverridesPath(t *testing.T) {
	path := writeConfig(t, "auth: {passphrase: x, jwt_secret: y}\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("does-not-exist.yaml")
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Mode)
}
