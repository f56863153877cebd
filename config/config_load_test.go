package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
env:
  serviceName: birdy
  log:
    level: info
http:
  port: 8080
storage:
  driver: memory
auth:
  maxActiveSessions: 0
  confirmationTTL: 2h
`

func TestLoadWithEnv_OverridesYAMLWithEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "birdy.yaml"), []byte(testConfigYAML), 0o600))
	t.Chdir(dir)
	t.Setenv("AUTH_MAXACTIVESESSIONS", "3")

	cfg, err := LoadWithEnv[Config]("birdy")
	require.NoError(t, err)

	assert.Equal(t, "birdy", cfg.Env.ServiceName)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	require.NotNil(t, cfg.Storage)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 3, cfg.Auth.MaxActiveSessions)
	assert.Equal(t, 2*time.Hour, cfg.Auth.ConfirmationTTL)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("absent")
	assert.Error(t, err)
}
