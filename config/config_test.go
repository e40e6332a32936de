package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "development", cfg.Environment)
	assert.Zero(t, cfg.MailboxCapacity)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.CORSOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LEDGER_ADDR", ":9090")
	t.Setenv("LEDGER_MAILBOX_CAPACITY", "64")
	t.Setenv("LEDGER_REQUEST_TIMEOUT", "250ms")
	t.Setenv("LEDGER_CORS_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 64, cfg.MailboxCapacity)
	assert.Equal(t, 250*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoadReadsDotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LEDGER_EVENT_BUFFER=16\n"), 0o600))
	t.Setenv("LEDGER_EVENT_BUFFER", "")
	os.Unsetenv("LEDGER_EVENT_BUFFER")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 16, cfg.EventBuffer)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("LEDGER_MAILBOX_CAPACITY", "-1")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.ErrorContains(t, err, "LEDGER_MAILBOX_CAPACITY")
}
