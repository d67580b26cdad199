package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 30, cfg.Agent.PollIntervalSeconds)
	assert.Equal(t, 75, cfg.Agent.IntentThreshold)
	assert.Equal(t, "#gtm-opportunities", cfg.Notify.Channel)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.API.Enabled)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Agent.IntentThreshold, cfg.Agent.IntentThreshold)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hunter.yaml")
	content := `
agent:
  poll_interval_seconds: 5
  intent_threshold: 90
  accounts_path: /tmp/accounts.json
notify:
  channel: "#test-channel"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Agent.PollIntervalSeconds)
	assert.Equal(t, 90, cfg.Agent.IntentThreshold)
	assert.Equal(t, "/tmp/accounts.json", cfg.Agent.AccountsPath)
	assert.Equal(t, "#test-channel", cfg.Notify.Channel)
	// Untouched sections keep defaults
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("HUNTER_TEST_CHANNEL", "#from-env")

	dir := t.TempDir()
	path := filepath.Join(dir, "hunter.yaml")
	content := `
notify:
  channel: "${HUNTER_TEST_CHANNEL}"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "#from-env", cfg.Notify.Channel)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hunter.yaml")
	require.NoError(t, os.WriteFile(path, []byte("agent: [not a map"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestAddress(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.Host = "0.0.0.0"
	cfg.API.Port = 9000

	assert.Equal(t, "0.0.0.0:9000", cfg.Address())
}
