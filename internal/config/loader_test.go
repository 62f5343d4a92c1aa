package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "faultline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := NewLoader().WithConfigPath(writeConfig(t, "")).Load()

	require.NoError(t, err)
	assert.Equal(t, "faultline", cfg.App.Name)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "fatal", cfg.Log.FaultLevel)
	assert.Equal(t, []string{"log"}, cfg.Chain.Sinks)
	assert.True(t, cfg.Chain.Exclusive)
	assert.True(t, cfg.Chain.Passthrough)
	assert.Equal(t, 10*time.Second, cfg.Chain.DeliveryTimeout)
	assert.Equal(t, "monokai", cfg.Highlight.Style)
	assert.Equal(t, "RT_", cfg.Highlight.ReasonPrefix)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	loader := NewLoader()
	loader.searchPaths = []string{t.TempDir()}

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := NewLoader().WithConfigPath(filepath.Join(t.TempDir(), "nope.yaml")).Load()
	require.Error(t, err)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
app:
  name: myapp
log:
  level: debug
chain:
  sinks: [log, webhook]
  exclusive: false
webhooks:
  - name: ops
    url: https://hooks.example.com/faults
highlight:
  enabled: true
  style: dracula
`)

	cfg, err := NewLoader().WithConfigPath(path).Load()

	require.NoError(t, err)
	assert.Equal(t, "myapp", cfg.App.Name)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"log", "webhook"}, cfg.Chain.Sinks)
	assert.False(t, cfg.Chain.Exclusive)
	require.Len(t, cfg.Webhooks, 1)
	assert.Equal(t, "ops", cfg.Webhooks[0].Name)
	assert.True(t, cfg.Highlight.Enabled)
	assert.Equal(t, "dracula", cfg.Highlight.Style)
}

func TestLoadExpandsSecretEnvVars(t *testing.T) {
	t.Setenv("WEBHOOK_SECRET", "supersecret")
	t.Setenv("SMTP_PASS", "mailpass")

	path := writeConfig(t, `
webhooks:
  - name: ops
    url: https://hooks.example.com/faults
    secret: ${WEBHOOK_SECRET}
smtp:
  username: mailer
  password: ${SMTP_PASS}
`)

	cfg, err := NewLoader().WithConfigPath(path).Load()

	require.NoError(t, err)
	assert.Equal(t, "supersecret", cfg.Webhooks[0].Secret)
	assert.Equal(t, "mailpass", cfg.SMTP.Password)
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("FAULTLINE_TEST_SET", "value")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"set variable", "${FAULTLINE_TEST_SET}", "value"},
		{"unset variable", "${FAULTLINE_TEST_UNSET}", ""},
		{"unset with default", "${FAULTLINE_TEST_UNSET:-fallback}", "fallback"},
		{"set with default", "${FAULTLINE_TEST_SET:-fallback}", "value"},
		{"plain string", "no expansion here", "no expansion here"},
		{"embedded", "pre-${FAULTLINE_TEST_SET}-post", "pre-value-post"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandEnv(tt.input))
		})
	}
}
