package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefaultConfig(t *testing.T) {
	assert.NoError(t, Validate(DefaultConfig()))
}

func TestValidateLogLevels(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log.Level = "verbose"
	cfg.Log.FaultLevel = "critical"
	cfg.Log.Format = "xml"

	err := Validate(cfg)

	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.HasErrors())
	assert.Len(t, verr.Errors, 3)
}

func TestValidateUnknownSink(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Chain.Sinks = []string{"log", "pigeon"}

	err := Validate(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"pigeon" is unknown`)
}

func TestValidateSinkPrerequisites(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		errText string
	}{
		{
			name:    "webhook sink without endpoints",
			mutate:  func(c *Config) { c.Chain.Sinks = []string{"webhook"} },
			errText: "no webhooks are configured",
		},
		{
			name:    "smtp sink without addresses",
			mutate:  func(c *Config) { c.Chain.Sinks = []string{"smtp"} },
			errText: "smtp.from/smtp.to are not set",
		},
		{
			name:    "negative delivery timeout",
			mutate:  func(c *Config) { c.Chain.DeliveryTimeout = -1 },
			errText: "must not be negative",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestValidateClipboardWarning(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Chain.Sinks = []string{"clipboard"}

	err := Validate(cfg)

	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.False(t, verr.HasErrors())
	assert.True(t, verr.HasWarnings())
}

func TestValidateWebhooks(t *testing.T) {
	tests := []struct {
		name    string
		wh      WebhookConfig
		wantErr bool
		text    string
	}{
		{
			name:    "missing url",
			wh:      WebhookConfig{Name: "ops"},
			wantErr: true,
			text:    "url is required",
		},
		{
			name:    "bad scheme",
			wh:      WebhookConfig{URL: "ftp://example.com"},
			wantErr: true,
			text:    "not a valid http(s) URL",
		},
		{
			name:    "secret over http",
			wh:      WebhookConfig{URL: "http://example.com/hook", Secret: "s3cret"},
			wantErr: false,
			text:    "non-https endpoint",
		},
		{
			name:    "valid https",
			wh:      WebhookConfig{URL: "https://example.com/hook", Secret: "s3cret"},
			wantErr: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Webhooks = []WebhookConfig{tt.wh}

			err := Validate(cfg)

			if tt.text == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.text)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantErr, verr.HasErrors())
		})
	}
}

func TestValidateSMTP(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SMTP.Port = 70000

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")

	cfg = DefaultConfig()
	cfg.SMTP.Username = "mailer"

	err = Validate(cfg)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.False(t, verr.HasErrors())
	assert.Contains(t, err.Error(), "without smtp.password")
}
