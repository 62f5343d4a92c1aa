// Package config provides configuration management for faultline.
package config

import "time"

// Config is the root configuration for faultline.
type Config struct {
	// App identifies the reporting application.
	App AppConfig `mapstructure:"app" json:"app"`
	// Log configures the structured logger.
	Log LogConfig `mapstructure:"log" json:"log"`
	// Chain configures the fault handling chain.
	Chain ChainConfig `mapstructure:"chain" json:"chain"`
	// Highlight configures the optional syntax-highlighting capability.
	Highlight HighlightConfig `mapstructure:"highlight" json:"highlight"`
	// Webhooks configures webhook delivery endpoints.
	Webhooks []WebhookConfig `mapstructure:"webhooks" json:"webhooks,omitempty"`
	// SMTP configures mail delivery.
	SMTP SMTPConfig `mapstructure:"smtp" json:"smtp"`
	// Clipboard configures clipboard delivery.
	Clipboard ClipboardConfig `mapstructure:"clipboard" json:"clipboard"`
}

// AppConfig identifies the reporting application.
type AppConfig struct {
	// Name is the application name stamped on reports.
	Name string `mapstructure:"name" json:"name"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	// Level is the log level (debug, info, warn, error, fatal).
	Level string `mapstructure:"level" json:"level"`
	// Format is the log format (text, json).
	Format string `mapstructure:"format" json:"format"`
	// FaultLevel is the severity uncaught faults are logged at
	// (default "fatal", the critical analogue).
	FaultLevel string `mapstructure:"fault_level" json:"fault_level"`
}

// ChainConfig configures the fault handling chain.
type ChainConfig struct {
	// Sinks lists the delivery sinks the notify plugin fans out to, in
	// order: log, webhook, smtp, clipboard, stderr.
	Sinks []string `mapstructure:"sinks" json:"sinks"`
	// Exclusive makes a delivered notification claim the fault.
	Exclusive bool `mapstructure:"exclusive" json:"exclusive"`
	// Passthrough enables the platform-default stderr dump when the chain
	// elects to pass through.
	Passthrough bool `mapstructure:"passthrough" json:"passthrough"`
	// DeliveryTimeout bounds one notification delivery.
	DeliveryTimeout time.Duration `mapstructure:"delivery_timeout" json:"delivery_timeout"`
}

// HighlightConfig configures the optional syntax-highlighting capability.
type HighlightConfig struct {
	// Enabled turns on chroma HTML highlighting. When false, origins are
	// rendered as plain preformatted text.
	Enabled bool `mapstructure:"enabled" json:"enabled"`
	// Style is the chroma style name (default "monokai").
	Style string `mapstructure:"style" json:"style"`
	// ReasonPrefix marks structured causes whose origins carry traces.
	ReasonPrefix string `mapstructure:"reason_prefix" json:"reason_prefix"`
}

// WebhookConfig configures one webhook delivery endpoint.
type WebhookConfig struct {
	// Name identifies the endpoint.
	Name string `mapstructure:"name" json:"name"`
	// URL is the POST target.
	URL string `mapstructure:"url" json:"url"`
	// Secret enables HMAC-SHA256 signing (can use env var expansion).
	Secret string `mapstructure:"secret" json:"secret,omitempty"`
	// Headers are additional request headers.
	Headers map[string]string `mapstructure:"headers" json:"headers,omitempty"`
	// Timeout bounds one request.
	Timeout time.Duration `mapstructure:"timeout" json:"timeout,omitempty"`
	// RetryCount is the number of retries after the first attempt.
	RetryCount int `mapstructure:"retry_count" json:"retry_count,omitempty"`
	// RetryDelay is the initial backoff delay.
	RetryDelay time.Duration `mapstructure:"retry_delay" json:"retry_delay,omitempty"`
}

// SMTPConfig configures mail delivery.
type SMTPConfig struct {
	// Host is the SMTP server hostname.
	Host string `mapstructure:"host" json:"host"`
	// Port is the SMTP server port.
	Port int `mapstructure:"port" json:"port"`
	// From is the sender address.
	From string `mapstructure:"from" json:"from"`
	// To are the recipient addresses.
	To []string `mapstructure:"to" json:"to"`
	// SubjectPrefix is prepended to report titles.
	SubjectPrefix string `mapstructure:"subject_prefix" json:"subject_prefix,omitempty"`
	// Username and Password enable PLAIN auth (can use env var expansion).
	Username string `mapstructure:"username" json:"username,omitempty"`
	Password string `mapstructure:"password" json:"password,omitempty"`
}

// ClipboardConfig configures clipboard delivery.
type ClipboardConfig struct {
	// Enabled allows the clipboard sink to be wired.
	Enabled bool `mapstructure:"enabled" json:"enabled"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{Name: "faultline"},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			FaultLevel: "fatal",
		},
		Chain: ChainConfig{
			Sinks:           []string{"log"},
			Exclusive:       true,
			Passthrough:     true,
			DeliveryTimeout: 10 * time.Second,
		},
		Highlight: HighlightConfig{
			Enabled:      false,
			Style:        "monokai",
			ReasonPrefix: "RT_",
		},
		SMTP: SMTPConfig{
			Host: "localhost",
			Port: 25,
		},
	}
}
