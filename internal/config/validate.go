package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ValidationError contains all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if len(e.Errors) > 0 {
		parts = append(parts, fmt.Sprintf("Errors:\n  - %s", strings.Join(e.Errors, "\n  - ")))
	}
	if len(e.Warnings) > 0 {
		parts = append(parts, fmt.Sprintf("Warnings:\n  - %s", strings.Join(e.Warnings, "\n  - ")))
	}

	return fmt.Sprintf("configuration validation failed:\n%s", strings.Join(parts, "\n"))
}

// HasErrors returns true if there are validation errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// HasWarnings returns true if there are validation warnings.
func (e *ValidationError) HasWarnings() bool {
	return len(e.Warnings) > 0
}

// Addf adds a formatted error to the validation error.
func (e *ValidationError) Addf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

// Warnf adds a formatted warning to the validation error.
func (e *ValidationError) Warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

var (
	validLevels  = []string{"debug", "info", "warn", "error", "fatal"}
	validFormats = []string{"text", "json"}
	validSinks   = []string{"log", "webhook", "smtp", "clipboard", "stderr"}
)

// Validate checks a configuration for errors and warnings. It returns nil
// when the configuration is valid and warning-free.
func Validate(cfg *Config) error {
	v := &ValidationError{}

	validateLog(cfg, v)
	validateChain(cfg, v)
	validateWebhooks(cfg, v)
	validateSMTP(cfg, v)

	if v.HasErrors() || v.HasWarnings() {
		return v
	}
	return nil
}

func validateLog(cfg *Config, v *ValidationError) {
	if !slices.Contains(validLevels, cfg.Log.Level) {
		v.Addf("log.level %q is invalid (valid: %s)", cfg.Log.Level, strings.Join(validLevels, ", "))
	}
	if !slices.Contains(validLevels, cfg.Log.FaultLevel) {
		v.Addf("log.fault_level %q is invalid (valid: %s)", cfg.Log.FaultLevel, strings.Join(validLevels, ", "))
	}
	if !slices.Contains(validFormats, cfg.Log.Format) {
		v.Addf("log.format %q is invalid (valid: %s)", cfg.Log.Format, strings.Join(validFormats, ", "))
	}
}

func validateChain(cfg *Config, v *ValidationError) {
	for _, s := range cfg.Chain.Sinks {
		if !slices.Contains(validSinks, s) {
			v.Addf("chain.sinks entry %q is unknown (valid: %s)", s, strings.Join(validSinks, ", "))
		}
	}
	if slices.Contains(cfg.Chain.Sinks, "webhook") && len(cfg.Webhooks) == 0 {
		v.Addf("chain.sinks includes webhook but no webhooks are configured")
	}
	if slices.Contains(cfg.Chain.Sinks, "smtp") && (cfg.SMTP.From == "" || len(cfg.SMTP.To) == 0) {
		v.Addf("chain.sinks includes smtp but smtp.from/smtp.to are not set")
	}
	if slices.Contains(cfg.Chain.Sinks, "clipboard") && !cfg.Clipboard.Enabled {
		v.Warnf("chain.sinks includes clipboard but clipboard.enabled is false")
	}
	if cfg.Chain.DeliveryTimeout < 0 {
		v.Addf("chain.delivery_timeout must not be negative")
	}
}

func validateWebhooks(cfg *Config, v *ValidationError) {
	for i, wh := range cfg.Webhooks {
		if wh.URL == "" {
			v.Addf("webhooks[%d]: url is required", i)
			continue
		}
		u, err := url.Parse(wh.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			v.Addf("webhooks[%d]: url %q is not a valid http(s) URL", i, wh.URL)
			continue
		}
		if wh.Secret != "" && u.Scheme != "https" {
			v.Warnf("webhooks[%d]: signing secret configured for non-https endpoint", i)
		}
	}
}

func validateSMTP(cfg *Config, v *ValidationError) {
	if cfg.SMTP.Port < 0 || cfg.SMTP.Port > 65535 {
		v.Addf("smtp.port %d is out of range", cfg.SMTP.Port)
	}
	if cfg.SMTP.Username != "" && cfg.SMTP.Password == "" {
		v.Warnf("smtp.username set without smtp.password")
	}
}
