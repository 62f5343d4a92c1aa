package config

import (
	"errors"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	ferrors "github.com/relicta-tech/faultline/internal/errors"
)

// envVarPattern matches ${VAR} or ${VAR:-default} syntax in sensitive fields.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// Loader handles configuration loading and merging.
type Loader struct {
	v           *viper.Viper
	configPath  string
	searchPaths []string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix("FAULTLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return &Loader{
		v:           v,
		searchPaths: []string{"."},
	}
}

// WithConfigPath sets an explicit config file path.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithSearchPaths adds directories to search for config files.
func (l *Loader) WithSearchPaths(paths ...string) *Loader {
	l.searchPaths = append(l.searchPaths, paths...)
	return l
}

// Load loads the configuration.
func (l *Loader) Load() (*Config, error) {
	const op = "config.Load"

	l.setDefaults()

	if err := l.loadConfigFile(); err != nil {
		return nil, ferrors.ConfigWrap(err, op, "failed to load config file")
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, ferrors.ConfigWrap(err, op, "failed to unmarshal config")
	}

	l.expandEnvVars(cfg)

	return cfg, nil
}

// setDefaults sets default values using Viper.
func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.v.SetDefault("app.name", defaults.App.Name)

	l.v.SetDefault("log.level", defaults.Log.Level)
	l.v.SetDefault("log.format", defaults.Log.Format)
	l.v.SetDefault("log.fault_level", defaults.Log.FaultLevel)

	l.v.SetDefault("chain.sinks", defaults.Chain.Sinks)
	l.v.SetDefault("chain.exclusive", defaults.Chain.Exclusive)
	l.v.SetDefault("chain.passthrough", defaults.Chain.Passthrough)
	l.v.SetDefault("chain.delivery_timeout", defaults.Chain.DeliveryTimeout)

	l.v.SetDefault("highlight.enabled", defaults.Highlight.Enabled)
	l.v.SetDefault("highlight.style", defaults.Highlight.Style)
	l.v.SetDefault("highlight.reason_prefix", defaults.Highlight.ReasonPrefix)

	l.v.SetDefault("smtp.host", defaults.SMTP.Host)
	l.v.SetDefault("smtp.port", defaults.SMTP.Port)
}

// loadConfigFile reads the config file if one is found. A missing file is
// not an error; defaults and environment variables still apply.
func (l *Loader) loadConfigFile() error {
	if l.configPath != "" {
		l.v.SetConfigFile(l.configPath)
		return l.v.ReadInConfig()
	}

	l.v.SetConfigName("faultline")
	l.v.SetConfigType("yaml")
	for _, p := range l.searchPaths {
		l.v.AddConfigPath(p)
	}
	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home + "/.config/faultline")
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

// expandEnvVars expands ${VAR} references in sensitive fields so secrets
// stay out of config files.
func (l *Loader) expandEnvVars(cfg *Config) {
	for i := range cfg.Webhooks {
		cfg.Webhooks[i].Secret = expandEnv(cfg.Webhooks[i].Secret)
	}
	cfg.SMTP.Username = expandEnv(cfg.SMTP.Username)
	cfg.SMTP.Password = expandEnv(cfg.SMTP.Password)
}

// expandEnv expands ${VAR} and ${VAR:-default} in s.
func expandEnv(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if v, ok := os.LookupEnv(groups[1]); ok {
			return v
		}
		return groups[2]
	})
}
