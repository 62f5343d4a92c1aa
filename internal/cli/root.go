// Package cli provides the command-line interface for faultline.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/relicta-tech/faultline/internal/config"
)

var (
	// Version information set by main.
	versionInfo struct {
		Version string
		Commit  string
		Date    string
	}

	// Global flags
	cfgFile  string
	verbose  bool
	noColor  bool
	logLevel string

	// Global config
	cfg *config.Config

	// Logger
	logger *log.Logger

	// Styles
	styles = struct {
		Title   lipgloss.Style
		Success lipgloss.Style
		Error   lipgloss.Style
		Warning lipgloss.Style
		Subtle  lipgloss.Style
	}{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Subtle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
)

// SetVersionInfo sets the version information from main.
func SetVersionInfo(version, commit, date string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.Date = date
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "faultline",
	Short: "Uncaught-error reporting for Go applications",
	Long: `Faultline captures uncaught errors and panics, runs them through a
composable plugin chain, renders them with kind-aware formatters, and
delivers reports to log, webhook, mail, or clipboard sinks.

The CLI is a verification harness for a faultline configuration: 'trip'
raises a synthetic fault and reports it through the configured chain.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		return initConfig()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return reportError(rootCmd.Execute())
}

// ExecuteContext runs the root command with a context for graceful shutdown.
func ExecuteContext(ctx context.Context) error {
	return reportError(rootCmd.ExecuteContext(ctx))
}

// errOut is where execution errors are reported.
var errOut io.Writer = os.Stderr

// reportError prints the error since SilenceErrors is enabled on the root
// command; without this a failure would exit with no output at all.
func reportError(err error) error {
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(errOut, "Error: %v\n", err)
	}
	return err
}

func init() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		ReportCaller:    false,
	})

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: faultline.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error, fatal)")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tripCmd)
	rootCmd.AddCommand(checkCmd)
}

// initConfig loads and validates configuration, then applies global flags.
func initConfig() error {
	loader := config.NewLoader()
	if cfgFile != "" {
		loader.WithConfigPath(cfgFile)
	}

	var err error
	cfg, err = loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.Validate(cfg); err != nil {
		var verr *config.ValidationError
		if isValidationWarningOnly(err, &verr) {
			logger.Warn("configuration warnings", "warnings", verr.Warnings)
		} else {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}

	applyGlobalFlags()
	configureLogger()
	return nil
}

// isValidationWarningOnly reports whether err is a ValidationError carrying
// warnings but no hard errors.
func isValidationWarningOnly(err error, out **config.ValidationError) bool {
	verr, ok := err.(*config.ValidationError)
	if !ok {
		return false
	}
	*out = verr
	return !verr.HasErrors()
}

// applyGlobalFlags applies global CLI flags to the configuration.
func applyGlobalFlags() {
	if verbose {
		cfg.Log.Level = "debug"
	} else if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// configureLogger applies log settings from the configuration.
func configureLogger() {
	if cfg.Log.Format == "json" {
		logger.SetFormatter(log.JSONFormatter)
		logger.SetReportTimestamp(true)
	}
	logger.SetLevel(parseLevel(cfg.Log.Level))
}

// parseLevel maps a config level string to a charmbracelet log level.
func parseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}
