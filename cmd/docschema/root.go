package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/artpar/docschema/config"
	"github.com/artpar/docschema/core/catalog"
	"github.com/artpar/docschema/core/registry"
)

var (
	// Global flags
	cfgFile   string
	logLevel  string
	logFormat string

	// Set by the root command before any subcommand runs
	cfg    *config.Config
	logger zerolog.Logger
)

// errRejected is returned when at least one input failed validation.
// The details have already been printed.
var errRejected = errors.New("one or more records were rejected")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docschema",
	Short: "Validate documents against the record schemas",
	Long: `docschema checks untyped documents against the record schemas
(User, Product, Program, Event, Inquiry) and prints typed records.

Examples:
  docschema schemas list
  docschema schemas show user
  docschema validate inquiry --file inquiries.json
  cat users.yaml | docschema validate user --all`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "docschema.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: json or console")
}

// loadConfig reads the config file when present and applies flag overrides.
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.Logging.Level = logLevel
	}
	if logFormat != "" {
		loaded.Logging.Format = logFormat
	}

	cfg = loaded
	logger = setupLogger(cfg.Logging, cmd.ErrOrStderr())
	return nil
}

// setupLogger builds the logger. Logs go to w so stdout carries only records.
func setupLogger(lc config.LoggingConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(lc.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if lc.Format == "console" {
		output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		return zerolog.New(output).Level(level).With().Timestamp().Logger()
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// loadRegistry returns the built-in schemas plus any configured extras.
func loadRegistry() (*registry.Registry, error) {
	dir := ""
	if cfg != nil {
		dir = cfg.Schemas.Dir
	}
	reg, err := catalog.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	if dir != "" {
		logger.Debug().Str("dir", dir).Int("schemas", reg.Len()).Msg("extra schemas loaded")
	}
	return reg, nil
}
