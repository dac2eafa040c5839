// Tapcalc is a terminal calculator backed by a remote evaluation service.
//
// It renders a keypad, builds an expression as keys are pressed and sends
// it to an HTTP endpoint (POST /calculate) for evaluation. Results are
// formatted to a bounded width for display.
//
// Usage:
//
//	tapcalc [command] [flags]
//
// Running without arguments launches the interactive keypad.
// See 'tapcalc --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/muurk/tapcalc/internal/config"
	"github.com/muurk/tapcalc/internal/logging"
	"github.com/muurk/tapcalc/internal/version"
)

// errReported marks failures that were already shown to the user
var errReported = errors.New("reported")

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// Global flags
var (
	configPath   string
	endpointFlag string
	logLevel     string
	logFile      string
)

// cfg is the effective configuration, resolved before any command runs
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "tapcalc",
	Short: "Terminal calculator with remote evaluation",
	Long: `A keypad calculator for the terminal.

Expressions are built from key presses and evaluated by a remote service
(POST {"expression": "..."} to the configured endpoint).

If no command is specified, the interactive keypad will launch automatically.`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
	RunE:              runKeypad,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/tapcalc/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&endpointFlag, "endpoint", "", "Evaluation endpoint URL")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); default silent")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", version.Name, version.Full())
	},
}

// loadSettings resolves configuration (flags over environment over file
// over defaults) and initializes logging
func loadSettings(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		p, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	c, err := config.Load(path)
	if err != nil {
		return err
	}
	if endpointFlag != "" {
		c.Endpoint.URL = endpointFlag
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if logFile != "" {
		c.Log.File = logFile
	}
	cfg = c

	return logging.Initialize(cfg.Log.Level, cfg.Log.File)
}

// resolvedConfigPath returns --config or the platform default
func resolvedConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}
