package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/tapcalc/internal/calcclient"
	"github.com/muurk/tapcalc/internal/controller"
	"github.com/muurk/tapcalc/internal/discovery"
	"github.com/muurk/tapcalc/internal/display"
	"github.com/muurk/tapcalc/internal/expression"
	"github.com/muurk/tapcalc/internal/format"
	"github.com/muurk/tapcalc/internal/logging"
	"github.com/muurk/tapcalc/internal/tui"
	"github.com/muurk/tapcalc/internal/ui"
)

// Command flags
var (
	discoverSave  bool
	discoverFirst bool
	configForce   bool
)

func init() {
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(configCmd)

	discoverCmd.Flags().BoolVar(&discoverSave, "save", false, "Write the first endpoint found to the config file")
	discoverCmd.Flags().BoolVar(&discoverFirst, "first", false, "Stop at the first endpoint that answers")

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd, configShowCmd, configPathCmd)
}

// newController builds the controller every front end shares
func newController() *controller.Controller {
	client := calcclient.New(cfg.Endpoint.URL, calcclient.WithTimeout(cfg.Endpoint.Timeout))
	presenter := display.NewPresenter(display.WithDurations(cfg.Display.HighlightDuration, cfg.Display.ErrorDuration))

	return controller.New(client,
		controller.WithPresenter(presenter),
		controller.WithHighlightThreshold(cfg.Display.HighlightThreshold),
		controller.WithResetAfterError(cfg.Keypad.ResetAfterError),
	)
}

func runKeypad(cmd *cobra.Command, args []string) error {
	// The keypad owns the terminal, so enabled logs go to a file
	if cfg.Log.Level != "" && cfg.Log.File == "" {
		path, err := resolvedConfigPath()
		if err != nil {
			return err
		}
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return errors.Wrap(err, "create log directory")
		}
		if err := logging.Initialize(cfg.Log.Level, filepath.Join(dir, "tapcalc.log")); err != nil {
			return err
		}
	}

	model := tui.New(newController(),
		tui.WithEndpoint(cfg.Endpoint.URL),
		tui.WithContext(cmd.Context()),
	)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "keypad error")
	}
	return nil
}

// evalCmd evaluates an expression once
var evalCmd = &cobra.Command{
	Use:   "eval <expression>...",
	Short: "Evaluate an expression and print the display text",
	Long: `Evaluate an expression exactly as if it had been typed on the keypad.

Each character is pressed in turn ("*" and "x" become ×, "/" becomes ÷,
spaces are ignored), then equals is pressed. The printed value is what the
display would show.`,
	Example: `  # Simple arithmetic
  tapcalc eval 2+2

  # Arguments are joined, so shell spacing does not matter
  tapcalc eval 12 '*' 3

  # Against another endpoint
  tapcalc eval 1/3 --endpoint http://10.0.0.7:5000/calculate`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func runEval(cmd *cobra.Command, args []string) error {
	p := ui.NewPrinter(cmd.OutOrStdout())
	ctrl := newController()

	for _, label := range keypadLabels(strings.Join(args, "")) {
		ctrl.Press(label)
	}
	typed := ctrl.Expression()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	frame, err := ctrl.Submit(ctx)
	if err != nil {
		p.PrintError(typed, err, troubleshootingFor(err))
		return errReported
	}

	p.PrintSuccess(typed, []ui.Detail{
		{Key: "Endpoint", Value: cfg.Endpoint.URL},
		{Key: "Result", Value: frame.Text},
	})
	return nil
}

// keypadLabels splits typed text into keypad labels. An equals sign ends the
// input since the command submits once after the last label.
func keypadLabels(text string) []string {
	labels := make([]string, 0, len(text))
	for _, r := range text {
		switch r {
		case ' ', '\t':
			continue
		case '=':
			return labels
		case '*', 'x':
			labels = append(labels, expression.Multiply)
		case '/':
			labels = append(labels, expression.Divide)
		default:
			labels = append(labels, string(r))
		}
	}
	return labels
}

func troubleshootingFor(err error) []string {
	switch {
	case calcclient.IsTransport(err):
		return []string{
			fmt.Sprintf("Check the evaluation service is running at %s", cfg.Endpoint.URL),
			"Use --endpoint or 'tapcalc discover' to find another service",
		}
	case calcclient.IsProtocol(err):
		return []string{"The endpoint did not answer with {\"result\": n} or {\"error\": s}"}
	default:
		return nil
	}
}

// formatCmd prints the display form of numbers
var formatCmd = &cobra.Command{
	Use:   "format <number>...",
	Short: "Format numbers the way the display does",
	Example: `  tapcalc format 12345678901 0.30000000000000004 -- -0.000000123`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := ui.NewPrinter(cmd.OutOrStdout())
		for _, arg := range args {
			s, ok := format.String(arg)
			if !ok {
				return errors.Errorf("not a number: %q", arg)
			}
			p.PrintValue(s)
		}
		return nil
	},
}

// discoverCmd browses mDNS for evaluation services
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find evaluation services on the local network",
	Long: `Browse mDNS for evaluation services advertising the configured
service type (default "_calculate._tcp").`,
	Example: `  # Browse with the configured timeout
  tapcalc discover

  # Remember the first service that answers
  tapcalc discover --first --save`,
	RunE: runDiscover,
}

func runDiscover(cmd *cobra.Command, args []string) error {
	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader("Endpoint Discovery", "tapcalc discover",
		ui.Detail{Key: "Service", Value: cfg.Discovery.Service},
		ui.Detail{Key: "Domain", Value: cfg.Discovery.Domain},
		ui.Detail{Key: "Timeout", Value: cfg.Discovery.Timeout.String()},
	)

	scanner := discovery.NewScanner()
	scanner.Service = cfg.Discovery.Service
	scanner.Domain = cfg.Discovery.Domain
	scanner.Timeout = cfg.Discovery.Timeout

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var endpoints []*discovery.Endpoint
	if discoverFirst {
		ep, err := scanner.First(ctx)
		switch {
		case errors.Is(err, discovery.ErrNotFound):
			logging.Debug("No endpoint found", zap.Error(err))
		case err != nil:
			return errors.Wrap(err, "discovery failed")
		default:
			endpoints = append(endpoints, ep)
		}
	} else {
		var err error
		endpoints, err = scanner.Scan(ctx)
		if err != nil {
			return errors.Wrap(err, "discovery failed")
		}
	}

	if len(endpoints) == 0 {
		p.PrintError("No endpoints found", errors.Errorf("no %s service answered", cfg.Discovery.Service), []string{
			"Ensure the evaluation service advertises itself over mDNS",
			"Try increasing TAPCALC_DISCOVERY_TIMEOUT for slower networks",
			"Use --endpoint to specify the URL manually",
		})
		return errReported
	}

	for _, ep := range endpoints {
		p.PrintValue(ep.String())
	}

	if discoverSave {
		path, err := resolvedConfigPath()
		if err != nil {
			return err
		}
		cfg.Endpoint.URL = endpoints[0].URL()
		if err := cfg.Save(path); err != nil {
			return err
		}
		p.PrintValue("Saved " + cfg.Endpoint.URL + " to " + path)
	}
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvedConfigPath()
		if err != nil {
			return err
		}
		if !configForce {
			if _, err := os.Stat(path); err == nil {
				return errors.Errorf("%s already exists (use --force to overwrite)", path)
			}
		}
		if err := cfg.Save(path); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvedConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}
