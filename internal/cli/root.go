// Package cli provides the command-line interface for paykit.
package cli

import (
	"fmt"
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var log = logging.Logger("paykit/cli")

// Options holds the global flags shared by every command.
type Options struct {
	ConfigPath string
	Server     string
	BaseURL    string
	Token      string
	LogLevel   string
	Format     string
}

// Execute creates and runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the paykit command tree.
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:           "paykit",
		Short:         "Payments API client and development tools",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := setupLogging(opts.LogLevel); err != nil {
				return err
			}
			switch opts.Format {
			case "json", "yaml", "yml":
				return nil
			default:
				return fmt.Errorf("unsupported format: %s", opts.Format)
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "Path to config file (default .paykit.yml when present)")
	flags.StringVar(&opts.Server, "server", "", "Named server: production or sandbox")
	flags.StringVar(&opts.BaseURL, "base-url", "", "API base URL, overrides --server")
	flags.StringVar(&opts.Token, "token", "", "Access token (default $PAYKIT_TOKEN)")
	flags.StringVar(&opts.LogLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	flags.StringVar(&opts.Format, "format", "json", "Output format: json or yaml")

	rootCmd.AddCommand(
		newDecodeCommand(opts),
		newValidateCommand(opts),
		newCustomersCommand(opts),
		newMetersCommand(opts),
		newEventsCommand(opts),
		newMockCommand(),
		newGenerateCommand(),
	)
	return rootCmd
}

// setupLogging writes colorized logs to a terminal and JSON otherwise.
func setupLogging(level string) error {
	lvl, err := logging.LevelFromString(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := logging.GetConfig()
	cfg.Stderr = true
	cfg.Stdout = false
	cfg.Level = lvl
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		cfg.Format = logging.ColorizedOutput
	} else {
		cfg.Format = logging.JSONOutput
	}
	logging.SetupLogging(cfg)
	return nil
}
