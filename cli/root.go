// Package cli implements the htmltok command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/heathj/htmltok/config"
	"github.com/heathj/htmltok/logging"
	"github.com/heathj/htmltok/logging/logfields"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "cli")

// version is set at build time with -ldflags "-X".
var version = "dev"

var (
	configPath  string
	logLevel    string
	logFormat   string
	selfClosing string
	charset     string

	// settings is loaded before every command runs.
	settings *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "htmltok",
	Short: "Tokenize and render the HTML of feed articles",
	Long: `htmltok reads HTML from a file or stdin and prints its token stream,
a plain-text rendering or a short excerpt.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default ~/.htmltok/config.toml)")
	flags.StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warning, error")
	flags.StringVar(&logFormat, "log-format", "", "log format: text, text-ts, json, json-ts")
	flags.StringVar(&selfClosing, "self-closing", "", "self-closing tag mode: keep, drop, normalize")
	flags.StringVar(&charset, "charset", "", "character encoding of the input, e.g. windows-1252 (default utf-8)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadSettings(cmd *cobra.Command, _ []string) error {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = logFormat
	}
	if cmd.Flags().Changed("self-closing") {
		cfg.Tokenizer.SelfClosing = selfClosing
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.SetupLogging(cfg.LogOptions())
	log.WithField(logfields.Path, path).Debug("Loaded configuration")
	settings = cfg
	return nil
}
