package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/quorumlab/consensuskit/config"
)

const rootLongDesc = `Run multi-agent LLM simulations.

The consensus command drives a chief architect, a logic strategist, and a
pragmatic critic through a fixed number of discussion rounds, then prints the
chief's scored verdict. The debate command pits an adversarial and a polite
AI persona against each other on a topic.

Configuration is read from a TOML file (see --config); the OPENAI_API_KEY
environment variable supplies credentials when the file does not.`

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "consensus",
		Short:         "Multi-agent LLM simulations",
		Long:          rootLongDesc,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to TOML config file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every model call")

	cmd.AddCommand(newRunCmd(opts))
	cmd.AddCommand(newDebateCmd(opts))
	return cmd
}

// loadConfig reads the configured TOML file, or falls back to defaults plus
// environment credentials when no file was given.
func (o *rootOptions) loadConfig() (config.Config, error) {
	if o.configPath != "" {
		return config.Load(o.configPath)
	}
	cfg := config.DefaultConfig().WithDefaults()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// logger returns a styled stderr logger, nil-safe for the engine options.
func (o *rootOptions) logger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "consensus",
	})
	if o.verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
