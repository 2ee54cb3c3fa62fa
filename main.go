package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/seo-optimizer/contentgate/config"
	"github.com/seo-optimizer/contentgate/logging"
)

// app is the state shared by all commands once the configuration is loaded
type app struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

// exitError ends the process with a specific status code
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "contentgate",
		Short:         "SEO, quality and originality gate for articles before publishing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a config file (yaml, json or toml)")

	root.AddCommand(newServeCmd(a))
	root.AddCommand(newAnalyzeCmd(a))
	root.AddCommand(newExportCmd(a))

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			if exit.msg != "" {
				fmt.Fprintln(os.Stderr, exit.msg)
			}
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
