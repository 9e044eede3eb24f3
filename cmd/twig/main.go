package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootCmdConfig struct {
	verbose    bool
	configPath string
	*settings
	logger     *zap.Logger
	ctx        context.Context
	cancelFunc context.CancelFunc
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{}
	rootCmd := &cobra.Command{
		Use:   "twig",
		Short: "twig is a tool to grow binary decision trees",
		Long:  `A tool to grow binary decision trees from two-attribute labelled data, test them, and use them to classify points`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.Setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			config.Teardown()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log debug entries")
	rootCmd.PersistentFlags().StringVar(&(config.configPath), "config", "", "path to a YML configuration file (defaults to "+defaultConfigPath+" if it exists)")
	rootCmd.AddCommand(versionCmd(), growCmd(config), testCmd(config), classifyCmd(config), showCmd(config), datasetCmd(config))
	return rootCmd
}

// Setup loads the configuration and builds the logger
// every command uses.
func (rcc *rootCmdConfig) Setup() error {
	cfg, err := loadConfig(rcc.configPath)
	if err != nil {
		return err
	}
	rcc.settings = cfg
	rcc.logger, err = newLogger(cfg.Log, rcc.verbose)
	if err != nil {
		return err
	}
	rcc.logger.Debug("configuration loaded", zap.String("path", rcc.configPath))
	return nil
}

// Teardown flushes the logger and cancels the context.
func (rcc *rootCmdConfig) Teardown() {
	if rcc.cancelFunc != nil {
		rcc.cancelFunc()
	}
	if rcc.logger != nil {
		rcc.logger.Sync()
	}
}

func (rcc *rootCmdConfig) Context() context.Context {
	if rcc.ctx == nil {
		rcc.ctx, rcc.cancelFunc = context.WithCancel(context.Background())
	}
	return rcc.ctx
}

// fail prints the error on STDERR and exits with the given code.
func (rcc *rootCmdConfig) fail(code int, err error) {
	fmt.Fprintln(os.Stderr, err)
	rcc.Teardown()
	os.Exit(code)
}
