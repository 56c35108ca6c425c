package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/stablecoin"
	stablecoind "github.com/iov-one/stablecoin/cmd/stablecoind/app"
	"github.com/iov-one/stablecoin/commands/server"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/log"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		cfg      server.Config
		logLevel string
	)
	root := &cobra.Command{
		Use:          "stablecoind",
		Short:        "Threshold governed stablecoin node",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			cfg.Logger = logger
			return nil
		},
	}
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".stablecoin")
	root.PersistentFlags().StringVar(&cfg.Home, "home", defaultHome, "directory to store files under")
	root.PersistentFlags().StringVar(&logLevel, "log_level", "info", "minimal level of logged messages: debug, info, error or none")

	root.AddCommand(
		server.InitCmd(stablecoind.GenInitOptions, stablecoind.Initializers(), &cfg),
		server.StartCmd(stablecoind.GenerateApp, &cfg),
		&cobra.Command{
			Use:   "version",
			Short: "Print the app version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Println(stablecoin.Version())
			},
		},
	)
	return root
}

func newLogger(level string) (log.Logger, error) {
	allowed, err := log.AllowLevel(level)
	if err != nil {
		return nil, err
	}
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "stablecoin")
	return log.NewFilter(logger, allowed), nil
}
