package server

import (
	"net/http"

	"github.com/iov-one/stablecoin/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind    = "bind"
	flagDebug   = "debug"
	flagMetrics = "metrics"

	// DefaultBind is the address the abci server listens on by default.
	DefaultBind = "tcp://localhost:26658"
)

// Options are the settings an application is generated with.
type Options struct {
	Home   string
	Logger log.Logger
	Debug  bool
	// Registerer collects the application metrics. It is never nil.
	Registerer prometheus.Registerer
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(*Options) (abci.Application, error)

// StartCmd returns a command that generates the application and serves it
// over an abci socket until the process is stopped.
func StartCmd(gen AppGenerator, cfg *Config) *cobra.Command {
	var (
		bind        string
		debug       bool
		metricsAddr string
	)
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the abci server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cfg.Logger
			registry := prometheus.NewRegistry()
			app, err := gen(&Options{
				Home:       cfg.Home,
				Logger:     logger,
				Debug:      debug,
				Registerer: registry,
			})
			if err != nil {
				return err
			}

			if metricsAddr != "" {
				go serveMetrics(logger, metricsAddr, registry)
			}

			logger.Info("Starting ABCI app", "bind", bind)
			svr, err := server.NewServer(bind, "socket", app)
			if err != nil {
				return errors.Wrapf(errors.ErrInvalidInput, "cannot create listener: %s", err)
			}
			svr.SetLogger(logger.With("module", "abci-server"))
			if err := svr.Start(); err != nil {
				return errors.Wrapf(errors.ErrInvalidState, "cannot start server: %s", err)
			}

			cmn.TrapSignal(logger, func() {
				if err := svr.Stop(); err != nil {
					logger.Error("Stopping ABCI server", "err", err)
				}
			})
			// TrapSignal exits the process on SIGINT or SIGTERM
			select {}
		},
	}
	cmd.Flags().StringVar(&bind, flagBind, DefaultBind, "address server listens on")
	cmd.Flags().BoolVar(&debug, flagDebug, false, "call stack returned on error")
	cmd.Flags().StringVar(&metricsAddr, flagMetrics, "", "address the prometheus metrics are served on, empty disables")
	return cmd
}

func serveMetrics(logger log.Logger, addr string, g prometheus.Gatherer) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	logger.Info("Serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("Metrics server failed", "err", err)
	}
}
