package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reflow-ui/reflow/internal/config"
	"github.com/reflow-ui/reflow/internal/metrics"
	"github.com/reflow-ui/reflow/internal/preview"
)

func serveCmd() *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the preview server",
		Long: `Start the preview server.

The server mounts the demo application into an in-memory host and
mirrors it to browsers over WebSocket. Every render pushes a fresh
HTML snapshot; browser events flow back into the live tree.

Endpoints:
  /         preview shell
  /ws       snapshot and event stream
  /metrics  Prometheus metrics
  /healthz  health and live-node count

Examples:
  reflow serve
  reflow serve --addr=:9000
  reflow serve --config=reflow.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, configPath)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "reflow.toml", "Path to config file")

	return cmd
}

func runServe(addr, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}

	log := newLogger(cfg.LogLevel)
	metrics.Init(metrics.WithNamespace(cfg.MetricsNamespace))

	printBanner()
	info("preview server on %s", cfg.Addr)
	info("press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := preview.NewServer(cfg, log)
	if err := srv.Run(ctx); err != nil {
		return err
	}
	success("server stopped")
	return nil
}

// newLogger builds the process logger at the configured level.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}
