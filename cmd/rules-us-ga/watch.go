package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/cosilicoai/rules-us-ga/convert"
	"github.com/cosilicoai/rules-us-ga/metrics"
)

func watchCmd(opts *globalOptions) *cobra.Command {
	var (
		flags       sourceFlags
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Convert all titles, then re-convert source files as they change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			if err := flags.apply(cfg); err != nil {
				return err
			}
			if metricsAddr != "" {
				cfg.Metrics.Addr = metricsAddr
			}

			conv, err := convert.New(cfg, logger)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if cfg.Metrics.Addr != "" {
				stop := serveMetrics(cfg.Metrics.Addr, logger)
				defer stop()
			}

			summary, err := conv.Run(ctx)
			if err != nil {
				return fmt.Errorf("initial conversion: %w", err)
			}

			w, err := convert.NewWatcher(cfg.Source.Dir, cfg.Source.Pattern, cfg.DebounceDelay(), logger)
			if err != nil {
				return err
			}
			sources := make([]string, 0, len(summary.Files))
			for _, f := range summary.Files {
				sources = append(sources, f.Source)
			}
			w.Prime(sources)

			if err := w.Start(ctx); err != nil {
				_ = w.Stop()
				return fmt.Errorf("start watcher: %w", err)
			}
			defer w.Stop()

			logger.Info("Watching for source changes", "dir", cfg.Source.Dir)
			return conv.Watch(ctx, w)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (overrides config)")

	return cmd
}

// serveMetrics exposes /metrics until the returned stop function runs.
func serveMetrics(addr string, logger *slog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("Metrics server shutdown", "error", err)
		}
	}
}
