// Package main provides the rules-us-ga binary entry point.
// rules-us-ga converts the Official Code of Georgia into an Akoma Ntoso
// corpus and checks the corpus layout.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cosilicoai/rules-us-ga/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "rules-us-ga"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalOptions are the flags shared by every subcommand.
type globalOptions struct {
	configPath string
	logLevel   string
}

func rootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Georgia statutes and rules as Akoma Ntoso",
		Long: `rules-us-ga maintains a corpus of Georgia law encoded as Akoma Ntoso 3.0.

Statutes from the Official Code of Georgia Annotated live under
statutes/title-N/ and agency rules under regulations/.

It provides:
- Conversion of Internet Archive OCGA title files into Akoma Ntoso
- Corpus validation (well-formedness, structure, directory placement)
- Watch mode that re-converts changed source files
- Markdown export of a title for review
- init-config to write a default ~/.config/rules-us-ga/config.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(convertCmd(opts))
	cmd.AddCommand(validateCmd(opts))
	cmd.AddCommand(watchCmd(opts))
	cmd.AddCommand(exportCmd(opts))
	cmd.AddCommand(initConfigCmd(opts))

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// newLogger builds the text logger for the requested level.
func newLogger(w io.Writer, logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// setup configures logging and loads the layered configuration.
func (o *globalOptions) setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	logger := newLogger(cmd.ErrOrStderr(), o.logLevel)
	slog.SetDefault(logger)

	cfg, err := config.NewLoader(logger).Load(o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, logger, nil
}
