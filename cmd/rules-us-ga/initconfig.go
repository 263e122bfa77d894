package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosilicoai/rules-us-ga/config"
)

func initConfigCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Write the default user config unless one exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), opts.logLevel)

			path, created, err := config.NewLoader(logger).EnsureUserConfig()
			if err != nil {
				return fmt.Errorf("init config: %w", err)
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s\n", path)
			}
			return nil
		},
	}
}
