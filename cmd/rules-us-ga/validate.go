package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosilicoai/rules-us-ga/validate"
)

func validateCmd(opts *globalOptions) *cobra.Command {
	var (
		corpusRoot string
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check corpus files for well-formedness, structure, and placement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			if corpusRoot != "" {
				cfg.Corpus.Root = corpusRoot
			}
			if workers > 0 {
				cfg.Checks.Workers = workers
			}

			report, err := validate.New(cfg.Corpus.Root, cfg.Checks.Workers, logger).Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("validate: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, issue := range report.Issues {
				fmt.Fprintln(out, issue)
			}
			fmt.Fprintf(out, "%d file(s) checked, %d issue(s), %d error(s)\n",
				report.Files, len(report.Issues), report.Errors())

			if !report.OK() {
				return fmt.Errorf("corpus has %d error(s)", report.Errors())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&corpusRoot, "corpus", "", "Corpus root (defaults to the git toplevel)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Files checked concurrently (overrides config)")

	return cmd
}
