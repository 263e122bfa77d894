package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosilicoai/rules-us-ga/config"
	"github.com/cosilicoai/rules-us-ga/convert"
)

// sourceFlags override the configured source and corpus locations.
type sourceFlags struct {
	source string
	corpus string
	titles []int
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.source, "source", "", "Directory holding Internet Archive OCGA title XML files")
	cmd.Flags().StringVar(&f.corpus, "corpus", "", "Corpus root (defaults to the git toplevel)")
	cmd.Flags().IntSliceVar(&f.titles, "title", nil, "Title number to convert (repeatable, overrides config)")
}

func (f *sourceFlags) apply(cfg *config.Config) error {
	if f.source != "" {
		cfg.Source.Dir = f.source
	}
	if f.corpus != "" {
		cfg.Corpus.Root = f.corpus
	}
	if len(f.titles) > 0 {
		cfg.Source.Titles = f.titles
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func convertCmd(opts *globalOptions) *cobra.Command {
	var (
		flags  sourceFlags
		report string
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert OCGA title files into the corpus",
		Long: `Convert reads Internet Archive OCGA title XML files and writes one
Akoma Ntoso act per title to statutes/title-N/us-ga-title-NN.akn.xml.

Files that fail to convert are reported and the run continues; the
command exits non-zero when any file failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			if err := flags.apply(cfg); err != nil {
				return err
			}

			conv, err := convert.New(cfg, logger)
			if err != nil {
				return err
			}

			summary, err := conv.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("convert: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Titles processed:   %d\n", summary.TitlesProcessed)
			fmt.Fprintf(out, "Sections converted: %d\n", summary.SectionsConverted)
			fmt.Fprintf(out, "Files written:      %d\n", summary.FilesWritten)
			if summary.Failed > 0 {
				fmt.Fprintf(out, "Failed:             %d\n", summary.Failed)
			}

			if report != "" {
				if err := summary.WriteReport(report); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				logger.Info("Wrote conversion report", "path", report)
			}

			if !summary.OK() {
				return fmt.Errorf("%d source file(s) failed to convert", summary.Failed)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&report, "report", "", "Write a YAML run summary to this path")

	return cmd
}
