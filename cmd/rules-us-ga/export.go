package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cosilicoai/rules-us-ga/convert"
	"github.com/cosilicoai/rules-us-ga/corpus"
	"github.com/cosilicoai/rules-us-ga/ocga"
)

func exportCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export source titles in review formats",
	}
	cmd.AddCommand(exportMarkdownCmd(opts))
	return cmd
}

func exportMarkdownCmd(opts *globalOptions) *cobra.Command {
	var (
		source string
		title  int
		output string
	)

	cmd := &cobra.Command{
		Use:   "markdown",
		Short: "Render one source title as Markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			if source != "" {
				cfg.Source.Dir = source
			}

			conv, err := convert.New(cfg, logger)
			if err != nil {
				return err
			}
			path, err := findTitleSource(conv, title)
			if err != nil {
				return err
			}

			t, err := ocga.ReadTitleFile(path)
			if err != nil {
				return err
			}
			text, err := ocga.NewMarkdownRenderer().Render(t)
			if err != nil {
				return fmt.Errorf("render title %d: %w", title, err)
			}

			if output == "" {
				_, err := io.WriteString(cmd.OutOrStdout(), text)
				return err
			}
			if err := corpus.WriteFileAtomic(output, func(w io.Writer) error {
				_, err := io.WriteString(w, text)
				return err
			}); err != nil {
				return err
			}
			logger.Info("Wrote Markdown export", "title", title, "path", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Directory holding Internet Archive OCGA title XML files")
	cmd.Flags().IntVar(&title, "title", 0, "Title number to export")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

// findTitleSource returns the first source file for a title number.
func findTitleSource(conv *convert.Converter, title int) (string, error) {
	sources, err := conv.Sources()
	if err != nil {
		return "", err
	}
	for _, path := range sources {
		if n, ok := ocga.TitleNumberFromFilename(filepath.Base(path)); ok && n == title {
			return path, nil
		}
	}
	return "", fmt.Errorf("no source file for title %d", title)
}
