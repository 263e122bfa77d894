// Package convert turns Internet Archive OCGA title files into Akoma Ntoso
// documents placed in the corpus tree.
package convert

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/cosilicoai/rules-us-ga/akn"
	"github.com/cosilicoai/rules-us-ga/config"
	"github.com/cosilicoai/rules-us-ga/corpus"
	"github.com/cosilicoai/rules-us-ga/metrics"
	"github.com/cosilicoai/rules-us-ga/ocga"
)

// Skip reasons reported in FileResult.Skipped.
const (
	SkipNoTitleNumber = "no title number in file name"
	SkipNotSelected   = "title not selected"
	SkipNoSections    = "no sections found"
)

// FileResult describes the outcome for one source file.
type FileResult struct {
	Source   string `yaml:"source"`
	Title    int    `yaml:"title,omitempty"`
	Subject  string `yaml:"subject,omitempty"`
	Sections int    `yaml:"sections,omitempty"`
	Output   string `yaml:"output,omitempty"`
	Skipped  string `yaml:"skipped,omitempty"`
	Error    string `yaml:"error,omitempty"`
}

// Converter converts source title files into the corpus.
type Converter struct {
	cfg    *config.Config
	layout corpus.Layout
	opts   akn.Options
	logger *slog.Logger
}

// New creates a converter from configuration.
func New(cfg *config.Config, logger *slog.Logger) (*Converter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &Converter{
		cfg:    cfg,
		layout: corpus.NewLayout(cfg.Corpus.Root),
		opts:   opts,
		logger: logger,
	}, nil
}

// OptionsFromConfig derives document build options from configuration.
func OptionsFromConfig(cfg *config.Config) (akn.Options, error) {
	edition, err := cfg.EditionDate()
	if err != nil {
		return akn.Options{}, fmt.Errorf("edition date: %w", err)
	}
	return akn.Options{
		EditionDate: edition,
		Publication: cfg.Edition.Publication,
		ShowAs:      cfg.Edition.ShowAs,
		Limits: akn.Limits{
			SectionText:    cfg.Limits.SectionText,
			SubsectionText: cfg.Limits.SubsectionText,
			IntroText:      cfg.Limits.IntroText,
			HistoryText:    cfg.Limits.HistoryText,
		},
		Now: time.Now,
	}, nil
}

// SetClock overrides the generation date source.
func (c *Converter) SetClock(now func() time.Time) {
	c.opts.Now = now
}

// Layout returns the corpus layout the converter writes into.
func (c *Converter) Layout() corpus.Layout {
	return c.layout
}

// Sources lists the source files matching the configured pattern, sorted.
func (c *Converter) Sources() ([]string, error) {
	dir := c.cfg.Source.Dir
	matches, err := doublestar.Glob(os.DirFS(dir), c.cfg.Source.Pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", c.cfg.Source.Pattern, err)
	}
	sort.Strings(matches)

	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = filepath.Join(dir, filepath.FromSlash(m))
	}
	return paths, nil
}

// ConvertFile converts a single source file. Files that are not selected
// or carry no sections are skipped without error.
func (c *Converter) ConvertFile(ctx context.Context, path string) (FileResult, error) {
	result := FileResult{Source: path}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	number, ok := ocga.TitleNumberFromFilename(filepath.Base(path))
	if !ok {
		result.Skipped = SkipNoTitleNumber
		c.logger.Info("Skipping source file", "file", filepath.Base(path), "reason", result.Skipped)
		return result, nil
	}
	result.Title = number
	result.Subject, _ = corpus.TitleDescription(number)

	if !c.cfg.WantsTitle(number) {
		result.Skipped = SkipNotSelected
		c.logger.Debug("Skipping source file", "file", filepath.Base(path), "title", number, "reason", result.Skipped)
		return result, nil
	}

	c.logger.Info("Processing title", "title", number, "subject", result.Subject, "file", filepath.Base(path))

	title, err := ocga.ReadTitleFile(path)
	if err != nil {
		metrics.ConversionFailuresTotal.WithLabelValues("read").Inc()
		result.Error = err.Error()
		return result, fmt.Errorf("read title %d: %w", number, err)
	}

	if len(title.Sections) == 0 {
		result.Skipped = SkipNoSections
		c.logger.Warn("No sections found", "title", number, "file", filepath.Base(path))
		return result, nil
	}
	result.Sections = len(title.Sections)

	doc := akn.Build(title, c.opts)
	out := c.layout.StatutePath(number, akn.FileName(number))
	if err := corpus.WriteFileAtomic(out, func(w io.Writer) error {
		return akn.Encode(w, doc)
	}); err != nil {
		metrics.ConversionFailuresTotal.WithLabelValues("write").Inc()
		result.Error = err.Error()
		return result, fmt.Errorf("write title %d: %w", number, err)
	}
	result.Output = out

	metrics.TitlesConvertedTotal.Inc()
	metrics.SectionsConvertedTotal.Add(float64(result.Sections))

	c.logger.Info("Wrote title document",
		"title", number,
		"sections", result.Sections,
		"output", out)

	return result, nil
}

// Run converts every matching source file. Per-file failures are recorded
// in the summary and do not stop the run; only context cancellation and
// glob errors abort it.
func (c *Converter) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{
		RunID:     uuid.New().String(),
		StartedAt: time.Now().UTC(),
		SourceDir: c.cfg.Source.Dir,
		CorpusDir: c.layout.Root,
	}

	sources, err := c.Sources()
	if err != nil {
		return nil, err
	}
	c.logger.Info("Found source files",
		"run_id", summary.RunID,
		"count", len(sources),
		"dir", c.cfg.Source.Dir)

	for _, path := range sources {
		result, err := c.ConvertFile(ctx, path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return summary, ctxErr
			}
			c.logger.Error("Failed to convert source file", "file", filepath.Base(path), "error", err)
		}
		summary.add(result)
	}

	summary.Duration = time.Since(summary.StartedAt)
	c.logger.Info("Conversion summary",
		"run_id", summary.RunID,
		"titles_processed", summary.TitlesProcessed,
		"sections_converted", summary.SectionsConverted,
		"files_written", summary.FilesWritten,
		"failed", summary.Failed,
		"corpus", summary.CorpusDir)

	return summary, nil
}
