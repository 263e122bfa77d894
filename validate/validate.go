// Package validate checks the corpus tree: every XML file must be
// well-formed, follow the Akoma Ntoso document structure, and sit in the
// directory its identifiers name.
package validate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/cosilicoai/rules-us-ga/corpus"
	"github.com/cosilicoai/rules-us-ga/metrics"
)

// corpusPattern selects the files subject to validation.
const corpusPattern = "{statutes,regulations}/**/*.xml"

// Severity grades an issue.
type Severity string

// Issue severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue codes.
const (
	CodeNotWellFormed         = "not-well-formed"
	CodeBadRoot               = "bad-root"
	CodeBadDocType            = "bad-doctype"
	CodeMissingIdentification = "missing-identification"
	CodeDuplicateEID          = "duplicate-eid"
	CodeMisplaced             = "misplaced"
	CodeUnknownLocation       = "unknown-location"
)

// Issue is one problem found in a corpus file.
type Issue struct {
	// Path is relative to the corpus root, slash separated.
	Path     string   `yaml:"path"`
	Code     string   `yaml:"code"`
	Severity Severity `yaml:"severity"`
	Message  string   `yaml:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s [%s] %s", i.Path, i.Severity, i.Code, i.Message)
}

// Report is the result of validating a corpus.
type Report struct {
	Root   string  `yaml:"root"`
	Files  int     `yaml:"files"`
	Issues []Issue `yaml:"issues"`
}

// OK reports whether the corpus has no error-severity issues.
func (r *Report) OK() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Errors returns the number of error-severity issues.
func (r *Report) Errors() int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Validator checks corpus files on a bounded worker pool.
type Validator struct {
	layout  corpus.Layout
	workers int
	logger  *slog.Logger
}

// New creates a validator for the corpus rooted at root.
func New(root string, workers int, logger *slog.Logger) *Validator {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{
		layout:  corpus.NewLayout(root),
		workers: workers,
		logger:  logger,
	}
}

// Files lists the corpus files subject to validation, relative to the root.
func (v *Validator) Files() ([]string, error) {
	files, err := doublestar.Glob(os.DirFS(v.layout.Root), corpusPattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("list corpus files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// Run validates every corpus file. A missing statutes/ or regulations/
// directory is not an error.
func (v *Validator) Run(ctx context.Context) (*Report, error) {
	files, err := v.Files()
	if err != nil {
		return nil, err
	}

	report := &Report{Root: v.layout.Root, Files: len(files)}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(v.workers)
	for _, rel := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			issues := v.CheckFile(rel)
			metrics.FilesValidatedTotal.Inc()
			if len(issues) == 0 {
				return nil
			}
			mu.Lock()
			report.Issues = append(report.Issues, issues...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(report.Issues, func(i, j int) bool {
		if report.Issues[i].Path != report.Issues[j].Path {
			return report.Issues[i].Path < report.Issues[j].Path
		}
		return report.Issues[i].Code < report.Issues[j].Code
	})
	for _, i := range report.Issues {
		metrics.ValidationIssuesTotal.WithLabelValues(i.Code).Inc()
	}

	v.logger.Info("Corpus validated",
		"root", v.layout.Root,
		"files", report.Files,
		"issues", len(report.Issues),
		"errors", report.Errors())

	return report, nil
}

// CheckFile validates one file given relative to the corpus root.
func (v *Validator) CheckFile(rel string) []Issue {
	rel = filepath.ToSlash(rel)
	f, err := os.Open(filepath.Join(v.layout.Root, filepath.FromSlash(rel)))
	if err != nil {
		return []Issue{{Path: rel, Code: CodeNotWellFormed, Severity: SeverityError, Message: err.Error()}}
	}
	defer f.Close()

	facts, issues := inspect(f)
	for i := range issues {
		issues[i].Path = rel
	}
	if facts == nil {
		return issues
	}
	return append(issues, checkPlacement(rel, facts)...)
}

// checkPlacement compares the FRBR identifiers with the file's directory.
func checkPlacement(rel string, facts *docFacts) []Issue {
	issue := func(code string, sev Severity, format string, args ...any) Issue {
		return Issue{Path: rel, Code: code, Severity: sev, Message: fmt.Sprintf(format, args...)}
	}

	p := corpus.Classify(rel)
	switch p.Kind {
	case corpus.KindStatute:
		if p.Title == 0 {
			return []Issue{issue(CodeUnknownLocation, SeverityWarning,
				"statute file is not inside a %s/title-N directory", corpus.StatutesDir)}
		}
		if facts.number != "" && facts.number != fmt.Sprint(p.Title) {
			return []Issue{issue(CodeMisplaced, SeverityError,
				"FRBR number %q does not match directory %s", facts.number, corpus.TitleDirName(p.Title))}
		}
	case corpus.KindRegulation:
		if strings.HasPrefix(facts.workURI, "/akn/us-ga/act/ocga/") {
			return []Issue{issue(CodeMisplaced, SeverityError,
				"statute %s is filed under %s/", facts.workURI, corpus.RegulationsDir)}
		}
	}
	return nil
}
