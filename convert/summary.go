package convert

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cosilicoai/rules-us-ga/corpus"
)

// Summary reports the outcome of a conversion run.
type Summary struct {
	RunID             string        `yaml:"run_id"`
	StartedAt         time.Time     `yaml:"started_at"`
	Duration          time.Duration `yaml:"duration"`
	SourceDir         string        `yaml:"source_dir"`
	CorpusDir         string        `yaml:"corpus_dir"`
	TitlesProcessed   int           `yaml:"titles_processed"`
	SectionsConverted int           `yaml:"sections_converted"`
	FilesWritten      int           `yaml:"files_written"`
	Failed            int           `yaml:"failed"`
	Files             []FileResult  `yaml:"files"`
}

func (s *Summary) add(r FileResult) {
	s.Files = append(s.Files, r)
	switch {
	case r.Error != "":
		s.Failed++
	case r.Output != "":
		s.TitlesProcessed++
		s.SectionsConverted += r.Sections
		s.FilesWritten++
	}
}

// OK reports whether every selected file converted.
func (s *Summary) OK() bool {
	return s.Failed == 0
}

// WriteYAML encodes the summary as YAML.
func (s *Summary) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return enc.Close()
}

// WriteReport writes the summary to path atomically.
func (s *Summary) WriteReport(path string) error {
	return corpus.WriteFileAtomic(path, s.WriteYAML)
}
