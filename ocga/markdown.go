package ocga

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
)

// MarkdownRenderer renders titles as Markdown for review outside an
// Akoma Ntoso toolchain.
type MarkdownRenderer struct {
	converter *md.Converter
}

// NewMarkdownRenderer creates a renderer backed by html-to-markdown.
func NewMarkdownRenderer() *MarkdownRenderer {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &MarkdownRenderer{converter: converter}
}

// Render writes one Markdown document for the whole title, chapter by
// chapter. Section bodies are converted from the source markup so that
// emphasis and tables survive.
func (r *MarkdownRenderer) Render(t *Title) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Title %d\n", t.Number)

	for _, ch := range t.Chapters() {
		sb.WriteString("\n")
		if ch.Heading != "" {
			fmt.Fprintf(&sb, "## Chapter %s. %s\n", ch.Number, ch.Heading)
		} else {
			fmt.Fprintf(&sb, "## Chapter %s\n", ch.Number)
		}

		for _, s := range ch.Sections {
			sb.WriteString("\n")
			if s.Heading != "" {
				fmt.Fprintf(&sb, "### § %s. %s\n", s.Number, s.Heading)
			} else {
				fmt.Fprintf(&sb, "### § %s\n", s.Number)
			}

			body, err := r.sectionBody(s)
			if err != nil {
				return "", fmt.Errorf("section %s: %w", s.Number, err)
			}
			if body != "" {
				sb.WriteString("\n")
				sb.WriteString(body)
				sb.WriteString("\n")
			}

			if s.History != "" {
				fmt.Fprintf(&sb, "\n*History:* %s\n", s.History)
			}
		}
	}

	return sb.String(), nil
}

func (r *MarkdownRenderer) sectionBody(s Section) (string, error) {
	if strings.TrimSpace(s.RawHTML) == "" {
		return s.Text, nil
	}
	out, err := r.converter.ConvertString(s.RawHTML)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
