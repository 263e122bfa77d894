// Package ocga reads the Internet Archive export of the Official Code of
// Georgia Annotated and turns each title into structured sections.
package ocga

import "sort"

// Title is one OCGA title read from a source file.
type Title struct {
	// Number is the title number (48 for Revenue and Taxation).
	Number int

	// Sections are the title's sections in source document order.
	Sections []Section

	// ChapterTitles maps chapter numbers to chapter headings, when the
	// source carries them.
	ChapterTitles map[string]string
}

// Section is a single code section such as 48-7-20.
type Section struct {
	// Number is the section number without the section sign.
	Number string

	// Heading is the catchline from the source Description element.
	Heading string

	// Text is the cleaned plain text of the section.
	Text string

	// RawHTML is the section content markup as it appears in the source.
	RawHTML string

	// History is the revision history note.
	History string

	// Chapter is the chapter component of Number.
	Chapter string

	// Subsections holds the (a), (b) divisions parsed from Text.
	Subsections []Subsection
}

// Subsection is a lettered or numbered division of a section.
type Subsection struct {
	Identifier string
	Text       string
	Children   []Subsection
}

// Chapter groups the sections of one chapter.
type Chapter struct {
	Number   string
	Heading  string
	Sections []Section
}

// Chapters groups sections by chapter in natural numeric order. Sections
// keep their source order inside a chapter. Sections without a chapter
// number are dropped.
func (t *Title) Chapters() []Chapter {
	index := make(map[string]int)
	var chapters []Chapter
	for _, s := range t.Sections {
		if s.Chapter == "" {
			continue
		}
		i, ok := index[s.Chapter]
		if !ok {
			i = len(chapters)
			index[s.Chapter] = i
			chapters = append(chapters, Chapter{
				Number:  s.Chapter,
				Heading: t.ChapterTitles[s.Chapter],
			})
		}
		chapters[i].Sections = append(chapters[i].Sections, s)
	}

	sort.SliceStable(chapters, func(i, j int) bool {
		return NaturalLess(chapters[i].Number, chapters[j].Number)
	})
	return chapters
}

// NaturalLess orders strings by their leading number first, then
// lexically, so "2" < "10" < "10A".
func NaturalLess(a, b string) bool {
	na, ra := leadingNumber(a)
	nb, rb := leadingNumber(b)
	if na != nb {
		return na < nb
	}
	return ra < rb
}

func leadingNumber(s string) (int, string) {
	n, i := 0, 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	if i == 0 {
		return -1, s
	}
	return n, s[i:]
}
