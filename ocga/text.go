package ocga

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// ws matches ASCII whitespace plus Unicode space separators; the source
// content is full of non-breaking spaces after division markers.
const ws = `[\s\p{Zs}]`

var (
	sectionCaptionRe = regexp.MustCompile(`\d+-\d+-\d+`)
	sectionNumberRe  = regexp.MustCompile(`\d+-\d+-\d+(?:\.\d+)?`)
	titleFileRe      = regexp.MustCompile(`title\.(\d+)\.xml$`)
	chapterCaptionRe = regexp.MustCompile(`(?i)^` + ws + `*chapter` + ws + `+(\d+[A-Z]?)\b`)
	blankLinesRe     = regexp.MustCompile(`\n` + ws + `*\n+`)

	subsectionMarkerRe = regexp.MustCompile(`\(([a-z])\)` + ws + `+`)
	paragraphMarkerRe  = regexp.MustCompile(`\((\d+)\)` + ws + `+`)
	// citationTailRe matches text ending in a division name or a Code
	// section number, so a marker right after it is a cross-reference.
	citationTailRe = regexp.MustCompile(`(?i)(?:\b(?:subsections?|paragraphs?|subparagraphs?|divisions?|through)|\d+-\d+-\d+(?:\.\d+)?)` + ws + `*$`)
)

// IsSectionCaption reports whether an Index caption names a code section.
func IsSectionCaption(caption string) bool {
	return sectionCaptionRe.MatchString(caption)
}

// SectionNumber extracts the section number from a caption such as
// "48-1-2" or "§ 48-7-20.1". Captions without one are turned into a
// dash-separated token.
func SectionNumber(caption string) string {
	if m := sectionNumberRe.FindString(caption); m != "" {
		return m
	}
	return strings.NewReplacer(" ", "-", ".", "-").Replace(caption)
}

// ChapterOf returns the chapter component of a section number.
func ChapterOf(sectionNumber string) string {
	parts := strings.Split(sectionNumber, "-")
	if len(parts) > 1 {
		return parts[1]
	}
	return ""
}

// TitleNumberFromFilename extracts the title number from a source file
// name like gov.ga.ocga.2018.title.48.xml.
func TitleNumberFromFilename(name string) (int, bool) {
	m := titleFileRe.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// CleanHTML turns section content markup into plain text. Line breaks and
// paragraph starts become newlines, every other tag is dropped, entities
// are decoded, and runs of blank lines collapse into one.
func CleanHTML(content string) string {
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(content))
loop:
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF, or a read error on a strings.Reader, which cannot happen
			break loop
		case html.TextToken:
			sb.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "br", "p":
				sb.WriteByte('\n')
			}
		}
	}

	text := blankLinesRe.ReplaceAllString(sb.String(), "\n\n")
	return norm.NFC.String(strings.TrimSpace(text))
}

// ParseSubsections splits section text into (a)-level subsections with
// (1)-level paragraph children. Text before the first subsection marker is
// not part of any subsection; see Intro.
//
// Markers only count when they continue the sequence: (a), (b), (c) for
// subsections and (1), (2), (3) for paragraphs within one subsection.
// Anything else, such as "subsection (a) of this Code section", stays in
// the surrounding text.
func ParseSubsections(text string) []Subsection {
	var subsections []Subsection
	for _, sub := range divisions(text, subsectionMarkerRe, "a", nextLetter) {
		paragraphs := divisions(sub.body, paragraphMarkerRe, "1", nextNumber)

		direct := sub.body
		if len(paragraphs) > 0 {
			direct = sub.body[:paragraphs[0].start]
		}

		var children []Subsection
		for _, p := range paragraphs {
			children = append(children, Subsection{
				Identifier: p.id,
				Text:       strings.TrimSpace(p.body),
			})
		}

		subsections = append(subsections, Subsection{
			Identifier: sub.id,
			Text:       strings.TrimSpace(direct),
			Children:   children,
		})
	}
	return subsections
}

// Intro returns the text preceding the first subsection marker, or "" when
// the section opens directly with (a) or has no subsections.
func Intro(text string) string {
	subs := divisions(text, subsectionMarkerRe, "a", nextLetter)
	if len(subs) == 0 {
		return ""
	}
	return strings.TrimSpace(text[:subs[0].start])
}

// division is one marked part of a text. body runs from just after the
// marker to the next accepted marker.
type division struct {
	id    string
	start int
	body  string
}

// divisions returns the parts of s introduced by markers matching re whose
// identifiers run first, next(first), and so on. Out-of-sequence markers
// and markers that read as citations are ignored.
func divisions(s string, re *regexp.Regexp, first string, next func(string) string) []division {
	type marker struct {
		id         string
		start, end int
	}

	var accepted []marker
	want := first
	for _, m := range re.FindAllStringSubmatchIndex(s, -1) {
		if want == "" {
			break
		}
		if s[m[2]:m[3]] != want || isCitation(s[:m[0]]) {
			continue
		}
		accepted = append(accepted, marker{id: want, start: m[0], end: m[1]})
		want = next(want)
	}

	out := make([]division, 0, len(accepted))
	for i, m := range accepted {
		stop := len(s)
		if i+1 < len(accepted) {
			stop = accepted[i+1].start
		}
		out = append(out, division{id: m.id, start: m.start, body: s[m.end:stop]})
	}
	return out
}

// isCitation reports whether a marker following before is part of a
// reference rather than the start of a division: it is glued to a word or
// number, or comes right after a word like "subsection".
func isCitation(before string) bool {
	if r, _ := utf8.DecodeLastRuneInString(before); r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
		return true
	}
	if len(before) > 32 {
		before = before[len(before)-32:]
	}
	return citationTailRe.MatchString(before)
}

func nextLetter(id string) string {
	if id >= "z" {
		return ""
	}
	return string(rune(id[0] + 1))
}

func nextNumber(id string) string {
	n, err := strconv.Atoi(id)
	if err != nil {
		return ""
	}
	return strconv.Itoa(n + 1)
}

// Truncate cuts s to at most n runes. n <= 0 means no limit.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
