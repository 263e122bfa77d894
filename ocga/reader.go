package ocga

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html/charset"
)

// maxSourceSize bounds a single title file.
const maxSourceSize = 256 * 1024 * 1024

// indexFrame collects the direct children of one <Index> element.
type indexFrame struct {
	depth       int
	level       string
	caption     *string
	description *string
	content     *string
	history     *string
}

// ReadTitleFile opens and reads a source title file. The title number is
// taken from the file name.
func ReadTitleFile(path string) (*Title, error) {
	number, ok := TitleNumberFromFilename(filepath.Base(path))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoTitleNumber, filepath.Base(path))
	}

	path = filepath.Clean(path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source file: %w", err)
	}
	defer f.Close()

	return ReadTitle(f, number)
}

// ReadTitle parses an Internet Archive OCGA title document. Every <Index>
// element at Level 3 or 4 whose caption carries a section number becomes a
// Section; Level 2 chapter entries supply chapter headings.
func ReadTitle(r io.Reader, number int) (*Title, error) {
	dec := xml.NewDecoder(io.LimitReader(r, maxSourceSize))
	dec.Strict = true
	// No entity expansion beyond the XML predefined set
	dec.Entity = make(map[string]string)
	dec.CharsetReader = charset.NewReaderLabel

	var (
		depth   int
		stack   []*indexFrame
		entries []*indexFrame
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode source xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "Index" {
				f := &indexFrame{depth: depth, level: attrValue(t, "Level")}
				stack = append(stack, f)
				entries = append(entries, f)
				continue
			}
			if len(stack) == 0 || stack[len(stack)-1].depth != depth-1 {
				continue
			}

			field := stack[len(stack)-1].field(t.Name.Local)
			if field == nil {
				continue
			}
			var text string
			if err := dec.DecodeElement(&text, &t); err != nil {
				return nil, fmt.Errorf("decode %s: %w", t.Name.Local, err)
			}
			// DecodeElement consumed the end element
			depth--
			if *field == nil {
				*field = &text
			}

		case xml.EndElement:
			if t.Name.Local == "Index" && len(stack) > 0 && stack[len(stack)-1].depth == depth {
				stack = stack[:len(stack)-1]
			}
			depth--
		}
	}

	title := &Title{
		Number:        number,
		ChapterTitles: make(map[string]string),
	}
	for _, e := range entries {
		switch e.level {
		case "2":
			e.addChapterTitle(title)
		case "3", "4":
			if s, ok := e.section(); ok {
				title.Sections = append(title.Sections, s)
			}
		}
	}

	return title, nil
}

// field returns the slot for a recognised child element name.
func (f *indexFrame) field(name string) **string {
	switch name {
	case "Caption":
		return &f.caption
	case "Description":
		return &f.description
	case "Content":
		return &f.content
	case "RevisionHistory":
		return &f.history
	default:
		return nil
	}
}

func (f *indexFrame) section() (Section, bool) {
	caption := strings.TrimSpace(deref(f.caption))
	if caption == "" || !IsSectionCaption(caption) {
		return Section{}, false
	}

	number := SectionNumber(caption)
	raw := deref(f.content)
	var text string
	if raw != "" {
		text = CleanHTML(raw)
	}

	return Section{
		Number:      number,
		Heading:     strings.TrimSpace(deref(f.description)),
		Text:        text,
		RawHTML:     raw,
		History:     strings.TrimSpace(deref(f.history)),
		Chapter:     ChapterOf(number),
		Subsections: ParseSubsections(text),
	}, true
}

func (f *indexFrame) addChapterTitle(t *Title) {
	m := chapterCaptionRe.FindStringSubmatch(deref(f.caption))
	if m == nil {
		return
	}
	heading := strings.TrimSpace(deref(f.description))
	if heading == "" {
		return
	}
	key := strings.ToUpper(m[1])
	if _, exists := t.ChapterTitles[key]; !exists {
		t.ChapterTitles[key] = heading
	}
}

func attrValue(t xml.StartElement, name string) string {
	for _, a := range t.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
