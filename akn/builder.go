package akn

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cosilicoai/rules-us-ga/ocga"
)

// DateLayout is the layout of Akoma Ntoso date attributes.
const DateLayout = "2006-01-02"

// TLC organization identifiers.
const (
	OrgLegislature = "ga-legislature"
	OrgCosilico    = "cosilico"
)

// Country is the FRBR country code for Georgia.
const Country = "us-ga"

// Limits caps text lengths in runes. Zero disables a cap.
type Limits struct {
	SectionText    int
	SubsectionText int
	IntroText      int
	HistoryText    int
}

// Options controls document generation.
type Options struct {
	// EditionDate is the publication date of the source edition.
	EditionDate time.Time
	Publication string
	ShowAs      string
	Limits      Limits

	// Now supplies the manifestation generation date.
	Now func() time.Time
}

// DefaultOptions returns options for the 2018 Internet Archive edition.
func DefaultOptions() Options {
	return Options{
		EditionDate: time.Date(2018, time.December, 1, 0, 0, 0, 0, time.UTC),
		Publication: "Official Code of Georgia Annotated",
		ShowAs:      "OCGA",
		Limits: Limits{
			SectionText:    5000,
			SubsectionText: 2000,
			IntroText:      500,
			HistoryText:    1000,
		},
		Now: time.Now,
	}
}

// WorkURI returns the FRBR work URI of an OCGA title.
func WorkURI(title int) string {
	return fmt.Sprintf("/akn/%s/act/ocga/title-%d", Country, title)
}

// SectionEID returns the eId of a section.
func SectionEID(number string) string {
	return "sec_" + number
}

// FileName returns the corpus file name of a title document.
func FileName(title int) string {
	return fmt.Sprintf("us-ga-title-%02d.akn.xml", title)
}

// Build creates the Akoma Ntoso document for a title.
func Build(t *ocga.Title, opts Options) *Document {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	edition := opts.EditionDate.Format(DateLayout)
	workURI := WorkURI(t.Number)
	exprURI := workURI + "/eng@" + edition
	manifURI := exprURI + "/main.xml"

	doc := &Document{
		Xmlns: Namespace,
		Act: Act{
			Name: fmt.Sprintf("title-%d", t.Number),
			Meta: Meta{
				Identification: Identification{
					Source: "#" + OrgCosilico,
					Work: FRBRWork{
						This:    ValueRef{workURI},
						URI:     ValueRef{workURI},
						Date:    DateRef{Date: edition, Name: "publication"},
						Author:  HrefRef{"#" + OrgLegislature},
						Country: ValueRef{Country},
						Number:  ValueRef{strconv.Itoa(t.Number)},
					},
					Expression: FRBRExpression{
						This:     ValueRef{exprURI},
						URI:      ValueRef{exprURI},
						Date:     DateRef{Date: edition, Name: "publication"},
						Author:   HrefRef{"#" + OrgCosilico},
						Language: LanguageRef{"eng"},
					},
					Manifestation: FRBRManifestation{
						This:   ValueRef{manifURI},
						URI:    ValueRef{manifURI},
						Date:   DateRef{Date: opts.Now().Format(DateLayout), Name: "generation"},
						Author: HrefRef{"#" + OrgCosilico},
					},
				},
				Publication: Publication{
					Date:   edition,
					Name:   opts.Publication,
					ShowAs: opts.ShowAs,
				},
				References: References{
					Source: "#" + OrgCosilico,
					Organizations: []TLCOrganization{
						{EID: OrgLegislature, Href: "/ontology/organization/us-ga/legislature", ShowAs: "Georgia General Assembly"},
						{EID: OrgCosilico, Href: "https://cosilico.ai", ShowAs: "Cosilico"},
					},
				},
			},
		},
	}

	var notes []Note
	for _, ch := range t.Chapters() {
		chapter := Chapter{
			EID:     fmt.Sprintf("chp_%d-%s", t.Number, ch.Number),
			Num:     "Chapter " + ch.Number,
			Heading: ch.Heading,
		}
		for _, s := range ch.Sections {
			chapter.Sections = append(chapter.Sections, buildSection(s, opts.Limits))
			if s.History != "" {
				notes = append(notes, Note{
					EID:   SectionEID(s.Number) + "__note_history",
					Class: "history",
					P:     ocga.Truncate(s.History, opts.Limits.HistoryText),
				})
			}
		}
		doc.Act.Body.Chapters = append(doc.Act.Body.Chapters, chapter)
	}

	if len(notes) > 0 {
		doc.Act.Meta.Notes = &Notes{Source: "#" + OrgCosilico, Notes: notes}
	}

	return doc
}

func buildSection(s ocga.Section, limits Limits) Section {
	eid := SectionEID(s.Number)
	sec := Section{
		EID:     eid,
		Num:     s.Number,
		Heading: s.Heading,
	}

	if len(s.Subsections) == 0 {
		sec.Content = &Block{P: ocga.Truncate(s.Text, limits.SectionText)}
		return sec
	}

	if intro := ocga.Intro(s.Text); intro != "" {
		sec.Intro = &Block{P: ocga.Truncate(intro, limits.IntroText)}
	}
	for _, sub := range s.Subsections {
		sec.Subsections = append(sec.Subsections, buildSubsection(eid, sub, limits))
	}
	return sec
}

func buildSubsection(sectionEID string, sub ocga.Subsection, limits Limits) Subsection {
	eid := sectionEID + "__subsec_" + sub.Identifier
	out := Subsection{
		EID: eid,
		Num: "(" + sub.Identifier + ")",
	}
	text := ocga.Truncate(sub.Text, limits.SubsectionText)

	if len(sub.Children) == 0 {
		out.Content = &Block{P: text}
		return out
	}

	if text != "" {
		out.Intro = &Block{P: text}
	}
	for _, child := range sub.Children {
		out.Paragraphs = append(out.Paragraphs, Paragraph{
			EID:     eid + "__para_" + child.Identifier,
			Num:     "(" + child.Identifier + ")",
			Content: Block{P: ocga.Truncate(child.Text, limits.SubsectionText)},
		})
	}
	return out
}
