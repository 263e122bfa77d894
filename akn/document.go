// Package akn models the subset of Akoma Ntoso 3.0 used for Georgia code
// titles and builds documents from parsed OCGA titles.
package akn

import "encoding/xml"

// Namespace is the Akoma Ntoso 3.0 namespace URI.
const Namespace = "http://docs.oasis-open.org/legaldocml/ns/akn/3.0"

// DocTypes lists the document-type elements allowed under <akomaNtoso>.
var DocTypes = map[string]bool{
	"act":                true,
	"amendment":          true,
	"amendmentList":      true,
	"bill":               true,
	"debate":             true,
	"debateReport":       true,
	"doc":                true,
	"documentCollection": true,
	"judgment":           true,
	"officialGazette":    true,
	"portion":            true,
	"statement":          true,
}

// Document is the <akomaNtoso> root.
type Document struct {
	XMLName xml.Name `xml:"akomaNtoso"`
	Xmlns   string   `xml:"xmlns,attr"`
	Act     Act      `xml:"act"`
}

// Act is an <act> document.
type Act struct {
	Name string `xml:"name,attr"`
	Meta Meta   `xml:"meta"`
	Body Body   `xml:"body"`
}

// Meta holds document metadata in schema order.
type Meta struct {
	Identification Identification `xml:"identification"`
	Publication    Publication    `xml:"publication"`
	References     References     `xml:"references"`
	Notes          *Notes         `xml:"notes,omitempty"`
}

// Identification carries the FRBR identifiers.
type Identification struct {
	Source        string            `xml:"source,attr"`
	Work          FRBRWork          `xml:"FRBRWork"`
	Expression    FRBRExpression    `xml:"FRBRExpression"`
	Manifestation FRBRManifestation `xml:"FRBRManifestation"`
}

// ValueRef is an element carrying a value attribute.
type ValueRef struct {
	Value string `xml:"value,attr"`
}

// DateRef is an element carrying a date and its meaning.
type DateRef struct {
	Date string `xml:"date,attr"`
	Name string `xml:"name,attr"`
}

// HrefRef is an element pointing at a TLC reference.
type HrefRef struct {
	Href string `xml:"href,attr"`
}

// LanguageRef names an expression language.
type LanguageRef struct {
	Language string `xml:"language,attr"`
}

// FRBRWork identifies the abstract work.
type FRBRWork struct {
	This    ValueRef `xml:"FRBRthis"`
	URI     ValueRef `xml:"FRBRuri"`
	Date    DateRef  `xml:"FRBRdate"`
	Author  HrefRef  `xml:"FRBRauthor"`
	Country ValueRef `xml:"FRBRcountry"`
	Number  ValueRef `xml:"FRBRnumber"`
}

// FRBRExpression identifies one language version of the work.
type FRBRExpression struct {
	This     ValueRef    `xml:"FRBRthis"`
	URI      ValueRef    `xml:"FRBRuri"`
	Date     DateRef     `xml:"FRBRdate"`
	Author   HrefRef     `xml:"FRBRauthor"`
	Language LanguageRef `xml:"FRBRlanguage"`
}

// FRBRManifestation identifies this XML rendering.
type FRBRManifestation struct {
	This   ValueRef `xml:"FRBRthis"`
	URI    ValueRef `xml:"FRBRuri"`
	Date   DateRef  `xml:"FRBRdate"`
	Author HrefRef  `xml:"FRBRauthor"`
}

// Publication names the source publication.
type Publication struct {
	Date   string `xml:"date,attr"`
	Name   string `xml:"name,attr"`
	ShowAs string `xml:"showAs,attr"`
}

// References lists the TLC entries referred to by href attributes.
type References struct {
	Source        string            `xml:"source,attr"`
	Organizations []TLCOrganization `xml:"TLCOrganization"`
}

// TLCOrganization is a referenced organization.
type TLCOrganization struct {
	EID    string `xml:"eId,attr"`
	Href   string `xml:"href,attr"`
	ShowAs string `xml:"showAs,attr"`
}

// Notes holds editorial notes such as revision histories.
type Notes struct {
	Source string `xml:"source,attr"`
	Notes  []Note `xml:"note"`
}

// Note is one editorial note.
type Note struct {
	EID   string `xml:"eId,attr"`
	Class string `xml:"class,attr,omitempty"`
	P     string `xml:"p"`
}

// Body is the normative content.
type Body struct {
	Chapters []Chapter `xml:"chapter"`
}

// Chapter groups sections.
type Chapter struct {
	EID      string    `xml:"eId,attr"`
	Num      string    `xml:"num"`
	Heading  string    `xml:"heading,omitempty"`
	Sections []Section `xml:"section"`
}

// Section is a code section. It carries either Content, or an optional
// Intro followed by Subsections.
type Section struct {
	EID         string       `xml:"eId,attr"`
	Num         string       `xml:"num"`
	Heading     string       `xml:"heading,omitempty"`
	Intro       *Block       `xml:"intro,omitempty"`
	Subsections []Subsection `xml:"subsection"`
	Content     *Block       `xml:"content,omitempty"`
}

// Subsection carries either Content, or an optional Intro followed by
// Paragraphs.
type Subsection struct {
	EID        string      `xml:"eId,attr"`
	Num        string      `xml:"num"`
	Intro      *Block      `xml:"intro,omitempty"`
	Paragraphs []Paragraph `xml:"paragraph"`
	Content    *Block      `xml:"content,omitempty"`
}

// Paragraph is a numbered division of a subsection.
type Paragraph struct {
	EID     string `xml:"eId,attr"`
	Num     string `xml:"num"`
	Content Block  `xml:"content"`
}

// Block is a run of text wrapped in a single <p>.
type Block struct {
	P string `xml:"p"`
}
