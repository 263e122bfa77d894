package validate

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"

	"github.com/cosilicoai/rules-us-ga/akn"
)

// docFacts are the values placement checks need from a document.
type docFacts struct {
	docType string
	workURI string
	number  string
}

// inspect streams a document and returns its structural issues. facts is
// nil when the document is not well-formed or has no usable root.
func inspect(r io.Reader) (*docFacts, []Issue) {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	dec.Entity = make(map[string]string)
	dec.CharsetReader = charset.NewReaderLabel

	var (
		issues    []Issue
		facts     docFacts
		path      []string
		docTypes  int
		eids      = make(map[string]int)
		sawRoot   bool
		hasIdent  bool
		hasWorkID bool
	)
	add := func(code, format string, args ...any) {
		issues = append(issues, Issue{Code: code, Severity: SeverityError, Message: fmt.Sprintf(format, args...)})
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, []Issue{{Code: CodeNotWellFormed, Severity: SeverityError, Message: err.Error()}}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			path = append(path, t.Name.Local)

			if !sawRoot {
				sawRoot = true
				if t.Name.Local != "akomaNtoso" || t.Name.Space != akn.Namespace {
					add(CodeBadRoot, "root element is {%s}%s, want {%s}akomaNtoso", t.Name.Space, t.Name.Local, akn.Namespace)
				}
			}

			switch len(path) {
			case 2:
				docTypes++
				if !akn.DocTypes[t.Name.Local] {
					add(CodeBadDocType, "unknown document type <%s>", t.Name.Local)
				} else if facts.docType == "" {
					facts.docType = t.Name.Local
				}
			case 4:
				if path[2] == "meta" && path[3] == "identification" {
					hasIdent = true
				}
			case 6:
				if path[2] == "meta" && path[3] == "identification" && path[4] == "FRBRWork" {
					switch t.Name.Local {
					case "FRBRthis":
						hasWorkID = true
						facts.workURI = attr(t, "value")
					case "FRBRnumber":
						facts.number = attr(t, "value")
					}
				}
			}

			if id := attr(t, "eId"); id != "" {
				eids[id]++
				if eids[id] == 2 {
					add(CodeDuplicateEID, "eId %q is used more than once", id)
				}
			}

		case xml.EndElement:
			path = path[:len(path)-1]
		}
	}

	if !sawRoot {
		return nil, []Issue{{Code: CodeNotWellFormed, Severity: SeverityError, Message: "document has no root element"}}
	}
	if docTypes != 1 {
		add(CodeBadDocType, "found %d document-type elements, want exactly 1", docTypes)
	}
	if !hasIdent {
		add(CodeMissingIdentification, "no meta/identification block")
	} else if !hasWorkID {
		add(CodeMissingIdentification, "identification has no FRBRWork/FRBRthis")
	}

	return &facts, issues
}

func attr(t xml.StartElement, name string) string {
	for _, a := range t.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
