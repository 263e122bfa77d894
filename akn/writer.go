package akn

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// Encode writes doc as indented XML with an XML declaration.
func Encode(w io.Writer, doc *Document) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode akoma ntoso: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode akoma ntoso: %w", err)
	}

	_, err := io.WriteString(w, "\n")
	return err
}

// Marshal returns the encoded document.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a document written by Encode.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := xml.NewDecoder(r)
	dec.Strict = true
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode akoma ntoso: %w", err)
	}
	return &doc, nil
}
