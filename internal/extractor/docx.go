package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

type docxExtractor struct{}

// Extract reads a DOCX container (ZIP+XML) and returns paragraph text in
// document order followed by table cell text.
func (docxExtractor) Extract(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx container: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", err)
		}
		defer rc.Close()
		return parseDocumentXML(rc)
	}
	return "", fmt.Errorf("word/document.xml not found in docx")
}

// parseDocumentXML walks the WordprocessingML token stream. Body paragraphs
// are newline-separated; table cells are collected separately, space-joined
// within a row with a newline per row, and appended after the paragraphs.
func parseDocumentXML(r io.Reader) (string, error) {
	var paragraphs, tables, cell strings.Builder
	tableDepth := 0

	decoder := xml.NewDecoder(r)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "t":
				var run struct {
					Text string `xml:",chardata"`
				}
				if err := decoder.DecodeElement(&run, &t); err != nil {
					continue
				}
				if tableDepth > 0 {
					cell.WriteString(run.Text)
				} else {
					paragraphs.WriteString(run.Text)
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth--
			case "p":
				if tableDepth == 0 {
					paragraphs.WriteString("\n")
				}
			case "tc":
				if tableDepth > 0 {
					tables.WriteString(cell.String())
					tables.WriteString(" ")
					cell.Reset()
				}
			case "tr":
				if tableDepth > 0 {
					tables.WriteString("\n")
				}
			}
		}
	}
	return paragraphs.String() + tables.String(), nil
}
