// Package extractor converts uploaded document bytes to plain text entirely
// in memory. Each supported container has its own Extractor; Process routes a
// byte buffer to the right one based on the file extension.
package extractor

import (
	"errors"
	"fmt"
	"strings"

	"docassist/internal/model"
)

// ErrUnsupportedFormat is returned by Process for extensions outside the
// supported set. Inside zip archives unsupported entries are reported inline
// instead (see archive.go).
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Extractor converts the raw bytes of one document to a text string.
type Extractor interface {
	Extract(data []byte) (string, error)
}

var extractors = map[string]Extractor{
	".pdf":  pdfExtractor{},
	".txt":  textExtractor{},
	".docx": docxExtractor{},
	".xlsx": xlsxExtractor{},
}

var formats = map[string]model.Format{
	".pdf":  model.FormatPDF,
	".txt":  model.FormatTXT,
	".docx": model.FormatDOCX,
	".xlsx": model.FormatXLSX,
}

// Process extracts text from data according to the file extension
// (lowercased, leading dot included). Zip archives yield per-entry results;
// every other supported format yields a single text string.
func Process(data []byte, ext string) (*model.ExtractedContent, error) {
	ext = strings.ToLower(ext)

	if ext == ".zip" {
		entries, err := extractArchive(data)
		if err != nil {
			return nil, err
		}
		return &model.ExtractedContent{Format: model.FormatZIP, Entries: entries}, nil
	}

	ex, ok := extractors[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	text, err := ex.Extract(data)
	if err != nil {
		return nil, err
	}
	return &model.ExtractedContent{Format: formats[ext], Text: text}, nil
}
