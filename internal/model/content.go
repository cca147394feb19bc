package model

import (
	"fmt"
	"strings"
)

// Format identifies the container a document's text was extracted from.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatTXT  Format = "txt"
	FormatDOCX Format = "docx"
	FormatXLSX Format = "xlsx"
	FormatZIP  Format = "zip"
)

// ArchiveEntry is the extracted text (or an inline placeholder) for one file
// inside an uploaded archive. Entries keep the order of the archive directory.
type ArchiveEntry struct {
	Path string `json:"path"`
	Text string `json:"text"`
}

// ExtractedContent is the persisted text derived from a Document's original
// bytes. Text is set for single-file formats; Entries for zip archives.
type ExtractedContent struct {
	Format  Format         `json:"format"`
	Text    string         `json:"content,omitempty"`
	Entries []ArchiveEntry `json:"entries,omitempty"`
}

// Flatten returns the content as a single text blob suitable for prompting.
// Archive entries are rendered as "--- <path> ---" sections separated by
// blank lines.
func (c *ExtractedContent) Flatten() string {
	if c.Format != FormatZIP {
		return c.Text
	}
	parts := make([]string, 0, len(c.Entries))
	for _, e := range c.Entries {
		parts = append(parts, fmt.Sprintf("--- %s ---\n%s", e.Path, e.Text))
	}
	return strings.Join(parts, "\n\n")
}
