package extractor

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"docassist/internal/model"
)

// extractArchive processes every non-directory entry of a zip archive,
// dispatching each to the extractor for its extension. A failure on one
// entry is recorded as inline placeholder text for that entry only;
// a corrupt archive is a hard error.
func extractArchive(data []byte) ([]model.ArchiveEntry, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip archive: %w", err)
	}

	entries := make([]model.ArchiveEntry, 0, len(zr.File))
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/") || f.FileInfo().IsDir() {
			continue
		}
		entries = append(entries, model.ArchiveEntry{
			Path: f.Name,
			Text: extractEntry(f),
		})
	}
	return entries, nil
}

func extractEntry(f *zip.File) string {
	ext := strings.ToLower(path.Ext(f.Name))
	ex, ok := extractors[ext]
	if !ok {
		return fmt.Sprintf("[Unsupported file type: %s]", ext)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Sprintf("[Error processing file: %v]", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Sprintf("[Error processing file: %v]", err)
	}

	text, err := ex.Extract(data)
	if err != nil {
		return fmt.Sprintf("[Error processing file: %v]", err)
	}
	return text
}
