package extractor

import "unicode/utf8"

type textExtractor struct{}

// Extract decodes data as UTF-8, falling back to Latin-1 when the bytes are
// not valid UTF-8. The fallback maps every byte to the code point of the same
// value, so text extraction never fails.
func (textExtractor) Extract(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes), nil
}
