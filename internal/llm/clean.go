package llm

import (
	"regexp"
	"strings"
)

var (
	// Zero-width characters, C0 controls and DEL that models sometimes emit.
	controlChars = regexp.MustCompile("[\u200B-\u200D\uFEFF\x00-\x08\x0B\x0C\x0E-\x1F\x7F]")

	// Escape sequences that leaked through as literal text.
	hexEscapes        = regexp.MustCompile(`\\x[0-9a-fA-F]{2}`)
	unicodeEscapes    = regexp.MustCompile(`\\u[0-9a-fA-F]{4}`)
	whitespaceEscapes = regexp.MustCompile(`\\[rnt]`)

	htmlTags = regexp.MustCompile(`<[^>]+>`)

	codeFenceOpen  = regexp.MustCompile("(?m)^```[a-zA-Z0-9_]*\n?")
	codeFenceClose = regexp.MustCompile("(?m)\n?```$")

	spaceRuns = regexp.MustCompile(`[ \t]+`)
	blankRuns = regexp.MustCompile(`\n{3,}`)
)

// CleanResponse normalizes a raw completion: strips control characters,
// leaked escape sequences, HTML tags and stray code fences, collapses runs
// of horizontal whitespace inside lines, and caps consecutive blank lines
// at one. It never fails; if anything goes wrong the trimmed original is
// returned instead.
func CleanResponse(content string) (cleaned string) {
	defer func() {
		if r := recover(); r != nil {
			cleaned = strings.TrimSpace(content)
		}
	}()

	out := controlChars.ReplaceAllString(content, "")
	out = hexEscapes.ReplaceAllString(out, "")
	out = unicodeEscapes.ReplaceAllString(out, "")
	out = whitespaceEscapes.ReplaceAllString(out, "")
	out = htmlTags.ReplaceAllString(out, "")
	out = codeFenceOpen.ReplaceAllString(out, "")
	out = codeFenceClose.ReplaceAllString(out, "")

	// Collapse spaces within content lines, keep blank lines blank.
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			lines[i] = ""
			continue
		}
		lines[i] = spaceRuns.ReplaceAllString(trimmed, " ")
	}
	out = strings.Join(lines, "\n")

	out = blankRuns.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
