package llm

import (
	"regexp"
	"strings"
)

// Conversational greetings are answered locally without spending a
// completion call. The patterns only apply to short messages; anything
// longer than five words is treated as a real question.
var greetingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(hi|hello|hey|greetings|good\s+(morning|afternoon|evening)|howdy)\b`),
	regexp.MustCompile(`\bhow\s+are\s+you\b`),
	regexp.MustCompile(`\bwhat'?s\s+up\b`),
	regexp.MustCompile(`\bnice\s+to\s+meet\b`),
	regexp.MustCompile(`\bpleasure\s+to\s+meet\b`),
}

const greetingResponse = `Hello! 👋 I'm your document assistant. I'm here to help you analyze and understand your uploaded documents.

You can ask me questions about:
- Specific information in your documents
- Summaries of content
- Analysis and insights
- Any clarifications you need

Just ask your question, and I'll do my best to help based on the document content!`

// IsGreeting reports whether text is a short conversational greeting.
func IsGreeting(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if len(strings.Fields(lower)) > 5 {
		return false
	}
	for _, p := range greetingPatterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}
