package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "literal escape sequences and padding",
			in:   "  Revenue was \\n$5M.  ",
			want: "Revenue was $5M.",
		},
		{
			name: "zero width and control characters",
			in:   "ans\u200Bwer\a text\uFEFF",
			want: "answer text",
		},
		{
			name: "literal hex and unicode escapes",
			in:   `total\x1b value é here`,
			want: "total value é here",
		},
		{
			name: "non-ascii text preserved",
			in:   "Résumé of naïve café",
			want: "Résumé of naïve café",
		},
		{
			name: "html tags stripped",
			in:   "<p>The <b>answer</b> is 42.</p>",
			want: "The answer is 42.",
		},
		{
			name: "code fences stripped",
			in:   "```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "intra line whitespace collapsed",
			in:   "first   line\t\there\n\nsecond line",
			want: "first line here\n\nsecond line",
		},
		{
			name: "excess blank lines capped at one",
			in:   "para one\n\n\n\n\npara two",
			want: "para one\n\npara two",
		},
		{
			name: "blank lines preserved as blank",
			in:   "a\n   \nb",
			want: "a\n\nb",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanResponse(tt.in))
		})
	}
}
