package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsGreeting(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"hello", true},
		{"Hi there!", true},
		{"HEY", true},
		{"good morning", true},
		{"Good    Evening", true},
		{"howdy partner", true},
		{"how are you", true},
		{"what's up", true},
		{"whats up", true},
		{"nice to meet you", true},
		{"a pleasure to meet you", true},
		{"  hello  ", true},

		{"", false},
		{"What is the total revenue?", false},
		{"summarize the document", false},
		// Greeting words buried in a long sentence are not greetings.
		{"hello can you please summarize the attached document for me", false},
		{"highest value in the sheet", false}, // "hi" must match on a word boundary
		{"they said hi to everyone there today maybe", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, IsGreeting(tt.text))
		})
	}
}
