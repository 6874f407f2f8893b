package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChatRoll(t *testing.T) {
	roll, ok := ParseChatRoll("Thal rolls 87 (1-100)")
	require.True(t, ok)
	assert.Equal(t, "Thal", roll.Participant)
	assert.Equal(t, 87, roll.Value)
	assert.Equal(t, 1, roll.Min)
	assert.Equal(t, 100, roll.Max)
}

func TestParseChatRollTrimsWhitespace(t *testing.T) {
	roll, ok := ParseChatRoll("  Thal rolls 3 (1-100)  ")
	require.True(t, ok)
	assert.Equal(t, 3, roll.Value)
}

func TestParseChatRollKeepsNonCanonicalBounds(t *testing.T) {
	// Bounds policy belongs to the session service, not the parser
	roll, ok := ParseChatRoll("Thal rolls 42 (1-50)")
	require.True(t, ok)
	assert.Equal(t, 1, roll.Min)
	assert.Equal(t, 50, roll.Max)
}

func TestParseChatRollRejectsNonRollLines(t *testing.T) {
	lines := []string{
		"",
		"Thal rolls",
		"Thal rolls abc (1-100)",
		"Thal rolls 87 (1-100) extra",
		"Thal Thal rolls 87 (1-100)",
		"rolls 87 (1-100)",
		"Thal rolled 87 (1-100)",
		"just some chatter",
	}

	for _, line := range lines {
		_, ok := ParseChatRoll(line)
		assert.False(t, ok, "line: %q", line)
	}
}
