package openai

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10), "short input untouched")
	assert.Equal(t, "abcde", truncate("abcdefgh", 5))

	// A cap landing mid-rune backs off to the previous boundary.
	s := strings.Repeat("€", 10) // 30 bytes of three-byte runes
	cut := truncate(s, 8)
	assert.True(t, utf8.ValidString(cut))
	assert.Equal(t, strings.Repeat("€", 2), cut)
}
