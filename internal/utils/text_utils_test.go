package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNormalize(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	assert.Equal(t, "urgent", tp.Normalize("URGENT"))
	// Fullwidth forms fold to ASCII
	assert.Equal(t, "verify", tp.Normalize("ＶＥＲＩＦＹ"))
}

func TestTruncateText(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	short := "hello"
	assert.Equal(t, short, tp.TruncateText(short, 100))
	assert.Equal(t, short, tp.TruncateText(short, 0))

	long := strings.Repeat("a", 50)
	truncated := tp.TruncateText(long, 10)
	assert.True(t, strings.HasPrefix(truncated, strings.Repeat("a", 10)))
	assert.Contains(t, truncated, "Content truncated")
}

func TestTruncateTextKeepsValidUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	// Cut in the middle of a multi-byte rune
	truncated := tp.TruncateText("héllo wörld", 2)
	assert.True(t, utf8.ValidString(truncated))
}

func TestSanitizeUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	assert.Equal(t, "clean", tp.SanitizeUTF8("clean"))

	dirty := "bad\xffbyte"
	assert.Equal(t, "badbyte", tp.SanitizeUTF8(dirty))
}
