package textutil

import (
	"fmt"
	"strings"
	"unicode"
)

// SanitizeTerminalText makes file names safe to draw: control characters
// become '?' and invisible formatting runes (bidi overrides, zero-width
// joiners, BOM) are spelled out as ⟪U+XXXX⟫ so a name cannot disguise
// itself or inject escape sequences.
func SanitizeTerminalText(text string) string {
	if !strings.ContainsFunc(text, needsEscape) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 8)
	for _, r := range text {
		switch {
		case r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		case unicode.IsControl(r):
			b.WriteByte('?')
		case unicode.Is(unicode.Cf, r):
			fmt.Fprintf(&b, "⟪U+%04X⟫", r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsEscape(r rune) bool {
	return unicode.IsControl(r) || unicode.Is(unicode.Cf, r)
}
