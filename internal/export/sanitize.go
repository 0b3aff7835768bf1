package export

import "strings"

// Sanitize drops every character the document fonts cannot draw, keeping
// printable ASCII, then trims surrounding whitespace. Line breaks become
// spaces since each drawn string occupies exactly one line. It is
// idempotent.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n':
			b.WriteByte(' ')
		case r >= 0x20 && r <= 0x7e:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
