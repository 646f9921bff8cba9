package sanitizer

import "strings"

// Header collapses each run of carriage-return and line-feed characters into
// a single space. The result is safe to place inside a single header line.
func Header(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	inBreak := false
	for _, r := range s {
		if r == '\r' || r == '\n' {
			if !inBreak {
				b.WriteByte(' ')
				inBreak = true
			}
			continue
		}
		inBreak = false
		b.WriteRune(r)
	}
	return b.String()
}

// HasLineBreak reports whether s contains a CR or LF character.
func HasLineBreak(s string) bool {
	return strings.ContainsAny(s, "\r\n")
}
