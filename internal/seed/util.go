package seed

import (
	"strings"
	"time"
	"unicode"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

// slug turns a display name into a lower-case dotted email local part.
func slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '.':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), ".") {
				b.WriteByte('.')
			}
		}
	}
	s := strings.Trim(b.String(), ".")
	if s == "" {
		return "user"
	}
	return s
}
