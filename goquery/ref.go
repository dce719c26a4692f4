package goquery

import (
	"net/url"
	"strings"
)

// parseRef parses an href or src attribute value the way browsers read
// them: leading and trailing C0 controls and spaces are dropped, tabs and
// newlines inside the value are removed, and a "%" that does not start a
// percent escape is taken literally.
func parseRef(ref string) (*url.URL, error) {
	return url.Parse(cleanRef(ref))
}

func cleanRef(ref string) string {
	ref = strings.TrimFunc(ref, func(r rune) bool { return r <= ' ' })
	ref = strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, ref)
	return escapeStrayPercent(ref)
}

func escapeStrayPercent(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && (i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
