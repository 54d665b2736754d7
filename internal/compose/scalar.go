package compose

import (
	"strconv"
	"strings"
	"unicode"
)

// plainUnsafe are YAML words that would not load back as the same string.
var plainUnsafe = map[string]bool{
	"y": true, "n": true, "yes": true, "no": true, "on": true, "off": true,
	"true": true, "false": true, "null": true, "~": true,
}

// Scalar returns s as a YAML scalar, double-quoting it only when the plain
// form would be parsed as something else.
func Scalar(s string) string {
	if needsQuotes(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuotes(s string) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return true
	}
	if plainUnsafe[strings.ToLower(s)] {
		return true
	}
	if strings.ContainsAny(s[:1], "!&*{}[]|>'\"%@`#,?") {
		return true
	}
	if (s[0] == '-' || s[0] == ':') && (len(s) == 1 || s[1] == ' ') {
		return true
	}
	if strings.HasSuffix(s, ":") {
		return true
	}
	return strings.Contains(s, ": ") || strings.Contains(s, " #") || strings.IndexFunc(s, unicode.IsControl) >= 0
}
