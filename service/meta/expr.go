package meta

import (
	"os"
	"strings"
	"unicode"
)

// expandEnvExpr substitutes every ${env.KEY} occurrence with the value of
// the KEY environment variable; unset variables expand to "".
func expandEnvExpr(value string) string {
	const marker = "${env."
	var b strings.Builder
	for {
		idx := strings.Index(value, marker)
		if idx < 0 {
			b.WriteString(value)
			break
		}
		b.WriteString(value[:idx])
		rest := value[idx+len(marker):]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			b.WriteString(value[idx:])
			break
		}
		key := rest[:end]
		if isEnvKey(key) {
			b.WriteString(os.Getenv(key))
			value = rest[end+1:]
			continue
		}
		// Malformed expression, keep the marker literal and move on.
		b.WriteString(marker)
		value = rest
	}
	return b.String()
}

func isEnvKey(key string) bool {
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
