// Package meta expands ${env.KEY} references in configuration text before it
// is decoded.
package meta

import (
	"os"
	"strings"
	"unicode"
)

const envPrefix = "${env."

// ExpandEnv replaces every ${env.KEY} with the value of environment variable
// KEY, or "" when it is unset.
func ExpandEnv(text string) string {
	return Expand(text, os.Getenv)
}

// Expand replaces every ${env.KEY} with lookup(KEY). Keys must consist of
// letters, digits or '_'; anything else is left verbatim. An unterminated
// expression ends expansion and the remainder is kept as is.
func Expand(text string, lookup func(string) string) string {
	if !strings.Contains(text, envPrefix) {
		return text
	}
	var out strings.Builder
	out.Grow(len(text))
	rest := text
	for {
		start := strings.Index(rest, envPrefix)
		if start < 0 {
			out.WriteString(rest)
			return out.String()
		}
		out.WriteString(rest[:start])
		body := rest[start+len(envPrefix):]
		end := strings.IndexByte(body, '}')
		if end < 0 {
			out.WriteString(rest[start:])
			return out.String()
		}
		key := body[:end]
		if !isKey(key) {
			// keep the prefix and rescan right after it for nested expressions
			out.WriteString(envPrefix)
			rest = body
			continue
		}
		out.WriteString(lookup(key))
		rest = body[end+1:]
	}
}

func isKey(key string) bool {
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
