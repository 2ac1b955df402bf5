package services

import (
	"encoding/json"
	"strings"
)

// repairJSON applies narrow textual fixes outside of double-quoted strings:
// trailing commas before a closing brace or bracket are dropped, bare property
// names and bare scalar words are quoted, and single-quoted strings become
// double-quoted. The boolean reports whether anything was rewritten, valid JSON
// is returned untouched.
func repairJSON(s string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s) + 16)

	changed := false
	n := len(s)
	i := 0

	for i < n {
		c := s[i]
		switch {
		case c == '"':
			j, _ := scanQuoted(s, i, '"')
			b.WriteString(s[i:j])
			i = j

		case c == '\'':
			j, closed := scanQuoted(s, i, '\'')
			inner := s[i+1 : j]
			if closed {
				inner = s[i+1 : j-1]
			}
			b.WriteString(jsonString(strings.ReplaceAll(inner, `\'`, `'`)))
			changed = true
			i = j

		case c == ',':
			k := skipSpace(s, i+1)
			if k < n && (s[k] == '}' || s[k] == ']') {
				changed = true
				i++
				continue
			}
			b.WriteByte(c)
			i++

		case c == '-' || isDigit(c):
			j := i + 1
			for j < n && strings.IndexByte("0123456789+-.eE", s[j]) >= 0 {
				j++
			}
			if j < n && (!isValueDelimiter(s[j]) || hasTrailingWord(s, j)) {
				end := scanBareValue(s, i)
				b.WriteString(jsonString(strings.TrimSpace(s[i:end])))
				changed = true
				i = end
				continue
			}
			b.WriteString(s[i:j])
			i = j

		case isIdentStart(c):
			j := i + 1
			for j < n && isIdentPart(s[j]) {
				j++
			}
			word := s[i:j]

			if k := skipSpace(s, j); k < n && s[k] == ':' {
				b.WriteString(jsonString(word))
				changed = true
				i = j
				continue
			}

			if word == "true" || word == "false" || word == "null" {
				b.WriteString(word)
				i = j
				continue
			}

			end := scanBareValue(s, i)
			b.WriteString(jsonString(strings.TrimSpace(s[i:end])))
			changed = true
			i = end

		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String(), changed
}

// scanQuoted returns the index just past the closing quote, or len(s) when the
// string is unterminated.
func scanQuoted(s string, start int, quote byte) (int, bool) {
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case quote:
			return i + 1, true
		}
	}
	return len(s), false
}

func scanBareValue(s string, start int) int {
	i := start
	for i < len(s) && strings.IndexByte(",}]\n", s[i]) < 0 {
		i++
	}
	return i
}

// hasTrailingWord reports whether a number ending at i is followed on the same
// line by more text, as in "590 km", so the whole run is one bare value.
func hasTrailingWord(s string, i int) bool {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i < len(s) && strings.IndexByte(",}]\r\n", s[i]) < 0
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	return i
}

func isValueDelimiter(c byte) bool {
	return strings.IndexByte(" \t\r\n,}]", c) >= 0
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '-'
}

func jsonString(s string) string {
	out, _ := json.Marshal(s)
	return string(out)
}
