package planjson

import (
	"regexp"
	"strings"
)

// closing quote, newline, opening quote with no comma in between: the common
// missing-separator pattern in model output.
var missingComma = regexp.MustCompile(`"(\s*)\n(\s*)"`)

// repairText rewrites a JSON-ish text so the standard decoder can accept it.
// It runs a character-level scanner with three states (normal, in-string,
// escaped-in-string) and applies, in order: escaping raw newlines inside
// string literals (dropping carriage returns), inserting the missing comma at
// a quote-newline-quote boundary, closing an unterminated string, and
// appending the closing brackets and braces that a truncated response lost.
func repairText(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 8)

	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				b.WriteByte(ch)
				escaped = false
			case ch == '\\':
				b.WriteByte(ch)
				escaped = true
			case ch == '"':
				b.WriteByte(ch)
				inString = false
			case ch == '\n':
				b.WriteString(`\n`)
			case ch == '\r':
				// dropped
			default:
				b.WriteByte(ch)
			}
			continue
		}
		if ch == '"' {
			inString = true
		}
		b.WriteByte(ch)
	}
	result := b.String()

	result = missingComma.ReplaceAllString(result, "\",\n\"")

	if endsInsideString(result) {
		result += `"`
	}

	openBraces, openBrackets := unmatchedDelims(result)
	// close any still-open array before its enclosing object
	result += strings.Repeat("]", openBrackets)
	result += strings.Repeat("}", openBraces)

	return strings.TrimSpace(result)
}

func endsInsideString(text string) bool {
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		if ch == '"' {
			inString = true
		}
	}
	return inString
}

func unmatchedDelims(text string) (openBraces, openBrackets int) {
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			openBraces++
		case '}':
			openBraces--
		case '[':
			openBrackets++
		case ']':
			openBrackets--
		}
	}
	if openBraces < 0 {
		openBraces = 0
	}
	if openBrackets < 0 {
		openBrackets = 0
	}
	return openBraces, openBrackets
}
