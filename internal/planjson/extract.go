// Package planjson recovers a typed weekly plan from raw model output. The
// text is often not clean JSON: it can be wrapped in prose or code fences,
// contain raw newlines inside string values, miss a separator comma, or be
// truncated mid-structure. Parsing is layered: preprocess, extract candidate
// substrings, then attempt each candidate directly and repaired before giving
// up with a diagnostic error.
package planjson

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/mealweek/mealweek-cli/internal/model"
)

var (
	fenceOpen = regexp.MustCompile("(?i)```json\\s*")
	// anchored: a bare fence elsewhere may sit inside a string value
	fenceClose    = regexp.MustCompile("```\\s*$")
	trailingComma = regexp.MustCompile(`,(\s*[}\]])`)
	smartQuotes   = strings.NewReplacer(
		"“", `"`, "”", `"`,
		"‘", "'", "’", "'",
	)
)

// ParseError reports that every recovery strategy failed. FirstErr is the
// error from the first parse attempt, Strategies the number of attempts made.
type ParseError struct {
	FirstErr   string
	Strategies int
	RawLen     int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("response is not recoverable JSON: %s (%d strategies attempted, raw length %d)",
		e.FirstErr, e.Strategies, e.RawLen)
}

// Parse extracts and decodes the most plausible JSON object in raw. It never
// returns a partial plan: either one candidate parses or a *ParseError is
// returned.
func Parse(raw string) (model.WeeklyPlan, error) {
	pre := preprocess(raw)

	firstErr := ""
	attempts := 0
	for _, candidate := range candidates(pre) {
		var plan model.WeeklyPlan
		attempts++
		err := json.Unmarshal([]byte(candidate), &plan)
		if err == nil {
			return plan, nil
		}
		if firstErr == "" {
			firstErr = err.Error()
		}

		attempts++
		if err := json.Unmarshal([]byte(repairText(candidate)), &plan); err == nil {
			return plan, nil
		}
	}

	if firstErr == "" {
		firstErr = "no JSON candidate found"
	}
	return model.WeeklyPlan{}, &ParseError{FirstErr: firstErr, Strategies: attempts, RawLen: len(raw)}
}

// preprocess strips code-fence markers and the BOM, normalizes smart quotes
// and removes trailing commas before a closing brace or bracket.
func preprocess(raw string) string {
	s := fenceOpen.ReplaceAllString(raw, "")
	s = fenceClose.ReplaceAllString(s, "")
	s = strings.TrimPrefix(s, "\uFEFF")
	s = smartQuotes.Replace(s)
	s = trailingComma.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}

// candidates returns the substrings worth parsing, most specific last: the
// whole text, the first-{ to last-} span, and the first complete top-level
// object found by a depth-tracking scan.
func candidates(text string) []string {
	out := make([]string, 0, 3)
	if text != "" {
		out = append(out, text)
	}
	first := strings.IndexByte(text, '{')
	last := strings.LastIndexByte(text, '}')
	if first >= 0 && last > first {
		out = append(out, text[first:last+1])
	}
	if obj := scanObject(text); obj != "" {
		out = append(out, obj)
	}
	return out
}

// scanObject finds the first complete top-level JSON object, treating
// characters inside string literals (including escaped quotes) as
// non-structural. Returns "" when no complete object exists.
func scanObject(text string) string {
	inString := false
	escaped := false
	depth := 0
	start := -1

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
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			depth--
			if depth == 0 && start >= 0 {
				return text[start : i+1]
			}
			if depth < 0 {
				return ""
			}
		}
	}
	return ""
}
