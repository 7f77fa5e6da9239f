package nutrition

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mealweek/mealweek-cli/internal/model"
)

// DefaultMaxEntries bounds the reference block when the caller does not ask
// for a tighter cap.
const DefaultMaxEntries = 50

// splits on commas, whitespace and Chinese enumeration punctuation.
var keywordSplit = regexp.MustCompile(`[,，、\s]+`)

func extractKeywords(cfg model.DietConfig) []string {
	raw := make([]string, 0, 8)
	for _, field := range []string{cfg.WantedIngredients, cfg.ExistingIngredients} {
		if strings.TrimSpace(field) == "" {
			continue
		}
		for _, tok := range keywordSplit.Split(field, -1) {
			tok = strings.TrimSpace(tok)
			if tok != "" {
				raw = append(raw, tok)
			}
		}
	}
	seen := make(map[string]bool, len(raw))
	keywords := make([]string, 0, len(raw))
	for _, kw := range raw {
		lower := strings.ToLower(kw)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		keywords = append(keywords, lower)
	}
	return keywords
}

// matches tolerates both abbreviation and expansion: the keyword may contain
// the name or the name may contain the keyword, same for aliases.
func matches(fact model.NutritionFact, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	name := strings.ToLower(fact.Name)
	for _, kw := range keywords {
		if strings.Contains(name, kw) || strings.Contains(kw, name) {
			return true
		}
		for _, alias := range fact.Aliases {
			a := strings.ToLower(alias)
			if strings.Contains(a, kw) || strings.Contains(kw, a) {
				return true
			}
		}
	}
	return false
}

// Retrieve matches the user's wanted/existing ingredient text against the
// knowledge base and renders a reference block for the prompt. Matched
// entries come first, then the baseline set, deduplicated by canonical name
// and capped at maxEntries. An empty string means the prompt proceeds
// without the section.
func Retrieve(cfg model.DietConfig, maxEntries int) string {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	keywords := extractKeywords(cfg)

	matched := make([]model.NutritionFact, 0, len(facts))
	base := make([]model.NutritionFact, 0, len(baselineNames))
	for _, fact := range facts {
		if baselineNames[fact.Name] {
			base = append(base, fact)
		} else if matches(fact, keywords) {
			matched = append(matched, fact)
		}
	}

	seen := make(map[string]bool, maxEntries)
	selected := make([]model.NutritionFact, 0, maxEntries)
	for _, fact := range append(matched, base...) {
		if len(selected) >= maxEntries {
			break
		}
		if seen[fact.Name] {
			continue
		}
		seen[fact.Name] = true
		selected = append(selected, fact)
	}
	if len(selected) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Food nutrition reference (per 100g edible portion, for portion and pairing decisions):\n")
	for _, fact := range selected {
		b.WriteString("- ")
		b.WriteString(fact.Name)
		if fact.Note != "" {
			b.WriteString(" (")
			b.WriteString(fact.Note)
			b.WriteString(")")
		}
		b.WriteString(": ")
		b.WriteString(formatNum(fact.Calories))
		b.WriteString(" kcal, protein ")
		b.WriteString(formatNum(fact.ProteinG))
		b.WriteString("g, fat ")
		b.WriteString(formatNum(fact.FatG))
		b.WriteString("g, carbs ")
		b.WriteString(formatNum(fact.CarbsG))
		b.WriteString("g\n")
	}
	b.WriteString("Use this data when composing dishes and portion sizes.")
	return b.String()
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
