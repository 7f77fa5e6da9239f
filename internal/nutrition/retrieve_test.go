package nutrition_test

import (
	"strings"
	"testing"

	"github.com/mealweek/mealweek-cli/internal/model"
	"github.com/mealweek/mealweek-cli/internal/nutrition"
)

func TestRetrieveIsIdempotentAndOrderStable(t *testing.T) {
	t.Parallel()

	cfg := model.DietConfig{
		Mode:                model.ModeBuying,
		WantedIngredients:   "chicken, banana, 土豆",
		ExistingIngredients: "",
	}
	first := nutrition.Retrieve(cfg, 0)
	second := nutrition.Retrieve(cfg, 0)
	if first != second {
		t.Fatalf("expected identical output for identical config")
	}
	if first == "" {
		t.Fatalf("expected non-empty reference")
	}
}

func TestRetrieveMatchesKeywordsAndKeepsBaseline(t *testing.T) {
	t.Parallel()

	cfg := model.DietConfig{WantedIngredients: "banana"}
	out := nutrition.Retrieve(cfg, 0)

	if !strings.Contains(out, "- banana") {
		t.Fatalf("expected banana entry, got:\n%s", out)
	}
	// baseline anchors are present regardless of match
	for _, name := range []string{"- rice", "- egg", "- chicken breast", "- cooking oil"} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected baseline entry %q, got:\n%s", name, out)
		}
	}
}

func TestRetrieveMatchesChineseAliasAndPunctuation(t *testing.T) {
	t.Parallel()

	cfg := model.DietConfig{ExistingIngredients: "牛腩、西兰花，鸡蛋"}
	out := nutrition.Retrieve(cfg, 0)
	if !strings.Contains(out, "- beef brisket") {
		t.Fatalf("expected beef brisket via Chinese alias, got:\n%s", out)
	}
}

func TestRetrieveNeverDuplicatesCanonicalNames(t *testing.T) {
	t.Parallel()

	// rice is both a baseline entry and a keyword match
	cfg := model.DietConfig{WantedIngredients: "rice"}
	out := nutrition.Retrieve(cfg, 0)
	if n := strings.Count(out, "- rice ("); n != 1 {
		t.Fatalf("expected exactly one rice entry, got %d:\n%s", n, out)
	}
}

func TestRetrieveCapsEntries(t *testing.T) {
	t.Parallel()

	cfg := model.DietConfig{WantedIngredients: "chicken, beef, pork, egg, milk, tofu, potato, tomato"}
	out := nutrition.Retrieve(cfg, 5)
	if n := strings.Count(out, "\n- "); n > 5 {
		t.Fatalf("expected at most 5 entries, got %d:\n%s", n, out)
	}
}

func TestRetrieveEmptyWithoutKeywordsStillHasAnchors(t *testing.T) {
	t.Parallel()

	out := nutrition.Retrieve(model.DietConfig{}, 0)
	if !strings.Contains(out, "- rice") {
		t.Fatalf("expected baseline anchors with no keywords, got:\n%s", out)
	}
}
