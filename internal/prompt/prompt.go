// Package prompt renders the weekly-plan instruction document sent to the
// model. The output is deterministic for a given profile, metrics and config:
// the model, not this code, enforces the dietary rules, so the text has to be
// exhaustive and unambiguous about them.
package prompt

import (
	"fmt"
	"strings"

	"github.com/mealweek/mealweek-cli/internal/model"
	"github.com/mealweek/mealweek-cli/internal/nutrition"
)

const (
	// referenceCharLimit bounds the appended nutrition block to keep the
	// request small enough to avoid provider-side overload failures.
	referenceCharLimit = 1800
	referenceMaxFoods  = 20
)

// Build assembles the full prompt: role framing, user profile summary,
// constraints, output format rules, then the truncated nutrition reference.
func Build(profile model.Profile, metrics model.HealthMetrics, cfg model.DietConfig) string {
	var b strings.Builder

	b.WriteString("# Role: minimalist all-round nutritionist and five-star chef\n\n")

	b.WriteString("## UserProfile\n")
	gender := "female"
	if profile.Gender == model.GenderMale {
		gender = "male"
	}
	fmt.Fprintf(&b, "- Basics: %s, %d years old, goal: %s\n", gender, profile.Age, profile.Goal)
	fmt.Fprintf(&b, "- Calories: %d kcal/day\n", metrics.TargetCalories)
	if cfg.Mode == model.ModeFridge {
		b.WriteString("- Mode: use-what-you-have (plan around owned ingredients)\n")
	} else {
		b.WriteString("- Mode: acquisition (buy fresh groceries)\n")
	}
	staple := cfg.StaplePreference
	if strings.TrimSpace(staple) == "" {
		staple = "no preference"
	}
	fmt.Fprintf(&b, "- Staple preference: %s\n", staple)
	flavor := "no preference"
	if len(cfg.FlavorPreference) > 0 {
		flavor = strings.Join(cfg.FlavorPreference, ", ")
	}
	fmt.Fprintf(&b, "- Flavor preference: %s\n", flavor)
	dislikes := strings.TrimSpace(profile.Dislikes)
	if dislikes == "" {
		dislikes = "none"
	}
	if cfg.Mode == model.ModeFridge {
		fmt.Fprintf(&b, "- Ingredients on hand: %s / dislikes: %s\n", orUnrestricted(cfg.ExistingIngredients), dislikes)
	} else {
		fmt.Fprintf(&b, "- Wanted this week: %s / dislikes: %s\n", orUnrestricted(cfg.WantedIngredients), dislikes)
	}
	if cfg.AllowRepetition {
		b.WriteString("- Meal-prep repetition: ON. Default to 3-4 dish combinations per meal slot that can rotate flexibly.\n")
	} else {
		b.WriteString("- Meal-prep repetition: OFF. Vary the dishes from day to day as much as possible.\n")
	}

	b.WriteString("\n<Constraints>\n")
	b.WriteString("1. Staple balance: unless rice is explicitly forbidden, at least 50% of main meals across the week must include rice or whole-grain rice; wheat-based staples are secondary.\n")
	b.WriteString("2. Dish variety (hard rule):\n")
	b.WriteString("   - Absolutely forbidden: any two days (adjacent or not) sharing an identical breakfast+lunch+dinner combination. Every one of the 7 days must be a unique combination.\n")
	b.WriteString("   - Wrong (forbidden): Monday (fried egg + milk + oats, rice + pepper pork + tomato egg, rice + steamed fish + greens) = Wednesday (same combination).\n")
	b.WriteString("   - Right: buy few ingredients but create 7 distinct daily combinations by varying cooking method (chicken breast -> pan-seared chicken, chicken salad, tomato chicken stew, kung pao chicken), varying pairings (beef + potato, beef + onion, beef + broccoli), and moving a dish to a different meal slot on a different day.\n")
	b.WriteString("   - Self-check: after generating, compare the (breakfast.name + lunch.name + dinner.name) string across every pair of the 7 days in dailyPlans; no two may be identical.\n")
	b.WriteString("3. Meal-prep consistency: when repetition is ON, repeated combinations must use batch-cookable, storage-friendly ingredients.\n")
	b.WriteString("4. List rules:\n")
	b.WriteString("   - shoppingList: one entry per distinct ingredient; amount is the whole-week total for that ingredient. Summing that ingredient's usage across all dishes must equal its amount.\n")
	if cfg.MaxIngredients > 0 {
		fmt.Fprintf(&b, "   - Ingredient-count ceiling (hard rule): shoppingList must contain at most %d entries. If the current design exceeds %d, merge ingredients, cut varieties or reuse one ingredient across dishes until the count is <= %d. This is a hard numeric ceiling, not a suggestion.\n", cfg.MaxIngredients, cfg.MaxIngredients, cfg.MaxIngredients)
	} else {
		b.WriteString("   - Ingredient-count ceiling: no limit on the number of distinct ingredients.\n")
	}
	b.WriteString("   - recipes: each dish's ingredients field lists the dish's total usage across the whole week (e.g. if potato beef stew is cooked 3 times needing 500g brisket in total, write \"beef brisket 500g\"). For each ingredient, the sum over all recipes must equal its shoppingList amount. Write \"as needed\" for seasonings.\n")
	if cfg.Mode == model.ModeFridge {
		b.WriteString("   - Use-what-you-have mode: annotate every shopping-list entry that the user already owns with \"(optional/already owned)\" in its amount field.\n")
	}
	b.WriteString("5. Safety: never pair clashing foods (e.g. dairy + citrus such as milk + orange); low oil, low salt; at most 3 cooking steps per dish.\n")
	b.WriteString("</Constraints>\n")

	b.WriteString("\n<OutputSpecs>\n")
	b.WriteString("1. name: only composed dish names, multiple dishes joined with \" + \". Never \"a plate combining X and Y\" phrasing, never a raw ingredient list.\n")
	b.WriteString("2. portion: mirrors name one-to-one as \"dish name + gram amount (g/ml)\". Never blank, never vague words like \"about\".\n")
	b.WriteString("3. Structure: Monday through Sunday, breakfast/lunch/dinner. Every meal must include a protein source, a carbohydrate source and a quality fat source.\n")
	b.WriteString("4. Eating habits: breakfast sticks to common breakfast foods (milk, eggs, oats, buns, toast); no heavy oil or heavy spice at breakfast. Lunch is a full meal with staple + vegetable + protein. Dinner may be lighter but still properly balanced.\n")
	fmt.Fprintf(&b, "5. Calories: each day's breakfast+lunch+dinner total must be computed from the actual ingredients and portions. Different combinations must yield different daily totals; never repeat the same daily total unless the food is identical. Daily totals stay within %.0f - %.0f kcal (target +/- 10%%), each derived from the real ingredients.\n", float64(metrics.TargetCalories)*0.9, float64(metrics.TargetCalories)*1.1)
	b.WriteString("6. recipes: every dish needs dishName, ingredients (whole-week totals as above) and steps (max 3).\n")
	b.WriteString("7. Mass-consistency check (hard rule): the gram total of all daily portions, the gram total of shoppingList amounts, and the gram total across recipe ingredients (excluding \"as needed\" seasonings) must agree within +/- 5%. If they do not, recompute before answering.\n")
	b.WriteString("8. Final duplicate check (hard rule): re-check every pair of days for an identical three-meal name combination and fix any duplicate by changing the cooking method or pairing.\n")
	b.WriteString("</OutputSpecs>\n")

	b.WriteString("\nGenerate the weekly plan and shopping list from the settings above.\n")

	doc := strings.TrimRight(b.String(), "\n")
	ref := nutrition.Retrieve(cfg, referenceMaxFoods)
	if ref == "" {
		return doc
	}
	if len(ref) > referenceCharLimit {
		ref = ref[:referenceCharLimit] + "\n(nutrition reference truncated)"
	}
	return doc + "\n\n" + ref
}

func orUnrestricted(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unrestricted"
	}
	return s
}
