package mealweek

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mealweek/mealweek-cli/internal/model"
	"github.com/mealweek/mealweek-cli/internal/prompt"
	"github.com/mealweek/mealweek-cli/internal/service"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and inspect weekly meal plans",
}

var (
	planMode           string
	planFlavor         string
	planStaple         string
	planWant           string
	planHave           string
	planRepeat         bool
	planMaxIngredients int
	planAsJSON         bool
)

func dietConfigFromFlags() (model.DietConfig, error) {
	cfg := model.DietConfig{
		Mode:                model.DietMode(strings.ToLower(strings.TrimSpace(planMode))),
		FlavorPreference:    splitList(planFlavor),
		StaplePreference:    strings.TrimSpace(planStaple),
		WantedIngredients:   strings.TrimSpace(planWant),
		ExistingIngredients: strings.TrimSpace(planHave),
		AllowRepetition:     planRepeat,
		MaxIngredients:      planMaxIngredients,
	}
	switch cfg.Mode {
	case model.ModeBuying, model.ModeFridge:
	default:
		return model.DietConfig{}, fmt.Errorf("invalid --mode %q (expected buy or fridge)", planMode)
	}
	if cfg.Mode == model.ModeFridge && cfg.ExistingIngredients == "" {
		return model.DietConfig{}, fmt.Errorf("fridge mode needs --have with the ingredients you already own")
	}
	if cfg.MaxIngredients < 0 {
		return model.DietConfig{}, fmt.Errorf("--max-ingredients must be >= 0")
	}
	return cfg, nil
}

var planGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a weekly meal plan with the selected provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := dietConfigFromFlags()
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			profile, err := requireProfile(sqldb)
			if err != nil {
				return err
			}
			settings, err := service.LoadProviderSettings(sqldb)
			if err != nil {
				return err
			}
			client, err := service.ClientForSettings(settings)
			if err != nil {
				return err
			}

			gen := service.Generator{Client: client, Logger: logger}
			res, err := gen.Generate(cmd.Context(), profile, cfg)
			if err != nil {
				return err
			}

			if _, err := service.SavePlanHistory(sqldb, settings.SelectedID, res.Metrics.TargetCalories, cfg.Mode, res.Plan); err != nil {
				logger.Warn().Err(err).Msg("plan was generated but could not be archived")
			}

			out := cmd.OutOrStdout()
			if planAsJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res.Plan); err != nil {
					return fmt.Errorf("encode plan: %w", err)
				}
			} else {
				writeWeeklyPlan(out, res.Plan, res.Metrics)
			}
			for _, w := range res.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
			}
			return nil
		})
	},
}

func writeWeeklyPlan(out io.Writer, plan model.WeeklyPlan, metrics model.HealthMetrics) {
	fmt.Fprintf(out, "Weekly plan (target %d kcal/day)\n\n", metrics.TargetCalories)
	for _, d := range plan.DailyPlans {
		fmt.Fprintf(out, "%s\n", d.Day)
		writeMeal(out, "breakfast", d.Breakfast)
		writeMeal(out, "lunch", d.Lunch)
		writeMeal(out, "dinner", d.Dinner)
		fmt.Fprintln(out)
	}
	if len(plan.ShoppingList) > 0 {
		fmt.Fprintln(out, "Shopping list:")
		for _, item := range plan.ShoppingList {
			fmt.Fprintf(out, "  %s\t%s\n", item.Name, item.Amount)
		}
		fmt.Fprintln(out)
	}
	if len(plan.Seasonings) > 0 {
		fmt.Fprintf(out, "Seasonings: %s\n\n", strings.Join(plan.Seasonings, ", "))
	}
	for _, r := range plan.Recipes {
		fmt.Fprintf(out, "Recipe: %s\n", r.DishName)
		if r.Ingredients != "" {
			fmt.Fprintf(out, "  Ingredients: %s\n", r.Ingredients)
		}
		for i, step := range r.Steps {
			fmt.Fprintf(out, "  %d. %s\n", i+1, step)
		}
		fmt.Fprintln(out)
	}
}

func writeMeal(out io.Writer, slot string, m model.Meal) {
	fmt.Fprintf(out, "  %-10s %s (%.0f kcal) - %s\n", slot+":", m.Name, m.Calories, m.Portion)
}

var planPromptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the prompt that would be sent, without calling the provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := dietConfigFromFlags()
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			profile, err := requireProfile(sqldb)
			if err != nil {
				return err
			}
			metrics := service.ComputeHealthMetrics(profile)
			fmt.Fprintln(cmd.OutOrStdout(), prompt.Build(profile, metrics, cfg))
			return nil
		})
	},
}

var planHistoryLimit int

var planHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously generated plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			records, err := service.ListPlanHistory(sqldb, planHistoryLimit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tGENERATED\tPROVIDER\tMODE\tTARGET\tDAYS")
			for _, r := range records {
				fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%d\t%d\n",
					r.ID, r.GeneratedAt.Local().Format("2006-01-02 15:04"), r.ProviderID, r.Mode, r.TargetCalories, len(r.Plan.DailyPlans))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planGenerateCmd)
	planCmd.AddCommand(planPromptCmd)
	planCmd.AddCommand(planHistoryCmd)

	for _, c := range []*cobra.Command{planGenerateCmd, planPromptCmd} {
		c.Flags().StringVar(&planMode, "mode", "buy", "Planning mode: buy|fridge")
		c.Flags().StringVar(&planFlavor, "flavor", "", "Comma-separated flavor preferences")
		c.Flags().StringVar(&planStaple, "staple", "", "Staple preference (e.g. rice, noodles)")
		c.Flags().StringVar(&planWant, "want", "", "Comma-separated ingredients you want included")
		c.Flags().StringVar(&planHave, "have", "", "Comma-separated ingredients already on hand")
		c.Flags().BoolVar(&planRepeat, "repeat", false, "Allow repeated meal combinations across days")
		c.Flags().IntVar(&planMaxIngredients, "max-ingredients", 0, "Hard cap on shopping list entries (0 = no cap)")
	}
	planGenerateCmd.Flags().BoolVar(&planAsJSON, "json", false, "Print the raw plan JSON")
	planHistoryCmd.Flags().IntVar(&planHistoryLimit, "limit", 10, "Maximum records to show")
}
