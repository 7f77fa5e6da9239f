package mealweek

import (
	"database/sql"
	"fmt"

	"github.com/mealweek/mealweek-cli/internal/service"
	"github.com/spf13/cobra"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show BMI, BMR, TDEE and the daily calorie target",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			profile, err := requireProfile(sqldb)
			if err != nil {
				return err
			}
			m := service.ComputeHealthMetrics(profile)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "BMI:     %.1f (%s)\n", m.BMI, m.BMICategory)
			fmt.Fprintf(out, "BMR:     %.0f kcal\n", m.BMR)
			fmt.Fprintf(out, "TDEE:    %.0f kcal\n", m.TDEE)
			fmt.Fprintf(out, "Target:  %d kcal/day\n", m.TargetCalories)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}
