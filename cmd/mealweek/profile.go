package mealweek

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mealweek/mealweek-cli/internal/model"
	"github.com/mealweek/mealweek-cli/internal/service"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the body profile used to size meal plans",
}

var (
	profileAge      int
	profileWeight   float64
	profileHeight   float64
	profileGender   string
	profileActivity string
	profileGoal     string
	profileDislikes string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save the body profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile := model.Profile{
			Age:           profileAge,
			WeightKg:      profileWeight,
			HeightCm:      profileHeight,
			Gender:        model.Gender(strings.ToLower(strings.TrimSpace(profileGender))),
			ActivityLevel: model.ActivityLevel(strings.ToLower(strings.TrimSpace(profileActivity))),
			Goal:          model.DietGoal(strings.ToLower(strings.TrimSpace(profileGoal))),
			Dislikes:      strings.TrimSpace(profileDislikes),
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SaveProfile(sqldb, profile); err != nil {
				return err
			}
			metrics := service.ComputeHealthMetrics(profile)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved profile. Daily target: %d kcal (BMI %.1f, %s)\n",
				metrics.TargetCalories, metrics.BMI, metrics.BMICategory)
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved body profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			profile, err := requireProfile(sqldb)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Age:       %d\n", profile.Age)
			fmt.Fprintf(out, "Weight:    %.1f kg\n", profile.WeightKg)
			fmt.Fprintf(out, "Height:    %.1f cm\n", profile.HeightCm)
			fmt.Fprintf(out, "Gender:    %s\n", profile.Gender)
			fmt.Fprintf(out, "Activity:  %s\n", profile.ActivityLevel)
			fmt.Fprintf(out, "Goal:      %s\n", profile.Goal)
			if profile.Dislikes != "" {
				fmt.Fprintf(out, "Dislikes:  %s\n", profile.Dislikes)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileShowCmd)

	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years")
	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Weight in kg")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm")
	profileSetCmd.Flags().StringVar(&profileGender, "gender", "", "Gender: male|female")
	profileSetCmd.Flags().StringVar(&profileActivity, "activity", "", "Activity level: sedentary|low|moderate|high")
	profileSetCmd.Flags().StringVar(&profileGoal, "goal", "", "Diet goal: lose-weight|fat-loss|muscle-gain")
	profileSetCmd.Flags().StringVar(&profileDislikes, "dislikes", "", "Comma-separated foods to avoid")
	_ = profileSetCmd.MarkFlagRequired("age")
	_ = profileSetCmd.MarkFlagRequired("weight")
	_ = profileSetCmd.MarkFlagRequired("height")
	_ = profileSetCmd.MarkFlagRequired("gender")
	_ = profileSetCmd.MarkFlagRequired("activity")
	_ = profileSetCmd.MarkFlagRequired("goal")
}
