package service

import (
	"fmt"
	"math"

	"github.com/mealweek/mealweek-cli/internal/model"
)

const (
	bmiUnderweightMax = 18.5
	bmiNormalMax      = 24
	bmiOverweightMax  = 28
)

var activityFactors = map[model.ActivityLevel]float64{
	model.ActivitySedentary: 1.2,
	model.ActivityLow:       1.375,
	model.ActivityModerate:  1.55,
	model.ActivityHigh:      1.725,
}

var goalAdjustments = map[model.DietGoal]float64{
	model.GoalLoseWeight: -500,
	model.GoalFatLoss:    -300,
	model.GoalMuscleGain: 300,
}

// ComputeHealthMetrics derives BMI, BMR (Mifflin-St Jeor), TDEE and the daily
// calorie target from a profile. It is a total function over valid profiles.
func ComputeHealthMetrics(p model.Profile) model.HealthMetrics {
	heightM := p.HeightCm / 100
	bmi := math.Round(p.WeightKg/(heightM*heightM)*10) / 10

	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if p.Gender == model.GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	tdee := bmr * activityFactors[p.ActivityLevel]
	target := math.Round(tdee + goalAdjustments[p.Goal])

	return model.HealthMetrics{
		BMI:            bmi,
		BMICategory:    bmiCategory(bmi),
		BMR:            bmr,
		TDEE:           tdee,
		TargetCalories: int(target),
	}
}

func bmiCategory(bmi float64) string {
	switch {
	case bmi < bmiUnderweightMax:
		return "underweight"
	case bmi < bmiNormalMax:
		return "normal"
	case bmi < bmiOverweightMax:
		return "overweight"
	default:
		return "obese"
	}
}

// ValidateProfile rejects values outside the plausible human range before the
// profile is persisted.
func ValidateProfile(p model.Profile) error {
	if p.Age < 10 || p.Age > 120 {
		return fmt.Errorf("age must be between 10 and 120")
	}
	if p.WeightKg <= 0 {
		return fmt.Errorf("weight must be > 0")
	}
	if p.HeightCm <= 0 {
		return fmt.Errorf("height must be > 0")
	}
	if p.Gender != model.GenderMale && p.Gender != model.GenderFemale {
		return fmt.Errorf("invalid gender %q (use male or female)", p.Gender)
	}
	if _, ok := activityFactors[p.ActivityLevel]; !ok {
		return fmt.Errorf("invalid activity level %q (use sedentary, low, moderate or high)", p.ActivityLevel)
	}
	if _, ok := goalAdjustments[p.Goal]; !ok {
		return fmt.Errorf("invalid goal %q (use lose-weight, fat-loss or muscle-gain)", p.Goal)
	}
	return nil
}
