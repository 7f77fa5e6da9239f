package service_test

import (
	"math"
	"testing"

	"github.com/mealweek/mealweek-cli/internal/model"
	"github.com/mealweek/mealweek-cli/internal/service"
)

func baseProfile() model.Profile {
	return model.Profile{
		Age:           25,
		WeightKg:      65,
		HeightCm:      170,
		Gender:        model.GenderMale,
		ActivityLevel: model.ActivitySedentary,
		Goal:          model.GoalFatLoss,
	}
}

func TestComputeHealthMetricsScenario(t *testing.T) {
	t.Parallel()

	m := service.ComputeHealthMetrics(baseProfile())

	if m.BMI != 22.5 {
		t.Fatalf("expected bmi 22.5, got %v", m.BMI)
	}
	if m.BMICategory != "normal" {
		t.Fatalf("expected category normal, got %q", m.BMICategory)
	}
	// Mifflin-St Jeor: 10*65 + 6.25*170 - 5*25 + 5 = 1592.5
	if m.BMR != 1592.5 {
		t.Fatalf("expected bmr 1592.5, got %v", m.BMR)
	}
	if m.TDEE != 1592.5*1.2 {
		t.Fatalf("expected tdee %v, got %v", 1592.5*1.2, m.TDEE)
	}
	if m.TargetCalories != 1611 {
		t.Fatalf("expected target 1611, got %d", m.TargetCalories)
	}
}

func TestBMICategoryBoundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		weightKg float64
		heightCm float64
		want     string
	}{
		{73, 200, "underweight"}, // 18.25
		{74, 200, "normal"},      // exactly 18.5
		{95, 200, "normal"},      // 23.75
		{96, 200, "overweight"},  // exactly 24
		{112, 200, "obese"},      // exactly 28
	}
	for _, tc := range cases {
		p := baseProfile()
		p.WeightKg = tc.weightKg
		p.HeightCm = tc.heightCm
		m := service.ComputeHealthMetrics(p)
		if m.BMICategory != tc.want {
			t.Fatalf("weight %.0f height %.0f: expected %q, got %q (bmi %v)", tc.weightKg, tc.heightCm, tc.want, m.BMICategory, m.BMI)
		}
	}
}

func TestActivityFactorTable(t *testing.T) {
	t.Parallel()

	factors := map[model.ActivityLevel]float64{
		model.ActivitySedentary: 1.2,
		model.ActivityLow:       1.375,
		model.ActivityModerate:  1.55,
		model.ActivityHigh:      1.725,
	}
	for level, factor := range factors {
		p := baseProfile()
		p.ActivityLevel = level
		m := service.ComputeHealthMetrics(p)
		if m.TDEE != m.BMR*factor {
			t.Fatalf("level %s: expected tdee == bmr*%v, got %v (bmr %v)", level, factor, m.TDEE, m.BMR)
		}
	}
}

func TestGoalAdjustsTargetCalories(t *testing.T) {
	t.Parallel()

	deltas := map[model.DietGoal]float64{
		model.GoalLoseWeight: -500,
		model.GoalFatLoss:    -300,
		model.GoalMuscleGain: 300,
	}
	for goal, delta := range deltas {
		p := baseProfile()
		p.Goal = goal
		m := service.ComputeHealthMetrics(p)
		want := int(math.Round(m.TDEE + delta))
		if m.TargetCalories != want {
			t.Fatalf("goal %s: expected target %d, got %d", goal, want, m.TargetCalories)
		}
	}
}

func TestValidateProfileRejectsImplausibleValues(t *testing.T) {
	t.Parallel()

	valid := baseProfile()
	if err := service.ValidateProfile(valid); err != nil {
		t.Fatalf("expected valid profile, got %v", err)
	}

	cases := []func(*model.Profile){
		func(p *model.Profile) { p.Age = 5 },
		func(p *model.Profile) { p.Age = 140 },
		func(p *model.Profile) { p.WeightKg = 0 },
		func(p *model.Profile) { p.HeightCm = -170 },
		func(p *model.Profile) { p.Gender = "other" },
		func(p *model.Profile) { p.ActivityLevel = "extreme" },
		func(p *model.Profile) { p.Goal = "bulk" },
	}
	for i, mutate := range cases {
		p := baseProfile()
		mutate(&p)
		if err := service.ValidateProfile(p); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}
