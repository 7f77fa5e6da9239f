package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"

	"github.com/mealweek/mealweek-cli/internal/model"
	"github.com/mealweek/mealweek-cli/internal/planjson"
	"github.com/mealweek/mealweek-cli/internal/prompt"
	"github.com/mealweek/mealweek-cli/internal/provider"
)

const (
	generateMaxTries     = 3
	defaultRetryInterval = 800 * time.Millisecond
)

// Generator orchestrates one plan generation: prompt assembly, the LLM
// call with retries, JSON recovery, and a post-parse audit.
type Generator struct {
	Client provider.Client
	Logger zerolog.Logger

	// RetryInterval is the base delay between attempts; the default is
	// 800ms, growing linearly per attempt.
	RetryInterval time.Duration
}

// PlanResult is a generated plan plus the metrics it was sized against and
// any audit findings. Warnings never block: the plan is returned as the
// model produced it.
type PlanResult struct {
	Plan     model.WeeklyPlan
	Metrics  model.HealthMetrics
	Warnings []string
}

func (g *Generator) Generate(ctx context.Context, profile model.Profile, cfg model.DietConfig) (PlanResult, error) {
	metrics := ComputeHealthMetrics(profile)
	promptText := prompt.Build(profile, metrics, cfg)

	plan, err := g.generatePlan(ctx, promptText)
	if err != nil {
		return PlanResult{}, err
	}
	return PlanResult{
		Plan:     plan,
		Metrics:  metrics,
		Warnings: auditPlan(plan, cfg),
	}, nil
}

// generatePlan runs the call-and-parse attempt under a bounded retry
// policy. Only transient provider failures and unparseable output retry;
// credential, quota and configuration failures surface immediately.
func (g *Generator) generatePlan(ctx context.Context, promptText string) (model.WeeklyPlan, error) {
	interval := g.RetryInterval
	if interval <= 0 {
		interval = defaultRetryInterval
	}

	attempt := 0
	operation := func() (model.WeeklyPlan, error) {
		attempt++
		raw, err := g.Client.Generate(ctx, promptText)
		if err != nil {
			if provider.Retryable(err) {
				return model.WeeklyPlan{}, err
			}
			return model.WeeklyPlan{}, backoff.Permanent(err)
		}
		plan, err := planjson.Parse(raw)
		if err != nil {
			// A fresh sampling usually produces valid JSON, so parse
			// failures are worth another attempt.
			return model.WeeklyPlan{}, err
		}
		return plan, nil
	}

	plan, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(&linearBackOff{interval: interval}),
		backoff.WithMaxTries(generateMaxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			g.Logger.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", next).Msg("plan generation attempt failed")
		}),
	)
	if err != nil {
		var parseErr *planjson.ParseError
		if errors.As(err, &parseErr) {
			return model.WeeklyPlan{}, fmt.Errorf("the model never produced recoverable JSON after %d attempts: %w", generateMaxTries, err)
		}
		return model.WeeklyPlan{}, err
	}
	return plan, nil
}

// linearBackOff waits interval, 2*interval, 3*interval between attempts.
type linearBackOff struct {
	interval time.Duration
	attempt  int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.attempt++
	return time.Duration(b.attempt) * b.interval
}

func (b *linearBackOff) Reset() { b.attempt = 0 }

// auditPlan checks the parsed plan against the request and reports every
// deviation as a warning for the user to judge.
func auditPlan(plan model.WeeklyPlan, cfg model.DietConfig) []string {
	var warnings []string

	if n := len(plan.DailyPlans); n != 7 {
		warnings = append(warnings, fmt.Sprintf("plan covers %d days instead of 7", n))
	}
	if cfg.MaxIngredients > 0 && len(plan.ShoppingList) > cfg.MaxIngredients {
		warnings = append(warnings, fmt.Sprintf(
			"shopping list has %d entries, more than the requested limit of %d; trim it yourself or regenerate",
			len(plan.ShoppingList), cfg.MaxIngredients))
	}
	for _, r := range plan.Recipes {
		if r.Ingredients == "" {
			warnings = append(warnings, fmt.Sprintf("recipe %q lists no ingredients", r.DishName))
		}
	}
	if !cfg.AllowRepetition {
		seen := map[string]string{}
		for _, d := range plan.DailyPlans {
			combo := d.Breakfast.Name + "|" + d.Lunch.Name + "|" + d.Dinner.Name
			if prev, ok := seen[combo]; ok {
				warnings = append(warnings, fmt.Sprintf("%s repeats the full meal combination of %s", d.Day, prev))
			} else {
				seen[combo] = d.Day
			}
		}
	}
	return warnings
}
