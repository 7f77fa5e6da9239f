package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mealweek/mealweek-cli/internal/model"
)

// PlanRecord is one archived generation.
type PlanRecord struct {
	ID             int64
	ProviderID     string
	TargetCalories int
	Mode           model.DietMode
	Plan           model.WeeklyPlan
	GeneratedAt    time.Time
}

func SavePlanHistory(db *sql.DB, providerID string, targetCalories int, mode model.DietMode, plan model.WeeklyPlan) (int64, error) {
	if targetCalories <= 0 {
		return 0, fmt.Errorf("target calories must be > 0")
	}
	raw, err := json.Marshal(plan)
	if err != nil {
		return 0, fmt.Errorf("encode plan: %w", err)
	}
	res, err := db.Exec(`
INSERT INTO plan_history(provider_id, target_calories, mode, plan_json, generated_at)
VALUES(?, ?, ?, ?, ?)
`, providerID, targetCalories, string(mode), string(raw), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("insert plan history: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("plan history id: %w", err)
	}
	return id, nil
}

func ListPlanHistory(db *sql.DB, limit int) ([]PlanRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.Query(`
SELECT id, provider_id, target_calories, mode, plan_json, generated_at
FROM plan_history
ORDER BY generated_at DESC, id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list plan history: %w", err)
	}
	defer rows.Close()

	records := make([]PlanRecord, 0)
	for rows.Next() {
		var r PlanRecord
		var mode, planRaw, generatedRaw string
		if err := rows.Scan(&r.ID, &r.ProviderID, &r.TargetCalories, &mode, &planRaw, &generatedRaw); err != nil {
			return nil, fmt.Errorf("scan plan history: %w", err)
		}
		r.Mode = model.DietMode(mode)
		if err := json.Unmarshal([]byte(planRaw), &r.Plan); err != nil {
			return nil, fmt.Errorf("decode plan %d: %w", r.ID, err)
		}
		generatedAt, err := time.Parse(time.RFC3339, generatedRaw)
		if err != nil {
			return nil, fmt.Errorf("parse generated_at for plan %d: %w", r.ID, err)
		}
		r.GeneratedAt = generatedAt
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plan history: %w", err)
	}
	return records, nil
}
