package service_test

import (
	"strings"
	"testing"

	"github.com/mealweek/mealweek-cli/internal/model"
	"github.com/mealweek/mealweek-cli/internal/service"
)

func TestPlanHistoryRoundTrip(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)

	first := weeklyPlanFixture(6)
	second := weeklyPlanFixture(9)

	if _, err := service.SavePlanHistory(sqldb, "gemini", 1611, model.ModeBuying, first); err != nil {
		t.Fatalf("SavePlanHistory: %v", err)
	}
	id, err := service.SavePlanHistory(sqldb, "relay-1", 1800, model.ModeFridge, second)
	if err != nil {
		t.Fatalf("SavePlanHistory: %v", err)
	}
	if id <= 0 {
		t.Fatalf("second insert id = %d, want > 0", id)
	}

	records, err := service.ListPlanHistory(sqldb, 10)
	if err != nil {
		t.Fatalf("ListPlanHistory: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	newest := records[0]
	if newest.ProviderID != "relay-1" || newest.Mode != model.ModeFridge || newest.TargetCalories != 1800 {
		t.Fatalf("newest record = %+v, want the second insert first", newest)
	}
	if len(newest.Plan.ShoppingList) != 9 {
		t.Fatalf("stored plan has %d shopping items, want 9", len(newest.Plan.ShoppingList))
	}
	if newest.GeneratedAt.IsZero() {
		t.Fatal("generated_at was not recorded")
	}
}

func TestListPlanHistoryHonorsLimit(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)

	for i := 0; i < 4; i++ {
		if _, err := service.SavePlanHistory(sqldb, "gemini", 1500+i, model.ModeBuying, weeklyPlanFixture(5)); err != nil {
			t.Fatalf("SavePlanHistory: %v", err)
		}
	}
	records, err := service.ListPlanHistory(sqldb, 2)
	if err != nil {
		t.Fatalf("ListPlanHistory: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
}

func TestSavePlanHistoryRejectsNonPositiveTarget(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)

	_, err := service.SavePlanHistory(sqldb, "gemini", 0, model.ModeBuying, weeklyPlanFixture(5))
	if err == nil || !strings.Contains(err.Error(), "target calories") {
		t.Fatalf("err = %v, want target calories validation", err)
	}
}
