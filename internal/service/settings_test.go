package service_test

import (
	"reflect"
	"testing"

	"github.com/mealweek/mealweek-cli/internal/model"
	"github.com/mealweek/mealweek-cli/internal/service"
)

func TestProfileRoundTrip(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)

	if _, ok, err := service.LoadProfile(sqldb); err != nil || ok {
		t.Fatalf("LoadProfile on fresh db = ok %v, err %v; want not found", ok, err)
	}

	want := model.Profile{
		Age:           31,
		WeightKg:      72.5,
		HeightCm:      178,
		Gender:        model.GenderFemale,
		ActivityLevel: model.ActivityModerate,
		Goal:          model.GoalMuscleGain,
		Dislikes:      "cilantro, liver",
	}
	if err := service.SaveProfile(sqldb, want); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	got, ok, err := service.LoadProfile(sqldb)
	if err != nil || !ok {
		t.Fatalf("LoadProfile = ok %v, err %v", ok, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("LoadProfile = %+v, want %+v", got, want)
	}
}

func TestSaveProfileRejectsInvalid(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)

	bad := model.Profile{Age: 5, WeightKg: 70, HeightCm: 175, Gender: model.GenderMale, ActivityLevel: model.ActivitySedentary, Goal: model.GoalFatLoss}
	if err := service.SaveProfile(sqldb, bad); err == nil {
		t.Fatal("SaveProfile accepted an implausible age")
	}
	if _, ok, _ := service.LoadProfile(sqldb); ok {
		t.Fatal("invalid profile must not be persisted")
	}
}

func TestLoadProviderSettingsDefaults(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)

	s, err := service.LoadProviderSettings(sqldb)
	if err != nil {
		t.Fatalf("LoadProviderSettings: %v", err)
	}
	if s.SelectedID != service.ProviderGemini {
		t.Fatalf("default SelectedID = %q, want gemini", s.SelectedID)
	}
	if s.BuiltinKeys == nil {
		t.Fatal("BuiltinKeys must be non-nil")
	}
}

func TestProviderSettingsRoundTrip(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)

	want := model.ProviderSettings{
		SelectedID:  "relay-1",
		BuiltinKeys: map[string]string{"gemini": "g-key"},
		CustomProviders: []model.CustomProvider{
			{ID: "relay-1", Name: "Relay", BaseURL: "https://relay.example.com/v1", Model: "qwen-max", APIKey: "rk"},
		},
	}
	if err := service.SaveProviderSettings(sqldb, want); err != nil {
		t.Fatalf("SaveProviderSettings: %v", err)
	}
	got, err := service.LoadProviderSettings(sqldb)
	if err != nil {
		t.Fatalf("LoadProviderSettings: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("LoadProviderSettings = %+v, want %+v", got, want)
	}
}

func TestLoadProviderSettingsUpgradesLegacyDocument(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)

	legacy := `{"provider":"openai","apiKeys":{"OpenAI":"sk-legacy","Gemini":"g-legacy"}}`
	if err := service.SetConfig(sqldb, service.ConfigProviderSettings, legacy); err != nil {
		t.Fatalf("seed legacy settings: %v", err)
	}

	s, err := service.LoadProviderSettings(sqldb)
	if err != nil {
		t.Fatalf("LoadProviderSettings: %v", err)
	}
	if s.SelectedID != service.ProviderOpenAI {
		t.Fatalf("SelectedID = %q, want openai", s.SelectedID)
	}
	if s.BuiltinKeys["openai"] != "sk-legacy" || s.BuiltinKeys["gemini"] != "g-legacy" {
		t.Fatalf("BuiltinKeys = %v, want lowercased legacy keys", s.BuiltinKeys)
	}

	// The upgrade must be persisted, not recomputed on every load.
	raw, ok, err := service.GetConfig(sqldb, service.ConfigProviderSettings)
	if err != nil || !ok {
		t.Fatalf("GetConfig after upgrade = ok %v, err %v", ok, err)
	}
	if raw == legacy {
		t.Fatal("legacy document was not rewritten")
	}
	again, err := service.LoadProviderSettings(sqldb)
	if err != nil {
		t.Fatalf("second LoadProviderSettings: %v", err)
	}
	if !reflect.DeepEqual(again, s) {
		t.Fatalf("second load = %+v, want %+v", again, s)
	}
}

func TestResolveBuiltinKeyPrefersStoredKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "from-env")

	s := model.ProviderSettings{BuiltinKeys: map[string]string{"gemini": "stored"}}
	if got := service.ResolveBuiltinKey(s, service.ProviderGemini); got != "stored" {
		t.Fatalf("ResolveBuiltinKey = %q, want stored key", got)
	}

	s.BuiltinKeys = map[string]string{}
	if got := service.ResolveBuiltinKey(s, service.ProviderGemini); got != "from-env" {
		t.Fatalf("ResolveBuiltinKey = %q, want env fallback", got)
	}
}
