package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mealweek/mealweek-cli/internal/model"
)

// Builtin provider IDs. Anything else in ProviderSettings.SelectedID must
// match a stored custom provider.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

var builtinEnvKeys = map[string]string{
	ProviderGemini: "GEMINI_API_KEY",
	ProviderOpenAI: "OPENAI_API_KEY",
}

// LoadProfile returns the stored body profile. The bool reports whether a
// profile has been saved yet.
func LoadProfile(db *sql.DB) (model.Profile, bool, error) {
	raw, ok, err := GetConfig(db, ConfigProfile)
	if err != nil {
		return model.Profile{}, false, err
	}
	if !ok {
		return model.Profile{}, false, nil
	}
	var p model.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return model.Profile{}, false, fmt.Errorf("decode stored profile: %w", err)
	}
	return p, true, nil
}

func SaveProfile(db *sql.DB, p model.Profile) error {
	if err := ValidateProfile(p); err != nil {
		return err
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return SetConfig(db, ConfigProfile, string(raw))
}

// legacySettings is the pre-multi-provider document shape: a single
// provider name plus a flat key map.
type legacySettings struct {
	Provider string            `json:"provider"`
	APIKeys  map[string]string `json:"apiKeys"`
}

// LoadProviderSettings returns the stored provider settings, upgrading the
// legacy single-provider document in place when found. A fresh install
// defaults to the Gemini builtin.
func LoadProviderSettings(db *sql.DB) (model.ProviderSettings, error) {
	raw, ok, err := GetConfig(db, ConfigProviderSettings)
	if err != nil {
		return model.ProviderSettings{}, err
	}
	if !ok {
		return model.ProviderSettings{
			SelectedID:  ProviderGemini,
			BuiltinKeys: map[string]string{},
		}, nil
	}

	var s model.ProviderSettings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return model.ProviderSettings{}, fmt.Errorf("decode provider settings: %w", err)
	}
	if s.SelectedID == "" {
		var legacy legacySettings
		if err := json.Unmarshal([]byte(raw), &legacy); err == nil && legacy.Provider != "" {
			s = upgradeLegacySettings(legacy)
			if err := SaveProviderSettings(db, s); err != nil {
				return model.ProviderSettings{}, fmt.Errorf("persist upgraded provider settings: %w", err)
			}
		} else {
			s.SelectedID = ProviderGemini
		}
	}
	if s.BuiltinKeys == nil {
		s.BuiltinKeys = map[string]string{}
	}
	return s, nil
}

func upgradeLegacySettings(legacy legacySettings) model.ProviderSettings {
	s := model.ProviderSettings{
		SelectedID:  legacy.Provider,
		BuiltinKeys: map[string]string{},
	}
	for name, key := range legacy.APIKeys {
		s.BuiltinKeys[strings.ToLower(name)] = key
	}
	if _, ok := builtinEnvKeys[s.SelectedID]; !ok {
		s.SelectedID = ProviderGemini
	}
	return s
}

func SaveProviderSettings(db *sql.DB, s model.ProviderSettings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode provider settings: %w", err)
	}
	return SetConfig(db, ConfigProviderSettings, string(raw))
}

// ResolveBuiltinKey returns the API key for a builtin provider, preferring
// the stored key and falling back to the conventional environment variable.
func ResolveBuiltinKey(s model.ProviderSettings, id string) string {
	if key := strings.TrimSpace(s.BuiltinKeys[id]); key != "" {
		return key
	}
	if env, ok := builtinEnvKeys[id]; ok {
		return strings.TrimSpace(os.Getenv(env))
	}
	return ""
}

// FindCustomProvider looks up a stored custom provider by ID.
func FindCustomProvider(s model.ProviderSettings, id string) (model.CustomProvider, bool) {
	for _, cp := range s.CustomProviders {
		if cp.ID == id {
			return cp, true
		}
	}
	return model.CustomProvider{}, false
}
