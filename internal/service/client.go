package service

import (
	"fmt"
	"strings"

	"github.com/mealweek/mealweek-cli/internal/model"
	"github.com/mealweek/mealweek-cli/internal/provider"
	"github.com/mealweek/mealweek-cli/internal/provider/gemini"
	"github.com/mealweek/mealweek-cli/internal/provider/openaichat"
)

const defaultOpenAIModel = "gpt-4o-mini"

// ClientForSettings builds the provider client for the currently selected
// provider, validating credentials and custom configuration up front so
// generation fails before any tokens are spent.
func ClientForSettings(s model.ProviderSettings) (provider.Client, error) {
	switch s.SelectedID {
	case ProviderGemini:
		key := ResolveBuiltinKey(s, ProviderGemini)
		if key == "" {
			return nil, provider.NewError(provider.CategoryMissingKey,
				`no Gemini API key configured; run "mealweek provider set-key gemini <key>" or set GEMINI_API_KEY`)
		}
		return gemini.New(key), nil
	case ProviderOpenAI:
		key := ResolveBuiltinKey(s, ProviderOpenAI)
		if key == "" {
			return nil, provider.NewError(provider.CategoryMissingKey,
				`no OpenAI API key configured; run "mealweek provider set-key openai <key>" or set OPENAI_API_KEY`)
		}
		return openaichat.New(openaichat.Options{
			Label:  "OpenAI",
			APIKey: key,
			Model:  defaultOpenAIModel,
		}), nil
	default:
		cp, ok := FindCustomProvider(s, s.SelectedID)
		if !ok {
			return nil, provider.NewError(provider.CategoryIncompleteConfig,
				`no usable provider selected (%q); run "mealweek provider list" to see what is configured`, s.SelectedID)
		}
		var missing []string
		if strings.TrimSpace(cp.BaseURL) == "" {
			missing = append(missing, "base URL")
		}
		if strings.TrimSpace(cp.Model) == "" {
			missing = append(missing, "model")
		}
		if strings.TrimSpace(cp.APIKey) == "" {
			missing = append(missing, "API key")
		}
		if len(missing) > 0 {
			return nil, provider.NewError(provider.CategoryIncompleteConfig,
				"custom provider %q is missing its %s; edit it with \"mealweek provider add\"",
				cp.Name, strings.Join(missing, ", "))
		}
		label := cp.Name
		if label == "" {
			label = fmt.Sprintf("custom provider %s", cp.ID)
		}
		return openaichat.New(openaichat.Options{
			Label:    label,
			APIKey:   cp.APIKey,
			Model:    cp.Model,
			Endpoint: cp.BaseURL,
		}), nil
	}
}
