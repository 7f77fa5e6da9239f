package mealweek

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mealweek/mealweek-cli/internal/model"
	"github.com/mealweek/mealweek-cli/internal/service"
	"github.com/spf13/cobra"
)

var providerCmd = &cobra.Command{
	Use:   "provider",
	Short: "Manage LLM providers and API keys",
}

var providerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available providers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			settings, err := service.LoadProviderSettings(sqldb)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tNAME\tKIND\tKEY\tSELECTED")
			for _, id := range []string{service.ProviderGemini, service.ProviderOpenAI} {
				keyState := "missing"
				if service.ResolveBuiltinKey(settings, id) != "" {
					keyState = "set"
				}
				fmt.Fprintf(out, "%s\t%s\tbuiltin\t%s\t%s\n", id, builtinName(id), keyState, selectedMark(settings, id))
			}
			for _, cp := range settings.CustomProviders {
				keyState := "missing"
				if cp.APIKey != "" {
					keyState = "set"
				}
				fmt.Fprintf(out, "%s\t%s\tcustom\t%s\t%s\n", cp.ID, cp.Name, keyState, selectedMark(settings, cp.ID))
			}
			return nil
		})
	},
}

func builtinName(id string) string {
	switch id {
	case service.ProviderGemini:
		return "Google Gemini"
	case service.ProviderOpenAI:
		return "OpenAI"
	default:
		return id
	}
}

func selectedMark(s model.ProviderSettings, id string) string {
	if s.SelectedID == id {
		return "*"
	}
	return ""
}

var providerUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Select the provider used for generation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := strings.TrimSpace(args[0])
		return withDB(func(sqldb *sql.DB) error {
			settings, err := service.LoadProviderSettings(sqldb)
			if err != nil {
				return err
			}
			if id != service.ProviderGemini && id != service.ProviderOpenAI {
				if _, ok := service.FindCustomProvider(settings, id); !ok {
					return fmt.Errorf("unknown provider %q; run \"mealweek provider list\"", id)
				}
			}
			settings.SelectedID = id
			if err := service.SaveProviderSettings(sqldb, settings); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Now using provider %s\n", id)
			return nil
		})
	},
}

var providerSetKeyCmd = &cobra.Command{
	Use:   "set-key <provider> <key>",
	Short: "Store an API key for a builtin provider",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := strings.ToLower(strings.TrimSpace(args[0]))
		key := strings.TrimSpace(args[1])
		if id != service.ProviderGemini && id != service.ProviderOpenAI {
			return fmt.Errorf("set-key works for builtin providers (gemini, openai); custom providers carry their key in \"provider add\"")
		}
		if key == "" {
			return fmt.Errorf("API key must not be empty")
		}
		return withDB(func(sqldb *sql.DB) error {
			settings, err := service.LoadProviderSettings(sqldb)
			if err != nil {
				return err
			}
			settings.BuiltinKeys[id] = key
			if err := service.SaveProviderSettings(sqldb, settings); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored API key for %s\n", id)
			return nil
		})
	},
}

var (
	customID      string
	customName    string
	customBaseURL string
	customModel   string
	customAPIKey  string
)

var providerAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or update an OpenAI-compatible custom provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		cp := model.CustomProvider{
			ID:      strings.TrimSpace(customID),
			Name:    strings.TrimSpace(customName),
			BaseURL: strings.TrimSpace(customBaseURL),
			Model:   strings.TrimSpace(customModel),
			APIKey:  strings.TrimSpace(customAPIKey),
		}
		if cp.ID == "" {
			return fmt.Errorf("--id is required")
		}
		if cp.ID == service.ProviderGemini || cp.ID == service.ProviderOpenAI {
			return fmt.Errorf("%q is a builtin provider id", cp.ID)
		}
		if cp.Name == "" {
			cp.Name = cp.ID
		}
		return withDB(func(sqldb *sql.DB) error {
			settings, err := service.LoadProviderSettings(sqldb)
			if err != nil {
				return err
			}
			replaced := false
			for i := range settings.CustomProviders {
				if settings.CustomProviders[i].ID == cp.ID {
					settings.CustomProviders[i] = cp
					replaced = true
					break
				}
			}
			if !replaced {
				settings.CustomProviders = append(settings.CustomProviders, cp)
			}
			if err := service.SaveProviderSettings(sqldb, settings); err != nil {
				return err
			}
			verb := "Added"
			if replaced {
				verb = "Updated"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s custom provider %s\n", verb, cp.ID)
			return nil
		})
	},
}

var providerRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a custom provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := strings.TrimSpace(args[0])
		return withDB(func(sqldb *sql.DB) error {
			settings, err := service.LoadProviderSettings(sqldb)
			if err != nil {
				return err
			}
			kept := settings.CustomProviders[:0]
			removed := false
			for _, cp := range settings.CustomProviders {
				if cp.ID == id {
					removed = true
					continue
				}
				kept = append(kept, cp)
			}
			if !removed {
				return fmt.Errorf("no custom provider %q", id)
			}
			settings.CustomProviders = kept
			if settings.SelectedID == id {
				settings.SelectedID = service.ProviderGemini
			}
			if err := service.SaveProviderSettings(sqldb, settings); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed custom provider %s\n", id)
			return nil
		})
	},
}

var providerTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Verify the selected provider's key and endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			settings, err := service.LoadProviderSettings(sqldb)
			if err != nil {
				return err
			}
			client, err := service.ClientForSettings(settings)
			if err != nil {
				return err
			}
			if err := client.TestConnection(cmd.Context()); err != nil {
				return fmt.Errorf("provider %s failed the connection test: %w", settings.SelectedID, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Provider %s is reachable\n", settings.SelectedID)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(providerCmd)
	providerCmd.AddCommand(providerListCmd)
	providerCmd.AddCommand(providerUseCmd)
	providerCmd.AddCommand(providerSetKeyCmd)
	providerCmd.AddCommand(providerAddCmd)
	providerCmd.AddCommand(providerRemoveCmd)
	providerCmd.AddCommand(providerTestCmd)

	providerAddCmd.Flags().StringVar(&customID, "id", "", "Unique provider id")
	providerAddCmd.Flags().StringVar(&customName, "name", "", "Display name")
	providerAddCmd.Flags().StringVar(&customBaseURL, "base-url", "", "Base URL of the OpenAI-compatible API")
	providerAddCmd.Flags().StringVar(&customModel, "model", "", "Model name to request")
	providerAddCmd.Flags().StringVar(&customAPIKey, "api-key", "", "API key")
}
