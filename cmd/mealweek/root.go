package mealweek

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	dbPath  string
	verbose bool

	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mealweek",
	Short: "mealweek generates weekly meal plans with an LLM from your terminal",
	Long:  "mealweek is a local-first meal planning CLI: it computes your calorie targets, builds a nutritionist prompt, calls your configured LLM provider, and recovers a structured weekly plan with shopping list and recipes.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
			Level(level).
			With().Timestamp().Logger()
	},
}

func Execute() {
	// API keys may live in a local .env; absence is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
}
