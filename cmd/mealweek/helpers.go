package mealweek

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/mealweek/mealweek-cli/internal/app"
	"github.com/mealweek/mealweek-cli/internal/db"
	"github.com/mealweek/mealweek-cli/internal/model"
	"github.com/mealweek/mealweek-cli/internal/service"
)

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

// listSeparators accepts both ASCII and CJK list punctuation so pasted
// ingredient lists work either way.
var listSeparators = regexp.MustCompile(`[,，、;；]+`)

func splitList(raw string) []string {
	var out []string
	for _, part := range listSeparators.Split(raw, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func requireProfile(sqldb *sql.DB) (model.Profile, error) {
	profile, ok, err := service.LoadProfile(sqldb)
	if err != nil {
		return model.Profile{}, err
	}
	if !ok {
		return model.Profile{}, fmt.Errorf(`no profile saved yet; run "mealweek profile set" first`)
	}
	return profile, nil
}
