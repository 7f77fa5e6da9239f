package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// startupPragmas tune sqlite for a single-user CLI: WAL keeps the file
// readable while a plan is being archived, and the busy timeout covers a
// second mealweek process pointed at the same database.
var startupPragmas = []string{
	`PRAGMA foreign_keys = ON;`,
	`PRAGMA journal_mode = WAL;`,
	`PRAGMA busy_timeout = 5000;`,
}

func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	for _, pragma := range startupPragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("apply %s: %w", pragma, err)
		}
	}
	return db, nil
}
