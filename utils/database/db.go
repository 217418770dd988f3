package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Init opens the bot database and ensures all tables exist.
func Init(dbPath string) (*sqlx.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schemas := []string{
		`CREATE TABLE IF NOT EXISTS songs (
			id TEXT NOT NULL PRIMARY KEY,
			title TEXT NOT NULL,
			artist TEXT DEFAULT '',
			pack TEXT DEFAULT '',
			chart_designer TEXT DEFAULT '',
			tiers TEXT DEFAULT '',
			locales TEXT DEFAULT '',
			side TEXT DEFAULT '',
			background TEXT DEFAULT '',
			version TEXT DEFAULT '',
			rating_ftr TEXT DEFAULT '',
			rating_byd TEXT DEFAULT '',
			rating_etr TEXT DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS aliases (
			song_id TEXT NOT NULL,
			alias TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS catalog_meta (
			key TEXT NOT NULL PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS game_sessions (
			guild_id TEXT NOT NULL PRIMARY KEY,
			answer_id TEXT NOT NULL,
			max_attempts INTEGER NOT NULL,
			remaining INTEGER NOT NULL,
			started_at INTEGER NOT NULL,
			guesses_json TEXT DEFAULT '[]',
			hints_used_json TEXT DEFAULT '[]'
		);`,
		`CREATE TABLE IF NOT EXISTS winners (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			guild_id TEXT NOT NULL,
			winner TEXT NOT NULL,
			timestamp INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS guild_settings (
			guild_id TEXT NOT NULL PRIMARY KEY,
			enabled BOOLEAN NOT NULL DEFAULT FALSE
		);`,
	}
	for _, schema := range schemas {
		if _, err := db.Exec(schema); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}

	return db, nil
}
