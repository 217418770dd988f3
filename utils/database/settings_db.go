package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SettingsDB stores the per-guild enable flag. Guilds without a row
// read as disabled.
type SettingsDB struct {
	db *sqlx.DB
}

func NewSettingsDB(db *sqlx.DB) *SettingsDB {
	return &SettingsDB{db: db}
}

func (s *SettingsDB) SetEnabled(guildID string, enabled bool) error {
	query := `INSERT INTO guild_settings (guild_id, enabled) VALUES (?, ?)
		ON CONFLICT(guild_id) DO UPDATE SET enabled = excluded.enabled`
	if _, err := s.db.Exec(query, guildID, enabled); err != nil {
		return fmt.Errorf("failed to set enabled flag for guild %s: %w", guildID, err)
	}
	return nil
}

func (s *SettingsDB) Enabled(guildID string) (bool, error) {
	var enabled bool
	err := s.db.Get(&enabled, "SELECT enabled FROM guild_settings WHERE guild_id = ?", guildID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read enabled flag for guild %s: %w", guildID, err)
	}
	return enabled, nil
}
